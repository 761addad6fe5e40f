// Copyright (c) 2026 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package componenttype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/sca/api/assembly"
	"go.uber.org/sca/monitor"
)

type atomicImpl struct{}

func (atomicImpl) ImplementationType() string { return "test" }

var calcContract = &assembly.InterfaceContract{
	Interface: &assembly.Interface{
		Name: "Calculator",
		Operations: []*assembly.Operation{
			{Name: "add", Input: []assembly.DataType{"int", "int"}, Output: "int"},
		},
	},
}

var greeterContract = &assembly.InterfaceContract{
	Interface: &assembly.Interface{
		Name:       "Greeter",
		Operations: []*assembly.Operation{{Name: "greet", Input: []assembly.DataType{"string"}, Output: "string"}},
	},
}

func service(name string, bindings ...assembly.Binding) *assembly.ComponentService {
	return &assembly.ComponentService{Contract: assembly.Contract{
		Name:              name,
		InterfaceContract: calcContract,
		Bindings:          bindings,
	}}
}

func problemKeys(c *monitor.Collector) []string {
	var keys []string
	for _, p := range c.Problems() {
		keys = append(keys, p.MessageKey)
	}
	return keys
}

func TestPromotedBindingsAreCloned(t *testing.T) {
	b1 := &assembly.GenericBinding{BindingType: "http", BindingName: "b1", BindingURI: "http://b/calc"}
	calc := service("calc", b1)
	composite := &assembly.Composite{
		Name:       "A",
		Components: []*assembly.Component{{Name: "B", Implementation: atomicImpl{}, Services: []*assembly.ComponentService{calc}}},
		Services: []*assembly.CompositeService{{
			Contract:              assembly.Contract{Name: "calc"},
			PromotedComponentName: "B",
			PromotedServiceName:   "calc",
		}},
	}

	mon := monitor.NewCollector(nil)
	NewBuilder(mon).Build(composite)
	require.Empty(t, mon.Problems())

	cs := composite.Services[0]
	assert.Same(t, calc, cs.PromotedService)
	assert.Same(t, composite.Components[0], cs.PromotedComponent)
	assert.Same(t, calcContract, cs.InterfaceContract, "contract inherited from promoted service")

	require.Len(t, cs.Bindings, 1)
	clone := cs.Bindings[0].(*assembly.GenericBinding)
	assert.NotSame(t, b1, clone)
	assert.Equal(t, b1.URI(), clone.URI())

	clone.SetURI("http://elsewhere")
	assert.Equal(t, "http://b/calc", b1.URI())
}

func TestDefaultBindingSynthesized(t *testing.T) {
	composite := &assembly.Composite{
		Name:       "A",
		Components: []*assembly.Component{{Name: "B", Implementation: atomicImpl{}, Services: []*assembly.ComponentService{service("calc")}}},
		Services:   []*assembly.CompositeService{{Contract: assembly.Contract{Name: "calc"}, PromotedComponentName: "B"}},
	}

	NewBuilder(monitor.NewCollector(nil)).Build(composite)

	cs := composite.Services[0]
	require.Len(t, cs.Bindings, 1)
	assert.Equal(t, assembly.SCABindingType, cs.Bindings[0].Type())
	assert.Equal(t, "calc", cs.PromotedService.Name, "bare component name finds the sole service")
}

func TestExplicitOuterBindingsWin(t *testing.T) {
	outer := &assembly.GenericBinding{BindingType: "jms"}
	composite := &assembly.Composite{
		Name: "A",
		Components: []*assembly.Component{{
			Name:           "B",
			Implementation: atomicImpl{},
			Services:       []*assembly.ComponentService{service("calc", &assembly.GenericBinding{BindingType: "http"})},
		}},
		Services: []*assembly.CompositeService{{
			Contract:              assembly.Contract{Name: "calc", Bindings: []assembly.Binding{outer}},
			PromotedComponentName: "B",
			PromotedServiceName:   "calc",
		}},
	}

	NewBuilder(monitor.NewCollector(nil)).Build(composite)
	require.Len(t, composite.Services[0].Bindings, 1)
	assert.Same(t, outer, composite.Services[0].Bindings[0])
}

func TestCallbackBindingsPromoted(t *testing.T) {
	cb := &assembly.GenericBinding{BindingType: "ws", BindingURI: "cb"}
	calc := service("calc")
	calc.Callback = &assembly.Callback{Bindings: []assembly.Binding{cb}}

	stale := &assembly.GenericBinding{BindingType: "stale"}
	composite := &assembly.Composite{
		Name:       "A",
		Components: []*assembly.Component{{Name: "B", Implementation: atomicImpl{}, Services: []*assembly.ComponentService{calc}}},
		Services: []*assembly.CompositeService{
			{Contract: assembly.Contract{Name: "fresh"}, PromotedComponentName: "B", PromotedServiceName: "calc"},
			{
				Contract:              assembly.Contract{Name: "cleared", Callback: &assembly.Callback{Bindings: []assembly.Binding{stale}}},
				PromotedComponentName: "B",
				PromotedServiceName:   "calc",
			},
		},
	}

	NewBuilder(monitor.NewCollector(nil)).Build(composite)

	for _, cs := range composite.Services {
		require.NotNil(t, cs.Callback, cs.Name)
		require.Len(t, cs.Callback.Bindings, 1, cs.Name)
		assert.Equal(t, "cb", cs.Callback.Bindings[0].URI())
		assert.NotSame(t, cb, cs.Callback.Bindings[0])
	}
}

func TestCallbackServiceNameUsedVerbatim(t *testing.T) {
	bar := service("bar")
	bar.ForCallback = true
	composite := &assembly.Composite{
		Name: "A",
		Components: []*assembly.Component{{
			Name:           "Foo",
			Implementation: atomicImpl{},
			Services:       []*assembly.ComponentService{service("main"), bar},
		}},
		Services: []*assembly.CompositeService{
			{Contract: assembly.Contract{Name: "cb"}, PromotedComponentName: "Foo", PromotedServiceName: "Foo/bar", ForCallback: true},
			{Contract: assembly.Contract{Name: "fwd"}, PromotedComponentName: "Foo", PromotedServiceName: "bar"},
			{Contract: assembly.Contract{Name: "bare"}, PromotedComponentName: "Foo"},
		},
	}

	mon := monitor.NewCollector(nil)
	NewBuilder(mon).Build(composite)
	require.Empty(t, mon.Problems())

	assert.Same(t, bar, composite.Services[0].PromotedService)
	assert.Same(t, bar, composite.Services[1].PromotedService)
	assert.Equal(t, "main", composite.Services[2].PromotedService.Name, "callback services are not counted")
}

func TestPromotedServiceNotFound(t *testing.T) {
	composite := &assembly.Composite{
		Name: "A",
		Components: []*assembly.Component{{
			Name:           "B",
			Implementation: atomicImpl{},
			Services:       []*assembly.ComponentService{service("s1"), service("s2")},
		}},
		Services: []*assembly.CompositeService{
			{Contract: assembly.Contract{Name: "x"}, PromotedComponentName: "B", PromotedServiceName: "missing"},
			{Contract: assembly.Contract{Name: "y"}, PromotedComponentName: "B"},
			{Contract: assembly.Contract{Name: "z"}, PromotedComponentName: "Nope", PromotedServiceName: "s1"},
		},
	}

	mon := monitor.NewCollector(nil)
	NewBuilder(mon).Build(composite)

	assert.Equal(t, []string{
		monitor.PromotedServiceNotFound,
		monitor.PromotedServiceNotFound,
		monitor.PromotedServiceNotFound,
	}, problemKeys(mon))
	for _, cs := range composite.Services {
		assert.False(t, cs.IsResolved())
	}
}

func TestServiceInterfaceNotSubSet(t *testing.T) {
	composite := &assembly.Composite{
		Name:       "A",
		Components: []*assembly.Component{{Name: "B", Implementation: atomicImpl{}, Services: []*assembly.ComponentService{service("calc")}}},
		Services: []*assembly.CompositeService{{
			Contract:              assembly.Contract{Name: "calc", InterfaceContract: greeterContract},
			PromotedComponentName: "B",
		}},
	}

	mon := monitor.NewCollector(nil)
	assert.NotPanics(t, func() { NewBuilder(mon).Build(composite) })
	assert.Equal(t, []string{monitor.ServiceInterfaceNotSubSet}, problemKeys(mon))
	assert.Same(t, greeterContract, composite.Services[0].InterfaceContract, "outer contract wins")
}

func TestDuplicateComponentNames(t *testing.T) {
	first := &assembly.Component{Name: "B", Implementation: atomicImpl{}, Services: []*assembly.ComponentService{service("calc")}}
	composite := &assembly.Composite{
		Name: "A",
		Components: []*assembly.Component{
			first,
			{Name: "B", Implementation: atomicImpl{}, Services: []*assembly.ComponentService{service("calc")}},
			{Name: "C"},
		},
		Services: []*assembly.CompositeService{{Contract: assembly.Contract{Name: "calc"}, PromotedComponentName: "B"}},
	}

	mon := monitor.NewCollector(nil)
	NewBuilder(mon).Build(composite)

	assert.Equal(t, []string{monitor.DuplicateComponentName, monitor.NoImplementation}, problemKeys(mon))
	assert.Same(t, first, composite.Services[0].PromotedComponent, "resolution continues with the first component")
}

func TestBuildIsIdempotent(t *testing.T) {
	composite := &assembly.Composite{
		Name:       "A",
		Components: []*assembly.Component{{Name: "B", Implementation: atomicImpl{}, Services: []*assembly.ComponentService{service("calc")}}},
		Services:   []*assembly.CompositeService{{Contract: assembly.Contract{Name: "calc"}, PromotedComponentName: "B"}},
	}

	mon := monitor.NewCollector(nil)
	b := NewBuilder(mon)
	b.Build(composite)
	promoted := composite.Services[0].PromotedService
	bindings := composite.Services[0].Bindings

	b.Build(composite)
	assert.Same(t, promoted, composite.Services[0].PromotedService)
	assert.Equal(t, bindings, composite.Services[0].Bindings)
	assert.Empty(t, mon.Problems())
}

func nested() (outer *assembly.Composite, leaf *assembly.Component) {
	leaf = &assembly.Component{
		Name:           "Leaf",
		Implementation: atomicImpl{},
		Services:       []*assembly.ComponentService{service("calc")},
		References: []*assembly.ComponentReference{{
			Contract: assembly.Contract{Name: "log", InterfaceContract: greeterContract},
		}},
	}
	inner := &assembly.Composite{
		Name:       "Inner",
		Components: []*assembly.Component{leaf},
		Services:   []*assembly.CompositeService{{Contract: assembly.Contract{Name: "calc"}, PromotedComponentName: "Leaf"}},
		References: []*assembly.CompositeReference{{Contract: assembly.Contract{Name: "log"}, Promotes: []string{"Leaf/log"}}},
	}
	outer = &assembly.Composite{
		Name:       "Outer",
		Components: []*assembly.Component{{Name: "Mid", Implementation: inner}},
		Services:   []*assembly.CompositeService{{Contract: assembly.Contract{Name: "calc"}, PromotedComponentName: "Mid", PromotedServiceName: "calc"}},
	}
	return outer, leaf
}

func TestNestedComposites(t *testing.T) {
	outer, leaf := nested()

	mon := monitor.NewCollector(nil)
	NewBuilder(mon).Build(outer)
	require.Empty(t, mon.Problems())

	mid := outer.Component("Mid")
	require.NotNil(t, mid.Service("calc"), "component configured from its component type")
	require.NotNil(t, mid.Reference("log"))
	assert.Same(t, greeterContract, mid.Reference("log").InterfaceContract)

	cs := outer.Services[0]
	require.True(t, cs.IsResolved())
	assert.Same(t, mid, cs.PromotedComponent)
	assert.Same(t, calcContract, cs.InterfaceContract)

	comp, svc, ok := ResolveLeafService(cs.PromotedComponent, cs.PromotedService)
	require.True(t, ok)
	assert.Same(t, leaf, comp)
	assert.Same(t, leaf.Services[0], svc)

	leaves := ResolveLeafReferences(mid, mid.Reference("log"))
	require.Len(t, leaves, 1)
	assert.Same(t, leaf, leaves[0].Component)
	assert.Same(t, leaf.References[0], leaves[0].Reference)
}

func TestResolveLeafServiceUnresolved(t *testing.T) {
	inner := &assembly.Composite{Name: "Inner"}
	c := &assembly.Component{Name: "C", Implementation: inner}
	s := &assembly.ComponentService{Contract: assembly.Contract{Name: "s"}}

	_, _, ok := ResolveLeafService(c, s)
	assert.False(t, ok)

	atomic := &assembly.Component{Name: "A", Implementation: atomicImpl{}}
	comp, svc, ok := ResolveLeafService(atomic, s)
	assert.True(t, ok)
	assert.Same(t, atomic, comp)
	assert.Same(t, s, svc)
}

func TestReferencePromotion(t *testing.T) {
	outerBinding := &assembly.GenericBinding{BindingType: "http", BindingURI: "http://log"}
	ref := &assembly.ComponentReference{Contract: assembly.Contract{Name: "log", InterfaceContract: greeterContract}}
	composite := &assembly.Composite{
		Name:       "A",
		Components: []*assembly.Component{{Name: "B", Implementation: atomicImpl{}, References: []*assembly.ComponentReference{ref}}},
		References: []*assembly.CompositeReference{
			{Contract: assembly.Contract{Name: "log", Bindings: []assembly.Binding{outerBinding}}, Promotes: []string{"B/log"}},
			{Contract: assembly.Contract{Name: "bad", InterfaceContract: calcContract}, Promotes: []string{"B/log", "B/missing"}},
		},
	}

	mon := monitor.NewCollector(nil)
	NewBuilder(mon).Build(composite)

	assert.Equal(t, []string{monitor.ReferenceInterfaceNotSubSet, monitor.PromotedReferenceNotFound}, problemKeys(mon))

	good := composite.References[0]
	assert.True(t, good.IsResolved())
	assert.Same(t, greeterContract, good.InterfaceContract)
	require.Len(t, ref.Bindings, 1)
	assert.Equal(t, "http://log", ref.Bindings[0].URI())
	assert.NotSame(t, outerBinding, ref.Bindings[0])

	assert.False(t, composite.References[1].IsResolved())
}
