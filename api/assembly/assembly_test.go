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

package assembly

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scopedImpl struct{ scope Scope }

func (scopedImpl) ImplementationType() string { return "test" }
func (s scopedImpl) Scope() Scope            { return s.scope }

type plainImpl struct{}

func (plainImpl) ImplementationType() string { return "plain" }

func TestIsAbsoluteURI(t *testing.T) {
	assert.False(t, IsAbsoluteURI(""))
	assert.False(t, IsAbsoluteURI("Calculator/Add"))
	assert.False(t, IsAbsoluteURI("/Calculator"))
	assert.True(t, IsAbsoluteURI("http://host:8080/Calculator"))
	assert.True(t, IsAbsoluteURI("tcp://host"))
}

func TestSCABindingClone(t *testing.T) {
	target := &Component{Name: "target"}
	b := &SCABinding{BindingName: "b", BindingURI: "u", TargetComponent: target}

	c, ok := b.Clone().(*SCABinding)
	require.True(t, ok)
	assert.Equal(t, SCABindingType, c.Type())
	assert.Equal(t, "b", c.Name())
	assert.Same(t, target, c.TargetComponent)

	c.SetURI("other")
	assert.Equal(t, "u", b.URI(), "clone must not alias the original")
	assert.Equal(t, "other", c.URI())
}

func TestGenericBindingCloneIsDeep(t *testing.T) {
	b := &GenericBinding{
		BindingType: "http",
		BindingURI:  "http://x",
		Attributes:  map[string]string{"k": "v"},
	}
	c := b.Clone().(*GenericBinding)
	c.Attributes["k"] = "changed"
	assert.Equal(t, "v", b.Attributes["k"])
	assert.Equal(t, "http", c.Type())
}

func TestCloneBindings(t *testing.T) {
	assert.Nil(t, CloneBindings(nil))

	orig := []Binding{NewSCABinding(), &GenericBinding{BindingType: "x"}}
	clones := CloneBindings(orig)
	require.Len(t, clones, 2)
	for i := range orig {
		assert.NotSame(t, orig[i], clones[i])
		assert.Equal(t, orig[i].Type(), clones[i].Type())
	}
}

func TestComponentLookups(t *testing.T) {
	svc := &ComponentService{Contract: Contract{Name: "S"}}
	cb := &ComponentService{Contract: Contract{Name: "CB"}, ForCallback: true}
	ref := &ComponentReference{Contract: Contract{Name: "R"}}
	c := &Component{
		Name:       "C",
		Services:   []*ComponentService{svc, cb},
		References: []*ComponentReference{ref},
		Properties: []*ComponentProperty{{Name: "p", Value: 1}},
	}

	assert.Same(t, svc, c.Service("S"))
	assert.Nil(t, c.Service("X"))
	assert.Same(t, ref, c.Reference("R"))
	assert.Nil(t, c.Reference("X"))
	assert.Equal(t, 1, c.Property("p").Value)
	assert.Nil(t, c.Property("q"))
	assert.Same(t, svc, c.SingleService(), "callback services do not count")

	c.Services = append(c.Services, &ComponentService{Contract: Contract{Name: "T"}})
	assert.Nil(t, c.SingleService())
}

func TestComponentScope(t *testing.T) {
	assert.Equal(t, ScopeStateless, (&Component{Implementation: plainImpl{}}).Scope())
	assert.Equal(t, ScopeConversation, (&Component{Implementation: scopedImpl{ScopeConversation}}).Scope())
	assert.Equal(t, "conversation", ScopeConversation.String())
	assert.Equal(t, "unknown", Scope(42).String())
}

func TestComposite(t *testing.T) {
	inner := &Composite{Name: "inner"}
	outer := &Component{Name: "outer", Implementation: inner}
	atomic := &Component{Name: "atomic", Implementation: plainImpl{}}
	c := &Composite{
		Components: []*Component{outer, atomic},
		Services:   []*CompositeService{{Contract: Contract{Name: "S"}}},
		References: []*CompositeReference{{Contract: Contract{Name: "R"}}},
	}

	assert.True(t, outer.IsComposite())
	assert.False(t, atomic.IsComposite())
	assert.Equal(t, CompositeImplementationType, inner.ImplementationType())
	assert.Same(t, atomic, c.Component("atomic"))
	assert.Nil(t, c.Component("missing"))
	assert.False(t, c.Service("S").IsResolved())
	assert.False(t, c.Reference("R").IsResolved())
	assert.Nil(t, c.Service("X"))
	assert.Nil(t, c.Reference("X"))
}

func TestContractBinding(t *testing.T) {
	sca := NewSCABinding()
	c := Contract{Bindings: []Binding{&GenericBinding{BindingType: "http"}, sca}}
	assert.Same(t, sca, c.Binding(SCABindingType))
	assert.Nil(t, c.Binding("jms"))
}

func TestMultiplicity(t *testing.T) {
	tests := []struct {
		m    Multiplicity
		n    int
		want bool
	}{
		{MultiplicityOneOne, 0, false},
		{MultiplicityOneOne, 1, true},
		{MultiplicityOneOne, 2, false},
		{MultiplicityZeroOne, 0, true},
		{MultiplicityZeroOne, 2, false},
		{MultiplicityZeroN, 0, true},
		{MultiplicityZeroN, 5, true},
		{MultiplicityOneN, 0, false},
		{MultiplicityOneN, 3, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.m.Allows(tt.n), "%v allows %d", tt.m, tt.n)
	}
}

func TestEndpointNames(t *testing.T) {
	var nilRef *EndpointReference
	assert.Equal(t, "", nilRef.Name())
	ref := &EndpointReference{
		Component: &Component{Name: "C"},
		Reference: &ComponentReference{Contract: Contract{Name: "R"}},
	}
	assert.Equal(t, "C/R", ref.Name())

	ep := &Endpoint{Component: &Component{Name: "T"}, Service: &ComponentService{Contract: Contract{Name: "S"}}}
	assert.Equal(t, "T/S", ep.Name())
	assert.Equal(t, "remote-pending", StatusRemotePending.String())
}
