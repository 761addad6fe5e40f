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

package sca

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/sca/api/assembly"
	"go.uber.org/sca/api/invocation"
	"go.uber.org/sca/api/provider"
	"go.uber.org/sca/scaerrors"
)

const _recordedType = "recorded"

type recordedImpl struct {
	startErr error
}

func (*recordedImpl) ImplementationType() string { return _recordedType }

type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) add(event string) {
	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()
}

func (r *recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

// recordedFactory creates implementation providers that record when they
// start and stop.
type recordedFactory struct{ rec *recorder }

func (f *recordedFactory) ImplementationType() string { return _recordedType }

func (f *recordedFactory) CreateImplementationProvider(cc provider.ComponentContext) (provider.ImplementationProvider, error) {
	c := cc.Component()
	return &recordedProvider{rec: f.rec, name: c.URI, impl: c.Implementation.(*recordedImpl)}, nil
}

type recordedProvider struct {
	rec  *recorder
	name string
	impl *recordedImpl
}

func (p *recordedProvider) Start() error {
	p.rec.add("start " + p.name)
	return p.impl.startErr
}

func (p *recordedProvider) Stop() error {
	p.rec.add("stop " + p.name)
	return nil
}

func (p *recordedProvider) SupportsOneWayInvocation() bool { return false }

func (p *recordedProvider) CreateInvoker(_ *assembly.ComponentService, op *assembly.Operation) (invocation.Invoker, error) {
	return invocation.InvokerFunc(func(context.Context, *invocation.Message) *invocation.Message {
		return invocation.NewResponse(p.name)
	}), nil
}

func pingContract() *assembly.InterfaceContract {
	return contractOf("Ping", &assembly.Operation{Name: "ping", Output: "string"})
}

// recorded builds a component offering Ping and referencing the given
// targets through one reference each.
func recorded(name string, startErr error, targets ...string) *assembly.Component {
	c := &assembly.Component{
		Name:           name,
		Implementation: &recordedImpl{startErr: startErr},
		Services:       []*assembly.ComponentService{service("Ping", pingContract())},
	}
	for _, t := range targets {
		c.References = append(c.References, reference("to"+t, pingContract(), t))
	}
	return c
}

func newRecordedRuntime(t *testing.T, components ...*assembly.Component) (*Runtime, *recorder) {
	rec := &recorder{}
	registry := provider.NewRegistry()
	require.NoError(t, registry.RegisterImplementation(&recordedFactory{rec: rec}))

	rt, err := NewRuntime(Config{Name: "test", Registry: registry})
	require.NoError(t, err)
	require.NoError(t, rt.Deploy(&assembly.Composite{Name: "app", Components: components}))
	return rt, rec
}

func TestActivationOrder(t *testing.T) {
	tests := []struct {
		desc       string
		components []*assembly.Component
		wantStart  []string
	}{
		{
			desc: "chain",
			components: []*assembly.Component{
				recorded("A", nil, "B"),
				recorded("B", nil, "C"),
				recorded("C", nil),
			},
			wantStart: []string{"start C", "start B", "start A"},
		},
		{
			desc: "diamond",
			components: []*assembly.Component{
				recorded("A", nil, "B", "C"),
				recorded("B", nil, "D"),
				recorded("C", nil, "D"),
				recorded("D", nil),
			},
			wantStart: []string{"start D", "start B", "start C", "start A"},
		},
		{
			desc: "cycle",
			components: []*assembly.Component{
				recorded("A", nil, "B"),
				recorded("B", nil, "A"),
				recorded("C", nil),
			},
			wantStart: []string{"start B", "start A", "start C"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			rt, rec := newRecordedRuntime(t, tt.components...)
			require.NoError(t, rt.Start())
			assert.Equal(t, tt.wantStart, rec.Events())

			require.NoError(t, rt.Stop())
			var wantStop []string
			for i := len(tt.wantStart) - 1; i >= 0; i-- {
				wantStop = append(wantStop, "stop"+tt.wantStart[i][len("start"):])
			}
			assert.Equal(t, wantStop, rec.Events()[len(tt.wantStart):], "stopped in reverse")
		})
	}
}

func TestActivationOrderIsStable(t *testing.T) {
	build := func() []string {
		rt, rec := newRecordedRuntime(t,
			recorded("A", nil, "C", "B"),
			recorded("B", nil),
			recorded("C", nil, "B"),
		)
		require.NoError(t, rt.Start())
		defer rt.Stop()
		return rec.Events()
	}
	first := build()
	assert.Equal(t, []string{"start B", "start C", "start A"}, first)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, build())
	}
}

func TestActivationRollback(t *testing.T) {
	rt, rec := newRecordedRuntime(t,
		recorded("A", nil, "B"),
		recorded("B", errors.New("great sadness"), "C"),
		recorded("C", nil),
	)

	err := rt.Start()
	require.Error(t, err)
	assert.True(t, scaerrors.IsActivationFailed(err))
	assert.Contains(t, err.Error(), "great sadness")
	assert.Contains(t, err.Error(), `component "B"`)
	assert.Equal(t, []string{"start C", "start B", "stop C"}, rec.Events(),
		"A is never started and C is stopped again")

	p, err := rt.Service("C")
	require.NoError(t, err)
	_, err = p.Call(context.Background(), "ping")
	assert.True(t, scaerrors.IsServiceUnavailable(err))
}

func TestMissingProviders(t *testing.T) {
	t.Run("implementation", func(t *testing.T) {
		rt, err := NewRuntime(Config{Name: "test"})
		require.NoError(t, err)
		require.NoError(t, rt.Deploy(&assembly.Composite{
			Name:       "app",
			Components: []*assembly.Component{recorded("A", nil)},
		}))

		err = rt.Start()
		assert.True(t, scaerrors.IsActivationFailed(err))
		assert.Contains(t, err.Error(), `no implementation provider registered for type "recorded"`)
	})

	t.Run("binding", func(t *testing.T) {
		c := recorded("A", nil)
		c.Services[0].Bindings = []assembly.Binding{&assembly.GenericBinding{BindingType: "carrier-pigeon"}}
		rt, _ := newRecordedRuntime(t, c)

		err := rt.Start()
		assert.True(t, scaerrors.IsActivationFailed(err))
		assert.Contains(t, err.Error(), `no binding provider registered for type "carrier-pigeon"`)
	})
}

func TestReferenceWithExplicitBinding(t *testing.T) {
	c := recorded("A", nil)
	ref := reference("out", pingContract())
	ref.Bindings = []assembly.Binding{&assembly.GenericBinding{BindingType: "http", BindingURI: "http://example.com/ping"}}
	c.References = append(c.References, ref)

	rt, _ := newRecordedRuntime(t, c)
	a := rt.byURI["A"]
	require.Len(t, a.references, 1, "explicit bindings satisfy the multiplicity")
	assert.Equal(t, assembly.StatusRemotePending, a.references[0].Status)
	assert.Equal(t, "http://example.com/ping", a.references[0].Binding.URI())
	assert.NotSame(t, ref.Bindings[0], a.references[0].Binding)
}
