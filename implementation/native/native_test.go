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

package native

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/sca/api/assembly"
	"go.uber.org/sca/api/invocation"
	"go.uber.org/sca/api/provider"
	"go.uber.org/sca/internal/scope"
	"go.uber.org/sca/scaerrors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeContext struct {
	component *assembly.Component
	manager   *scope.Manager
}

func (c *fakeContext) Component() *assembly.Component { return c.component }

func (c *fakeContext) Reference(name string) (provider.Caller, error) {
	return nil, scaerrors.NotFoundErrorf("no reference %q", name)
}

func (c *fakeContext) Callback(context.Context) (provider.Caller, error) {
	return nil, scaerrors.NotFoundErrorf("no callback")
}

func (c *fakeContext) Property(string) (interface{}, bool) { return nil, false }

func (c *fakeContext) Conversations() provider.ConversationManager { return c.manager }

type counter struct {
	n         int
	destroyed bool
}

func (c *counter) Destroy(context.Context) error {
	c.destroyed = true
	return nil
}

var (
	_incr  = &assembly.Operation{Name: "incr", Input: []assembly.DataType{"int"}, Output: "int"}
	_boom  = &assembly.Operation{Name: "boom"}
	_fail  = &assembly.Operation{Name: "fail"}
	_sleep = &assembly.Operation{Name: "sleep"}
	_close = &assembly.Operation{Name: "close", EndsConversation: true}
	_svc   = &assembly.ComponentService{Contract: assembly.Contract{Name: "Counter"}}
)

var _errBusiness = errors.New("insufficient funds")

func counterImpl(s assembly.Scope) *Implementation {
	return &Implementation{
		InstanceScope: s,
		New: func(context.Context, provider.ComponentContext) (interface{}, error) {
			return &counter{}, nil
		},
		Operations: map[string]Method{
			"incr": func(_ context.Context, inst interface{}, args []interface{}) (interface{}, error) {
				c := inst.(*counter)
				c.n += args[0].(int)
				return c.n, nil
			},
			"boom": func(context.Context, interface{}, []interface{}) (interface{}, error) {
				panic("kaboom")
			},
			"fail": func(context.Context, interface{}, []interface{}) (interface{}, error) {
				return nil, _errBusiness
			},
			"sleep": func(ctx context.Context, _ interface{}, _ []interface{}) (interface{}, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			},
			"close": func(_ context.Context, inst interface{}, _ []interface{}) (interface{}, error) {
				return inst.(*counter).n, nil
			},
		},
	}
}

func newProvider(t *testing.T, f *Factory, impl assembly.Implementation) provider.ImplementationProvider {
	cc := &fakeContext{
		component: &assembly.Component{Name: "Counter", Implementation: impl},
		manager:   scope.NewManager(),
	}
	p, err := f.CreateImplementationProvider(cc)
	require.NoError(t, err)
	require.NoError(t, p.Start())
	return p
}

func invoker(t *testing.T, p provider.ImplementationProvider, op *assembly.Operation) invocation.Invoker {
	inv, err := p.CreateInvoker(_svc, op)
	require.NoError(t, err)
	return inv
}

func TestFactory(t *testing.T) {
	f := NewFactory()
	assert.Equal(t, ImplementationType, f.ImplementationType())

	_, err := f.CreateImplementationProvider(&fakeContext{component: &assembly.Component{Name: "X"}})
	assert.True(t, scaerrors.HasCode(err, scaerrors.CodeInvalidArgument))

	_, err = f.CreateImplementationProvider(&fakeContext{
		component: &assembly.Component{Name: "X", Implementation: &Implementation{}},
	})
	assert.True(t, scaerrors.HasCode(err, scaerrors.CodeInvalidArgument))
}

func TestScopes(t *testing.T) {
	tests := []struct {
		scope assembly.Scope
		want  []int
	}{
		{assembly.ScopeStateless, []int{1, 1, 1}},
		{assembly.ScopeComposite, []int{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.scope.String(), func(t *testing.T) {
			p := newProvider(t, NewFactory(), counterImpl(tt.scope))
			defer p.Stop()
			assert.False(t, p.SupportsOneWayInvocation())
			inv := invoker(t, p, _incr)

			var got []int
			for range tt.want {
				res := inv.Invoke(context.Background(), invocation.NewRequest(_incr, 1))
				require.False(t, res.IsFault(), "%v", res.Fault())
				got = append(got, res.Body.(int))
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConversationScope(t *testing.T) {
	p := newProvider(t, NewFactory(), counterImpl(assembly.ScopeConversation))
	defer p.Stop()
	inv := invoker(t, p, _incr)

	res := inv.Invoke(context.Background(), invocation.NewRequest(_incr, 1))
	assert.True(t, scaerrors.IsNoActiveConversation(res.Fault()))

	call := func(id string) int {
		msg := invocation.NewRequest(_incr, 1)
		msg.Headers = msg.Headers.With(invocation.ConversationIDHeader, id)
		res := inv.Invoke(context.Background(), msg)
		require.False(t, res.IsFault(), "%v", res.Fault())
		return res.Body.(int)
	}
	assert.Equal(t, 1, call("a"))
	assert.Equal(t, 2, call("a"))
	assert.Equal(t, 1, call("b"))
}

func TestMissingMethod(t *testing.T) {
	p := newProvider(t, NewFactory(), counterImpl(assembly.ScopeStateless))
	defer p.Stop()
	_, err := p.CreateInvoker(_svc, &assembly.Operation{Name: "decr"})
	require.Error(t, err)
	assert.True(t, scaerrors.IsActivationFailed(err))
	assert.Contains(t, err.Error(), `"decr"`)
}

func TestFaults(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	p := newProvider(t, NewFactory(Logger(zap.New(core))), counterImpl(assembly.ScopeComposite))
	defer p.Stop()

	res := invoker(t, p, _fail).Invoke(context.Background(), invocation.NewRequest(_fail))
	require.True(t, res.IsFault())
	assert.Equal(t, _errBusiness, res.Fault(), "business errors are passed as-is")

	res = invoker(t, p, _boom).Invoke(context.Background(), invocation.NewRequest(_boom))
	require.True(t, res.IsFault())
	assert.True(t, scaerrors.HasCode(res.Fault(), scaerrors.CodeInternal))
	assert.Contains(t, res.Fault().Error(), "kaboom")
	assert.Equal(t, 1, logs.FilterMessage("operation panicked").Len())

	res = invoker(t, p, _incr).Invoke(context.Background(), invocation.NewRequest(_incr, 5))
	assert.Equal(t, 5, res.Body, "the instance survives a panic")

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	res = invoker(t, p, _sleep).Invoke(ctx, invocation.NewRequest(_sleep))
	assert.True(t, scaerrors.HasCode(res.Fault(), scaerrors.CodeDeadlineExceeded))
}

func TestConstructorFailure(t *testing.T) {
	impl := counterImpl(assembly.ScopeStateless)
	impl.New = func(context.Context, provider.ComponentContext) (interface{}, error) {
		return nil, errors.New("db down")
	}
	p := newProvider(t, NewFactory(), impl)
	defer p.Stop()

	res := invoker(t, p, _incr).Invoke(context.Background(), invocation.NewRequest(_incr, 1))
	require.True(t, res.IsFault())
	assert.True(t, scaerrors.IsInstanceCreationFailed(res.Fault()))
	assert.Contains(t, res.Fault().Error(), "db down")
}

func TestDestroyOnStop(t *testing.T) {
	var inst *counter
	impl := counterImpl(assembly.ScopeComposite)
	impl.New = func(context.Context, provider.ComponentContext) (interface{}, error) {
		inst = &counter{}
		return inst, nil
	}

	cc := &fakeContext{component: &assembly.Component{Name: "Counter", Implementation: impl}}
	p, err := NewFactory().CreateImplementationProvider(cc)
	require.NoError(t, err)
	require.NoError(t, p.Start())
	invoker(t, p, _incr).Invoke(context.Background(), invocation.NewRequest(_incr, 1))
	require.NoError(t, p.Stop())
	assert.True(t, inst.destroyed)
}

func TestConstructorPanic(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	impl := counterImpl(assembly.ScopeConversation)
	impl.New = func(context.Context, provider.ComponentContext) (interface{}, error) {
		panic("no config")
	}
	p := newProvider(t, NewFactory(Logger(zap.New(core))), impl)
	defer p.Stop()
	inv := invoker(t, p, _incr)

	for i := 0; i < 2; i++ {
		msg := invocation.NewRequest(_incr, 1)
		msg.Headers = msg.Headers.With(invocation.ConversationIDHeader, "c1")
		res := inv.Invoke(context.Background(), msg)
		require.True(t, res.IsFault())
		assert.True(t, scaerrors.IsInstanceCreationFailed(res.Fault()), "got %v", res.Fault())
		assert.Contains(t, res.Fault().Error(), "no config")
	}
	assert.Equal(t, 2, logs.FilterMessage("instance creation panicked").Len())
}

func TestTargetOperationEndsConversation(t *testing.T) {
	p := newProvider(t, NewFactory(), counterImpl(assembly.ScopeConversation))
	defer p.Stop()

	call := func(inv invocation.Invoker, op *assembly.Operation) int {
		msg := invocation.NewRequest(op, 1)
		msg.Headers = msg.Headers.With(invocation.ConversationIDHeader, "a")
		res := inv.Invoke(context.Background(), msg)
		require.False(t, res.IsFault(), "%v", res.Fault())
		return res.Body.(int)
	}

	incr := invoker(t, p, _incr)
	assert.Equal(t, 1, call(incr, _incr))
	assert.Equal(t, 2, call(incr, _incr))

	// The caller's view of the operation does not end the conversation;
	// the implementation's does.
	callerClose := &assembly.Operation{Name: "close"}
	assert.Equal(t, 2, call(invoker(t, p, _close), callerClose))
	assert.Equal(t, 1, call(incr, _incr), "a new conversation starts")
}

func TestMethodSeesRequest(t *testing.T) {
	var got *invocation.Message
	impl := counterImpl(assembly.ScopeStateless)
	impl.Operations["incr"] = func(ctx context.Context, _ interface{}, _ []interface{}) (interface{}, error) {
		got = invocation.MessageFromContext(ctx)
		return nil, nil
	}
	p := newProvider(t, NewFactory(), impl)
	defer p.Stop()

	msg := invocation.NewRequest(_incr, 1)
	msg.From = &assembly.EndpointReference{}
	invoker(t, p, _incr).Invoke(context.Background(), msg)
	assert.Same(t, msg, got)
}
