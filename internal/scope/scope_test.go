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

package scope

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
	"go.uber.org/goleak"
	"go.uber.org/multierr"
	"go.uber.org/sca/api/assembly"
	"go.uber.org/sca/api/invocation"
	"go.uber.org/sca/scaerrors"
)

type counter struct {
	created   atomic.Int32
	inited    atomic.Int32
	destroyed atomic.Int32
	fail      atomic.Bool
}

type instance struct {
	c  *counter
	id int32
}

func (i *instance) Init(context.Context) error {
	i.c.inited.Inc()
	return nil
}

func (i *instance) Destroy(context.Context) error {
	i.c.destroyed.Inc()
	return nil
}

func (c *counter) factory(context.Context) (interface{}, error) {
	if c.fail.Load() {
		return nil, errors.New("out of memory")
	}
	return &instance{c: c, id: c.created.Inc()}, nil
}

var (
	_plain = &assembly.Operation{Name: "plain"}
	_end   = &assembly.Operation{Name: "end", EndsConversation: true}
)

func convMsg(op *assembly.Operation, id string) *invocation.Message {
	msg := invocation.NewRequest(op)
	if id != "" {
		msg.Headers = msg.Headers.With(invocation.ConversationIDHeader, id)
	}
	return msg
}

// call runs a full Instance/Return cycle and returns the instance id.
func call(t *testing.T, c Container, msg *invocation.Message) int32 {
	w, err := c.Instance(context.Background(), msg)
	require.NoError(t, err)
	id := w.Instance().(*instance).id
	require.NoError(t, c.Return(context.Background(), msg.Operation, w))
	return id
}

func TestUnknownScope(t *testing.T) {
	_, err := New(assembly.Scope(42), (&counter{}).factory, Name("C"))
	require.Error(t, err)
	assert.True(t, scaerrors.HasCode(err, scaerrors.CodeInvalidArgument))
}

func TestStatelessCreatesPerCall(t *testing.T) {
	cnt := &counter{}
	c, err := New(assembly.ScopeStateless, cnt.factory)
	require.NoError(t, err)
	assert.Equal(t, assembly.ScopeStateless, c.Scope())

	_, err = c.Instance(context.Background(), invocation.NewRequest(_plain))
	assert.True(t, scaerrors.IsServiceUnavailable(err), "container not started")

	require.NoError(t, c.Start())
	defer c.Stop()

	assert.Equal(t, int32(1), call(t, c, invocation.NewRequest(_plain)))
	assert.Equal(t, int32(2), call(t, c, invocation.NewRequest(_plain)))
	assert.Equal(t, int32(2), cnt.inited.Load())
	assert.Equal(t, int32(2), cnt.destroyed.Load())
}

func TestCompositeSharesOneInstance(t *testing.T) {
	cnt := &counter{}
	c, err := New(assembly.ScopeComposite, cnt.factory)
	require.NoError(t, err)
	require.NoError(t, c.Start())

	cnt.fail.Store(true)
	_, err = c.Instance(context.Background(), invocation.NewRequest(_plain))
	require.Error(t, err)
	assert.True(t, scaerrors.IsInstanceCreationFailed(err))
	assert.Contains(t, err.Error(), "out of memory")

	cnt.fail.Store(false)
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			call(t, c, invocation.NewRequest(_plain))
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), cnt.created.Load(), "failed creation is retried, then shared")
	assert.Equal(t, int32(0), cnt.destroyed.Load())

	require.NoError(t, c.Stop())
	assert.Equal(t, int32(1), cnt.destroyed.Load())
}

func TestConversationRequiresID(t *testing.T) {
	c, err := New(assembly.ScopeConversation, (&counter{}).factory)
	require.NoError(t, err)
	require.NoError(t, c.Start())
	defer c.Stop()

	_, err = c.Instance(context.Background(), invocation.NewRequest(_plain))
	assert.True(t, scaerrors.IsNoActiveConversation(err))
}

func TestConversationInstances(t *testing.T) {
	defer goleak.VerifyNone(t)

	cnt := &counter{}
	mgr := NewManager()
	c, err := New(assembly.ScopeConversation, cnt.factory, Conversations(mgr))
	require.NoError(t, err)
	require.NoError(t, c.Start())

	a := call(t, c, convMsg(_plain, "a"))
	b := call(t, c, convMsg(_plain, "b"))
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, call(t, c, convMsg(_plain, "a")), "same conversation, same instance")

	assert.Equal(t, a, call(t, c, convMsg(_end, "a")))
	assert.Equal(t, int32(1), cnt.destroyed.Load())
	assert.NotEqual(t, a, call(t, c, convMsg(_plain, "a")), "an ended conversation is not resurrected")

	mgr.End("b")
	assert.Equal(t, int32(2), cnt.destroyed.Load())
	mgr.End("unknown")

	require.NoError(t, c.Stop())
	assert.Equal(t, cnt.created.Load(), cnt.destroyed.Load(), "stop destroys live conversations")
}

func TestConversationCreationFailure(t *testing.T) {
	cnt := &counter{}
	cnt.fail.Store(true)
	c, err := New(assembly.ScopeConversation, cnt.factory, Name("Cart"))
	require.NoError(t, err)
	require.NoError(t, c.Start())
	defer c.Stop()

	_, err = c.Instance(context.Background(), convMsg(_plain, "a"))
	require.Error(t, err)
	assert.True(t, scaerrors.IsInstanceCreationFailed(err))
	assert.Contains(t, err.Error(), `"Cart"`)
	assert.Equal(t, 0, c.(*conversationContainer).Len())

	cnt.fail.Store(false)
	assert.Equal(t, int32(1), call(t, c, convMsg(_plain, "a")))
}

func TestConversationCallsAreSerialized(t *testing.T) {
	c, err := New(assembly.ScopeConversation, (&counter{}).factory)
	require.NoError(t, err)
	require.NoError(t, c.Start())
	defer c.Stop()

	var (
		wg       sync.WaitGroup
		inFlight atomic.Int32
		overlap  atomic.Bool
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			msg := convMsg(_plain, "a")
			w, err := c.Instance(context.Background(), msg)
			if !assert.NoError(t, err) {
				return
			}
			if inFlight.Inc() > 1 {
				overlap.Store(true)
			}
			time.Sleep(time.Millisecond)
			inFlight.Dec()
			assert.NoError(t, c.Return(context.Background(), msg.Operation, w))
		}()
	}
	wg.Wait()
	assert.False(t, overlap.Load())
}

func TestConversationExpiry(t *testing.T) {
	now := time.Unix(1000, 0)
	var mu sync.Mutex
	_timeNow = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	defer func() { _timeNow = time.Now }()
	advance := func(d time.Duration) {
		mu.Lock()
		now = now.Add(d)
		mu.Unlock()
	}

	tests := []struct {
		desc string
		opts []Option
		// steps between the first and second call
		steps []time.Duration
		fresh bool
	}{
		{
			desc:  "idle within bound",
			opts:  []Option{MaxIdleTime(time.Minute)},
			steps: []time.Duration{30 * time.Second, 30 * time.Second},
		},
		{
			desc:  "idle too long",
			opts:  []Option{MaxIdleTime(time.Minute)},
			steps: []time.Duration{2 * time.Minute},
			fresh: true,
		},
		{
			desc:  "max age",
			opts:  []Option{MaxAge(time.Minute)},
			steps: []time.Duration{40 * time.Second, 40 * time.Second},
			fresh: true,
		},
		{
			desc:  "unbounded",
			steps: []time.Duration{time.Hour},
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			cnt := &counter{}
			opts := append([]Option{ReapInterval(time.Hour)}, tt.opts...)
			c, err := New(assembly.ScopeConversation, cnt.factory, opts...)
			require.NoError(t, err)
			require.NoError(t, c.Start())
			defer c.Stop()

			first := call(t, c, convMsg(_plain, "a"))
			var last int32
			for _, step := range tt.steps {
				advance(step)
				last = call(t, c, convMsg(_plain, "a"))
			}
			if tt.fresh {
				assert.NotEqual(t, first, last)
				assert.Equal(t, int32(1), cnt.destroyed.Load())
			} else {
				assert.Equal(t, first, last)
			}
		})
	}
}

func TestConversationReaper(t *testing.T) {
	defer goleak.VerifyNone(t)

	cnt := &counter{}
	c, err := New(assembly.ScopeConversation, cnt.factory,
		MaxIdleTime(time.Millisecond), ReapInterval(time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, c.Start())

	call(t, c, convMsg(_plain, "a"))
	assert.Eventually(t, func() bool {
		return cnt.destroyed.Load() == 1
	}, time.Second, time.Millisecond)
	assert.Equal(t, 0, c.(*conversationContainer).Len())

	require.NoError(t, c.Stop())
}

type panickyInstance struct{}

func (panickyInstance) Init(context.Context) error { panic("bad config") }

func TestCreationPanics(t *testing.T) {
	factories := []struct {
		desc    string
		factory InstanceFactory
		want    string
	}{
		{
			desc:    "factory",
			factory: func(context.Context) (interface{}, error) { panic("boom") },
			want:    "boom",
		},
		{
			desc:    "init",
			factory: func(context.Context) (interface{}, error) { return panickyInstance{}, nil },
			want:    "bad config",
		},
	}
	scopes := []assembly.Scope{assembly.ScopeStateless, assembly.ScopeComposite, assembly.ScopeConversation}

	for _, f := range factories {
		for _, scope := range scopes {
			t.Run(f.desc+"/"+scope.String(), func(t *testing.T) {
				c, err := New(scope, f.factory, Name("Cart"))
				require.NoError(t, err)
				require.NoError(t, c.Start())

				for i := 0; i < 2; i++ {
					done := make(chan error, 1)
					go func() {
						_, err := c.Instance(context.Background(), convMsg(_plain, "c1"))
						done <- err
					}()
					select {
					case err := <-done:
						require.Error(t, err)
						assert.True(t, scaerrors.IsInstanceCreationFailed(err), "got %v", err)
						assert.Contains(t, err.Error(), f.want)
						assert.Contains(t, err.Error(), `"Cart"`)
					case <-time.After(time.Second):
						t.Fatalf("Instance call %d did not return", i+1)
					}
				}

				require.NoError(t, c.Stop())
			})
		}
	}
}

func TestConversationEndedByImplementationOperation(t *testing.T) {
	cnt := &counter{}
	c, err := New(assembly.ScopeConversation, cnt.factory)
	require.NoError(t, err)
	require.NoError(t, c.Start())
	defer c.Stop()

	// The caller's operation does not carry the flag; the implementation's
	// does.
	msg := convMsg(_plain, "a")
	w, err := c.Instance(context.Background(), msg)
	require.NoError(t, err)
	first := w.Instance().(*instance).id
	require.NoError(t, c.Return(context.Background(), _end, w))
	assert.Equal(t, int32(1), cnt.destroyed.Load())

	assert.NotEqual(t, first, call(t, c, convMsg(_plain, "a")))
}

type failingDestroy struct{}

func (failingDestroy) Destroy(context.Context) error { return errors.New("stuck") }

func TestConversationStopCombinesErrors(t *testing.T) {
	c, err := New(assembly.ScopeConversation, func(context.Context) (interface{}, error) {
		return failingDestroy{}, nil
	})
	require.NoError(t, err)
	require.NoError(t, c.Start())

	for _, id := range []string{"a", "b"} {
		msg := convMsg(_plain, id)
		w, err := c.Instance(context.Background(), msg)
		require.NoError(t, err)
		require.NoError(t, c.Return(context.Background(), msg.Operation, w))
	}

	err = c.Stop()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
}

type listener struct{ ended []string }

func (l *listener) ConversationEnded(id string) { l.ended = append(l.ended, id) }

func TestManagerListeners(t *testing.T) {
	m := NewManager()
	l1, l2 := &listener{}, &listener{}
	m.AddListener(l1)
	m.AddListener(l2)
	m.End("x")
	m.RemoveListener(l1)
	m.RemoveListener(&listener{})
	m.End("y")

	assert.Equal(t, []string{"x"}, l1.ended)
	assert.Equal(t, []string{"x", "y"}, l2.ended)
}
