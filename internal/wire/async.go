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

package wire

import (
	"context"
	"sync"
	"time"

	"go.uber.org/sca/api/invocation"
	"go.uber.org/zap"
)

type detachedKey struct{}

// detachedContext keeps the values of its parent but not its deadline or
// cancellation, since one-way work outlives the call that started it.
type detachedContext struct{ parent context.Context }

func (detachedContext) Deadline() (time.Time, bool)       { return time.Time{}, false }
func (detachedContext) Done() <-chan struct{}             { return nil }
func (detachedContext) Err() error                        { return nil }
func (c detachedContext) Value(key interface{}) interface{} {
	if _, ok := key.(detachedKey); ok {
		return true
	}
	return c.parent.Value(key)
}

func isDetached(ctx context.Context) bool {
	v, _ := ctx.Value(detachedKey{}).(bool)
	return v
}

// AsyncDispatcher runs the rest of a one-way chain on its own goroutine when
// the terminal invoker would block.
type AsyncDispatcher struct {
	logger *zap.Logger
	wg     sync.WaitGroup
}

// NewAsyncDispatcher builds a dispatcher logging failed one-way calls to
// logger.
func NewAsyncDispatcher(logger *zap.Logger) *AsyncDispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AsyncDispatcher{logger: logger}
}

// Interceptor returns the non-blocking interceptor. It returns an empty
// response at once; faults of the detached call are logged. Chains already
// running detached are continued inline.
func (d *AsyncDispatcher) Interceptor() invocation.Interceptor {
	return invocation.InterceptorFunc(d.invoke)
}

func (d *AsyncDispatcher) invoke(ctx context.Context, msg *invocation.Message, next invocation.Invoker) *invocation.Message {
	if isDetached(ctx) {
		return next.Invoke(ctx, msg)
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		res := next.Invoke(detachedContext{parent: ctx}, msg)
		if res.IsFault() {
			d.logger.Error("one-way invocation failed",
				zap.String("operation", operationName(msg)),
				zap.Error(res.Fault()))
		}
	}()
	return invocation.NewResponse(nil)
}

// Wait blocks until every detached call has returned.
func (d *AsyncDispatcher) Wait() {
	d.wg.Wait()
}

func operationName(msg *invocation.Message) string {
	if msg.Operation == nil {
		return ""
	}
	return msg.Operation.Name
}
