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

	"go.uber.org/sca/api/assembly"
	"go.uber.org/sca/api/invocation"
	"go.uber.org/sca/internal/lifecycle"
)

// statelessContainer creates an instance per call.
type statelessContainer struct {
	factory InstanceFactory
	opts    options
	once    *lifecycle.Once
}

func newStatelessContainer(factory InstanceFactory, o options) *statelessContainer {
	return &statelessContainer{factory: factory, opts: o, once: lifecycle.NewOnce()}
}

func (c *statelessContainer) Scope() assembly.Scope { return assembly.ScopeStateless }

func (c *statelessContainer) Instance(ctx context.Context, _ *invocation.Message) (*InstanceWrapper, error) {
	if !c.once.IsRunning() {
		return nil, notRunning(c.opts)
	}
	return create(ctx, c.factory, c.opts)
}

func (c *statelessContainer) Return(ctx context.Context, _ *assembly.Operation, w *InstanceWrapper) error {
	return destroy(ctx, w, c.opts)
}

func (c *statelessContainer) Start() error { return c.once.Start(nil) }
func (c *statelessContainer) Stop() error  { return c.once.Stop(nil) }
