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
	"sync"

	"go.uber.org/sca/api/assembly"
	"go.uber.org/sca/api/invocation"
	"go.uber.org/sca/internal/lifecycle"
)

// compositeContainer shares one instance for as long as it runs. The
// instance is created on first use; a failed creation is retried on the
// next call.
type compositeContainer struct {
	factory InstanceFactory
	opts    options
	once    *lifecycle.Once

	mu       sync.Mutex
	instance *InstanceWrapper
}

func newCompositeContainer(factory InstanceFactory, o options) *compositeContainer {
	return &compositeContainer{factory: factory, opts: o, once: lifecycle.NewOnce()}
}

func (c *compositeContainer) Scope() assembly.Scope { return assembly.ScopeComposite }

func (c *compositeContainer) Instance(ctx context.Context, _ *invocation.Message) (*InstanceWrapper, error) {
	if !c.once.IsRunning() {
		return nil, notRunning(c.opts)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.instance == nil {
		w, err := create(ctx, c.factory, c.opts)
		if err != nil {
			return nil, err
		}
		c.instance = w
	}
	return c.instance, nil
}

func (c *compositeContainer) Return(context.Context, *assembly.Operation, *InstanceWrapper) error {
	return nil
}

func (c *compositeContainer) Start() error { return c.once.Start(nil) }

func (c *compositeContainer) Stop() error {
	return c.once.Stop(func() error {
		c.mu.Lock()
		w := c.instance
		c.instance = nil
		c.mu.Unlock()
		return destroy(context.Background(), w, c.opts)
	})
}
