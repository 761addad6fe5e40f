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
	"runtime/debug"

	"go.uber.org/sca/api/assembly"
	"go.uber.org/sca/api/invocation"
	"go.uber.org/sca/api/provider"
	"go.uber.org/sca/internal/scope"
	"go.uber.org/sca/scaerrors"
	"go.uber.org/zap"
)

type implementationProvider struct {
	component *assembly.Component
	impl      *Implementation
	container scope.Container
	logger    *zap.Logger
}

func newImplementationProvider(f *Factory, cc provider.ComponentContext, impl *Implementation) (*implementationProvider, error) {
	c := cc.Component()
	logger := f.logger.With(zap.String("component", c.Name))

	maxAge, maxIdle := impl.MaxAge, impl.MaxIdleTime
	if maxAge == 0 {
		maxAge = f.maxAge
	}
	if maxIdle == 0 {
		maxIdle = f.maxIdleTime
	}

	container, err := scope.New(c.Scope(),
		func(ctx context.Context) (interface{}, error) {
			return impl.New(ctx, cc)
		},
		scope.Name(c.Name),
		scope.Logger(logger),
		scope.Conversations(cc.Conversations()),
		scope.MaxAge(maxAge),
		scope.MaxIdleTime(maxIdle),
		scope.ReapInterval(f.reapInterval),
	)
	if err != nil {
		return nil, err
	}

	return &implementationProvider{
		component: c,
		impl:      impl,
		container: container,
		logger:    logger,
	}, nil
}

func (p *implementationProvider) Start() error { return p.container.Start() }
func (p *implementationProvider) Stop() error  { return p.container.Stop() }

// SupportsOneWayInvocation is false: methods run on the caller's goroutine.
func (p *implementationProvider) SupportsOneWayInvocation() bool { return false }

func (p *implementationProvider) CreateInvoker(service *assembly.ComponentService, op *assembly.Operation) (invocation.Invoker, error) {
	method, ok := p.impl.Operations[op.Name]
	if !ok || method == nil {
		return nil, scaerrors.ActivationErrorf(
			"native implementation of component %q has no method for operation %q of service %q",
			p.component.Name, op.Name, service.Name)
	}
	return &methodInvoker{provider: p, service: service, op: op, method: method}, nil
}

type methodInvoker struct {
	provider *implementationProvider
	service  *assembly.ComponentService
	op       *assembly.Operation
	method   Method
}

func (i *methodInvoker) Invoke(ctx context.Context, msg *invocation.Message) *invocation.Message {
	container := i.provider.container
	w, err := container.Instance(ctx, msg)
	if err != nil {
		return invocation.NewFault(err)
	}
	defer func() {
		if err := container.Return(ctx, i.op, w); err != nil {
			i.provider.logger.Warn("failed to release instance",
				zap.String("operation", i.op.Name), zap.Error(err))
		}
	}()

	result, err := i.call(invocation.WithMessage(ctx, msg), w.Instance(), msg.Args())
	if err != nil {
		return invocation.NewFault(err)
	}
	return invocation.NewResponse(result)
}

// call runs the method, turning panics into errors.
func (i *methodInvoker) call(ctx context.Context, instance interface{}, args []interface{}) (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			i.provider.logger.Error("operation panicked",
				zap.String("service", i.service.Name),
				zap.String("operation", i.op.Name),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()))
			err = scaerrors.InternalErrorf("panic in operation %q of component %q: %v",
				i.op.Name, i.provider.component.Name, r)
		}
	}()

	result, err = i.method(ctx, instance, args)
	if err == context.DeadlineExceeded && err == ctx.Err() {
		err = scaerrors.Newf(scaerrors.CodeDeadlineExceeded,
			"call to operation %q of component %q timed out", i.op.Name, i.provider.component.Name)
	}
	return result, err
}
