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

// Package scope manages the implementation instances of components
// according to their scope.
package scope

import (
	"context"
	"runtime/debug"
	"time"

	"go.uber.org/sca/api/assembly"
	"go.uber.org/sca/api/invocation"
	"go.uber.org/sca/api/provider"
	"go.uber.org/sca/scaerrors"
	"go.uber.org/zap"
)

var _timeNow = time.Now // for tests

// Initializer is implemented by instances that need setting up before
// their first call.
type Initializer interface {
	Init(ctx context.Context) error
}

// Destroyer is implemented by instances that hold resources to release once
// they go out of scope.
type Destroyer interface {
	Destroy(ctx context.Context) error
}

// InstanceFactory creates a new implementation instance.
type InstanceFactory func(ctx context.Context) (interface{}, error)

// InstanceWrapper holds an implementation instance handed out by a
// Container.
type InstanceWrapper struct {
	instance interface{}
	entry    *conversation
}

// Instance returns the implementation instance.
func (w *InstanceWrapper) Instance() interface{} { return w.instance }

// Container hands out the instances of one component.
//
// Every successful Instance call must be followed by a Return of the same
// wrapper once the call is over. Return is given the operation of the
// implementation that ran, which decides whether a conversation ends.
type Container interface {
	Scope() assembly.Scope
	Instance(ctx context.Context, msg *invocation.Message) (*InstanceWrapper, error)
	Return(ctx context.Context, op *assembly.Operation, w *InstanceWrapper) error
	Start() error
	Stop() error
}

type options struct {
	name         string
	logger       *zap.Logger
	manager      provider.ConversationManager
	maxAge       time.Duration
	maxIdleTime  time.Duration
	reapInterval time.Duration
}

// Option customizes a Container.
type Option func(*options)

// Name sets the component name used in errors and logs.
func Name(name string) Option {
	return func(o *options) { o.name = name }
}

// Logger sets the container's logger.
func Logger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// Conversations registers conversation containers with the manager so that
// they learn when conversations end.
func Conversations(m provider.ConversationManager) Option {
	return func(o *options) { o.manager = m }
}

// MaxAge bounds the lifetime of a conversation. Zero means unbounded.
func MaxAge(d time.Duration) Option {
	return func(o *options) { o.maxAge = d }
}

// MaxIdleTime bounds the time between two calls of a conversation. Zero
// means unbounded.
func MaxIdleTime(d time.Duration) Option {
	return func(o *options) { o.maxIdleTime = d }
}

// ReapInterval sets how often expired conversations are looked for.
// Expired conversations are also detected when they are next used.
// Non-positive intervals are ignored.
func ReapInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.reapInterval = d
		}
	}
}

// New builds the container for the given scope.
func New(scope assembly.Scope, factory InstanceFactory, opts ...Option) (Container, error) {
	o := options{logger: zap.NewNop(), reapInterval: time.Minute}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = o.logger.With(zap.String("component", o.name), zap.Stringer("scope", scope))

	switch scope {
	case assembly.ScopeStateless:
		return newStatelessContainer(factory, o), nil
	case assembly.ScopeComposite:
		return newCompositeContainer(factory, o), nil
	case assembly.ScopeConversation:
		return newConversationContainer(factory, o), nil
	default:
		return nil, scaerrors.InvalidArgumentErrorf("unknown scope %v for component %q", scope, o.name)
	}
}

// create builds and initializes a new instance. Panics of the factory or of
// Init are reported as creation failures.
func create(ctx context.Context, factory InstanceFactory, o options) (_ *InstanceWrapper, err error) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("instance creation panicked",
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()))
			err = scaerrors.Newf(scaerrors.CodeInstanceCreationFailed,
				"panic while creating instance of component %q: %v", o.name, r)
		}
	}()

	instance, err := factory(ctx)
	if err != nil {
		return nil, scaerrors.Wrap(scaerrors.CodeInstanceCreationFailed, err, "could not create instance of component %q", o.name)
	}
	if i, ok := instance.(Initializer); ok {
		if err := i.Init(ctx); err != nil {
			return nil, scaerrors.Wrap(scaerrors.CodeInstanceCreationFailed, err, "could not initialize instance of component %q", o.name)
		}
	}
	return &InstanceWrapper{instance: instance}, nil
}

// destroy releases an instance, logging failures.
func destroy(ctx context.Context, w *InstanceWrapper, o options) error {
	if w == nil {
		return nil
	}
	d, ok := w.instance.(Destroyer)
	if !ok {
		return nil
	}
	if err := d.Destroy(ctx); err != nil {
		o.logger.Warn("failed to destroy instance", zap.Error(err))
		return err
	}
	return nil
}

func notRunning(o options) error {
	return scaerrors.ServiceUnavailableErrorf("component %q is not running", o.name)
}
