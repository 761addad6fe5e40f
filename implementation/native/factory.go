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
	"time"

	"go.uber.org/sca/api/provider"
	"go.uber.org/sca/scaerrors"
	"go.uber.org/zap"
)

// FactoryOption customizes a Factory.
type FactoryOption func(*Factory)

// Logger sets the logger of the providers.
func Logger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) { f.logger = logger }
}

// ConversationMaxAge sets the default maximum age of conversations.
func ConversationMaxAge(d time.Duration) FactoryOption {
	return func(f *Factory) { f.maxAge = d }
}

// ConversationMaxIdleTime sets the default maximum idle time of
// conversations.
func ConversationMaxIdleTime(d time.Duration) FactoryOption {
	return func(f *Factory) { f.maxIdleTime = d }
}

// ReapInterval sets how often expired conversations are destroyed.
// Non-positive intervals keep the default of one minute.
func ReapInterval(d time.Duration) FactoryOption {
	return func(f *Factory) {
		if d > 0 {
			f.reapInterval = d
		}
	}
}

// Factory creates the providers of native components.
type Factory struct {
	logger       *zap.Logger
	maxAge       time.Duration
	maxIdleTime  time.Duration
	reapInterval time.Duration
}

var _ provider.ImplementationProviderFactory = (*Factory)(nil)

// NewFactory builds a Factory.
func NewFactory(opts ...FactoryOption) *Factory {
	f := &Factory{logger: zap.NewNop(), reapInterval: time.Minute}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// ImplementationType implements provider.ImplementationProviderFactory.
func (f *Factory) ImplementationType() string { return ImplementationType }

// CreateImplementationProvider implements
// provider.ImplementationProviderFactory.
func (f *Factory) CreateImplementationProvider(cc provider.ComponentContext) (provider.ImplementationProvider, error) {
	c := cc.Component()
	impl, ok := c.Implementation.(*Implementation)
	if !ok {
		return nil, scaerrors.InvalidArgumentErrorf(
			"component %q does not have a native implementation", c.Name)
	}
	if impl.New == nil {
		return nil, scaerrors.InvalidArgumentErrorf(
			"native implementation of component %q has no constructor", c.Name)
	}
	return newImplementationProvider(f, cc, impl)
}
