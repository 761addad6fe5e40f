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

// Package sca implements the default SCA binding.
//
// A reference using the SCA binding is wired to its target without naming a
// transport. The reference provider decides on every use whether the target
// runs in this node, in which case calls go straight to the target service's
// chain, or in another node of the domain, in which case calls are handed to
// the provider registered for DistributedBindingType.
package sca

import (
	"time"

	"go.uber.org/sca/api/assembly"
	"go.uber.org/sca/api/domain"
	"go.uber.org/sca/api/invocation"
	"go.uber.org/sca/api/provider"
	"go.uber.org/zap"
)

// DistributedBindingType is the binding type of the provider carrying SCA
// binding calls between nodes.
const DistributedBindingType = "sca.distributed"

const _defaultRegistryTimeout = time.Second

// ServiceLocator finds the services running in this node.
type ServiceLocator interface {
	// ServiceInvoker returns the invoker for op of the given service's wire.
	// It returns false if the service has no running wire.
	ServiceInvoker(component *assembly.Component, service *assembly.ComponentService, op *assembly.Operation) (invocation.Invoker, bool)

	// LookupService finds a service by its "component/service" or
	// "component" name.
	LookupService(name string) (*assembly.Component, *assembly.ComponentService, bool)
}

// FactoryOption customizes a Factory.
type FactoryOption func(*Factory)

// Registry sets the provider registry searched for the distributed binding.
func Registry(r *provider.Registry) FactoryOption {
	return func(f *Factory) {
		f.registry = r
	}
}

// Domain makes the factory resolve unwired targets through the domain.
func Domain(r domain.Registry, node domain.Node) FactoryOption {
	return func(f *Factory) {
		f.domain = r
		f.node = node
	}
}

// Logger sets the logger of the factory and its providers.
func Logger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// RegistryTimeout bounds every domain registry lookup. Defaults to one
// second.
func RegistryTimeout(d time.Duration) FactoryOption {
	return func(f *Factory) {
		f.registryTimeout = d
	}
}

// Factory is the provider.BindingProviderFactory of the SCA binding.
type Factory struct {
	services        ServiceLocator
	registry        *provider.Registry
	domain          domain.Registry
	node            domain.Node
	logger          *zap.Logger
	registryTimeout time.Duration
}

var _ provider.BindingProviderFactory = (*Factory)(nil)

// NewFactory builds the SCA binding factory for the services of one node.
func NewFactory(services ServiceLocator, opts ...FactoryOption) *Factory {
	f := &Factory{
		services:        services,
		registry:        provider.NewRegistry(),
		logger:          zap.NewNop(),
		registryTimeout: _defaultRegistryTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// BindingType implements provider.BindingProviderFactory.
func (f *Factory) BindingType() string { return assembly.SCABindingType }

// CreateReferenceBindingProvider implements provider.BindingProviderFactory.
func (f *Factory) CreateReferenceBindingProvider(ref *assembly.EndpointReference) (provider.ReferenceBindingProvider, error) {
	return newReferenceProvider(f, ref)
}

// CreateServiceBindingProvider implements provider.BindingProviderFactory.
func (f *Factory) CreateServiceBindingProvider(ep *assembly.Endpoint, target invocation.Invoker) (provider.ServiceBindingProvider, error) {
	return newServiceProvider(f, ep, target)
}

func (f *Factory) distributedFactory() (provider.BindingProviderFactory, bool) {
	if f.registry == nil {
		return nil, false
	}
	return f.registry.BindingProviderFactory(DistributedBindingType)
}
