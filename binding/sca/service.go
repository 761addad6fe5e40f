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
	"go.uber.org/sca/api/assembly"
	"go.uber.org/sca/api/invocation"
	"go.uber.org/sca/api/provider"
	"go.uber.org/sca/internal/lifecycle"
	"go.uber.org/sca/scaerrors"
)

// serviceProvider exposes a service over the SCA binding. Local callers
// reach the service through the ServiceLocator; if the service is remotable
// and the node is part of a domain, it is also exposed through the
// distributed binding.
type serviceProvider struct {
	ep          *assembly.Endpoint
	distributed provider.ServiceBindingProvider
	once        *lifecycle.Once
}

var _ provider.ServiceBindingProvider = (*serviceProvider)(nil)

func newServiceProvider(f *Factory, ep *assembly.Endpoint, target invocation.Invoker) (*serviceProvider, error) {
	p := &serviceProvider{ep: ep, once: lifecycle.NewOnce()}

	factory, ok := f.distributedFactory()
	if !ok || !f.node.IsConfigured() || !ep.InterfaceContract.IsRemotable() {
		return p, nil
	}
	binding, ok := ep.Binding.(*assembly.SCABinding)
	if !ok {
		return nil, scaerrors.InvalidArgumentErrorf("service %v does not use the SCA binding", ep.Name())
	}

	distributed := *ep
	distributed.Binding = &DistributedBinding{SCABinding: binding}
	d, err := factory.CreateServiceBindingProvider(&distributed, target)
	if err != nil {
		return nil, scaerrors.Wrap(scaerrors.CodeActivationFailed, err,
			"could not create distributed provider for service %v", ep.Name())
	}
	p.distributed = d
	return p, nil
}

func (p *serviceProvider) BindingInterfaceContract() *assembly.InterfaceContract {
	if p.distributed != nil {
		return p.distributed.BindingInterfaceContract()
	}
	return p.ep.InterfaceContract
}

func (p *serviceProvider) SupportsOneWayInvocation() bool {
	return false
}

func (p *serviceProvider) Start() error {
	return p.once.Start(func() error {
		if p.distributed != nil {
			return p.distributed.Start()
		}
		return nil
	})
}

func (p *serviceProvider) Stop() error {
	return p.once.Stop(func() error {
		if p.distributed != nil {
			return p.distributed.Stop()
		}
		return nil
	})
}
