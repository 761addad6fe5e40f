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
	"context"
	"errors"
	"sync"

	"go.uber.org/sca/api/assembly"
	"go.uber.org/sca/api/domain"
	"go.uber.org/sca/api/invocation"
	"go.uber.org/sca/api/provider"
	"go.uber.org/sca/internal/lifecycle"
	"go.uber.org/sca/scaerrors"
	"go.uber.org/zap"
)

// Resolution is where the target of a reference binding was found.
type Resolution int

const (
	// Unknown means the target has not been looked for yet.
	Unknown Resolution = iota
	// LocalResolved means the target runs in this node.
	LocalResolved
	// RemoteResolved means the target runs in another node.
	RemoteResolved
	// Unresolvable means the domain does not know the target.
	Unresolvable
)

var _resolutionNames = map[Resolution]string{
	Unknown:        "unknown",
	LocalResolved:  "local",
	RemoteResolved: "remote",
	Unresolvable:   "unresolvable",
}

func (r Resolution) String() string {
	if name, ok := _resolutionNames[r]; ok {
		return name
	}
	return "invalid"
}

type referenceProvider struct {
	f       *Factory
	ref     *assembly.EndpointReference
	binding *assembly.SCABinding
	logger  *zap.Logger
	once    *lifecycle.Once

	mu          sync.Mutex
	resolution  Resolution
	distributed provider.ReferenceBindingProvider
}

var _ provider.ReferenceBindingProvider = (*referenceProvider)(nil)

func newReferenceProvider(f *Factory, ref *assembly.EndpointReference) (*referenceProvider, error) {
	binding, ok := ref.Binding.(*assembly.SCABinding)
	if !ok {
		return nil, scaerrors.InvalidArgumentErrorf("reference %v does not use the SCA binding", ref.Name())
	}
	return &referenceProvider{
		f:       f,
		ref:     ref,
		binding: binding,
		logger:  f.logger.With(zap.String("reference", ref.Name())),
		once:    lifecycle.NewOnce(),
	}, nil
}

// Resolution returns the outcome of the latest resolution.
func (p *referenceProvider) Resolution() Resolution {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.resolution
}

// resolve decides where the target runs. It is evaluated on every use since
// dynamic wires, such as callbacks, can be retargeted at any time.
func (p *referenceProvider) resolve() (Resolution, error) {
	r, err := p.locate()

	p.mu.Lock()
	p.resolution = r
	p.mu.Unlock()
	return r, err
}

func (p *referenceProvider) locate() (Resolution, error) {
	if target := p.binding.TargetComponentService; target != nil {
		if target.Unresolved {
			return RemoteResolved, nil
		}
		return LocalResolved, nil
	}

	uri := p.binding.URI()
	if assembly.IsAbsoluteURI(uri) {
		return RemoteResolved, nil
	}
	if p.f.domain == nil || uri == "" {
		return LocalResolved, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.f.registryTimeout)
	defer cancel()

	node, err := p.f.domain.FindServiceNode(ctx, p.f.node.DomainURI, uri, assembly.SCABindingType)
	switch {
	case errors.Is(err, domain.ErrServiceNotKnown):
		return Unresolvable, scaerrors.UnresolvableTargetErrorf(
			"can not resolve component %q reference %q: service %q has not been contributed to the domain",
			p.componentName(), p.referenceName(), uri)
	case errors.Is(err, domain.ErrServiceNotRegistered):
		return RemoteResolved, nil
	case err != nil:
		p.logger.Warn("unable to contact the domain to find the service node, assuming the service is local",
			zap.String("domain", p.f.node.DomainURI),
			zap.String("node", p.f.node.NodeURI),
			zap.String("service", uri),
			zap.Error(err))
		return LocalResolved, nil
	case node == p.f.node.NodeURI:
		return LocalResolved, nil
	default:
		return RemoteResolved, nil
	}
}

// distributedProvider returns the provider carrying calls to remote targets,
// creating it on first use.
func (p *referenceProvider) distributedProvider() (provider.ReferenceBindingProvider, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.distributed != nil {
		return p.distributed, nil
	}

	if !p.contract().IsRemotable() {
		return nil, scaerrors.ActivationErrorf("reference interface not remotable for component %q and reference %q",
			p.componentName(), p.referenceName())
	}
	factory, ok := p.f.distributedFactory()
	if !ok {
		return nil, scaerrors.ActivationErrorf("no distributed SCA binding available for component %q and reference %q",
			p.componentName(), p.referenceName())
	}
	if !p.f.node.IsConfigured() {
		return nil, scaerrors.ActivationErrorf("no distributed domain available for component %q and reference %q",
			p.componentName(), p.referenceName())
	}

	ref := *p.ref
	ref.Binding = &DistributedBinding{SCABinding: p.binding}
	distributed, err := factory.CreateReferenceBindingProvider(&ref)
	if err != nil {
		return nil, scaerrors.Wrap(scaerrors.CodeActivationFailed, err,
			"could not create distributed provider for component %q and reference %q",
			p.componentName(), p.referenceName())
	}

	// Providers created after Start must be started before they are used.
	if p.once.IsRunning() {
		if err := distributed.Start(); err != nil {
			return nil, scaerrors.Wrap(scaerrors.CodeActivationFailed, err,
				"could not start distributed provider for component %q and reference %q",
				p.componentName(), p.referenceName())
		}
	}
	p.distributed = distributed
	return distributed, nil
}

func (p *referenceProvider) CreateInvoker(op *assembly.Operation) (invocation.Invoker, error) {
	r, err := p.resolve()
	if err != nil {
		return nil, err
	}
	if r == RemoteResolved {
		d, err := p.distributedProvider()
		if err != nil {
			return nil, err
		}
		return d.CreateInvoker(op)
	}
	return &localInvoker{p: p, op: op}, nil
}

func (p *referenceProvider) BindingInterfaceContract() *assembly.InterfaceContract {
	if r, err := p.resolve(); err == nil && r == RemoteResolved {
		if d, err := p.distributedProvider(); err == nil {
			return d.BindingInterfaceContract()
		}
	}
	return p.contract()
}

func (p *referenceProvider) SupportsOneWayInvocation() bool {
	if r, err := p.resolve(); err == nil && r == RemoteResolved {
		if d, err := p.distributedProvider(); err == nil {
			return d.SupportsOneWayInvocation()
		}
	}
	return false
}

func (p *referenceProvider) Start() error {
	return p.once.Start(func() error {
		p.mu.Lock()
		d := p.distributed
		p.mu.Unlock()
		if d != nil {
			return d.Start()
		}
		return nil
	})
}

func (p *referenceProvider) Stop() error {
	return p.once.Stop(func() error {
		p.mu.Lock()
		d := p.distributed
		p.mu.Unlock()
		if d != nil {
			return d.Stop()
		}
		return nil
	})
}

func (p *referenceProvider) contract() *assembly.InterfaceContract {
	if p.ref.InterfaceContract != nil {
		return p.ref.InterfaceContract
	}
	if p.ref.Reference != nil {
		return p.ref.Reference.InterfaceContract
	}
	return nil
}

func (p *referenceProvider) componentName() string {
	if p.ref.Component == nil {
		return ""
	}
	return p.ref.Component.Name
}

func (p *referenceProvider) referenceName() string {
	if p.ref.Reference == nil {
		return ""
	}
	return p.ref.Reference.Name
}

// localInvoker hands calls to the chain of a service in this node. The
// target is looked up on each call since it may be activated after the
// reference.
type localInvoker struct {
	p  *referenceProvider
	op *assembly.Operation
}

func (i *localInvoker) Invoke(ctx context.Context, msg *invocation.Message) *invocation.Message {
	next, ok := i.target()
	if !ok {
		return invocation.NewFault(scaerrors.ServiceUnavailableErrorf(
			"no service available for component %q reference %q binding URI %q operation %q",
			i.p.componentName(), i.p.referenceName(), i.p.binding.URI(), i.op.Name))
	}
	return next.Invoke(ctx, msg)
}

func (i *localInvoker) target() (invocation.Invoker, bool) {
	services := i.p.f.services
	if services == nil {
		return nil, false
	}

	component, service := i.p.binding.TargetComponent, i.p.binding.TargetComponentService
	if service == nil {
		var ok bool
		component, service, ok = services.LookupService(i.p.binding.URI())
		if !ok {
			return nil, false
		}
	}
	return services.ServiceInvoker(component, service, i.op)
}
