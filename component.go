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

	"go.uber.org/multierr"
	"go.uber.org/sca/api/assembly"
	"go.uber.org/sca/api/invocation"
	"go.uber.org/sca/api/provider"
	"go.uber.org/sca/internal/errorsync"
	"go.uber.org/sca/internal/wire"
	"go.uber.org/sca/scaerrors"
	"go.uber.org/zap"
)

// runtimeComponent is an atomic component deployed to a runtime, along
// with the providers and wires created when it is activated.
//
// Fields set during activation are guarded by the runtime lock.
type runtimeComponent struct {
	rt        *Runtime
	component *assembly.Component
	logger    *zap.Logger

	// Set at deployment.
	services   []*assembly.Endpoint
	references []*assembly.EndpointReference

	impl             provider.ImplementationProvider
	serviceWires     map[*assembly.ComponentService]*wire.Wire
	serviceProviders []provider.ServiceBindingProvider
	refProviders     []provider.ReferenceBindingProvider
	referenceWires   map[string][]*wire.Wire
	// callbackWires are the reference wires with callback chains, found by
	// the reference messages are sent from.
	callbackWires    map[*assembly.EndpointReference]*wire.Wire
}

var _ provider.ComponentContext = (*runtimeComponent)(nil)

func newRuntimeComponent(rt *Runtime, c *assembly.Component) *runtimeComponent {
	return &runtimeComponent{
		rt:        rt,
		component: c,
		logger:    rt.logger.With(zap.String("component", c.URI)),
	}
}

// Component implements provider.ComponentContext.
func (c *runtimeComponent) Component() *assembly.Component { return c.component }

// Conversations implements provider.ComponentContext.
func (c *runtimeComponent) Conversations() provider.ConversationManager {
	return c.rt.conversations
}

// Property implements provider.ComponentContext.
func (c *runtimeComponent) Property(name string) (interface{}, bool) {
	p := c.component.Property(name)
	if p == nil {
		return nil, false
	}
	return p.Value, true
}

// Reference implements provider.ComponentContext.
func (c *runtimeComponent) Reference(name string) (provider.Caller, error) {
	return c.referenceProxy(name)
}

// Callback implements provider.ComponentContext.
//
// Callbacks go back over the wire of the reference that sent the request,
// carrying its conversation and callback ids.
func (c *runtimeComponent) Callback(ctx context.Context) (provider.Caller, error) {
	msg := invocation.MessageFromContext(ctx)
	if msg == nil || msg.From == nil {
		return nil, scaerrors.InvalidArgumentErrorf(
			"component %q is not serving a call made through a reference", c.component.URI)
	}
	from := msg.From
	contract := from.InterfaceContract
	if contract == nil && from.Reference != nil {
		contract = from.Reference.InterfaceContract
	}
	if contract == nil || contract.CallbackInterface == nil {
		return nil, scaerrors.InvalidArgumentErrorf("reference %q has no callback interface", from.Name())
	}

	p := newProxy(from.Name()+"/callback", contract, c.rt.conversations, func() (*wire.Wire, error) {
		c.rt.mu.RLock()
		defer c.rt.mu.RUnlock()
		if source, ok := c.rt.byComponent[from.Component]; ok {
			if w, ok := source.callbackWires[from]; ok {
				return w, nil
			}
		}
		return nil, scaerrors.ServiceUnavailableErrorf(
			"callbacks of reference %q can not be delivered: its component is not running", from.Name())
	})
	p.callback = true
	p.headers = callbackHeaders(msg.Headers)
	return p, nil
}

func callbackHeaders(h invocation.Headers) invocation.Headers {
	var out invocation.Headers
	for _, k := range []string{invocation.ConversationIDHeader, invocation.CallbackIDHeader} {
		if v, ok := h.Get(k); ok {
			out = out.With(k, v)
		}
	}
	return out
}

func (c *runtimeComponent) referenceProxy(name string) (*Proxy, error) {
	r := c.component.Reference(name)
	if r == nil {
		return nil, scaerrors.NotFoundErrorf("component %q has no reference %q", c.component.URI, name)
	}
	return newProxy(c.component.URI+"/"+name, r.InterfaceContract, c.rt.conversations, func() (*wire.Wire, error) {
		c.rt.mu.RLock()
		wires := c.referenceWires[name]
		c.rt.mu.RUnlock()
		if len(wires) == 0 {
			return nil, scaerrors.ServiceUnavailableErrorf(
				"reference %q of component %q is not wired to a running service", name, c.component.URI)
		}
		return wires[0], nil
	}), nil
}

// targets returns the deployed components this component's references are
// wired to, in reference order.
func (c *runtimeComponent) targets() []*runtimeComponent {
	var targets []*runtimeComponent
	for _, ref := range c.references {
		if ref.Target == nil {
			continue
		}
		if t, ok := c.rt.byComponent[ref.Target.Component]; ok {
			targets = append(targets, t)
		}
	}
	return targets
}

// start activates the component. Whatever was started before a failure is
// stopped again before start returns.
func (c *runtimeComponent) start() (err error) {
	defer func() {
		if err != nil {
			err = multierr.Append(err, c.stop())
		}
	}()

	if err := c.startImplementation(); err != nil {
		return err
	}
	for _, ep := range c.services {
		if err := c.startService(ep); err != nil {
			return err
		}
	}
	for _, ref := range c.references {
		if err := c.startReference(ref); err != nil {
			return err
		}
	}
	c.logger.Debug("component started",
		zap.Int("services", len(c.services)),
		zap.Int("references", len(c.references)))
	return nil
}

func (c *runtimeComponent) startImplementation() error {
	implType := c.component.Implementation.ImplementationType()
	factory, ok := c.rt.registry.ImplementationProviderFactory(implType)
	if !ok {
		return scaerrors.ActivationErrorf(
			"no implementation provider registered for type %q of component %q", implType, c.component.URI)
	}
	impl, err := factory.CreateImplementationProvider(c)
	if err != nil {
		return scaerrors.Wrap(scaerrors.CodeActivationFailed, err,
			"could not create implementation provider of component %q", c.component.URI)
	}
	if err := impl.Start(); err != nil {
		return scaerrors.Wrap(scaerrors.CodeActivationFailed, err,
			"could not start implementation provider of component %q", c.component.URI)
	}

	c.rt.mu.Lock()
	c.impl = impl
	c.rt.mu.Unlock()
	return nil
}

// startService builds the wire of ep's service, shared by all its
// bindings, and exposes it over ep's binding.
func (c *runtimeComponent) startService(ep *assembly.Endpoint) error {
	c.rt.mu.RLock()
	w, ok := c.serviceWires[ep.Service]
	c.rt.mu.RUnlock()

	if !ok {
		var err error
		w, err = c.buildServiceWire(ep)
		if err != nil {
			return err
		}
		c.rt.mu.Lock()
		if c.serviceWires == nil {
			c.serviceWires = make(map[*assembly.ComponentService]*wire.Wire)
		}
		c.serviceWires[ep.Service] = w
		c.rt.mu.Unlock()
	}

	bindingType := ep.Binding.Type()
	factory, ok := c.rt.registry.BindingProviderFactory(bindingType)
	if !ok {
		return scaerrors.ActivationErrorf("no binding provider registered for type %q of service %q",
			bindingType, ep.URI)
	}
	p, err := factory.CreateServiceBindingProvider(ep, invocation.InvokerFunc(w.Invoke))
	if err != nil {
		return scaerrors.Wrap(scaerrors.CodeActivationFailed, err,
			"could not create %q binding provider of service %q", bindingType, ep.URI)
	}
	if err := p.Start(); err != nil {
		return scaerrors.Wrap(scaerrors.CodeActivationFailed, err,
			"could not start %q binding provider of service %q", bindingType, ep.URI)
	}

	c.rt.mu.Lock()
	c.serviceProviders = append(c.serviceProviders, p)
	c.rt.mu.Unlock()
	return nil
}

func (c *runtimeComponent) buildServiceWire(ep *assembly.Endpoint) (*wire.Wire, error) {
	var policies []wire.PolicyAttachment
	for _, f := range c.rt.policies() {
		policies = append(policies,
			wire.PolicyAttachment{Phase: invocation.PhaseServicePolicy, Provider: f.CreateServicePolicyProvider(ep)},
			wire.PolicyAttachment{Phase: invocation.PhaseImplementationPolicy, Provider: f.CreateImplementationPolicyProvider(c.component)},
		)
	}

	service := ep.Service
	return wire.Build(wire.Params{
		Target:         ep,
		SourceContract: service.InterfaceContract,
		Invokers: func(op *assembly.Operation) (invocation.Invoker, error) {
			return c.impl.CreateInvoker(service, op)
		},
		SupportsOneWay: c.impl.SupportsOneWayInvocation(),
		OneWayPhase:    invocation.PhaseServiceInterface,
		Dispatcher:     c.rt.dispatcher,
		Interceptors:   c.rt.serviceInterceptors,
		Policies:       policies,
	})
}

func (c *runtimeComponent) startReference(ref *assembly.EndpointReference) error {
	bindingType := ref.Binding.Type()
	factory, ok := c.rt.registry.BindingProviderFactory(bindingType)
	if !ok {
		return scaerrors.ActivationErrorf("no binding provider registered for type %q of reference %q",
			bindingType, ref.Name())
	}
	p, err := factory.CreateReferenceBindingProvider(ref)
	if err != nil {
		return scaerrors.Wrap(scaerrors.CodeActivationFailed, err,
			"could not create %q binding provider of reference %q", bindingType, ref.Name())
	}
	if err := p.Start(); err != nil {
		return scaerrors.Wrap(scaerrors.CodeActivationFailed, err,
			"could not start %q binding provider of reference %q", bindingType, ref.Name())
	}
	c.rt.mu.Lock()
	c.refProviders = append(c.refProviders, p)
	c.rt.mu.Unlock()

	var policies []wire.PolicyAttachment
	for _, f := range c.rt.policies() {
		policies = append(policies, wire.PolicyAttachment{
			Phase:    invocation.PhaseReferencePolicy,
			Provider: f.CreateReferencePolicyProvider(ref),
		})
	}

	sourceContract := ref.InterfaceContract
	if sourceContract == nil {
		sourceContract = ref.Reference.InterfaceContract
	}
	params := wire.Params{
		Source:         ref,
		Target:         ref.Target,
		SourceContract: sourceContract,
		TargetContract: p.BindingInterfaceContract(),
		Invokers:       p.CreateInvoker,
		SupportsOneWay: p.SupportsOneWayInvocation(),
		OneWayPhase:    invocation.PhaseReferenceBinding,
		Dispatcher:     c.rt.dispatcher,
		Interceptors:   c.rt.referenceInterceptors,
		Policies:       policies,
	}
	if len(sourceContract.CallbackOperations()) > 0 {
		service := callbackService(ref, sourceContract)
		params.CallbackInvokers = func(op *assembly.Operation) (invocation.Invoker, error) {
			return c.impl.CreateInvoker(service, op)
		}
		params.CallbackSupportsOneWay = c.impl.SupportsOneWayInvocation()
	}
	w, err := wire.Build(params)
	if err != nil {
		return err
	}

	name := ref.Reference.Name
	c.rt.mu.Lock()
	if c.referenceWires == nil {
		c.referenceWires = make(map[string][]*wire.Wire)
	}
	c.referenceWires[name] = append(c.referenceWires[name], w)
	if len(w.CallbackChains()) > 0 {
		if c.callbackWires == nil {
			c.callbackWires = make(map[*assembly.EndpointReference]*wire.Wire)
		}
		c.callbackWires[ref] = w
	}
	c.rt.mu.Unlock()
	return nil
}

// callbackService is the service of the reference's component that
// receives the callbacks of ref: the callback service named after the
// reference if declared, or one offering the callback interface.
func callbackService(ref *assembly.EndpointReference, contract *assembly.InterfaceContract) *assembly.ComponentService {
	name := ref.Reference.Name
	if s := ref.Component.Service(name); s != nil && s.ForCallback {
		return s
	}
	return &assembly.ComponentService{
		Contract: assembly.Contract{
			Name:              name,
			InterfaceContract: &assembly.InterfaceContract{Interface: contract.CallbackInterface},
		},
		ForCallback: true,
	}
}

// stop deactivates the component completely.
func (c *runtimeComponent) stop() error {
	return multierr.Append(c.stopBindings(), c.stopImplementation())
}

// stopBindings stops the binding providers of the component and drops its
// wires, after which calls to its services fail as unavailable.
func (c *runtimeComponent) stopBindings() error {
	c.rt.mu.Lock()
	refProviders, serviceProviders := c.refProviders, c.serviceProviders
	c.refProviders, c.serviceProviders = nil, nil
	c.referenceWires, c.serviceWires, c.callbackWires = nil, nil, nil
	c.rt.mu.Unlock()

	var wait errorsync.ErrorWaiter
	for _, p := range refProviders {
		wait.Submit(p.Stop)
	}
	for _, p := range serviceProviders {
		wait.Submit(p.Stop)
	}
	return wait.Wait()
}

func (c *runtimeComponent) stopImplementation() error {
	c.rt.mu.Lock()
	impl := c.impl
	c.impl = nil
	c.rt.mu.Unlock()

	if impl == nil {
		return nil
	}
	return impl.Stop()
}
