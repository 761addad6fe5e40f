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
	"strings"
	"sync"
	"time"

	"go.uber.org/net/metrics"
	"go.uber.org/sca/api/assembly"
	"go.uber.org/sca/api/domain"
	"go.uber.org/sca/api/invocation"
	"go.uber.org/sca/api/provider"
	scabinding "go.uber.org/sca/binding/sca"
	"go.uber.org/sca/implementation/native"
	"go.uber.org/sca/internal/componenttype"
	"go.uber.org/sca/internal/lifecycle"
	"go.uber.org/sca/internal/observability"
	"go.uber.org/sca/internal/scope"
	"go.uber.org/sca/internal/tracinginterceptor"
	"go.uber.org/sca/internal/wire"
	"go.uber.org/sca/monitor"
	"go.uber.org/sca/scaerrors"
	"go.uber.org/zap"
)

const _defaultRegistryTimeout = time.Second

// Runtime deploys composites, activates their components and wires
// references to services.
//
// Composites are deployed before the runtime is started. Once started, the
// services of the deployed components can be called through Service, and
// their references through Reference.
type Runtime struct {
	name            string
	node            domain.Node
	registry        *provider.Registry
	domain          domain.Registry
	registryTimeout time.Duration
	logger          *zap.Logger
	monitor         monitor.Monitor
	conversations   *scope.Manager
	dispatcher      *wire.AsyncDispatcher
	once            *lifecycle.Once
	pusher          *metricsPusher

	// System interceptors added to every reference and service wire.
	referenceInterceptors []invocation.PhasedInterceptor
	serviceInterceptors   []invocation.PhasedInterceptor

	mu          sync.RWMutex
	composites  []*assembly.Composite
	components  []*runtimeComponent
	byURI       map[string]*runtimeComponent
	byComponent map[*assembly.Component]*runtimeComponent
	started     []*runtimeComponent
	registered  []registration

	// Components implemented by composites, by URI.
	compositeComponents map[string]*assembly.Component
}

var _ scabinding.ServiceLocator = (*Runtime)(nil)

// NewRuntime builds a new Runtime with the given configuration.
func NewRuntime(cfg Config) (*Runtime, error) {
	if cfg.Name == "" {
		return nil, scaerrors.InvalidArgumentErrorf("runtime name is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("runtime", cfg.Name))

	registry := cfg.Registry
	if registry == nil {
		registry = provider.NewRegistry()
	}
	m := cfg.Monitor
	if m == nil {
		m = monitor.NewCollector(logger)
	}
	meter := cfg.Metrics
	var root *metrics.Root
	if meter == nil {
		root = metrics.New()
		meter = root.Scope()
	}
	timeout := cfg.RegistryTimeout
	if timeout == 0 {
		timeout = _defaultRegistryTimeout
	}

	rt := &Runtime{
		name:            cfg.Name,
		node:            domain.Node{DomainURI: cfg.DomainURI, NodeURI: cfg.NodeURI},
		registry:        registry,
		domain:          cfg.Domain,
		registryTimeout: timeout,
		logger:          logger,
		monitor:         m,
		conversations:   scope.NewManager(),
		dispatcher:      wire.NewAsyncDispatcher(logger),
		once:            lifecycle.NewOnce(),
		pusher:          newMetricsPusher(root, cfg.Tally, logger),
		byURI:           make(map[string]*runtimeComponent),
		byComponent:     make(map[*assembly.Component]*runtimeComponent),

		compositeComponents: make(map[string]*assembly.Component),
	}

	rt.referenceInterceptors = []invocation.PhasedInterceptor{
		{Phase: invocation.PhaseReference, Interceptor: tracinginterceptor.New(tracinginterceptor.Params{
			Tracer: cfg.Tracer,
			Logger: logger,
		})},
		{Phase: invocation.PhaseReference, Interceptor: observability.NewInterceptor(observability.Config{
			Logger:    logger,
			Scope:     meter,
			Direction: observability.DirectionReference,
			Levels:    cfg.Logging.Levels.forDirection(cfg.Logging.Levels.Reference),
		})},
	}
	rt.serviceInterceptors = []invocation.PhasedInterceptor{
		{Phase: invocation.PhaseServiceBinding, Interceptor: tracinginterceptor.New(tracinginterceptor.Params{
			Tracer:  cfg.Tracer,
			Logger:  logger,
			Service: true,
		})},
		{Phase: invocation.PhaseServiceBinding, Interceptor: observability.NewInterceptor(observability.Config{
			Logger:    logger,
			Scope:     meter,
			Direction: observability.DirectionService,
			Levels:    cfg.Logging.Levels.forDirection(cfg.Logging.Levels.Service),
		})},
	}

	if _, ok := registry.BindingProviderFactory(assembly.SCABindingType); !ok {
		opts := []scabinding.FactoryOption{
			scabinding.Registry(registry),
			scabinding.Logger(logger),
			scabinding.RegistryTimeout(timeout),
		}
		if cfg.Domain != nil {
			opts = append(opts, scabinding.Domain(cfg.Domain, rt.node))
		}
		if err := registry.RegisterBinding(scabinding.NewFactory(rt, opts...)); err != nil {
			return nil, err
		}
	}
	if _, ok := registry.ImplementationProviderFactory(native.ImplementationType); !ok {
		f := native.NewFactory(
			native.Logger(logger),
			native.ConversationMaxAge(cfg.Conversations.MaxAge),
			native.ConversationMaxIdleTime(cfg.Conversations.MaxIdleTime),
			native.ReapInterval(cfg.Conversations.ReapInterval),
		)
		if err := registry.RegisterImplementation(f); err != nil {
			return nil, err
		}
	}
	return rt, nil
}

// Name returns the name of the runtime.
func (rt *Runtime) Name() string { return rt.name }

// Monitor returns the monitor that receives deployment problems.
func (rt *Runtime) Monitor() monitor.Monitor { return rt.monitor }

// Registry returns the provider registry of the runtime.
func (rt *Runtime) Registry() *provider.Registry { return rt.registry }

// Start activates the deployed components: targets before the components
// referencing them. If any component fails to activate, the components
// activated so far are stopped again.
func (rt *Runtime) Start() error {
	return rt.once.Start(rt.start)
}

// Stop deactivates the components in reverse activation order.
func (rt *Runtime) Stop() error {
	return rt.once.Stop(rt.stop)
}

// EndConversation ends the conversation with the given id in every
// component of the runtime.
func (rt *Runtime) EndConversation(id string) {
	rt.conversations.End(id)
}

// Service returns a proxy to the named service. The name is either
// "component/service", the URI of a component with a single service, or the
// name of a service of a deployed composite.
func (rt *Runtime) Service(name string) (*Proxy, error) {
	component, service, ok := rt.LookupService(name)
	if !ok {
		return nil, scaerrors.NotFoundErrorf("service %q not found in runtime %q", name, rt.name)
	}
	return newProxy(name, service.InterfaceContract, rt.conversations, func() (*wire.Wire, error) {
		if w, ok := rt.serviceWire(component, service); ok {
			return w, nil
		}
		return nil, scaerrors.ServiceUnavailableErrorf("service %q of runtime %q is not running", name, rt.name)
	}), nil
}

// Reference returns a proxy to the named reference of the component with
// the given URI. Calls go to the reference's first target.
func (rt *Runtime) Reference(componentURI, reference string) (*Proxy, error) {
	rt.mu.RLock()
	c, ok := rt.byURI[componentURI]
	rt.mu.RUnlock()
	if !ok {
		return nil, scaerrors.NotFoundErrorf("component %q not found in runtime %q", componentURI, rt.name)
	}
	return c.referenceProxy(reference)
}

// ServiceInvoker implements binding/sca.ServiceLocator.
func (rt *Runtime) ServiceInvoker(component *assembly.Component, service *assembly.ComponentService, op *assembly.Operation) (invocation.Invoker, bool) {
	w, ok := rt.serviceWire(component, service)
	if !ok {
		return nil, false
	}
	chain, ok := w.Chain(op)
	if !ok {
		return nil, false
	}
	return chain, true
}

// LookupService implements binding/sca.ServiceLocator.
func (rt *Runtime) LookupService(name string) (*assembly.Component, *assembly.ComponentService, bool) {
	rt.mu.RLock()
	defer rt.mu.RUnlock()

	if c, s, ok := rt.lookupComponentService(name, ""); ok {
		return c, s, true
	}
	if i := strings.LastIndexByte(name, '/'); i > 0 {
		if c, s, ok := rt.lookupComponentService(name[:i], name[i+1:]); ok {
			return c, s, true
		}
	}
	for _, composite := range rt.composites {
		cs := composite.Service(name)
		if cs == nil || !cs.IsResolved() || cs.PromotedComponent == nil {
			continue
		}
		if c, s, ok := componenttype.ResolveLeafService(cs.PromotedComponent, cs.PromotedService); ok {
			return c, s, true
		}
	}
	return nil, nil, false
}

// lookupComponentService finds the named service of the component with the
// given URI, or its single service if the name is empty. Services of
// composite implemented components are followed down to the atomic
// component implementing them.
func (rt *Runtime) lookupComponentService(uri, name string) (*assembly.Component, *assembly.ComponentService, bool) {
	var c *assembly.Component
	if rc, ok := rt.byURI[uri]; ok {
		c = rc.component
	} else if c, ok = rt.compositeComponents[uri]; !ok {
		return nil, nil, false
	}

	var s *assembly.ComponentService
	if name == "" {
		s = c.SingleService()
	} else {
		s = c.Service(name)
	}
	if s == nil {
		return nil, nil, false
	}
	return componenttype.ResolveLeafService(c, s)
}

func (rt *Runtime) serviceWire(component *assembly.Component, service *assembly.ComponentService) (*wire.Wire, bool) {
	rt.mu.RLock()
	defer rt.mu.RUnlock()

	c, ok := rt.byComponent[component]
	if !ok {
		return nil, false
	}
	w, ok := c.serviceWires[service]
	return w, ok
}

func (rt *Runtime) policies() []provider.PolicyProviderFactory {
	return rt.registry.PolicyProviderFactories()
}
