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
	"go.uber.org/sca/scaerrors"
	"go.uber.org/zap"
)

// registration is a service registered with the domain by this runtime.
type registration struct {
	serviceURI  string
	bindingType string
}

func (rt *Runtime) start() error {
	rt.mu.RLock()
	order := activationOrder(rt.components)
	rt.mu.RUnlock()

	started := make([]*runtimeComponent, 0, len(order))
	for _, c := range order {
		if err := c.start(); err != nil {
			for i := len(started) - 1; i >= 0; i-- {
				err = multierr.Append(err, started[i].stop())
			}
			return scaerrors.Wrap(scaerrors.CodeActivationFailed, err,
				"could not start runtime %q: component %q failed to activate", rt.name, c.component.URI)
		}
		started = append(started, c)
	}

	rt.mu.Lock()
	rt.started = started
	rt.mu.Unlock()

	rt.register(started)
	rt.pusher.Start()
	rt.logger.Info("runtime started", zap.Int("components", len(started)))
	return nil
}

func (rt *Runtime) stop() error {
	rt.mu.Lock()
	started := rt.started
	rt.started = nil
	rt.mu.Unlock()

	rt.pusher.Stop()
	err := rt.unregister()
	for i := len(started) - 1; i >= 0; i-- {
		err = multierr.Append(err, started[i].stopBindings())
	}
	// One-way calls still in flight need their implementations.
	rt.dispatcher.Wait()
	for i := len(started) - 1; i >= 0; i-- {
		err = multierr.Append(err, started[i].stopImplementation())
	}

	if err != nil {
		rt.logger.Error("runtime stopped with errors", zap.Error(err))
		return err
	}
	rt.logger.Info("runtime stopped")
	return nil
}

// activationOrder sorts components so that the targets of a component's
// references come before it. Components in a reference cycle are ordered
// by deployment order. The result only depends on the deployed assembly.
func activationOrder(components []*runtimeComponent) []*runtimeComponent {
	order := make([]*runtimeComponent, 0, len(components))
	visited := make(map[*runtimeComponent]struct{}, len(components))

	var visit func(c *runtimeComponent)
	visit = func(c *runtimeComponent) {
		if _, ok := visited[c]; ok {
			return
		}
		visited[c] = struct{}{}
		for _, t := range c.targets() {
			visit(t)
		}
		order = append(order, c)
	}
	for _, c := range components {
		visit(c)
	}
	return order
}

// register announces the SCA endpoints of the started components to the
// domain. Failures are logged; references from other nodes will not find
// the services that failed to register.
func (rt *Runtime) register(started []*runtimeComponent) {
	if rt.domain == nil || !rt.node.IsConfigured() {
		return
	}

	var registered []registration
	for _, c := range started {
		for _, ep := range c.services {
			if ep.Binding.Type() != assembly.SCABindingType {
				continue
			}
			uris := []string{ep.URI}
			if c.component.SingleService() == ep.Service {
				uris = append(uris, c.component.URI)
			}
			for _, uri := range uris {
				if err := rt.registerService(uri, ep.Binding); err != nil {
					rt.logger.Warn("failed to register service with the domain",
						zap.String("service", uri),
						zap.String("domain", rt.node.DomainURI),
						zap.Error(err))
					continue
				}
				registered = append(registered, registration{serviceURI: uri, bindingType: ep.Binding.Type()})
			}
		}
	}

	rt.mu.Lock()
	rt.registered = registered
	rt.mu.Unlock()
}

func (rt *Runtime) registerService(uri string, b assembly.Binding) error {
	ctx, cancel := context.WithTimeout(context.Background(), rt.registryTimeout)
	defer cancel()
	return rt.domain.RegisterService(ctx, rt.node.DomainURI, rt.node.NodeURI, uri, b.Type(), b.URI())
}

func (rt *Runtime) unregister() error {
	rt.mu.Lock()
	registered := rt.registered
	rt.registered = nil
	rt.mu.Unlock()

	var err error
	for _, r := range registered {
		ctx, cancel := context.WithTimeout(context.Background(), rt.registryTimeout)
		err = multierr.Append(err, rt.domain.UnregisterService(ctx, rt.node.DomainURI, rt.node.NodeURI, r.serviceURI, r.bindingType))
		cancel()
	}
	return err
}
