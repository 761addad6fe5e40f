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

	"go.uber.org/multierr"
	"go.uber.org/sca/api/assembly"
	"go.uber.org/sca/internal/componenttype"
	"go.uber.org/sca/internal/lifecycle"
	"go.uber.org/sca/monitor"
	"go.uber.org/sca/scaerrors"
)

// Deploy adds composite to the runtime. It must be called before Start.
//
// Every problem found in the composite is reported to the runtime's
// monitor. Deploy returns the error severity problems combined; the parts of
// the composite they do not affect are deployed anyway.
func (rt *Runtime) Deploy(composite *assembly.Composite) error {
	if composite == nil {
		return scaerrors.InvalidArgumentErrorf("can not deploy a nil composite to runtime %q", rt.name)
	}
	if state := rt.once.State(); state != lifecycle.Idle {
		return scaerrors.FailedPreconditionErrorf(
			"can not deploy composite %q to runtime %q: runtime is %v", composite.Name, rt.name, state)
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()

	for _, deployed := range rt.composites {
		if deployed == composite {
			return scaerrors.FailedPreconditionErrorf(
				"composite %q is already deployed to runtime %q", composite.Name, rt.name)
		}
	}

	rec := &problemRecorder{next: rt.monitor}
	componenttype.NewBuilder(rec).Build(composite)

	d := &deployer{
		rt:         rt,
		monitor:    rec,
		targets:    make(map[*assembly.ComponentReference][]target),
		overridden: make(map[*assembly.ComponentReference]bool),
	}
	d.index(composite, "", make(map[*assembly.Composite]struct{}))
	d.wire(composite, make(map[*assembly.Composite]struct{}))
	for _, c := range d.components {
		d.serviceEndpoints(c)
	}
	for _, c := range d.components {
		d.referenceEndpoints(c)
	}

	rt.composites = append(rt.composites, composite)
	rt.components = append(rt.components, d.components...)

	if rec.errors == nil {
		return nil
	}
	return scaerrors.Wrap(scaerrors.CodeInvalidArgument, rec.errors,
		"composite %q deployed to runtime %q with problems", composite.Name, rt.name)
}

// problemRecorder forwards problems to the runtime's monitor and keeps the
// errors among them.
type problemRecorder struct {
	next   monitor.Monitor
	errors error
}

func (r *problemRecorder) Problem(p monitor.Problem) {
	r.next.Problem(p)
	if p.Severity == monitor.SeverityError {
		r.errors = multierr.Append(r.errors, p)
	}
}

// target is a service a reference is wired to. Targets that are not
// deployed here only have a name, resolved through the domain when called.
type target struct {
	name      string
	component *assembly.Component
	service   *assembly.ComponentService
}

// deployer holds the state of a single Deploy. The runtime lock is held
// for its whole lifetime.
type deployer struct {
	rt         *Runtime
	monitor    monitor.Monitor
	components []*runtimeComponent

	targets map[*assembly.ComponentReference][]target

	// overridden references were wired by the component of an enclosing
	// composite; their own targets are ignored.
	overridden map[*assembly.ComponentReference]bool
}

// index gives every component its URI and registers the atomic ones.
func (d *deployer) index(composite *assembly.Composite, prefix string, inProgress map[*assembly.Composite]struct{}) {
	if _, ok := inProgress[composite]; ok {
		return
	}
	inProgress[composite] = struct{}{}
	defer delete(inProgress, composite)

	for _, c := range composite.Components {
		if c.Implementation == nil {
			continue
		}
		c.URI = prefix + c.Name
		if inner, ok := c.Implementation.(*assembly.Composite); ok {
			d.rt.compositeComponents[c.URI] = c
			d.index(inner, c.URI+"/", inProgress)
			continue
		}

		if _, ok := d.rt.byComponent[c]; ok {
			monitor.Error(d.monitor, composite.Name, monitor.CategoryAssembly,
				monitor.DuplicateComponentName, c.URI, composite.Name)
			continue
		}
		if _, ok := d.rt.byURI[c.URI]; ok {
			// Duplicates within the composite were reported by the
			// component type builder already.
			if !d.isLocal(c) {
				monitor.Error(d.monitor, composite.Name, monitor.CategoryAssembly,
					monitor.DuplicateComponentName, c.URI, composite.Name)
			}
			continue
		}

		rc := newRuntimeComponent(d.rt, c)
		d.components = append(d.components, rc)
		d.rt.byURI[c.URI] = rc
		d.rt.byComponent[c] = rc
	}
}

// isLocal reports whether the component registered under c's URI belongs
// to the composite being deployed.
func (d *deployer) isLocal(c *assembly.Component) bool {
	for _, rc := range d.components {
		if rc.component.URI == c.URI {
			return true
		}
	}
	return false
}

// wire resolves the targets of the references of composite's components,
// then those of nested composites. The targets of a reference of a
// composite implemented component are pushed down to the references it
// promotes, overriding theirs.
func (d *deployer) wire(composite *assembly.Composite, inProgress map[*assembly.Composite]struct{}) {
	if _, ok := inProgress[composite]; ok {
		return
	}
	inProgress[composite] = struct{}{}
	defer delete(inProgress, composite)

	for _, c := range composite.Components {
		if c.Implementation == nil {
			continue
		}
		for _, r := range c.References {
			if d.overridden[r] {
				continue
			}
			targets := d.resolveTargets(composite, c, r)
			if !c.IsComposite() {
				d.targets[r] = targets
				continue
			}
			if len(r.Targets) == 0 {
				continue
			}
			for _, leaf := range componenttype.ResolveLeafReferences(c, r) {
				if d.overridden[leaf.Reference] {
					continue
				}
				d.targets[leaf.Reference] = targets
				d.overridden[leaf.Reference] = true
			}
		}
		if inner, ok := c.Implementation.(*assembly.Composite); ok {
			d.wire(inner, inProgress)
		}
	}
}

func (d *deployer) resolveTargets(scope *assembly.Composite, c *assembly.Component, r *assembly.ComponentReference) []target {
	var targets []target
	for _, name := range r.Targets {
		tc, ts, ok := lookupTarget(scope, name)
		if !ok {
			if d.rt.domain != nil {
				targets = append(targets, target{name: name})
				continue
			}
			monitor.Error(d.monitor, c.URI, monitor.CategoryWiring,
				monitor.ComponentReferenceTargetNotFound, name, r.Name)
			continue
		}
		if !assembly.IsCompatible(r.InterfaceContract, ts.InterfaceContract) {
			monitor.Error(d.monitor, c.URI, monitor.CategoryWiring,
				monitor.ReferenceIncompatibleInterface, r.Name, name)
			continue
		}
		targets = append(targets, target{name: name, component: tc, service: ts})
	}
	return targets
}

// lookupTarget finds the service named "component/service", or
// "component" for a component with a single service, among the components
// of scope. Services of composite implemented components are followed down
// to the atomic component implementing them.
func lookupTarget(scope *assembly.Composite, name string) (*assembly.Component, *assembly.ComponentService, bool) {
	componentName, serviceName := name, ""
	if i := strings.IndexByte(name, '/'); i >= 0 {
		componentName, serviceName = name[:i], name[i+1:]
	}

	c := scope.Component(componentName)
	if c == nil || c.Implementation == nil {
		return nil, nil, false
	}
	var s *assembly.ComponentService
	if serviceName == "" {
		s = c.SingleService()
	} else {
		s = c.Service(serviceName)
	}
	if s == nil {
		return nil, nil, false
	}
	return componenttype.ResolveLeafService(c, s)
}

// serviceEndpoints creates an endpoint per service binding. Services
// without bindings get the SCA binding.
func (d *deployer) serviceEndpoints(rc *runtimeComponent) {
	c := rc.component
	for _, s := range c.Services {
		if len(s.Bindings) == 0 {
			s.Bindings = []assembly.Binding{assembly.NewSCABinding()}
		}
		uri := c.URI + "/" + s.Name
		for _, b := range s.Bindings {
			if b.Type() == assembly.SCABindingType && b.URI() == "" {
				b.SetURI(uri)
			}
			rc.services = append(rc.services, &assembly.Endpoint{
				Component:         c,
				Service:           s,
				Binding:           b,
				InterfaceContract: s.InterfaceContract,
				URI:               uri,
			})
		}
	}
}

// referenceEndpoints creates an endpoint reference per target, or per
// binding with an explicit URI if the reference has no target.
func (d *deployer) referenceEndpoints(rc *runtimeComponent) {
	c := rc.component
	for _, r := range c.References {
		targets := d.targets[r]
		if !hasExplicitBinding(r) && !r.Multiplicity.Allows(len(targets)) {
			monitor.Error(d.monitor, c.URI, monitor.CategoryWiring,
				monitor.ReferenceMultiplicityViolated, r.Name, len(targets))
		}

		r.TargetServices = nil
		for _, t := range targets {
			b := scaBinding(r)
			ref := &assembly.EndpointReference{
				Component:         c,
				Reference:         r,
				Binding:           b,
				InterfaceContract: r.InterfaceContract,
			}
			if t.service == nil {
				b.SetURI(t.name)
				ref.Status = assembly.StatusWiredTargetNotFound
			} else {
				b.TargetComponent = t.component
				b.TargetComponentService = t.service
				b.SetURI(t.component.URI + "/" + t.service.Name)
				ref.Target = &assembly.Endpoint{
					Component:         t.component,
					Service:           t.service,
					Binding:           t.service.Binding(assembly.SCABindingType),
					InterfaceContract: t.service.InterfaceContract,
					URI:               b.URI(),
				}
				ref.Status = assembly.StatusWiredTargetFoundAndMatched
				r.TargetServices = append(r.TargetServices, t.service)
			}
			rc.references = append(rc.references, ref)
		}
		if len(targets) > 0 {
			continue
		}

		for _, b := range r.Bindings {
			if b.URI() == "" {
				continue
			}
			status := assembly.StatusRemotePending
			if b.Type() == assembly.SCABindingType {
				status = assembly.StatusWiredTargetNotFound
			}
			rc.references = append(rc.references, &assembly.EndpointReference{
				Component:         c,
				Reference:         r,
				Binding:           b.Clone(),
				InterfaceContract: r.InterfaceContract,
				Status:            status,
			})
		}
	}
}

func hasExplicitBinding(r *assembly.ComponentReference) bool {
	for _, b := range r.Bindings {
		if b.URI() != "" {
			return true
		}
	}
	return false
}

// scaBinding returns a copy of the reference's SCA binding, or a new one.
func scaBinding(r *assembly.ComponentReference) *assembly.SCABinding {
	if b, ok := r.Binding(assembly.SCABindingType).(*assembly.SCABinding); ok {
		return b.Clone().(*assembly.SCABinding)
	}
	return assembly.NewSCABinding()
}
