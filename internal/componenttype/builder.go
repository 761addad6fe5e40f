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

// Package componenttype computes the externally visible contract of
// composites: the component services and references their composite
// services and references promote.
package componenttype

import (
	"go.uber.org/sca/api/assembly"
	"go.uber.org/sca/monitor"
)

// Builder resolves promotions across a composite hierarchy.
//
// Problems are reported to the monitor and resolution carries on, so a
// single build reports every problem of the assembly.
type Builder struct {
	monitor monitor.Monitor
}

// NewBuilder builds a Builder reporting to m.
func NewBuilder(m monitor.Monitor) *Builder {
	return &Builder{monitor: m}
}

// Build resolves the promotions of composite and of every composite nested
// in it. Building an unchanged composite again yields the same result.
func (b *Builder) Build(composite *assembly.Composite) {
	b.build(composite, make(map[*assembly.Composite]struct{}))
}

func (b *Builder) build(composite *assembly.Composite, inProgress map[*assembly.Composite]struct{}) {
	if _, ok := inProgress[composite]; ok {
		// A composite implemented by itself; the outer call finishes it.
		return
	}
	inProgress[composite] = struct{}{}
	defer delete(inProgress, composite)

	seen := make(map[string]struct{}, len(composite.Components))
	for _, component := range composite.Components {
		if _, dup := seen[component.Name]; dup {
			monitor.Error(b.monitor, composite.Name, monitor.CategoryAssembly,
				monitor.DuplicateComponentName, component.Name, composite.Name)
		}
		seen[component.Name] = struct{}{}

		if component.Implementation == nil {
			monitor.Warning(b.monitor, composite.Name, monitor.CategoryAssembly,
				monitor.NoImplementation, component.Name)
			continue
		}
		if inner, ok := component.Implementation.(*assembly.Composite); ok {
			b.build(inner, inProgress)
			configureFromComponentType(component, inner)
		}
	}

	idx := newIndex(composite)
	for _, service := range composite.Services {
		b.promoteService(composite, idx, service)
	}
	for _, reference := range composite.References {
		b.promoteReference(composite, idx, reference)
	}
}

func (b *Builder) promoteService(composite *assembly.Composite, idx *index, cs *assembly.CompositeService) {
	componentName := cs.PromotedComponentName
	if componentName == "" && cs.PromotedComponent != nil {
		componentName = cs.PromotedComponent.Name
	}

	var name string
	switch {
	case cs.PromotedServiceName == "":
		name = componentName
	case cs.ForCallback:
		// Callback services are already named "component/service".
		name = cs.PromotedServiceName
	default:
		name = componentName + "/" + cs.PromotedServiceName
	}

	promoted, ok := idx.services[name]
	if !ok {
		cs.PromotedComponent = nil
		cs.PromotedService = nil
		monitor.Error(b.monitor, composite.Name, monitor.CategoryAssembly,
			monitor.PromotedServiceNotFound, name, composite.Name)
		return
	}
	cs.PromotedComponent = idx.components[componentName]
	cs.PromotedService = promoted

	b.promoteServiceContract(composite, cs, promoted)
	promoteServiceBindings(cs, promoted)
}

// promoteServiceContract applies the rule that the outer interface contract
// takes precedence when declared.
func (b *Builder) promoteServiceContract(composite *assembly.Composite, cs *assembly.CompositeService, promoted *assembly.ComponentService) {
	switch {
	case cs.InterfaceContract == nil:
		cs.InterfaceContract = promoted.InterfaceContract
	case promoted.InterfaceContract == nil:
	case !assembly.IsMutuallyCompatible(cs.InterfaceContract, promoted.InterfaceContract):
		monitor.Error(b.monitor, composite.Name, monitor.CategoryAssembly,
			monitor.ServiceInterfaceNotSubSet, cs.Name, promoted.Name)
	}
}

// promoteServiceBindings applies the rule that explicit outer bindings take
// precedence and that unset bindings are inherited from the inner service.
func promoteServiceBindings(cs *assembly.CompositeService, promoted *assembly.ComponentService) {
	if len(cs.Bindings) == 0 {
		cs.Bindings = assembly.CloneBindings(promoted.Bindings)
	}
	if len(cs.Bindings) == 0 {
		cs.Bindings = []assembly.Binding{assembly.NewSCABinding()}
	}

	if promoted.Callback == nil {
		return
	}
	if cs.Callback == nil {
		cs.Callback = &assembly.Callback{}
	}
	cs.Callback.Bindings = assembly.CloneBindings(promoted.Callback.Bindings)
}

func (b *Builder) promoteReference(composite *assembly.Composite, idx *index, cr *assembly.CompositeReference) {
	cr.PromotedComponents = cr.PromotedComponents[:0]
	cr.PromotedReferences = cr.PromotedReferences[:0]

	for _, name := range cr.Promotes {
		promoted, ok := idx.references[name]
		if !ok {
			monitor.Error(b.monitor, composite.Name, monitor.CategoryAssembly,
				monitor.PromotedReferenceNotFound, name, composite.Name)
			continue
		}
		cr.PromotedComponents = append(cr.PromotedComponents, idx.referenceOwners[name])
		cr.PromotedReferences = append(cr.PromotedReferences, promoted)

		switch {
		case cr.InterfaceContract == nil:
			cr.InterfaceContract = promoted.InterfaceContract
		case promoted.InterfaceContract == nil:
		case !assembly.IsMutuallyCompatible(promoted.InterfaceContract, cr.InterfaceContract):
			monitor.Error(b.monitor, composite.Name, monitor.CategoryAssembly,
				monitor.ReferenceInterfaceNotSubSet, cr.Name, name)
		}

		// Outer bindings override the promoted ones.
		if len(cr.Bindings) > 0 {
			promoted.Bindings = assembly.CloneBindings(cr.Bindings)
		}
	}
}

// configureFromComponentType fills in the services and references a
// composite-implemented component gets from its implementation.
func configureFromComponentType(component *assembly.Component, inner *assembly.Composite) {
	for _, ts := range inner.Services {
		s := component.Service(ts.Name)
		if s == nil {
			s = &assembly.ComponentService{
				Contract:    assembly.Contract{Name: ts.Name},
				ForCallback: ts.ForCallback,
			}
			component.Services = append(component.Services, s)
		}
		s.TypeService = ts
		if s.InterfaceContract == nil {
			s.InterfaceContract = ts.InterfaceContract
		}
		if len(s.Bindings) == 0 {
			s.Bindings = assembly.CloneBindings(ts.Bindings)
		}
		if s.Callback == nil && ts.Callback != nil {
			s.Callback = &assembly.Callback{Bindings: assembly.CloneBindings(ts.Callback.Bindings)}
		}
	}

	for _, tr := range inner.References {
		r := component.Reference(tr.Name)
		if r == nil {
			r = &assembly.ComponentReference{Contract: assembly.Contract{Name: tr.Name}}
			component.References = append(component.References, r)
		}
		if r.InterfaceContract == nil {
			r.InterfaceContract = tr.InterfaceContract
		}
	}
}
