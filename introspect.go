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
	"sort"

	"go.uber.org/sca/api/assembly"
	"go.uber.org/sca/internal/introspection"
)

// Introspect returns detailed information about the runtime: the deployed
// composites and, for every atomic component, whether it is active and how
// its services and references are bound.
func (rt *Runtime) Introspect() introspection.RuntimeStatus {
	rt.mu.RLock()
	defer rt.mu.RUnlock()

	active := make(map[*runtimeComponent]struct{}, len(rt.started))
	for _, c := range rt.started {
		active[c] = struct{}{}
	}

	status := introspection.RuntimeStatus{
		Name:      rt.name,
		NodeURI:   rt.node.NodeURI,
		DomainURI: rt.node.DomainURI,
		State:     rt.once.State().String(),
	}
	for _, composite := range rt.composites {
		status.Composites = append(status.Composites, composite.Name)
	}
	for _, c := range rt.components {
		_, ok := active[c]
		status.Components = append(status.Components, c.introspect(ok))
	}
	sort.Slice(status.Components, func(i, j int) bool {
		return status.Components[i].URI < status.Components[j].URI
	})
	return status
}

// introspect reports the component. The caller holds the runtime lock.
func (c *runtimeComponent) introspect(active bool) introspection.ComponentStatus {
	status := introspection.ComponentStatus{
		URI:    c.component.URI,
		Active: active,
	}
	if impl := c.component.Implementation; impl != nil {
		status.Implementation = impl.ImplementationType()
	}

	for _, ep := range c.services {
		_, running := c.serviceWires[ep.Service]
		status.Services = append(status.Services, introspection.ServiceStatus{
			Name:    ep.Service.Name,
			URI:     ep.URI,
			Binding: bindingType(ep.Binding),
			Running: running,
		})
	}
	for _, ref := range c.references {
		rs := introspection.ReferenceStatus{
			Name:    ref.Reference.Name,
			Binding: bindingType(ref.Binding),
			Status:  ref.Status.String(),
		}
		if ref.Target != nil {
			rs.Target = ref.Target.URI
		}
		status.References = append(status.References, rs)
	}
	return status
}

func bindingType(b assembly.Binding) string {
	if b == nil {
		return ""
	}
	return b.Type()
}
