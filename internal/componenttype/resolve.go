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

package componenttype

import "go.uber.org/sca/api/assembly"

// ResolveLeafService follows promotion from a service of component down to
// the service of the atomic component that implements it.
//
// It returns false if a promotion along the way is unresolved.
func ResolveLeafService(component *assembly.Component, service *assembly.ComponentService) (*assembly.Component, *assembly.ComponentService, bool) {
	for component.IsComposite() {
		ts := service.TypeService
		if ts == nil || !ts.IsResolved() || ts.PromotedComponent == nil {
			return nil, nil, false
		}
		component, service = ts.PromotedComponent, ts.PromotedService
	}
	return component, service, true
}

// LeafReference is a reference of an atomic component.
type LeafReference struct {
	Component *assembly.Component
	Reference *assembly.ComponentReference
}

// ResolveLeafReferences follows promotion from a reference of component down
// to the references of the atomic components it stands for. An atomic
// component's reference resolves to itself.
func ResolveLeafReferences(component *assembly.Component, reference *assembly.ComponentReference) []LeafReference {
	inner, ok := component.Implementation.(*assembly.Composite)
	if !ok {
		return []LeafReference{{Component: component, Reference: reference}}
	}

	cr := inner.Reference(reference.Name)
	if cr == nil {
		return nil
	}
	var leaves []LeafReference
	for i, promoted := range cr.PromotedReferences {
		leaves = append(leaves, ResolveLeafReferences(cr.PromotedComponents[i], promoted)...)
	}
	return leaves
}
