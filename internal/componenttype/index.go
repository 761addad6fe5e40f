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

// index of the components of one composite, one level deep.
type index struct {
	components map[string]*assembly.Component

	// "component/service", plus "component" for the sole non-callback
	// service of a component.
	services map[string]*assembly.ComponentService

	// "component/reference"
	references      map[string]*assembly.ComponentReference
	referenceOwners map[string]*assembly.Component
}

func newIndex(composite *assembly.Composite) *index {
	idx := &index{
		components:      make(map[string]*assembly.Component, len(composite.Components)),
		services:        make(map[string]*assembly.ComponentService),
		references:      make(map[string]*assembly.ComponentReference),
		referenceOwners: make(map[string]*assembly.Component),
	}

	for _, component := range composite.Components {
		if _, dup := idx.components[component.Name]; dup {
			// The first component wins; duplicates were reported already.
			continue
		}
		idx.components[component.Name] = component

		for _, s := range component.Services {
			idx.services[component.Name+"/"+s.Name] = s
		}
		if s := component.SingleService(); s != nil {
			idx.services[component.Name] = s
		}

		for _, r := range component.References {
			name := component.Name + "/" + r.Name
			idx.references[name] = r
			idx.referenceOwners[name] = component
		}
	}
	return idx
}
