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

package assembly

// CompositeImplementationType is the implementation type of composites.
const CompositeImplementationType = "composite"

// CompositeService is a service of a composite's component type. It promotes
// a service of one of the composite's components.
//
// The promoted service is named by PromotedComponentName and
// PromotedServiceName until the component type builder resolves it, after
// which PromotedComponent and PromotedService point at it directly.
type CompositeService struct {
	Contract

	PromotedComponentName string

	// PromotedServiceName may be empty to promote the component's single
	// service. For callback services it already has the form
	// "component/service".
	PromotedServiceName string

	PromotedComponent *Component
	PromotedService   *ComponentService

	ForCallback bool
}

// IsResolved reports whether the promotion has been resolved.
func (s *CompositeService) IsResolved() bool {
	return s.PromotedService != nil
}

// CompositeReference is a reference of a composite's component type. It
// promotes one or more references of the composite's components.
type CompositeReference struct {
	Contract

	// Promotes names the promoted references as "component/reference".
	Promotes []string

	// PromotedComponents and PromotedReferences are parallel lists holding
	// the resolved promotions.
	PromotedComponents []*Component
	PromotedReferences []*ComponentReference
}

// IsResolved reports whether every promoted reference has been resolved.
func (r *CompositeReference) IsResolved() bool {
	return len(r.Promotes) > 0 && len(r.PromotedReferences) == len(r.Promotes)
}

// Composite is an assembly of components. It is also an implementation, so
// composites nest.
type Composite struct {
	Name       string
	Components []*Component
	Services   []*CompositeService
	References []*CompositeReference
	Properties []*ComponentProperty
	Autowire   bool

	// Local composites must run all their components in the same node.
	Local bool
}

var _ Implementation = (*Composite)(nil)

// ImplementationType implements Implementation.
func (*Composite) ImplementationType() string { return CompositeImplementationType }

// Component returns the first component with the given name, or nil.
func (c *Composite) Component(name string) *Component {
	for _, comp := range c.Components {
		if comp.Name == name {
			return comp
		}
	}
	return nil
}

// Service returns the composite service with the given name, or nil.
func (c *Composite) Service(name string) *CompositeService {
	for _, s := range c.Services {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Reference returns the composite reference with the given name, or nil.
func (c *Composite) Reference(name string) *CompositeReference {
	for _, r := range c.References {
		if r.Name == name {
			return r
		}
	}
	return nil
}
