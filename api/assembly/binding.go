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

import "net/url"

// SCABindingType is the binding type of the default binding used when no
// binding is configured.
const SCABindingType = "sca"

// Binding is the transport-specific configuration of a service or reference.
//
// Bindings are cloned during promotion; a clone must not share mutable state
// with its original.
type Binding interface {
	// Type is the key under which the binding's provider factory is
	// registered.
	Type() string
	Name() string
	URI() string
	SetURI(uri string)
	Clone() Binding
}

// IsAbsoluteURI reports whether the binding URI carries a scheme, which
// always designates a remote endpoint.
func IsAbsoluteURI(uri string) bool {
	if uri == "" {
		return false
	}
	u, err := url.Parse(uri)
	return err == nil && u.IsAbs()
}

// SCABinding is the default local binding.
//
// When wiring finds the target service in the same composite, it records
// the target on the binding so that invocations can stay local.
type SCABinding struct {
	BindingName string
	BindingURI  string

	// TargetComponent and TargetComponentService are set by wiring when the
	// target was found. They are nil for dynamic wires such as callbacks.
	TargetComponent        *Component
	TargetComponentService *ComponentService
}

var _ Binding = (*SCABinding)(nil)

// NewSCABinding returns an unconfigured default binding.
func NewSCABinding() *SCABinding {
	return &SCABinding{}
}

// Type implements Binding.
func (b *SCABinding) Type() string { return SCABindingType }

// Name implements Binding.
func (b *SCABinding) Name() string { return b.BindingName }

// URI implements Binding.
func (b *SCABinding) URI() string { return b.BindingURI }

// SetURI implements Binding.
func (b *SCABinding) SetURI(uri string) { b.BindingURI = uri }

// Clone implements Binding. The wiring target is shared since it points into
// the assembly rather than being owned by the binding.
func (b *SCABinding) Clone() Binding {
	c := *b
	return &c
}

// GenericBinding carries the configuration of any transport binding that the
// assembly model has no dedicated type for.
type GenericBinding struct {
	BindingType string
	BindingName string
	BindingURI  string
	Attributes  map[string]string
}

var _ Binding = (*GenericBinding)(nil)

// Type implements Binding.
func (b *GenericBinding) Type() string { return b.BindingType }

// Name implements Binding.
func (b *GenericBinding) Name() string { return b.BindingName }

// URI implements Binding.
func (b *GenericBinding) URI() string { return b.BindingURI }

// SetURI implements Binding.
func (b *GenericBinding) SetURI(uri string) { b.BindingURI = uri }

// Clone implements Binding.
func (b *GenericBinding) Clone() Binding {
	c := *b
	if b.Attributes != nil {
		c.Attributes = make(map[string]string, len(b.Attributes))
		for k, v := range b.Attributes {
			c.Attributes[k] = v
		}
	}
	return &c
}

// CloneBindings clones every binding in the list.
func CloneBindings(bindings []Binding) []Binding {
	if len(bindings) == 0 {
		return nil
	}
	clones := make([]Binding, 0, len(bindings))
	for _, b := range bindings {
		clones = append(clones, b.Clone())
	}
	return clones
}
