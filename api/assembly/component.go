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

// Scope is the lifetime of the implementation instances backing a
// component.
type Scope int

const (
	// ScopeStateless components get an instance per invocation.
	ScopeStateless Scope = iota
	// ScopeComposite components share one instance for as long as the
	// enclosing composite is active.
	ScopeComposite
	// ScopeConversation components get one instance per conversation.
	ScopeConversation
)

var _scopeNames = map[Scope]string{
	ScopeStateless:    "stateless",
	ScopeComposite:    "composite",
	ScopeConversation: "conversation",
}

func (s Scope) String() string {
	if name, ok := _scopeNames[s]; ok {
		return name
	}
	return "unknown"
}

// Implementation is the implementation of a component: either a Composite or
// an atomic implementation understood by a registered implementation
// provider.
type Implementation interface {
	// ImplementationType is the key under which the implementation's provider
	// factory is registered.
	ImplementationType() string
}

// Scoped is implemented by implementations that declare a scope. Components
// whose implementation does not are stateless.
type Scoped interface {
	Scope() Scope
}

// Callback holds the bindings used to call back into the client of a
// bidirectional service.
type Callback struct {
	Bindings []Binding
}

// Contract is the common part of services and references.
type Contract struct {
	Name              string
	InterfaceContract *InterfaceContract
	Bindings          []Binding
	Callback          *Callback
	PolicySets        []string
	Intents           []string
}

// Binding returns the first binding of the given type, or nil.
func (c *Contract) Binding(bindingType string) Binding {
	for _, b := range c.Bindings {
		if b.Type() == bindingType {
			return b
		}
	}
	return nil
}

// ComponentService is a service offered by a component.
type ComponentService struct {
	Contract

	// ForCallback services receive callbacks for one of the component's
	// references.
	ForCallback bool

	// Unresolved is true for placeholder services that wiring could not
	// match to a real component service.
	Unresolved bool

	// TypeService is the composite service backing this service when the
	// component is implemented by a composite.
	TypeService *CompositeService
}

// ComponentReference is a dependency of a component on other services.
type ComponentReference struct {
	Contract

	// Targets names the wired services as "component/service" or just
	// "component".
	Targets []string

	// TargetServices holds the services Targets resolved to, in order.
	TargetServices []*ComponentService

	Multiplicity Multiplicity
}

// Multiplicity is the number of targets a reference may be wired to.
type Multiplicity int

const (
	// MultiplicityOneOne references need exactly one target.
	MultiplicityOneOne Multiplicity = iota
	// MultiplicityZeroOne references need at most one target.
	MultiplicityZeroOne
	// MultiplicityZeroN references take any number of targets.
	MultiplicityZeroN
	// MultiplicityOneN references need at least one target.
	MultiplicityOneN
)

// Allows reports whether n targets satisfy the multiplicity.
func (m Multiplicity) Allows(n int) bool {
	switch m {
	case MultiplicityZeroOne:
		return n <= 1
	case MultiplicityZeroN:
		return true
	case MultiplicityOneN:
		return n >= 1
	default:
		return n == 1
	}
}

// ComponentProperty is a configured property value.
type ComponentProperty struct {
	Name  string
	Value interface{}
}

// Component is a configured instance of an implementation inside a
// composite. A component is owned by exactly one composite.
type Component struct {
	Name string

	// URI is the structural URI of the component within the deployed
	// composite, "outer/inner" for nested components. Set at deployment.
	URI string

	Implementation Implementation
	Services       []*ComponentService
	References     []*ComponentReference
	Properties     []*ComponentProperty

	Autowire   *bool
	PolicySets []string
	Intents    []string
}

// Service returns the service with the given name, or nil.
func (c *Component) Service(name string) *ComponentService {
	for _, s := range c.Services {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Reference returns the reference with the given name, or nil.
func (c *Component) Reference(name string) *ComponentReference {
	for _, r := range c.References {
		if r.Name == name {
			return r
		}
	}
	return nil
}

// Property returns the property with the given name, or nil.
func (c *Component) Property(name string) *ComponentProperty {
	for _, p := range c.Properties {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// IsComposite reports whether the component is implemented by a composite.
func (c *Component) IsComposite() bool {
	_, ok := c.Implementation.(*Composite)
	return ok
}

// Scope returns the scope declared by the implementation, defaulting to
// ScopeStateless.
func (c *Component) Scope() Scope {
	if s, ok := c.Implementation.(Scoped); ok {
		return s.Scope()
	}
	return ScopeStateless
}

// SingleService returns the component's only non-callback service, or nil if
// it has none or more than one.
func (c *Component) SingleService() *ComponentService {
	var found *ComponentService
	for _, s := range c.Services {
		if s.ForCallback {
			continue
		}
		if found != nil {
			return nil
		}
		found = s
	}
	return found
}
