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

package provider

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds the provider factories known to a runtime, keyed by binding
// and implementation type. Factories are registered explicitly at startup.
//
// Registry is safe for concurrent use.
type Registry struct {
	mu              sync.RWMutex
	bindings        map[string]BindingProviderFactory
	implementations map[string]ImplementationProviderFactory
	policies        map[string]PolicyProviderFactory
}

// NewRegistry builds an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		bindings:        make(map[string]BindingProviderFactory),
		implementations: make(map[string]ImplementationProviderFactory),
		policies:        make(map[string]PolicyProviderFactory),
	}
}

// RegisterBinding registers a binding provider factory. It fails if a
// factory for the same binding type was already registered.
func (r *Registry) RegisterBinding(f BindingProviderFactory) error {
	name := f.BindingType()
	if name == "" {
		return fmt.Errorf("binding provider factory %T has no binding type", f)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bindings[name]; ok {
		return fmt.Errorf("binding type %q is already registered", name)
	}
	r.bindings[name] = f
	return nil
}

// RegisterImplementation registers an implementation provider factory. It
// fails if a factory for the same implementation type was already
// registered.
func (r *Registry) RegisterImplementation(f ImplementationProviderFactory) error {
	name := f.ImplementationType()
	if name == "" {
		return fmt.Errorf("implementation provider factory %T has no implementation type", f)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.implementations[name]; ok {
		return fmt.Errorf("implementation type %q is already registered", name)
	}
	r.implementations[name] = f
	return nil
}

// RegisterPolicy registers a policy provider factory. It fails if a policy
// with the same name was already registered.
func (r *Registry) RegisterPolicy(f PolicyProviderFactory) error {
	name := f.Name()
	if name == "" {
		return fmt.Errorf("policy provider factory %T has no name", f)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.policies[name]; ok {
		return fmt.Errorf("policy %q is already registered", name)
	}
	r.policies[name] = f
	return nil
}

// BindingProviderFactory returns the factory for the binding type.
func (r *Registry) BindingProviderFactory(bindingType string) (BindingProviderFactory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.bindings[bindingType]
	return f, ok
}

// ImplementationProviderFactory returns the factory for the implementation
// type.
func (r *Registry) ImplementationProviderFactory(implementationType string) (ImplementationProviderFactory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.implementations[implementationType]
	return f, ok
}

// PolicyProviderFactories returns every registered policy factory, sorted by
// name.
func (r *Registry) PolicyProviderFactories() []PolicyProviderFactory {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.policies))
	for name := range r.policies {
		names = append(names, name)
	}
	sort.Strings(names)

	factories := make([]PolicyProviderFactory, 0, len(names))
	for _, name := range names {
		factories = append(factories, r.policies[name])
	}
	return factories
}

// BindingTypes returns the registered binding types, sorted.
func (r *Registry) BindingTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]string, 0, len(r.bindings))
	for t := range r.bindings {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
