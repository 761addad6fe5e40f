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

// Package domain provides an in-memory domain registry for nodes sharing a
// process.
package domain

import (
	"context"
	"sync"

	"go.uber.org/sca/api/domain"
	"go.uber.org/zap"
)

type serviceKey struct {
	domainURI  string
	serviceURI string
}

type registration struct {
	nodeURI    string
	bindingURI string
}

// MemoryRegistry is a domain.Registry kept in memory.
//
// It is safe for concurrent use; lookups take a shared lock.
type MemoryRegistry struct {
	logger *zap.Logger

	mu sync.RWMutex
	// bindingType -> registration, per known service
	services map[serviceKey]map[string]registration
}

var _ domain.Registry = (*MemoryRegistry)(nil)

// MemoryRegistryOption customizes a MemoryRegistry.
type MemoryRegistryOption func(*MemoryRegistry)

// Logger sets the logger used by the registry.
func Logger(logger *zap.Logger) MemoryRegistryOption {
	return func(r *MemoryRegistry) {
		r.logger = logger
	}
}

// NewMemoryRegistry builds an empty registry.
func NewMemoryRegistry(opts ...MemoryRegistryOption) *MemoryRegistry {
	r := &MemoryRegistry{
		logger:   zap.NewNop(),
		services: make(map[serviceKey]map[string]registration),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Declare makes a service known to the domain without registering an
// endpoint for it, as happens when a composite is deployed to the domain
// but its node has not started yet.
func (r *MemoryRegistry) Declare(domainURI, serviceURI string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := serviceKey{domainURI, serviceURI}
	if _, ok := r.services[key]; !ok {
		r.services[key] = make(map[string]registration)
	}
}

func (r *MemoryRegistry) lookup(ctx context.Context, domainURI, serviceURI, bindingType string) (registration, error) {
	if err := ctx.Err(); err != nil {
		return registration{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	bindings, ok := r.services[serviceKey{domainURI, serviceURI}]
	if !ok {
		return registration{}, domain.ErrServiceNotKnown
	}
	reg, ok := bindings[bindingType]
	if !ok {
		return registration{}, domain.ErrServiceNotRegistered
	}
	return reg, nil
}

// FindServiceNode implements domain.Registry.
func (r *MemoryRegistry) FindServiceNode(ctx context.Context, domainURI, serviceURI, bindingType string) (string, error) {
	reg, err := r.lookup(ctx, domainURI, serviceURI, bindingType)
	return reg.nodeURI, err
}

// FindServiceEndpoint implements domain.Registry.
func (r *MemoryRegistry) FindServiceEndpoint(ctx context.Context, domainURI, serviceURI, bindingType string) (string, error) {
	reg, err := r.lookup(ctx, domainURI, serviceURI, bindingType)
	return reg.bindingURI, err
}

// RegisterService implements domain.Registry. A later registration for the
// same service and binding type replaces the earlier one.
func (r *MemoryRegistry) RegisterService(ctx context.Context, domainURI, nodeURI, serviceURI, bindingType, bindingURI string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := serviceKey{domainURI, serviceURI}
	bindings, ok := r.services[key]
	if !ok {
		bindings = make(map[string]registration)
		r.services[key] = bindings
	}
	if prev, ok := bindings[bindingType]; ok && prev.nodeURI != nodeURI {
		r.logger.Warn("service moved to another node",
			zap.String("service", serviceURI),
			zap.String("bindingType", bindingType),
			zap.String("from", prev.nodeURI),
			zap.String("to", nodeURI))
	}
	bindings[bindingType] = registration{nodeURI: nodeURI, bindingURI: bindingURI}
	return nil
}

// UnregisterService implements domain.Registry. The service stays known to
// the domain. Only the registering node may unregister a service.
func (r *MemoryRegistry) UnregisterService(ctx context.Context, domainURI, nodeURI, serviceURI, bindingType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	bindings := r.services[serviceKey{domainURI, serviceURI}]
	if reg, ok := bindings[bindingType]; ok && reg.nodeURI == nodeURI {
		delete(bindings, bindingType)
	}
	return nil
}
