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

// Package domain defines the contract between a node and the domain it
// belongs to. The domain knows which node hosts which service, so that a
// reference in one node can be wired to a service in another.
package domain

import (
	"context"
	"errors"
)

//go:generate mockgen -destination=domaintest/registry.go -package=domaintest go.uber.org/sca/api/domain Registry

var (
	// ErrServiceNotKnown is returned when the domain has never heard of the
	// service. References to such a service can not be resolved.
	ErrServiceNotKnown = errors.New("service not known to the domain")

	// ErrServiceNotRegistered is returned when the service is part of the
	// domain but no node has registered an endpoint for it yet.
	ErrServiceNotRegistered = errors.New("service not registered with the domain")
)

// Node identifies a runtime node within a domain.
type Node struct {
	DomainURI string
	NodeURI   string
}

// IsConfigured reports whether the node belongs to a domain.
func (n Node) IsConfigured() bool {
	return n.DomainURI != "" && n.NodeURI != ""
}

// Registry is the domain's service registry.
type Registry interface {
	// FindServiceNode returns the URI of the node hosting serviceURI over
	// bindingType.
	FindServiceNode(ctx context.Context, domainURI, serviceURI, bindingType string) (string, error)

	// FindServiceEndpoint returns the binding URI under which the hosting
	// node exposes serviceURI over bindingType.
	FindServiceEndpoint(ctx context.Context, domainURI, serviceURI, bindingType string) (string, error)

	RegisterService(ctx context.Context, domainURI, nodeURI, serviceURI, bindingType, bindingURI string) error
	UnregisterService(ctx context.Context, domainURI, nodeURI, serviceURI, bindingType string) error
}
