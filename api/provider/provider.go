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
	"context"

	"go.uber.org/sca/api/assembly"
	"go.uber.org/sca/api/invocation"
)

//go:generate mockgen -destination=providertest/provider.go -package=providertest go.uber.org/sca/api/provider ReferenceBindingProvider,ServiceBindingProvider,BindingProviderFactory,ImplementationProvider,ImplementationProviderFactory,PolicyProvider,PolicyProviderFactory

// Lifecycle is implemented by every provider. Start is called when the
// owning component is activated and Stop when it is stopped.
type Lifecycle interface {
	Start() error
	Stop() error
}

// ReferenceBindingProvider sends invocations made on a reference over one
// binding.
type ReferenceBindingProvider interface {
	Lifecycle

	// CreateInvoker returns the terminal invoker of the chain for op.
	CreateInvoker(op *assembly.Operation) (invocation.Invoker, error)

	// BindingInterfaceContract is the contract the binding imposes on the
	// wire. Nil means the reference's own contract is used.
	BindingInterfaceContract() *assembly.InterfaceContract

	// SupportsOneWayInvocation reports whether invokers return immediately
	// for one-way operations. If not, the runtime dispatches one-way calls
	// asynchronously itself.
	SupportsOneWayInvocation() bool
}

// ServiceBindingProvider exposes a service over one binding. Incoming
// requests are handed to the target invoker given to the factory.
type ServiceBindingProvider interface {
	Lifecycle

	BindingInterfaceContract() *assembly.InterfaceContract
	SupportsOneWayInvocation() bool
}

// BindingProviderFactory creates the providers of one binding type.
type BindingProviderFactory interface {
	// BindingType is the binding type served by this factory.
	BindingType() string

	CreateReferenceBindingProvider(ref *assembly.EndpointReference) (ReferenceBindingProvider, error)

	// CreateServiceBindingProvider exposes ep. Requests received by the
	// binding must be passed to target, which dispatches on the message
	// operation.
	CreateServiceBindingProvider(ep *assembly.Endpoint, target invocation.Invoker) (ServiceBindingProvider, error)
}

// ImplementationProvider runs the operations of a component.
type ImplementationProvider interface {
	Lifecycle

	CreateInvoker(service *assembly.ComponentService, op *assembly.Operation) (invocation.Invoker, error)
	SupportsOneWayInvocation() bool
}

// ImplementationProviderFactory creates the providers of one implementation
// type.
type ImplementationProviderFactory interface {
	ImplementationType() string
	CreateImplementationProvider(cc ComponentContext) (ImplementationProvider, error)
}

// PolicyProvider contributes the interceptor enforcing a policy.
type PolicyProvider interface {
	// CreateInterceptor returns the interceptor for op, or nil if the policy
	// does not apply to it.
	CreateInterceptor(op *assembly.Operation) invocation.Interceptor
}

// PolicyProviderFactory creates policy providers for the points of a wire.
// Each method returns nil when the policy does not apply.
type PolicyProviderFactory interface {
	// Name identifies the policy.
	Name() string

	CreateReferencePolicyProvider(ref *assembly.EndpointReference) PolicyProvider
	CreateServicePolicyProvider(ep *assembly.Endpoint) PolicyProvider
	CreateImplementationPolicyProvider(c *assembly.Component) PolicyProvider
}

// Caller invokes the operations of a wired service by name.
type Caller interface {
	Call(ctx context.Context, operation string, args ...interface{}) (interface{}, error)
}

// ConversationListener is notified when a conversation is over.
type ConversationListener interface {
	ConversationEnded(id string)
}

// ConversationManager tracks the conversations of a runtime.
type ConversationManager interface {
	AddListener(l ConversationListener)
	RemoveListener(l ConversationListener)
}

// ComponentContext is the view of its runtime that an implementation provider
// gets.
type ComponentContext interface {
	Component() *assembly.Component

	// Reference returns a caller for the named reference's first target.
	Reference(name string) (Caller, error)

	// Callback returns a caller for the callback operations of the
	// reference that sent the request served in ctx.
	Callback(ctx context.Context) (Caller, error)

	// Property returns the configured value of the named property.
	Property(name string) (interface{}, bool)

	Conversations() ConversationManager
}
