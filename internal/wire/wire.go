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

// Package wire builds the runtime wires connecting references to services:
// one invocation chain per operation, plus chains for callbacks.
package wire

import (
	"context"

	"go.uber.org/sca/api/assembly"
	"go.uber.org/sca/api/invocation"
	"go.uber.org/sca/scaerrors"
)

// Wire is the invocable connection between a reference and a service.
//
// A Wire is immutable once built and safe for concurrent use.
type Wire struct {
	source *assembly.EndpointReference
	target *assembly.Endpoint

	chains []*invocation.Chain
	// Forward chains are found by source or target operation.
	chainsByOp   map[*assembly.Operation]*invocation.Chain
	chainsByName map[string]*invocation.Chain

	// Callback operations of different interfaces may share a name, so
	// callback chains are only found by operation identity.
	callbackChains   []*invocation.Chain
	callbackChainsOp map[*assembly.Operation]*invocation.Chain
}

// Source is the reference side of the wire. It is nil for service wires
// fed by a service binding.
func (w *Wire) Source() *assembly.EndpointReference { return w.source }

// Target is the service side of the wire. It is nil for dynamic wires.
func (w *Wire) Target() *assembly.Endpoint { return w.target }

// Chains returns the forward chains in operation order.
func (w *Wire) Chains() []*invocation.Chain { return w.chains }

// CallbackChains returns the callback chains in operation order.
func (w *Wire) CallbackChains() []*invocation.Chain { return w.callbackChains }

// Chain returns the forward chain for op, found by identity first and by
// name otherwise.
func (w *Wire) Chain(op *assembly.Operation) (*invocation.Chain, bool) {
	if op == nil {
		return nil, false
	}
	if c, ok := w.chainsByOp[op]; ok {
		return c, true
	}
	c, ok := w.chainsByName[op.Name]
	return c, ok
}

// ChainByName returns the forward chain for the named operation.
func (w *Wire) ChainByName(name string) (*invocation.Chain, bool) {
	c, ok := w.chainsByName[name]
	return c, ok
}

// CallbackChain returns the callback chain for op.
func (w *Wire) CallbackChain(op *assembly.Operation) (*invocation.Chain, bool) {
	c, ok := w.callbackChainsOp[op]
	return c, ok
}

// Invoke dispatches msg to the forward chain of its operation.
func (w *Wire) Invoke(ctx context.Context, msg *invocation.Message) *invocation.Message {
	chain, ok := w.Chain(msg.Operation)
	if !ok {
		return invocation.NewFault(scaerrors.InvalidArgumentErrorf(
			"operation %q is not available on wire %v", operationName(msg), w.name()))
	}
	if (msg.From == nil && w.source != nil) || (msg.To == nil && w.target != nil) {
		m := *msg
		if m.From == nil {
			m.From = w.source
		}
		if m.To == nil {
			m.To = w.target
		}
		msg = &m
	}
	return chain.Invoke(ctx, msg)
}

// InvokeCallback dispatches msg to the callback chain of its operation.
func (w *Wire) InvokeCallback(ctx context.Context, msg *invocation.Message) *invocation.Message {
	chain, ok := w.CallbackChain(msg.Operation)
	if !ok {
		return invocation.NewFault(scaerrors.InvalidArgumentErrorf(
			"callback operation %q is not available on wire %v", operationName(msg), w.name()))
	}
	return chain.Invoke(ctx, msg)
}

func (w *Wire) name() string {
	if w.source != nil {
		return w.source.Name()
	}
	return w.target.Name()
}
