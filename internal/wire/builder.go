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

package wire

import (
	"go.uber.org/sca/api/assembly"
	"go.uber.org/sca/api/invocation"
	"go.uber.org/sca/api/provider"
	"go.uber.org/sca/scaerrors"
)

// InvokerFactory creates the terminal invoker for an operation.
type InvokerFactory func(op *assembly.Operation) (invocation.Invoker, error)

// PolicyAttachment places the interceptors of a policy provider in a phase.
type PolicyAttachment struct {
	Phase    invocation.Phase
	Provider provider.PolicyProvider
}

// Params configures the construction of a Wire.
type Params struct {
	Source *assembly.EndpointReference
	Target *assembly.Endpoint

	// SourceContract lists the operations chains are built for.
	SourceContract *assembly.InterfaceContract

	// TargetContract is searched by name for the operation each chain
	// ends in. If nil, chains end in the source operation.
	TargetContract *assembly.InterfaceContract

	// Invokers creates the terminal invoker of every forward chain from the
	// target operation.
	Invokers InvokerFactory

	// CallbackInvokers, if set, creates the terminal invoker of every
	// callback chain.
	CallbackInvokers InvokerFactory

	// CallbackSupportsOneWay is SupportsOneWay for the callback invokers.
	CallbackSupportsOneWay bool

	// SupportsOneWay reports whether the terminal invokers return at once
	// for one-way operations. If not, one-way chains are made non-blocking
	// with the Dispatcher in OneWayPhase.
	SupportsOneWay bool
	OneWayPhase    invocation.Phase
	Dispatcher     *AsyncDispatcher

	// Interceptors are added to every chain.
	Interceptors []invocation.PhasedInterceptor

	// Policies contribute per operation interceptors.
	Policies []PolicyAttachment
}

// Build builds a Wire. Building twice from the same Params yields chains
// with the same interceptor order.
func Build(p Params) (*Wire, error) {
	if p.Invokers == nil {
		return nil, scaerrors.InternalErrorf("wire %v has no invoker factory", wireName(p))
	}
	if p.OneWayPhase == 0 {
		p.OneWayPhase = invocation.PhaseReferenceBinding
	}
	if p.Dispatcher == nil {
		p.Dispatcher = NewAsyncDispatcher(nil)
	}

	w := &Wire{
		source:           p.Source,
		target:           p.Target,
		chainsByOp:       make(map[*assembly.Operation]*invocation.Chain),
		chainsByName:     make(map[string]*invocation.Chain),
		callbackChainsOp: make(map[*assembly.Operation]*invocation.Chain),
	}

	for _, op := range p.SourceContract.Operations() {
		targetOp := op
		if p.TargetContract != nil {
			targetOp = p.TargetContract.Interface.Operation(op.Name)
			if targetOp == nil {
				return nil, scaerrors.ActivationErrorf("operation %q of wire %v not found on target", op.Name, wireName(p))
			}
		}

		chain, err := buildChain(p, op, targetOp, p.Invokers, p.SupportsOneWay)
		if err != nil {
			return nil, err
		}
		w.chains = append(w.chains, chain)
		w.chainsByOp[op] = chain
		w.chainsByOp[targetOp] = chain
		w.chainsByName[op.Name] = chain
	}

	if p.CallbackInvokers == nil {
		return w, nil
	}
	for _, op := range p.SourceContract.CallbackOperations() {
		chain, err := buildChain(p, op, op, p.CallbackInvokers, p.CallbackSupportsOneWay)
		if err != nil {
			return nil, err
		}
		w.callbackChains = append(w.callbackChains, chain)
		w.callbackChainsOp[op] = chain
	}
	return w, nil
}

func buildChain(p Params, sourceOp, targetOp *assembly.Operation, invokers InvokerFactory, supportsOneWay bool) (*invocation.Chain, error) {
	invoker, err := invokers(targetOp)
	if err != nil {
		if scaerrors.IsStatus(err) {
			return nil, err
		}
		return nil, scaerrors.Wrap(scaerrors.CodeActivationFailed, err,
			"could not create invoker for operation %q of wire %v", targetOp.Name, wireName(p))
	}

	b := invocation.NewChainBuilder(sourceOp, targetOp).AddPhased(p.Interceptors...)
	for _, policy := range p.Policies {
		if policy.Provider == nil {
			continue
		}
		b.Add(policy.Phase, policy.Provider.CreateInterceptor(targetOp))
	}
	if targetOp.OneWay && !supportsOneWay {
		b.Add(p.OneWayPhase, p.Dispatcher.Interceptor())
	}
	return b.Build(invoker)
}

func wireName(p Params) string {
	if p.Source != nil {
		return p.Source.Name()
	}
	return p.Target.Name()
}
