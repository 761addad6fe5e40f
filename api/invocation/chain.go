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

package invocation

import (
	"context"
	"sort"

	"go.uber.org/sca/api/assembly"
	"go.uber.org/sca/scaerrors"
)

// Chain is the ordered pipeline of interceptors ending in one Invoker,
// built for a single operation of a wire.
//
// Chains are immutable once built and safe for concurrent use.
type Chain struct {
	sourceOperation *assembly.Operation
	targetOperation *assembly.Operation
	interceptors    []PhasedInterceptor
	terminal        Invoker
}

// SourceOperation is the operation of the reference side of the wire.
func (c *Chain) SourceOperation() *assembly.Operation { return c.sourceOperation }

// TargetOperation is the operation of the service side of the wire.
func (c *Chain) TargetOperation() *assembly.Operation { return c.targetOperation }

// Terminal returns the invoker at the end of the chain.
func (c *Chain) Terminal() Invoker { return c.terminal }

// Phases returns the phase of each interceptor of the chain, in order.
func (c *Chain) Phases() []Phase {
	phases := make([]Phase, len(c.interceptors))
	for i, pi := range c.interceptors {
		phases[i] = pi.Phase
	}
	return phases
}

// Len returns the number of interceptors in the chain, not counting the
// terminal invoker.
func (c *Chain) Len() int { return len(c.interceptors) }

// Invoke runs msg through every interceptor and the terminal invoker. A
// message without an operation is sent as a copy addressed to the target
// operation; msg itself is left untouched.
func (c *Chain) Invoke(ctx context.Context, msg *Message) *Message {
	if msg.Operation == nil {
		m := *msg
		m.Operation = c.targetOperation
		msg = &m
	}
	return chainExec{Chain: c.interceptors, Final: c.terminal}.Invoke(ctx, msg)
}

// chainExec is scoped to a single call of a Chain and is not thread-safe.
type chainExec struct {
	Chain []PhasedInterceptor
	Final Invoker
}

func (x chainExec) Invoke(ctx context.Context, msg *Message) *Message {
	if len(x.Chain) == 0 {
		return x.Final.Invoke(ctx, msg)
	}
	next := x.Chain[0].Interceptor
	x.Chain = x.Chain[1:]
	return next.Invoke(ctx, msg, x)
}

// ChainBuilder collects the interceptors of a chain.
//
//	chain, err := invocation.NewChainBuilder(op, op).
//		Add(invocation.PhaseReferencePolicy, policy).
//		Build(invoker)
type ChainBuilder struct {
	sourceOperation *assembly.Operation
	targetOperation *assembly.Operation
	interceptors    []PhasedInterceptor
}

// NewChainBuilder starts a chain from source to target operation.
func NewChainBuilder(source, target *assembly.Operation) *ChainBuilder {
	return &ChainBuilder{sourceOperation: source, targetOperation: target}
}

// Add adds an interceptor in the given phase. Nil interceptors are ignored.
func (b *ChainBuilder) Add(phase Phase, i Interceptor) *ChainBuilder {
	if i == nil {
		return b
	}
	b.interceptors = append(b.interceptors, PhasedInterceptor{Phase: phase, Interceptor: i})
	return b
}

// AddPhased adds pre-tagged interceptors. Entries with a nil interceptor are
// ignored.
func (b *ChainBuilder) AddPhased(pis ...PhasedInterceptor) *ChainBuilder {
	for _, pi := range pis {
		b.Add(pi.Phase, pi.Interceptor)
	}
	return b
}

// Build orders the interceptors by phase and terminates the chain with
// terminal.
func (b *ChainBuilder) Build(terminal Invoker) (*Chain, error) {
	if terminal == nil {
		return nil, scaerrors.InternalErrorf("chain for operation %q has no terminal invoker", operationName(b.targetOperation))
	}
	interceptors := make([]PhasedInterceptor, len(b.interceptors))
	copy(interceptors, b.interceptors)
	for _, pi := range interceptors {
		if !pi.Phase.IsValid() {
			return nil, scaerrors.InvalidArgumentErrorf("interceptor for operation %q has unknown phase %v", operationName(b.targetOperation), pi.Phase)
		}
	}
	sort.SliceStable(interceptors, func(i, j int) bool {
		return interceptors[i].Phase < interceptors[j].Phase
	})
	return &Chain{
		sourceOperation: b.sourceOperation,
		targetOperation: b.targetOperation,
		interceptors:    interceptors,
		terminal:        terminal,
	}, nil
}

func operationName(op *assembly.Operation) string {
	if op == nil {
		return ""
	}
	return op.Name
}
