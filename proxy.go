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

package sca

import (
	"context"

	"go.uber.org/sca/api/assembly"
	"go.uber.org/sca/api/invocation"
	"go.uber.org/sca/api/provider"
	"go.uber.org/sca/internal/scope"
	"go.uber.org/sca/internal/wire"
	"go.uber.org/sca/scaerrors"
)

// Proxy calls the operations of a service, or of the target of a
// reference, by name.
//
// A Proxy is safe for concurrent use. Proxies obtained before the runtime
// is started work once it is.
type Proxy struct {
	name          string
	contract      *assembly.InterfaceContract
	conversations *scope.Manager
	wire          func() (*wire.Wire, error)

	// callback proxies call the callback operations of the wire, adding
	// headers to every request.
	callback bool
	headers  invocation.Headers
}

var _ provider.Caller = (*Proxy)(nil)

func newProxy(name string, contract *assembly.InterfaceContract, conversations *scope.Manager, w func() (*wire.Wire, error)) *Proxy {
	return &Proxy{
		name:          name,
		contract:      contract,
		conversations: conversations,
		wire:          w,
	}
}

// Name returns the name of the service or reference behind the proxy.
func (p *Proxy) Name() string { return p.name }

// Contract returns the interface contract the proxy was created for. It may
// be nil.
func (p *Proxy) Contract() *assembly.InterfaceContract { return p.contract }

// Call invokes the named operation and waits for its result.
//
// Errors returned by the implementation are returned as they are. Failures
// of the runtime are returned as scaerrors.Status errors.
func (p *Proxy) Call(ctx context.Context, operation string, args ...interface{}) (interface{}, error) {
	res, err := p.call(ctx, operation, "", false, args)
	if err != nil {
		return nil, err
	}
	return res.Body, nil
}

// CallOneway invokes the named one-way operation. It returns as soon as the
// call has been handed to the runtime; failures of the operation itself are
// only logged.
func (p *Proxy) CallOneway(ctx context.Context, operation string, args ...interface{}) error {
	_, err := p.call(ctx, operation, "", true, args)
	return err
}

// Conversation starts a conversation with a generated id. The conversation
// begins with its first call.
func (p *Proxy) Conversation() *Conversation {
	return newConversation(p, "")
}

// NewConversation starts a conversation with the given id.
func (p *Proxy) NewConversation(id string) *Conversation {
	return newConversation(p, id)
}

func (p *Proxy) call(ctx context.Context, operation, conversationID string, oneway bool, args []interface{}) (*invocation.Message, error) {
	w, err := p.wire()
	if err != nil {
		return nil, err
	}
	chain, ok := p.chain(w, operation)
	if !ok {
		return nil, scaerrors.InvalidArgumentErrorf("operation %q is not offered by %q", operation, p.name)
	}
	if oneway && !chain.SourceOperation().OneWay {
		return nil, scaerrors.InvalidArgumentErrorf("operation %q of %q is not one-way", operation, p.name)
	}

	msg := invocation.NewRequest(chain.SourceOperation(), args...)
	msg.Headers = p.headers.Clone()
	if conversationID != "" {
		msg.Headers = msg.Headers.With(invocation.ConversationIDHeader, conversationID)
	}

	var res *invocation.Message
	if p.callback {
		res = w.InvokeCallback(ctx, msg)
	} else {
		res = w.Invoke(ctx, msg)
	}
	if res.IsFault() {
		return nil, res.Fault()
	}
	return res, nil
}

func (p *Proxy) chain(w *wire.Wire, operation string) (*invocation.Chain, bool) {
	if !p.callback {
		return w.ChainByName(operation)
	}
	// Names are unique within the callback interface of one wire.
	for _, c := range w.CallbackChains() {
		if c.SourceOperation().Name == operation {
			return c, true
		}
	}
	return nil, false
}
