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
	"sync"

	"github.com/google/uuid"
	"go.uber.org/atomic"
	"go.uber.org/sca/api/assembly"
	"go.uber.org/sca/scaerrors"
)

type conversationState int32

const (
	conversationIdle conversationState = iota
	conversationActive
	conversationEnded
)

// Conversation is a sequence of calls served by the same instance of a
// conversation scoped component.
//
// The conversation starts with its first call and lasts until End is
// called, an operation ending the conversation is called, or the
// conversation expires. Calls made after the conversation has ended fail
// with a conversation-ended error.
type Conversation struct {
	proxy       *Proxy
	requestedID string

	mu    sync.Mutex
	state atomic.Int32
	id    atomic.String
}

func newConversation(p *Proxy, id string) *Conversation {
	return &Conversation{proxy: p, requestedID: id}
}

// ID returns the id of the conversation while it is active, and an empty
// string before its first call and after it has ended.
func (c *Conversation) ID() string {
	if conversationState(c.state.Load()) != conversationActive {
		return ""
	}
	return c.id.Load()
}

// Call invokes the named operation within the conversation.
func (c *Conversation) Call(ctx context.Context, operation string, args ...interface{}) (interface{}, error) {
	id, err := c.begin()
	if err != nil {
		return nil, err
	}

	res, err := c.proxy.call(ctx, operation, id, false, args)
	if op := c.operation(operation); op != nil && op.EndsConversation {
		c.end()
	}
	if err != nil {
		return nil, err
	}
	return res.Body, nil
}

// End ends the conversation and releases the instances serving it.
func (c *Conversation) End() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch conversationState(c.state.Load()) {
	case conversationIdle:
		return scaerrors.NoActiveConversationErrorf("conversation with %q has not started", c.proxy.name)
	case conversationEnded:
		return nil
	}
	c.state.Store(int32(conversationEnded))
	c.proxy.conversations.End(c.id.Load())
	return nil
}

// begin starts the conversation if needed and returns its id.
func (c *Conversation) begin() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch conversationState(c.state.Load()) {
	case conversationEnded:
		return "", scaerrors.ConversationEndedErrorf("conversation %q with %q has ended", c.id.Load(), c.proxy.name)
	case conversationIdle:
		id := c.requestedID
		if id == "" {
			id = uuid.New().String()
		}
		c.id.Store(id)
		c.state.Store(int32(conversationActive))
	}
	return c.id.Load(), nil
}

// end marks the conversation ended after an operation that ends it. The
// instances were released by the call itself.
func (c *Conversation) end() {
	c.mu.Lock()
	c.state.Store(int32(conversationEnded))
	c.mu.Unlock()
}

func (c *Conversation) operation(name string) *assembly.Operation {
	if c.proxy.contract == nil {
		return nil
	}
	return c.proxy.contract.Interface.Operation(name)
}
