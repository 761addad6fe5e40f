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

package scope

import (
	"context"
	"sync"
	"time"

	"go.uber.org/atomic"
	"go.uber.org/multierr"
	"go.uber.org/sca/api/assembly"
	"go.uber.org/sca/api/invocation"
	"go.uber.org/sca/internal/lifecycle"
	"go.uber.org/sca/scaerrors"
	"go.uber.org/zap"
)

// conversation is the state of one conversation in a container. Calls of
// the same conversation are serialized by mu.
type conversation struct {
	id      string
	created time.Time
	// lastUsed holds UnixNano of the last call.
	lastUsed atomic.Int64

	mu       sync.Mutex
	instance *InstanceWrapper
	ended    bool
}

func (c *conversation) touch(now time.Time) {
	c.lastUsed.Store(now.UnixNano())
}

// conversationContainer keeps one instance per conversation id.
type conversationContainer struct {
	factory InstanceFactory
	opts    options
	once    *lifecycle.Once

	mu            sync.Mutex
	conversations map[string]*conversation

	stopReaper chan struct{}
	reaperDone chan struct{}
}

func newConversationContainer(factory InstanceFactory, o options) *conversationContainer {
	return &conversationContainer{
		factory:       factory,
		opts:          o,
		once:          lifecycle.NewOnce(),
		conversations: make(map[string]*conversation),
	}
}

func (c *conversationContainer) Scope() assembly.Scope { return assembly.ScopeConversation }

func (c *conversationContainer) Start() error {
	return c.once.Start(func() error {
		if c.opts.manager != nil {
			c.opts.manager.AddListener(c)
		}
		if c.opts.maxAge > 0 || c.opts.maxIdleTime > 0 {
			c.stopReaper = make(chan struct{})
			c.reaperDone = make(chan struct{})
			go c.reap()
		}
		return nil
	})
}

func (c *conversationContainer) Stop() error {
	return c.once.Stop(func() error {
		if c.opts.manager != nil {
			c.opts.manager.RemoveListener(c)
		}
		if c.stopReaper != nil {
			close(c.stopReaper)
			<-c.reaperDone
		}

		c.mu.Lock()
		all := c.conversations
		c.conversations = make(map[string]*conversation)
		c.mu.Unlock()

		var err error
		for _, conv := range all {
			err = multierr.Append(err, c.end(conv))
		}
		return err
	})
}

func (c *conversationContainer) Instance(ctx context.Context, msg *invocation.Message) (*InstanceWrapper, error) {
	if !c.once.IsRunning() {
		return nil, notRunning(c.opts)
	}
	id := msg.ConversationID()
	if id == "" {
		return nil, scaerrors.NoActiveConversationErrorf(
			"call to conversational component %q carries no conversation id", c.opts.name)
	}

	for {
		w, err := c.open(ctx, c.lookup(id))
		if err != nil || w != nil {
			return w, err
		}
		// The conversation ended while we waited for it; start over with a
		// fresh one.
	}
}

// open locks conv and returns its instance, creating it if needed. The lock
// is kept only when an instance is returned. A nil wrapper and error mean
// conv has ended.
func (c *conversationContainer) open(ctx context.Context, conv *conversation) (*InstanceWrapper, error) {
	conv.mu.Lock()
	release := true
	defer func() {
		if !release {
			return
		}
		if conv.instance == nil && !conv.ended {
			c.remove(conv)
			conv.ended = true
		}
		conv.mu.Unlock()
	}()

	if conv.ended {
		return nil, nil
	}
	if conv.instance == nil {
		w, err := create(ctx, c.factory, c.opts)
		if err != nil {
			return nil, err
		}
		w.entry = conv
		conv.instance = w
	}
	conv.touch(_timeNow())
	release = false
	return conv.instance, nil
}

func (c *conversationContainer) Return(ctx context.Context, op *assembly.Operation, w *InstanceWrapper) error {
	conv := w.entry
	if conv == nil {
		return nil
	}
	conv.touch(_timeNow())
	if op == nil || !op.EndsConversation {
		conv.mu.Unlock()
		return nil
	}

	c.remove(conv)
	conv.ended = true
	err := destroy(ctx, conv.instance, c.opts)
	conv.instance = nil
	conv.mu.Unlock()
	c.opts.logger.Debug("conversation ended by operation",
		zap.String("conversationID", conv.id), zap.String("operation", op.Name))
	return err
}

// ConversationEnded implements provider.ConversationListener.
func (c *conversationContainer) ConversationEnded(id string) {
	c.mu.Lock()
	conv, ok := c.conversations[id]
	if ok {
		delete(c.conversations, id)
	}
	c.mu.Unlock()

	if !ok {
		return
	}
	if err := c.end(conv); err != nil {
		c.opts.logger.Warn("failed to end conversation",
			zap.String("conversationID", id), zap.Error(err))
	}
}

// lookup finds the live conversation for id, replacing an expired one.
func (c *conversationContainer) lookup(id string) *conversation {
	now := _timeNow()

	c.mu.Lock()
	conv, ok := c.conversations[id]
	var expired *conversation
	if ok && c.expired(conv, now) {
		expired = conv
		ok = false
	}
	if !ok {
		conv = &conversation{id: id, created: now}
		conv.touch(now)
		c.conversations[id] = conv
	}
	c.mu.Unlock()

	if expired != nil {
		c.opts.logger.Debug("conversation expired", zap.String("conversationID", id))
		if err := c.end(expired); err != nil {
			c.opts.logger.Warn("failed to end expired conversation",
				zap.String("conversationID", id), zap.Error(err))
		}
	}
	return conv
}

// remove drops conv from the map unless it has already been replaced.
func (c *conversationContainer) remove(conv *conversation) {
	c.mu.Lock()
	if c.conversations[conv.id] == conv {
		delete(c.conversations, conv.id)
	}
	c.mu.Unlock()
}

// end destroys the instance of a conversation that is no longer in the map,
// waiting for an in-flight call to finish first.
func (c *conversationContainer) end(conv *conversation) error {
	conv.mu.Lock()
	defer conv.mu.Unlock()
	if conv.ended {
		return nil
	}
	conv.ended = true
	err := destroy(context.Background(), conv.instance, c.opts)
	conv.instance = nil
	return err
}

func (c *conversationContainer) expired(conv *conversation, now time.Time) bool {
	if c.opts.maxAge > 0 && now.Sub(conv.created) > c.opts.maxAge {
		return true
	}
	if c.opts.maxIdleTime > 0 && now.Sub(time.Unix(0, conv.lastUsed.Load())) > c.opts.maxIdleTime {
		return true
	}
	return false
}

func (c *conversationContainer) reap() {
	defer close(c.reaperDone)

	ticker := time.NewTicker(c.opts.reapInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stopReaper:
			return
		case <-ticker.C:
			if err := c.reapExpired(); err != nil {
				c.opts.logger.Warn("failed to end expired conversations", zap.Error(err))
			}
		}
	}
}

func (c *conversationContainer) reapExpired() error {
	now := _timeNow()
	var expired []*conversation

	c.mu.Lock()
	for id, conv := range c.conversations {
		if c.expired(conv, now) {
			delete(c.conversations, id)
			expired = append(expired, conv)
		}
	}
	c.mu.Unlock()

	var err error
	for _, conv := range expired {
		c.opts.logger.Debug("conversation expired", zap.String("conversationID", conv.id))
		err = multierr.Append(err, c.end(conv))
	}
	return err
}

// Len reports the number of live conversations.
func (c *conversationContainer) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.conversations)
}
