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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/sca/api/assembly"
)

func TestMessageFault(t *testing.T) {
	var nilMsg *Message
	assert.False(t, nilMsg.IsFault())
	assert.NoError(t, nilMsg.Fault())

	res := NewResponse(42)
	assert.False(t, res.IsFault())
	assert.Equal(t, 42, res.Body)

	err := errors.New("boom")
	res.SetFault(err)
	assert.True(t, res.IsFault())
	assert.Equal(t, err, res.Fault())

	assert.Equal(t, err, NewFault(err).Fault())
}

func TestMessageArgs(t *testing.T) {
	assert.Equal(t, []interface{}{1, "a"}, NewRequest(nil, 1, "a").Args())
	assert.Nil(t, NewResponse("x").Args())
}

func TestHeaders(t *testing.T) {
	var h Headers
	assert.Equal(t, 0, h.Len())
	_, ok := h.Get("foo")
	assert.False(t, ok)

	h = h.With("Foo", "bar")
	v, ok := h.Get("FOO")
	assert.True(t, ok)
	assert.Equal(t, "bar", v)
	assert.Equal(t, map[string]string{"foo": "bar"}, h.Items())

	c := h.Clone()
	c = c.With("baz", "qux")
	assert.Equal(t, 1, h.Len())
	assert.Equal(t, 2, c.Len())

	h.Del("foo")
	assert.Equal(t, 0, h.Len())

	assert.Equal(t, 0, HeadersFromMap(nil).Len())
	assert.Equal(t, 1, HeadersFromMap(map[string]string{"A": "b"}).Len())
}

func TestMessageConversationID(t *testing.T) {
	msg := NewRequest(nil)
	assert.Equal(t, "", msg.ConversationID())
	msg.Headers = msg.Headers.With(ConversationIDHeader, "c1")
	assert.Equal(t, "c1", msg.ConversationID())
}

func TestMessageContext(t *testing.T) {
	assert.Nil(t, MessageFromContext(context.Background()))

	msg := NewRequest(&assembly.Operation{Name: "add"}, 1, 2)
	ctx := WithMessage(context.Background(), msg)
	assert.Same(t, msg, MessageFromContext(ctx))
}
