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

import "strings"

// ConversationIDHeader carries the conversation id of a call to a
// conversational service.
const ConversationIDHeader = "sca-conversation-id"

// CallbackIDHeader carries the id a client attaches to a bidirectional call
// so that callbacks can be correlated with it.
const CallbackIDHeader = "sca-callback-id"

// CanonicalizeHeaderKey canonicalizes the given header key for storage into
// Headers.
func CanonicalizeHeaderKey(k string) string {
	return strings.ToLower(k)
}

// Headers are the message-level context propagated along a wire, such as
// conversation ids and tracing spans.
//
//	var headers invocation.Headers
//	headers = headers.With("foo", "bar")
//
// The zero value is valid.
type Headers struct {
	items map[string]string
}

// NewHeaders builds a new Headers object.
func NewHeaders() Headers {
	return Headers{}
}

// HeadersFromMap builds a new Headers object from the given map of header
// key-value pairs.
func HeadersFromMap(m map[string]string) Headers {
	if len(m) == 0 {
		return Headers{}
	}
	h := Headers{items: make(map[string]string, len(m))}
	for k, v := range m {
		h.items[CanonicalizeHeaderKey(k)] = v
	}
	return h
}

// With returns a Headers object with the given key-value pair added to it.
// The returned object MUST be used instead of the original.
func (h Headers) With(k, v string) Headers {
	if h.items == nil {
		h.items = make(map[string]string)
	}
	h.items[CanonicalizeHeaderKey(k)] = v
	return h
}

// Del deletes the header with the given name. This is a no-op if the key
// does not exist.
func (h Headers) Del(k string) {
	delete(h.items, CanonicalizeHeaderKey(k))
}

// Get retrieves the value associated with the given header name.
func (h Headers) Get(k string) (string, bool) {
	v, ok := h.items[CanonicalizeHeaderKey(k)]
	return v, ok
}

// Len returns the number of headers.
func (h Headers) Len() int {
	return len(h.items)
}

// Items returns the underlying map. The returned map MUST NOT be changed.
func (h Headers) Items() map[string]string {
	return h.items
}

// Clone returns a copy of the headers that does not share storage with h.
func (h Headers) Clone() Headers {
	return HeadersFromMap(h.items)
}
