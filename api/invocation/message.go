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

import "go.uber.org/sca/api/assembly"

// Message is the envelope passed along an invocation chain.
//
// A request carries the operation arguments in Body as an []interface{}. A
// response carries the operation result in Body, or a fault.
type Message struct {
	Operation *assembly.Operation
	Body      interface{}
	Headers   Headers

	// From is the reference the message was sent from, if any.
	From *assembly.EndpointReference
	// To is the service the message is targeted at. It is nil for dynamic
	// wires until the target has been resolved.
	To *assembly.Endpoint

	// BindingContext holds binding specific state, such as the raw transport
	// request. It is opaque to the runtime.
	BindingContext interface{}

	fault error
}

// NewRequest builds a request message for the given operation.
func NewRequest(op *assembly.Operation, args ...interface{}) *Message {
	return &Message{Operation: op, Body: args}
}

// NewResponse builds a successful response carrying body.
func NewResponse(body interface{}) *Message {
	return &Message{Body: body}
}

// NewFault builds a response message carrying err as a fault.
func NewFault(err error) *Message {
	return &Message{fault: err}
}

// Args returns the arguments of a request message.
func (m *Message) Args() []interface{} {
	args, _ := m.Body.([]interface{})
	return args
}

// IsFault reports whether the message carries a fault.
func (m *Message) IsFault() bool {
	return m != nil && m.fault != nil
}

// Fault returns the fault carried by the message, or nil.
func (m *Message) Fault() error {
	if m == nil {
		return nil
	}
	return m.fault
}

// SetFault marks the message as a fault.
func (m *Message) SetFault(err error) {
	m.fault = err
}

// ConversationID returns the conversation id header of the message.
func (m *Message) ConversationID() string {
	id, _ := m.Headers.Get(ConversationIDHeader)
	return id
}
