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

import "context"

// Invoker is the terminal element of an invocation chain. It performs the
// actual call: a binding sending the message, or an implementation running
// the operation.
//
// Invokers never return nil; errors are reported as fault messages.
type Invoker interface {
	Invoke(ctx context.Context, msg *Message) *Message
}

// InvokerFunc adapts a function into an Invoker.
type InvokerFunc func(context.Context, *Message) *Message

// Invoke implements Invoker.
func (f InvokerFunc) Invoke(ctx context.Context, msg *Message) *Message {
	return f(ctx, msg)
}

// Interceptor is a non-terminal element of an invocation chain. It may act on
// the message before and after handing it to next.
//
// Interceptors must either return the response of next unchanged, or a fault
// that wraps the fault they received.
type Interceptor interface {
	Invoke(ctx context.Context, msg *Message, next Invoker) *Message
}

// InterceptorFunc adapts a function into an Interceptor.
type InterceptorFunc func(context.Context, *Message, Invoker) *Message

// Invoke implements Interceptor.
func (f InterceptorFunc) Invoke(ctx context.Context, msg *Message, next Invoker) *Message {
	return f(ctx, msg, next)
}
