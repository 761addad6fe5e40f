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

// Package sca is a runtime for Service Component Architecture assemblies.
//
// An assembly is a composite of components. Each component has an
// implementation, offers services and depends on the services of other
// components through references. The runtime resolves the promotions of
// nested composites, wires every reference to its targets, and runs the
// components' implementations under their declared scope.
//
// Building a runtime
//
// A Runtime is configured with a Config and the composites it runs are
// deployed before it is started.
//
//   rt, err := sca.NewRuntime(sca.Config{Name: "calculator"})
//   if err != nil {
//     log.Fatal(err)
//   }
//   if err := rt.Deploy(composite); err != nil {
//     log.Fatal(err)
//   }
//   if err := rt.Start(); err != nil {
//     log.Fatal(err)
//   }
//   defer rt.Stop()
//
// Calling services
//
// Services are called by name through a Proxy.
//
//   calc, err := rt.Service("Calculator/Calc")
//   if err != nil {
//     log.Fatal(err)
//   }
//   sum, err := calc.Call(ctx, "add", 1, 2)
//
// Every call travels along an invocation chain: interceptors ordered by
// phase, ending in the invoker of the target implementation. References
// between components of the same runtime are served locally; references to
// services deployed elsewhere in the domain go through the distributed
// binding registered with the runtime's provider registry.
//
// Conversations
//
// Components with the conversation scope keep an instance per
// conversation. A Conversation obtained from a Proxy carries its id on
// every call.
//
//   conv := cart.Conversation()
//   conv.Call(ctx, "add", item)
//   total, err := conv.Call(ctx, "checkout")
package sca
