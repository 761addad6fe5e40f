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

// Package scaconfig builds Runtimes from YAML configuration.
//
//   cfg := scaconfig.New()
//   cfg.MustRegisterPolicy(timeout.Spec())
//
//   rt, err := cfg.NewRuntimeFromYAML("shop", confFile)
//
// Configuration
//
// The configuration has the following shape. Every section is optional.
//
//   name: shop
//   node:
//     uri: ${NODE_URI:node-1}
//     domain: ${DOMAIN_URI:local}
//   registryTimeout: 2s
//   conversations:
//     maxAge: 1h
//     maxIdleTime: 10m
//     reapInterval: 30s
//   bindings:
//     <binding type>: <attributes>
//   implementations:
//     <implementation type>: <attributes>
//   policies:
//     <policy name>: <attributes>
//   logging:
//     levels:
//       success: info
//       failure: error
//       applicationError: warn
//       clientError: warn
//       reference:
//         success: debug
//       service:
//         clientError: info
//
// The name overrides the runtime name passed to the Configurator. The node
// URI and domain URI are either both set or both omitted; the domain
// registry itself is set on the loaded Config.
//
// The attributes of bindings, implementations and policies are decoded
// into the configuration of the spec registered for their type or name.
// A policy is left out with "disabled: true".
//
// Interpolation
//
// Fields tagged with the "interpolate" option may reference environment
// variables as ${NAME}, or ${NAME:default} to fall back to a default when
// the variable is unset. The node URIs and the runtime name are
// interpolated.
//
//   type httpConfig struct {
//     Address string `config:"address,interpolate"`
//   }
package scaconfig
