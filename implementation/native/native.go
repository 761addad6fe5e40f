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

// Package native implements components as plain Go values.
//
// A native implementation supplies a constructor for its instances and one
// Method per operation of its services:
//
//	impl := &native.Implementation{
//		InstanceScope: assembly.ScopeComposite,
//		New: func(ctx context.Context, cc provider.ComponentContext) (interface{}, error) {
//			return &calculator{}, nil
//		},
//		Operations: map[string]native.Method{
//			"add": func(ctx context.Context, inst interface{}, args []interface{}) (interface{}, error) {
//				return args[0].(int) + args[1].(int), nil
//			},
//		},
//	}
//
// Instances implementing Init(context.Context) error or
// Destroy(context.Context) error are notified when they enter and leave
// their scope.
package native

import (
	"context"
	"time"

	"go.uber.org/sca/api/assembly"
	"go.uber.org/sca/api/provider"
)

// ImplementationType is the implementation type of native components.
const ImplementationType = "native"

// Method runs one operation on an instance.
type Method func(ctx context.Context, instance interface{}, args []interface{}) (interface{}, error)

// Constructor creates an instance of a native component. The component
// context gives access to references and properties.
type Constructor func(ctx context.Context, cc provider.ComponentContext) (interface{}, error)

// Implementation is a component implemented in Go.
type Implementation struct {
	// InstanceScope is the lifetime of the instances. Defaults to stateless.
	InstanceScope assembly.Scope

	New        Constructor
	Operations map[string]Method

	// MaxAge and MaxIdleTime bound conversations of conversation scoped
	// implementations. Zero means the runtime default.
	MaxAge      time.Duration
	MaxIdleTime time.Duration
}

var _ assembly.Scoped = (*Implementation)(nil)

// ImplementationType implements assembly.Implementation.
func (*Implementation) ImplementationType() string { return ImplementationType }

// Scope implements assembly.Scoped.
func (i *Implementation) Scope() assembly.Scope { return i.InstanceScope }
