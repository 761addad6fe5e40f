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

package scaconfig

import (
	"reflect"

	"go.uber.org/sca/internal/interpolate"
	"go.uber.org/zap"
)

// Kit is an opaque object that carries context for the Configurator. Build
// functions that receive this object MUST NOT modify it.
type Kit struct {
	name   string
	logger *zap.Logger

	// Used to resolve interpolated variables.
	resolver interpolate.VariableResolver
}

var _typeOfKit = reflect.TypeOf((*Kit)(nil))

// RuntimeName returns the name of the runtime for which providers are being
// built.
func (k *Kit) RuntimeName() string { return k.name }

// Logger returns the logger the providers should log to.
func (k *Kit) Logger() *zap.Logger { return k.logger }

// Lookup resolves a variable the same way interpolated attributes are.
func (k *Kit) Lookup(name string) (string, bool) { return k.resolver(name) }
