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

import "go.uber.org/sca/api/assembly"

// DistributedBinding is the binding handed to the distributed provider. It
// wraps the SCA binding of the reference or service being distributed.
type DistributedBinding struct {
	SCABinding *assembly.SCABinding
}

var _ assembly.Binding = (*DistributedBinding)(nil)

// Type implements assembly.Binding.
func (b *DistributedBinding) Type() string { return DistributedBindingType }

// Name implements assembly.Binding.
func (b *DistributedBinding) Name() string { return b.SCABinding.Name() }

// URI implements assembly.Binding.
func (b *DistributedBinding) URI() string { return b.SCABinding.URI() }

// SetURI implements assembly.Binding.
func (b *DistributedBinding) SetURI(uri string) { b.SCABinding.SetURI(uri) }

// Clone implements assembly.Binding.
func (b *DistributedBinding) Clone() assembly.Binding {
	return &DistributedBinding{SCABinding: b.SCABinding.Clone().(*assembly.SCABinding)}
}
