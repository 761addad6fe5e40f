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

package assembly

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func op(name string, in ...DataType) *Operation {
	return &Operation{Name: name, Input: in, Output: "string"}
}

func contract(remotable bool, ops ...*Operation) *InterfaceContract {
	return &InterfaceContract{Interface: &Interface{Name: "I", Remotable: remotable, Operations: ops}}
}

func TestIsCompatible(t *testing.T) {
	tests := []struct {
		desc   string
		source *InterfaceContract
		target *InterfaceContract
		want   bool
	}{
		{
			desc:   "nil source",
			target: contract(false, op("a")),
			want:   true,
		},
		{
			desc:   "nil target",
			source: contract(false, op("a")),
			want:   false,
		},
		{
			desc:   "identical",
			source: contract(false, op("a", "int")),
			target: contract(false, op("a", "int")),
			want:   true,
		},
		{
			desc:   "subset",
			source: contract(false, op("a")),
			target: contract(false, op("a"), op("b")),
			want:   true,
		},
		{
			desc:   "superset",
			source: contract(false, op("a"), op("b")),
			target: contract(false, op("a")),
			want:   false,
		},
		{
			desc:   "signature mismatch",
			source: contract(false, op("a", "int")),
			target: contract(false, op("a", "string")),
			want:   false,
		},
		{
			desc:   "arity mismatch",
			source: contract(false, op("a", "int")),
			target: contract(false, op("a", "int", "int")),
			want:   false,
		},
		{
			desc:   "remotable mismatch",
			source: contract(true, op("a")),
			target: contract(false, op("a")),
			want:   false,
		},
		{
			desc: "callback missing on target",
			source: &InterfaceContract{
				Interface:         &Interface{Operations: []*Operation{op("a")}},
				CallbackInterface: &Interface{Operations: []*Operation{op("cb")}},
			},
			target: contract(false, op("a")),
			want:   false,
		},
		{
			desc: "callback checked in reverse",
			source: &InterfaceContract{
				Interface:         &Interface{Operations: []*Operation{op("a")}},
				CallbackInterface: &Interface{Operations: []*Operation{op("cb"), op("cb2")}},
			},
			target: &InterfaceContract{
				Interface:         &Interface{Operations: []*Operation{op("a")}},
				CallbackInterface: &Interface{Operations: []*Operation{op("cb")}},
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCompatible(tt.source, tt.target))
		})
	}
}

func TestIsMutuallyCompatible(t *testing.T) {
	small := contract(false, op("a"))
	big := contract(false, op("a"), op("b"))
	other := contract(false, op("c"))

	assert.True(t, IsMutuallyCompatible(small, big))
	assert.True(t, IsMutuallyCompatible(big, small))
	assert.False(t, IsMutuallyCompatible(small, other))
}

func TestInterfaceContractAccessors(t *testing.T) {
	var nilContract *InterfaceContract
	assert.Nil(t, nilContract.Operations())
	assert.Nil(t, nilContract.CallbackOperations())
	assert.False(t, nilContract.IsRemotable())

	c := &InterfaceContract{
		Interface:         &Interface{Remotable: true, Operations: []*Operation{op("a")}},
		CallbackInterface: &Interface{Operations: []*Operation{op("cb")}},
	}
	assert.Len(t, c.Operations(), 1)
	assert.Len(t, c.CallbackOperations(), 1)
	assert.True(t, c.IsRemotable())
	assert.Equal(t, "a", c.Interface.Operation("a").Name)
	assert.Nil(t, c.Interface.Operation("missing"))
}
