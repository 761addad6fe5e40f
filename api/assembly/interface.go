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

// DataType names the type of an operation argument or result. Data types are
// compared by name.
type DataType string

// Operation is a single operation of an Interface.
//
// Operations are compared by identity when looking up callback chains; two
// interfaces may declare operations with the same name.
type Operation struct {
	Name   string
	Input  []DataType
	Output DataType

	// OneWay operations have no response; callers do not wait for the
	// target to finish.
	OneWay bool

	// EndsConversation marks an operation after which the conversation with
	// a conversational component is over.
	EndsConversation bool
}

// signatureEquals reports whether two operations have the same name and
// signature.
func (o *Operation) signatureEquals(other *Operation) bool {
	if o.Name != other.Name || o.Output != other.Output || o.OneWay != other.OneWay {
		return false
	}
	if len(o.Input) != len(other.Input) {
		return false
	}
	for i, in := range o.Input {
		if other.Input[i] != in {
			return false
		}
	}
	return true
}

// Interface is a named set of operations.
type Interface struct {
	Name string

	// Remotable interfaces may be invoked across node boundaries.
	Remotable bool

	// Conversational interfaces are backed by conversation scoped instances.
	Conversational bool

	Operations []*Operation
}

// Operation returns the operation with the given name, or nil.
func (i *Interface) Operation(name string) *Operation {
	if i == nil {
		return nil
	}
	for _, op := range i.Operations {
		if op.Name == name {
			return op
		}
	}
	return nil
}

// InterfaceContract is the pair of forward and callback interfaces offered
// by a service or required by a reference.
type InterfaceContract struct {
	Interface         *Interface
	CallbackInterface *Interface
}

// Operations returns the forward operations of the contract.
func (c *InterfaceContract) Operations() []*Operation {
	if c == nil || c.Interface == nil {
		return nil
	}
	return c.Interface.Operations
}

// CallbackOperations returns the callback operations of the contract.
func (c *InterfaceContract) CallbackOperations() []*Operation {
	if c == nil || c.CallbackInterface == nil {
		return nil
	}
	return c.CallbackInterface.Operations
}

// IsRemotable reports whether the forward interface is remotable.
func (c *InterfaceContract) IsRemotable() bool {
	return c != nil && c.Interface != nil && c.Interface.Remotable
}

// IsCompatible reports whether every operation required by source is offered
// by target with an identical signature. Both interfaces must agree on
// remotability. A nil source is compatible with anything.
func IsCompatible(source, target *InterfaceContract) bool {
	if source == nil || source.Interface == nil {
		return true
	}
	if target == nil || target.Interface == nil {
		return false
	}
	if !interfaceCompatible(source.Interface, target.Interface) {
		return false
	}
	if source.CallbackInterface == nil {
		return true
	}
	// Callbacks flow the other way: the target calls back into the source.
	if target.CallbackInterface == nil {
		return false
	}
	return interfaceCompatible(target.CallbackInterface, source.CallbackInterface)
}

// IsMutuallyCompatible reports whether a promoting contract and the promoted
// contract can stand in for each other in either direction: one of them must
// be a subset of the other.
func IsMutuallyCompatible(a, b *InterfaceContract) bool {
	return IsCompatible(a, b) || IsCompatible(b, a)
}

func interfaceCompatible(source, target *Interface) bool {
	if source.Remotable != target.Remotable {
		return false
	}
	for _, op := range source.Operations {
		other := target.Operation(op.Name)
		if other == nil || !op.signatureEquals(other) {
			return false
		}
	}
	return true
}
