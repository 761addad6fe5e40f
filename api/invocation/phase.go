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

import "fmt"

// Phase is a named stage of an invocation chain. Phases are totally ordered;
// interceptors run in phase order, and in registration order within a
// phase.
type Phase int

// Phases in the order they run.
const (
	PhaseReference Phase = iota + 1
	PhaseReferenceInterface
	PhaseReferencePolicy
	PhaseReferenceBindingPolicy
	PhaseReferenceBinding
	PhaseServiceBinding
	PhaseServiceBindingPolicy
	PhaseServicePolicy
	PhaseServiceInterface
	PhaseImplementationPolicy
)

var _phaseNames = map[Phase]string{
	PhaseReference:              "reference",
	PhaseReferenceInterface:     "reference.interface",
	PhaseReferencePolicy:        "reference.policy",
	PhaseReferenceBindingPolicy: "reference.binding.policy",
	PhaseReferenceBinding:       "reference.binding",
	PhaseServiceBinding:         "service.binding",
	PhaseServiceBindingPolicy:   "service.binding.policy",
	PhaseServicePolicy:          "service.policy",
	PhaseServiceInterface:       "service.interface",
	PhaseImplementationPolicy:   "implementation.policy",
}

// IsValid reports whether p is a known phase.
func (p Phase) IsValid() bool {
	_, ok := _phaseNames[p]
	return ok
}

func (p Phase) String() string {
	if name, ok := _phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// PhasedInterceptor is an Interceptor tagged with the phase it runs in.
type PhasedInterceptor struct {
	Phase       Phase
	Interceptor Interceptor
}
