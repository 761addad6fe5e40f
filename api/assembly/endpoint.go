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

// Status is the resolution status of an EndpointReference.
type Status int

const (
	// StatusNotConfigured means wiring has not looked at the reference yet.
	StatusNotConfigured Status = iota
	// StatusWiredTargetFoundAndMatched means the target service was found in
	// this runtime and its contract matches.
	StatusWiredTargetFoundAndMatched
	// StatusWiredTargetNotFound means the target is not known locally; it is
	// resolved dynamically when invoked.
	StatusWiredTargetNotFound
	// StatusRemotePending means the target lives in another node and will be
	// reached through a distributed binding.
	StatusRemotePending
)

var _statusNames = map[Status]string{
	StatusNotConfigured:              "not-configured",
	StatusWiredTargetFoundAndMatched: "wired-target-found-and-matched",
	StatusWiredTargetNotFound:        "wired-target-not-found",
	StatusRemotePending:              "remote-pending",
}

func (s Status) String() string {
	if name, ok := _statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// Endpoint is a service made addressable over one binding.
type Endpoint struct {
	Component         *Component
	Service           *ComponentService
	Binding           Binding
	InterfaceContract *InterfaceContract
	URI               string
}

// EndpointReference is the source side of a wire: a reference over one
// binding, pointing at a target Endpoint once resolved.
//
// A nil Target means the wire is dynamic, for example a callback.
type EndpointReference struct {
	Component         *Component
	Reference         *ComponentReference
	Binding           Binding
	InterfaceContract *InterfaceContract
	Target            *Endpoint
	Status            Status
}

// Name returns "component/reference" for diagnostics.
func (r *EndpointReference) Name() string {
	if r == nil {
		return ""
	}
	var comp, ref string
	if r.Component != nil {
		comp = r.Component.Name
	}
	if r.Reference != nil {
		ref = r.Reference.Name
	}
	return comp + "/" + ref
}

// Name returns "component/service" for diagnostics.
func (e *Endpoint) Name() string {
	if e == nil {
		return ""
	}
	var comp, svc string
	if e.Component != nil {
		comp = e.Component.Name
	}
	if e.Service != nil {
		svc = e.Service.Name
	}
	return comp + "/" + svc
}
