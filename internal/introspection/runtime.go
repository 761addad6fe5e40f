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

// Package introspection holds the status reports of a runtime.
package introspection

// RuntimeStatus represents detailed introspection information about a
// runtime.
type RuntimeStatus struct {
	Name       string            `json:"name"`
	NodeURI    string            `json:"nodeURI,omitempty"`
	DomainURI  string            `json:"domainURI,omitempty"`
	State      string            `json:"state"`
	Composites []string          `json:"composites"`
	Components []ComponentStatus `json:"components"`
}

// ComponentStatus reports an atomic component and its endpoints.
type ComponentStatus struct {
	URI            string            `json:"uri"`
	Implementation string            `json:"implementation"`
	Active         bool              `json:"active"`
	Services       []ServiceStatus   `json:"services"`
	References     []ReferenceStatus `json:"references"`
}

// ServiceStatus reports a service endpoint.
type ServiceStatus struct {
	Name    string `json:"name"`
	URI     string `json:"uri"`
	Binding string `json:"binding"`
	Running bool   `json:"running"`
}

// ReferenceStatus reports an endpoint reference and the target it is wired
// to, if any.
type ReferenceStatus struct {
	Name    string `json:"name"`
	Binding string `json:"binding"`
	Target  string `json:"target,omitempty"`
	Status  string `json:"status"`
}
