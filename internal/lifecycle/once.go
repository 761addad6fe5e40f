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

// Package lifecycle drives objects through an at-most-once start and stop.
package lifecycle

import (
	"context"
	"sync"

	"go.uber.org/atomic"
	"go.uber.org/sca/scaerrors"
)

// State of a lifecycle.
type State int32

const (
	// Idle means neither Start nor Stop was called.
	Idle State = iota
	// Starting means the start function is running.
	Starting
	// Running means the start function returned successfully.
	Running
	// Stopping means the stop function is running.
	Stopping
	// Stopped means the lifecycle was stopped, possibly without starting.
	Stopped
	// Errored means the start or stop function failed. The object is in an
	// unknown state and will not be started again.
	Errored
)

var _stateNames = map[State]string{
	Idle:     "idle",
	Starting: "starting",
	Running:  "running",
	Stopping: "stopping",
	Stopped:  "stopped",
	Errored:  "errored",
}

func (s State) String() string {
	if name, ok := _stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Once runs a start function and a stop function at most once each, from
// any number of goroutines.
//
//  - The state only moves forward.
//  - Start blocks until the start function has returned.
//  - Stop blocks until the stop function has returned.
//  - Stop before Start skips both functions.
//  - Later calls return the error of the first one.
type Once struct {
	state atomic.Int32

	// started closes once the state is Running or beyond; stopped once it
	// is Stopped or Errored.
	started chan struct{}
	stopped chan struct{}

	errMu sync.RWMutex
	err   error
}

// NewOnce returns a lifecycle in the Idle state.
func NewOnce() *Once {
	return &Once{
		started: make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Start runs f if no other Start or Stop ran before.
func (o *Once) Start(f func() error) error {
	if !o.state.CAS(int32(Idle), int32(Starting)) {
		<-o.started
		return o.loadError()
	}

	var err error
	if f != nil {
		err = f()
	}
	if err != nil {
		o.storeError(err)
		o.state.Store(int32(Errored))
		close(o.stopped)
	} else {
		o.state.Store(int32(Running))
	}
	close(o.started)
	return err
}

// Stop runs f if the lifecycle is running and no other Stop ran before.
func (o *Once) Stop(f func() error) error {
	if o.state.CAS(int32(Idle), int32(Stopped)) {
		close(o.started)
		close(o.stopped)
		return nil
	}

	<-o.started
	if !o.state.CAS(int32(Running), int32(Stopping)) {
		<-o.stopped
		return o.loadError()
	}

	var err error
	if f != nil {
		err = f()
	}
	if err != nil {
		o.storeError(err)
		o.state.Store(int32(Errored))
	} else {
		o.state.Store(int32(Stopped))
	}
	close(o.stopped)
	return err
}

// WaitUntilRunning blocks until the lifecycle is running or ctx is done.
// The context must have a deadline.
func (o *Once) WaitUntilRunning(ctx context.Context) error {
	state := o.State()
	if state == Running {
		return nil
	}
	if state > Running {
		return scaerrors.FailedPreconditionErrorf("could not wait for instance to start running: current state is %q", state)
	}
	if _, ok := ctx.Deadline(); !ok {
		return scaerrors.InvalidArgumentErrorf("could not wait for instance to start running: deadline required on context")
	}

	select {
	case <-o.started:
		if state := o.State(); state != Running {
			return scaerrors.FailedPreconditionErrorf("instance did not enter running state, current state is %q", state)
		}
		return nil
	case <-ctx.Done():
		return scaerrors.FailedPreconditionErrorf("context finished while waiting for instance to start: %v", ctx.Err())
	}
}

// Started returns a channel that closes once Start has returned, or Stop
// pre-empted it.
func (o *Once) Started() <-chan struct{} { return o.started }

// Stopped returns a channel that closes once the lifecycle is over.
func (o *Once) Stopped() <-chan struct{} { return o.stopped }

// State returns the current state. The lifecycle may have moved on by the
// time the caller looks at it.
func (o *Once) State() State {
	return State(o.state.Load())
}

// IsRunning reports whether the lifecycle is running.
func (o *Once) IsRunning() bool {
	return o.State() == Running
}

func (o *Once) storeError(err error) {
	o.errMu.Lock()
	o.err = err
	o.errMu.Unlock()
}

func (o *Once) loadError() error {
	o.errMu.RLock()
	defer o.errMu.RUnlock()
	return o.err
}
