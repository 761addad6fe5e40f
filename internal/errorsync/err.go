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

// Package errorsync runs tasks concurrently and gathers their errors.
package errorsync

import (
	"sync"

	"go.uber.org/multierr"
)

// ErrorWaiter is similar to a WaitGroup except it collects the errors of
// the tasks it waits for.
//
// The zero value is ready to use. An ErrorWaiter must not be reused after
// Wait.
type ErrorWaiter struct {
	wait sync.WaitGroup

	mu     sync.Mutex
	errors []error
}

// Submit runs f on its own goroutine. It returns immediately.
func (ew *ErrorWaiter) Submit(f func() error) {
	ew.mu.Lock()
	slot := len(ew.errors)
	ew.errors = append(ew.errors, nil)
	ew.mu.Unlock()

	ew.wait.Add(1)
	go func() {
		defer ew.wait.Done()
		err := f()

		ew.mu.Lock()
		ew.errors[slot] = err
		ew.mu.Unlock()
	}()
}

// Wait blocks until every submitted task has returned. The errors of the
// failed tasks are combined in submission order.
func (ew *ErrorWaiter) Wait() error {
	ew.wait.Wait()

	ew.mu.Lock()
	defer ew.mu.Unlock()
	return multierr.Combine(ew.errors...)
}
