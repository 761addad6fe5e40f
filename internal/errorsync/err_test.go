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

package errorsync

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
	"go.uber.org/multierr"
)

func TestErrorWaiter(t *testing.T) {
	defer goleak.VerifyNone(t)

	one := errors.New("1")
	two := errors.New("2")

	tests := []struct {
		desc string
		errs []error
		want []error
	}{
		{desc: "nothing"},
		{desc: "empty list", errs: []error{}},
		{desc: "no errors", errs: []error{nil, nil, nil}},
		{desc: "single error", errs: []error{nil, one, nil}, want: []error{one}},
		{desc: "submission order", errs: []error{nil, two, one, nil}, want: []error{two, one}},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			var ew ErrorWaiter
			for _, err := range tt.errs {
				err := err
				ew.Submit(func() error { return err })
			}

			err := ew.Wait()
			if len(tt.want) == 0 {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.want, multierr.Errors(err))
		})
	}
}

func TestErrorWaiterWaitsForAll(t *testing.T) {
	defer goleak.VerifyNone(t)

	release := make(chan struct{})
	var ew ErrorWaiter
	for i := 0; i < 3; i++ {
		ew.Submit(func() error {
			<-release
			return nil
		})
	}

	done := make(chan error)
	go func() { done <- ew.Wait() }()
	select {
	case <-done:
		t.Fatal("Wait returned before the tasks finished")
	default:
	}

	close(release)
	assert.NoError(t, <-done)
}
