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

// Package backoff computes how long to wait between attempts of a retried
// call.
package backoff

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/multierr"
)

// Strategy determines how long to wait after a number of failed attempts.
// Implementations are safe for concurrent use.
type Strategy interface {
	Duration(attempt uint) time.Duration
}

// ExponentialOption customizes an Exponential strategy.
type ExponentialOption func(*exponentialOptions)

type exponentialOptions struct {
	first, max time.Duration
	rand       *rand.Rand
}

func (o exponentialOptions) validate() (err error) {
	if o.first <= 0 {
		err = multierr.Append(err, errors.New("invalid first backoff, need greater than zero"))
	}
	if o.max <= 0 {
		err = multierr.Append(err, errors.New("invalid max backoff, need greater than zero"))
	}
	if o.max < o.first {
		err = multierr.Append(err, errors.New("max backoff must not be less than the first backoff"))
	}
	return err
}

// FirstBackoff sets the range of the wait after the first failed attempt.
// Defaults to 10 milliseconds.
func FirstBackoff(d time.Duration) ExponentialOption {
	return func(o *exponentialOptions) {
		o.first = d
	}
}

// MaxBackoff sets the absolute max time that will ever be returned for a
// backoff. Defaults to one second.
func MaxBackoff(d time.Duration) ExponentialOption {
	return func(o *exponentialOptions) {
		o.max = d
	}
}

// randGenerator overrides the random number generator.
func randGenerator(r *rand.Rand) ExponentialOption {
	return func(o *exponentialOptions) {
		o.rand = r
	}
}

// Exponential is an exponential backoff strategy with "Full Jitter": the
// wait after attempt n is drawn uniformly from [0, first * 2^n], capped at
// max.
type Exponential struct {
	first, max time.Duration

	mu   sync.Mutex
	rand *rand.Rand
}

var _ Strategy = (*Exponential)(nil)

// NewExponential builds an Exponential strategy.
func NewExponential(opts ...ExponentialOption) (*Exponential, error) {
	o := exponentialOptions{
		first: 10 * time.Millisecond,
		max:   time.Second,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	if o.rand == nil {
		o.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Exponential{first: o.first, max: o.max, rand: o.rand}, nil
}

// Duration returns the time to wait after the given attempt, counted from
// zero.
func (e *Exponential) Duration(attempt uint) time.Duration {
	limit := e.max
	// Shifting past the max could overflow.
	if attempt < 62 && e.first <= e.max>>attempt {
		limit = e.first << attempt
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return time.Duration(e.rand.Int63n(int64(limit) + 1))
}
