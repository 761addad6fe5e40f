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

// Package observability logs and measures invocations flowing through
// wires.
package observability

import (
	"context"

	"go.uber.org/net/metrics"
	"go.uber.org/sca/api/invocation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Direction tells which end of a wire an Interceptor observes.
type Direction string

const (
	// DirectionReference observes calls made through references.
	DirectionReference Direction = "reference"
	// DirectionService observes calls received by services.
	DirectionService Direction = "service"
)

// Config configures an Interceptor.
type Config struct {
	// Logger defaults to a no-op logger.
	Logger *zap.Logger
	// Scope defaults to a fresh, unexported metrics root.
	Scope     *metrics.Scope
	Direction Direction

	// Levels overrides the levels invocations are logged at. Unset levels
	// keep the defaults of the direction.
	Levels Levels
}

// Levels are the levels at which the outcomes of invocations are logged.
type Levels struct {
	Success          *zapcore.Level
	Failure          *zapcore.Level
	ApplicationError *zapcore.Level
	ClientError      *zapcore.Level
}

func (l Levels) applyTo(dst *levels) {
	if l.Success != nil {
		dst.success = *l.Success
	}
	if l.Failure != nil {
		dst.failure = *l.Failure
	}
	if l.ApplicationError != nil {
		dst.applicationError = *l.ApplicationError
	}
	if l.ClientError != nil {
		dst.clientError = *l.ClientError
	}
}

// Interceptor logs every invocation and records call counts, failures by
// code and latencies per edge.
type Interceptor struct {
	graph     *graph
	direction Direction
}

var _ invocation.Interceptor = (*Interceptor)(nil)

// NewInterceptor builds an Interceptor.
func NewInterceptor(cfg Config) *Interceptor {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	scope := cfg.Scope
	if scope == nil {
		scope = metrics.New().Scope()
	}
	direction := cfg.Direction
	if direction == "" {
		direction = DirectionReference
	}
	g := newGraph(scope, logger)
	cfg.Levels.applyTo(g.levelsFor(direction))
	return &Interceptor{graph: g, direction: direction}
}

// Invoke implements invocation.Interceptor.
func (i *Interceptor) Invoke(ctx context.Context, msg *invocation.Message, next invocation.Invoker) *invocation.Message {
	call := i.graph.begin(ctx, i.direction, msg)
	res := next.Invoke(ctx, msg)
	call.End(res.Fault())
	return res
}
