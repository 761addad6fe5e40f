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

package observability

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/net/metrics"
	"go.uber.org/net/metrics/bucket"
	"go.uber.org/sca/api/invocation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	_timeNow          = time.Now // for tests
	_defaultGraphSize = 128
	_bucketsMs        = bucket.NewRPCLatency()
)

const (
	_source    = "source"
	_dest      = "dest"
	_operation = "operation"
	_direction = "direction"
	_oneway    = "oneway"

	// _unresolved stands for the target of dynamic wires.
	_unresolved = "unresolved"
)

// A graph holds the edges between the references and services of a runtime.
// Stats are kept per source-dest-operation-direction edge.
type graph struct {
	meter  *metrics.Scope
	logger *zap.Logger

	edgesMu sync.RWMutex
	edges   map[string]*edge

	referenceLevels, serviceLevels levels
}

func newGraph(meter *metrics.Scope, logger *zap.Logger) *graph {
	return &graph{
		edges:  make(map[string]*edge, _defaultGraphSize),
		meter:  meter,
		logger: logger,
		referenceLevels: levels{
			success:          zapcore.DebugLevel,
			failure:          zapcore.ErrorLevel,
			applicationError: zapcore.WarnLevel,
			clientError:      zapcore.ErrorLevel,
		},
		serviceLevels: levels{
			success:          zapcore.DebugLevel,
			failure:          zapcore.ErrorLevel,
			applicationError: zapcore.WarnLevel,
			clientError:      zapcore.WarnLevel,
		},
	}
}

type edgeKey struct {
	source, dest, operation string
	direction               Direction
	oneway                  bool
}

func (k edgeKey) String() string {
	oneway := "false"
	if k.oneway {
		oneway = "true"
	}
	return strings.Join([]string{k.source, k.dest, k.operation, string(k.direction), oneway}, "\x00")
}

func keyFor(direction Direction, msg *invocation.Message) edgeKey {
	k := edgeKey{source: msg.From.Name(), dest: msg.To.Name(), direction: direction}
	if k.source == "" {
		k.source = "unknown"
	}
	if k.dest == "" {
		k.dest = _unresolved
	}
	if msg.Operation != nil {
		k.operation = msg.Operation.Name
		k.oneway = msg.Operation.OneWay
	}
	return k
}

// begin starts a call along an edge.
func (g *graph) begin(ctx context.Context, direction Direction, msg *invocation.Message) call {
	now := _timeNow()
	e := g.getOrCreateEdge(keyFor(direction, msg))

	return call{
		edge:    e,
		started: now,
		ctx:     ctx,
		convID:  msg.ConversationID(),
		levels:  g.levelsFor(direction),
	}
}

func (g *graph) levelsFor(direction Direction) *levels {
	if direction == DirectionService {
		return &g.serviceLevels
	}
	return &g.referenceLevels
}

func (g *graph) getOrCreateEdge(key edgeKey) *edge {
	k := key.String()

	g.edgesMu.RLock()
	e := g.edges[k]
	g.edgesMu.RUnlock()
	if e != nil {
		return e
	}

	g.edgesMu.Lock()
	defer g.edgesMu.Unlock()
	if e, ok := g.edges[k]; ok {
		// Someone beat us to it.
		return e
	}
	e = newEdge(g.logger, g.meter, key)
	g.edges[k] = e
	return e
}

// An edge is the collection of stats for one edge of the graph.
type edge struct {
	logger *zap.Logger

	calls               *metrics.Counter
	successes           *metrics.Counter
	applicationFailures *metrics.Counter
	callerFailures      *metrics.CounterVector
	serverFailures      *metrics.CounterVector

	latencies          *metrics.Histogram
	callerErrLatencies *metrics.Histogram
	serverErrLatencies *metrics.Histogram
}

// newEdge constructs an edge. Metric names must be unique within a scope, so
// edges are cached and reused for each call.
func newEdge(logger *zap.Logger, meter *metrics.Scope, key edgeKey) *edge {
	tags := metrics.Tags{
		_source:    key.source,
		_dest:      key.dest,
		_operation: key.operation,
		_direction: string(key.direction),
	}
	if key.oneway {
		tags[_oneway] = "true"
	} else {
		tags[_oneway] = "false"
	}

	calls, err := meter.Counter(metrics.Spec{
		Name:      "calls",
		Help:      "Total number of invocations.",
		ConstTags: tags,
	})
	if err != nil {
		logger.Error("Failed to create calls counter.", zap.Error(err))
	}
	successes, err := meter.Counter(metrics.Spec{
		Name:      "successes",
		Help:      "Number of successful invocations.",
		ConstTags: tags,
	})
	if err != nil {
		logger.Error("Failed to create successes counter.", zap.Error(err))
	}
	applicationFailures, err := meter.Counter(metrics.Spec{
		Name:      "application_failures",
		Help:      "Number of invocations that returned a business error.",
		ConstTags: tags,
	})
	if err != nil {
		logger.Error("Failed to create application failures counter.", zap.Error(err))
	}
	callerFailures, err := meter.CounterVector(metrics.Spec{
		Name:      "caller_failures",
		Help:      "Number of invocations failed because of caller error.",
		ConstTags: tags,
		VarTags:   []string{_error},
	})
	if err != nil {
		logger.Error("Failed to create caller failures vector.", zap.Error(err))
	}
	serverFailures, err := meter.CounterVector(metrics.Spec{
		Name:      "server_failures",
		Help:      "Number of invocations failed because of callee or runtime error.",
		ConstTags: tags,
		VarTags:   []string{_error},
	})
	if err != nil {
		logger.Error("Failed to create server failures vector.", zap.Error(err))
	}

	latencies, err := meter.Histogram(metrics.HistogramSpec{
		Spec: metrics.Spec{
			Name:      "success_latency_ms",
			Help:      "Latency distribution of successful invocations.",
			ConstTags: tags,
		},
		Unit:    time.Millisecond,
		Buckets: _bucketsMs,
	})
	if err != nil {
		logger.Error("Failed to create success latency distribution.", zap.Error(err))
	}
	callerErrLatencies, err := meter.Histogram(metrics.HistogramSpec{
		Spec: metrics.Spec{
			Name:      "caller_failure_latency_ms",
			Help:      "Latency distribution of invocations failed because of caller error.",
			ConstTags: tags,
		},
		Unit:    time.Millisecond,
		Buckets: _bucketsMs,
	})
	if err != nil {
		logger.Error("Failed to create caller failure latency distribution.", zap.Error(err))
	}
	serverErrLatencies, err := meter.Histogram(metrics.HistogramSpec{
		Spec: metrics.Spec{
			Name:      "server_failure_latency_ms",
			Help:      "Latency distribution of invocations failed because of callee or runtime error.",
			ConstTags: tags,
		},
		Unit:    time.Millisecond,
		Buckets: _bucketsMs,
	})
	if err != nil {
		logger.Error("Failed to create server failure latency distribution.", zap.Error(err))
	}

	logger = logger.With(
		zap.String(_source, key.source),
		zap.String(_dest, key.dest),
		zap.String(_operation, key.operation),
		zap.String(_direction, string(key.direction)),
		zap.Bool(_oneway, key.oneway),
	)
	return &edge{
		logger:              logger,
		calls:               calls,
		successes:           successes,
		applicationFailures: applicationFailures,
		callerFailures:      callerFailures,
		serverFailures:      serverFailures,
		latencies:           latencies,
		callerErrLatencies:  callerErrLatencies,
		serverErrLatencies:  serverErrLatencies,
	}
}
