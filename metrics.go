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

package sca

import (
	"context"
	"time"

	"github.com/uber-go/tally"
	"go.uber.org/net/metrics"
	"go.uber.org/net/metrics/tallypush"
	"go.uber.org/zap"
)

// Sleep between pushes to Tally metrics.
var _tallyPushInterval = 500 * time.Millisecond

// metricsPusher pushes the metrics of a runtime owned root to Tally while
// the runtime runs.
type metricsPusher struct {
	root   *metrics.Root
	tally  tally.Scope
	logger *zap.Logger
	stop   context.CancelFunc
}

func newMetricsPusher(root *metrics.Root, scope tally.Scope, logger *zap.Logger) *metricsPusher {
	return &metricsPusher{root: root, tally: scope, logger: logger}
}

func (p *metricsPusher) Start() {
	if p.root == nil || p.tally == nil {
		return
	}
	stop, err := p.root.Push(tallypush.New(p.tally), _tallyPushInterval)
	if err != nil {
		p.logger.Error("Failed to start pushing metrics to Tally.", zap.Error(err))
		return
	}
	p.stop = stop
}

func (p *metricsPusher) Stop() {
	if p.stop != nil {
		p.stop()
		p.stop = nil
	}
}
