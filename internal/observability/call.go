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
	"time"

	"go.uber.org/sca/scaerrors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	_error = "error"

	_errorCodeLogKey = "errorCode"

	_successful = "Invocation completed."
	_failed     = "Invocation failed."
)

// A call represents a single invocation along an edge.
type call struct {
	edge    *edge
	started time.Time
	ctx     context.Context
	convID  string

	levels *levels
}

type levels struct {
	success, failure, applicationError, clientError zapcore.Level
}

// End records the outcome of the call. A fault that is not a
// scaerrors.Status is a business error of the implementation.
func (c call) End(err error) {
	elapsed := _timeNow().Sub(c.started)
	c.endLogs(elapsed, err)
	c.endStats(elapsed, err)
}

func (c call) endLogs(elapsed time.Duration, err error) {
	var ce *zapcore.CheckedEntry
	switch {
	case err == nil:
		ce = c.edge.logger.Check(c.levels.success, _successful)
	case !scaerrors.IsStatus(err):
		ce = c.edge.logger.Check(c.levels.applicationError, _failed)
	case faultFromCode(scaerrors.FromError(err).Code()) == clientFault:
		ce = c.edge.logger.Check(c.levels.clientError, _failed)
	default:
		ce = c.edge.logger.Check(c.levels.failure, _failed)
	}
	if ce == nil {
		return
	}

	fields := make([]zap.Field, 0, 6)
	fields = append(fields, zap.Duration("latency", elapsed))
	fields = append(fields, zap.Bool("successful", err == nil))
	if c.convID != "" {
		fields = append(fields, zap.String("conversationID", c.convID))
	}
	if deadline, ok := c.ctx.Deadline(); ok {
		fields = append(fields, zap.Duration("ttl", deadline.Sub(c.started)))
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
		fields = append(fields, zap.String(_errorCodeLogKey, scaerrors.FromError(err).Code().String()))
	}
	ce.Write(fields...)
}

func (c call) endStats(elapsed time.Duration, err error) {
	c.edge.calls.Inc()

	if err == nil {
		c.edge.successes.Inc()
		c.edge.latencies.Observe(elapsed)
		return
	}

	if !scaerrors.IsStatus(err) {
		c.edge.applicationFailures.Inc()
		c.edge.callerErrLatencies.Observe(elapsed)
		return
	}

	code := scaerrors.FromError(err).Code()
	switch faultFromCode(code) {
	case clientFault:
		c.edge.callerErrLatencies.Observe(elapsed)
		if counter, err := c.edge.callerFailures.Get(_error, code.String()); err == nil {
			counter.Inc()
		}
	default:
		// Codes outside the known range count as server failures.
		c.edge.serverErrLatencies.Observe(elapsed)
		if counter, err := c.edge.serverFailures.Get(_error, code.String()); err == nil {
			counter.Inc()
		}
	}
}
