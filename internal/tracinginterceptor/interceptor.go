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

// Package tracinginterceptor starts an opentracing span for every invocation
// crossing a wire and propagates its context in the message headers.
package tracinginterceptor

import (
	"context"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/opentracing/opentracing-go/log"
	"go.uber.org/sca/api/invocation"
	"go.uber.org/sca/scaerrors"
	"go.uber.org/zap"
)

// Params defines the parameters for creating the Interceptor.
type Params struct {
	Tracer opentracing.Tracer
	Logger *zap.Logger
	// Service makes the interceptor continue the trace found in the message
	// headers instead of starting a client span.
	Service bool
}

// Interceptor is the tracing interceptor of wires.
type Interceptor struct {
	tracer  opentracing.Tracer
	log     *zap.Logger
	service bool
}

var _ invocation.Interceptor = (*Interceptor)(nil)

// New constructs a tracing interceptor with the provided parameters.
func New(p Params) *Interceptor {
	i := &Interceptor{
		tracer:  p.Tracer,
		log:     p.Logger,
		service: p.Service,
	}
	if i.tracer == nil {
		i.tracer = opentracing.GlobalTracer()
	}
	if i.log == nil {
		i.log = zap.NewNop()
	}
	return i
}

// Invoke implements invocation.Interceptor.
func (i *Interceptor) Invoke(ctx context.Context, msg *invocation.Message, next invocation.Invoker) *invocation.Message {
	if i.service {
		return i.handle(ctx, msg, next)
	}
	return i.call(ctx, msg, next)
}

// call starts a client span, child of the span in ctx, and injects it into
// the outgoing headers.
func (i *Interceptor) call(ctx context.Context, msg *invocation.Message, next invocation.Invoker) *invocation.Message {
	opts := []opentracing.StartSpanOption{
		opentracing.StartTime(time.Now()),
		commonTracingTags,
		ext.SpanKindRPCClient,
	}
	if parent := opentracing.SpanFromContext(ctx); parent != nil {
		opts = append(opts, opentracing.ChildOf(parent.Context()))
	}
	span := i.tracer.StartSpan(spanName(msg), opts...)
	defer span.Finish()
	setMessageTags(span, msg)

	tracingHeaders := make(map[string]string)
	if err := i.tracer.Inject(span.Context(), opentracing.TextMap, opentracing.TextMapCarrier(tracingHeaders)); err != nil {
		span.LogFields(log.String("event", "error"), log.String("message", err.Error()))
		i.log.Debug("could not inject span context", zap.Error(err))
	} else {
		for k, v := range tracingHeaders {
			msg.Headers = msg.Headers.With(k, v)
		}
	}

	res := next.Invoke(opentracing.ContextWithSpan(ctx, span), msg)
	updateSpanWithFault(span, res.Fault())
	return res
}

// handle continues the trace propagated in the incoming headers.
func (i *Interceptor) handle(ctx context.Context, msg *invocation.Message, next invocation.Invoker) *invocation.Message {
	opts := []opentracing.StartSpanOption{
		opentracing.StartTime(time.Now()),
		commonTracingTags,
		ext.SpanKindRPCServer,
	}
	parent, err := i.tracer.Extract(opentracing.TextMap, opentracing.TextMapCarrier(msg.Headers.Items()))
	if err == nil {
		opts = append(opts, ext.RPCServerOption(parent))
	} else if err != opentracing.ErrSpanContextNotFound {
		i.log.Debug("could not extract span context", zap.Error(err))
	}
	span := i.tracer.StartSpan(spanName(msg), opts...)
	defer span.Finish()
	setMessageTags(span, msg)

	res := next.Invoke(opentracing.ContextWithSpan(ctx, span), msg)
	updateSpanWithFault(span, res.Fault())
	return res
}

func spanName(msg *invocation.Message) string {
	name := msg.To.Name()
	if name == "" {
		name = msg.From.Name()
	}
	if msg.Operation != nil {
		name += "::" + msg.Operation.Name
	}
	return name
}

func setMessageTags(span opentracing.Span, msg *invocation.Message) {
	if msg.Operation != nil {
		span.SetTag(operationTag, msg.Operation.Name)
	}
	if id := msg.ConversationID(); id != "" {
		span.SetTag(conversationIDTag, id)
	}
}

func updateSpanWithFault(span opentracing.Span, err error) {
	if err == nil {
		return
	}
	ext.Error.Set(span, true)
	if !scaerrors.IsStatus(err) {
		span.SetTag(businessErrorTag, true)
		span.LogFields(log.Error(err))
		return
	}
	span.SetTag(statusCodeTag, int(scaerrors.FromError(err).Code()))
	span.LogFields(log.Error(err))
}
