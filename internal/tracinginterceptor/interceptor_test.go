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

package tracinginterceptor

import (
	"context"
	"errors"
	"testing"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/mocktracer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/sca/api/assembly"
	"go.uber.org/sca/api/invocation"
	"go.uber.org/sca/scaerrors"
)

var _order = &assembly.Operation{Name: "order"}

func request() *invocation.Message {
	msg := invocation.NewRequest(_order, "pizza")
	msg.Headers = msg.Headers.With(invocation.ConversationIDHeader, "conv-1")
	msg.From = &assembly.EndpointReference{
		Component: &assembly.Component{Name: "Shop"},
		Reference: &assembly.ComponentReference{Contract: assembly.Contract{Name: "kitchen"}},
	}
	msg.To = &assembly.Endpoint{
		Component: &assembly.Component{Name: "Kitchen"},
		Service:   &assembly.ComponentService{Contract: assembly.Contract{Name: "Orders"}},
	}
	return msg
}

func TestCallAndHandlePropagate(t *testing.T) {
	tracer := mocktracer.New()
	client := New(Params{Tracer: tracer})
	server := New(Params{Tracer: tracer, Service: true})

	var serverCtx context.Context
	terminal := invocation.InvokerFunc(func(ctx context.Context, msg *invocation.Message) *invocation.Message {
		serverCtx = ctx
		return invocation.NewResponse("ok")
	})
	serviceSide := invocation.InvokerFunc(func(ctx context.Context, msg *invocation.Message) *invocation.Message {
		// The service side only sees what travelled in the message.
		return server.Invoke(context.Background(), msg, terminal)
	})

	res := client.Invoke(context.Background(), request(), serviceSide)
	require.False(t, res.IsFault())
	require.NotNil(t, opentracing.SpanFromContext(serverCtx))

	spans := tracer.FinishedSpans()
	require.Len(t, spans, 2)
	serverSpan, clientSpan := spans[0], spans[1]

	assert.Equal(t, "Kitchen/Orders::order", clientSpan.OperationName)
	assert.Equal(t, clientSpan.SpanContext.TraceID, serverSpan.SpanContext.TraceID)
	assert.Equal(t, clientSpan.SpanContext.SpanID, serverSpan.ParentID)

	tags := clientSpan.Tags()
	assert.Equal(t, "order", tags[operationTag])
	assert.Equal(t, "conv-1", tags[conversationIDTag])
	assert.Equal(t, tracingComponentName, tags["component"])
	assert.Nil(t, tags["error"])
}

func TestClientSpanIsChildOfContext(t *testing.T) {
	tracer := mocktracer.New()
	parent := tracer.StartSpan("parent")
	ctx := opentracing.ContextWithSpan(context.Background(), parent)

	New(Params{Tracer: tracer}).Invoke(ctx, request(), invocation.InvokerFunc(
		func(context.Context, *invocation.Message) *invocation.Message {
			return invocation.NewResponse(nil)
		}))
	parent.Finish()

	spans := tracer.FinishedSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, parent.(*mocktracer.MockSpan).SpanContext.SpanID, spans[0].ParentID)
}

func TestFaultTags(t *testing.T) {
	tests := []struct {
		desc         string
		fault        error
		wantCode     interface{}
		wantBusiness interface{}
	}{
		{
			desc:     "runtime fault",
			fault:    scaerrors.ServiceUnavailableErrorf("down"),
			wantCode: int(scaerrors.CodeServiceUnavailable),
		},
		{
			desc:         "business error",
			fault:        errors.New("no cheese"),
			wantBusiness: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			tracer := mocktracer.New()
			New(Params{Tracer: tracer, Service: true}).Invoke(context.Background(), request(), invocation.InvokerFunc(
				func(context.Context, *invocation.Message) *invocation.Message {
					return invocation.NewFault(tt.fault)
				}))

			spans := tracer.FinishedSpans()
			require.Len(t, spans, 1)
			tags := spans[0].Tags()
			assert.Equal(t, true, tags["error"])
			assert.Equal(t, tt.wantCode, tags[statusCodeTag])
			assert.Equal(t, tt.wantBusiness, tags[businessErrorTag])
			assert.Equal(t, 0, spans[0].ParentID, "no parent without propagated headers")
		})
	}
}

func TestDefaultTracer(t *testing.T) {
	i := New(Params{})
	assert.Equal(t, opentracing.GlobalTracer(), i.tracer)
	assert.NotNil(t, i.log)
}
