// Package albertotel records Albert platform calls as OpenTelemetry spans.
//
//	hook := albertotel.NewHook(albertotel.WithTracerProvider(tp))
//	client, err := albert.New(baseURL, apiKey, albert.WithTelemetry(hook))
//
// Each call becomes one client span named after the endpoint, e.g.
// "albert collections.get". Spans carry the verb, the path template, the
// response status and the client request ID. Credentials and bodies are
// never recorded.
package albertotel

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/petal-labs/albert-go/core"
)

// ScopeName is the instrumentation scope of the tracer.
const ScopeName = "github.com/petal-labs/albert-go/contrib/otel"

// Attribute keys set on every span.
const (
	AttrOperation  = attribute.Key("albert.operation")
	AttrRequestID  = attribute.Key("albert.request_id")
	AttrMethod     = attribute.Key("http.request.method")
	AttrURLPattern = attribute.Key("url.template")
	AttrStatusCode = attribute.Key("http.response.status_code")
)

// Option configures a Hook.
type Option func(*Hook)

// WithTracerProvider sets the provider; the global provider is used otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(h *Hook) {
		if tp != nil {
			h.provider = tp
		}
	}
}

// WithParentContext makes every span a child of the span in ctx.
func WithParentContext(ctx context.Context) Option {
	return func(h *Hook) {
		if ctx != nil {
			h.parent = ctx
		}
	}
}

// Hook implements core.TelemetryHook. In-flight spans are keyed by the
// request ID, so one Hook can serve concurrent calls.
type Hook struct {
	provider trace.TracerProvider
	tracer   trace.Tracer
	parent   context.Context
	spans    sync.Map // request ID -> trace.Span
}

var _ core.TelemetryHook = (*Hook)(nil)

// NewHook creates a tracing hook.
func NewHook(opts ...Option) *Hook {
	h := &Hook{
		provider: otel.GetTracerProvider(),
		parent:   context.Background(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.tracer = h.provider.Tracer(ScopeName)
	return h
}

// OnRequestStart opens the span for a call.
func (h *Hook) OnRequestStart(e core.RequestStartEvent) {
	_, span := h.tracer.Start(h.parent, "albert "+e.Operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithTimestamp(e.Start),
		trace.WithAttributes(
			AttrOperation.String(e.Operation),
			AttrMethod.String(e.Method),
			AttrURLPattern.String(e.Path),
			AttrRequestID.String(e.RequestID),
		),
	)
	h.spans.Store(e.RequestID, span)
}

// OnRequestEnd closes the span for a call. An end without a matching start
// is ignored.
func (h *Hook) OnRequestEnd(e core.RequestEndEvent) {
	v, ok := h.spans.LoadAndDelete(e.RequestID)
	if !ok {
		return
	}
	span := v.(trace.Span)

	if e.Status != 0 {
		span.SetAttributes(AttrStatusCode.Int(e.Status))
	}
	if e.Err != nil {
		span.RecordError(e.Err)
		span.SetStatus(codes.Error, e.Err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End(trace.WithTimestamp(e.End))
}

// InFlight returns the number of spans started but not yet ended.
func (h *Hook) InFlight() int {
	n := 0
	h.spans.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
