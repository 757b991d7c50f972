package core

import "time"

// TelemetryHook receives notifications about the lifecycle of every dispatched call.
// Implementations can use this for logging, metrics or tracing.
//
// Events carry operational metadata only. The credential, request bodies,
// uploaded files and response bodies are never part of an event, so events
// can be exported to external systems as-is.
//
// Hooks are invoked synchronously on the calling goroutine and must be safe
// for concurrent use when the client is shared.
type TelemetryHook interface {
	// OnRequestStart is called once the request is built, before it is sent.
	OnRequestStart(e RequestStartEvent)

	// OnRequestEnd is called after the response was interpreted or the call failed.
	OnRequestEnd(e RequestEndEvent)
}

// RequestStartEvent describes a call about to be sent.
type RequestStartEvent struct {
	Operation string    // Endpoint name, e.g. "collections.get"
	Method    string    // HTTP verb
	Path      string    // Path template, never the resolved path
	RequestID string    // Client-generated X-Request-Id
	Start     time.Time // When the call started
}

// RequestEndEvent describes a finished call.
type RequestEndEvent struct {
	Operation string
	Method    string
	Path      string
	RequestID string
	Status    int // 0 when no response was received
	Start     time.Time
	End       time.Time
	Err       error // nil on success
}

// Duration returns the elapsed time for the call.
func (e RequestEndEvent) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// NoopTelemetryHook discards all events.
type NoopTelemetryHook struct{}

// OnRequestStart does nothing.
func (NoopTelemetryHook) OnRequestStart(RequestStartEvent) {}

// OnRequestEnd does nothing.
func (NoopTelemetryHook) OnRequestEnd(RequestEndEvent) {}

var _ TelemetryHook = NoopTelemetryHook{}
