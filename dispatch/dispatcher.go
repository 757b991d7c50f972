package dispatch

import (
	"context"
	"log/slog"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/petal-labs/albert-go/core"
)

// Dispatcher chains the request builder, the authenticated transport and the
// response interpreter. It holds no per-call state and is safe for
// concurrent use.
type Dispatcher struct {
	base      *url.URL
	transport *Transport
	sender    Sender
	telemetry core.TelemetryHook
	logger    *slog.Logger
	closed    atomic.Bool
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithSender replaces the network round trip. The default is the Transport
// built from the Config.
func WithSender(s Sender) Option {
	return func(d *Dispatcher) {
		if s != nil {
			d.sender = s
		}
	}
}

// WithTelemetry sets the telemetry hook.
func WithTelemetry(hook core.TelemetryHook) Option {
	return func(d *Dispatcher) {
		if hook != nil {
			d.telemetry = hook
		}
	}
}

// WithLogger sets the logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// New validates cfg once and opens the session. Missing base URL or
// credential fails here with *core.ConfigError and never at call time.
func New(cfg Config, opts ...Option) (*Dispatcher, error) {
	base, err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	transport := NewTransport(cfg)
	d := &Dispatcher{
		base:      base,
		transport: transport,
		sender:    transport,
		telemetry: core.NoopTelemetryHook{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = d.logger.With("component", "albert-dispatch")

	return d, nil
}

// BaseURL returns the normalized base URL.
func (d *Dispatcher) BaseURL() *url.URL {
	u := *d.base
	return &u
}

// Build resolves a call against this dispatcher's base URL without sending it.
func (d *Dispatcher) Build(ep Endpoint, call Call) (*Request, error) {
	return Build(d.base, ep, call)
}

// Do performs one call: build, send once, interpret. It returns exactly one
// of a result or a classified error.
func (d *Dispatcher) Do(ctx context.Context, ep Endpoint, call Call) (*core.Result, error) {
	if d.closed.Load() {
		return nil, core.ErrClientClosed
	}

	req, err := d.Build(ep, call)
	if err != nil {
		d.logger.Debug("request not built", "operation", ep.Name, "err", err)
		return nil, err
	}

	start := time.Now()
	d.telemetry.OnRequestStart(core.RequestStartEvent{
		Operation: ep.Name,
		Method:    ep.Method,
		Path:      ep.Path,
		RequestID: req.ID(),
		Start:     start,
	})

	result, status, err := d.roundTrip(ctx, req)

	end := time.Now()
	d.telemetry.OnRequestEnd(core.RequestEndEvent{
		Operation: ep.Name,
		Method:    ep.Method,
		Path:      ep.Path,
		RequestID: req.ID(),
		Status:    status,
		Start:     start,
		End:       end,
		Err:       err,
	})

	attrs := []any{
		"operation", ep.Name,
		"method", ep.Method,
		"path", ep.Path,
		"request_id", req.ID(),
		"status", status,
		"duration", end.Sub(start),
	}
	if err != nil {
		d.logger.Debug("request failed", append(attrs, "err", err)...)
		return nil, err
	}
	d.logger.Debug("request completed", attrs...)
	return result, nil
}

func (d *Dispatcher) roundTrip(ctx context.Context, req *Request) (*core.Result, int, error) {
	resp, err := d.sender.Send(ctx, req)
	if err != nil {
		return nil, 0, err
	}
	result, err := Interpret(resp)
	return result, resp.StatusCode, err
}

// Close releases the session. Senders supplied with WithSender belong to
// the caller and are left open. Close is safe to call more than once.
func (d *Dispatcher) Close() error {
	if d.closed.Swap(true) {
		return nil
	}
	return d.transport.Close()
}
