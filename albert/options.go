package albert

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/petal-labs/albert-go/core"
	"github.com/petal-labs/albert-go/dispatch"
)

// Environment variables read by NewFromEnv.
const (
	EnvBaseURL = "ALBERT_API_BASE_URL"
	EnvAPIKey  = "ALBERT_API_KEY"
)

// DefaultBaseURL is the public Albert deployment.
const DefaultBaseURL = "https://albert.api.etalab.gouv.fr"

type settings struct {
	config    dispatch.Config
	logger    *slog.Logger
	telemetry core.TelemetryHook
	sender    dispatch.Sender
}

// Option configures a Client.
type Option func(*settings)

// WithTimeout sets the per-call timeout. Defaults to 30 seconds.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) {
		s.config.Timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(s *settings) {
		s.config.HTTPClient = client
	}
}

// WithHeader adds an extra header to include in requests.
func WithHeader(key, value string) Option {
	return func(s *settings) {
		if s.config.Headers == nil {
			s.config.Headers = make(http.Header)
		}
		s.config.Headers.Set(key, value)
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(s *settings) {
		s.config.UserAgent = ua
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithTelemetry sets a hook notified around every call.
func WithTelemetry(hook core.TelemetryHook) Option {
	return func(s *settings) {
		s.telemetry = hook
	}
}

// WithSender replaces the network round trip, typically with a fake in tests.
func WithSender(sender dispatch.Sender) Option {
	return func(s *settings) {
		s.sender = sender
	}
}
