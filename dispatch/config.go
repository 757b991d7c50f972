package dispatch

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/petal-labs/albert-go/core"
)

// DefaultTimeout bounds every call when Config.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent identifies the client on the wire.
const DefaultUserAgent = "albert-go"

// Config holds the settings fixed for the lifetime of a client.
type Config struct {
	// BaseURL is the platform root, e.g. https://albert.api.etalab.gouv.fr (required).
	BaseURL string

	// APIKey is the bearer credential (required).
	APIKey core.Secret

	// Timeout bounds each call, from send to fully read body. Defaults to DefaultTimeout.
	Timeout time.Duration

	// HTTPClient is the underlying session. Defaults to a fresh client with
	// its own connection pool. Its own Timeout is left untouched.
	HTTPClient *http.Client

	// Headers are extra default headers sent with every request.
	Headers http.Header

	// UserAgent overrides DefaultUserAgent.
	UserAgent string
}

// Validate checks the required settings and returns a normalized base URL
// with no trailing slash.
func (c Config) Validate() (*url.URL, error) {
	raw := strings.TrimSpace(c.BaseURL)
	if raw == "" {
		return nil, &core.ConfigError{Field: "base_url", Message: "base URL is required (set ALBERT_API_BASE_URL or pass it explicitly)"}
	}
	if c.APIKey.IsEmpty() {
		return nil, &core.ConfigError{Field: "api_key", Message: "API key is required (set ALBERT_API_KEY or pass it explicitly)"}
	}
	if c.Timeout < 0 {
		return nil, &core.ConfigError{Field: "timeout", Message: "timeout must not be negative"}
	}

	u, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil {
		return nil, &core.ConfigError{Field: "base_url", Message: err.Error()}
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, &core.ConfigError{Field: "base_url", Message: "base URL must be an absolute http(s) URL, got " + raw}
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return nil, &core.ConfigError{Field: "base_url", Message: "base URL must not carry a query or fragment"}
	}
	return u, nil
}

func (c Config) timeout() time.Duration {
	if c.Timeout == 0 {
		return DefaultTimeout
	}
	return c.Timeout
}
