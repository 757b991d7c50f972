package albert

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strconv"

	"github.com/petal-labs/albert-go/core"
	"github.com/petal-labs/albert-go/dispatch"
)

// Client exposes the Albert platform operations. Create one with New,
// NewFromEnv or Scoped; it is safe for concurrent use and must be closed.
type Client struct {
	d      *dispatch.Dispatcher
	logger *slog.Logger
}

// New creates a client for the platform at baseURL authenticated with apiKey.
// It fails with *core.ConfigError when either is empty; no network call is
// made.
func New(baseURL, apiKey string, opts ...Option) (*Client, error) {
	s := settings{
		config: dispatch.Config{
			BaseURL: baseURL,
			APIKey:  core.NewSecret(apiKey),
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	dopts := []dispatch.Option{dispatch.WithLogger(s.logger)}
	if s.telemetry != nil {
		dopts = append(dopts, dispatch.WithTelemetry(s.telemetry))
	}
	if s.sender != nil {
		dopts = append(dopts, dispatch.WithSender(s.sender))
	}

	d, err := dispatch.New(s.config, dopts...)
	if err != nil {
		return nil, err
	}

	return &Client{
		d:      d,
		logger: s.logger.With("component", "albert"),
	}, nil
}

// NewFromEnv creates a client from ALBERT_API_BASE_URL and ALBERT_API_KEY.
func NewFromEnv(opts ...Option) (*Client, error) {
	return New(os.Getenv(EnvBaseURL), os.Getenv(EnvAPIKey), opts...)
}

// Scoped creates a client, hands it to fn and closes it on every exit path,
// panics included.
func Scoped(baseURL, apiKey string, fn func(*Client) error, opts ...Option) (err error) {
	c, err := New(baseURL, apiKey, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := c.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()
	return fn(c)
}

// Close releases the network session. Calls made afterwards fail with
// core.ErrClientClosed. Close is idempotent.
func (c *Client) Close() error {
	return c.d.Close()
}

// BaseURL returns the normalized platform base URL.
func (c *Client) BaseURL() string {
	return c.d.BaseURL().String()
}

// Do performs an arbitrary catalog call. The typed methods are thin wrappers
// around it.
func (c *Client) Do(ctx context.Context, ep dispatch.Endpoint, call dispatch.Call) (*core.Result, error) {
	return c.d.Do(ctx, ep, call)
}

// doEmpty performs a call whose success carries no useful body.
func (c *Client) doEmpty(ctx context.Context, ep dispatch.Endpoint, call dispatch.Call) error {
	_, err := c.d.Do(ctx, ep, call)
	return err
}

// ListOptions controls offset/limit pagination. Pages are fetched one at a
// time; the client never walks pages on its own.
//
// The zero value asks for the first page of 10, so an explicit limit=0 is
// never sent.
type ListOptions struct {
	Offset int
	// Limit is the page size. Zero means 10.
	Limit int
}

const defaultListLimit = 10

func (o ListOptions) query() dispatch.Query {
	limit := o.Limit
	if limit == 0 {
		limit = defaultListLimit
	}
	return dispatch.Query{"offset": o.Offset, "limit": limit}
}

func withExtras(q dispatch.Query, extra core.Extras) dispatch.Query {
	for k, v := range extra {
		q[k] = v
	}
	return q
}

func pathID(v int) string {
	return strconv.Itoa(v)
}
