package dispatch

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/petal-labs/albert-go/core"
)

// RawResponse is the undecoded outcome of one round trip.
type RawResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	RequestID  string
}

// Sender performs one network round trip for a built Request.
// Transport is the production Sender; tests substitute recording fakes.
type Sender interface {
	Send(ctx context.Context, req *Request) (*RawResponse, error)
}

// Transport owns the authenticated session of one client.
//
// The default header set (credential, content negotiation, user agent) is
// fixed in NewTransport and never mutated afterwards, so a Transport is safe
// for concurrent use by any number of in-flight calls.
type Transport struct {
	httpClient *http.Client
	header     http.Header
	timeout    time.Duration
	closed     atomic.Bool
}

// NewTransport builds the session from a validated Config.
func NewTransport(cfg Config) *Transport {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Transport: http.DefaultTransport.(*http.Transport).Clone()}
	}

	header := make(http.Header)
	header.Set("Authorization", cfg.APIKey.Bearer())
	header.Set("Content-Type", contentTypeJSON)
	header.Set("Accept", contentTypeJSON)
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	header.Set("User-Agent", userAgent)
	for key, values := range cfg.Headers {
		for _, v := range values {
			header.Add(key, v)
		}
	}

	return &Transport{
		httpClient: httpClient,
		header:     header,
		timeout:    cfg.timeout(),
	}
}

// Send performs exactly one attempt. Any failure before a complete response
// is read is reported as *core.TransportError; the status code is not
// inspected here.
func (t *Transport) Send(ctx context.Context, req *Request) (*RawResponse, error) {
	if t.closed.Load() {
		return nil, core.ErrClientClosed
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL.String(), body)
	if err != nil {
		return nil, &core.TransportError{Op: "create request", URL: req.URL.Redacted(), Err: err}
	}

	for key, values := range t.header {
		httpReq.Header[key] = append([]string(nil), values...)
	}
	// Request headers win, which lets multipart bodies carry their boundary.
	for key, values := range req.Header {
		httpReq.Header[key] = append([]string(nil), values...)
	}

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, &core.TransportError{Op: req.Method, URL: req.URL.Redacted(), Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &core.TransportError{Op: "read response", URL: req.URL.Redacted(), Err: err}
	}

	requestID := resp.Header.Get("x-request-id")
	if requestID == "" {
		requestID = req.ID()
	}

	return &RawResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
		RequestID:  requestID,
	}, nil
}

// Close releases idle connections. Later calls fail with core.ErrClientClosed.
func (t *Transport) Close() error {
	if t.closed.Swap(true) {
		return nil
	}
	t.httpClient.CloseIdleConnections()
	return nil
}

var _ Sender = (*Transport)(nil)
