package dispatch

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petal-labs/albert-go/core"
)

// recordingSender answers every request with a canned response and keeps
// the requests it saw.
type recordingSender struct {
	mu       sync.Mutex
	requests []*Request
	resp     *RawResponse
	err      error
}

func (s *recordingSender) Send(_ context.Context, req *Request) (*RawResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	if s.err != nil {
		return nil, s.err
	}
	resp := *s.resp
	resp.RequestID = req.ID()
	return &resp, nil
}

func (s *recordingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

type recordingHook struct {
	mu     sync.Mutex
	starts []core.RequestStartEvent
	ends   []core.RequestEndEvent
}

func (h *recordingHook) OnRequestStart(e core.RequestStartEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.starts = append(h.starts, e)
}

func (h *recordingHook) OnRequestEnd(e core.RequestEndEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ends = append(h.ends, e)
}

func testConfig() Config {
	return Config{BaseURL: "https://albert.example/", APIKey: core.NewSecret("sk-test")}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		field string
	}{
		{"missing base url", Config{APIKey: core.NewSecret("k")}, "base_url"},
		{"blank base url", Config{BaseURL: "   ", APIKey: core.NewSecret("k")}, "base_url"},
		{"missing key", Config{BaseURL: "https://albert.example"}, "api_key"},
		{"negative timeout", Config{BaseURL: "https://albert.example", APIKey: core.NewSecret("k"), Timeout: -1}, "timeout"},
		{"relative url", Config{BaseURL: "albert.example", APIKey: core.NewSecret("k")}, "base_url"},
		{"ftp scheme", Config{BaseURL: "ftp://albert.example", APIKey: core.NewSecret("k")}, "base_url"},
		{"query in base url", Config{BaseURL: "https://albert.example?x=1", APIKey: core.NewSecret("k")}, "base_url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &recordingSender{resp: &RawResponse{StatusCode: http.StatusOK, Body: []byte(`{}`)}}

			d, err := New(tt.cfg, WithSender(sender))

			assert.Nil(t, d)
			assert.ErrorIs(t, err, core.ErrConfiguration)
			var cfgErr *core.ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.field, cfgErr.Field)
			assert.Zero(t, sender.count())
		})
	}
}

func TestNewNormalizesBaseURL(t *testing.T) {
	d, err := New(testConfig())
	require.NoError(t, err)
	defer d.Close()

	assert.Equal(t, "https://albert.example", d.BaseURL().String())
}

func TestDoSuccess(t *testing.T) {
	sender := &recordingSender{resp: &RawResponse{StatusCode: http.StatusOK, Body: []byte(`{"id":7}`)}}
	hook := &recordingHook{}
	d, err := New(testConfig(), WithSender(sender), WithTelemetry(hook))
	require.NoError(t, err)

	result, err := d.Do(context.Background(), testCollection, Call{Path: PathParams{"collection_id": "7"}})
	require.NoError(t, err)

	id, ok := result.Field("id")
	require.True(t, ok)
	assert.Equal(t, float64(7), id)

	require.Equal(t, 1, sender.count())
	sent := sender.requests[0]
	assert.Equal(t, "https://albert.example/v1/collections/7", sent.URL.String())

	require.Len(t, hook.starts, 1)
	require.Len(t, hook.ends, 1)
	start, end := hook.starts[0], hook.ends[0]
	assert.Equal(t, "collections.get", start.Operation)
	assert.Equal(t, "/v1/collections/{collection_id}", start.Path)
	assert.Equal(t, sent.ID(), start.RequestID)
	assert.Equal(t, start.RequestID, end.RequestID)
	assert.Equal(t, http.StatusOK, end.Status)
	assert.NoError(t, end.Err)
	assert.False(t, end.End.Before(end.Start))
}

func TestDoStatusErrorReachesTelemetry(t *testing.T) {
	sender := &recordingSender{resp: &RawResponse{StatusCode: http.StatusNotFound, Body: []byte(`{"detail":"Collection not found"}`)}}
	hook := &recordingHook{}
	d, err := New(testConfig(), WithSender(sender), WithTelemetry(hook))
	require.NoError(t, err)

	result, err := d.Do(context.Background(), testCollection, Call{Path: PathParams{"collection_id": "7"}})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Contains(t, err.Error(), "Collection not found")
	require.Len(t, hook.ends, 1)
	assert.Equal(t, http.StatusNotFound, hook.ends[0].Status)
	assert.ErrorIs(t, hook.ends[0].Err, core.ErrHTTPStatus)
}

func TestDoTransportErrorHasNoStatus(t *testing.T) {
	sender := &recordingSender{err: &core.TransportError{Op: "GET", Err: errors.New("connection refused")}}
	hook := &recordingHook{}
	d, err := New(testConfig(), WithSender(sender), WithTelemetry(hook))
	require.NoError(t, err)

	_, err = d.Do(context.Background(), testDocuments, Call{})

	assert.ErrorIs(t, err, core.ErrTransport)
	require.Len(t, hook.ends, 1)
	assert.Zero(t, hook.ends[0].Status)
}

func TestDoMissingFileSendsNothing(t *testing.T) {
	sender := &recordingSender{resp: &RawResponse{StatusCode: http.StatusCreated, Body: []byte(`{"id":1}`)}}
	hook := &recordingHook{}
	d, err := New(testConfig(), WithSender(sender), WithTelemetry(hook))
	require.NoError(t, err)

	_, err = d.Do(context.Background(), testCreateDoc, Call{File: &FileSpec{Path: "/nonexistent/report.pdf"}})

	assert.ErrorIs(t, err, core.ErrResourceNotFound)
	assert.Zero(t, sender.count())
	assert.Empty(t, hook.starts)
	assert.Empty(t, hook.ends)
}

func TestDoLogsAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	sender := &recordingSender{resp: &RawResponse{StatusCode: http.StatusOK, Body: []byte(`{}`)}}

	d, err := New(testConfig(), WithSender(sender), WithLogger(logger))
	require.NoError(t, err)

	_, err = d.Do(context.Background(), testDocuments, Call{})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "request completed")
	assert.Contains(t, out, "component=albert-dispatch")
	assert.Contains(t, out, "operation=documents.list")
	assert.NotContains(t, out, "sk-test")
}

func TestDoAfterClose(t *testing.T) {
	sender := &recordingSender{resp: &RawResponse{StatusCode: http.StatusOK, Body: []byte(`{}`)}}
	d, err := New(testConfig(), WithSender(sender))
	require.NoError(t, err)

	require.NoError(t, d.Close())
	require.NoError(t, d.Close())

	_, err = d.Do(context.Background(), testDocuments, Call{})
	assert.ErrorIs(t, err, core.ErrClientClosed)
	assert.Zero(t, sender.count())
}

func TestDoConcurrentCallsAreIndependent(t *testing.T) {
	sender := &recordingSender{resp: &RawResponse{StatusCode: http.StatusOK, Body: []byte(`{"ok":true}`)}}
	d, err := New(testConfig(), WithSender(sender))
	require.NoError(t, err)
	defer d.Close()

	const calls = 16
	var wg sync.WaitGroup
	for i := 0; i < calls; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := d.Do(context.Background(), testDocuments, Call{})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	require.Equal(t, calls, sender.count())
	seen := make(map[string]bool, calls)
	for _, req := range sender.requests {
		seen[req.ID()] = true
	}
	assert.Len(t, seen, calls)
}
