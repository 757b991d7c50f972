package albert

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

const testAPIKey = "sk-albert-test"

type recordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// JSON decodes the recorded body as a generic object.
func (r recordedRequest) JSON(t *testing.T) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(r.Body, &m))
	return m
}

// fakePlatform is an in-memory stand-in for the Albert API. It stores
// collections, serves a fixed model list and records every request.
type fakePlatform struct {
	t      *testing.T
	server *httptest.Server

	mu          sync.Mutex
	requests    []recordedRequest
	collections map[int]map[string]any
	nextID      int
	routes      map[string]http.HandlerFunc
}

func newFakePlatform(t *testing.T) *fakePlatform {
	t.Helper()
	p := &fakePlatform{
		t:           t,
		collections: make(map[int]map[string]any),
		nextID:      1,
		routes:      make(map[string]http.HandlerFunc),
	}
	p.server = httptest.NewServer(http.HandlerFunc(p.serve))
	t.Cleanup(p.server.Close)
	return p
}

// handle overrides the response for "METHOD /path".
func (p *fakePlatform) handle(route string, h http.HandlerFunc) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.routes[route] = h
}

func (p *fakePlatform) client(opts ...Option) *Client {
	p.t.Helper()
	c, err := New(p.server.URL, testAPIKey, opts...)
	require.NoError(p.t, err)
	p.t.Cleanup(func() { _ = c.Close() })
	return c
}

func (p *fakePlatform) recorded() []recordedRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]recordedRequest, len(p.requests))
	copy(out, p.requests)
	return out
}

func (p *fakePlatform) last() recordedRequest {
	p.t.Helper()
	reqs := p.recorded()
	require.NotEmpty(p.t, reqs, "no request reached the platform")
	return reqs[len(reqs)-1]
}

func (p *fakePlatform) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	p.mu.Lock()
	p.requests = append(p.requests, recordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Header: r.Header.Clone(),
		Body:   body,
	})
	override := p.routes[r.Method+" "+r.URL.Path]
	p.mu.Unlock()

	if override != nil {
		override(w, r)
		return
	}

	if r.Header.Get("Authorization") != "Bearer "+testAPIKey {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Invalid authentication credentials"})
		return
	}

	switch {
	case r.URL.Path == "/v1/models" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{
			"object": "list",
			"data": []map[string]any{
				{"id": "albert-large", "type": "text-generation", "owned_by": "etalab"},
				{"id": "embeddings-small", "type": "text-embeddings-inference", "owned_by": "etalab"},
			},
		})

	case r.URL.Path == "/v1/collections" && r.Method == http.MethodPost:
		var fields map[string]any
		if err := json.Unmarshal(body, &fields); err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": err.Error()})
			return
		}
		p.mu.Lock()
		id := p.nextID
		p.nextID++
		fields["id"] = id
		p.collections[id] = fields
		p.mu.Unlock()
		writeJSON(w, http.StatusCreated, map[string]any{"id": id})

	case strings.HasPrefix(r.URL.Path, "/v1/collections/"):
		p.serveCollection(w, r, body)

	default:
		writeJSON(w, http.StatusNotFound, map[string]any{"detail": "Not Found"})
	}
}

func (p *fakePlatform) serveCollection(w http.ResponseWriter, r *http.Request, body []byte) {
	id, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/v1/collections/"))
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": "invalid collection id"})
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	col, ok := p.collections[id]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"detail": fmt.Sprintf("Collection %d not found", id)})
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, col)
	case http.MethodPatch:
		var fields map[string]any
		if err := json.Unmarshal(body, &fields); err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": err.Error()})
			return
		}
		for k, v := range fields {
			col[k] = v
		}
		w.WriteHeader(http.StatusNoContent)
	case http.MethodDelete:
		delete(p.collections, id)
		w.WriteHeader(http.StatusNoContent)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"detail": "Method Not Allowed"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
