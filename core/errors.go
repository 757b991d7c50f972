package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Sentinels for the error kinds a call can fail with.
// Every error returned by the dispatch layer matches exactly one of these.
var (
	ErrConfiguration    = errors.New("configuration error")
	ErrResourceNotFound = errors.New("resource not found")
	ErrTransport        = errors.New("transport error")
	ErrHTTPStatus       = errors.New("http status error")
	ErrDecode           = errors.New("decode error")
)

// Status-class sentinels. A *StatusError matches ErrHTTPStatus and at most one of these.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrRateLimited  = errors.New("rate limited")
	ErrServer       = errors.New("server error")
)

// ErrClientClosed is returned for calls made after the client was closed.
var ErrClientClosed = errors.New("client has been closed")

// ConfigError reports a client that cannot be constructed, or a call
// argument rejected before dispatch.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("albert: invalid configuration: %s: %s", e.Field, e.Message)
}

// Is implements errors.Is for sentinel matching.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfiguration
}

// FileNotFoundError reports a local upload path that does not exist.
// It is returned before any network call is attempted.
type FileNotFoundError struct {
	Path string
	Err  error
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("albert: file not found: %s", e.Path)
}

// Is implements errors.Is for sentinel matching.
func (e *FileNotFoundError) Is(target error) bool {
	return target == ErrResourceNotFound
}

// Unwrap returns the underlying filesystem error.
func (e *FileNotFoundError) Unwrap() error {
	return e.Err
}

// TransportError reports a connection-level failure: DNS, TCP, TLS, timeout,
// or a body that could not be read.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("albert: %s %s: %v", e.Op, e.URL, e.Err)
	}
	return fmt.Sprintf("albert: %s: %v", e.Op, e.Err)
}

// Is implements errors.Is for sentinel matching.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError reports a response outside the 2xx range.
// Body holds the raw, undecoded response body so callers can inspect
// platform-specific detail.
type StatusError struct {
	Status    int
	Body      []byte
	RequestID string
}

func (e *StatusError) Error() string {
	msg := detailMessage(e.Body)
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.RequestID != "" {
		return fmt.Sprintf("albert: status %d: %s (request_id=%s)", e.Status, msg, e.RequestID)
	}
	return fmt.Sprintf("albert: status %d: %s", e.Status, msg)
}

// Is implements errors.Is for sentinel matching.
func (e *StatusError) Is(target error) bool {
	if target == ErrHTTPStatus {
		return true
	}
	return target != nil && target == SentinelForStatus(e.Status)
}

// DecodeError reports a success status whose body is not valid JSON.
type DecodeError struct {
	Status int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("albert: decode response (status %d): %v", e.Status, e.Err)
}

// Is implements errors.Is for sentinel matching.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

// Unwrap returns the underlying parse error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// SentinelForStatus maps an HTTP status code to its status-class sentinel.
// It returns nil for codes that have no class (1xx, 2xx, 3xx and unlisted 4xx).
func SentinelForStatus(status int) error {
	switch {
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return ErrBadRequest
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrUnauthorized
	case status == http.StatusNotFound:
		return ErrNotFound
	case status == http.StatusTooManyRequests:
		return ErrRateLimited
	case status >= 500:
		return ErrServer
	default:
		return nil
	}
}

// detailMessage extracts a human-readable message from a platform error body.
// The platform answers with {"detail": "..."}; validation failures carry a
// list under "detail" instead, and some gateways use {"error": {"message": "..."}}.
func detailMessage(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
		Error  struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	if len(envelope.Detail) > 0 {
		var s string
		if err := json.Unmarshal(envelope.Detail, &s); err == nil {
			return s
		}
		var items []struct {
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(envelope.Detail, &items); err == nil && len(items) > 0 {
			return items[0].Msg
		}
	}
	return envelope.Error.Message
}
