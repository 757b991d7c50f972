package core

import (
	"bytes"
	"encoding/json"
)

// Result is the outcome of one successful call: either a decoded JSON value
// or the explicit empty result of a no-content response.
//
// A Result belongs to the caller that received it and is never shared
// between calls.
type Result struct {
	status int
	raw    json.RawMessage
	value  any
	empty  bool
}

// NewResult wraps an already-parsed JSON body.
func NewResult(status int, raw []byte, value any) *Result {
	return &Result{status: status, raw: raw, value: value}
}

// EmptyResult returns the result of a no-content response.
func EmptyResult(status int) *Result {
	return &Result{status: status, empty: true}
}

// StatusCode returns the HTTP status the platform answered with.
func (r *Result) StatusCode() int {
	return r.status
}

// IsEmpty reports whether the response carried no content.
func (r *Result) IsEmpty() bool {
	return r.empty
}

// Raw returns the response body exactly as received. It is nil for empty results.
func (r *Result) Raw() json.RawMessage {
	return r.raw
}

// Value returns the generic decoded body: map[string]any, []any, string,
// float64, bool or nil. Empty results yield nil.
func (r *Result) Value() any {
	return r.value
}

// Object returns the body as a JSON object. The second value is false when
// the body is empty or not an object.
func (r *Result) Object() (map[string]any, bool) {
	obj, ok := r.value.(map[string]any)
	return obj, ok
}

// Field returns a top-level field of an object body.
func (r *Result) Field(key string) (any, bool) {
	obj, ok := r.Object()
	if !ok {
		return nil, false
	}
	v, ok := obj[key]
	return v, ok
}

// Decode unmarshals the body into v. Decoding an empty result leaves v untouched.
func (r *Result) Decode(v any) error {
	if r.empty || len(r.raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.raw, v); err != nil {
		return &DecodeError{Status: r.status, Err: err}
	}
	return nil
}

// Indent returns the body pretty-printed, or "{}" for empty results.
func (r *Result) Indent(prefix, indent string) ([]byte, error) {
	if r.empty || len(r.raw) == 0 {
		return []byte("{}"), nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, r.raw, prefix, indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
