package dispatch

import (
	"encoding/json"
	"net/http"

	"github.com/petal-labs/albert-go/core"
)

// Interpret classifies a raw response.
//
//   - 204 yields the empty result, whatever the body holds.
//   - Any other 2xx must carry JSON, otherwise *core.DecodeError.
//   - Everything else yields *core.StatusError with the raw body.
func Interpret(resp *RawResponse) (*core.Result, error) {
	switch {
	case resp.StatusCode == http.StatusNoContent:
		return core.EmptyResult(resp.StatusCode), nil

	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		var value any
		if err := json.Unmarshal(resp.Body, &value); err != nil {
			return nil, &core.DecodeError{Status: resp.StatusCode, Err: err}
		}
		return core.NewResult(resp.StatusCode, resp.Body, value), nil

	default:
		return nil, &core.StatusError{
			Status:    resp.StatusCode,
			Body:      resp.Body,
			RequestID: resp.RequestID,
		}
	}
}
