package commands

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/petal-labs/albert-go/core"
)

// Exit codes
const (
	ExitSuccess    = 0
	ExitValidation = 1
	ExitPlatform   = 2
	ExitNetwork    = 3
)

// exitError wraps an error with an exit code.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func (e *exitError) ExitCode() int {
	return e.code
}

func exitWithCode(code int, err error) error {
	return &exitError{code: code, err: err}
}

// ExitCodeFor maps an error to the process exit code.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	switch {
	case errors.Is(err, core.ErrTransport):
		return ExitNetwork
	case errors.Is(err, core.ErrHTTPStatus), errors.Is(err, core.ErrDecode):
		return ExitPlatform
	default:
		return ExitValidation
	}
}

// errorType names the error kind in JSON error output.
func errorType(err error) string {
	switch {
	case errors.Is(err, core.ErrConfiguration):
		return "configuration_error"
	case errors.Is(err, core.ErrResourceNotFound):
		return "file_not_found"
	case errors.Is(err, core.ErrTransport):
		return "network_error"
	case errors.Is(err, core.ErrHTTPStatus):
		return "http_status_error"
	case errors.Is(err, core.ErrDecode):
		return "decode_error"
	case errors.Is(err, core.ErrClientClosed):
		return "client_closed"
	default:
		return "error"
	}
}

func (a *App) reportError(err error) error {
	code := ExitCodeFor(err)

	var statusErr *core.StatusError
	isStatus := errors.As(err, &statusErr)

	if a.jsonOutput {
		body := map[string]any{
			"type":    errorType(err),
			"message": err.Error(),
		}
		if isStatus {
			body["status"] = statusErr.Status
			if statusErr.RequestID != "" {
				body["request_id"] = statusErr.RequestID
			}
		}
		enc := json.NewEncoder(a.stderr)
		enc.SetIndent("", "  ")
		_ = enc.Encode(map[string]any{"error": body})
	} else {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
	}

	if _, ok := err.(*exitError); ok {
		return err
	}
	return exitWithCode(code, err)
}
