// Package core defines the vocabulary shared by the Albert client packages:
// request payloads, call results, the error taxonomy and telemetry hooks.
//
// # Payloads
//
// Platform request bodies are loosely typed. [Payload] is an ordered
// string-keyed mapping whose absent values (nil, nil pointers) are dropped on
// encoding, and [Extras] carries arbitrary additional fields supplied by the
// caller:
//
//	body := core.NewPayload().
//	    Set("messages", messages).
//	    Set("model", "albert-large").
//	    Merge(core.Extras{"temperature": 0.2})
//
// # Results
//
// Every successful call yields a [Result]: either a decoded JSON value or the
// explicit empty result of a 204 response. Use [Result.Decode] for typed access
// or [Result.Object] for generic access.
//
// # Error Handling
//
// A failed call returns exactly one classified error:
//   - [ConfigError]: missing base URL or credential, at construction only
//   - [FileNotFoundError]: local upload path missing, before any network call
//   - [TransportError]: DNS, connection, TLS or timeout failure
//   - [StatusError]: non-2xx status, with the raw body
//   - [DecodeError]: 2xx status with a body that is not JSON
//
// Each type matches a sentinel through errors.Is:
//
//	if errors.Is(err, core.ErrNotFound) {
//	    // the collection is gone
//	}
//	var se *core.StatusError
//	if errors.As(err, &se) {
//	    log.Printf("platform said %d: %s", se.Status, se.Body)
//	}
//
// # Telemetry
//
// Implement [TelemetryHook] to observe the lifecycle of every call. Events
// never include the credential or any request or response content.
package core
