// Package dispatch turns logical platform operations into HTTP round trips.
//
// A call flows through four pieces:
//
//   - [Endpoint]: static description of one operation (verb, path template, body kind).
//   - [Build]: resolves path placeholders, query parameters and the JSON or
//     multipart body into a [Request].
//   - [Transport]: the authenticated session. It injects the bearer credential
//     and default headers and performs exactly one attempt per call.
//   - [Interpret]: classifies the raw response into a [core.Result] or a
//     typed error from package core.
//
// [Dispatcher] chains them and is what higher-level clients use:
//
//	d, err := dispatch.New(dispatch.Config{
//	    BaseURL: "https://albert.api.etalab.gouv.fr",
//	    APIKey:  core.NewSecret(key),
//	})
//	if err != nil {
//	    return err // *core.ConfigError
//	}
//	defer d.Close()
//
//	getCollection := dispatch.MustEndpoint("collections.get", http.MethodGet,
//	    "/v1/collections/{collection_id}", dispatch.BodyNone)
//	res, err := d.Do(ctx, getCollection, dispatch.Call{
//	    Path: dispatch.PathParams{"collection_id": "7"},
//	})
//
// There is no retry and no backoff: a call either succeeds with one result
// or fails with one classified error.
//
// # Thread Safety
//
// [Dispatcher] and [Transport] are safe for concurrent use. [Request] values
// are built per call and never shared.
package dispatch
