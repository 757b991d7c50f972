// Package albert is a client for the Albert AI platform: chat and agent
// completions, embeddings, audio transcription, document parsing and OCR,
// collections, documents, chunks, search, rerank, usage and API tokens.
//
// # Quick Start
//
//	client, err := albert.NewFromEnv()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	res, err := client.ChatCompletions(ctx,
//	    []core.Message{core.UserMessage("Bonjour !")},
//	    "albert-large",
//	    core.Extras{"temperature": 0.2},
//	)
//
// Every operation returns a [core.Result] (or only an error for updates and
// deletes). Use [core.Result.Decode] to read it into your own types, or the
// typed helpers [Client.Models], [Client.Chat] and [Client.Embed].
//
// # Scoped Use
//
// [Scoped] closes the client on every exit path:
//
//	err := albert.Scoped(baseURL, apiKey, func(c *albert.Client) error {
//	    _, err := c.CreateCollection(ctx, "notes", "", albert.VisibilityPrivate)
//	    return err
//	})
//
// # Errors
//
// Calls fail with the classified errors of package core. Nothing is retried:
//
//	err := client.DeleteCollection(ctx, 7)
//	switch {
//	case errors.Is(err, core.ErrNotFound):
//	    // already gone
//	case errors.Is(err, core.ErrTransport):
//	    // network trouble, safe to try again later
//	}
package albert
