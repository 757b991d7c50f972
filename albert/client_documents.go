package albert

import (
	"context"

	"github.com/petal-labs/albert-go/core"
	"github.com/petal-labs/albert-go/dispatch"
)

// CreateDocument uploads a PDF into a collection. Extra fields such as
// chunk_size or output_format are sent as form fields.
func (c *Client) CreateDocument(ctx context.Context, path string, collectionID int, extra core.Extras) (*core.Result, error) {
	form := core.NewPayload().Set("collection", collectionID).Merge(extra)
	return c.d.Do(ctx, epCreateDocument, dispatch.Call{
		Form: form,
		File: &dispatch.FileSpec{Path: path, ContentType: dispatch.ContentTypePDF},
	})
}

// DocumentListOptions filters and paginates ListDocuments.
type DocumentListOptions struct {
	// Collection restricts the listing to one collection when set.
	Collection *int
	// Limit defaults to 10 when zero.
	Limit  int
	Offset int
}

// ListDocuments returns one page of documents.
func (c *Client) ListDocuments(ctx context.Context, opts DocumentListOptions) (*core.Result, error) {
	q := ListOptions{Offset: opts.Offset, Limit: opts.Limit}.query()
	q["collection"] = opts.Collection
	return c.d.Do(ctx, epListDocuments, dispatch.Call{Query: q})
}

// GetDocument describes a document.
func (c *Client) GetDocument(ctx context.Context, documentID int) (*core.Result, error) {
	return c.d.Do(ctx, epGetDocument, dispatch.Call{
		Path: dispatch.PathParams{paramDocument: pathID(documentID)},
	})
}

// DeleteDocument deletes a document and its chunks.
func (c *Client) DeleteDocument(ctx context.Context, documentID int) error {
	return c.doEmpty(ctx, epDeleteDocument, dispatch.Call{
		Path: dispatch.PathParams{paramDocument: pathID(documentID)},
	})
}

// ListChunks returns one page of a document's chunks.
func (c *Client) ListChunks(ctx context.Context, documentID int, opts ListOptions) (*core.Result, error) {
	return c.d.Do(ctx, epListChunks, dispatch.Call{
		Path:  dispatch.PathParams{paramDocument: pathID(documentID)},
		Query: opts.query(),
	})
}

// GetChunk returns a single chunk of a document.
func (c *Client) GetChunk(ctx context.Context, documentID, chunkID int) (*core.Result, error) {
	return c.d.Do(ctx, epGetChunk, dispatch.Call{
		Path: dispatch.PathParams{paramDocument: pathID(documentID), paramChunk: pathID(chunkID)},
	})
}
