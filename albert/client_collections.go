package albert

import (
	"context"

	"github.com/petal-labs/albert-go/core"
	"github.com/petal-labs/albert-go/dispatch"
)

// Collection visibilities.
const (
	VisibilityPrivate = "private"
	VisibilityPublic  = "public"
)

// CreateCollection creates a collection. An empty description is left out of
// the request and an empty visibility means VisibilityPrivate.
func (c *Client) CreateCollection(ctx context.Context, name, description, visibility string) (*core.Result, error) {
	if visibility == "" {
		visibility = VisibilityPrivate
	}
	body := core.NewPayload().Set("name", name)
	if description != "" {
		body.Set("description", description)
	}
	body.Set("visibility", visibility)

	return c.d.Do(ctx, epCreateCollection, dispatch.Call{JSON: body})
}

// ListCollections returns one page of collections.
func (c *Client) ListCollections(ctx context.Context, opts ListOptions) (*core.Result, error) {
	return c.d.Do(ctx, epListCollections, dispatch.Call{Query: opts.query()})
}

// GetCollection describes a collection.
func (c *Client) GetCollection(ctx context.Context, collectionID int) (*core.Result, error) {
	return c.d.Do(ctx, epGetCollection, dispatch.Call{
		Path: dispatch.PathParams{paramCollection: pathID(collectionID)},
	})
}

// UpdateCollection changes the given fields (name, description, visibility).
func (c *Client) UpdateCollection(ctx context.Context, collectionID int, fields core.Extras) error {
	return c.doEmpty(ctx, epUpdateCollection, dispatch.Call{
		Path: dispatch.PathParams{paramCollection: pathID(collectionID)},
		JSON: core.NewPayload().Merge(fields),
	})
}

// DeleteCollection deletes a collection and its documents.
func (c *Client) DeleteCollection(ctx context.Context, collectionID int) error {
	return c.doEmpty(ctx, epDeleteCollection, dispatch.Call{
		Path: dispatch.PathParams{paramCollection: pathID(collectionID)},
	})
}
