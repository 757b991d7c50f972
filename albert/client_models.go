package albert

import (
	"context"

	"github.com/petal-labs/albert-go/core"
	"github.com/petal-labs/albert-go/dispatch"
)

// ListModels lists the models available to the caller.
func (c *Client) ListModels(ctx context.Context) (*core.Result, error) {
	return c.d.Do(ctx, epListModels, dispatch.Call{})
}

// GetModel describes a single model. An empty model ID is rejected with a
// *core.ConfigError before any request is sent.
func (c *Client) GetModel(ctx context.Context, model string) (*core.Result, error) {
	if model == "" {
		return nil, &core.ConfigError{Field: "model", Message: "model ID is required"}
	}
	return c.d.Do(ctx, epGetModel, dispatch.Call{
		Path: dispatch.PathParams{paramModel: model},
	})
}

// Models lists the models as typed values.
func (c *Client) Models(ctx context.Context) (*core.ModelList, error) {
	res, err := c.ListModels(ctx)
	if err != nil {
		return nil, err
	}
	var list core.ModelList
	if err := res.Decode(&list); err != nil {
		return nil, err
	}
	return &list, nil
}

// ListModelIDs returns the identifiers of all available models and reports
// any failure.
func (c *Client) ListModelIDs(ctx context.Context) ([]string, error) {
	list, err := c.Models(ctx)
	if err != nil {
		return nil, err
	}
	return list.IDs(), nil
}

// ModelIDs is the advisory form of ListModelIDs: on failure it logs a
// warning and returns an empty list.
func (c *Client) ModelIDs(ctx context.Context) []string {
	ids, err := c.ListModelIDs(ctx)
	if err != nil {
		c.logger.Warn("unable to list model ids", "err", err)
		return []string{}
	}
	return ids
}
