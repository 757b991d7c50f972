package albert

import (
	"context"

	"github.com/petal-labs/albert-go/core"
	"github.com/petal-labs/albert-go/dispatch"
)

// CreateEmbeddings embeds a batch of texts.
func (c *Client) CreateEmbeddings(ctx context.Context, input []string, model string, extra core.Extras) (*core.Result, error) {
	if input == nil {
		input = []string{}
	}
	return c.embeddings(ctx, input, model, extra)
}

// CreateEmbedding embeds a single text. The platform receives the text as a
// plain string rather than a one-element list.
func (c *Client) CreateEmbedding(ctx context.Context, text, model string, extra core.Extras) (*core.Result, error) {
	return c.embeddings(ctx, text, model, extra)
}

// Embed returns one vector per input text, in input order.
func (c *Client) Embed(ctx context.Context, input []string, model string) ([][]float32, error) {
	res, err := c.CreateEmbeddings(ctx, input, model, nil)
	if err != nil {
		return nil, err
	}
	var list core.EmbeddingList
	if err := res.Decode(&list); err != nil {
		return nil, err
	}
	return list.Vectors(), nil
}

func (c *Client) embeddings(ctx context.Context, input any, model string, extra core.Extras) (*core.Result, error) {
	body := core.NewPayload().
		Set("input", input).
		Set("model", model).
		Merge(extra)
	return c.d.Do(ctx, epEmbeddings, dispatch.Call{JSON: body})
}
