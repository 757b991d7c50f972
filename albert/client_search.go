package albert

import (
	"context"

	"github.com/petal-labs/albert-go/core"
	"github.com/petal-labs/albert-go/dispatch"
)

// Search looks up the chunks most relevant to prompt. A nil collections
// slice is sent as an empty list. Extra fields include method, k and
// score_threshold.
func (c *Client) Search(ctx context.Context, prompt string, collections []int, extra core.Extras) (*core.Result, error) {
	if collections == nil {
		collections = []int{}
	}
	body := core.NewPayload().
		Set("prompt", prompt).
		Set("collections", collections).
		Merge(extra)
	return c.d.Do(ctx, epSearch, dispatch.Call{JSON: body})
}

// Rerank scores each input text against prompt.
func (c *Client) Rerank(ctx context.Context, prompt string, input []string, model string) (*core.Result, error) {
	if input == nil {
		input = []string{}
	}
	body := core.NewPayload().
		Set("prompt", prompt).
		Set("input", input).
		Set("model", model)
	return c.d.Do(ctx, epRerank, dispatch.Call{JSON: body})
}
