package albert

import (
	"context"

	"github.com/petal-labs/albert-go/core"
	"github.com/petal-labs/albert-go/dispatch"
)

// ChatCompletions creates a chat completion. Extra fields such as
// temperature or max_completion_tokens are sent at the top level of the body
// and override the named arguments on conflict.
func (c *Client) ChatCompletions(ctx context.Context, messages []core.Message, model string, extra core.Extras) (*core.Result, error) {
	return c.d.Do(ctx, epChatCompletions, dispatch.Call{JSON: chatBody(messages, model, extra)})
}

// AgentsCompletions creates a completion that may call the platform's agent tools.
func (c *Client) AgentsCompletions(ctx context.Context, messages []core.Message, model string, extra core.Extras) (*core.Result, error) {
	return c.d.Do(ctx, epAgentsCompletions, dispatch.Call{JSON: chatBody(messages, model, extra)})
}

// AgentTools lists the tools available to agent completions.
func (c *Client) AgentTools(ctx context.Context) (*core.Result, error) {
	return c.d.Do(ctx, epAgentTools, dispatch.Call{})
}

// Chat is ChatCompletions decoded into a typed completion.
func (c *Client) Chat(ctx context.Context, messages []core.Message, model string, extra core.Extras) (*core.ChatCompletion, error) {
	res, err := c.ChatCompletions(ctx, messages, model, extra)
	if err != nil {
		return nil, err
	}
	var out core.ChatCompletion
	if err := res.Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func chatBody(messages []core.Message, model string, extra core.Extras) *core.Payload {
	if messages == nil {
		messages = []core.Message{}
	}
	return core.NewPayload().
		Set("messages", messages).
		Set("model", model).
		Merge(extra)
}
