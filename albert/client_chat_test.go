package albert

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petal-labs/albert-go/core"
)

const chatResponse = `{"id":"chatcmpl-1","object":"chat.completion","model":"model-x",
"choices":[{"index":0,"message":{"role":"assistant","content":"Bonjour !"},"finish_reason":"stop"}],
"usage":{"prompt_tokens":4,"completion_tokens":2,"total_tokens":6}}`

func TestChatCompletionsBody(t *testing.T) {
	platform := newFakePlatform(t)
	platform.handle("POST /v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(chatResponse))
	})
	c := platform.client()

	messages := []core.Message{{Role: core.RoleUser, Content: "hi"}}
	_, err := c.ChatCompletions(context.Background(), messages, "model-x", nil)
	require.NoError(t, err)

	req := platform.last()
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/v1/chat/completions", req.Path)
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.Equal(t, `{"messages":[{"role":"user","content":"hi"}],"model":"model-x"}`, string(req.Body))
}

func TestChatCompletionsExtrasAtTopLevel(t *testing.T) {
	platform := newFakePlatform(t)
	platform.handle("POST /v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(chatResponse))
	})
	c := platform.client()

	_, err := c.ChatCompletions(context.Background(),
		[]core.Message{core.UserMessage("hi")},
		"model-x",
		core.Extras{"temperature": 0.7, "max_completion_tokens": 50},
	)
	require.NoError(t, err)

	assert.Equal(t,
		`{"messages":[{"role":"user","content":"hi"}],"model":"model-x","max_completion_tokens":50,"temperature":0.7}`,
		string(platform.last().Body))
}

func TestChatDecodesCompletion(t *testing.T) {
	platform := newFakePlatform(t)
	platform.handle("POST /v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(chatResponse))
	})
	c := platform.client()

	out, err := c.Chat(context.Background(), []core.Message{core.UserMessage("Bonjour")}, "model-x", nil)
	require.NoError(t, err)

	assert.Equal(t, "Bonjour !", out.Content())
	require.NotNil(t, out.Usage)
	assert.Equal(t, 6, out.Usage.TotalTokens)
}

func TestChatInvalidJSONIsDecodeError(t *testing.T) {
	platform := newFakePlatform(t)
	platform.handle("POST /v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("upstream exploded"))
	})
	c := platform.client()

	_, err := c.ChatCompletions(context.Background(), nil, "model-x", nil)

	assert.ErrorIs(t, err, core.ErrDecode)
	assert.Equal(t, `{"messages":[],"model":"model-x"}`, string(platform.last().Body))
}

func TestAgentsCompletionsAndTools(t *testing.T) {
	platform := newFakePlatform(t)
	platform.handle("POST /v1/agents/completions", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(chatResponse))
	})
	platform.handle("GET /v1/agents/tools", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"name":"web_search"}]}`))
	})
	c := platform.client()
	ctx := context.Background()

	_, err := c.AgentsCompletions(ctx, []core.Message{core.UserMessage("hi")}, "model-x", core.Extras{"tool_choice": "auto"})
	require.NoError(t, err)
	assert.Equal(t,
		`{"messages":[{"role":"user","content":"hi"}],"model":"model-x","tool_choice":"auto"}`,
		string(platform.last().Body))

	tools, err := c.AgentTools(ctx)
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, platform.last().Method)
	data, ok := tools.Field("data")
	require.True(t, ok)
	assert.Len(t, data, 1)
}
