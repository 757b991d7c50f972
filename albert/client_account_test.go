package albert

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petal-labs/albert-go/core"
)

func TestUsageDefaultsAndExtras(t *testing.T) {
	platform := newFakePlatform(t)
	platform.handle("GET /v1/usage", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"total_requests": 3})
	})
	c := platform.client()
	ctx := context.Background()

	_, err := c.Usage(ctx, UsageOptions{})
	require.NoError(t, err)
	q := platform.last().Query
	assert.Equal(t, "50", q.Get("limit"))
	assert.Equal(t, "1", q.Get("page"))

	var dateFrom *int64
	_, err = c.Usage(ctx, UsageOptions{Limit: 1, Extra: core.Extras{"order_by": "datetime", "date_from": dateFrom}})
	require.NoError(t, err)
	q = platform.last().Query
	assert.Equal(t, "1", q.Get("limit"))
	assert.Equal(t, "datetime", q.Get("order_by"))
	_, present := q["date_from"]
	assert.False(t, present)
}

func TestCreateTokenOmitsUnsetFields(t *testing.T) {
	platform := newFakePlatform(t)
	platform.handle("POST /tokens", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]any{"id": 4, "token": "sk-new"})
	})
	c := platform.client()
	ctx := context.Background()

	_, err := c.CreateToken(ctx, "ci", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"ci"}`, string(platform.last().Body))

	user := 7
	expires := int64(1767225600)
	_, err = c.CreateToken(ctx, "ci", &user, &expires)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"ci","user":7,"expires_at":1767225600}`, string(platform.last().Body))
}

func TestTokenListGetDelete(t *testing.T) {
	platform := newFakePlatform(t)
	platform.handle("GET /tokens", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"data": []any{}})
	})
	platform.handle("GET /tokens/4", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"id": 4})
	})
	platform.handle("DELETE /tokens/4", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	c := platform.client()
	ctx := context.Background()

	_, err := c.ListTokens(ctx, ListOptions{}, core.Extras{"order_direction": "desc"})
	require.NoError(t, err)
	q := platform.last().Query
	assert.Equal(t, "10", q.Get("limit"))
	assert.Equal(t, "desc", q.Get("order_direction"))

	_, err = c.GetToken(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, "/tokens/4", platform.last().Path)

	require.NoError(t, c.DeleteToken(ctx, 4))
	assert.Equal(t, http.MethodDelete, platform.last().Method)
}

func TestSearchAndRerank(t *testing.T) {
	platform := newFakePlatform(t)
	platform.handle("POST /v1/search", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"data": []any{}})
	})
	platform.handle("POST /v1/rerank", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"data": []map[string]any{{"index": 1, "score": 0.9}}})
	})
	c := platform.client()
	ctx := context.Background()

	_, err := c.Search(ctx, "congés", nil, core.Extras{"k": 5})
	require.NoError(t, err)
	assert.Equal(t, `{"prompt":"congés","collections":[],"k":5}`, string(platform.last().Body))

	_, err = c.Search(ctx, "congés", []int{1, 2}, nil)
	require.NoError(t, err)
	assert.Equal(t, `{"prompt":"congés","collections":[1,2]}`, string(platform.last().Body))

	res, err := c.Rerank(ctx, "congés", []string{"a", "b"}, "rerank-small")
	require.NoError(t, err)
	assert.Equal(t, `{"prompt":"congés","input":["a","b"],"model":"rerank-small"}`, string(platform.last().Body))

	var list core.RerankList
	require.NoError(t, res.Decode(&list))
	assert.Equal(t, 1, list.Ranked()[0].Index)
}

func TestEmbeddings(t *testing.T) {
	platform := newFakePlatform(t)
	platform.handle("POST /v1/embeddings", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"object": "list",
			"model":  "embeddings-small",
			"data": []map[string]any{
				{"index": 1, "embedding": []float32{0.5, 0.5}},
				{"index": 0, "embedding": []float32{0.25, 0.75}},
			},
		})
	})
	c := platform.client()
	ctx := context.Background()

	vectors, err := c.Embed(ctx, []string{"a", "b"}, "embeddings-small")
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{0.25, 0.75}, {0.5, 0.5}}, vectors)
	assert.Equal(t, `{"input":["a","b"],"model":"embeddings-small"}`, string(platform.last().Body))

	_, err = c.CreateEmbedding(ctx, "a", "embeddings-small", core.Extras{"encoding_format": "float"})
	require.NoError(t, err)
	assert.Equal(t, `{"input":"a","model":"embeddings-small","encoding_format":"float"}`, string(platform.last().Body))

	_, err = c.CreateEmbeddings(ctx, nil, "embeddings-small", nil)
	require.NoError(t, err)
	assert.Equal(t, `{"input":[],"model":"embeddings-small"}`, string(platform.last().Body))
}
