// Package albertlc plugs Albert embedding models into langchaingo.
//
//	client, _ := albert.NewFromEnv()
//	emb, err := albertlc.NewEmbedder(client, "embeddings-small")
//	vecs, err := emb.EmbedDocuments(ctx, docs)
//
// The returned embeddings.Embedder works with any langchaingo vector store.
package albertlc

import (
	"context"
	"errors"
	"log/slog"

	"github.com/tmc/langchaingo/embeddings"

	"github.com/petal-labs/albert-go/albert"
)

// ErrNoModel is returned when the embedding model name is empty.
var ErrNoModel = errors.New("albertlc: embedding model required")

// Client adapts an Albert client to embeddings.EmbedderClient.
type Client struct {
	client *albert.Client
	model  string
	logger *slog.Logger
}

var _ embeddings.EmbedderClient = (*Client)(nil)

// NewClient wraps c so that every call embeds with model.
func NewClient(c *albert.Client, model string) (*Client, error) {
	if c == nil {
		return nil, errors.New("albertlc: nil client")
	}
	if model == "" {
		return nil, ErrNoModel
	}
	return &Client{
		client: c,
		model:  model,
		logger: slog.Default().With("component", "albert-embedder"),
	}, nil
}

// Model returns the embedding model name.
func (c *Client) Model() string { return c.model }

// CreateEmbedding embeds texts in one platform call. Vectors are returned in
// input order.
func (c *Client) CreateEmbedding(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}
	c.logger.Debug("generating embeddings", "count", len(texts), "model", c.model)

	vecs, err := c.client.Embed(ctx, texts, c.model)
	if err != nil {
		c.logger.Error("failed to generate embeddings", "count", len(texts), "err", err)
		return nil, err
	}
	if len(vecs) != len(texts) {
		return nil, errors.New("albertlc: platform returned a different number of vectors than inputs")
	}
	return vecs, nil
}

// NewEmbedder returns a langchaingo embedder backed by the Albert platform.
// Options such as embeddings.WithBatchSize are passed through.
func NewEmbedder(c *albert.Client, model string, opts ...embeddings.Option) (embeddings.Embedder, error) {
	client, err := NewClient(c, model)
	if err != nil {
		return nil, err
	}
	opts = append([]embeddings.Option{embeddings.WithStripNewLines(true)}, opts...)
	emb, err := embeddings.NewEmbedder(client, opts...)
	if err != nil {
		return nil, err
	}
	return emb, nil
}
