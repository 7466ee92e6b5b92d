package llm

import (
	"context"
	"time"

	"github.com/ternarybob/arbor"
	"google.golang.org/genai"

	"github.com/mageshboopath1/Live-ESG-sub001/internal/common"
)

// EmbeddingClient implements interfaces.EmbeddingClient over Gemini's
// embedding endpoint via google.golang.org/genai, the same client package
// the teacher wires for Gemini chat (gemini_service.go), used here instead
// for its embedding capability.
type EmbeddingClient struct {
	client     *genai.Client
	model      string
	dimensions int
	timeout    time.Duration
	log        arbor.ILogger
}

// NewEmbeddingClient builds a client for model with a fixed output
// dimensionality, validated against every returned vector.
func NewEmbeddingClient(ctx context.Context, apiKey, model string, dimensions int, timeout time.Duration) (*EmbeddingClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, common.Wrap(common.PermanentSystem, "llm: init genai client", err)
	}
	return &EmbeddingClient{
		client:     client,
		model:      model,
		dimensions: dimensions,
		timeout:    timeout,
		log:        common.GetLogger(),
	}, nil
}

func (c *EmbeddingClient) Dimensions() int { return c.dimensions }

// Embed batches texts through the embedding model in a single call. A nil
// entry at index i means that text's vector didn't come back with the
// configured dimensionality and was dropped (spec §4.C step 6's dimension
// check), not that the whole batch failed.
func (c *EmbeddingClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	contents := make([]*genai.Content, len(texts))
	for i, t := range texts {
		contents[i] = genai.NewContentFromText(t, genai.RoleUser)
	}

	resp, err := c.client.Models.EmbedContent(ctx, c.model, contents, &genai.EmbedContentConfig{
		OutputDimensionality: genai.Ptr(int32(c.dimensions)),
	})
	if err != nil {
		return nil, common.Wrap(common.Transient, "llm: embed content", err)
	}

	out := make([][]float32, len(texts))
	for i, e := range resp.Embeddings {
		if e == nil || len(e.Values) != c.dimensions {
			c.log.Warn().Int("index", i).Int("want", c.dimensions).Msg("llm: embedding dimension mismatch, dropping")
			continue
		}
		out[i] = e.Values
	}
	return out, nil
}
