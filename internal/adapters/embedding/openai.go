// Package embedding provides the embedding-service adapter.
// Clean Architecture: Adapter implementing ports.EmbeddingService.
package embedding

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIAdapter implements ports.EmbeddingService against any
// OpenAI-compatible embeddings API.
type OpenAIAdapter struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

// NewOpenAIAdapter creates an embeddings adapter for the given endpoint
// and model. An empty baseURL targets the public OpenAI API.
func NewOpenAIAdapter(baseURL, apiKey, model string) *OpenAIAdapter {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIAdapter{
		client: openai.NewClientWithConfig(cfg),
		model:  openai.EmbeddingModel(model),
	}
}

// Embed generates a vector embedding for a single text.
func (a *OpenAIAdapter) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := a.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch generates embeddings for multiple texts in one call.
func (a *OpenAIAdapter) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	resp, err := a.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: a.model,
		Input: texts,
	})
	if err != nil {
		return nil, fmt.Errorf("calling embeddings API: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embeddings API returned %d vectors for %d inputs", len(resp.Data), len(texts))
	}

	vectors := make([][]float32, len(resp.Data))
	for _, item := range resp.Data {
		if item.Index < 0 || item.Index >= len(vectors) {
			return nil, fmt.Errorf("embeddings API returned out-of-range index %d", item.Index)
		}
		vectors[item.Index] = item.Embedding
	}
	return vectors, nil
}
