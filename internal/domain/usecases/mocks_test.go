package usecases

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/techgear/supportbot/internal/domain/entities"
	"github.com/techgear/supportbot/internal/observability"
)

func newTestMetrics() *observability.Metrics {
	return observability.NewMetrics(prometheus.NewRegistry())
}

// mockEmbedder implements ports.EmbeddingService for testing.
type mockEmbedder struct {
	calls int
	err   error
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return []float32{1, 0}, nil
}

func (m *mockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0}
	}
	return out, nil
}

// mockStore implements ports.VectorStore for testing.
type mockStore struct {
	stored      []entities.Chunk
	storeCalls  int
	results     []entities.ScoredChunk
	searchCalls int
	searchErr   error
}

func (m *mockStore) Store(ctx context.Context, chunks []entities.Chunk) error {
	m.storeCalls++
	m.stored = append(m.stored, chunks...)
	return nil
}

func (m *mockStore) Search(ctx context.Context, embedding []float32, topK int) ([]entities.ScoredChunk, error) {
	m.searchCalls++
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if topK > 0 && len(m.results) > topK {
		return m.results[:topK], nil
	}
	return m.results, nil
}

// mockLLM implements ports.CompletionService for testing. failures makes
// the first N calls fail before responses succeed.
type mockLLM struct {
	response string
	failures int
	calls    int
	prompts  []string
	temps    []float32
}

func (m *mockLLM) Complete(ctx context.Context, prompt string, temperature float32) (string, error) {
	m.calls++
	m.prompts = append(m.prompts, prompt)
	m.temps = append(m.temps, temperature)
	if m.failures > 0 {
		m.failures--
		return "", errors.New("model unavailable")
	}
	return m.response, nil
}

func scored(score float64, content string) entities.ScoredChunk {
	return entities.ScoredChunk{
		Chunk: entities.Chunk{ID: content, Content: content},
		Score: score,
	}
}
