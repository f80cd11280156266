// Package vectordb provides vector store adapters.
// Clean Architecture: Adapters implementing ports.VectorStore.
package vectordb

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/techgear/supportbot/internal/domain/entities"
)

// InMemoryStore is a process-local vector store. The index is built once
// at startup and read concurrently afterwards.
type InMemoryStore struct {
	mu     sync.RWMutex
	chunks []entities.Chunk
}

// NewInMemoryStore creates an empty in-memory vector store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// Store saves chunks with their embeddings.
func (s *InMemoryStore) Store(ctx context.Context, chunks []entities.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.chunks = append(s.chunks, chunks...)
	return nil
}

// Search returns the topK chunks most similar to the query embedding,
// ordered by descending cosine similarity. Ties keep the store's
// insertion order.
func (s *InMemoryStore) Search(ctx context.Context, embedding []float32, topK int) ([]entities.ScoredChunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]entities.ScoredChunk, 0, len(s.chunks))
	for _, chunk := range s.chunks {
		results = append(results, entities.ScoredChunk{
			Chunk: chunk,
			Score: cosineSimilarity(embedding, chunk.Embedding),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if topK > 0 && len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// cosineSimilarity calculates cosine similarity between two vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
