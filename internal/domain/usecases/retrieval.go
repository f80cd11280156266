package usecases

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/techgear/supportbot/internal/domain/entities"
	"github.com/techgear/supportbot/internal/domain/ports"
)

// DefaultTopK is how many candidates each query requests from the index.
const DefaultTopK = 3

// Retriever wraps the embedding and similarity-search capability behind
// a build-once index. The index is immutable for the process lifetime;
// rebuilding requires a restart.
type Retriever struct {
	embedder ports.EmbeddingService
	store    ports.VectorStore
	logger   *zap.Logger

	mu    sync.Mutex
	built bool
}

// NewRetriever creates a Retriever over the given embedder and store.
func NewRetriever(embedder ports.EmbeddingService, store ports.VectorStore, logger *zap.Logger) *Retriever {
	return &Retriever{
		embedder: embedder,
		store:    store,
		logger:   logger,
	}
}

// Build embeds all chunks and loads them into the vector store. The
// mutex makes concurrent first requests build the index exactly once;
// after the first successful build, Build is a no-op.
func (r *Retriever) Build(ctx context.Context, chunks []entities.Chunk) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.built {
		return nil
	}
	if len(chunks) == 0 {
		return fmt.Errorf("building index: no chunks to index")
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}

	embeddings, err := r.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embedding chunks: %w", err)
	}
	if len(embeddings) != len(chunks) {
		return fmt.Errorf("embedding chunks: got %d vectors for %d chunks", len(embeddings), len(chunks))
	}

	indexed := make([]entities.Chunk, len(chunks))
	copy(indexed, chunks)
	for i := range indexed {
		indexed[i].Embedding = embeddings[i]
	}

	if err := r.store.Store(ctx, indexed); err != nil {
		return fmt.Errorf("storing chunks: %w", err)
	}

	r.built = true
	r.logger.Info("vector index built", zap.Int("chunks", len(indexed)))
	return nil
}

// Retrieve embeds the query and returns the topK most similar chunks,
// ordered by descending score. Fails with ErrNotInitialized when called
// before Build.
func (r *Retriever) Retrieve(ctx context.Context, query string, topK int) ([]entities.ScoredChunk, error) {
	r.mu.Lock()
	built := r.built
	r.mu.Unlock()
	if !built {
		return nil, fmt.Errorf("querying index: %w", ports.ErrNotInitialized)
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	embedding, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	candidates, err := r.store.Search(ctx, embedding, topK)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}
	return candidates, nil
}
