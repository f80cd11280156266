// Package ports defines interfaces for external dependencies.
// Clean Architecture: These are the boundaries - usecases depend on these abstractions,
// not concrete implementations. Adapters implement these interfaces.
package ports

import (
	"context"

	"github.com/techgear/supportbot/internal/domain/entities"
)

// EmbeddingService generates vector embeddings for text.
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts efficiently.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// CompletionService invokes a generative model with a prompt.
// Temperature is caller-controlled: the classifier runs near-deterministic
// (0.1) while the answer generator trades some determinism for fluency (0.3).
type CompletionService interface {
	Complete(ctx context.Context, prompt string, temperature float32) (string, error)
}

// VectorStore persists and queries chunk embeddings.
type VectorStore interface {
	// Store saves chunks with their embeddings.
	Store(ctx context.Context, chunks []entities.Chunk) error

	// Search finds the chunks most similar to a query embedding,
	// ordered by descending score.
	Search(ctx context.Context, embedding []float32, topK int) ([]entities.ScoredChunk, error)
}

// DocumentLoader reads a knowledge source from a path.
type DocumentLoader interface {
	// Load reads a document from the given path. Returns ErrNotFound
	// when the path does not exist.
	Load(ctx context.Context, path string) (*entities.Document, error)
}

// FileWatcher monitors a file for changes.
type FileWatcher interface {
	// Watch starts monitoring the path and emits an event per change.
	Watch(ctx context.Context, path string) (<-chan FileEvent, error)

	// Stop stops the watcher.
	Stop() error
}

// FileEvent represents a file system change.
type FileEvent struct {
	Path      string
	Operation FileOperation
}

// FileOperation is the type of file change.
type FileOperation int

const (
	FileCreated FileOperation = iota
	FileModified
	FileDeleted
)
