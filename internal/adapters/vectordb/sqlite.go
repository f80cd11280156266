package vectordb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/techgear/supportbot/internal/domain/entities"
)

// SQLiteStore implements ports.VectorStore with SQLite-backed
// persistence, so a warm index survives restarts when the knowledge base
// has not changed. Similarity is a brute-force cosine scan, which is fine
// at knowledge-base scale (hundreds of chunks).
type SQLiteStore struct {
	mu sync.RWMutex
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a persistent vector store under
// dataPath.
func NewSQLiteStore(dataPath string) (*SQLiteStore, error) {
	if dataPath == "" {
		dataPath = "./data"
	}
	if err := os.MkdirAll(dataPath, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dataPath, "vectors.db"))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS chunks (
		id TEXT PRIMARY KEY,
		document_id TEXT NOT NULL,
		content TEXT NOT NULL,
		ordinal INTEGER NOT NULL,
		embedding BLOB NOT NULL,
		source TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_document_id ON chunks(document_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Store saves chunks with their embeddings.
func (s *SQLiteStore) Store(ctx context.Context, chunks []entities.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO chunks (id, document_id, content, ordinal, embedding, source)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		embeddingJSON, err := json.Marshal(chunk.Embedding)
		if err != nil {
			return fmt.Errorf("encoding embedding: %w", err)
		}
		if _, err := stmt.ExecContext(ctx,
			chunk.ID, chunk.DocumentID, chunk.Content, chunk.Ordinal, embeddingJSON, chunk.Source,
		); err != nil {
			return fmt.Errorf("inserting chunk: %w", err)
		}
	}

	return tx.Commit()
}

// Search returns the topK chunks most similar to the query embedding,
// ordered by descending cosine similarity.
func (s *SQLiteStore) Search(ctx context.Context, embedding []float32, topK int) ([]entities.ScoredChunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, document_id, content, ordinal, embedding, source
		FROM chunks
		ORDER BY document_id, ordinal
	`)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var results []entities.ScoredChunk
	for rows.Next() {
		var chunk entities.Chunk
		var embeddingJSON []byte
		if err := rows.Scan(&chunk.ID, &chunk.DocumentID, &chunk.Content, &chunk.Ordinal, &embeddingJSON, &chunk.Source); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if err := json.Unmarshal(embeddingJSON, &chunk.Embedding); err != nil {
			continue // Skip corrupted embeddings
		}
		results = append(results, entities.ScoredChunk{
			Chunk: chunk,
			Score: cosineSimilarity(embedding, chunk.Embedding),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if topK > 0 && len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// Clear removes all stored chunks. Used when the knowledge base is
// re-indexed at startup.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM chunks")
	return err
}

// ChunkCount returns the number of stored chunks.
func (s *SQLiteStore) ChunkCount(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks").Scan(&count)
	return count, err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
