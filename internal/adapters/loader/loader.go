// Package loader provides the knowledge-source loading adapter.
package loader

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/techgear/supportbot/internal/domain/entities"
	"github.com/techgear/supportbot/internal/domain/ports"
)

// TextLoader loads a plain-text knowledge base file.
type TextLoader struct{}

// NewTextLoader creates a new text document loader.
func NewTextLoader() *TextLoader {
	return &TextLoader{}
}

// Load reads the knowledge base from the given path. A missing file is
// reported as ports.ErrNotFound so startup can fail fast.
func (l *TextLoader) Load(ctx context.Context, path string) (*entities.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ports.ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return &entities.Document{
		ID:        documentID(path),
		Name:      filepath.Base(path),
		Path:      path,
		Content:   string(content),
		CreatedAt: time.Now(),
	}, nil
}

// documentID creates a deterministic ID from the document path.
func documentID(path string) string {
	sum := sha256.Sum256([]byte(path))
	return hex.EncodeToString(sum[:8])
}
