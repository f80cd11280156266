package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techgear/supportbot/internal/domain/ports"
)

func TestTextLoader_LoadsContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "product_info.txt")
	require.NoError(t, os.WriteFile(path, []byte("TechGear product catalog"), 0o644))

	doc, err := NewTextLoader().Load(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, "TechGear product catalog", doc.Content)
	assert.Equal(t, "product_info.txt", doc.Name)
	assert.Equal(t, path, doc.Path)
	assert.NotEmpty(t, doc.ID)
}

func TestTextLoader_MissingFileIsNotFound(t *testing.T) {
	_, err := NewTextLoader().Load(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))

	require.Error(t, err)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestTextLoader_DeterministicID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.txt")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o644))

	first, err := NewTextLoader().Load(context.Background(), path)
	require.NoError(t, err)
	second, err := NewTextLoader().Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
}
