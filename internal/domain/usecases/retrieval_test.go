package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/techgear/supportbot/internal/domain/entities"
	"github.com/techgear/supportbot/internal/domain/ports"
)

func TestRetriever_QueryBeforeBuildFails(t *testing.T) {
	r := NewRetriever(&mockEmbedder{}, &mockStore{}, zap.NewNop())

	_, err := r.Retrieve(context.Background(), "anything", 3)

	require.Error(t, err)
	assert.ErrorIs(t, err, ports.ErrNotInitialized)
}

func TestRetriever_BuildThenQuery(t *testing.T) {
	store := &mockStore{results: []entities.ScoredChunk{scored(0.9, "a"), scored(0.5, "b")}}
	r := NewRetriever(&mockEmbedder{}, store, zap.NewNop())

	chunks := []entities.Chunk{{ID: "c1", Content: "first"}, {ID: "c2", Content: "second"}}
	require.NoError(t, r.Build(context.Background(), chunks))
	require.Len(t, store.stored, 2)
	assert.NotEmpty(t, store.stored[0].Embedding, "build must attach embeddings")

	results, err := r.Retrieve(context.Background(), "query", 3)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.GreaterOrEqual(t, results[0].Score, results[1].Score)
}

func TestRetriever_BuildIsOneShot(t *testing.T) {
	store := &mockStore{}
	r := NewRetriever(&mockEmbedder{}, store, zap.NewNop())
	chunks := []entities.Chunk{{ID: "c1", Content: "first"}}

	require.NoError(t, r.Build(context.Background(), chunks))
	require.NoError(t, r.Build(context.Background(), chunks))

	assert.Equal(t, 1, store.storeCalls, "second build must be a no-op")
}

func TestRetriever_BuildRejectsEmptyChunks(t *testing.T) {
	r := NewRetriever(&mockEmbedder{}, &mockStore{}, zap.NewNop())
	assert.Error(t, r.Build(context.Background(), nil))
}

func TestRetriever_DoesNotMutateInputChunks(t *testing.T) {
	store := &mockStore{}
	r := NewRetriever(&mockEmbedder{}, store, zap.NewNop())
	chunks := []entities.Chunk{{ID: "c1", Content: "first"}}

	require.NoError(t, r.Build(context.Background(), chunks))

	assert.Nil(t, chunks[0].Embedding, "caller's chunks must stay untouched")
}
