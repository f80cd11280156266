package usecases

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techgear/supportbot/internal/domain/entities"
)

func doc(content string) *entities.Document {
	return &entities.Document{ID: "doc1", Name: "kb.txt", Content: content}
}

func TestChunker_EmptyDocument(t *testing.T) {
	c := NewChunker(100, 10)
	assert.Nil(t, c.Split(doc("")))
	assert.Nil(t, c.Split(doc("   \n\n  ")))
}

func TestChunker_SingleChunkWhenSmall(t *testing.T) {
	c := NewChunker(100, 10)
	chunks := c.Split(doc("short document"))
	require.Len(t, chunks, 1)
	assert.Equal(t, "short document", chunks[0].Content)
	assert.Equal(t, 0, chunks[0].Ordinal)
	assert.Equal(t, "doc1", chunks[0].DocumentID)
}

func TestChunker_RespectsMaxSize(t *testing.T) {
	content := strings.Repeat("word ", 200)
	c := NewChunker(50, 10)
	chunks := c.Split(doc(content))
	require.NotEmpty(t, chunks)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk.Content), 50, "chunk %d too large", chunk.Ordinal)
	}
}

func TestChunker_PrefersParagraphBoundary(t *testing.T) {
	c := NewChunker(15, 0)
	chunks := c.Split(doc("para one.\n\npara two."))
	require.Len(t, chunks, 2)
	assert.Equal(t, "para one.", chunks[0].Content)
	assert.Equal(t, "para two.", chunks[1].Content)
}

func TestChunker_FallsBackToWordBoundary(t *testing.T) {
	c := NewChunker(12, 0)
	chunks := c.Split(doc("alpha beta gamma delta"))
	require.NotEmpty(t, chunks)
	// No chunk should cut a word in half when spaces are available.
	for _, chunk := range chunks {
		for _, w := range strings.Fields(chunk.Content) {
			assert.Contains(t, []string{"alpha", "beta", "gamma", "delta"}, w)
		}
	}
}

func TestChunker_RawCutWhenNoBoundary(t *testing.T) {
	c := NewChunker(4, 1)
	chunks := c.Split(doc("abcdefghij"))
	require.NotEmpty(t, chunks)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk.Content), 4)
	}
	assert.Equal(t, "abcd", chunks[0].Content)
}

func TestChunker_Deterministic(t *testing.T) {
	content := strings.Repeat("TechGear sells electronics. ", 40) +
		"\n\nReturns are accepted within 30 days.\n" +
		strings.Repeat("Support hours are 9 to 5. ", 30)
	c := NewChunker(120, 20)

	first := c.Split(doc(content))
	second := c.Split(doc(content))
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i], second[i])
	}
}

func TestChunker_OverlappingBoundaries(t *testing.T) {
	content := strings.Repeat("abcde ", 50)
	c := NewChunker(60, 12)
	chunks := c.Split(doc(content))
	require.Greater(t, len(chunks), 1)

	// Consecutive chunks share text: the tail of one chunk reappears at
	// the head of the next.
	for i := 1; i < len(chunks); i++ {
		prev := chunks[i-1].Content
		tail := prev[len(prev)-5:]
		assert.True(t, strings.HasPrefix(chunks[i].Content, strings.TrimSpace(tail)) ||
			strings.Contains(chunks[i].Content, strings.TrimSpace(tail)),
			"chunk %d does not overlap its predecessor", i)
	}
}

func TestChunker_DefaultsOnBadParameters(t *testing.T) {
	c := NewChunker(0, -5)
	assert.Equal(t, DefaultChunkSize, c.maxSize)
	assert.Equal(t, DefaultChunkOverlap, c.overlap)

	c = NewChunker(100, 200)
	assert.Equal(t, 100, c.maxSize)
	assert.Less(t, c.overlap, c.maxSize)
}

func TestChunker_ChunkIDsAreDeterministic(t *testing.T) {
	c := NewChunker(20, 0)
	a := c.Split(doc("one two three four five six seven eight"))
	b := c.Split(doc("one two three four five six seven eight"))
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].ID, b[i].ID)
	}
}
