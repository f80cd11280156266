// Package usecases contains application business rules.
// Clean Architecture: Usecases orchestrate entities and depend on port interfaces.
// They contain NO framework code beyond logging and metrics.
package usecases

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/techgear/supportbot/internal/domain/entities"
)

// Default chunking parameters for the knowledge base.
const (
	DefaultChunkSize    = 500
	DefaultChunkOverlap = 50
)

// boundarySeparators are tried largest-first when deciding where to cut a
// window: paragraph break, then line break, then word break. A window with
// none of them is cut at the raw character limit.
var boundarySeparators = []string{"\n\n", "\n", " "}

// Chunker splits raw knowledge-base text into overlapping segments.
// Splitting is deterministic: the same input and parameters always yield
// the same chunk sequence.
type Chunker struct {
	maxSize int
	overlap int
}

// NewChunker creates a Chunker. Out-of-range parameters fall back to the
// defaults so a zero-valued config cannot produce a degenerate splitter.
func NewChunker(maxSize, overlap int) *Chunker {
	if maxSize <= 0 {
		maxSize = DefaultChunkSize
	}
	if overlap < 0 || overlap >= maxSize {
		overlap = DefaultChunkOverlap
		if overlap >= maxSize {
			overlap = maxSize / 10
		}
	}
	return &Chunker{maxSize: maxSize, overlap: overlap}
}

// Split cuts the document into ordered chunks of at most maxSize
// characters. Each window is cut at the largest semantic boundary it
// contains, and adjacent chunks share `overlap` characters so retrieval
// is not penalized for concepts crossing a split point.
func (c *Chunker) Split(doc *entities.Document) []entities.Chunk {
	content := strings.TrimSpace(doc.Content)
	if content == "" {
		return nil
	}

	var chunks []entities.Chunk
	start := 0
	ordinal := 0

	for start < len(content) {
		end := start + c.maxSize
		if end >= len(content) {
			end = len(content)
		} else {
			end = start + cutPoint(content[start:end])
		}

		piece := strings.TrimSpace(content[start:end])
		if piece != "" {
			chunks = append(chunks, entities.Chunk{
				ID:         chunkID(doc.ID, ordinal),
				DocumentID: doc.ID,
				Content:    piece,
				Ordinal:    ordinal,
				Source:     doc.Name,
			})
			ordinal++
		}

		if end == len(content) {
			break
		}
		next := end - c.overlap
		if next <= start {
			// Overlap would stall the scan; give up the overlap for
			// this boundary rather than loop forever.
			next = end
		}
		start = next
	}

	return chunks
}

// cutPoint returns the offset at which to cut the window, preferring the
// last paragraph break, then the last line break, then the last space.
// A window without any boundary is cut at its full length.
func cutPoint(window string) int {
	for _, sep := range boundarySeparators {
		if i := strings.LastIndex(window, sep); i > 0 {
			return i
		}
	}
	return len(window)
}

// chunkID creates a deterministic ID for a chunk.
func chunkID(docID string, ordinal int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s:%d", docID, ordinal)))
	return hex.EncodeToString(sum[:8])
}
