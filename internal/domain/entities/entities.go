// Package entities contains core business entities.
// These are the enterprise business rules - pure domain objects with no external dependencies.
package entities

import (
	"strings"
	"time"
)

// Document represents a loaded knowledge-base source.
// This is a core entity - no knowledge of storage or external systems.
type Document struct {
	ID        string
	Name      string
	Path      string
	Content   string
	CreatedAt time.Time
}

// Chunk is a bounded, overlapping segment of a document used as the
// retrieval unit. Adjacent chunks share a configurable character span so
// concepts crossing a split boundary are not lost.
type Chunk struct {
	ID         string
	DocumentID string
	Content    string
	Ordinal    int       // Position in document
	Embedding  []float32 // Vector representation (populated by adapter)
	Source     string    // Originating file, carried through for logs
}

// ScoredChunk is a retrieval result with its similarity score.
// Higher scores mean more similar. Never persisted.
type ScoredChunk struct {
	Chunk Chunk
	Score float64
}

// Sender identifies who produced a conversation turn.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Turn is a single prior message in the conversation. Turns are supplied
// by the caller and treated as read-only context.
type Turn struct {
	Sender Sender
	Text   string
}

// Category is the closed set of intents the classifier can produce.
// Invalid model output never becomes a Category directly; it passes
// through ParseCategory, which maps anything unrecognized to escalate.
type Category string

const (
	CategoryProducts Category = "products"
	CategoryReturns  Category = "returns"
	CategoryGeneral  Category = "general"
	CategoryEscalate Category = "escalate"

	// CategoryDirect marks responses that bypassed classification
	// entirely (debug endpoint). It is never produced by the classifier.
	CategoryDirect Category = "direct"
)

// ParseCategory normalizes raw classifier output and narrows it into the
// closed category set. The boolean reports whether the input was one of
// the four recognized labels; unrecognized input yields CategoryEscalate,
// the safe default.
func ParseCategory(raw string) (Category, bool) {
	switch Category(strings.ToLower(strings.TrimSpace(raw))) {
	case CategoryProducts:
		return CategoryProducts, true
	case CategoryReturns:
		return CategoryReturns, true
	case CategoryGeneral:
		return CategoryGeneral, true
	case CategoryEscalate:
		return CategoryEscalate, true
	}
	return CategoryEscalate, false
}
