package usecases

import "github.com/techgear/supportbot/internal/domain/entities"

// DefaultScoreThreshold gates whether retrieved context is trusted.
// Tuned to the embedding model's relevance score range.
const DefaultScoreThreshold = 0.4

// GateDecision is the retrieval gate's verdict on a candidate batch.
type GateDecision struct {
	Candidates []entities.ScoredChunk
	Reliable   bool
}

// DecideReliability judges whether retrieved context is trustworthy
// enough to ground an answer: reliable iff the batch is non-empty and the
// top-ranked score meets the threshold. When reliable, every retrieved
// candidate passes through unfiltered; the top score gates the whole
// batch, it is not a per-candidate filter.
func DecideReliability(candidates []entities.ScoredChunk, threshold float64) GateDecision {
	if len(candidates) == 0 {
		return GateDecision{Reliable: false}
	}
	decision := GateDecision{Reliable: candidates[0].Score >= threshold}
	if decision.Reliable {
		decision.Candidates = candidates
	}
	return decision
}
