package usecases

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/techgear/supportbot/internal/domain/ports"
	"github.com/techgear/supportbot/internal/observability"
)

// answerTemperature trades some determinism for fluency, vs the
// classifier's 0.1.
const answerTemperature = 0.3

// FallbackResponse is returned when retrieval cannot ground an answer.
// This path never invokes the generative model, so the bot cannot
// hallucinate about topics the knowledge base does not cover.
const FallbackResponse = "I don't have specific information about that in TechGear's knowledge base. " +
	"Please contact support@techgear.com for more details."

const answerPrompt = `You are a helpful customer support assistant for TechGear Electronics.
Use the following context to answer the customer's question accurately and professionally.
If you don't know the answer based on the context, say so politely.

Context: %s

Question: %s

Answer:`

// AnswerGenerator composes retrieved context and optional conversation
// history into a grounding prompt and invokes the generative model.
type AnswerGenerator struct {
	retriever *Retriever
	llm       ports.CompletionService
	topK      int
	threshold float64
	logger    *zap.Logger
	metrics   *observability.Metrics
}

// NewAnswerGenerator creates an AnswerGenerator. Non-positive topK and
// out-of-range thresholds fall back to the defaults.
func NewAnswerGenerator(
	retriever *Retriever,
	llm ports.CompletionService,
	topK int,
	threshold float64,
	logger *zap.Logger,
	metrics *observability.Metrics,
) *AnswerGenerator {
	if topK <= 0 {
		topK = DefaultTopK
	}
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultScoreThreshold
	}
	return &AnswerGenerator{
		retriever: retriever,
		llm:       llm,
		topK:      topK,
		threshold: threshold,
		logger:    logger,
		metrics:   metrics,
	}
}

// Answer retrieves context for the question and generates a grounded
// response. historyText, when non-empty, is prepended to the question so
// the model can resolve references to earlier turns. Upstream failures
// propagate: there is no safe fabricated answer.
func (g *AnswerGenerator) Answer(ctx context.Context, question, historyText string) (string, error) {
	candidates, err := g.retriever.Retrieve(ctx, question, g.topK)
	if err != nil {
		return "", err
	}

	decision := DecideReliability(candidates, g.threshold)
	if !decision.Reliable {
		best := 0.0
		if len(candidates) > 0 {
			best = candidates[0].Score
		}
		g.logger.Info("no reliable context, using fallback response",
			zap.Float64("best_score", best),
			zap.Float64("threshold", g.threshold),
		)
		g.metrics.FallbackResponses.Inc()
		return FallbackResponse, nil
	}
	g.logger.Debug("reliable context found",
		zap.Float64("top_score", decision.Candidates[0].Score),
		zap.Int("candidates", len(decision.Candidates)),
	)

	parts := make([]string, len(decision.Candidates))
	for i, cand := range decision.Candidates {
		parts[i] = cand.Chunk.Content
	}
	contextText := strings.Join(parts, "\n\n")

	enhanced := question
	if historyText != "" {
		enhanced = fmt.Sprintf("Conversation history:\n%s\n\nCurrent question: %s", historyText, question)
	}

	answer, err := g.llm.Complete(ctx, fmt.Sprintf(answerPrompt, contextText, enhanced), answerTemperature)
	if err != nil {
		return "", fmt.Errorf("generating answer: %w", err)
	}
	return answer, nil
}
