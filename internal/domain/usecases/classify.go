package usecases

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/techgear/supportbot/internal/domain/entities"
	"github.com/techgear/supportbot/internal/domain/ports"
	"github.com/techgear/supportbot/internal/observability"
)

// classifierTemperature keeps the model phase near-deterministic.
const classifierTemperature = 0.1

// escalationKeywords is the rule-phase safety net: any query containing
// one of these (case-insensitive substring match) escalates without a
// model call. High-risk language must never depend on a generative
// model's judgment. Plain substring matching means words embedded in
// unrelated text ("court" inside "courtyard") also trigger; known
// limitation, kept intentionally.
var escalationKeywords = []string{
	"lawsuit", "legal", "sue", "court", "lawyer",
	"broken screen", "screen is broken", "repair my", "fix my device",
	"payment failed", "payment error", "charged twice",
	"spam", "abuse", "hate", "scam",
}

const classificationPrompt = `You are a query classifier for TechGear Electronics customer support.
Classify the following customer query into EXACTLY ONE of these categories:
- "products": Questions about product features, prices, specifications, warranty
- "returns": Questions about return policy, refunds, return process
- "general": Questions about support hours, contact information, general inquiries
- "escalate": Complex issues, complaints, payment problems, device repairs not in knowledge base, abusive messages, or unclear queries

Output ONLY the category name, nothing else.

Query: %s

Category:`

// Classifier assigns each query one of the closed intent categories.
// Two phases: a deterministic keyword scan, then a model-based
// classification only when no rule matched.
type Classifier struct {
	llm     ports.CompletionService
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewClassifier creates a Classifier.
func NewClassifier(llm ports.CompletionService, logger *zap.Logger, metrics *observability.Metrics) *Classifier {
	return &Classifier{llm: llm, logger: logger, metrics: metrics}
}

// Classify returns the query's category. An error is returned only when
// the model phase itself fails upstream; callers own the degrade-to-
// escalate policy for that case. Invalid model output is recovered here
// and never surfaces as an error.
func (c *Classifier) Classify(ctx context.Context, query string) (entities.Category, error) {
	queryLower := strings.ToLower(query)
	for _, keyword := range escalationKeywords {
		if strings.Contains(queryLower, keyword) {
			c.logger.Info("query matched escalation keyword",
				zap.String("path", "rule"),
				zap.String("keyword", keyword),
			)
			c.metrics.Classifications.WithLabelValues("rule", string(entities.CategoryEscalate)).Inc()
			return entities.CategoryEscalate, nil
		}
	}

	raw, err := c.llm.Complete(ctx, fmt.Sprintf(classificationPrompt, query), classifierTemperature)
	if err != nil {
		return "", fmt.Errorf("classifying query: %w", err)
	}

	category, ok := entities.ParseCategory(raw)
	if !ok {
		// Unknown classifier output is the unsafe case; never guess.
		c.logger.Warn("classifier returned unrecognized category, defaulting to escalate",
			zap.String("output", strings.TrimSpace(raw)),
		)
		c.metrics.InvalidCategoryOutput.Inc()
	}

	c.logger.Info("query classified",
		zap.String("path", "model"),
		zap.String("category", string(category)),
	)
	c.metrics.Classifications.WithLabelValues("model", string(category)).Inc()
	return category, nil
}
