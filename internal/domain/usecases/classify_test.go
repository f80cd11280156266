package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/techgear/supportbot/internal/domain/entities"
)

func newClassifier(llm *mockLLM) *Classifier {
	return NewClassifier(llm, zap.NewNop(), newTestMetrics())
}

func TestClassifier_KeywordShortCircuitsWithoutModelCall(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"legal threat", "I will take you to COURT over this"},
		{"device damage", "My laptop screen is broken, what should I do?"},
		{"payment dispute", "I was charged twice for one order"},
		{"abuse", "this is a scam and you know it"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llm := &mockLLM{response: "products"}
			c := newClassifier(llm)

			category, err := c.Classify(context.Background(), tt.query)

			require.NoError(t, err)
			assert.Equal(t, entities.CategoryEscalate, category)
			assert.Zero(t, llm.calls, "rule phase must not invoke the model")
		})
	}
}

func TestClassifier_ModelPhaseValidOutput(t *testing.T) {
	tests := []struct {
		raw  string
		want entities.Category
	}{
		{"products", entities.CategoryProducts},
		{" Returns \n", entities.CategoryReturns},
		{"GENERAL", entities.CategoryGeneral},
		{"escalate", entities.CategoryEscalate},
	}

	for _, tt := range tests {
		llm := &mockLLM{response: tt.raw}
		c := newClassifier(llm)

		category, err := c.Classify(context.Background(), "What is your return policy?")

		require.NoError(t, err)
		assert.Equal(t, tt.want, category)
		assert.Equal(t, 1, llm.calls)
	}
}

func TestClassifier_InvalidOutputDefaultsToEscalate(t *testing.T) {
	for _, raw := range []string{"", "banana", "products and returns", "I think this is about products"} {
		llm := &mockLLM{response: raw}
		c := newClassifier(llm)

		category, err := c.Classify(context.Background(), "Can you help me?")

		require.NoError(t, err)
		assert.Equal(t, entities.CategoryEscalate, category, "output %q must map to escalate", raw)
	}
}

func TestClassifier_PromptEmbedsQueryAndRunsCold(t *testing.T) {
	llm := &mockLLM{response: "general"}
	c := newClassifier(llm)

	_, err := c.Classify(context.Background(), "What are your support hours?")

	require.NoError(t, err)
	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "What are your support hours?")
	assert.Contains(t, llm.prompts[0], "EXACTLY ONE")
	assert.InDelta(t, 0.1, llm.temps[0], 1e-6)
}

func TestClassifier_UpstreamFailurePropagates(t *testing.T) {
	llm := &mockLLM{failures: 1}
	c := newClassifier(llm)

	_, err := c.Classify(context.Background(), "What is the warranty?")

	assert.Error(t, err)
}
