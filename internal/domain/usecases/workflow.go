package usecases

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/techgear/supportbot/internal/domain/entities"
	"github.com/techgear/supportbot/internal/observability"
)

// maxHistoryTurns bounds how much prior conversation the pipeline reads.
const maxHistoryTurns = 4

// EscalationResponse is the fixed message for queries routed to a human.
const EscalationResponse = "I'm not able to handle this request. " +
	"Please contact support@techgear.com or call customer support for further assistance."

// State is the per-request record threaded through the workflow stages.
// Each stage returns a new State rather than mutating a shared one; the
// record is discarded once the result is returned.
type State struct {
	Query       string
	HistoryText string
	Category    entities.Category
	Response    string
}

// Result is the workflow's final output for one request.
type Result struct {
	Response string
	Category entities.Category
}

// Workflow sequences classify -> route -> respond for each request. It
// holds no per-request state, so concurrent invocations are safe.
type Workflow struct {
	classifier *Classifier
	answerer   *AnswerGenerator
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewWorkflow creates a Workflow.
func NewWorkflow(classifier *Classifier, answerer *AnswerGenerator, logger *zap.Logger, metrics *observability.Metrics) *Workflow {
	return &Workflow{
		classifier: classifier,
		answerer:   answerer,
		logger:     logger,
		metrics:    metrics,
	}
}

// Run executes the workflow for one query with optional prior turns.
// Invocations are independent and idempotent given identical inputs.
// Classification failures degrade to escalate; answer-generation
// failures propagate, since a fabricated answer is never acceptable.
func (w *Workflow) Run(ctx context.Context, query string, history []entities.Turn) (*Result, error) {
	state := State{
		Query:       query,
		HistoryText: RenderHistory(history),
	}

	state = w.classify(ctx, state)

	state, err := w.respond(ctx, state)
	if err != nil {
		return nil, err
	}

	return &Result{Response: state.Response, Category: state.Category}, nil
}

// classify runs the intent classifier. It always succeeds with some
// category: an upstream failure is retried once, then mapped to escalate
// as the safe default.
func (w *Workflow) classify(ctx context.Context, state State) State {
	category, err := w.classifier.Classify(ctx, state.Query)
	if err != nil {
		w.logger.Warn("classification failed, retrying once", zap.Error(err))
		category, err = w.classifier.Classify(ctx, state.Query)
	}
	if err != nil {
		w.logger.Warn("classification failed after retry, escalating", zap.Error(err))
		category = entities.CategoryEscalate
	}

	state.Category = category
	return state
}

// respond routes on the category: escalate yields the fixed escalation
// message, everything else delegates to the answer generator. Routing is
// a pure function of category.
func (w *Workflow) respond(ctx context.Context, state State) (State, error) {
	if state.Category == entities.CategoryEscalate {
		w.logger.Info("escalating to human support")
		w.metrics.Escalations.Inc()
		state.Response = EscalationResponse
		return state, nil
	}

	response, err := w.answerer.Answer(ctx, state.Query, state.HistoryText)
	if err != nil {
		return state, err
	}
	state.Response = response
	return state, nil
}

// RenderHistory truncates the history to the last maxHistoryTurns turns
// and renders them oldest-first as "User: ..." / "Bot: ..." lines.
func RenderHistory(history []entities.Turn) string {
	if len(history) == 0 {
		return ""
	}
	if len(history) > maxHistoryTurns {
		history = history[len(history)-maxHistoryTurns:]
	}

	lines := make([]string, 0, len(history))
	for _, turn := range history {
		speaker := "Bot"
		if turn.Sender == entities.SenderUser {
			speaker = "User"
		}
		lines = append(lines, speaker+": "+turn.Text)
	}
	return strings.Join(lines, "\n")
}
