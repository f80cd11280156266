// Package observability holds the prometheus instrumentation shared by
// the pipeline components.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics aggregates the counters the pipeline emits. Constructed once
// at startup and injected into components alongside the logger.
type Metrics struct {
	// Classifications counts classifier outcomes by resolution path
	// ("rule" or "model") and resulting category.
	Classifications *prometheus.CounterVec

	// InvalidCategoryOutput counts model-phase outputs that were not one
	// of the four valid labels and were mapped to escalate.
	InvalidCategoryOutput prometheus.Counter

	// FallbackResponses counts answers replaced by the fixed fallback
	// because retrieval was not reliable.
	FallbackResponses prometheus.Counter

	// Escalations counts requests routed to the escalation message.
	Escalations prometheus.Counter

	// KnowledgeFileChanges counts on-disk changes to the knowledge base
	// observed while the process was running.
	KnowledgeFileChanges prometheus.Counter
}

// NewMetrics registers the pipeline counters with the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Classifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "supportbot_classifications_total",
			Help: "Total classified queries by resolution path and category",
		}, []string{"path", "category"}),
		InvalidCategoryOutput: factory.NewCounter(prometheus.CounterOpts{
			Name: "supportbot_invalid_category_output_total",
			Help: "Classifier model outputs outside the valid category set",
		}),
		FallbackResponses: factory.NewCounter(prometheus.CounterOpts{
			Name: "supportbot_fallback_responses_total",
			Help: "Answers replaced by the fallback due to unreliable retrieval",
		}),
		Escalations: factory.NewCounter(prometheus.CounterOpts{
			Name: "supportbot_escalations_total",
			Help: "Requests routed to the human-support escalation message",
		}),
		KnowledgeFileChanges: factory.NewCounter(prometheus.CounterOpts{
			Name: "supportbot_knowledge_file_changes_total",
			Help: "Knowledge base file changes detected on disk",
		}),
	}
}
