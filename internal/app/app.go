// Package app wires the pipeline together from configuration. Both the
// server and the demo runner build the same dependency graph through
// here, so startup semantics (eager index build, fail-fast on a missing
// knowledge base) stay identical.
package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/techgear/supportbot/internal/adapters/embedding"
	"github.com/techgear/supportbot/internal/adapters/filewatcher"
	"github.com/techgear/supportbot/internal/adapters/llm"
	"github.com/techgear/supportbot/internal/adapters/loader"
	"github.com/techgear/supportbot/internal/adapters/vectordb"
	"github.com/techgear/supportbot/internal/config"
	"github.com/techgear/supportbot/internal/domain/ports"
	"github.com/techgear/supportbot/internal/domain/usecases"
	"github.com/techgear/supportbot/internal/observability"
)

// App holds the application-scoped pipeline. Constructed once at startup
// and shared read-only across requests.
type App struct {
	Workflow *usecases.Workflow
	Answerer *usecases.AnswerGenerator
	Registry *prometheus.Registry
	Metrics  *observability.Metrics

	cfg    *config.Config
	logger *zap.Logger
	closer func() error
}

// Build constructs the full pipeline: loads the knowledge base, chunks
// it, builds the vector index, and wires the classifier, answer
// generator, and workflow. A missing knowledge base or unreachable
// embedding endpoint fails here, at startup, not on first request.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)

	embedder := embedding.NewOpenAIAdapter(cfg.Model.BaseURL, cfg.Model.APIKey, cfg.Model.EmbeddingModel)
	completer := llm.NewOpenAIAdapter(cfg.Model.BaseURL, cfg.Model.APIKey, cfg.Model.ChatModel)

	var store ports.VectorStore
	closer := func() error { return nil }
	switch cfg.Store.Type {
	case "sqlite":
		sqlStore, err := vectordb.NewSQLiteStore(cfg.Store.Path)
		if err != nil {
			return nil, fmt.Errorf("opening vector store: %w", err)
		}
		// The index is rebuilt per-process; stale rows from a previous
		// knowledge base version must not leak into searches.
		if err := sqlStore.Clear(ctx); err != nil {
			sqlStore.Close()
			return nil, fmt.Errorf("clearing vector store: %w", err)
		}
		store = sqlStore
		closer = sqlStore.Close
	default:
		store = vectordb.NewInMemoryStore()
	}

	doc, err := loader.NewTextLoader().Load(ctx, cfg.Knowledge.Path)
	if err != nil {
		closer()
		return nil, fmt.Errorf("loading knowledge base: %w", err)
	}
	logger.Info("knowledge base loaded",
		zap.String("path", doc.Path),
		zap.Int("bytes", len(doc.Content)),
	)

	chunks := usecases.NewChunker(cfg.Knowledge.ChunkSize, cfg.Knowledge.ChunkOverlap).Split(doc)
	logger.Info("knowledge base chunked", zap.Int("chunks", len(chunks)))

	retriever := usecases.NewRetriever(embedder, store, logger)
	if err := retriever.Build(ctx, chunks); err != nil {
		closer()
		return nil, fmt.Errorf("building vector index: %w", err)
	}

	classifier := usecases.NewClassifier(completer, logger, metrics)
	answerer := usecases.NewAnswerGenerator(
		retriever, completer,
		cfg.Retrieval.TopK, cfg.Retrieval.ScoreThreshold,
		logger, metrics,
	)
	workflow := usecases.NewWorkflow(classifier, answerer, logger, metrics)

	return &App{
		Workflow: workflow,
		Answerer: answerer,
		Registry: registry,
		Metrics:  metrics,
		cfg:      cfg,
		logger:   logger,
		closer:   closer,
	}, nil
}

// WatchKnowledge monitors the knowledge base file until ctx is
// cancelled. The index is immutable for the process lifetime, so a
// change only produces an operator warning and a counter increment.
func (a *App) WatchKnowledge(ctx context.Context) error {
	if !a.cfg.Knowledge.Watch {
		return nil
	}

	watcher, err := filewatcher.NewFSNotifyWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}

	events, err := watcher.Watch(ctx, a.cfg.Knowledge.Path)
	if err != nil {
		watcher.Stop()
		return fmt.Errorf("watching knowledge base: %w", err)
	}

	go func() {
		defer watcher.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-events:
				if !ok {
					return
				}
				a.Metrics.KnowledgeFileChanges.Inc()
				a.logger.Warn("knowledge base changed on disk; restart to rebuild the index",
					zap.String("path", event.Path),
				)
			}
		}
	}()
	return nil
}

// Close releases resources held by the pipeline.
func (a *App) Close() error {
	return a.closer()
}
