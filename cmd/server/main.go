// Command server runs the TechGear support chatbot HTTP API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/techgear/supportbot/internal/app"
	"github.com/techgear/supportbot/internal/config"
	httpserver "github.com/techgear/supportbot/internal/infrastructure/http"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	devLog := flag.Bool("dev", false, "use human-readable development logging")
	flag.Parse()

	logger, err := newLogger(*devLog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(*configPath, logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func run(configPath string, logger *zap.Logger) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.Build(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer application.Close()

	if err := application.WatchKnowledge(ctx); err != nil {
		// The watcher is advisory; the service runs fine without it.
		logger.Warn("knowledge base watcher unavailable", zap.Error(err))
	}

	server := httpserver.NewServer(
		application.Workflow,
		application.Answerer,
		application.Registry,
		logger,
		cfg.Server.Addr,
		cfg.Server.AllowedOrigins,
	)
	return server.Start(ctx)
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
