// Command demo exercises the chatbot workflow with representative
// queries across every category, without starting the HTTP server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/techgear/supportbot/internal/app"
	"github.com/techgear/supportbot/internal/config"
	"github.com/techgear/supportbot/internal/domain/entities"
)

type demoQuery struct {
	label   string
	query   string
	history []entities.Turn
}

var demoQueries = []demoQuery{
	{label: "Products", query: "What is the price of SmartWatch Pro X?"},
	{label: "Products", query: "Tell me about the laptop warranty"},
	{label: "Returns", query: "What is your return policy?"},
	{label: "Returns", query: "How do I return a product?"},
	{label: "General Support", query: "When is customer support available?"},
	{label: "General Support", query: "What are your support hours?"},
	{label: "Escalation", query: "My laptop screen is broken, what should I do?"},
	{label: "Escalation", query: "I want to file a complaint about my order"},
	{label: "Out of Scope", query: "What's the weather like today?"},
	{
		label: "Follow-up with History",
		query: "What is its price?",
		history: []entities.Turn{
			{Sender: entities.SenderUser, Text: "Tell me about SmartWatch Pro X"},
			{Sender: entities.SenderBot, Text: "The SmartWatch Pro X is a premium fitness tracker..."},
		},
	},
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	flag.Parse()

	// Keep demo output readable: only warnings and errors from the pipeline.
	logCfg := zap.NewProductionConfig()
	logCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	logger, err := logCfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}
	cfg.Knowledge.Watch = false

	ctx := context.Background()
	application, err := app.Build(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "building pipeline: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	for i, dq := range demoQueries {
		fmt.Printf("[%d/%d] %s\n", i+1, len(demoQueries), dq.label)
		fmt.Printf("  Query: %s\n", dq.query)

		result, err := application.Workflow.Run(ctx, dq.query, dq.history)
		if err != nil {
			fmt.Printf("  Error: %v\n\n", err)
			continue
		}
		fmt.Printf("  Category: %s\n", result.Category)
		fmt.Printf("  Response: %s\n\n", result.Response)
	}
}
