// Package llm provides the generative-model adapter.
// Clean Architecture: Adapter implementing ports.CompletionService.
package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIAdapter implements ports.CompletionService against any
// OpenAI-compatible chat completion API (OpenAI, Gemini's compatibility
// endpoint, Ollama, vLLM, ...).
type OpenAIAdapter struct {
	client *openai.Client
	model  string
}

// NewOpenAIAdapter creates an adapter for the given endpoint and model.
// An empty baseURL targets the public OpenAI API.
func NewOpenAIAdapter(baseURL, apiKey, model string) *OpenAIAdapter {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIAdapter{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Complete sends the prompt as a single user message and returns the
// model's text verbatim.
func (a *OpenAIAdapter) Complete(ctx context.Context, prompt string, temperature float32) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		Temperature: temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("calling completion API: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion API returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
