package llm

import (
	"context"
	"encoding/json"
	"fmt"
)

// ChatMessage is one role/content pair sent to the model
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest describes a single chat-completion call
type CompletionRequest struct {
	Messages    []ChatMessage
	MaxTokens   int
	Temperature float64
	// Reasoning asks providers that support it to return a reasoning trace.
	Reasoning bool
	// Title overrides the configured attribution title.
	Title string
}

// Completion is the model's reply
type Completion struct {
	Content string
	// ReasoningDetails is the provider's reasoning trace, passed through unmodified.
	ReasoningDetails json.RawMessage
}

// Client is an abstraction over LLM providers
type Client interface {
	// Complete sends the transcript and returns the first choice.
	Complete(ctx context.Context, req CompletionRequest) (*Completion, error)
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderOpenRouter:
		return NewOpenRouterClient(config, apiKey, nil)
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", config.Provider)
	}
}
