package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const openRouterProvider = "OpenRouter"

// OpenRouterClient implements Client against an OpenAI-compatible
// /chat/completions endpoint such as OpenRouter.
type OpenRouterClient struct {
	apiKey     string
	config     *Config
	httpClient *http.Client
}

type reasoningOption struct {
	Enabled bool `json:"enabled"`
}

type openRouterRequest struct {
	Model       string           `json:"model"`
	Messages    []ChatMessage    `json:"messages"`
	MaxTokens   int              `json:"max_tokens,omitempty"`
	Temperature float64          `json:"temperature"`
	Reasoning   *reasoningOption `json:"reasoning,omitempty"`
}

type openRouterResponse struct {
	Choices []struct {
		Message struct {
			Content          string          `json:"content"`
			ReasoningDetails json.RawMessage `json:"reasoning_details"`
		} `json:"message"`
	} `json:"choices"`
}

// NewOpenRouterClient creates a client. A nil httpClient uses a client without
// a timeout; the request context bounds each call.
func NewOpenRouterClient(config *Config, apiKey string, httpClient *http.Client) (*OpenRouterClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if config == nil {
		config = DefaultConfig()
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &OpenRouterClient{apiKey: apiKey, config: config, httpClient: httpClient}, nil
}

// Complete sends the transcript and returns the first choice.
func (c *OpenRouterClient) Complete(ctx context.Context, req CompletionRequest) (*Completion, error) {
	body := openRouterRequest{
		Model:       c.config.Model,
		Messages:    req.Messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}
	if req.Reasoning {
		body.Reasoning = &reasoningOption{Enabled: true}
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimRight(c.config.BaseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	title := req.Title
	if title == "" {
		title = c.config.AppTitle
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("HTTP-Referer", c.config.SiteURL)
	httpReq.Header.Set("X-Title", title)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &UpstreamError{Provider: openRouterProvider, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return nil, &UpstreamError{
			Provider:   openRouterProvider,
			StatusCode: resp.StatusCode,
			Body:       string(errBody),
		}
	}

	var parsed openRouterResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return nil, ErrEmptyResponse
	}

	msg := parsed.Choices[0].Message
	completion := &Completion{Content: msg.Content}
	if len(msg.ReasoningDetails) > 0 && string(msg.ReasoningDetails) != "null" {
		completion.ReasoningDetails = msg.ReasoningDetails
	}
	return completion, nil
}

// Close is a no-op; the HTTP client holds no per-client resources.
func (c *OpenRouterClient) Close() error {
	return nil
}
