package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/prompts"
	"github.com/jonathan/resume-builder/internal/types"
)

// Reply is the raw assistant text returned for a transcript.
type Reply struct {
	Content          string
	ReasoningDetails json.RawMessage
}

// Chatter sends the full transcript to a model and returns its raw reply.
type Chatter interface {
	Chat(ctx context.Context, messages []types.Message, useReasoning bool) (*Reply, error)
}

// LLMChatter talks to a provider directly, without going through the HTTP API.
type LLMChatter struct {
	Client llm.Client
	Config *llm.Config
}

// Chat builds the provider transcript and returns the first choice.
func (c *LLMChatter) Chat(ctx context.Context, messages []types.Message, useReasoning bool) (*Reply, error) {
	cfg := c.Config
	if cfg == nil {
		cfg = llm.DefaultConfig()
	}
	completion, err := c.Client.Complete(ctx, cfg.ChatRequest(prompts.BuildTranscript(messages), useReasoning))
	if err != nil {
		return nil, err
	}
	return &Reply{Content: completion.Content, ReasoningDetails: completion.ReasoningDetails}, nil
}

// APIError is a non-2xx answer from the chat API.
type APIError struct {
	StatusCode int
	Message    string
	Details    string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("chat API error %d: %s", e.StatusCode, e.Message)
	if e.Details != "" {
		msg += ": " + e.Details
	}
	return msg
}

// HTTPChatter posts the transcript to a running server's /api/chat endpoint.
type HTTPChatter struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// NewHTTPChatter creates a chatter for the server at baseURL. token may be empty.
func NewHTTPChatter(baseURL, token string) *HTTPChatter {
	return &HTTPChatter{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Token:      token,
		HTTPClient: &http.Client{Timeout: 2 * time.Minute},
	}
}

// Chat sends the transcript as role/content pairs.
func (c *HTTPChatter) Chat(ctx context.Context, messages []types.Message, useReasoning bool) (*Reply, error) {
	req := types.ChatRequest{
		Messages:     make([]types.TranscriptMessage, 0, len(messages)),
		UseReasoning: &useReasoning,
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, types.TranscriptMessage{Role: m.Role, Content: m.Content})
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.Token)
	}

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("chat request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read chat response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
		var errResp types.ErrorResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			apiErr.Message = errResp.Error
			apiErr.Details = errResp.Details
		}
		return nil, apiErr
	}

	var chatResp types.ChatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return nil, fmt.Errorf("failed to decode chat response: %w", err)
	}
	return &Reply{Content: chatResp.Message, ReasoningDetails: chatResp.ReasoningDetails}, nil
}
