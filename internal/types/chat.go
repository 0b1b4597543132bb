package types

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

// TranscriptMessage is the wire shape of a transcript turn sent to /api/chat.
// Client-side fields such as id and timestamp are ignored.
type TranscriptMessage struct {
	Role    Role   `json:"role" validate:"required,oneof=user assistant system"`
	Content string `json:"content"`
}

// ChatRequest represents the request body for /api/chat
type ChatRequest struct {
	Messages     []TranscriptMessage `json:"messages" validate:"required,min=1,dive"`
	UseReasoning *bool               `json:"useReasoning,omitempty"`
}

// Validate validates the ChatRequest using the validator.
func (r *ChatRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// ReasoningEnabled returns the useReasoning flag, defaulting to true when absent.
func (r *ChatRequest) ReasoningEnabled() bool {
	if r.UseReasoning == nil {
		return true
	}
	return *r.UseReasoning
}

// ChatResponse represents the response for /api/chat.
// Message is the raw model text; JSONData is the parsed résumé fragment, or null.
type ChatResponse struct {
	Message          string          `json:"message"`
	ReasoningDetails json.RawMessage `json:"reasoning_details,omitempty"`
	JSONData         *ResumeData     `json:"json_data"`
	Role             Role            `json:"role"`
}

// MarkdownRequest represents the request body for /api/generate-markdown
type MarkdownRequest struct {
	Messages []TranscriptMessage `json:"messages" validate:"required,min=1,dive"`
}

// Validate validates the MarkdownRequest using the validator.
func (r *MarkdownRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// MarkdownResponse represents the response for /api/generate-markdown
type MarkdownResponse struct {
	Markdown string `json:"markdown"`
	Filename string `json:"filename"`
}

// DownloadRequest represents the request body for /api/download-resume
type DownloadRequest struct {
	Markdown string `json:"markdown" validate:"required"`
	Filename string `json:"filename,omitempty"`
}

// Validate validates the DownloadRequest using the validator.
func (r *DownloadRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// ErrorResponse is the JSON error body returned by the API
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
