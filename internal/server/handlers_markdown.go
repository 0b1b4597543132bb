package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/prompts"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
	"go.uber.org/zap"
)

// handleGenerateMarkdown asks the model to write the résumé as Markdown from the transcript
func (s *Server) handleGenerateMarkdown(w http.ResponseWriter, r *http.Request) {
	var req types.MarkdownRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Messages array is required")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorDetailsResponse(w, http.StatusBadRequest, "Messages array is required", err)
		return
	}

	messages := prompts.FromTranscript(req.Messages)
	completion, err := s.client.Complete(r.Context(), s.cfg.LLM.MarkdownRequest(prompts.BuildMarkdownTranscript(messages)))
	if err != nil {
		s.metrics.ObserveUpstreamError()
		s.logger.Error("markdown generation failed", zap.Error(err), zap.Int("messages", len(messages)))
		s.errorDetailsResponse(w, http.StatusInternalServerError, "Failed to generate markdown", err)
		return
	}

	markdown := llm.CleanMarkdownBlock(completion.Content)
	s.jsonResponse(w, http.StatusOK, types.MarkdownResponse{
		Markdown: markdown,
		Filename: rendering.GenerateFilename(markdown, time.Now()),
	})
}
