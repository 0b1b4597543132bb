package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/resume-builder/internal/parsing"
	"github.com/jonathan/resume-builder/internal/prompts"
	"github.com/jonathan/resume-builder/internal/types"
	"go.uber.org/zap"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 1 << 20

// handleChat forwards the transcript to the model and returns its raw reply
// together with the parsed résumé fragment, if any.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req types.ChatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.errorDetailsResponse(w, http.StatusBadRequest, "Messages array is required", err)
		return
	}
	if err := req.Validate(); err != nil {
		s.errorDetailsResponse(w, http.StatusBadRequest, "Messages array is required", err)
		return
	}

	messages := prompts.FromTranscript(req.Messages)
	completion, err := s.client.Complete(r.Context(), s.cfg.LLM.ChatRequest(prompts.BuildTranscript(messages), req.ReasoningEnabled()))
	if err != nil {
		s.metrics.ObserveUpstreamError()
		s.logger.Error("chat completion failed",
			zap.Error(err),
			zap.Int("messages", len(messages)),
			zap.String("provider", string(s.cfg.LLM.Provider)),
		)
		s.errorDetailsResponse(w, http.StatusInternalServerError, "Failed to process chat request", err)
		return
	}

	result := parsing.ParseAIResponse(completion.Content)
	s.metrics.ObserveReply(result.Kind)

	s.jsonResponse(w, http.StatusOK, types.ChatResponse{
		Message:          completion.Content,
		ReasoningDetails: completion.ReasoningDetails,
		JSONData:         result.ResumeData,
		Role:             types.RoleAssistant,
	})
}
