package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
)

// handleDownloadPost returns the posted Markdown as a file attachment
func (s *Server) handleDownloadPost(w http.ResponseWriter, r *http.Request) {
	var req types.DownloadRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Markdown content is required")
		return
	}

	s.attachmentResponse(w, "text/markdown; charset=utf-8", rendering.SanitizeFilename(req.Filename), []byte(req.Markdown))
}

// handleDownloadGet serves the same attachment from query parameters
func (s *Server) handleDownloadGet(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	content := query.Get("content")
	if content == "" {
		s.errorResponse(w, http.StatusBadRequest, "Content parameter is required")
		return
	}

	s.attachmentResponse(w, "text/markdown; charset=utf-8", rendering.SanitizeFilename(query.Get("filename")), []byte(content))
}

// attachmentResponse writes body as a downloadable file
func (s *Server) attachmentResponse(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
