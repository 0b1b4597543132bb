package server

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jonathan/resume-builder/internal/parsing"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
	"go.uber.org/zap"
)

// Render formats accepted by /api/render
const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatPDF      = "pdf"
)

// handleRender normalizes the posted résumé and renders it in the requested format
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	resume, err := parsing.DecodeResume(body)
	if err != nil {
		s.errorDetailsResponse(w, HTTPStatus(err), "Invalid resume data", err)
		return
	}

	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = FormatMarkdown
	}

	switch format {
	case FormatMarkdown:
		s.attachmentResponse(w, "text/markdown; charset=utf-8", s.renderFilename(resume, ".md"), []byte(rendering.RenderMarkdown(resume)))
	case FormatHTML:
		html, err := s.renderHTML(resume, r.URL.Query().Get("autoprint") == "true")
		if err != nil {
			s.renderFailed(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, html)
	case FormatPDF:
		if s.pdf == nil {
			s.renderFailed(w, &ErrPDFUnavailable{})
			return
		}
		html, err := s.renderHTML(resume, false)
		if err != nil {
			s.renderFailed(w, err)
			return
		}
		pdf, err := s.pdf.RenderPDF(r.Context(), html)
		if err != nil {
			s.renderFailed(w, err)
			return
		}
		s.attachmentResponse(w, "application/pdf", s.renderFilename(resume, ".pdf"), pdf)
	default:
		s.renderFailed(w, &ErrValidation{Field: "format", Message: "must be one of markdown, html, pdf"})
	}
}

func (s *Server) renderHTML(resume types.ResumeData, autoPrint bool) (string, error) {
	return rendering.RenderHTML(resume, rendering.HTMLOptions{
		AutoPrint:    autoPrint,
		TemplatePath: s.cfg.Render.TemplatePath,
	})
}

// renderFilename derives the attachment name from the résumé heading
func (s *Server) renderFilename(resume types.ResumeData, ext string) string {
	heading := ""
	if resume.PersonalInfo.Name != "" {
		heading = "# " + resume.PersonalInfo.Name
	}
	name := rendering.GenerateFilename(heading, time.Now())
	return strings.TrimSuffix(name, ".md") + ext
}

func (s *Server) renderFailed(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("render failed", zap.Error(err))
	}
	s.errorDetailsResponse(w, status, "Failed to render resume", err)
}
