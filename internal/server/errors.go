package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-builder/internal/parsing"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrPDFUnavailable indicates the server was started without a PDF renderer
type ErrPDFUnavailable struct{}

func (e *ErrPDFUnavailable) Error() string {
	return "PDF rendering is not configured"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validationErr *ErrValidation
	var parseErr *parsing.ParseError
	var pdfErr *ErrPDFUnavailable

	switch {
	case errors.As(err, &validationErr), errors.As(err, &parseErr):
		return http.StatusBadRequest
	case errors.As(err, &pdfErr):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
