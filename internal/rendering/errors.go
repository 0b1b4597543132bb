// Package rendering turns a structured résumé into Markdown, printable HTML and PDF.
package rendering

import "fmt"

// TemplateError reports a résumé HTML template that could not be loaded,
// parsed or executed. Path is empty for the embedded template.
type TemplateError struct {
	Path    string
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	name := e.Path
	if name == "" {
		name = defaultTemplate
	}
	if e.Cause != nil {
		return fmt.Sprintf("html template %s: %s: %v", name, e.Message, e.Cause)
	}
	return fmt.Sprintf("html template %s: %s", name, e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// PDF stages reported by RenderError.
const (
	StageScratch = "scratch"
	StagePrint   = "print"
)

// RenderError reports a failed HTML to PDF conversion in headless Chrome.
type RenderError struct {
	Stage   string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("pdf %s: %s: %v", e.Stage, e.Message, e.Cause)
	}
	return fmt.Sprintf("pdf %s: %s", e.Stage, e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
