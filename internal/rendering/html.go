package rendering

import (
	"embed"
	"html/template"
	"os"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

//go:embed templates/*.tmpl
var templateFiles embed.FS

const defaultTemplate = "templates/resume.html.tmpl"

// HTMLOptions controls the printable HTML document
type HTMLOptions struct {
	// AutoPrint adds a script that opens the print dialog once the page loads.
	AutoPrint bool
	// TemplatePath overrides the embedded template with a file on disk.
	TemplatePath string
}

type htmlView struct {
	types.ResumeData
	AutoPrint bool
}

// RenderHTML renders the résumé as a standalone printable HTML document.
// All résumé text is escaped by html/template.
func RenderHTML(r types.ResumeData, opts HTMLOptions) (string, error) {
	tmpl, err := parseTemplate(opts.TemplatePath)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, htmlView{ResumeData: r.Clone(), AutoPrint: opts.AutoPrint}); err != nil {
		return "", &TemplateError{
			Path:    opts.TemplatePath,
			Message: "cannot execute with résumé data",
			Cause:   err,
		}
	}
	return out.String(), nil
}

// parseTemplate loads the embedded template, or the file at templatePath when set.
func parseTemplate(templatePath string) (*template.Template, error) {
	var content []byte
	var err error
	if templatePath == "" {
		content, err = templateFiles.ReadFile(defaultTemplate)
	} else {
		content, err = os.ReadFile(templatePath)
	}
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &TemplateError{
				Path:    templatePath,
				Message: "file not found",
				Cause:   err,
			}
		}
		return nil, &TemplateError{
			Path:    templatePath,
			Message: "cannot read file",
			Cause:   err,
		}
	}

	tmpl, err := template.New("resume").Funcs(template.FuncMap{
		"join": strings.Join,
	}).Parse(string(content))
	if err != nil {
		return nil, &TemplateError{
			Path:    templatePath,
			Message: "cannot parse",
			Cause:   err,
		}
	}
	return tmpl, nil
}
