package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/spf13/cobra"
)

var (
	renderFormat    string
	renderOutput    string
	renderAutoPrint bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the saved résumé as Markdown, HTML or PDF",
	Long:  "Render the résumé from the local session. Markdown and HTML go to stdout unless --out is given; PDF requires Chrome.",
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "markdown", "Output format: markdown, html or pdf")
	renderCmd.Flags().StringVarP(&renderOutput, "out", "o", "", "Output file (default stdout; a dated file name for pdf)")
	renderCmd.Flags().BoolVar(&renderAutoPrint, "autoprint", false, "Open the print dialog when the HTML is loaded")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	sess, err := openLocalSession(cfg, logger)
	if err != nil {
		return err
	}
	resume := sess.Resume()

	var out []byte
	switch strings.ToLower(renderFormat) {
	case "markdown", "md":
		out = []byte(rendering.RenderMarkdown(resume))
	case "html":
		html, err := rendering.RenderHTML(resume, rendering.HTMLOptions{AutoPrint: renderAutoPrint, TemplatePath: cfg.Render.TemplatePath})
		if err != nil {
			return fmt.Errorf("failed to render HTML: %w", err)
		}
		out = []byte(html)
	case "pdf":
		html, err := rendering.RenderHTML(resume, rendering.HTMLOptions{TemplatePath: cfg.Render.TemplatePath})
		if err != nil {
			return fmt.Errorf("failed to render HTML: %w", err)
		}
		pdf := rendering.NewPDFRenderer(cfg.Render.ChromePath)
		if cfg.Render.PDFTimeout > 0 {
			pdf.Timeout = cfg.Render.PDFTimeout
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if out, err = pdf.RenderPDF(ctx, html); err != nil {
			return fmt.Errorf("failed to render PDF: %w", err)
		}
		if renderOutput == "" {
			name := rendering.GenerateFilename(rendering.RenderMarkdown(resume), time.Now())
			renderOutput = strings.TrimSuffix(name, ".md") + ".pdf"
		}
	default:
		return fmt.Errorf("unsupported format %q: use markdown, html or pdf", renderFormat)
	}

	if renderOutput == "" {
		_, err := cmd.OutOrStdout().Write(out)
		return err
	}
	if err := os.WriteFile(renderOutput, out, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", renderOutput, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Saved %s\n", renderOutput)
	return nil
}
