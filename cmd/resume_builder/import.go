package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/parsing"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/spf13/cobra"
)

var importForce bool

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the saved résumé with a JSON document",
	Long:  "Validates a résumé JSON file against the schema and stores it as the session's résumé. Code fences around the JSON are ignored.",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importForce, "force", false, "Import even when the document does not match the schema")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	data := []byte(llm.CleanJSONBlock(string(content)))

	if err := schemas.ValidateResume(data); err != nil {
		var validationErr *schemas.ValidationError
		if !importForce || !errors.As(err, &validationErr) {
			return fmt.Errorf("resume does not match schema: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v", err)
	}

	resume, err := parsing.DecodeResume(data)
	if err != nil {
		return err
	}

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
	sess.Import(resume)

	observability.NewPrinter(cmd.OutOrStdout()).PrintResumeSummary(sess.Resume())
	return nil
}
