package main

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/spf13/cobra"
)

var (
	showJSON       bool
	showTranscript bool
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the saved résumé",
	RunE:  runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Print the résumé as JSON")
	showCmd.Flags().BoolVar(&showTranscript, "transcript", false, "Also print the chat transcript")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, _ []string) error {
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

	if showJSON {
		data, err := json.MarshalIndent(sess.Resume(), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode resume: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	} else {
		observability.NewPrinter(cmd.OutOrStdout()).PrintResumeSummary(sess.Resume())
	}

	if showTranscript {
		observability.NewPrinter(cmd.OutOrStdout()).PrintTranscript(sess.Messages())
	}
	return nil
}
