package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the saved chat and résumé",
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Do not ask for confirmation")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if !resetYes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Are you sure you want to reset? This will clear all your resume data.") {
		fmt.Fprintln(cmd.OutOrStdout(), "Reset cancelled")
		return nil
	}

	sess, err := openLocalSession(cfg, logger)
	if err != nil {
		return err
	}
	if err := sess.Reset(); err != nil {
		return fmt.Errorf("failed to reset session: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Session cleared")
	return nil
}
