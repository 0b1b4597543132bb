package main

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/server"
	"github.com/spf13/cobra"
)

var (
	tokenSubject string
	tokenHours   int
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for the API",
	Long:  "Signs a token with the configured JWT secret. Intended for development; production tokens come from the identity provider.",
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "", "Token subject, e.g. an email address (required)")
	tokenCmd.Flags().IntVar(&tokenHours, "hours", 0, "Lifetime in hours (default from config)")

	if err := tokenCmd.MarkFlagRequired("subject"); err != nil {
		panic(fmt.Sprintf("failed to mark subject flag as required: %v", err))
	}

	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.Auth.Enabled() {
		return fmt.Errorf("JWT_SECRET is not configured")
	}
	if tokenHours > 0 {
		cfg.Auth.ExpirationHours = tokenHours
	}

	token, err := server.NewJWTService(&cfg.Auth).GenerateToken(tokenSubject)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
