package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/session"
	"go.uber.org/zap"
)

// loadConfig reads and validates the configuration for a command
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the structured logger; console output goes to stderr
func newLogger(cfg *config.Config, stderr io.Writer) (*zap.Logger, error) {
	logger, err := observability.NewLogger(cfg.Log, stderr)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

// newLLMClient creates the provider client named in the configuration
func newLLMClient(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	apiKey, err := cfg.APIKey()
	if err != nil {
		return nil, err
	}
	client, err := llm.NewClient(ctx, &cfg.LLM, apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create llm client: %w", err)
	}
	return client, nil
}

// openStore opens the file store holding the local session
func openStore(cfg *config.Config) (*session.FileStore, error) {
	store, err := session.NewFileStore(cfg.Session.StoreDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}
	return store, nil
}

// openLocalSession restores the session without a chatter, for commands that
// never talk to the model.
func openLocalSession(cfg *config.Config, logger *zap.Logger) (*session.Session, error) {
	store, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	return session.New(store, nil, session.Options{Logger: logger}), nil
}

// confirm asks a yes/no question and reports whether the answer was yes
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
