package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/session"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	chatNoReasoning bool
	chatServerURL   string
	chatOutDir      string
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Build your résumé in an interactive chat",
	Long: `Start an interactive chat with the résumé assistant. The transcript and the
résumé are saved locally after every turn and restored on the next run.

Commands:
  /markdown [file]  write the résumé as Markdown
  /show             print a summary of the résumé
  /reasoning        toggle the model's reasoning trace
  /reset            start over (asks for confirmation)
  /quit             leave the chat`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().BoolVar(&chatNoReasoning, "no-reasoning", false, "Start with reasoning disabled")
	chatCmd.Flags().StringVar(&chatServerURL, "server", "", "Chat through a running API server instead of the provider (overrides config)")
	chatCmd.Flags().StringVar(&chatOutDir, "out-dir", ".", "Directory /markdown writes to")
	rootCmd.AddCommand(chatCmd)
}

var (
	assistantColor = color.New(color.FgCyan)
	userColor      = color.New(color.FgGreen, color.Bold)
	noticeColor    = color.New(color.FgYellow)
	errorColor     = color.New(color.FgRed)
)

func runChat(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if chatServerURL != "" {
		cfg.Session.ServerURL = chatServerURL
	}

	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	chatter, closeChatter, err := newChatter(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeChatter()

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	sess := session.New(store, chatter, session.Options{Logger: logger, DisableReasoning: chatNoReasoning})

	repl := &chatREPL{
		sess:    sess,
		in:      bufio.NewReader(cmd.InOrStdin()),
		out:     cmd.OutOrStdout(),
		printer: observability.NewPrinter(cmd.OutOrStdout()),
		outDir:  chatOutDir,
		logger:  logger,
	}
	return repl.run(cmd)
}

// newChatter picks the API server when one is configured, otherwise the provider directly
func newChatter(cmd *cobra.Command, cfg *config.Config) (session.Chatter, func(), error) {
	if cfg.Session.ServerURL != "" {
		return session.NewHTTPChatter(cfg.Session.ServerURL, cfg.Session.Token), func() {}, nil
	}
	client, err := newLLMClient(cmd.Context(), cfg)
	if err != nil {
		return nil, nil, err
	}
	return &session.LLMChatter{Client: client, Config: &cfg.LLM}, func() { _ = client.Close() }, nil
}

type chatREPL struct {
	sess    *session.Session
	in      *bufio.Reader
	out     io.Writer
	printer *observability.Printer
	outDir  string
	logger  *zap.Logger
}

//nolint:errcheck // writing to the terminal
func (r *chatREPL) run(cmd *cobra.Command) error {
	for _, m := range r.sess.Messages() {
		r.printMessage(m)
	}
	noticeColor.Fprintln(r.out, "Type /quit to leave, /markdown to export.")

	for {
		userColor.Fprint(r.out, "> ")
		line, err := r.in.ReadString('\n')
		text := strings.TrimSpace(line)
		if err != nil && text == "" {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out)
				return nil
			}
			return err
		}
		if text == "" {
			continue
		}

		if strings.HasPrefix(text, "/") {
			if quit := r.command(text); quit {
				return nil
			}
			continue
		}

		turn, err := r.sess.Send(cmd.Context(), text)
		if err != nil {
			errorColor.Fprintf(r.out, "%v\n", err)
			continue
		}
		if turn.Err != nil {
			r.logger.Debug("chat turn failed", zap.Error(turn.Err))
		}
		if r.sess.Reasoning() && len(turn.Assistant.ReasoningDetails) > 0 {
			r.printer.PrintReasoning(turn.Assistant.ReasoningDetails)
		}
		r.printMessage(turn.Assistant)
		if turn.Updated {
			r.printer.PrintResumeSummary(r.sess.Resume())
		}
	}
}

// command runs a slash command and reports whether the REPL should exit
//
//nolint:errcheck // writing to the terminal
func (r *chatREPL) command(text string) bool {
	fields := strings.Fields(text)
	switch fields[0] {
	case "/quit", "/exit":
		return true
	case "/show":
		r.printer.PrintResumeSummary(r.sess.Resume())
	case "/reasoning":
		r.sess.SetReasoning(!r.sess.Reasoning())
		state := "off"
		if r.sess.Reasoning() {
			state = "on"
		}
		noticeColor.Fprintf(r.out, "Reasoning %s\n", state)
	case "/reset":
		if !confirm(r.in, r.out, "Are you sure you want to reset? This will clear all your resume data.") {
			return false
		}
		if err := r.sess.Reset(); err != nil {
			errorColor.Fprintf(r.out, "reset failed: %v\n", err)
			return false
		}
		for _, m := range r.sess.Messages() {
			r.printMessage(m)
		}
	case "/markdown":
		path, err := r.writeMarkdown(fields[1:])
		if err != nil {
			errorColor.Fprintf(r.out, "%v\n", err)
			return false
		}
		noticeColor.Fprintf(r.out, "Saved %s\n", path)
	default:
		errorColor.Fprintf(r.out, "unknown command %s\n", fields[0])
	}
	return false
}

func (r *chatREPL) writeMarkdown(args []string) (string, error) {
	markdown := rendering.RenderMarkdown(r.sess.Resume())
	name := rendering.GenerateFilename(markdown, time.Now())
	if len(args) > 0 {
		name = args[0]
	}
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.outDir, path)
	}
	if err := os.WriteFile(path, []byte(markdown), 0o644); err != nil {
		return "", fmt.Errorf("failed to write markdown: %w", err)
	}
	return path, nil
}

//nolint:errcheck // writing to the terminal
func (r *chatREPL) printMessage(m types.Message) {
	switch m.Role {
	case types.RoleUser:
		userColor.Fprintf(r.out, "[%s] You: ", m.Timestamp.Local().Format("15:04"))
		fmt.Fprintln(r.out, m.Content)
	case types.RoleAssistant:
		assistantColor.Fprintf(r.out, "[%s] Assistant: ", m.Timestamp.Local().Format("15:04"))
		fmt.Fprintln(r.out, m.Content)
	}
}
