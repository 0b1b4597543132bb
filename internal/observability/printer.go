package observability

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted terminal output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most width runes.
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

// PrintResumeSummary outputs the headline facts of the accumulated résumé.
func (p *Printer) PrintResumeSummary(r types.ResumeData) {
	var sb strings.Builder

	name := r.PersonalInfo.Name
	if name == "" {
		name = "(not set yet)"
	}
	sb.WriteString(fmt.Sprintf("Name:     %s\n", name))
	if r.PersonalInfo.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:    %s\n", r.PersonalInfo.Email))
	}
	sb.WriteString("\n")

	skillCount := 0
	for _, c := range r.Skills {
		skillCount += len(c.Items)
	}
	sb.WriteString(fmt.Sprintf("%d %s · %d Education · %d Skills\n",
		len(r.Experience), plural(len(r.Experience), "Experience", "Experiences"), len(r.Education), skillCount))
	sb.WriteString(fmt.Sprintf("%d Projects · %d Certifications\n", len(r.Projects), len(r.Certifications)))

	if len(r.Experience) > 0 {
		sb.WriteString("\nExperience:\n")
		count := min(len(r.Experience), maxItemsToShow)
		for i := 0; i < count; i++ {
			exp := r.Experience[i]
			sb.WriteString(fmt.Sprintf("  • %s", exp.Title))
			if exp.Company != "" {
				sb.WriteString(fmt.Sprintf(" @ %s", exp.Company))
			}
			sb.WriteString("\n")
		}
		if len(r.Experience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(r.Experience)-maxItemsToShow))
		}
	}

	p.printBox("RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTranscript outputs the chat transcript, one turn per block.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintTranscript(messages []types.Message) {
	for _, m := range messages {
		if m.Role == types.RoleSystem {
			continue
		}
		label := "You"
		if m.Role == types.RoleAssistant {
			label = "Assistant"
		}
		fmt.Fprintf(p.out, "[%s] %s\n%s\n\n", m.Timestamp.Local().Format("15:04"), label, m.Content)
	}
}

// PrintReasoning outputs a model reasoning trace. Known shapes are a list of
// {"text": ...} entries; anything else is printed as indented JSON.
func (p *Printer) PrintReasoning(raw json.RawMessage) {
	if len(raw) == 0 {
		return
	}

	var entries []struct {
		Text    string `json:"text"`
		Summary string `json:"summary"`
	}
	var sb strings.Builder
	if err := json.Unmarshal(raw, &entries); err == nil {
		for _, e := range entries {
			text := e.Text
			if text == "" {
				text = e.Summary
			}
			if text != "" {
				sb.WriteString(strings.TrimSpace(text) + "\n")
			}
		}
	}
	if sb.Len() == 0 {
		var indented bytes.Buffer
		if err := json.Indent(&indented, raw, "", "  "); err != nil {
			sb.Write(raw)
		} else {
			sb.Write(indented.Bytes())
		}
	}

	p.printBox("REASONING", wrap(strings.TrimSuffix(sb.String(), "\n"), boxWidth-4))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// wrap breaks lines longer than width at spaces so the box does not truncate prose.
func wrap(s string, width int) string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		for len([]rune(line)) > width {
			r := []rune(line)
			cut := strings.LastIndex(string(r[:width]), " ")
			if cut <= 0 {
				cut = len(string(r[:width]))
			}
			out = append(out, line[:cut])
			line = strings.TrimLeft(line[cut:], " ")
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
