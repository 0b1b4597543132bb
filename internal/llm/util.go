package llm

import (
	"regexp"
	"strings"
)

// CleanJSONBlock removes markdown code block wrappers from JSON responses.
// LLMs often wrap JSON in ```json ... ``` blocks even when instructed not to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

var (
	markdownFence = regexp.MustCompile("```markdown\\n?|\\n?```")
	genericFence  = regexp.MustCompile("```\\n?|\\n?```")
)

// CleanMarkdownBlock strips code fences the model may wrap a Markdown document in.
func CleanMarkdownBlock(text string) string {
	switch {
	case strings.Contains(text, "```markdown"):
		return markdownFence.ReplaceAllString(text, "")
	case strings.Contains(text, "```"):
		return genericFence.ReplaceAllString(text, "")
	}
	return text
}
