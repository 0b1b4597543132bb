package parsing

import (
	"strings"
)

// ExtractJSONSpan returns the candidate JSON object embedded in text.
// The span starts at the first '{' and ends at its matching '}', ignoring braces
// inside string literals. If the object is never closed the span runs to the end
// of the text. ok is false when text contains no '{' at all.
func ExtractJSONSpan(text string) (span string, ok bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}

	return text[start:], true
}

// stripFences removes Markdown code fence markers left around or inside a span.
func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
