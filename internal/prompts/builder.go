package prompts

import (
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/types"
)

// BuildTranscript converts the session transcript into completion messages.
// The résumé system instruction is prepended on the first turn only: when the
// transcript holds exactly one user message and no system message.
func BuildTranscript(messages []types.Message) []llm.ChatMessage {
	out := make([]llm.ChatMessage, 0, len(messages)+1)
	if isFirstTurn(messages) {
		out = append(out, llm.ChatMessage{Role: string(types.RoleSystem), Content: ResumeSystem()})
	}
	for _, m := range messages {
		out = append(out, llm.ChatMessage{Role: string(m.Role), Content: m.Content})
	}
	return out
}

// BuildMarkdownTranscript prepends the Markdown generation instruction to the transcript.
func BuildMarkdownTranscript(messages []types.Message) []llm.ChatMessage {
	out := make([]llm.ChatMessage, 0, len(messages)+1)
	out = append(out, llm.ChatMessage{Role: string(types.RoleSystem), Content: MarkdownSystem()})
	for _, m := range messages {
		out = append(out, llm.ChatMessage{Role: string(m.Role), Content: m.Content})
	}
	return out
}

// FromTranscript converts wire transcript entries into session messages.
func FromTranscript(in []types.TranscriptMessage) []types.Message {
	out := make([]types.Message, 0, len(in))
	for _, m := range in {
		out = append(out, types.Message{Role: m.Role, Content: m.Content})
	}
	return out
}

func isFirstTurn(messages []types.Message) bool {
	users := 0
	for _, m := range messages {
		switch m.Role {
		case types.RoleSystem:
			return false
		case types.RoleUser:
			users++
		}
	}
	return users == 1
}
