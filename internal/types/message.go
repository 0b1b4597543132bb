package types

import (
	"encoding/json"
	"time"
)

// Role identifies the author of a chat turn
type Role string

// Role constants define the participants of a transcript
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}

// Message is one turn in the chat transcript.
// ReasoningDetails is an opaque, model-specific trace passed through unmodified.
type Message struct {
	ID               string          `json:"id"`
	Role             Role            `json:"role"`
	Content          string          `json:"content"`
	Timestamp        time.Time       `json:"timestamp"`
	ReasoningDetails json.RawMessage `json:"reasoning_details,omitempty"`
}

// WelcomeMessage is the assistant greeting every new session starts with.
const WelcomeMessage = "Hello! I'm your AI Resume Assistant. Let's create an amazing resume together. What field are you in, and what kind of job are you targeting?"

// ErrorReplyMessage is shown in place of an assistant reply when the chat call fails.
const ErrorReplyMessage = "I'm sorry, I encountered an error. Please try again."

// NewMessage creates a message with a fresh ID and the given timestamp.
func NewMessage(role Role, content string, at time.Time) Message {
	return Message{
		ID:        GenerateID(),
		Role:      role,
		Content:   content,
		Timestamp: at,
	}
}
