// Package session holds the client-side chat session: the transcript, the
// accumulated résumé, and the local storage they are persisted to.
package session

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/resume-builder/internal/types"
)

// Storage keys
const (
	MessagesKey = "resumeChatMessages"
	ResumeKey   = "resumeData"
)

// Store persists a session's transcript and résumé under two keys.
// Load methods report ok=false when nothing has been stored yet.
type Store interface {
	LoadMessages() (messages []types.Message, ok bool, err error)
	SaveMessages(messages []types.Message) error
	// LoadResume returns the stored résumé document as raw JSON so callers
	// can validate and normalize it.
	LoadResume() (data []byte, ok bool, err error)
	SaveResume(resume types.ResumeData) error
	// Save writes both keys.
	Save(messages []types.Message, resume types.ResumeData) error
	// Clear removes both keys.
	Clear() error
}

// StoreError represents a failed read or write of a storage key
type StoreError struct {
	Op    string
	Key   string
	Cause error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("session store: %s %s: %v", e.Op, e.Key, e.Cause)
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}

// encodeMessages and decodeMessages share the on-disk format between stores.
func encodeMessages(messages []types.Message) ([]byte, error) {
	if messages == nil {
		messages = []types.Message{}
	}
	return json.Marshal(messages)
}

func decodeMessages(data []byte) ([]types.Message, error) {
	var messages []types.Message
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
