package session

import (
	"encoding/json"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps serialized session data in an in-process cache.
// Values are stored encoded so callers never share slices with the store.
type MemoryStore struct {
	cache *cache.Cache
}

// NewMemoryStore creates an empty store whose entries never expire.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{cache: cache.New(cache.NoExpiration, 0)}
}

func (s *MemoryStore) get(key string) ([]byte, bool) {
	if x, found := s.cache.Get(key); found {
		data := x.([]byte)
		out := make([]byte, len(data))
		copy(out, data)
		return out, true
	}
	return nil, false
}

// LoadMessages reads the stored transcript.
func (s *MemoryStore) LoadMessages() ([]types.Message, bool, error) {
	data, ok := s.get(MessagesKey)
	if !ok {
		return nil, false, nil
	}
	messages, err := decodeMessages(data)
	if err != nil {
		return nil, false, &StoreError{Op: "decode", Key: MessagesKey, Cause: err}
	}
	return messages, true, nil
}

// SaveMessages writes the transcript.
func (s *MemoryStore) SaveMessages(messages []types.Message) error {
	data, err := encodeMessages(messages)
	if err != nil {
		return &StoreError{Op: "encode", Key: MessagesKey, Cause: err}
	}
	s.cache.Set(MessagesKey, data, cache.NoExpiration)
	return nil
}

// LoadResume reads the stored résumé document.
func (s *MemoryStore) LoadResume() ([]byte, bool, error) {
	data, ok := s.get(ResumeKey)
	return data, ok, nil
}

// SaveResume writes the résumé.
func (s *MemoryStore) SaveResume(resume types.ResumeData) error {
	data, err := json.Marshal(resume)
	if err != nil {
		return &StoreError{Op: "encode", Key: ResumeKey, Cause: err}
	}
	s.cache.Set(ResumeKey, data, cache.NoExpiration)
	return nil
}

// Save writes both keys.
func (s *MemoryStore) Save(messages []types.Message, resume types.ResumeData) error {
	if err := s.SaveMessages(messages); err != nil {
		return err
	}
	return s.SaveResume(resume)
}

// Clear removes both keys.
func (s *MemoryStore) Clear() error {
	s.cache.Delete(MessagesKey)
	s.cache.Delete(ResumeKey)
	return nil
}

// Put stores raw bytes under key. Tests use it to seed corrupt or legacy data.
func (s *MemoryStore) Put(key string, data []byte) {
	s.cache.Set(key, data, cache.NoExpiration)
}
