package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-builder/internal/types"
)

// FileStore keeps each key in its own JSON file inside a directory.
// Writes go to a temp file that is renamed into place.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed and returns a store rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, &StoreError{Op: "open", Key: dir, Cause: err}
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory the store writes to.
func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileStore) read(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, &StoreError{Op: "read", Key: key, Cause: err}
	}
	return data, true, nil
}

func (s *FileStore) write(key string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return &StoreError{Op: "write", Key: key, Cause: err}
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return &StoreError{Op: "write", Key: key, Cause: err}
	}
	if err := tmp.Close(); err != nil {
		return &StoreError{Op: "write", Key: key, Cause: err}
	}
	if err := os.Rename(tmpName, s.path(key)); err != nil {
		return &StoreError{Op: "write", Key: key, Cause: err}
	}
	return nil
}

// LoadMessages reads the stored transcript.
func (s *FileStore) LoadMessages() ([]types.Message, bool, error) {
	data, ok, err := s.read(MessagesKey)
	if err != nil || !ok {
		return nil, ok, err
	}
	messages, err := decodeMessages(data)
	if err != nil {
		return nil, false, &StoreError{Op: "decode", Key: MessagesKey, Cause: err}
	}
	return messages, true, nil
}

// SaveMessages writes the transcript.
func (s *FileStore) SaveMessages(messages []types.Message) error {
	data, err := encodeMessages(messages)
	if err != nil {
		return &StoreError{Op: "encode", Key: MessagesKey, Cause: err}
	}
	return s.write(MessagesKey, data)
}

// LoadResume reads the stored résumé document.
func (s *FileStore) LoadResume() ([]byte, bool, error) {
	return s.read(ResumeKey)
}

// SaveResume writes the résumé.
func (s *FileStore) SaveResume(resume types.ResumeData) error {
	data, err := json.MarshalIndent(resume, "", "  ")
	if err != nil {
		return &StoreError{Op: "encode", Key: ResumeKey, Cause: err}
	}
	return s.write(ResumeKey, data)
}

// Save writes both keys.
func (s *FileStore) Save(messages []types.Message, resume types.ResumeData) error {
	if err := s.SaveMessages(messages); err != nil {
		return err
	}
	return s.SaveResume(resume)
}

// Clear removes both keys.
func (s *FileStore) Clear() error {
	for _, key := range []string{MessagesKey, ResumeKey} {
		if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return &StoreError{Op: "clear", Key: key, Cause: err}
		}
	}
	return nil
}
