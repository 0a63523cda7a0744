package identity

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Credentials is the pair of durable session entries: the opaque bearer
// token and the serialized identity. They are always written and cleared
// together.
type Credentials struct {
	Token string `json:"auth_token,omitempty"`
	User  *User  `json:"user_data,omitempty"`
}

func (c Credentials) empty() bool {
	return c.Token == "" || c.User == nil
}

// Storage persists credentials between runs. Implementations must make Save
// atomic so a crash never leaves a token without its identity.
type Storage interface {
	Load() (Credentials, error)
	Save(Credentials) error
	Clear() error
}

// FileStorage keeps the credential pair in a single JSON document on disk,
// written via temp file and rename.
type FileStorage struct {
	path string
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (s *FileStorage) Load() (Credentials, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Credentials{}, nil
	}
	if err != nil {
		return Credentials{}, err
	}
	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return Credentials{}, fmt.Errorf("corrupt session file %s: %w", s.path, err)
	}
	return creds, nil
}

func (s *FileStorage) Save(creds Credentials) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".session-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

func (s *FileStorage) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// MemStorage is the in-memory Storage used by tests and throwaway sessions.
type MemStorage struct {
	mu    sync.Mutex
	creds Credentials
}

func NewMemStorage() *MemStorage {
	return &MemStorage{}
}

func (s *MemStorage) Load() (Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creds, nil
}

func (s *MemStorage) Save(creds Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = creds
	return nil
}

func (s *MemStorage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = Credentials{}
	return nil
}
