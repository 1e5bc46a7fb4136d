// Package credentials abstracts where the rider auth token lives. The core
// never touches global state directly; it is handed a Store.
package credentials

import (
	"errors"
	"os"
	"strings"
	"sync"
)

// ErrNoToken is returned by Get when no token is stored.
var ErrNoToken = errors.New("no stored token")

// Store holds the rider's bearer token between requests.
type Store interface {
	Get() (string, error)
	Set(token string) error
	Clear() error
}

// MemoryStore keeps the token in memory for the lifetime of the process.
type MemoryStore struct {
	mu    sync.Mutex
	token string
	set   bool
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Get returns the stored token or ErrNoToken.
func (s *MemoryStore) Get() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return "", ErrNoToken
	}
	return s.token, nil
}

// Set stores the token.
func (s *MemoryStore) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.set = true
	return nil
}

// Clear drops the stored token.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.set = false
	return nil
}

// FileStore persists the token in a single file. The token file is the only
// state this client keeps across runs.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Get reads the stored token or returns ErrNoToken when the file is absent
// or empty.
func (s *FileStore) Get() (string, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", err
	}
	token := strings.TrimSpace(string(b))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

// Set writes the token, readable by the owner only.
func (s *FileStore) Set(token string) error {
	return os.WriteFile(s.path, []byte(token+"\n"), 0o600)
}

// Clear removes the token file. A missing file is not an error.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*FileStore)(nil)
)
