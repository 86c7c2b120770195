// Package client is the Go SDK for the campuseats API: a typed HTTP
// client plus the state a food-ordering app keeps on the device, the
// cart, the signed-in session and the polling loops that keep order
// views fresh.
package client

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// ErrNotExist is returned by Store.Load when nothing was saved under
// the name yet.
var ErrNotExist = errors.New("client: no stored value")

// Store is the persistence the SDK state hangs off. Implementations
// must make Save durable before returning; cart and session writes are
// synchronous on purpose so a crash never loses a mutation.
type Store interface {
	Load(name string) ([]byte, error)
	Save(name string, data []byte) error
	Delete(name string) error
}

// FileStore keeps each value in its own file under dir.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

func (s *FileStore) Load(name string) ([]byte, error) {
	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotExist
	}
	return data, err
}

func (s *FileStore) Save(name string, data []byte) error {
	return os.WriteFile(s.path(name), data, 0o600)
}

func (s *FileStore) Delete(name string) error {
	err := os.Remove(s.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// MemoryStore is an in-memory Store for tests.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

func (s *MemoryStore) Load(name string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.values[name]
	if !ok {
		return nil, ErrNotExist
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *MemoryStore) Save(name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	s.values[name] = stored
	return nil
}

func (s *MemoryStore) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, name)
	return nil
}
