// Package credstore persists the single bearer credential across process
// restarts. The token is opaque: it is stored and returned verbatim, never
// inspected.
package credstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store is the durable home of the one active credential. Absence of a
// credential means the client is unauthenticated at boot.
type Store interface {
	Save(token string) error
	// Load returns the stored token and whether one exists.
	Load() (string, bool, error)
	Clear() error
}

// FileStore keeps the credential in a single file, the CLI analogue of
// origin-scoped browser storage.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create credential dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("failed to write credential: %w", err)
	}
	return nil
}

func (s *FileStore) Load() (string, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read credential: %w", err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", false, nil
	}
	return token, true, nil
}

func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove credential: %w", err)
	}
	return nil
}
