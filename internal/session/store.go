// Package session persists the bearer token for the signed-in user.
// At most one session is active per process; it survives restarts via
// a token file and is cleared on logout or server-side invalidation.
package session

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store is a process-wide token holder, injected wherever the token is
// needed rather than accessed as a global. It does not validate token
// contents or track expiry — invalidation is discovered reactively.
type Store struct {
	mu    sync.RWMutex
	path  string // empty: in-memory only
	token string
}

// NewStore creates a store backed by the given token file. If the file
// exists its contents become the current token. An empty path keeps the
// session in memory only (used in tests).
func NewStore(path string) *Store {
	s := &Store{path: path}
	if path != "" {
		if b, err := os.ReadFile(path); err == nil {
			s.token = strings.TrimSpace(string(b))
		}
	}
	return s
}

// Set stores a new token and persists it.
func (s *Store) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token), 0o600)
}

// Get returns the current token, empty when signed out.
func (s *Store) Get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Clear drops the token and removes the token file.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	if s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// IsAuthenticated reports whether a token is present.
func (s *Store) IsAuthenticated() bool {
	return s.Get() != ""
}
