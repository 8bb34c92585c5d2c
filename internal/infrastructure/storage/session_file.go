// Package storage persists the session in durable client-local storage: a
// JSON file with two fixed keys, authToken and user, always written and
// cleared together.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/gestionusuarios/admin-console/internal/core/domain"
)

// record is the on-disk shape. The two keys mirror what the original console
// kept in browser storage.
type record struct {
	AuthToken string          `json:"authToken"`
	User      json.RawMessage `json:"user"`
}

// FileStore implements ports.SessionStore on a single JSON file. Writes are
// atomic single-file replacements, so concurrent readers see either the old
// session or the new one, never a blend.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store at path. The parent directory is created on
// first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Save persists the token and user record together.
func (s *FileStore) Save(sess domain.Session) error {
	user, err := json.Marshal(sess.User)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(record{AuthToken: sess.Token, User: user})
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Clear removes both keys unconditionally. A missing file is already clear.
func (s *FileStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = os.Remove(s.path)
}

// Token returns the persisted token, false when no session exists or the
// file is unreadable.
func (s *FileStore) Token() (string, bool) {
	rec, ok := s.read()
	if !ok || rec.AuthToken == "" {
		return "", false
	}
	return rec.AuthToken, true
}

// CurrentUser returns the persisted user record, false when absent or
// malformed.
func (s *FileStore) CurrentUser() (*domain.Usuario, bool) {
	rec, ok := s.read()
	if !ok || len(rec.User) == 0 {
		return nil, false
	}
	var u domain.Usuario
	if err := json.Unmarshal(rec.User, &u); err != nil {
		return nil, false
	}
	return &u, true
}

func (s *FileStore) read() (record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return record{}, false
	}
	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return record{}, false
	}
	return rec, true
}
