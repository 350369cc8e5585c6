// Package store persists the whole application document as one JSON
// blob. There are no partial-field updates: every mutation is a full
// load-modify-save cycle, and saves go through a temp file and rename.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pvmelo/focuserp/internal/model"
)

// Store reads and writes one user's document.
type Store struct {
	path string
	mu   sync.Mutex
}

// New returns a store bound to an explicit file path.
func New(path string) *Store {
	return &Store{path: path}
}

// Open returns the store for a user's document under dir, creating dir if
// needed. The user name selects the file; it is not an access control.
func Open(dir, user string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: mkdir %s: %w", dir, err)
	}
	user = strings.TrimSpace(user)
	if user == "" {
		user = "default"
	}
	return New(filepath.Join(dir, user+".json")), nil
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Load reads the document. A missing file yields the initial document;
// documents written by older versions are healed so no map or slice comes
// back nil.
func (s *Store) Load() (model.AppData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewAppData(), nil
		}
		return model.AppData{}, fmt.Errorf("store: read %s: %w", s.path, err)
	}

	var data model.AppData
	if err := json.Unmarshal(raw, &data); err != nil {
		return model.AppData{}, fmt.Errorf("store: decode %s: %w", s.path, err)
	}
	data.Heal()
	return data, nil
}

// Save writes the whole document atomically.
func (s *Store) Save(data model.AppData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("store: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("store: rename: %w", err)
	}
	return nil
}

// Reset overwrites the document with the initial state and returns it.
func (s *Store) Reset() (model.AppData, error) {
	data := model.NewAppData()
	if err := s.Save(data); err != nil {
		return model.AppData{}, err
	}
	return data, nil
}
