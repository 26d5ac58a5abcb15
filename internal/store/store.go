// Package store persists JSON values under string keys in a data
// directory. Reads fall back to the caller's default on any failure;
// the in-memory state owned by the caller stays authoritative.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Keys used by the application. Each key maps to <dir>/<key>.json.
const (
	NotesKey    = "notes_app.notes"
	SettingsKey = "notes_app.settings"
)

// Store is a file-per-key JSON store rooted at a directory.
type Store struct {
	dir string
}

// Open binds a store to dir, creating it if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory backing the store.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file a key is stored under.
func (s *Store) Path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get unmarshals the value stored under key into v. If the file is
// missing or holds malformed JSON, v is left untouched so the caller's
// preloaded default survives, and ok is false.
func (s *Store) Get(key string, v interface{}) (ok bool) {
	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false
	}
	return true
}

// Put writes the value for key atomically: marshal, write to a temp
// file in the same directory, rename over the target.
func (s *Store) Put(key string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}

	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmpName, s.Path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
