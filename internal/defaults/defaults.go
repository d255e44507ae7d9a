// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package defaults persists the last-used form values as a JSON file.
package defaults

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/pdiddy/addnotespace/pkg/types"
)

// FileName is the default name of the defaults file.
const FileName = "defaults.json"

// Store reads and writes one defaults file.
type Store struct {
	path string
}

// NewStore returns a Store for the JSON file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns <user config dir>/addnotespace/defaults.json.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config directory: %w", err)
	}
	return filepath.Join(dir, "addnotespace", FileName), nil
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string {
	return s.path
}

// Load reads the defaults file. A missing file yields the zero Defaults.
// Missing keys keep their zero value and unknown keys are ignored.
func (s *Store) Load() (types.Defaults, error) {
	var d types.Defaults
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return d, nil
	}
	if err != nil {
		return d, fmt.Errorf("reading defaults %s: %w", s.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return d, nil
	}
	if err := json.Unmarshal(data, &d); err != nil {
		return d, fmt.Errorf("parsing defaults %s: %w", s.path, err)
	}
	return d, nil
}

// Save writes d with 4-space indentation. The parent directory is created
// if needed. Concurrent writers are serialized with a lock file next to the
// defaults file, and the new content replaces the old one by rename.
func (s *Store) Save(d types.Defaults) error {
	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()
	return s.save(d)
}

// Update loads the current defaults, applies fn and saves the result while
// holding the lock, so concurrent updates to different fields all survive.
func (s *Store) Update(fn func(*types.Defaults)) (types.Defaults, error) {
	unlock, err := s.lock()
	if err != nil {
		return types.Defaults{}, err
	}
	defer unlock()

	d, err := s.Load()
	if err != nil {
		return d, err
	}
	fn(&d)
	return d, s.save(d)
}

func (s *Store) lock() (func(), error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return nil, fmt.Errorf("creating defaults directory: %w", err)
	}
	fl := flock.New(s.path + ".lock")
	if err := fl.Lock(); err != nil {
		return nil, fmt.Errorf("locking defaults: %w", err)
	}
	return func() { fl.Unlock() }, nil
}

// save writes d; the caller holds the lock.
func (s *Store) save(d types.Defaults) error {
	data, err := json.MarshalIndent(d, "", "    ")
	if err != nil {
		return fmt.Errorf("marshaling defaults: %w", err)
	}
	data = append(data, '\n')
	dir := filepath.Dir(s.path)

	tmp, err := os.CreateTemp(dir, ".defaults-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing defaults: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing defaults: %w", err)
	}
	return nil
}
