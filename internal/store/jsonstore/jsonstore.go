package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/idilsaglam/tada/internal/store"
)

// JSON-backed key-value file. One object of string values, human-readable,
// rewritten whole on every Set. No locking; single-user local tool.

const DataFileName = "storage.json"

// Store is a store.KV kept in <dir>/storage.json.
type Store struct {
	path string
}

// Open returns a store rooted at dir, creating dir if needed.
func Open(dir string) (*Store, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getwd: %w", err)
		}
		dir = wd
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}
	return &Store{path: filepath.Join(dir, DataFileName)}, nil
}

// Path returns the backing file.
func (s *Store) Path() string { return s.path }

func (s *Store) Get(key string) (string, bool, error) {
	m, err := s.read()
	if err != nil {
		return "", false, err
	}
	v, ok := m[key]
	return v, ok, nil
}

// Set rewrites the file with key updated. An unreadable file is replaced.
func (s *Store) Set(key, value string) error {
	m, err := s.read()
	if err != nil {
		if !errors.Is(err, store.ErrCorrupt) {
			return err
		}
		m = map[string]string{}
	}
	m[key] = value
	return s.write(m)
}

func (s *Store) read() (map[string]string, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	m := map[string]string{}
	if len(b) == 0 {
		return m, nil
	}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", store.ErrCorrupt, s.path, err)
	}
	return m, nil
}

// write goes through a temp file + rename so readers never see a partial file.
func (s *Store) write(m map[string]string) error {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".storage-*.json")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
