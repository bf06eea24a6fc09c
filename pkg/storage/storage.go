// Package storage is a directory-backed key-value store: each key is one file.
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
)

const (
	DefaultDir = "sumz-store"
	fileExt    = ".json"
)

var validKey = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

type Storage struct {
	dir string
}

// New creates a Storage rooted at dir, creating the directory if needed.
func New(dir string) (*Storage, error) {
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &Storage{dir: dir}, nil
}

func (s *Storage) pathFor(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.dir, key+fileExt), nil
}

// SaveFile writes content to name inside the storage directory. The write goes
// to a temp file first and is renamed into place, so readers never see a
// partial value.
func (s *Storage) SaveFile(name string, content []byte) error {
	tmp, err := os.CreateTemp(s.dir, "."+filepath.Base(name)+".tmp-*")
	if err != nil {
		return fmt.Errorf("error creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("error writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("error saving file: %w", err)
	}
	return nil
}

// ReadFile reads name from the storage directory.
func (s *Storage) ReadFile(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	return data, nil
}

// GetItem returns the value stored under key. ok is false when the key is absent.
func (s *Storage) GetItem(key string) (string, bool, error) {
	path, err := s.pathFor(key)
	if err != nil {
		return "", false, err
	}
	data, err := s.ReadFile(filepath.Base(path))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(data), true, nil
}

// SetItem stores value under key, replacing any previous value.
func (s *Storage) SetItem(key, value string) error {
	path, err := s.pathFor(key)
	if err != nil {
		return err
	}
	return s.SaveFile(filepath.Base(path), []byte(value))
}
