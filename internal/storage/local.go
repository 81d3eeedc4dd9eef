package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// LocalStore keeps pictures as files under Root. Locations are file paths.
type LocalStore struct {
	Root string
}

func NewLocalStore(root string) *LocalStore {
	return &LocalStore{Root: root}
}

func (s *LocalStore) ensureRoot() error {
	return os.MkdirAll(s.Root, 0o755)
}

// Put writes to a temp file in Root and renames it over the target, so a
// reader never sees a half-written picture.
func (s *LocalStore) Put(_ context.Context, key string, data []byte) (string, error) {
	if err := s.ensureRoot(); err != nil {
		return "", fmt.Errorf("create picture root: %w", err)
	}
	dst := filepath.Join(s.Root, filepath.Base(key))

	tmp, err := os.CreateTemp(s.Root, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write picture: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close picture: %w", err)
	}
	if err := os.Rename(tmpName, dst); err != nil {
		return "", fmt.Errorf("move picture into place: %w", err)
	}
	return dst, nil
}

func (s *LocalStore) Open(_ context.Context, location string) (io.ReadCloser, error) {
	f, err := os.Open(location)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (s *LocalStore) Remove(_ context.Context, location string) error {
	if err := s.ensureRoot(); err != nil {
		return err
	}
	err := os.Remove(location)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
