package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore хранит артефакты на диске. Файл пишется во временное имя и
// переименовывается, чтобы читатели не видели частично записанных файлов.
type LocalStore struct {
	Dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &LocalStore{Dir: dir}, nil
}

func (s *LocalStore) Save(ctx context.Context, key string, r io.Reader) (string, error) {
	if strings.Contains(key, "/") || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid object key %q", key)
	}

	tmp, err := os.CreateTemp(s.Dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write object: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(s.Dir, key)); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to rename temp file: %w", err)
	}

	return key, nil
}

func (s *LocalStore) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.Dir, filepath.Base(ref)))
	if err != nil {
		return nil, fmt.Errorf("failed to open object: %w", err)
	}
	return f, nil
}

func (s *LocalStore) Remove(ctx context.Context, ref string) error {
	return os.Remove(filepath.Join(s.Dir, filepath.Base(ref)))
}
