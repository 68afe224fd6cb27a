package storage

import (
	"errors"
	"os"
	"path/filepath"
)

// FileBackend caches blobs as plain files under a root directory.
// Keys are slash-separated relative paths; callers are responsible for
// sanitizing them before they get here.
type FileBackend struct {
	rootDir string
}

func NewFileBackend(rootDir string) *FileBackend {
	return &FileBackend{rootDir: rootDir}
}

func (backend *FileBackend) path(key string) string {
	return filepath.Join(backend.rootDir, filepath.FromSlash(key))
}

func (backend *FileBackend) Get(key string) ([]byte, error) {
	buf, err := os.ReadFile(backend.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrKeyNotFound
	}
	return buf, err
}

func (backend *FileBackend) Put(key string, buf []byte) error {
	path := backend.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0644)
}

func (backend *FileBackend) Delete(key string) error {
	err := os.Remove(backend.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (backend *FileBackend) Close() error {
	return nil
}
