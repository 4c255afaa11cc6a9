package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileBackend keeps the record blob in a single JSON file. Saves write to a
// temp file in the same directory and rename over the target, so readers see
// either the old or the new blob, never a torn write.
type FileBackend struct {
	Path string
}

func NewFileBackend(path string) *FileBackend { return &FileBackend{Path: path} }

func (b *FileBackend) Load() ([]byte, error) {
	data, err := os.ReadFile(b.Path)
	if os.IsNotExist(err) {
		return nil, ErrNoRecord
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (b *FileBackend) Save(data []byte) error {
	dir := filepath.Dir(b.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(b.Path)+".tmp-*")
	if err != nil {
		return err
	}
	// CreateTemp opens 0600; the data file keeps regular file permissions
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), b.Path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", b.Path, err)
	}
	return nil
}

func (b *FileBackend) Reset() error {
	if err := os.Remove(b.Path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
