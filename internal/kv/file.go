package kv

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nibzard/pocketdo/internal/utils"
)

// FileStore keeps each key in its own file under Dir.
// Writes go to a temporary file that is renamed over the target, so readers
// observe either the old or the new value, never a partial one.
type FileStore struct {
	Dir string
}

// NewFileStore returns a FileStore rooted at dir.
// The directory is created on first write.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("kv dir is empty")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve kv dir: %w", err)
	}
	return &FileStore{Dir: abs}, nil
}

// Path returns the file that holds key.
func (s *FileStore) Path(key string) string {
	name := fmt.Sprintf("%s-%s.json", utils.Slugify(key, "key"), utils.ShortHash(key))
	return filepath.Join(s.Dir, name)
}

// Get reads the value for key.
func (s *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read kv file: %w", err)
	}
	return string(data), true, nil
}

// Set atomically replaces the value for key.
func (s *FileStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("create kv dir: %w", err)
	}

	target := s.Path(key)
	tmp, err := os.CreateTemp(s.Dir, filepath.Base(target)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		return fmt.Errorf("replace kv file: %w", err)
	}
	return nil
}

// Close is a no-op for the file backend.
func (s *FileStore) Close() error {
	return nil
}
