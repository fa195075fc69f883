package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

type FileStore struct {
	dir string
}

// NewFileStore keeps each collection in <dir>/<collection>.json.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

func (s *FileStore) Load(ctx context.Context, collection string, dst any) error {
	data, err := os.ReadFile(s.path(collection))

	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", collection, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, collection, err)
	}

	return nil
}

func (s *FileStore) Save(ctx context.Context, collection string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")

	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", collection, err)
	}

	tmp, err := os.CreateTemp(s.dir, collection+".*.tmp")

	if err != nil {
		return fmt.Errorf("failed to write %s: %w", collection, err)
	}

	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", collection, err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", collection, err)
	}

	if err := os.Rename(tmp.Name(), s.path(collection)); err != nil {
		return fmt.Errorf("failed to replace %s: %w", collection, err)
	}

	return nil
}

func (s *FileStore) Ping(ctx context.Context) error {
	info, err := os.Stat(s.dir)

	if err != nil {
		return err
	}

	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", s.dir)
	}

	return nil
}

func (s *FileStore) Close() error {
	return nil
}
