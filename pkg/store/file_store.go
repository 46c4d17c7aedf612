package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/lintang-b-s/settlement-search/pkg/catalog"
)

var ErrNotFound = errors.New("artifact not found")

// FileStore keeps raw settlement lists and index artifacts as flat files under one root directory.
type FileStore struct {
	root string
}

func NewFileStore(root string) *FileStore {
	return &FileStore{root: root}
}

func (s *FileStore) Root() string {
	return s.root
}

func (s *FileStore) path(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(s.root, rel)
}

// ReadData returns the raw record list of partition p.
func (s *FileStore) ReadData(ctx context.Context, p catalog.Partition) ([]byte, error) {
	return s.read(ctx, p.DataPath)
}

// ReadIndex returns the index artifact of partition p.
func (s *FileStore) ReadIndex(ctx context.Context, p catalog.Partition) ([]byte, error) {
	return s.read(ctx, p.IndexPath)
}

func (s *FileStore) read(ctx context.Context, rel string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := s.path(rel)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// WriteIndex replaces the index artifact of partition p. readers see either the old or
// the new artifact, never a partial one.
func (s *FileStore) WriteIndex(ctx context.Context, p catalog.Partition, blob []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := s.path(p.IndexPath)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create index dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp index file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(blob); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename %s: %w", tmpName, err)
	}
	return nil
}
