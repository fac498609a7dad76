package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/moby/sys/atomicwriter"
)

// FileStore keeps one <resource>.json file per resource in a directory.
// Writes go to a temporary file that is renamed over the target.
type FileStore struct {
	dir    string
	closed atomic.Bool
}

// NewFileStore returns a FileStore rooted at dir. The directory is created on first write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Path returns the file backing resource.
func (s *FileStore) Path(resource string) string {
	return filepath.Join(s.dir, resource+".json")
}

func (s *FileStore) Read(ctx context.Context, resource string) ([]byte, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path(resource))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return data, err
}

func (s *FileStore) Write(ctx context.Context, resource string, doc []byte) error {
	if s.closed.Load() {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	return atomicwriter.WriteFile(s.Path(resource), doc, 0o644)
}

func (s *FileStore) Close() error {
	s.closed.Store(true)
	return nil
}
