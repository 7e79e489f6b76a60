package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStore keeps artifacts as plain files under a single directory.
type LocalStore struct {
	dir string
}

// NewLocal creates a local-disk store, creating the directory if needed.
func NewLocal(cfg LocalConfig) (*LocalStore, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = DefaultConfig().Local.Dir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Type returns the storage type
func (s *LocalStore) Type() string { return TypeLocal }

// Dir returns the artifact directory path.
func (s *LocalStore) Dir() string { return s.dir }

// Save streams r to a file named name inside the artifact directory. On a
// write error the partial file stays in place.
func (s *LocalStore) Save(_ context.Context, name string, r io.Reader) (int64, error) {
	if !validName(name) {
		return 0, ErrNotFound
	}
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return n, err
}

// Import moves a finished file into the artifact directory. Rename is tried
// first; staging directories often sit on another filesystem, so a copy
// fallback handles EXDEV.
func (s *LocalStore) Import(_ context.Context, name string, srcPath string) error {
	if !validName(name) {
		return ErrNotFound
	}
	dest := filepath.Join(s.dir, name)
	if err := os.Rename(srcPath, dest); err == nil {
		return nil
	}
	src, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer src.Close()
	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Remove(srcPath)
}

// Open returns the artifact contents and size.
func (s *LocalStore) Open(_ context.Context, name string) (io.ReadCloser, int64, error) {
	if !validName(name) {
		return nil, 0, ErrNotFound
	}
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, err
	}
	return f, info.Size(), nil
}

// Size returns the stored size of the named artifact.
func (s *LocalStore) Size(_ context.Context, name string) (int64, error) {
	if !validName(name) {
		return 0, ErrNotFound
	}
	info, err := os.Stat(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return info.Size(), nil
}

// Close implements Store. Local stores hold no resources.
func (s *LocalStore) Close() error { return nil }
