// Package storage provides the artifact store downloads are saved into and
// served back from. Artifacts can live on local disk or in an S3 bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Type constants for store backends
const (
	TypeLocal = "local"
	TypeS3    = "s3"
)

// ErrNotFound is returned for missing artifacts and for names that are not a
// plain file name (anything with a path separator or a dot-dot segment).
var ErrNotFound = errors.New("artifact not found")

// Config holds artifact store configuration
type Config struct {
	// Type specifies the store backend: "local" or "s3"
	Type string

	// Local configuration
	Local LocalConfig

	// S3 configuration
	S3 S3Config
}

// LocalConfig holds local-disk configuration
type LocalConfig struct {
	// Dir is the artifact directory (default: downloads), created on demand
	Dir string
}

// S3Config holds S3-specific configuration
type S3Config struct {
	// Bucket is the bucket artifacts are stored in
	Bucket string
	// Region is the AWS region
	Region string
	// Prefix is prepended to every artifact key
	Prefix string
	// Endpoint overrides the AWS endpoint for S3-compatible services (MinIO, LocalStack)
	Endpoint string
	// AccessKeyID and SecretAccessKey select static credentials; when empty
	// the default AWS credential chain is used
	AccessKeyID     string
	SecretAccessKey string
}

// Store is the artifact store. Implementations must be safe for concurrent use.
type Store interface {
	// Save streams r into the store under name and returns the bytes written.
	// An existing artifact with the same name is overwritten. Short or partial
	// artifacts are NOT removed; callers decide what to tell the user.
	Save(ctx context.Context, name string, r io.Reader) (int64, error)

	// Import moves a finished file at srcPath into the store under name.
	Import(ctx context.Context, name string, srcPath string) error

	// Open returns the artifact contents and size for streaming to a client.
	Open(ctx context.Context, name string) (io.ReadCloser, int64, error)

	// Size returns the stored size of the named artifact in bytes.
	Size(ctx context.Context, name string) (int64, error)

	// Type returns the backend type ("local" or "s3")
	Type() string

	// Close releases resources held by the store.
	Close() error
}

// New creates a Store based on the configuration.
func New(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Type {
	case TypeLocal, "":
		return NewLocal(cfg.Local)
	case TypeS3:
		return NewS3(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown storage type: %s (valid: local, s3)", cfg.Type)
	}
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		Type: TypeLocal,
		Local: LocalConfig{
			Dir: "downloads",
		},
	}
}

// validName reports whether name is a plain file name that cannot escape the
// store. Mirrors the guard web frameworks apply before serving user-named files.
func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) {
		return false
	}
	return name == filepath.Base(name)
}
