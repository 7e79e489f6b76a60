//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"

	"fetchkit/internal/ytdlp"
)

// StubExtractor stands in for the yt-dlp pipeline. Each Extract call
// materializes the configured file in a fresh staging directory, mirroring
// what a real extraction leaves behind.
type StubExtractor struct {
	mu       sync.Mutex
	nextName string
	nextSize int
	nextErr  error
	calls    int
}

// ProduceFile makes subsequent Extract calls return a file with the given
// name and size.
func (s *StubExtractor) ProduceFile(name string, size int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextName = name
	s.nextSize = size
	s.nextErr = nil
}

// FailWith makes subsequent Extract calls return err.
func (s *StubExtractor) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextErr = err
}

// Calls returns the number of Extract invocations so far.
func (s *StubExtractor) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// Reset clears the call counter and configured behavior.
func (s *StubExtractor) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = 0
	s.nextName = ""
	s.nextSize = 0
	s.nextErr = nil
}

// Extract implements the downloader's extractor contract.
func (s *StubExtractor) Extract(_ context.Context, _ string) (*ytdlp.Result, error) {
	s.mu.Lock()
	name, size, err := s.nextName, s.nextSize, s.nextErr
	s.calls++
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}

	staging, mkErr := os.MkdirTemp("", "e2e-extract-*")
	if mkErr != nil {
		return nil, mkErr
	}
	path := filepath.Join(staging, name)
	if wrErr := os.WriteFile(path, bytes.Repeat([]byte("v"), size), 0o644); wrErr != nil {
		return nil, wrErr
	}
	return &ytdlp.Result{Path: path, StagingDir: staging}, nil
}
