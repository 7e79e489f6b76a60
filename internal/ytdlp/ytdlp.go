// Package ytdlp shells out to the yt-dlp binary for platform video
// extraction. Every extraction runs in its own staging directory; the caller
// imports the produced file into the artifact store and removes the staging
// directory afterwards.
package ytdlp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// DefaultTimeout bounds a single extraction run.
const DefaultTimeout = 15 * time.Minute

// ErrUnavailable is returned when the yt-dlp binary cannot be found.
var ErrUnavailable = errors.New("yt-dlp no está disponible en el entorno.")

// Config holds the extractor settings.
type Config struct {
	// BinPath is the yt-dlp executable, looked up on PATH when relative.
	BinPath string
	// FFmpegPath points at a portable ffmpeg used when none is on PATH.
	FFmpegPath string
	// Timeout bounds one extraction run.
	Timeout time.Duration
}

// Result is one finished extraction. Path sits inside StagingDir; the caller
// owns StagingDir and removes it once the file has been imported.
type Result struct {
	Path       string
	StagingDir string
}

// runner abstracts the subprocess so tests can fake yt-dlp.
type runner interface {
	run(ctx context.Context, bin string, args []string) (stdout string, err error)
}

type execRunner struct{}

func (execRunner) run(ctx context.Context, bin string, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, bin, args...)
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%w: %s", err, msg)
		}
		return "", err
	}
	return stdout.String(), nil
}

// Extractor downloads platform media through the yt-dlp binary.
type Extractor struct {
	cfg Config
	run runner
}

// New builds an Extractor, filling in defaults for unset fields.
func New(cfg Config) *Extractor {
	if cfg.BinPath == "" {
		cfg.BinPath = "yt-dlp"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Extractor{cfg: cfg, run: execRunner{}}
}

// Available reports whether the yt-dlp binary can be resolved.
func (e *Extractor) Available() bool {
	_, err := exec.LookPath(e.cfg.BinPath)
	return err == nil
}

// Extract runs yt-dlp for rawURL inside a fresh staging directory and returns
// the produced file. The ffmpeg probe runs once per call, so dropping a
// portable ffmpeg next to the server takes effect without a restart.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (*Result, error) {
	if _, err := exec.LookPath(e.cfg.BinPath); err != nil {
		return nil, ErrUnavailable
	}

	staging, err := os.MkdirTemp("", "fetchkit-ytdlp-*")
	if err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}

	ffmpegPath, hasFFmpeg := ProbeFFmpeg(e.cfg.FFmpegPath)

	ctx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	stdout, err := e.run.run(ctx, e.cfg.BinPath, buildArgs(rawURL, staging, ffmpegPath))
	if err != nil {
		os.RemoveAll(staging)
		return nil, err
	}

	reported := lastNonEmptyLine(stdout)
	if reported == "" {
		// Older yt-dlp builds do not support --print after_move; fall back to
		// whatever landed in the staging directory.
		reported, err = newestFile(staging)
		if err != nil {
			os.RemoveAll(staging)
			return nil, err
		}
	}

	return &Result{Path: producedPath(reported, hasFFmpeg), StagingDir: staging}, nil
}

// buildArgs assembles the yt-dlp invocation for one extraction. With ffmpeg
// available the best video and audio streams are merged into an mp4
// container; without it only already-muxed formats are requested.
func buildArgs(rawURL, stagingDir, ffmpegPath string) []string {
	args := []string{
		"--no-playlist",
		"--no-warnings",
		"--no-progress",
		"--quiet",
		"--print", "after_move:filepath",
		"--no-simulate",
		"-o", filepath.Join(stagingDir, "%(title)s.%(ext)s"),
	}
	if ffmpegPath != "" {
		args = append(args,
			"--ffmpeg-location", ffmpegPath,
			"-f", "bestvideo+bestaudio/best",
			"--merge-output-format", "mp4",
			"--remux-video", "mp4",
		)
	} else {
		args = append(args, "-f", "best[ext=mp4]/best")
	}
	return append(args, rawURL)
}

// producedPath prefers the mp4 sibling of the reported file when a merge was
// requested, since remuxing can rewrite the container after the path is
// printed. The reported path is returned unchanged when no sibling exists.
func producedPath(reported string, merged bool) string {
	if !merged {
		return reported
	}
	ext := filepath.Ext(reported)
	if strings.EqualFold(ext, ".mp4") {
		return reported
	}
	candidate := strings.TrimSuffix(reported, ext) + ".mp4"
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return reported
}

func lastNonEmptyLine(s string) string {
	lines := strings.Split(s, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}

// newestFile returns the most recently modified regular file in dir. Merges
// can leave intermediate fragments behind, so the newest file is the final
// product.
func newestFile(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	var (
		newest  string
		modTime time.Time
	)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(modTime) {
			newest = entry.Name()
			modTime = info.ModTime()
		}
	}
	if newest == "" {
		return "", errors.New("yt-dlp produced no output file")
	}
	return filepath.Join(dir, newest), nil
}
