package media

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"fetchkit/internal/core"
	"fetchkit/internal/storage"
	"fetchkit/internal/ytdlp"
)

// MinVideoSize is the smallest stored artifact considered a real video.
const MinVideoSize int64 = 100 * 1024

const msgTooSmall = "Descarga completada pero el archivo parece inválido o demasiado pequeño."

// Extractor is the slice of the yt-dlp wrapper the downloader needs.
type Extractor interface {
	Extract(ctx context.Context, rawURL string) (*ytdlp.Result, error)
}

// Downloader routes a URL to the strategy its host calls for and lands the
// artifact in the store.
type Downloader struct {
	direct    *DirectFetcher
	extractor Extractor
	store     storage.Store
	minSize   int64
}

// NewDownloader wires the two strategies to a shared store. A non-positive
// minSize falls back to MinVideoSize.
func NewDownloader(direct *DirectFetcher, extractor Extractor, store storage.Store, minSize int64) *Downloader {
	if minSize <= 0 {
		minSize = MinVideoSize
	}
	return &Downloader{direct: direct, extractor: extractor, store: store, minSize: minSize}
}

// Download fetches rawURL. Platform URLs go through yt-dlp, everything else
// is treated as a direct file. Artifacts below the minimum size stay in the
// store but are reported as invalid rather than announced as downloads.
func (d *Downloader) Download(ctx context.Context, rawURL string) (*Outcome, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return nil, core.NewEmptyInputError("Ingresa un URL.")
	}

	source := Classify(trimmed)
	slog.Debug("routing download", "source", source.String(), "url", trimmed)

	var (
		name string
		size int64
		err  error
	)
	if source == SourcePlatformMedia {
		name, size, err = d.fromPlatform(ctx, trimmed)
	} else {
		name, size, err = d.direct.Fetch(ctx, trimmed)
	}
	if err == nil && size < d.minSize {
		err = core.NewInvalidDownloadError(msgTooSmall)
	}
	if err != nil {
		downloadsTotal.WithLabelValues(source.String(), outcomeLabel(err)).Inc()
		return nil, err
	}

	downloadsTotal.WithLabelValues(source.String(), "success").Inc()
	downloadBytes.Observe(float64(size))
	slog.Info("download complete", "source", source.String(), "file", name, "bytes", size)
	return &Outcome{Source: source, FileName: name, Size: size}, nil
}

// fromPlatform runs the yt-dlp pipeline: extract into staging, sanitize the
// produced name, then import into the store. A failed rename keeps the
// original name rather than failing the download.
func (d *Downloader) fromPlatform(ctx context.Context, rawURL string) (string, int64, error) {
	res, err := d.extractor.Extract(ctx, rawURL)
	if err != nil {
		return "", 0, core.NewExtractionError(fmt.Sprintf("No se pudo descargar con yt-dlp: %v", err), err)
	}
	defer os.RemoveAll(res.StagingDir)

	path := res.Path
	if _, err := os.Stat(path); err != nil {
		// yt-dlp finished without error but the file is not there.
		return "", 0, core.NewInvalidDownloadError(msgTooSmall)
	}

	name := filepath.Base(path)
	if safe := SafeName(name); safe != name {
		renamed := filepath.Join(filepath.Dir(path), safe)
		if err := os.Rename(path, renamed); err == nil {
			path, name = renamed, safe
		}
	}

	if err := d.store.Import(ctx, name, path); err != nil {
		return "", 0, core.NewFilesystemError(fmt.Sprintf("Error al guardar: %v", err), err)
	}
	size, err := d.store.Size(ctx, name)
	if err != nil {
		return "", 0, core.NewFilesystemError(fmt.Sprintf("Error al guardar: %v", err), err)
	}
	return name, size, nil
}
