// Package main is the entry point for the mediagrab download server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fetchkit/config"
	"fetchkit/internal/httpclient"
	"fetchkit/internal/logging"
	"fetchkit/internal/media"
	"fetchkit/internal/server"
	"fetchkit/internal/storage"
	"fetchkit/internal/version"
	"fetchkit/internal/ytdlp"
)

func main() {
	versionFlag := flag.Bool("version", false, "Print version information")
	flag.Parse()

	if *versionFlag {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup structured logging
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	slog.Info("starting mediagrab",
		"version", version.Version,
		"commit", version.Commit,
		"build_date", version.Date,
	)

	// Initialize the artifact store
	store, err := storage.New(context.Background(), storage.Config{
		Type: cfg.Storage.Type,
		Local: storage.LocalConfig{
			Dir: cfg.Storage.Dir,
		},
		S3: storage.S3Config{
			Bucket:          cfg.Storage.S3Bucket,
			Region:          cfg.Storage.S3Region,
			Prefix:          cfg.Storage.S3Prefix,
			Endpoint:        cfg.Storage.S3Endpoint,
			AccessKeyID:     cfg.Storage.S3AccessKeyID,
			SecretAccessKey: cfg.Storage.S3SecretAccessKey,
		},
	})
	if err != nil {
		slog.Error("failed to initialize artifact store", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("artifact store ready", "type", store.Type())

	// Build the download pipeline
	extractor := ytdlp.New(ytdlp.Config{
		BinPath:    cfg.Download.YtdlpPath,
		FFmpegPath: cfg.Download.FFmpegPath,
		Timeout:    cfg.Download.ExtractTimeout.Std(),
	})
	if !extractor.Available() {
		slog.Warn("yt-dlp binary not found - platform downloads will fail",
			"bin", cfg.Download.YtdlpPath,
			"recommendation", "install yt-dlp or set FETCHKIT_YTDLP_PATH")
	}

	direct := media.NewDirectFetcher(
		httpclient.NewHTTPClient(nil),
		store,
		cfg.Download.UserAgent,
	)
	downloader := media.NewDownloader(direct, extractor, store, cfg.Download.MinSize)

	// Create and start server
	srv := server.New(server.NewMediagrab(downloader, store), &server.Config{
		MetricsEnabled: cfg.Server.MetricsEnabled,
		BodyLimit:      cfg.Server.BodyLimit,
	})

	// Handle graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		slog.Info("shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	addr := ":" + cfg.Server.Port
	slog.Info("starting server", "address", addr)

	if err := srv.Start(addr); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			slog.Info("server stopped gracefully")
		} else {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}
}
