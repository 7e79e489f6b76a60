// Package main is the entry point for the pokedex lookup server.
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
	"fetchkit/internal/cache"
	"fetchkit/internal/httpclient"
	"fetchkit/internal/logging"
	"fetchkit/internal/pokeapi"
	"fetchkit/internal/server"
	"fetchkit/internal/version"
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

	slog.Info("starting pokedex",
		"version", version.Version,
		"commit", version.Commit,
		"build_date", version.Date,
	)

	// Initialize the lookup cache (nil when disabled)
	lookupCache, err := cache.New(cache.Config{
		Type:     cfg.Cache.Type,
		Dir:      cfg.Cache.Dir,
		RedisURL: cfg.Cache.RedisURL,
		TTL:      cfg.Cache.TTL.Std(),
	})
	if err != nil {
		slog.Error("failed to initialize cache", "error", err)
		os.Exit(1)
	}
	if lookupCache != nil {
		defer lookupCache.Close()
		slog.Info("lookup cache enabled", "type", cfg.Cache.Type)
	} else {
		slog.Info("lookup cache disabled")
	}

	client := pokeapi.New(
		cfg.Lookup.BaseURL,
		httpclient.NewWithTimeout(cfg.Lookup.Timeout.Std()),
		lookupCache,
	)

	// Create and start server
	srv := server.New(server.NewPokedex(client), &server.Config{
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
