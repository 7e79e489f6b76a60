// Package cache provides an optional read-through cache for creature lookups.
// Supports a local file backend and Redis for multi-instance deployments.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Type constants for cache backends
const (
	TypeNone  = "none"
	TypeLocal = "local"
	TypeRedis = "redis"
)

// DefaultTTL is the default time-to-live for cached lookups (24 hours).
// This ensures stale data eventually expires if the upstream changes.
const DefaultTTL = 24 * time.Hour

// Config holds cache configuration
type Config struct {
	// Type selects the backend: "none" (default), "local", or "redis"
	Type string

	// Dir is the entry directory for the local backend (default: data/cache)
	Dir string

	// RedisURL is the connection URL for the redis backend
	// (e.g., "redis://localhost:6379" or "redis://:password@host:6379/0")
	RedisURL string

	// TTL bounds entry freshness; zero uses DefaultTTL
	TTL time.Duration
}

// Cache stores JSON-encoded lookup results by key.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value stored under key.
	// Returns nil, nil on a miss, including expired entries.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key.
	Set(ctx context.Context, key string, value []byte) error

	// Close releases any resources held by the cache.
	Close() error
}

// New builds a cache from cfg. Type "none" returns nil, nil; callers treat a
// nil cache as disabled and always hit the upstream.
func New(cfg Config) (Cache, error) {
	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	switch cfg.Type {
	case TypeNone, "":
		return nil, nil
	case TypeLocal:
		dir := cfg.Dir
		if dir == "" {
			dir = "data/cache"
		}
		return NewLocalCache(dir, ttl), nil
	case TypeRedis:
		return NewRedisCache(RedisConfig{URL: cfg.RedisURL, TTL: ttl})
	default:
		return nil, fmt.Errorf("unknown cache type: %s (valid: none, local, redis)", cfg.Type)
	}
}
