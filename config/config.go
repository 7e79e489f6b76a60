// Package config provides configuration management for the application.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that YAML reads from strings like "20s".
// Bare numbers are taken as seconds.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}
	var n int64
	if err := value.Decode(&n); err != nil {
		return err
	}
	*d = Duration(time.Duration(n) * time.Second)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the plain time.Duration value.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config holds the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Lookup   LookupConfig   `yaml:"lookup"`
	Download DownloadConfig `yaml:"download"`
	Storage  StorageConfig  `yaml:"storage"`
	Cache    CacheConfig    `yaml:"cache"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port           string `yaml:"port"`
	MetricsEnabled bool   `yaml:"metrics_enabled"`
	BodyLimit      string `yaml:"body_limit"`
}

// LookupConfig holds PokeAPI lookup configuration
type LookupConfig struct {
	BaseURL string   `yaml:"base_url"`
	Timeout Duration `yaml:"timeout"`
}

// DownloadConfig holds the media download pipeline configuration
type DownloadConfig struct {
	// MinSize is the smallest artifact accepted as a real video, in bytes
	MinSize   int64  `yaml:"min_size"`
	UserAgent string `yaml:"user_agent"`
	// YtdlpPath is the yt-dlp executable, looked up on PATH when relative
	YtdlpPath string `yaml:"ytdlp_path"`
	// FFmpegPath points at a portable ffmpeg used when none is on PATH
	FFmpegPath     string   `yaml:"ffmpeg_path"`
	ExtractTimeout Duration `yaml:"extract_timeout"`
}

// StorageConfig holds artifact store configuration
type StorageConfig struct {
	// Type selects the backend: "local" or "s3"
	Type string `yaml:"type"`
	Dir  string `yaml:"dir"`

	S3Bucket          string `yaml:"s3_bucket"`
	S3Region          string `yaml:"s3_region"`
	S3Prefix          string `yaml:"s3_prefix"`
	S3Endpoint        string `yaml:"s3_endpoint"`
	S3AccessKeyID     string `yaml:"s3_access_key_id"`
	S3SecretAccessKey string `yaml:"s3_secret_access_key"`
}

// CacheConfig holds lookup cache configuration
type CacheConfig struct {
	// Type selects the backend: "none", "local" or "redis"
	Type     string   `yaml:"type"`
	Dir      string   `yaml:"dir"`
	RedisURL string   `yaml:"redis_url"`
	TTL      Duration `yaml:"ttl"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "8080",
			MetricsEnabled: true,
			BodyLimit:      "1M",
		},
		Lookup: LookupConfig{
			BaseURL: "https://pokeapi.co/api/v2",
			Timeout: Duration(20 * time.Second),
		},
		Download: DownloadConfig{
			MinSize:        100 * 1024,
			UserAgent:      "fetchkit/1.0",
			YtdlpPath:      "yt-dlp",
			ExtractTimeout: Duration(15 * time.Minute),
		},
		Storage: StorageConfig{
			Type: "local",
			Dir:  "downloads",
		},
		Cache: CacheConfig{
			Type: "none",
			Dir:  "data/cache",
			TTL:  Duration(24 * time.Hour),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
	}
}

// Load reads configuration in three layers: built-in defaults, then the
// optional YAML file named by FETCHKIT_CONFIG, then FETCHKIT_* environment
// variables. A .env file in the working directory is loaded first (existing
// variables win) so local runs keep their settings next to the binary.
func Load() (*Config, error) {
	// Load .env file (optional, won't fail if not found)
	_ = godotenv.Load()

	cfg := Default()

	if path := os.Getenv("FETCHKIT_CONFIG"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

// applyEnv overrides cfg from FETCHKIT_* variables. The S3 credential pair
// uses the standard AWS names so the default credential chain stays usable.
func applyEnv(cfg *Config) {
	setString(&cfg.Server.Port, "FETCHKIT_PORT")
	setBool(&cfg.Server.MetricsEnabled, "FETCHKIT_METRICS_ENABLED")
	setString(&cfg.Server.BodyLimit, "FETCHKIT_BODY_LIMIT")

	setString(&cfg.Lookup.BaseURL, "FETCHKIT_POKEAPI_URL")
	setDuration(&cfg.Lookup.Timeout, "FETCHKIT_LOOKUP_TIMEOUT")

	setInt64(&cfg.Download.MinSize, "FETCHKIT_MIN_VIDEO_SIZE")
	setString(&cfg.Download.UserAgent, "FETCHKIT_USER_AGENT")
	setString(&cfg.Download.YtdlpPath, "FETCHKIT_YTDLP_PATH")
	setString(&cfg.Download.FFmpegPath, "FETCHKIT_FFMPEG_PATH")
	setDuration(&cfg.Download.ExtractTimeout, "FETCHKIT_EXTRACT_TIMEOUT")

	setString(&cfg.Storage.Type, "FETCHKIT_STORAGE_TYPE")
	setString(&cfg.Storage.Dir, "FETCHKIT_STORAGE_DIR")
	setString(&cfg.Storage.S3Bucket, "FETCHKIT_S3_BUCKET")
	setString(&cfg.Storage.S3Region, "FETCHKIT_S3_REGION")
	setString(&cfg.Storage.S3Prefix, "FETCHKIT_S3_PREFIX")
	setString(&cfg.Storage.S3Endpoint, "FETCHKIT_S3_ENDPOINT")
	setString(&cfg.Storage.S3AccessKeyID, "AWS_ACCESS_KEY_ID")
	setString(&cfg.Storage.S3SecretAccessKey, "AWS_SECRET_ACCESS_KEY")

	setString(&cfg.Cache.Type, "FETCHKIT_CACHE_TYPE")
	setString(&cfg.Cache.Dir, "FETCHKIT_CACHE_DIR")
	setString(&cfg.Cache.RedisURL, "FETCHKIT_REDIS_URL")
	setDuration(&cfg.Cache.TTL, "FETCHKIT_CACHE_TTL")

	setString(&cfg.Log.Level, "FETCHKIT_LOG_LEVEL")
	setString(&cfg.Log.Format, "FETCHKIT_LOG_FORMAT")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setDuration(dst *Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = Duration(d)
		}
	}
}
