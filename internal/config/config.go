// Package config loads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the settings for the site server and the CLI.
type Config struct {
	Addr         string // e.g. :8080
	APIURL       string // agency API root
	ContactPhone string // WhatsApp number shown on listings
	ImgBBKey     string
	DBPath       string // empty means db.DefaultPath
	DevMode      bool
	LogLevel     slog.Level
	CORSOrigins  []string
	SessionTTL   time.Duration
	ReloadToken  string // bearer token for POST /api/catalog/reload; empty disables it
	Fluent       FluentConfig
}

// FluentConfig configures optional log shipping to Fluent Bit.
type FluentConfig struct {
	Enabled   bool
	Host      string
	Port      int
	TagPrefix string
	Level     slog.Level
}

// Load reads configuration from the environment. Variables in envFile (or
// .env when none is given) are applied first without overriding variables
// already set. A missing default .env is not an error.
func Load(envFile ...string) (Config, error) {
	path := ".env"
	explicit := len(envFile) > 0 && envFile[0] != ""
	if explicit {
		path = envFile[0]
	}
	if err := godotenv.Load(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", path, err)
		}
	}

	cfg := Config{
		Addr:         envOrDefault("REALTY_ADDR", ":8080"),
		APIURL:       envOrDefault("REALTY_API_URL", "http://localhost:8000"),
		ContactPhone: os.Getenv("REALTY_CONTACT_PHONE"),
		ImgBBKey:     os.Getenv("IMGBB_API_KEY"),
		DBPath:       os.Getenv("REALTY_DB"),
		DevMode:      envBool("REALTY_DEV_MODE", false),
		LogLevel:     envLevel("REALTY_LOG_LEVEL", slog.LevelInfo),
		CORSOrigins:  envList("REALTY_CORS_ORIGINS", []string{"*"}),
		SessionTTL:   envDuration("REALTY_SESSION_TTL", 30*time.Minute),
		ReloadToken:  os.Getenv("REALTY_RELOAD_TOKEN"),
	}

	cfg.Fluent.Enabled = envBool("FLUENTBIT_ENABLED", false)
	if cfg.Fluent.Enabled {
		cfg.Fluent.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.Fluent.Host == "" {
			slog.Warn("FLUENTBIT_ENABLED is set but FLUENTBIT_HOST is empty, disabling log shipping")
			cfg.Fluent.Enabled = false
		}
		cfg.Fluent.Port = envInt("FLUENTBIT_PORT", 24224)
		cfg.Fluent.TagPrefix = envOrDefault("FLUENTBIT_TAG_PREFIX", "realty")
		cfg.Fluent.Level = envLevel("FLUENTBIT_LOG_LEVEL", slog.LevelInfo)
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid boolean in environment, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer in environment, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration in environment, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}

func envLevel(key string, fallback slog.Level) slog.Level {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(v)); err != nil {
		slog.Warn("invalid log level in environment, using default", "key", key, "value", v)
		return fallback
	}
	return level
}

func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
