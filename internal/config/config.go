package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds process-wide settings for the CLI and the HTTP server.
type Config struct {
	DBPath            string
	ViewsPath         string // optional YAML view registry
	SessionID         string
	SnapshotRetention int
	HTTPAddr          string
	ShutdownTimeout   time.Duration
	LogUseCases       bool
}

// DefaultConfig returns a Config with sensible defaults. DBPath is left
// empty and resolved against the home directory by Load.
func DefaultConfig() Config {
	return Config{
		SessionID:         "default",
		SnapshotRetention: 10,
		HTTPAddr:          ":8080",
		ShutdownTimeout:   5 * time.Second,
	}
}

// Load reads configuration from environment variables, falling back to
// defaults for any unset or unparseable values.
func Load() (Config, error) {
	return load(os.Getenv, os.UserHomeDir)
}

func load(getenv func(string) string, home func() (string, error)) (Config, error) {
	cfg := DefaultConfig()

	if v := getenv("CYCLEBOARD_DB"); v != "" {
		cfg.DBPath = v
	} else {
		dir, err := home()
		if err != nil {
			return Config{}, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(dir, ".cycleboard", "cycleboard.db")
	}
	if v := getenv("CYCLEBOARD_VIEWS"); v != "" {
		cfg.ViewsPath = v
	}
	if v := getenv("CYCLEBOARD_SESSION"); v != "" {
		cfg.SessionID = v
	}
	if v := getenv("CYCLEBOARD_SNAPSHOT_RETENTION"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SnapshotRetention = n
		}
	}
	if v := getenv("CYCLEBOARD_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := getenv("CYCLEBOARD_SHUTDOWN_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ShutdownTimeout = time.Duration(n) * time.Millisecond
		}
	}
	if v := getenv("CYCLEBOARD_LOG_USE_CASES"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}

	return cfg, nil
}
