package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/planboard/internal/viewsync"
)

// Config holds all runtime configuration for planboard.
type Config struct {
	Addr           string
	DBPath         string
	Seed           bool
	ProjectID      string
	APIURL         string
	LogLevel       slog.Level
	LogFormat      string
	GridMaxWidth   int
	HTTPTimeoutMs  int
	TerminalDayW   int
	DeadlineWindow int
}

// DefaultConfig returns a Config with sensible defaults. The store is an
// in-memory SQLite database seeded with demo data.
func DefaultConfig() Config {
	return Config{
		Addr:           ":8080",
		DBPath:         ":memory:",
		Seed:           true,
		ProjectID:      "1",
		APIURL:         "",
		LogLevel:       slog.LevelInfo,
		LogFormat:      "text",
		GridMaxWidth:   viewsync.DefaultMaxGridWidth,
		HTTPTimeoutMs:  5000,
		TerminalDayW:   3,
		DeadlineWindow: 14,
	}
}

// Load reads configuration from environment variables,
// falling back to defaults for any unset or invalid values.
func Load() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("PLANBOARD_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("PLANBOARD_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("PLANBOARD_SEED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Seed = b
		}
	}
	if v := os.Getenv("PLANBOARD_PROJECT"); v != "" {
		cfg.ProjectID = v
	}
	if v := os.Getenv("PLANBOARD_API_URL"); v != "" {
		cfg.APIURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("PLANBOARD_LOG_LEVEL"); v != "" {
		if lvl, ok := ParseLevel(v); ok {
			cfg.LogLevel = lvl
		}
	}
	if v := os.Getenv("PLANBOARD_LOG_FORMAT"); v == "json" || v == "text" {
		cfg.LogFormat = v
	}
	applyPositiveInt(&cfg.GridMaxWidth, "PLANBOARD_GRID_MAX")
	applyPositiveInt(&cfg.HTTPTimeoutMs, "PLANBOARD_HTTP_TIMEOUT_MS")
	applyPositiveInt(&cfg.TerminalDayW, "PLANBOARD_DAY_WIDTH")
	applyPositiveInt(&cfg.DeadlineWindow, "PLANBOARD_DEADLINE_DAYS")

	return cfg
}

// HTTPTimeout returns the client timeout for remote gateway calls.
func (c Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutMs) * time.Millisecond
}

// Remote reports whether commands should talk to a running server instead of
// an in-process store.
func (c Config) Remote() bool {
	return c.APIURL != ""
}

// ParseLevel maps debug|info|warn|error to a slog level.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

func applyPositiveInt(dst *int, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	*dst = n
}
