package config

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_InMemoryStore(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ":memory:", cfg.DBPath)
	assert.True(t, cfg.Seed)
	assert.False(t, cfg.Remote())
	assert.Equal(t, 1600, cfg.GridMaxWidth)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PLANBOARD_ADDR", ":9090")
	t.Setenv("PLANBOARD_DB", "/tmp/plan.db")
	t.Setenv("PLANBOARD_SEED", "false")
	t.Setenv("PLANBOARD_API_URL", "http://localhost:8080/")
	t.Setenv("PLANBOARD_LOG_LEVEL", "debug")
	t.Setenv("PLANBOARD_LOG_FORMAT", "json")
	t.Setenv("PLANBOARD_GRID_MAX", "1200")
	t.Setenv("PLANBOARD_HTTP_TIMEOUT_MS", "250")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "/tmp/plan.db", cfg.DBPath)
	assert.False(t, cfg.Seed)
	assert.Equal(t, "http://localhost:8080", cfg.APIURL)
	assert.True(t, cfg.Remote())
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 1200, cfg.GridMaxWidth)
	assert.Equal(t, 250*time.Millisecond, cfg.HTTPTimeout())
}

func TestLoad_InvalidValuesIgnored(t *testing.T) {
	t.Setenv("PLANBOARD_SEED", "maybe")
	t.Setenv("PLANBOARD_GRID_MAX", "-4")
	t.Setenv("PLANBOARD_LOG_LEVEL", "chatty")
	t.Setenv("PLANBOARD_LOG_FORMAT", "xml")

	cfg := Load()

	assert.True(t, cfg.Seed)
	assert.Equal(t, 1600, cfg.GridMaxWidth)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestNewLogger_JSON(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogFormat = "json"
	var buf bytes.Buffer
	NewLogger(cfg, &buf).Info("hello", "k", 1)
	assert.Contains(t, buf.String(), `"msg":"hello"`)
}
