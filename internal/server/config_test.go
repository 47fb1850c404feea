package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "liarsdice.hcl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "localhost:8080", cfg.ListenAddress())
	assert.Equal(t, 750*time.Millisecond, cfg.BotDelay())
}

func TestLoadConfigParsesHCL(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
server {
  address      = "0.0.0.0"
  port         = 9000
  log_level    = "debug"
  bot_delay_ms = 100
}

store {
  backend = "sqlite"
  path    = "games.db"
}

events {
  backend = "dynamodb"
  table   = "liarsdice-events"
}
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "0.0.0.0:9000", cfg.ListenAddress())
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, 100*time.Millisecond, cfg.BotDelay())
	assert.Equal(t, "sqlite", cfg.Store.Backend)
	assert.Equal(t, "games.db", cfg.Store.Path)
	assert.Equal(t, "dynamodb", cfg.Events.Backend)
	assert.Equal(t, "liarsdice-events", cfg.Events.Table)
}

func TestLoadConfigFillsDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
server {
  port = 9000
}

store {
  backend = "sqlite"
}
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Server.Address)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, 750, cfg.Server.BotDelayMs)
	assert.Equal(t, "liarsdice.db", cfg.Store.Path, "sqlite path defaults")
	require.NotNil(t, cfg.Events)
	assert.Equal(t, "memory", cfg.Events.Backend)
}

func TestLoadConfigRejectsBadHCL(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `server { port = `)
	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port too low", func(c *Config) { c.Server.Port = 0 }},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }},
		{"negative bot delay", func(c *Config) { c.Server.BotDelayMs = -1 }},
		{"unknown store backend", func(c *Config) { c.Store.Backend = "redis" }},
		{"sqlite without path", func(c *Config) { c.Store.Backend = "sqlite"; c.Store.Path = "" }},
		{"unknown events backend", func(c *Config) { c.Events.Backend = "kafka" }},
		{"dynamodb without table", func(c *Config) { c.Events.Backend = "dynamodb"; c.Events.Table = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
