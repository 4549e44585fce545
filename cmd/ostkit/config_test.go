package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.Format.Shorthand)
	assert.True(t, cfg.Format.IncludeDescriptions)
	assert.Equal(t, "expr", cfg.Query.Language)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".ostkit.yaml")
	content := "log_level: debug\nformat:\n  shorthand: false\n  include_descriptions: true\nquery:\n  language: cel\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg := loadConfig(path)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.Format.Shorthand)
	assert.True(t, cfg.Format.IncludeDescriptions)
	assert.Equal(t, "cel", cfg.Query.Language)
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Equal(t, defaultConfig(), cfg)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".ostkit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\n"), 0o644))

	t.Setenv("OSTKIT_LOG_LEVEL", "error")
	t.Setenv("OSTKIT_QUERY_LANGUAGE", "jq")
	t.Setenv("OSTKIT_FORMAT_SHORTHAND", "0")

	cfg := loadConfig(path)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, "jq", cfg.Query.Language)
	assert.False(t, cfg.Format.Shorthand)
}
