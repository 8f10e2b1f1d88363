package theworld

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig_TOML(t *testing.T) {
	data := []byte(`
debug = true

[window]
title = "demo"
width = 800

[loop]
max_delta_time = 0.05
`)
	cfg, err := ParseConfig(data, "toml")
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "demo", cfg.Window.Title)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 480, cfg.Window.Height, "unset fields keep defaults")
	assert.Equal(t, 0.05, cfg.Loop.MaxDeltaTime)
	assert.Equal(t, 60, cfg.Loop.TPS)
}

func TestParseConfig_YAML(t *testing.T) {
	data := []byte(`
window:
  resizable: true
loop:
  tps: 120
logging:
  level: debug
  format: json
`)
	cfg, err := ParseConfig(data, ".yml")
	require.NoError(t, err)
	assert.True(t, cfg.Window.Resizable)
	assert.Equal(t, 120, cfg.Loop.TPS)
	assert.Equal(t, LoggingConfig{Level: "debug", Format: "json"}, cfg.Logging)
	assert.Equal(t, "theworld", cfg.Window.Title)
}

func TestParseConfig_Errors(t *testing.T) {
	_, err := ParseConfig([]byte("{}"), "json")
	assert.EqualError(t, err, `unsupported config format "json"`)

	_, err = ParseConfig([]byte("window = ["), "toml")
	assert.Error(t, err)

	_, err = ParseConfig([]byte("window: [1, 2"), "yaml")
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.toml")
	require.NoError(t, os.WriteFile(path, []byte("[window]\nheight = 720\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 720, cfg.Window.Height)

	_, err = LoadConfig(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
