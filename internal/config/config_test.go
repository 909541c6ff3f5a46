package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gstrike.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
[physics]
gravity = 0.5

[briefing]
url = "http://localhost:9000/briefing"
timeout = "1500ms"

[boss]
score_threshold = 3000
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.5, cfg.Physics.Gravity)
	assert.Equal(t, 0.8, cfg.Physics.Friction)
	assert.Equal(t, "http://localhost:9000/briefing", cfg.Briefing.URL)
	assert.Equal(t, 1500*time.Millisecond, cfg.Briefing.Timeout)
	assert.Equal(t, 3000, cfg.Boss.ScoreThreshold)
	assert.Equal(t, 150, cfg.Boss.HP)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, "[display]\nfps = 0\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "display.fps")
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := writeConfig(t, "[display\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestNewLoggerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	log, err := NewLogger(LoggingConfig{Level: "debug", Format: "json", File: path})
	require.NoError(t, err)

	log.Info("boss spawned")
	_ = log.Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "boss spawned")
}
