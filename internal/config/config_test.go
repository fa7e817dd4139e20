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
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	// A missing explicit file surfaces as a not-exist error and is ignored.
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultWindowDays, cfg.WindowDays)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.True(t, cfg.Output.Color)
	assert.Equal(t, 80, cfg.Output.Width)
	assert.Equal(t, DefaultDBName, filepath.Base(cfg.DBPath))
	assert.NotContains(t, cfg.DBPath, "~")
	assert.Empty(t, cfg.Advisories)

	interval, err := cfg.WatchInterval()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, interval)
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfig(t, `
db_path: /tmp/dp/test.db
window_days: 14
log_level: debug
output:
  color: false
watch:
  interval: 1h
advisories:
  - name: short_sleep
    when: "sleep < 6"
    message: "Aim for an earlier bedtime."
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/dp/test.db", cfg.DBPath)
	assert.Equal(t, 14, cfg.WindowDays)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.Output.Color)
	require.Len(t, cfg.Advisories, 1)
	assert.Equal(t, Advisory{Name: "short_sleep", When: "sleep < 6", Message: "Aim for an earlier bedtime."}, cfg.Advisories[0])
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("DAYPATTERN_WINDOW_DAYS", "30")
	path := writeConfig(t, "window_days: 14\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.WindowDays)
}

func TestLoad_InvalidWindow(t *testing.T) {
	path := writeConfig(t, "window_days: 0\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_InvalidWidth(t *testing.T) {
	path := writeConfig(t, "output:\n  width: 10\n")
	_, err := Load(path)
	assert.ErrorContains(t, err, "output.width")
}

func TestLoad_InvalidInterval(t *testing.T) {
	path := writeConfig(t, "watch:\n  interval: soon\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "x", "y"), expandPath("~/x/y"))
	assert.Equal(t, "/abs/path", expandPath("/abs/path"))
}
