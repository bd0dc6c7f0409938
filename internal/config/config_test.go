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
	path := filepath.Join(t.TempDir(), "t219.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 450*time.Millisecond, cfg.Scroll.Duration())
	assert.Zero(t, cfg.Scroll.SnapIdle(), "snapping is off by default")
}

func TestLoadFileAndEnv(t *testing.T) {
	path := writeConfig(t, `
window:
  width: 480
  scale: 1
scroll:
  snap: true
  snap_idle_ms: 300
render:
  wireframe: true
`)
	t.Setenv("T219_WINDOW_SCALE", "3")
	t.Setenv("T219_SCROLL_DURATION_MS", "200")
	t.Setenv("T219_HZ", "30")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 480, cfg.Window.Width)
	assert.Equal(t, 320, cfg.Window.Height, "unset keys keep defaults")
	assert.Equal(t, 3, cfg.Window.Scale, "env beats file")
	assert.Equal(t, 30, cfg.Hz)
	assert.Equal(t, 200*time.Millisecond, cfg.Scroll.Duration())
	assert.Equal(t, 300*time.Millisecond, cfg.Scroll.SnapIdle())
	assert.True(t, cfg.Render.Wireframe)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadWithoutDefaultFile(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"negative height", func(c *Config) { c.Window.Height = -1 }},
		{"zero scale", func(c *Config) { c.Window.Scale = 0 }},
		{"zero hz", func(c *Config) { c.Hz = 0 }},
		{"negative duration", func(c *Config) { c.Scroll.DurationMS = -5 }},
		{"negative snap idle", func(c *Config) { c.Scroll.SnapIdleMS = -1 }},
		{"negative workers", func(c *Config) { c.Render.Workers = -2 }},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mod(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestLoadValidates(t *testing.T) {
	path := writeConfig(t, "hz: -1\n")
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestZeroDurationIsInstant(t *testing.T) {
	assert.Negative(t, Scroll{}.Duration())
}

func TestLogBuildWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t219.log")
	l, err := Log{Level: "debug", File: path}.Build(false)
	require.NoError(t, err)
	l.Debug("hello")
	_ = l.Sync()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "hello")
}

func TestYAMLRoundTrip(t *testing.T) {
	b, err := Default().YAML()
	require.NoError(t, err)
	cfg, err := Load(writeConfig(t, string(b)))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
