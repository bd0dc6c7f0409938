// Package config loads runtime settings from a YAML file and T219_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
	yamlv3 "gopkg.in/yaml.v3"
)

// DefaultPath is read when no config file is named and it exists.
const DefaultPath = "t219.yaml"

// EnvPrefix marks environment overrides: T219_WINDOW_SCALE sets
// window.scale.
const EnvPrefix = "T219_"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Window  Window `koanf:"window" yaml:"window"`
	Hz      int    `koanf:"hz" yaml:"hz"`
	Content string `koanf:"content" yaml:"content,omitempty"`
	Scroll  Scroll `koanf:"scroll" yaml:"scroll"`
	Render  Render `koanf:"render" yaml:"render"`
	Log     Log    `koanf:"log" yaml:"log"`
}

type Window struct {
	Width  int    `koanf:"width" yaml:"width"`
	Height int    `koanf:"height" yaml:"height"`
	Scale  int    `koanf:"scale" yaml:"scale"`
	Title  string `koanf:"title" yaml:"title"`
}

type Scroll struct {
	DurationMS int  `koanf:"duration_ms" yaml:"duration_ms"`
	Snap       bool `koanf:"snap" yaml:"snap"`
	SnapIdleMS int  `koanf:"snap_idle_ms" yaml:"snap_idle_ms"`
}

type Render struct {
	Wireframe bool `koanf:"wireframe" yaml:"wireframe"`
	Workers   int  `koanf:"workers" yaml:"workers"`
	Segments  int  `koanf:"segments" yaml:"segments"`
}

type Log struct {
	Level string `koanf:"level" yaml:"level"`
	File  string `koanf:"file" yaml:"file,omitempty"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Window: Window{Width: 320, Height: 320, Scale: 2, Title: "T219"},
		Hz:     60,
		Scroll: Scroll{DurationMS: 450, SnapIdleMS: 600},
		Render: Render{Segments: 100},
		Log:    Log{Level: "info"},
	}
}

// Load layers path (or DefaultPath when path is empty and present) and the
// environment over Default, then validates the result.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if explicit || !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envKey maps T219_SCROLL_DURATION_MS to scroll.duration_ms: the first
// underscore separates the section.
func envKey(s string) string {
	return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
}

// Validate rejects settings the presentation cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d must be positive", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Window.Scale <= 0:
		return fmt.Errorf("%w: window.scale must be positive", ErrInvalid)
	case c.Hz <= 0:
		return fmt.Errorf("%w: hz must be positive", ErrInvalid)
	case c.Scroll.DurationMS < 0:
		return fmt.Errorf("%w: scroll.duration_ms must be non-negative", ErrInvalid)
	case c.Scroll.SnapIdleMS < 0:
		return fmt.Errorf("%w: scroll.snap_idle_ms must be non-negative", ErrInvalid)
	case c.Render.Workers < 0:
		return fmt.Errorf("%w: render.workers must be non-negative", ErrInvalid)
	case c.Render.Segments < 0:
		return fmt.Errorf("%w: render.segments must be non-negative", ErrInvalid)
	}
	if _, err := zap.ParseAtomicLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}
	return nil
}

// Duration is the smooth scroll length. Zero means instant.
func (s Scroll) Duration() time.Duration {
	if s.DurationMS == 0 {
		return -1
	}
	return time.Duration(s.DurationMS) * time.Millisecond
}

// SnapIdle is the idle time before snapping, or zero when snapping is off.
func (s Scroll) SnapIdle() time.Duration {
	if !s.Snap {
		return 0
	}
	return time.Duration(s.SnapIdleMS) * time.Millisecond
}

// Build returns a production zap logger at the configured level, writing
// to File when set and stderr otherwise. verbose forces debug level.
func (l Log) Build(verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	lvl, err := zap.ParseAtomicLevel(l.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	if verbose {
		lvl = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	zc.Level = lvl
	zc.Encoding = "console"
	zc.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	if l.File != "" {
		zc.OutputPaths = []string{l.File}
		zc.ErrorOutputPaths = []string{l.File}
	}
	return zc.Build()
}

// YAML renders the effective settings.
func (c *Config) YAML() ([]byte, error) {
	b, err := yamlv3.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshalling config: %w", err)
	}
	return b, nil
}
