// Package config loads user preferences from ~/.folio/config.yaml.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"folio-cli/internal/model"
)

const (
	EnvConfigDir = "FOLIO_CONFIG_DIR"
	EnvFormat    = "FOLIO_FORMAT"
	EnvLogLevel  = "FOLIO_LOG_LEVEL"
)

type Config struct {
	IndexStyle model.IndexStyle `yaml:"indexStyle,omitempty"`
	// Seed picks what a new session opens with: "sample" or "empty".
	Seed     string         `yaml:"seed,omitempty"`
	Document DocumentConfig `yaml:"document,omitempty"`
	Log      LogConfig      `yaml:"log,omitempty"`
	TUI      TUIConfig      `yaml:"tui,omitempty"`
}

type DocumentConfig struct {
	Title  string `yaml:"title,omitempty"`
	Author string `yaml:"author,omitempty"`
}

type LogConfig struct {
	// Level is none, info or debug.
	Level string `yaml:"level,omitempty"`
	File  string `yaml:"file,omitempty"`
}

type TUIConfig struct {
	// Glyphs selects the glyph set ("unicode", "ascii").
	Glyphs string `yaml:"glyphs,omitempty"`
}

func Default() Config {
	return Config{
		IndexStyle: model.IndexDecimal,
		Seed:       "sample",
		Log:        LogConfig{Level: "none"},
		TUI:        TUIConfig{Glyphs: "unicode"},
	}
}

func ConfigDir() (string, error) {
	// Allow overriding for tests / portable installs.
	if v := strings.TrimSpace(os.Getenv(EnvConfigDir)); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".folio"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads path (or ConfigPath when empty) over the defaults. A missing file
// is not an error. FOLIO_LOG_LEVEL overrides log.level.
func Load(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		p, err := ConfigPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}
	cfg := Default()
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, err
	default:
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Log.Level = v
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) normalize() {
	d := Default()
	c.IndexStyle = model.IndexStyle(strings.ToLower(strings.TrimSpace(string(c.IndexStyle))))
	if c.IndexStyle == "" {
		c.IndexStyle = d.IndexStyle
	}
	c.Seed = strings.ToLower(strings.TrimSpace(c.Seed))
	if c.Seed == "" {
		c.Seed = d.Seed
	}
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	c.Log.File = strings.TrimSpace(c.Log.File)
	c.TUI.Glyphs = strings.ToLower(strings.TrimSpace(c.TUI.Glyphs))
	if c.TUI.Glyphs == "" {
		c.TUI.Glyphs = d.TUI.Glyphs
	}
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	var errs error
	if !c.IndexStyle.Valid() {
		errs = multierr.Append(errs, fmt.Errorf("indexStyle: %q (expected decimal|roman|alpha|bullet)", c.IndexStyle))
	}
	switch c.Seed {
	case "sample", "empty":
	default:
		errs = multierr.Append(errs, fmt.Errorf("seed: %q (expected sample|empty)", c.Seed))
	}
	switch c.Log.Level {
	case "none", "info", "debug":
	default:
		errs = multierr.Append(errs, fmt.Errorf("log.level: %q (expected none|info|debug)", c.Log.Level))
	}
	switch c.TUI.Glyphs {
	case "unicode", "ascii":
	default:
		errs = multierr.Append(errs, fmt.Errorf("tui.glyphs: %q (expected unicode|ascii)", c.TUI.Glyphs))
	}
	return errs
}
