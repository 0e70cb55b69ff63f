package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/multierr"

	"folio-cli/internal/model"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvConfigDir, t.TempDir())
	t.Setenv(EnvLogLevel, "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoad_ReadsFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)
	t.Setenv(EnvLogLevel, "DEBUG")

	body := "indexStyle: Roman\nseed: empty\ndocument:\n  title: Line Maintenance\n  author: J. Carter\nlog:\n  level: info\n  file: /tmp/folio.log\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.IndexStyle != model.IndexRoman || cfg.Seed != "empty" {
		t.Fatalf("unexpected cfg %+v", cfg)
	}
	if cfg.Document.Title != "Line Maintenance" || cfg.Document.Author != "J. Carter" {
		t.Fatalf("unexpected document cfg %+v", cfg.Document)
	}
	if cfg.Log.Level != "debug" || cfg.Log.File != "/tmp/folio.log" {
		t.Fatalf("unexpected log cfg %+v", cfg.Log)
	}
	if cfg.TUI.Glyphs != "unicode" {
		t.Fatalf("expected default glyphs, got %q", cfg.TUI.Glyphs)
	}
}

func TestLoad_ReportsAllInvalidFields(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	path := filepath.Join(t.TempDir(), "custom.yaml")
	body := "indexStyle: hex\nseed: lots\nlog:\n  level: loud\ntui:\n  glyphs: emoji\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("expected path in error: %v", err)
	}

	cfg := Config{IndexStyle: "hex", Seed: "lots", Log: LogConfig{Level: "loud"}, TUI: TUIConfig{Glyphs: "emoji"}}
	if n := len(multierr.Errors(cfg.Validate())); n != 4 {
		t.Fatalf("expected 4 errors, got %d", n)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("indexStyle: [\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoad_RejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("indexStlye: roman\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "indexStlye") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestLoad_EmptyFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.IndexStyle != model.IndexDecimal {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestConfigDir_Default(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvConfigDir, "")
	t.Setenv("HOME", home)
	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir: %v", err)
	}
	if dir != filepath.Join(home, ".folio") {
		t.Fatalf("unexpected dir %q", dir)
	}
}
