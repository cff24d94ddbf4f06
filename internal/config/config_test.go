package config

import (
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/elementview/internal/errors"
	"github.com/vango-dev/elementview/pkg/element"
	"github.com/vango-dev/elementview/pkg/export"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Viewport.Width != DefaultWidth || cfg.Viewport.Height != DefaultHeight {
		t.Errorf("Viewport = %+v", cfg.Viewport)
	}
	if cfg.Export.Output != DefaultOutput {
		t.Errorf("Export.Output = %q, want %q", cfg.Export.Output, DefaultOutput)
	}
	if cfg.Inspector.Addr != DefaultInspectorAddr {
		t.Errorf("Inspector.Addr = %q, want %q", cfg.Inspector.Addr, DefaultInspectorAddr)
	}
	if cfg.ExportFormat() != export.Auto {
		t.Errorf("ExportFormat = %q", cfg.ExportFormat())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	// Test loading non-existent config
	_, err := Load(tmpDir)
	if !stderrors.Is(err, errors.New("E100")) {
		t.Errorf("expected E100 for missing config, got %v", err)
	}

	configJSON := `{
  "viewport": {"width": 1280},
  "devicePixelRatio": 2,
  "export": {
    "format": "vector",
    "hidpi": true,
    "s3": {"bucket": "plots", "prefix": "nightly/", "region": "eu-west-1"}
  },
  "log": {"level": "trace"}
}
`
	if err := os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(configJSON), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Viewport.Width != 1280 || cfg.Viewport.Height != DefaultHeight {
		t.Errorf("Viewport = %+v", cfg.Viewport)
	}
	if cfg.DevicePixelRatio != 2 {
		t.Errorf("DevicePixelRatio = %v", cfg.DevicePixelRatio)
	}
	if cfg.ExportFormat() != export.Vector || !cfg.Export.HiDPI {
		t.Errorf("Export = %+v", cfg.Export)
	}
	if !cfg.UsesS3() || cfg.Export.S3.Region != "eu-west-1" {
		t.Errorf("S3 = %+v", cfg.Export.S3)
	}
	if cfg.Inspector.Addr != DefaultInspectorAddr {
		t.Errorf("Inspector.Addr = %q", cfg.Inspector.Addr)
	}
	if cfg.LogLevel() != element.LevelTrace {
		t.Errorf("LogLevel = %v", cfg.LogLevel())
	}
	if cfg.Dir() != tmpDir {
		t.Errorf("Dir = %q, want %q", cfg.Dir(), tmpDir)
	}
	if cfg.OutputPath() != filepath.Join(tmpDir, DefaultOutput) {
		t.Errorf("OutputPath = %q", cfg.OutputPath())
	}
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Path() != "" || cfg.Viewport.Width != DefaultWidth {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(tmpDir)
	if !stderrors.Is(err, errors.New("E101")) {
		t.Fatalf("expected E101, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		detail string
	}{
		{"negative viewport", func(c *Config) { c.Viewport.Width = -1 }, "Viewport"},
		{"negative ratio", func(c *Config) { c.DevicePixelRatio = -2 }, "devicePixelRatio"},
		{"bad format", func(c *Config) { c.Export.Format = "pdf" }, "pdf"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "loud"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			var e *errors.Error
			if !stderrors.As(err, &e) || e.Code != "E102" {
				t.Fatalf("expected E102, got %v", err)
			}
			if !strings.Contains(e.Detail, tt.detail) {
				t.Errorf("Detail = %q, want mention of %q", e.Detail, tt.detail)
			}
		})
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(`{"export": {"format": "gif"}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(tmpDir); !stderrors.Is(err, errors.New("E102")) {
		t.Errorf("expected E102, got %v", err)
	}
}

func TestSave(t *testing.T) {
	cfg := New()
	if err := cfg.Save(); err == nil {
		t.Error("Save without a path should fail")
	}

	path := filepath.Join(t.TempDir(), ConfigFileName)
	cfg.Inspector.Addr = ":9000"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Inspector.Addr != ":9000" {
		t.Errorf("Inspector.Addr = %q", loaded.Inspector.Addr)
	}

	loaded.Log.Level = "debug"
	if err := loaded.Save(); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if !strings.HasSuffix(string(data), "\n") || !strings.Contains(string(data), `"level": "debug"`) {
		t.Errorf("saved file:\n%s", data)
	}
}

func TestLogLevels(t *testing.T) {
	tests := map[string]slog.Level{
		"trace": element.LevelTrace,
		"DEBUG": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for name, want := range tests {
		cfg := New()
		cfg.Log.Level = name
		if got := cfg.LogLevel(); got != want {
			t.Errorf("LogLevel(%q) = %v, want %v", name, got, want)
		}
	}
}
