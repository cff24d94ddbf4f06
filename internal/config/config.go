package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/vango-dev/elementview/internal/errors"
	"github.com/vango-dev/elementview/pkg/element"
	"github.com/vango-dev/elementview/pkg/export"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "elementview.json"

	// DefaultWidth and DefaultHeight size the viewport when a scene does
	// not.
	DefaultWidth  = 800
	DefaultHeight = 600

	// DefaultOutput is the default export directory.
	DefaultOutput = "exports"

	// DefaultInspectorAddr is the default inspector listen address.
	DefaultInspectorAddr = "localhost:7070"
)

// Config represents the complete elementview.json configuration.
type Config struct {
	// Viewport is the surface size used when a scene sets none.
	Viewport ViewportConfig `json:"viewport"`

	// DevicePixelRatio is the density used by hidpi exports.
	DevicePixelRatio float64 `json:"devicePixelRatio,omitempty"`

	// Export contains export defaults.
	Export ExportConfig `json:"export"`

	// Inspector contains inspector server settings.
	Inspector InspectorConfig `json:"inspector"`

	// Log contains logging settings.
	Log LogConfig `json:"log"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ViewportConfig is a surface size.
type ViewportConfig struct {
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// ExportConfig contains export defaults.
type ExportConfig struct {
	// Format is auto, raster or vector.
	Format string `json:"format,omitempty"`

	// HiDPI scales exports by DevicePixelRatio.
	HiDPI bool `json:"hidpi,omitempty"`

	// Output is the directory exports are written to.
	Output string `json:"output,omitempty"`

	// S3 uploads exports instead of writing files when Bucket is set.
	S3 S3Config `json:"s3"`
}

// S3Config configures the S3 export sink.
type S3Config struct {
	Bucket string `json:"bucket,omitempty"`
	Prefix string `json:"prefix,omitempty"`
	Region string `json:"region,omitempty"`
}

// InspectorConfig contains inspector server settings.
type InspectorConfig struct {
	// Addr is the listen address.
	Addr string `json:"addr,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is trace, debug, info, warn or error.
	Level string `json:"level,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Viewport: ViewportConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
		DevicePixelRatio: 1,
		Export: ExportConfig{
			Format: string(export.Auto),
			Output: DefaultOutput,
		},
		Inspector: InspectorConfig{
			Addr: DefaultInspectorAddr,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from the specified directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadOrDefault loads the configuration in dir, or returns defaults when
// there is no config file.
func LoadOrDefault(dir string) (*Config, error) {
	if !Exists(dir) {
		return New(), nil
	}
	return Load(dir)
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E100").
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path)).
				WithSuggestion("Create " + ConfigFileName + " or omit --config to use defaults")
		}
		return nil, errors.New("E100").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E101").
			WithLocationFromError(path, err).
			WithDetail("Failed to parse " + ConfigFileName + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E103").Wrap(err)
	}

	// Add newline at end of file
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E103").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Viewport.Width == 0 {
		c.Viewport.Width = DefaultWidth
	}
	if c.Viewport.Height == 0 {
		c.Viewport.Height = DefaultHeight
	}
	if c.DevicePixelRatio == 0 {
		c.DevicePixelRatio = 1
	}
	if c.Export.Format == "" {
		c.Export.Format = string(export.Auto)
	}
	if c.Export.Output == "" {
		c.Export.Output = DefaultOutput
	}
	if c.Inspector.Addr == "" {
		c.Inspector.Addr = DefaultInspectorAddr
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Viewport.Width < 0 || c.Viewport.Height < 0 {
		return errors.New("E102").
			WithDetail("Viewport width and height must not be negative")
	}
	if c.DevicePixelRatio < 0 {
		return errors.New("E102").
			WithDetail("devicePixelRatio must be positive")
	}
	if _, err := export.ParseFormat(c.Export.Format); err != nil {
		return errors.New("E102").
			WithDetailf("Unknown export format %q", c.Export.Format).
			WithSuggestion("Use auto, raster or vector")
	}
	if _, ok := parseLevel(c.Log.Level); !ok {
		return errors.New("E102").
			WithDetailf("Unknown log level %q", c.Log.Level).
			WithSuggestion("Use trace, debug, info, warn or error")
	}
	return nil
}

// ExportFormat returns the configured export format.
func (c *Config) ExportFormat() export.Format {
	f, err := export.ParseFormat(c.Export.Format)
	if err != nil {
		return export.Auto
	}
	return f
}

// OutputPath returns the absolute path to the export directory.
func (c *Config) OutputPath() string {
	if filepath.IsAbs(c.Export.Output) {
		return c.Export.Output
	}
	return filepath.Join(c.Dir(), c.Export.Output)
}

// UsesS3 reports whether exports go to S3.
func (c *Config) UsesS3() bool {
	return c.Export.S3.Bucket != ""
}

// LogLevel returns the configured slog level.
func (c *Config) LogLevel() slog.Level {
	level, _ := parseLevel(c.Log.Level)
	return level
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "trace":
		return element.LevelTrace, true
	case "debug":
		return slog.LevelDebug, true
	case "", "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}
