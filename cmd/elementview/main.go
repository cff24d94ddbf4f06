package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/elementview/internal/config"
	"github.com/vango-dev/elementview/internal/errors"
	"github.com/vango-dev/elementview/pkg/scene"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globalFlags are shared by every command.
type globalFlags struct {
	configDir string
	logLevel  string
	noColor   bool
}

func main() {
	var flags globalFlags

	rootCmd := &cobra.Command{
		Use:   "elementview",
		Short: "Render, measure and export element scenes",
		Long: `elementview builds YAML scene documents into element views on a
headless surface.

Use it to:

  • Inspect composed classes, stylesheets and bounding boxes
  • Script resizes and watch views converge
  • Export views to PNG or SVG, locally or to S3
  • Serve a scene over HTTP for live inspection`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&flags.configDir, "config", "c", ".", "Directory containing elementview.json")
	rootCmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "Disable colored error output (also honors NO_COLOR)")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		configureColor(flags.noColor)
	}
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error (default from elementview.json)")

	rootCmd.AddCommand(
		renderCmd(&flags),
		exportCmd(&flags),
		inspectCmd(&flags),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

// configureColor turns off ANSI colors in error output when asked to or
// when NO_COLOR is set.
func configureColor(noColor bool) {
	if noColor || os.Getenv("NO_COLOR") != "" {
		errors.DisableColors()
		return
	}
	errors.EnableColors()
}

// setup loads the configuration, applies flag overrides and installs the
// default logger.
func setup(flags *globalFlags) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(flags.configDir)
	if err != nil {
		return nil, err
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel()})
	slog.SetDefault(slog.New(handler))
	return cfg, nil
}

// loadScene reads a scene file. A document without its own viewport or
// pixel ratio takes them from the configuration.
func loadScene(cfg *config.Config, path string, opts ...scene.Option) (*scene.Scene, error) {
	doc, err := scene.Load(path)
	if err != nil {
		return nil, err
	}
	doc.Fallback(scene.Size{Width: cfg.Viewport.Width, Height: cfg.Viewport.Height}, cfg.DevicePixelRatio)
	return scene.Build(doc, opts...)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}
