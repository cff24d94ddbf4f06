package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/elementview/internal/config"
	"github.com/vango-dev/elementview/pkg/export"
)

type exportFlags struct {
	format  string
	hidpi   bool
	out     string
	name    string
	timeout time.Duration
}

func exportCmd(global *globalFlags) *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "export <scene.yaml> <id>",
		Short: "Export a view to PNG or SVG",
		Long: `Builds the scene and exports one view. Raster exports are written as
PNG and vector exports as SVG.

Exports go to the output directory, or to S3 when export.s3.bucket is
set in elementview.json. S3 credentials come from the standard AWS
environment and shared config files.

Examples:
  elementview export dashboard.yaml plot
  elementview export dashboard.yaml plot --format vector --out ./build
  elementview export dashboard.yaml plot --hidpi --name plot@2x`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), global, flags, args[0], args[1])
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "Export format: auto, raster, vector (default from elementview.json)")
	cmd.Flags().BoolVar(&flags.hidpi, "hidpi", false, "Scale the export by the device pixel ratio")
	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "Output directory (overrides elementview.json)")
	cmd.Flags().StringVar(&flags.name, "name", "", "Base name of the exported file (default: the view id)")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 30*time.Second, "Time allowed for writing or uploading the export")

	return cmd
}

func runExport(ctx context.Context, global *globalFlags, flags exportFlags, path, id string) error {
	cfg, err := setup(global)
	if err != nil {
		return err
	}
	if flags.format != "" {
		cfg.Export.Format = flags.format
	}
	if flags.hidpi {
		cfg.Export.HiDPI = true
	}
	if flags.out != "" {
		cfg.Export.Output = flags.out
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	sc, err := loadScene(cfg, path)
	if err != nil {
		return err
	}
	defer sc.Close()

	v, err := sc.View(id)
	if err != nil {
		return err
	}
	target, err := v.Export(cfg.ExportFormat(), cfg.Export.HiDPI)
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, flags.timeout)
	defer cancel()

	sink, err := newSink(ctx, cfg)
	if err != nil {
		return err
	}
	name := flags.name
	if name == "" {
		name = id
	}
	where, err := sink.Put(ctx, name, target)
	if err != nil {
		return err
	}

	success("Exported %s", where)
	info("%dx%d at %gx, %s", target.Width(), target.Height(), target.PixelRatio(), target.Format())
	return nil
}

func newSink(ctx context.Context, cfg *config.Config) (export.Sink, error) {
	if cfg.UsesS3() {
		s3cfg := cfg.Export.S3
		return export.NewS3SinkFromEnv(ctx, s3cfg.Bucket, s3cfg.Prefix, s3cfg.Region)
	}
	return export.FileSink{Dir: cfg.OutputPath()}, nil
}
