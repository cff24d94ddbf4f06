package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/elementview/pkg/inspector"
)

type inspectFlags struct {
	addr string
}

func inspectCmd(global *globalFlags) *cobra.Command {
	var flags inspectFlags

	cmd := &cobra.Command{
		Use:   "inspect <scene.yaml>",
		Short: "Serve a scene for live inspection",
		Long: `Builds the scene and serves it over HTTP. Views can be listed,
resized and exported while finish events stream over a WebSocket.

Routes:
  GET  /views                 state of every view
  GET  /views/{id}            state, node styles and stylesheets
  GET  /views/{id}/export     PNG or SVG export
  POST /views/{id}/resize     resize an element
  POST /viewport              resize the surface
  GET  /events                finish event stream
  GET  /metrics               Prometheus metrics

Examples:
  elementview inspect dashboard.yaml
  elementview inspect dashboard.yaml --addr :9000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(global, flags, args[0])
		},
	}

	cmd.Flags().StringVarP(&flags.addr, "addr", "a", "", "Listen address (default from elementview.json)")

	return cmd
}

func runInspect(global *globalFlags, flags inspectFlags, path string) error {
	cfg, err := setup(global)
	if err != nil {
		return err
	}
	if flags.addr != "" {
		cfg.Inspector.Addr = flags.addr
	}

	sc, err := loadScene(cfg, path)
	if err != nil {
		return err
	}
	defer sc.Close()

	srv := inspector.New(sc)
	addr, err := srv.Start(cfg.Inspector.Addr)
	if err != nil {
		return err
	}

	fmt.Println()
	success("Inspecting %s", path)
	info("Views:   http://%s/views", addr)
	info("Events:  ws://%s/events", addr)
	info("Metrics: http://%s/metrics", addr)
	fmt.Println()
	info("Press Ctrl+C to stop")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	fmt.Println()
	info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
