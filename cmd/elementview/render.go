package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/elementview/internal/errors"
	"github.com/vango-dev/elementview/pkg/element"
)

type renderFlags struct {
	viewport []float64
	resize   []string
}

func renderCmd(global *globalFlags) *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render <scene.yaml>",
		Short: "Build a scene and print every view's state",
		Long: `Builds the scene, renders every view, and prints the serializable
state of each view as JSON, in tree order.

Examples:
  elementview render dashboard.yaml
  elementview render dashboard.yaml --viewport 300,400
  elementview render dashboard.yaml --resize plot=200x100`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(global, flags, args[0])
		},
	}

	cmd.Flags().Float64SliceVar(&flags.viewport, "viewport", nil, "Resize the viewport to WIDTH,HEIGHT after building")
	cmd.Flags().StringArrayVar(&flags.resize, "resize", nil, "Resize an element, as ID=WIDTHxHEIGHT (repeatable)")

	return cmd
}

func runRender(global *globalFlags, flags renderFlags, path string) error {
	cfg, err := setup(global)
	if err != nil {
		return err
	}

	sc, err := loadScene(cfg, path)
	if err != nil {
		return err
	}
	defer sc.Close()

	if flags.viewport != nil {
		if len(flags.viewport) != 2 {
			return errors.New("E500").WithDetail("--viewport takes WIDTH,HEIGHT")
		}
		sc.SetViewport(flags.viewport[0], flags.viewport[1])
	}
	for _, r := range flags.resize {
		id, w, h, err := parseResize(r)
		if err != nil {
			return err
		}
		if err := sc.Resize(id, w, h); err != nil {
			return err
		}
	}

	views := sc.Tree().Views()
	states := make([]element.State, 0, len(views))
	for _, v := range views {
		states = append(states, v.SerializableState())
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(states)
}
