package element

import (
	"go.opentelemetry.io/otel/attribute"

	"github.com/vango-dev/elementview/internal/errors"
	"github.com/vango-dev/elementview/pkg/export"
)

// Export allocates a target of format sized to the current bounding box
// and lets the kind's Paint hook draw into it. With hidpi the target uses
// the surface's device pixel ratio, otherwise a ratio of 1.
func (v *View) Export(format export.Format, hidpi bool) (export.Target, error) {
	span := v.recorder.Start("export", v.kind, string(v.id))
	span.SetAttributes(
		attribute.String("elementview.format", string(format.Resolve())),
		attribute.Bool("elementview.hidpi", hidpi),
	)
	target, err := v.export(format, hidpi)
	v.recorder.Export(v.kind, string(format.Resolve()), err)
	span.End(err)
	return target, err
}

func (v *View) export(format export.Format, hidpi bool) (export.Target, error) {
	ratio := 1.0
	if hidpi {
		ratio = v.surface.DevicePixelRatio()
	}
	bbox := v.BBox()
	target, err := export.New(format, bbox.Width, bbox.Height, ratio)
	if err != nil {
		return nil, err
	}
	if v.behavior.Paint != nil {
		if err := v.behavior.Paint(v, target); err != nil {
			return nil, errors.FromError(err, "E300").WithDetailf("painting %s %q", v.kind, v.id)
		}
	}
	return target, nil
}
