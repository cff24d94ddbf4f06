package scene

import (
	"fmt"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/vango-dev/elementview/pkg/css"
	"github.com/vango-dev/elementview/pkg/element"
	"github.com/vango-dev/elementview/pkg/export"
)

// BoxBehavior paints an element as a filled box in its background color
// with its id as a label.
func BoxBehavior() element.Behavior {
	return element.Behavior{Paint: paintBox}
}

func paintBox(v *element.View, t export.Target) error {
	fill := background(v.Model().Styles.Get())
	w, h := float64(t.Width()), float64(t.Height())

	switch target := t.(type) {
	case *export.RasterTarget:
		dc := target.Context()
		if fill != "" {
			if strings.HasPrefix(fill, "#") {
				dc.SetHexColor(fill)
			} else if c, ok := colornames.Map[strings.ToLower(fill)]; ok {
				dc.SetColor(c)
			} else {
				return fmt.Errorf("unsupported color %q", fill)
			}
			dc.DrawRectangle(0, 0, w, h)
			dc.Fill()
		}
		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(string(v.ID()), w/2, h/2, 0.5, 0.5)
	case *export.VectorTarget:
		canvas := target.Canvas()
		if fill != "" {
			canvas.Rect(0, 0, t.Width(), t.Height(), "fill:"+fill)
		}
		canvas.Text(t.Width()/2, t.Height()/2, string(v.ID()), "text-anchor:middle;dominant-baseline:middle")
	}
	return nil
}

// background returns the last background color declared in src.
func background(src css.Source) string {
	var fill string
	for _, d := range css.Enumerate(src) {
		switch css.NormalizeName(d.Name) {
		case "background", "background-color":
			if v, ok := d.StringValue(); ok && v != "" {
				fill = v
			}
		}
	}
	return fill
}
