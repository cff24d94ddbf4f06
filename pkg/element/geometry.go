package element

import "github.com/vango-dev/elementview/pkg/geom"

// BBox returns the cached bounding box, recomputing it when it has never
// been computed or was invalidated since. The box is relative to the
// parent view when there is one, and zero when the node is not displayed.
func (v *View) BBox() geom.BBox {
	if !v.bboxValid {
		v.bbox = v.measure()
		v.bboxValid = true
	}
	return v.bbox
}

// invalidate drops the cached box. Every trigger invalidates without
// comparing against the previous value.
func (v *View) invalidate() {
	v.bboxValid = false
}

func (v *View) measure() geom.BBox {
	if !v.surface.IsDisplayed(v.node) {
		return geom.BBox{}
	}
	r := v.surface.Measure(v.node)
	if parent, ok := v.Parent(); ok {
		p := v.surface.Measure(parent.node)
		r = r.Translate(-p.Left, -p.Top)
	}
	return geom.BBoxFromRect(r)
}
