package element

import (
	"context"

	"github.com/vango-dev/elementview/pkg/css"
)

// Classes returns the structural class for the view's kind followed by the
// model's classes, in order and with duplicates kept.
func (v *View) Classes() []string {
	declared := v.model.Classes.Get()
	classes := make([]string, 0, len(declared)+1)
	classes = append(classes, css.StructuralClass(v.kind))
	return append(classes, declared...)
}

// Stylesheets returns every sheet text the view applies, in render order.
func (v *View) Stylesheets() []string {
	var out []string
	for _, layer := range v.sheetLayers() {
		out = append(out, layer...)
	}
	return out
}

// sheetLayers renders the four stylesheet steps of Render: intrinsic,
// extra plus the view's own sheet, model-declared, and the display override.
func (v *View) sheetLayers() [4][]string {
	var intrinsic, extra []css.Entry
	if v.behavior.Stylesheets != nil {
		intrinsic = v.behavior.Stylesheets(v)
	}
	if v.behavior.ExtraStylesheets != nil {
		extra = v.behavior.ExtraStylesheets(v)
	}
	if v.style != nil {
		extra = append(extra, v.style)
	}
	var display []css.Entry
	if v.display != nil {
		display = []css.Entry{v.display}
	}
	return [4][]string{
		css.RenderEntries(intrinsic),
		css.RenderEntries(extra),
		css.RenderEntries(v.model.Stylesheets.Get()),
		css.RenderEntries(display),
	}
}

// applyStyles assigns every string-valued pair of src as an inline
// property. Names the surface does not recognize in any vendor variant are
// traced and skipped.
func (v *View) applyStyles(src css.Source) {
	for _, d := range css.Enumerate(src) {
		value, ok := d.StringValue()
		if !ok {
			continue
		}
		v.setStyle(css.NormalizeName(d.Name), value)
	}
}

func (v *View) setStyle(name, value string) {
	for _, variant := range css.VendorVariants(name) {
		if v.surface.HasStyleProperty(v.node, variant) {
			v.surface.SetStyleProperty(v.node, variant, value)
			return
		}
	}
	v.logger.Log(context.Background(), LevelTrace, "unknown style property", "property", name)
	v.recorder.UnknownStyle(v.kind)
}

// applyVisible sets the display override for visible.
func (v *View) applyVisible(visible bool) {
	if visible {
		v.display.Clear()
	} else {
		v.display.Replace(css.DisplayNone)
	}
}
