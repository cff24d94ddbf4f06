package scene

import (
	"fmt"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/elementview/pkg/css"
	"github.com/vango-dev/elementview/pkg/geom"
)

// Document is a decoded scene file.
type Document struct {
	Viewport         Size      `yaml:"viewport"`
	DevicePixelRatio float64   `yaml:"devicePixelRatio"`
	Elements         []Element `yaml:"elements"`

	viewportDefaulted bool
	ratioDefaulted    bool
}

// Fallback replaces the viewport and pixel ratio with the given values
// when the file left them unset. Zero arguments are ignored.
func (d *Document) Fallback(viewport Size, ratio float64) {
	if d.viewportDefaulted && viewport.Width > 0 && viewport.Height > 0 {
		d.Viewport = viewport
	}
	if d.ratioDefaulted && ratio > 0 {
		d.DevicePixelRatio = ratio
	}
}

// Size is a width and height in surface units.
type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Rect is an element's geometry relative to its parent element.
type Rect struct {
	Left   float64 `yaml:"left"`
	Top    float64 `yaml:"top"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Sizing controls how an element follows its parent's size.
type Sizing string

const (
	Fixed         Sizing = "fixed"
	StretchWidth  Sizing = "stretch_width"
	StretchHeight Sizing = "stretch_height"
	StretchBoth   Sizing = "stretch_both"

	// ScaleBoth fills the parent as far as possible while keeping the
	// declared aspect ratio.
	ScaleBoth Sizing = "scale_both"
)

func (s Sizing) valid() bool {
	switch s {
	case "", Fixed, StretchWidth, StretchHeight, StretchBoth, ScaleBoth:
		return true
	}
	return false
}

// Element is one node of the scene tree.
type Element struct {
	ID          string       `yaml:"id"`
	Kind        string       `yaml:"kind"`
	Visible     *bool        `yaml:"visible"`
	Displayed   *bool        `yaml:"displayed"`
	Sizing      Sizing       `yaml:"sizing"`
	Rect        Rect         `yaml:"rect"`
	Classes     []string     `yaml:"classes"`
	Styles      StyleMap     `yaml:"styles"`
	Stylesheets []Stylesheet `yaml:"stylesheets"`
	Children    []Element    `yaml:"children"`

	line int
}

// UnmarshalYAML records the element's line for error locations.
// node.Decode does not inherit the decoder's KnownFields setting, so keys
// are checked here.
func (e *Element) UnmarshalYAML(node *yaml.Node) error {
	if err := checkFields(node, elementFields, "element"); err != nil {
		return err
	}
	type plain Element
	if err := node.Decode((*plain)(e)); err != nil {
		return err
	}
	e.line = node.Line
	return nil
}

// Line returns the line the element starts on, or 0 when not decoded from
// YAML.
func (e *Element) Line() int {
	return e.line
}

// StyleMap is an ordered style mapping.
type StyleMap struct {
	decls *css.Declarations
}

// NewStyleMap wraps d.
func NewStyleMap(d *css.Declarations) StyleMap {
	return StyleMap{decls: d}
}

// Declarations returns the mapping in document order. It is never nil.
func (m StyleMap) Declarations() *css.Declarations {
	if m.decls == nil {
		return css.NewDeclarations()
	}
	return m.decls
}

// UnmarshalYAML keeps key order, which a Go map would lose.
func (m *StyleMap) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: styles must be a mapping", node.Line)
	}
	d := css.NewDeclarations()
	for i := 0; i+1 < len(node.Content); i += 2 {
		var value any
		if err := node.Content[i+1].Decode(&value); err != nil {
			return err
		}
		d.Set(node.Content[i].Value, value)
	}
	m.decls = d
	return nil
}

// Stylesheet is either raw text or a selector to style mapping.
type Stylesheet struct {
	entry css.Entry
}

// Entry returns the stylesheet as a css.Entry.
func (s Stylesheet) Entry() css.Entry {
	return s.entry
}

// UnmarshalYAML accepts a string or a mapping of selectors.
func (s *Stylesheet) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		s.entry = css.Raw(node.Value)
		return nil
	case yaml.MappingNode:
		rs := css.NewRuleSet()
		for i := 0; i+1 < len(node.Content); i += 2 {
			var styles StyleMap
			if err := styles.UnmarshalYAML(node.Content[i+1]); err != nil {
				return err
			}
			rs.Add(node.Content[i].Value, styles.Declarations())
		}
		s.entry = rs
		return nil
	}
	return fmt.Errorf("line %d: a stylesheet must be text or a selector mapping", node.Line)
}

// UnmarshalYAML rejects unknown keys.
func (r *Rect) UnmarshalYAML(node *yaml.Node) error {
	if err := checkFields(node, rectFields, "rect"); err != nil {
		return err
	}
	type plain Rect
	return node.Decode((*plain)(r))
}

var (
	elementFields = yamlFields(reflect.TypeOf(Element{}))
	rectFields    = yamlFields(reflect.TypeOf(Rect{}))
)

// yamlFields returns the keys a struct accepts through its yaml tags.
func yamlFields(t reflect.Type) map[string]bool {
	fields := make(map[string]bool, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("yaml"), ",")
		if name != "" && name != "-" {
			fields[name] = true
		}
	}
	return fields
}

// checkFields fails on the first mapping key not in fields, worded like
// yaml.v3's own KnownFields error so the line can be recovered.
func checkFields(node *yaml.Node, fields map[string]bool, what string) error {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		if !fields[key.Value] {
			return fmt.Errorf("line %d: field %s not found in %s", key.Line, key.Value, what)
		}
	}
	return nil
}

func (r Rect) geom() geom.Rect {
	return geom.Rect{Left: r.Left, Top: r.Top, Width: r.Width, Height: r.Height}
}
