package scene

import (
	"bytes"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/elementview/internal/errors"
)

const (
	defaultViewportWidth  = 800
	defaultViewportHeight = 600
)

// Load reads and validates a scene file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E200").WithDetailf("reading %s", path).Wrap(err)
	}
	return Parse(data, path)
}

// Parse decodes and validates a scene document. filename is only used in
// error locations.
func Parse(data []byte, filename string) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.New("E201").
			WithLocationFromError(filename, err).
			WithSuggestion("Check indentation and that every element is a mapping").
			Wrap(err)
	}
	doc.applyDefaults()
	if err := doc.Validate(filename); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (d *Document) applyDefaults() {
	if d.Viewport.Width <= 0 {
		d.Viewport.Width = defaultViewportWidth
		d.viewportDefaulted = true
	}
	if d.Viewport.Height <= 0 {
		d.Viewport.Height = defaultViewportHeight
		d.viewportDefaulted = true
	}
	if d.DevicePixelRatio <= 0 {
		d.DevicePixelRatio = 1
		d.ratioDefaulted = true
	}
}

// Validate checks that every element has an id and a kind, that ids are
// unique, and that sizing modes are known.
func (d *Document) Validate(filename string) error {
	seen := make(map[string]bool)
	var walk func(elems []Element) error
	walk = func(elems []Element) error {
		for i := range elems {
			e := &elems[i]
			fail := func(detail string, args ...any) *errors.Error {
				err := errors.New("E202").WithDetailf(detail, args...)
				if e.line > 0 {
					err = err.WithLocation(filename, e.line, 0)
				}
				return err
			}
			switch {
			case e.ID == "":
				return fail("element without an id")
			case e.ID == "root":
				return fail("the id %q is reserved for the surface root", e.ID)
			case e.Kind == "":
				return fail("element %q has no kind", e.ID)
			case seen[e.ID]:
				return fail("duplicate id %q", e.ID).WithSuggestion("Give every element a unique id")
			case !e.Sizing.valid():
				return fail("element %q has unknown sizing %q", e.ID, e.Sizing)
			case e.Rect.Width < 0 || e.Rect.Height < 0:
				return fail("element %q has a negative size", e.ID)
			}
			seen[e.ID] = true
			if err := walk(e.Children); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(d.Elements)
}
