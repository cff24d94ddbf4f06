package scene

import (
	"log/slog"

	"github.com/vango-dev/elementview/internal/errors"
	"github.com/vango-dev/elementview/pkg/css"
	"github.com/vango-dev/elementview/pkg/element"
	"github.com/vango-dev/elementview/pkg/geom"
	"github.com/vango-dev/elementview/pkg/host/headless"
	"github.com/vango-dev/elementview/pkg/instrument"
)

// Scene is a built document: a headless surface with one view per element.
type Scene struct {
	doc      *Document
	surface  *headless.Surface
	tree     *element.Tree
	elements map[element.ViewID]*Element
	logger   *slog.Logger
}

type options struct {
	behaviors   map[string]element.Behavior
	logger      *slog.Logger
	recorder    *instrument.Recorder
	hasRecorder bool
	surfaceOpts []headless.Option
}

// Option configures Build.
type Option func(*options)

// WithBehavior sets the hooks for every element of kind. Kinds without a
// behavior get BoxBehavior.
func WithBehavior(kind string, b element.Behavior) Option {
	return func(o *options) {
		o.behaviors[kind] = b
	}
}

// WithLogger sets the logger passed to the surface and every view.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithRecorder sets the recorder passed to every view.
func WithRecorder(r *instrument.Recorder) Option {
	return func(o *options) {
		o.recorder = r
		o.hasRecorder = true
	}
}

// WithSurfaceOptions adds headless surface options, applied after the
// document's own viewport settings.
func WithSurfaceOptions(opts ...headless.Option) Option {
	return func(o *options) {
		o.surfaceOpts = append(o.surfaceOpts, opts...)
	}
}

// Build creates the surface, attaches, initializes and renders every
// element in document order, lays out geometry and delivers the initial
// resize notifications.
func Build(doc *Document, opts ...Option) (*Scene, error) {
	o := options{
		behaviors: make(map[string]element.Behavior),
		logger:    slog.Default().With("component", "scene"),
	}
	for _, opt := range opts {
		opt(&o)
	}

	surfaceOpts := append([]headless.Option{
		headless.WithDevicePixelRatio(doc.DevicePixelRatio),
		headless.WithLogger(o.logger),
	}, o.surfaceOpts...)

	s := &Scene{
		doc:      doc,
		surface:  headless.New(doc.Viewport.Width, doc.Viewport.Height, surfaceOpts...),
		elements: make(map[element.ViewID]*Element),
		logger:   o.logger,
	}
	s.tree = element.NewTree(s.surface)

	var build func(elems []Element, parent *element.View) error
	build = func(elems []Element, parent *element.View) error {
		for i := range elems {
			e := &elems[i]
			view, err := s.attach(e, parent, &o)
			if err != nil {
				return err
			}
			if err := build(e.Children, view); err != nil {
				return err
			}
		}
		return nil
	}
	if err := build(doc.Elements, nil); err != nil {
		s.Close()
		return nil, err
	}

	s.layout()
	for _, v := range s.tree.Views() {
		if e := s.elements[v.ID()]; e.Displayed != nil && !*e.Displayed {
			s.surface.SetDisplayed(v.Node(), false)
		}
	}
	s.surface.Flush()
	s.logger.Debug("scene built", "views", s.tree.Len())
	return s, nil
}

func (s *Scene) attach(e *Element, parent *element.View, o *options) (*element.View, error) {
	node := s.surface.NewNode(e.ID, "div")

	model := element.NewModel()
	if e.Visible != nil {
		model.Visible.Set(*e.Visible)
	}
	model.Classes.Set(e.Classes)
	model.Styles.Set(e.Styles.Declarations())
	if len(e.Stylesheets) > 0 {
		entries := make([]css.Entry, 0, len(e.Stylesheets))
		for _, sheet := range e.Stylesheets {
			entries = append(entries, sheet.Entry())
		}
		model.Stylesheets.Set(entries)
	}

	behavior, ok := o.behaviors[e.Kind]
	if !ok {
		behavior = BoxBehavior()
	}
	viewOpts := []element.Option{
		element.WithBehavior(behavior),
		element.WithLogger(o.logger),
	}
	if o.hasRecorder {
		viewOpts = append(viewOpts, element.WithRecorder(o.recorder))
	}
	var mount *headless.Node
	if parent != nil {
		viewOpts = append(viewOpts, element.WithParent(parent.ID()))
		mount, _ = s.surface.Lookup(string(parent.ID()))
	}

	view, err := s.tree.Attach(model, e.Kind, node, viewOpts...)
	if err != nil {
		return nil, errors.New("E202").WithDetail(err.Error())
	}
	view.Initialize()
	if mount != nil {
		view.RenderTo(mount)
	} else {
		view.RenderTo(nil)
	}
	s.elements[view.ID()] = e
	return view, nil
}

// layout places every element from its declared rectangle and sizing mode
// inside its parent's current geometry. Only changed nodes are updated.
func (s *Scene) layout() {
	var walk func(elems []Element, parent geom.Rect)
	walk = func(elems []Element, parent geom.Rect) {
		for i := range elems {
			e := &elems[i]
			node, ok := s.surface.Lookup(e.ID)
			if !ok {
				continue
			}
			r := place(e, parent)
			if s.surface.Measure(node) != r {
				s.surface.SetRect(node, r)
			}
			walk(e.Children, r)
		}
	}
	walk(s.doc.Elements, s.surface.Measure(s.surface.Root()))
}

// place returns e's absolute rectangle within parent.
func place(e *Element, parent geom.Rect) geom.Rect {
	r := e.Rect.geom()
	availW := parent.Width - r.Left
	availH := parent.Height - r.Top
	switch e.Sizing {
	case StretchWidth:
		r.Width = availW
	case StretchHeight:
		r.Height = availH
	case StretchBoth:
		r.Width, r.Height = availW, availH
	case ScaleBoth:
		if r.Width > 0 && r.Height > 0 {
			scale := min(availW/r.Width, availH/r.Height)
			r.Width *= scale
			r.Height *= scale
		}
	}
	r.Width = max(r.Width, 0)
	r.Height = max(r.Height, 0)
	return r.Translate(parent.Left, parent.Top)
}

// Document returns the scene's document.
func (s *Scene) Document() *Document {
	return s.doc
}

// Surface returns the headless surface.
func (s *Scene) Surface() *headless.Surface {
	return s.surface
}

// Tree returns the view tree.
func (s *Scene) Tree() *element.Tree {
	return s.tree
}

// View returns the view for an element id.
func (s *Scene) View(id string) (*element.View, error) {
	v, ok := s.tree.Lookup(element.ViewID(id))
	if !ok {
		return nil, errors.New("E203").WithDetailf("no element %q", id)
	}
	return v, nil
}

// Resize changes an element's declared size, lays the scene out again and
// delivers the resulting notifications.
func (s *Scene) Resize(id string, width, height float64) error {
	e, ok := s.elements[element.ViewID(id)]
	if !ok {
		return errors.New("E203").WithDetailf("no element %q", id)
	}
	e.Rect.Width = max(width, 0)
	e.Rect.Height = max(height, 0)
	s.layout()
	s.surface.Flush()
	return nil
}

// SetViewport resizes the surface root, the way a window resize would, and
// lays out stretched and scaled elements again.
func (s *Scene) SetViewport(width, height float64) {
	s.doc.Viewport = Size{Width: width, Height: height}
	s.surface.Resize(s.surface.Root(), width, height)
	s.layout()
	s.surface.Flush()
}

// Close tears down every view, children before parents.
func (s *Scene) Close() {
	views := s.tree.Views()
	for i := len(views) - 1; i >= 0; i-- {
		views[i].Teardown()
	}
}
