package element

import (
	"fmt"
	"log/slog"

	"github.com/vango-dev/elementview/pkg/css"
	"github.com/vango-dev/elementview/pkg/export"
	"github.com/vango-dev/elementview/pkg/geom"
	"github.com/vango-dev/elementview/pkg/host"
	"github.com/vango-dev/elementview/pkg/instrument"
	"github.com/vango-dev/elementview/pkg/reactive"
)

// LevelTrace is below Debug and carries advisory style diagnostics.
const LevelTrace = slog.LevelDebug - 4

// Phase is a view's lifecycle position.
type Phase int

const (
	Uninitialized Phase = iota
	Initialized
	Rendered
	Resized
	TornDown
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case Uninitialized:
		return "uninitialized"
	case Initialized:
		return "initialized"
	case Rendered:
		return "rendered"
	case Resized:
		return "resized"
	case TornDown:
		return "torn-down"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Phase) UnmarshalText(text []byte) error {
	for candidate := Uninitialized; candidate <= TornDown; candidate++ {
		if candidate.String() == string(text) {
			*p = candidate
			return nil
		}
	}
	return fmt.Errorf("element: unknown phase %q", text)
}

// Behavior holds the hooks a concrete element kind supplies. Every field
// is optional.
type Behavior struct {
	// Stylesheets are the kind's intrinsic sheets, applied first.
	Stylesheets func(v *View) []css.Entry

	// ExtraStylesheets are applied after the intrinsic sheets, together
	// with the view's own style sheet.
	ExtraStylesheets func(v *View) []css.Entry

	// ComputedStyle runs at the start of AfterRender.
	ComputedStyle func(v *View)

	// AfterResize runs before the finish signal on every resize.
	AfterResize func(v *View)

	// Paint draws the element into a freshly allocated export target.
	Paint func(v *View, t export.Target) error
}

// Option configures a View.
type Option func(*View)

// WithParent sets the parent view used for relative geometry.
func WithParent(id ViewID) Option {
	return func(v *View) {
		v.parent = id
	}
}

// WithBehavior sets the kind's hooks.
func WithBehavior(b Behavior) Option {
	return func(v *View) {
		v.behavior = b
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(v *View) {
		if l != nil {
			v.logger = l
		}
	}
}

// WithRecorder sets the metrics and tracing recorder. A nil recorder
// disables instrumentation.
func WithRecorder(r *instrument.Recorder) Option {
	return func(v *View) {
		v.recorder = r
	}
}

// View is the live presence of a Model on a host node.
type View struct {
	id       ViewID
	kind     string
	model    *Model
	node     host.Node
	surface  host.Surface
	tree     *Tree
	parent   ViewID
	behavior Behavior

	// style holds view-computed overrides; display holds only the
	// visibility override.
	style   *css.StyleSheet
	display *css.StyleSheet

	bbox      geom.BBox
	bboxValid bool

	watcher  host.Watcher
	subs     reactive.Subscriptions
	finish   []*finishSubscriber
	finishID uint64
	phase    Phase

	logger   *slog.Logger
	recorder *instrument.Recorder
}

// ID returns the view's id.
func (v *View) ID() ViewID {
	return v.id
}

// Kind returns the element kind.
func (v *View) Kind() string {
	return v.kind
}

// Model returns the attached model.
func (v *View) Model() *Model {
	return v.model
}

// Node returns the view's host node.
func (v *View) Node() host.Node {
	return v.node
}

// Phase returns the lifecycle phase.
func (v *View) Phase() Phase {
	return v.phase
}

// StyleSheet returns the view's own override sheet. Changes take effect on
// the next Render.
func (v *View) StyleSheet() *css.StyleSheet {
	return v.style
}

// DisplaySheet returns the visibility override sheet.
func (v *View) DisplaySheet() *css.StyleSheet {
	return v.display
}

// Parent resolves the parent view through the tree.
func (v *View) Parent() (*View, bool) {
	if v.parent == "" {
		return nil, false
	}
	return v.tree.Lookup(v.parent)
}

func (v *View) rendered() bool {
	return v.phase == Rendered || v.phase == Resized
}
