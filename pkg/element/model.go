package element

import (
	"github.com/vango-dev/elementview/pkg/css"
	"github.com/vango-dev/elementview/pkg/reactive"
)

// Model is the declarative state of an element. It outlives any View and
// may be attached to a new one.
type Model struct {
	// Visible hides the element with an overriding display rule when false.
	Visible *reactive.Signal[bool]

	// Classes are appended after the structural class, in order.
	Classes *reactive.Signal[[]string]

	// Styles are applied as inline style properties.
	Styles *reactive.Signal[css.Source]

	// Stylesheets are rendered after the view's own sheets.
	Stylesheets *reactive.Signal[[]css.Entry]
}

// NewModel returns a visible model with no classes, styles or sheets.
func NewModel() *Model {
	return &Model{
		Visible:     reactive.NewSignal(true),
		Classes:     reactive.NewSignal[[]string](nil),
		Styles:      reactive.NewSignal[css.Source](css.NewDeclarations()),
		Stylesheets: reactive.NewSignal[[]css.Entry](nil),
	}
}
