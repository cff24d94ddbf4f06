// Package host defines the narrow surface an element view drives: geometry
// queries, resize watching, and style/class/stylesheet application.
//
// Implementations own their node trees and event loop. Resize callbacks
// must be delivered on a later turn than the change that caused them, never
// from inside a Surface call made by the view.
package host

import "github.com/vango-dev/elementview/pkg/geom"

// Node is an opaque handle to a live element on a surface.
type Node interface {
	ID() string
}

// Watcher is the handle returned by WatchResize.
type Watcher interface {
	// Active reports whether the watcher still delivers notifications.
	Active() bool
}

// Surface is the host environment an element view renders into.
type Surface interface {
	// Measure returns the node's geometry in the surface's global space.
	Measure(n Node) geom.Rect

	// IsDisplayed reports whether the node currently occupies layout space.
	IsDisplayed(n Node) bool

	// WatchResize registers fn to run after the node's geometry changes.
	WatchResize(n Node, fn func()) Watcher

	// Unwatch releases a watcher. Pending notifications are dropped.
	Unwatch(w Watcher)

	// HasStyleProperty reports whether name is a recognized inline style
	// property.
	HasStyleProperty(n Node, name string) bool

	// SetStyleProperty assigns an inline style property.
	SetStyleProperty(n Node, name, value string)

	// ApplyStylesheets appends stylesheet texts; later texts win.
	ApplyStylesheets(n Node, sheets []string)

	// ApplyClasses sets the node's class list, in order.
	ApplyClasses(n Node, classes []string)

	// Clear removes previously rendered styles, sheets and classes.
	Clear(n Node)

	// Mount attaches n under target.
	Mount(n Node, target Node)

	// DevicePixelRatio is the density multiplier used by hidpi exports.
	DevicePixelRatio() float64
}
