// Package element binds a declarative element model to a live node on a
// host surface.
//
// A View composes the model's stylesheets, inline styles and classes onto
// its node in a fixed order, tracks the node's bounding box relative to its
// parent, and can export its current size to an offscreen target:
//
//	tree := element.NewTree(surface)
//	model := element.NewModel()
//	model.Classes.Set([]string{"primary"})
//
//	view, err := tree.Attach(model, "button", node)
//	if err != nil {
//		return err
//	}
//	view.Initialize()
//	view.RenderTo(nil)
//
// # Lifecycle
//
// A view moves through Uninitialized, Initialized, Rendered and Resized
// before Teardown. Resize notifications from the surface invalidate the
// cached bounding box and end with the finish signal observed through
// OnFinish. Teardown releases the resize watcher before anything else.
//
// # Threading
//
// Views are not safe for concurrent use. All calls, including surface
// callbacks, are expected on one goroutine.
package element
