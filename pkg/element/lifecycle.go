package element

import (
	"github.com/vango-dev/elementview/pkg/css"
	"github.com/vango-dev/elementview/pkg/host"
	"github.com/vango-dev/elementview/pkg/reactive"
)

// Finish causes reported to the recorder.
const (
	causeRender = "render"
	causeResize = "resize"
	causeManual = "manual"
)

// Initialize allocates the view's sheets, starts watching the node for
// resizes and subscribes to the model's visibility and styles.
func (v *View) Initialize() {
	if v.phase != Uninitialized {
		return
	}
	v.style = css.NewStyleSheet(string(v.id)+"-style", "")
	v.display = css.NewStyleSheet(string(v.id)+"-display", "")
	v.applyVisible(v.model.Visible.Get())

	v.watcher = v.surface.WatchResize(v.node, v.Resize)

	v.subs.Add(v.model.Visible.OnChange(func(_, visible bool) {
		v.applyVisible(visible)
		if v.rendered() {
			v.Render()
		}
	}))
	v.subs.Add(v.model.Styles.OnChange(func(_, src css.Source) {
		if v.rendered() {
			v.applyStyles(src)
		}
	}))

	v.phase = Initialized
	v.recorder.ViewInitialized()
	v.logger.Debug("view initialized")
}

// Render clears the node and applies, in order: intrinsic sheets, extra
// sheets with the view's own sheet, model sheets, inline styles, classes,
// and the display override. Each sheet step is a single ApplyStylesheets
// call so later steps win.
func (v *View) Render() {
	if v.phase == Uninitialized || v.phase == TornDown {
		return
	}
	span := v.recorder.Start("render", v.kind, string(v.id))

	v.surface.Clear(v.node)
	layers := v.sheetLayers()
	v.surface.ApplyStylesheets(v.node, layers[0])
	v.surface.ApplyStylesheets(v.node, layers[1])
	v.surface.ApplyStylesheets(v.node, layers[2])
	v.applyStyles(v.model.Styles.Get())
	v.surface.ApplyClasses(v.node, v.Classes())
	v.surface.ApplyStylesheets(v.node, layers[3])

	v.phase = Rendered
	v.recorder.Render(v.kind)
	span.End(nil)
}

// RenderTo mounts the node under target, renders, and runs AfterRender.
// A nil target means the surface's root.
func (v *View) RenderTo(target host.Node) {
	if v.phase == Uninitialized || v.phase == TornDown {
		return
	}
	v.surface.Mount(v.node, target)
	v.Render()
	v.AfterRender()
}

// AfterRender runs the ComputedStyle hook. A node that is not displayed
// gets a zero box and the finish signal right away, since no resize
// notification will follow.
func (v *View) AfterRender() {
	if v.behavior.ComputedStyle != nil {
		v.behavior.ComputedStyle(v)
	}
	if !v.surface.IsDisplayed(v.node) {
		v.invalidate()
		v.afterResize(causeRender)
	}
}

// Resize is the surface's resize callback. It invalidates the bounding
// box, runs the AfterResize hook and fires the finish signal.
func (v *View) Resize() {
	if v.phase == Uninitialized || v.phase == TornDown {
		return
	}
	span := v.recorder.Start("resize", v.kind, string(v.id))
	v.invalidate()
	if v.rendered() {
		v.phase = Resized
	}
	v.recorder.Resize(v.kind)
	v.afterResize(causeResize)
	span.End(nil)
}

// AfterResize runs the AfterResize hook and fires the finish signal.
func (v *View) AfterResize() {
	v.afterResize(causeManual)
}

func (v *View) afterResize(cause string) {
	if v.behavior.AfterResize != nil {
		v.behavior.AfterResize(v)
	}
	v.notifyFinish(cause)
}

// Finish fires the finish signal: the view's visual and geometric state
// is stable.
func (v *View) Finish() {
	v.notifyFinish(causeManual)
}

func (v *View) notifyFinish(cause string) {
	subs := make([]*finishSubscriber, len(v.finish))
	copy(subs, v.finish)
	for _, s := range subs {
		s.fn(v)
	}
	v.recorder.Finish(v.kind, cause)
	v.logger.Debug("view finished", "cause", cause, "bbox", v.bbox)
}

// OnFinish registers fn to run on every finish signal.
func (v *View) OnFinish(fn func(*View)) reactive.Subscription {
	v.finishID++
	s := &finishSubscriber{id: v.finishID, fn: fn, view: v}
	v.finish = append(v.finish, s)
	return s
}

// Teardown releases the resize watcher, then the model subscriptions and
// finish subscribers, clears the sheets and detaches the view from its
// tree. Calling it again does nothing.
func (v *View) Teardown() {
	if v.phase == TornDown {
		return
	}
	if v.watcher != nil {
		v.surface.Unwatch(v.watcher)
		v.watcher = nil
	}
	v.subs.CancelAll()
	v.finish = nil
	if v.style != nil {
		v.style.Clear()
		v.display.Clear()
	}

	live := v.phase != Uninitialized
	v.phase = TornDown
	v.tree.detach(v.id)
	if live {
		v.recorder.ViewTornDown()
	}
	v.logger.Debug("view torn down")
}
