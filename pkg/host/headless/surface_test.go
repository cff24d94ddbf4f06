package headless

import (
	"testing"

	"github.com/vango-dev/elementview/pkg/css"
	"github.com/vango-dev/elementview/pkg/geom"
)

func TestFlushDeliversOnLaterTurn(t *testing.T) {
	s := New(800, 600)
	n := s.NewNode("plot", "div")
	s.Mount(n, nil)

	calls := 0
	s.WatchResize(n, func() { calls++ })

	s.SetRect(n, geom.Rect{Width: 100, Height: 50})
	if calls != 0 {
		t.Fatal("notifications must not be delivered synchronously")
	}
	if s.Pending() != 1 {
		t.Fatalf("Pending = %d, want 1", s.Pending())
	}
	if got := s.Flush(); got != 1 || calls != 1 {
		t.Fatalf("Flush = %d, calls = %d, want 1, 1", got, calls)
	}
	if s.Flush() != 0 {
		t.Error("second Flush should deliver nothing")
	}
}

func TestFlushCoalesces(t *testing.T) {
	s := New(800, 600)
	n := s.NewNode("plot", "div")
	calls := 0
	s.WatchResize(n, func() { calls++ })

	s.SetRect(n, geom.Rect{Width: 10})
	s.SetRect(n, geom.Rect{Width: 20})
	s.Resize(n, 30, 30)
	s.Flush()

	if calls != 1 {
		t.Errorf("expected one coalesced notification, got %d", calls)
	}
}

func TestResizePropagatesToDescendants(t *testing.T) {
	s := New(800, 600)
	parent := s.NewNode("parent", "div")
	child := s.NewNode("child", "div")
	s.Mount(parent, nil)
	s.Mount(child, parent)

	var order []string
	s.WatchResize(parent, func() { order = append(order, "parent") })
	s.WatchResize(child, func() { order = append(order, "child") })

	s.Resize(parent, 400, 300)
	s.Flush()

	if len(order) != 2 || order[0] != "parent" || order[1] != "child" {
		t.Errorf("delivery order = %v", order)
	}
}

func TestUnwatchDropsPending(t *testing.T) {
	s := New(800, 600)
	n := s.NewNode("plot", "div")
	calls := 0
	w := s.WatchResize(n, func() { calls++ })

	s.SetRect(n, geom.Rect{Width: 10})
	s.Unwatch(w)
	s.Flush()

	if calls != 0 {
		t.Errorf("unwatched callback ran %d times", calls)
	}
	if w.Active() {
		t.Error("watcher should be inactive")
	}
	if s.Watchers(n) != 0 {
		t.Errorf("Watchers = %d, want 0", s.Watchers(n))
	}
}

func TestIsDisplayed(t *testing.T) {
	s := New(800, 600)
	parent := s.NewNode("parent", "div")
	child := s.NewNode("child", "div")
	s.Mount(parent, nil)
	s.Mount(child, parent)

	if !s.IsDisplayed(child) {
		t.Fatal("child should be displayed")
	}

	s.SetDisplayed(parent, false)
	if s.IsDisplayed(child) {
		t.Error("child of a hidden parent is not displayed")
	}
	s.SetDisplayed(parent, true)

	s.ApplyStylesheets(child, []string{css.DisplayNone})
	if s.IsDisplayed(child) {
		t.Error(":host display none should hide the node")
	}
	s.Clear(child)
	if !s.IsDisplayed(child) {
		t.Error("Clear should remove the override")
	}

	s.SetStyleProperty(child, "display", "none")
	if s.IsDisplayed(child) {
		t.Error("inline display none should hide the node")
	}
}

func TestStylesheetForOtherSelectorsDoesNotHide(t *testing.T) {
	s := New(800, 600)
	n := s.NewNode("n", "div")
	s.ApplyStylesheets(n, []string{".child { display: none; }"})
	if !s.IsDisplayed(n) {
		t.Error("only :host rules hide the node itself")
	}
}

func TestStyleProperties(t *testing.T) {
	s := New(800, 600, WithStyleProperties("color", "-moz-tab-size"))
	n := s.NewNode("n", "div")
	if !s.HasStyleProperty(n, "color") || s.HasStyleProperty(n, "width") {
		t.Error("custom vocabulary not applied")
	}

	d := New(800, 600)
	if d.HasStyleProperty(n, "user-select") || !d.HasStyleProperty(n, "-webkit-user-select") {
		t.Error("default vocabulary should only know prefixed user-select")
	}
}

func TestSnapshot(t *testing.T) {
	s := New(800, 600, WithDevicePixelRatio(2))
	n := s.NewNode("n", "div")
	s.Mount(n, nil)
	s.SetRect(n, geom.Rect{Left: 1, Top: 2, Width: 3, Height: 4})
	s.SetStyleProperty(n, "color", "red")
	s.ApplyClasses(n, []string{"bk-div", "a"})
	s.ApplyStylesheets(n, []string{".a { color: blue; }"})

	st := s.Snapshot(s.Root())
	if len(st.Children) != 1 {
		t.Fatalf("root children = %d", len(st.Children))
	}
	c := st.Children[0]
	if c.Parent != "root" || c.Rect.Width != 3 || !c.Displayed {
		t.Errorf("child state = %+v", c)
	}
	if v, ok := c.StyleValue("color"); !ok || v != "red" {
		t.Errorf("color = %q, %v", v, ok)
	}
	if len(c.Classes) != 2 || len(c.Stylesheets) != 1 {
		t.Errorf("classes = %v sheets = %v", c.Classes, c.Stylesheets)
	}
	if s.DevicePixelRatio() != 2 {
		t.Errorf("DevicePixelRatio = %v", s.DevicePixelRatio())
	}
}

func TestMountMovesNode(t *testing.T) {
	s := New(800, 600)
	a := s.NewNode("a", "div")
	b := s.NewNode("b", "div")
	n := s.NewNode("n", "div")
	s.Mount(a, nil)
	s.Mount(b, nil)
	s.Mount(n, a)
	s.Mount(n, b)

	if got := s.Snapshot(a); len(got.Children) != 0 {
		t.Errorf("a should have no children after move, got %d", len(got.Children))
	}
	if got := s.Snapshot(b); len(got.Children) != 1 {
		t.Errorf("b should have one child, got %d", len(got.Children))
	}
}

func TestFlushQueuesDisplayChanges(t *testing.T) {
	s := New(800, 600)
	n := s.NewNode("n", "div")
	s.Mount(n, nil)
	calls := 0
	s.WatchResize(n, func() { calls++ })

	s.ApplyStylesheets(n, []string{css.DisplayNone})
	if s.Flush() != 1 || calls != 1 {
		t.Fatalf("hiding through a sheet should notify, calls = %d", calls)
	}

	s.Clear(n)
	s.ApplyStylesheets(n, []string{css.DisplayNone})
	if s.Flush() != 0 {
		t.Error("an unchanged displayed state should not notify")
	}

	s.Clear(n)
	s.Flush()
	if calls != 2 {
		t.Errorf("showing again should notify, calls = %d", calls)
	}
}
