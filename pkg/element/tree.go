package element

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/vango-dev/elementview/pkg/host"
	"github.com/vango-dev/elementview/pkg/instrument"
)

// ViewID identifies a view within a Tree. It is the id of the view's node.
type ViewID string

var (
	// ErrDuplicateView is returned when a node already has a view.
	ErrDuplicateView = errors.New("element: node already has a view")

	// ErrUnknownParent is returned when WithParent names no attached view.
	ErrUnknownParent = errors.New("element: parent view not attached")
)

// Tree owns the views rendered on one surface. Views refer to their parent
// by id and resolve it through the tree, so a torn down parent is simply
// absent.
type Tree struct {
	surface host.Surface
	views   map[ViewID]*View
	order   []ViewID
}

// NewTree creates an empty tree for surface.
func NewTree(surface host.Surface) *Tree {
	return &Tree{
		surface: surface,
		views:   make(map[ViewID]*View),
	}
}

// Surface returns the tree's surface.
func (t *Tree) Surface() host.Surface {
	return t.surface
}

// Attach creates an uninitialized view of kind for model on node.
func (t *Tree) Attach(model *Model, kind string, node host.Node, opts ...Option) (*View, error) {
	if model == nil || node == nil {
		return nil, fmt.Errorf("element: attach %q: model and node are required", kind)
	}
	id := ViewID(node.ID())
	if _, ok := t.views[id]; ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateView, id)
	}

	v := &View{
		id:       id,
		kind:     kind,
		model:    model,
		node:     node,
		surface:  t.surface,
		tree:     t,
		logger:   slog.Default().With("component", "element"),
		recorder: instrument.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.parent != "" {
		if _, ok := t.views[v.parent]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownParent, v.parent)
		}
	}
	v.logger = v.logger.With("view", string(id), "kind", kind)

	t.views[id] = v
	t.order = append(t.order, id)
	return v, nil
}

// Lookup returns the view with id.
func (t *Tree) Lookup(id ViewID) (*View, bool) {
	v, ok := t.views[id]
	return v, ok
}

// Views returns the attached views in attach order.
func (t *Tree) Views() []*View {
	out := make([]*View, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.views[id])
	}
	return out
}

// Children returns the attached views whose parent is id, in attach order.
func (t *Tree) Children(id ViewID) []*View {
	var out []*View
	for _, cid := range t.order {
		if v := t.views[cid]; v.parent == id {
			out = append(out, v)
		}
	}
	return out
}

// Len returns the number of attached views.
func (t *Tree) Len() int {
	return len(t.order)
}

func (t *Tree) detach(id ViewID) {
	if _, ok := t.views[id]; !ok {
		return
	}
	delete(t.views, id)
	for i, existing := range t.order {
		if existing == id {
			t.order = append(t.order[:i:i], t.order[i+1:]...)
			break
		}
	}
}
