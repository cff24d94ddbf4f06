package element

import "github.com/vango-dev/elementview/pkg/geom"

// State is the serializable snapshot of a view.
type State struct {
	ID      ViewID    `json:"id"`
	Kind    string    `json:"kind"`
	Parent  ViewID    `json:"parent,omitempty"`
	Phase   Phase     `json:"state"`
	Visible bool      `json:"visible"`
	Classes []string  `json:"classes"`
	BBox    geom.BBox `json:"bbox"`
}

// SerializableState snapshots the view. The only side effect is filling a
// stale bounding box.
func (v *View) SerializableState() State {
	return State{
		ID:      v.id,
		Kind:    v.kind,
		Parent:  v.parent,
		Phase:   v.phase,
		Visible: v.model.Visible.Get(),
		Classes: v.Classes(),
		BBox:    v.BBox(),
	}
}
