package headless

import (
	"github.com/vango-dev/elementview/pkg/geom"
	"github.com/vango-dev/elementview/pkg/host"
)

// Style is one applied inline style property.
type Style struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NodeState is a copy of everything rendered onto a node.
type NodeState struct {
	ID          string      `json:"id"`
	Tag         string      `json:"tag"`
	Parent      string      `json:"parent,omitempty"`
	Rect        geom.Rect   `json:"rect"`
	Displayed   bool        `json:"displayed"`
	Classes     []string    `json:"classes"`
	Styles      []Style     `json:"styles"`
	Stylesheets []string    `json:"stylesheets"`
	Children    []NodeState `json:"children,omitempty"`
}

// Snapshot returns the rendered state of n and its subtree.
func (s *Surface) Snapshot(n host.Node) NodeState {
	displayed := s.IsDisplayed(n)

	s.mu.Lock()
	node := s.node(n)
	if node == nil {
		s.mu.Unlock()
		return NodeState{}
	}
	st := NodeState{
		ID:          node.id,
		Tag:         node.tag,
		Rect:        node.rect,
		Displayed:   displayed,
		Classes:     append([]string(nil), node.classes...),
		Stylesheets: append([]string(nil), node.sheets...),
	}
	if node.parent != nil {
		st.Parent = node.parent.id
	}
	for _, k := range node.styles.Keys() {
		v, _ := node.styles.Get(k)
		value, _ := v.(string)
		st.Styles = append(st.Styles, Style{Name: k, Value: value})
	}
	children := append([]*Node(nil), node.children...)
	s.mu.Unlock()

	for _, c := range children {
		st.Children = append(st.Children, s.Snapshot(c))
	}
	return st
}

// StyleValue returns an applied inline style property.
func (st NodeState) StyleValue(name string) (string, bool) {
	for _, p := range st.Styles {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}
