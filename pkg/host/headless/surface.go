package headless

import (
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/aymerick/douceur/parser"

	"github.com/vango-dev/elementview/pkg/css"
	"github.com/vango-dev/elementview/pkg/geom"
	"github.com/vango-dev/elementview/pkg/host"
)

// Node is a headless element.
type Node struct {
	id        string
	tag       string
	parent    *Node
	children  []*Node
	rect      geom.Rect
	displayed bool
	styles    *css.Declarations
	sheets    []string
	classes   []string
}

// ID implements host.Node.
func (n *Node) ID() string {
	return n.id
}

// Tag returns the node's tag name.
func (n *Node) Tag() string {
	return n.tag
}

type watcher struct {
	id     uint64
	node   *Node
	fn     func()
	active bool

	// displayed is the node's displayed state as of the last delivery.
	displayed bool
}

// Active implements host.Watcher.
func (w *watcher) Active() bool {
	return w.active
}

// Surface is an in-memory host.Surface.
type Surface struct {
	mu sync.Mutex

	nodes    map[string]*Node
	root     *Node
	watchers map[*Node][]*watcher
	pending  []*watcher
	queued   map[*watcher]bool
	nextID   uint64

	known  map[string]bool
	ratio  float64
	logger *slog.Logger
}

var _ host.Surface = (*Surface)(nil)

// Option configures a Surface.
type Option func(*Surface)

// WithStyleProperties replaces the set of recognized style properties.
func WithStyleProperties(names ...string) Option {
	return func(s *Surface) {
		s.known = make(map[string]bool, len(names))
		for _, n := range names {
			s.known[n] = true
		}
	}
}

// WithDevicePixelRatio sets the density returned by DevicePixelRatio.
func WithDevicePixelRatio(r float64) Option {
	return func(s *Surface) {
		if r > 0 {
			s.ratio = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Surface) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a surface whose root node spans width x height.
func New(width, height float64, opts ...Option) *Surface {
	s := &Surface{
		nodes:    make(map[string]*Node),
		watchers: make(map[*Node][]*watcher),
		queued:   make(map[*watcher]bool),
		known:    make(map[string]bool, len(defaultProperties)),
		ratio:    1,
		logger:   slog.Default().With("component", "headless"),
	}
	for _, p := range defaultProperties {
		s.known[p] = true
	}
	for _, opt := range opts {
		opt(s)
	}
	s.root = &Node{
		id:        "root",
		tag:       "body",
		rect:      geom.Rect{Width: width, Height: height},
		displayed: true,
		styles:    css.NewDeclarations(),
	}
	s.nodes[s.root.id] = s.root
	return s
}

// Root returns the surface's root node.
func (s *Surface) Root() *Node {
	return s.root
}

// NewNode creates a detached, displayed node with a zero rectangle.
// An existing node with the same id is returned unchanged.
func (s *Surface) NewNode(id, tag string) *Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n, ok := s.nodes[id]; ok {
		return n
	}
	n := &Node{id: id, tag: tag, displayed: true, styles: css.NewDeclarations()}
	s.nodes[id] = n
	return n
}

// Lookup returns the node with the given id.
func (s *Surface) Lookup(id string) (*Node, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.nodes[id]
	return n, ok
}

// SetRect sets a node's absolute geometry and queues a notification for it.
func (s *Surface) SetRect(n host.Node, r geom.Rect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	node := s.node(n)
	if node == nil {
		return
	}
	node.rect = r
	s.queue(node)
}

// Resize changes a node's size and queues notifications for it and every
// descendant, whose layout follows the container.
func (s *Surface) Resize(n host.Node, width, height float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	node := s.node(n)
	if node == nil {
		return
	}
	node.rect.Width = width
	node.rect.Height = height
	s.queueTree(node)
}

// SetDisplayed flags a node as laid out or not and queues notifications
// for the subtree.
func (s *Surface) SetDisplayed(n host.Node, displayed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	node := s.node(n)
	if node == nil || node.displayed == displayed {
		return
	}
	node.displayed = displayed
	s.queueTree(node)
}

// Pending returns the number of queued notifications.
func (s *Surface) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Flush delivers queued notifications in queue order and returns how many
// callbacks ran. Watched nodes whose displayed state changed since the last
// flush, through styles or sheets, are queued first. Callbacks run without
// the surface lock held.
func (s *Surface) Flush() int {
	s.mu.Lock()
	s.queueDisplayChanges()
	batch := s.pending
	s.pending = nil
	s.queued = make(map[*watcher]bool)
	s.mu.Unlock()

	delivered := 0
	for _, w := range batch {
		if !w.Active() {
			continue
		}
		w.fn()
		delivered++
	}
	if delivered > 0 {
		s.logger.Debug("resize notifications delivered", "count", delivered)
	}
	return delivered
}

// Measure implements host.Surface.
func (s *Surface) Measure(n host.Node) geom.Rect {
	s.mu.Lock()
	defer s.mu.Unlock()
	if node := s.node(n); node != nil {
		return node.rect
	}
	return geom.Rect{}
}

// IsDisplayed implements host.Surface.
func (s *Surface) IsDisplayed(n host.Node) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.displayed(s.node(n))
}

func (s *Surface) displayed(node *Node) bool {
	if node == nil {
		return false
	}
	for ; node != nil; node = node.parent {
		if !node.displayed || hiddenByStyle(node) {
			return false
		}
	}
	return true
}

// WatchResize implements host.Surface. The first notification is queued
// immediately and delivered by the next Flush.
func (s *Surface) WatchResize(n host.Node, fn func()) host.Watcher {
	s.mu.Lock()
	defer s.mu.Unlock()
	node := s.node(n)
	s.nextID++
	w := &watcher{id: s.nextID, node: node, fn: fn, active: node != nil, displayed: s.displayed(node)}
	if node != nil {
		s.watchers[node] = append(s.watchers[node], w)
		// Observation starts with one notification for the current geometry.
		s.queued[w] = true
		s.pending = append(s.pending, w)
	}
	return w
}

// Unwatch implements host.Surface.
func (s *Surface) Unwatch(hw host.Watcher) {
	w, ok := hw.(*watcher)
	if !ok || w == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	w.active = false
	list := s.watchers[w.node]
	for i, existing := range list {
		if existing == w {
			s.watchers[w.node] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
}

// Watchers returns the number of live watchers on n.
func (s *Surface) Watchers(n host.Node) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.watchers[s.node(n)])
}

// HasStyleProperty implements host.Surface.
func (s *Surface) HasStyleProperty(_ host.Node, name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.known[name]
}

// SetStyleProperty implements host.Surface.
func (s *Surface) SetStyleProperty(n host.Node, name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if node := s.node(n); node != nil {
		node.styles.Set(name, value)
	}
}

// ApplyStylesheets implements host.Surface.
func (s *Surface) ApplyStylesheets(n host.Node, sheets []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if node := s.node(n); node != nil {
		node.sheets = append(node.sheets, sheets...)
	}
}

// ApplyClasses implements host.Surface.
func (s *Surface) ApplyClasses(n host.Node, classes []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if node := s.node(n); node != nil {
		node.classes = append([]string(nil), classes...)
	}
}

// Clear implements host.Surface.
func (s *Surface) Clear(n host.Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if node := s.node(n); node != nil {
		node.styles = css.NewDeclarations()
		node.sheets = nil
		node.classes = nil
	}
}

// Mount implements host.Surface. A nil target mounts under the root.
func (s *Surface) Mount(n host.Node, target host.Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	node := s.node(n)
	if node == nil {
		return
	}
	parent := s.root
	if target != nil {
		if t := s.node(target); t != nil {
			parent = t
		}
	}
	if node.parent != nil {
		siblings := node.parent.children
		for i, c := range siblings {
			if c == node {
				node.parent.children = append(siblings[:i:i], siblings[i+1:]...)
				break
			}
		}
	}
	node.parent = parent
	parent.children = append(parent.children, node)
}

// DevicePixelRatio implements host.Surface.
func (s *Surface) DevicePixelRatio() float64 {
	return s.ratio
}

func (s *Surface) node(n host.Node) *Node {
	if n == nil {
		return nil
	}
	if node, ok := n.(*Node); ok {
		return node
	}
	return s.nodes[n.ID()]
}

func (s *Surface) queue(node *Node) {
	for _, w := range s.watchers[node] {
		if !s.queued[w] {
			s.queued[w] = true
			s.pending = append(s.pending, w)
		}
	}
}

func (s *Surface) queueDisplayChanges() {
	var changed []*watcher
	for node, list := range s.watchers {
		now := s.displayed(node)
		for _, w := range list {
			if w.displayed != now {
				w.displayed = now
				if !s.queued[w] {
					changed = append(changed, w)
				}
			}
		}
	}
	sort.Slice(changed, func(i, j int) bool { return changed[i].id < changed[j].id })
	for _, w := range changed {
		s.queued[w] = true
		s.pending = append(s.pending, w)
	}
}

func (s *Surface) queueTree(node *Node) {
	s.queue(node)
	for _, c := range node.children {
		s.queueTree(c)
	}
}

// hiddenByStyle reports an inline display of none or a :host rule setting
// display: none in any applied sheet.
func hiddenByStyle(node *Node) bool {
	if v, ok := node.styles.Get("display"); ok && v == "none" {
		return true
	}
	for _, text := range node.sheets {
		if !strings.Contains(text, "display") {
			continue
		}
		sheet, err := parser.Parse(text)
		if err != nil {
			continue
		}
		for _, rule := range sheet.Rules {
			if !targetsHost(rule.Selectors) {
				continue
			}
			for _, d := range rule.Declarations {
				value := strings.TrimSuffix(strings.TrimSpace(d.Value), "!important")
				if d.Property == "display" && strings.TrimSpace(value) == "none" {
					return true
				}
			}
		}
	}
	return false
}

func targetsHost(selectors []string) bool {
	for _, sel := range selectors {
		if strings.TrimSpace(sel) == ":host" {
			return true
		}
	}
	return false
}
