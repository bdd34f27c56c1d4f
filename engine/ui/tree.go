package ui

import (
	"errors"
	"fmt"
)

// NodeID indexes a node inside one Tree. Ids are dense and assigned in preorder.
type NodeID int32

const NoNode NodeID = -1

var ErrInvalidTree = errors.New("ui: invalid tree")

// Tree is the explicit form of one declaration pass.
type Tree struct {
	Nodes     []Widget
	Parent    []NodeID
	Children  [][]NodeID
	Depth     []int
	Postorder []NodeID
	Roots     []NodeID

	callbacks []callback
}

func (t *Tree) Len() int { return len(t.Nodes) }

func (t *Tree) Widget(id NodeID) Widget { return t.Nodes[id] }

// Ancestors returns the chain from id up to its root, id first.
func (t *Tree) Ancestors(id NodeID) []NodeID {
	var out []NodeID
	for ; id != NoNode; id = t.Parent[id] {
		out = append(out, id)
	}
	return out
}

// Validate checks the forest and traversal invariants.
func (t *Tree) Validate() error {
	n := len(t.Nodes)
	if len(t.Parent) != n || len(t.Children) != n || len(t.Depth) != n || len(t.Postorder) != n {
		return fmt.Errorf("%w: table lengths differ from %d nodes", ErrInvalidTree, n)
	}
	roots := 0
	for id := 0; id < n; id++ {
		p := t.Parent[id]
		if p == NoNode {
			roots++
			if t.Depth[id] != 0 {
				return fmt.Errorf("%w: root %d has depth %d", ErrInvalidTree, id, t.Depth[id])
			}
			continue
		}
		if p < 0 || int(p) >= id {
			return fmt.Errorf("%w: node %d has parent %d outside preorder", ErrInvalidTree, id, p)
		}
		if t.Depth[id] != t.Depth[p]+1 {
			return fmt.Errorf("%w: node %d depth %d under parent depth %d", ErrInvalidTree, id, t.Depth[id], t.Depth[p])
		}
		found := 0
		for _, c := range t.Children[p] {
			if int(c) == id {
				found++
			}
		}
		if found != 1 {
			return fmt.Errorf("%w: node %d listed %d times under parent %d", ErrInvalidTree, id, found, p)
		}
	}
	if roots != len(t.Roots) {
		return fmt.Errorf("%w: %d parentless nodes but %d roots", ErrInvalidTree, roots, len(t.Roots))
	}
	for id, kids := range t.Children {
		for _, c := range kids {
			if c < 0 || int(c) >= n || t.Parent[c] != NodeID(id) {
				return fmt.Errorf("%w: child %d of %d does not point back", ErrInvalidTree, c, id)
			}
		}
	}
	at := make([]int, n)
	for i := range at {
		at[i] = -1
	}
	for i, id := range t.Postorder {
		if id < 0 || int(id) >= n || at[id] != -1 {
			return fmt.Errorf("%w: postorder entry %d (%d) is out of range or repeated", ErrInvalidTree, i, id)
		}
		at[id] = i
	}
	for id, kids := range t.Children {
		for _, c := range kids {
			if at[c] > at[id] {
				return fmt.Errorf("%w: node %d precedes its child %d in postorder", ErrInvalidTree, id, c)
			}
		}
	}
	return nil
}

// Builder captures declaration calls into a Tree. It is threaded explicitly
// through the declaring code; only one build may use it at a time.
type Builder struct {
	tree  *Tree
	stack []NodeID
	res   Resources
}

type BuildOption func(*Builder)

// WithResources makes res available to widgets through Builder.Resources.
func WithResources(res Resources) BuildOption {
	return func(b *Builder) {
		if res != nil {
			b.res = res
		}
	}
}

// ProduceTree runs declare once and returns the captured Tree.
func ProduceTree(declare func(b *Builder), opts ...BuildOption) *Tree {
	b := &Builder{tree: &Tree{}, res: NoResources{}}
	for _, opt := range opts {
		opt(b)
	}
	declare(b)
	if len(b.stack) != 0 {
		panic(fmt.Sprintf("ui: declaration finished with %d open scopes", len(b.stack)))
	}
	return b.tree
}

func (b *Builder) Resources() Resources { return b.res }

// Parent returns the node currently being declared into, or NoNode at root level.
func (b *Builder) Parent() NodeID {
	if len(b.stack) == 0 {
		return NoNode
	}
	return b.stack[len(b.stack)-1]
}

// Add declares w, runs children inside its scope and closes it again, even if a
// child panics.
func (b *Builder) Add(w Widget, children ...func()) NodeID {
	s := b.Begin(w)
	defer s.End()
	for _, child := range children {
		child()
	}
	return s.ID()
}

// Begin opens a scope for w. The caller must End it; prefer Add when the
// children fit in a closure.
func (b *Builder) Begin(w Widget) *Scope {
	if w == nil {
		panic("ui: declared a nil widget")
	}
	t := b.tree
	id := NodeID(len(t.Nodes))
	parent := b.Parent()
	depth := 0
	if parent != NoNode {
		depth = t.Depth[parent] + 1
		t.Children[parent] = append(t.Children[parent], id)
	} else {
		t.Roots = append(t.Roots, id)
	}
	t.Nodes = append(t.Nodes, w)
	t.Parent = append(t.Parent, parent)
	t.Children = append(t.Children, nil)
	t.Depth = append(t.Depth, depth)
	b.stack = append(b.stack, id)

	s := &Scope{b: b, id: id}
	if rb, ok := w.(ResourceBinder); ok {
		rb.BindResources(b.res)
	}
	if e, ok := w.(Expander); ok {
		for _, synthetic := range e.Expand() {
			b.Add(synthetic)
		}
	}
	return s
}

func (b *Builder) register(fn callback) CallbackID {
	b.tree.callbacks = append(b.tree.callbacks, fn)
	return CallbackID(len(b.tree.callbacks))
}

// Scope is an open declaration. End pops it.
type Scope struct {
	b     *Builder
	id    NodeID
	ended bool
}

func (s *Scope) ID() NodeID { return s.id }

// End closes the scope. Calling it twice is a no-op; closing out of order panics.
func (s *Scope) End() {
	if s.ended {
		return
	}
	b := s.b
	if top := b.Parent(); top != s.id {
		panic(fmt.Sprintf("ui: scope %d ended while %d is still open", s.id, top))
	}
	b.stack = b.stack[:len(b.stack)-1]
	b.tree.Postorder = append(b.tree.Postorder, s.id)
	s.ended = true
}
