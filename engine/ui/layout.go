package ui

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/hubastard/arbor/engine/geom"
)

// RootElevationStep separates consecutive roots: every root starts above the
// highest elevation reached inside the roots declared before it.
const RootElevationStep float32 = 1

// Layout is the solved geometry of a Tree, indexed by NodeID.
type Layout struct {
	Sizes     []geom.Size
	Local     []Position
	Absolute  []geom.Point
	Elevation []float32 // absolute
}

// Bounds is the node's absolute box.
func (l *Layout) Bounds(id NodeID) geom.Rect {
	return geom.RectFrom(l.Absolute[id], l.Sizes[id])
}

type solveFrame struct {
	id         NodeID
	constraint geom.Constraint
	maxElev    float32 // highest elevation inside the subtree, relative to the node
}

// Solve lays out t inside root. Constraints flow down as nodes are pushed and
// sizes flow up as they are popped; the push/pop order is replayed from the
// preorder ids and Postorder alone.
func Solve(t *Tree, root geom.Size) *Layout {
	n := t.Len()
	l := &Layout{
		Sizes:     make([]geom.Size, n),
		Local:     make([]Position, n),
		Absolute:  make([]geom.Point, n),
		Elevation: make([]float32, n),
	}
	rootConstraint := geom.Bounded(root.W, root.H)
	stack := make([]solveFrame, 0, 16)
	next := 0
	var rootElev float32

	pop := func() {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		next++
		size := t.Nodes[f.id].Size()
		l.Sizes[f.id] = size
		p := t.Parent[f.id]
		if p == NoNode {
			l.Local[f.id] = Position{Elevation: rootElev}
			rootElev += f.maxElev + RootElevationStep
			return
		}
		parent := &stack[len(stack)-1]
		pos := t.Nodes[p].PlaceChild(size, f.maxElev)
		l.Local[f.id] = pos
		parent.maxElev = math32.Max(parent.maxElev, pos.Elevation+f.maxElev)
	}

	for i := 0; i < n; i++ {
		id := NodeID(i)
		for len(stack) > 0 && next < n && t.Postorder[next] == stack[len(stack)-1].id {
			pop()
		}
		parent := t.Parent[id]
		var c geom.Constraint
		if parent == NoNode {
			if len(stack) != 0 {
				panic(fmt.Sprintf("ui: root %d reached while node %d is open", id, stack[len(stack)-1].id))
			}
			c = rootConstraint
		} else {
			if len(stack) == 0 || stack[len(stack)-1].id != parent {
				panic(fmt.Sprintf("ui: node %d reached outside its parent %d", id, parent))
			}
			c = stack[len(stack)-1].constraint
			if cc, ok := t.Nodes[parent].ChildConstraint(); ok {
				c = cc
			}
		}
		t.Nodes[id].Constraint(c)
		stack = append(stack, solveFrame{id: id, constraint: c})
	}
	for len(stack) > 0 {
		pop()
	}

	l.ResolveAbsolute(t)
	return l
}

// ResolveAbsolute recomputes absolute positions and elevations from the local
// ones. Preorder ids guarantee parents are resolved before their children.
func (l *Layout) ResolveAbsolute(t *Tree) {
	for i := range t.Nodes {
		id := NodeID(i)
		loc := l.Local[id]
		p := t.Parent[id]
		if p == NoNode {
			l.Absolute[id] = loc.Point()
			l.Elevation[id] = loc.Elevation
			continue
		}
		l.Absolute[id] = l.Absolute[p].Add(loc.Point())
		l.Elevation[id] = l.Elevation[p] + loc.Elevation
	}
}
