package ui

import (
	"github.com/hubastard/arbor/engine/core"
	"github.com/hubastard/arbor/engine/geom"
)

// Position is a node's offset from its parent's content origin, plus the elevation
// it adds on top of the parent for stacking.
type Position struct {
	X, Y      float32
	Elevation float32
}

func (p Position) Point() geom.Point { return geom.Pt(p.X, p.Y) }

// ElevationStep is the elevation containers give a child so it draws above them.
const ElevationStep float32 = 1

// Widget is the capability every node of a Tree implements.
//
// During a solve a node first receives Constraint, then, if it has children, one
// ChildConstraint/PlaceChild pair per child in declaration order. Size is only
// meaningful after that.
type Widget interface {
	Constraint(c geom.Constraint)
	// ChildConstraint returns the box for the next child to be placed, or false to
	// hand the child the node's own constraint.
	ChildConstraint() (geom.Constraint, bool)
	// PlaceChild positions a solved child. childElevation is the highest elevation
	// found inside the child's subtree, relative to the child.
	PlaceChild(child geom.Size, childElevation float32) Position
	Size() geom.Size
	// Draw emits primitives in node-local coordinates.
	Draw(b *DrawBuilder)
}

// Expander is implemented by composite widgets that inject synthetic children.
// Expand runs once, right after the node is declared and before its own children.
type Expander interface {
	Expand() []Widget
}

// ResourceBinder is implemented by widgets that measure text or images. The
// Builder binds its Resources when the widget is declared, before Expand.
type ResourceBinder interface {
	BindResources(res Resources)
}

type EventResponse uint8

const (
	NotHandled EventResponse = iota
	Handled
	HandledRedraw
)

type PressHandler interface {
	OnPress(ex *Executor) EventResponse
}

type ReleaseHandler interface {
	OnRelease(ex *Executor) EventResponse
}

type CursorEnterHandler interface {
	OnCursorEnter(ex *Executor) EventResponse
}

type CursorLeaveHandler interface {
	OnCursorLeave(ex *Executor) EventResponse
}

// KeyHandler receives keyboard events. Keys never grab.
type KeyHandler interface {
	OnKey(ex *Executor, ev core.EventKey) EventResponse
}

// ButtonEvent is a non-primary mouse button edge.
type ButtonEvent struct {
	Button core.MouseButton
	Down   bool
	Pos    geom.Point
}

// ButtonHandler receives secondary and middle button edges, without grab semantics.
type ButtonHandler interface {
	OnButton(ex *Executor, ev ButtonEvent) EventResponse
}

// Leaf supplies the child-related half of Widget for nodes that never have children.
type Leaf struct{}

func (Leaf) ChildConstraint() (geom.Constraint, bool) { return geom.Constraint{}, false }

func (Leaf) PlaceChild(geom.Size, float32) Position {
	panic("ui: PlaceChild called on a leaf widget")
}

// Sized is a helper for widgets that must not report a size before being constrained.
type Sized struct {
	size geom.Size
	set  bool
}

func (s *Sized) SetSize(sz geom.Size) { s.size, s.set = sz, true }

func (s *Sized) Size() geom.Size {
	if !s.set {
		panic("ui: Size queried before the widget was constrained")
	}
	return s.size
}
