package ui

import (
	"github.com/hubastard/arbor/engine/core"
	"github.com/hubastard/arbor/engine/geom"
)

type GrabState uint8

const (
	NoGrab GrabState = iota
	GrabbedInside
	GrabbedOutside
)

func (g GrabState) String() string {
	switch g {
	case NoGrab:
		return "NoGrab"
	case GrabbedInside:
		return "GrabbedInside"
	case GrabbedOutside:
		return "GrabbedOutside"
	default:
		return "GrabState(?)"
	}
}

// PrimaryButton is the only button with grab semantics.
const PrimaryButton = core.MouseButtonLeft

// Router routes pointer and keyboard input through a solved Tree and keeps the
// hover chain and grab state between events.
type Router struct {
	tree   *Tree
	layout *Layout
	ex     *Executor

	hierarchy []NodeID // root first, deepest hovered node last
	active    NodeID
	grab      GrabState

	cursor    geom.Point
	hasCursor bool
	redraw    bool
}

func NewRouter() *Router { return &Router{active: NoNode} }

// Attach switches the router to a freshly solved tree. Hover, active node and
// grab are reset, then hover is recomputed at the last known pointer position.
func (r *Router) Attach(t *Tree, l *Layout, ex *Executor) {
	r.tree, r.layout, r.ex = t, l, ex
	r.hierarchy = r.hierarchy[:0]
	r.active = NoNode
	r.grab = NoGrab
	r.syncHover()
}

func (r *Router) State() GrabState { return r.grab }
func (r *Router) Active() NodeID   { return r.active }

// Hierarchy returns a copy of the hovered chain, root first.
func (r *Router) Hierarchy() []NodeID { return append([]NodeID(nil), r.hierarchy...) }

// Hovered returns the deepest hovered node.
func (r *Router) Hovered() NodeID {
	if len(r.hierarchy) == 0 {
		return NoNode
	}
	return r.hierarchy[len(r.hierarchy)-1]
}

// Cursor returns the last pointer position and whether the pointer is inside the surface.
func (r *Router) Cursor() (geom.Point, bool) { return r.cursor, r.hasCursor }

// TakeRedraw reports whether a callback asked for a redraw since the last call.
func (r *Router) TakeRedraw() bool {
	d := r.redraw
	r.redraw = false
	return d
}

func (r *Router) CursorMoved(p geom.Point) {
	r.cursor, r.hasCursor = p, true
	if r.tree == nil {
		return
	}
	switch r.grab {
	case NoGrab:
		r.syncHover()
	case GrabbedInside:
		if !r.contains(r.active, p) {
			r.call(r.active, leaveEvent)
			r.grab = GrabbedOutside
		}
	case GrabbedOutside:
		if r.contains(r.active, p) {
			r.call(r.active, enterEvent)
			r.grab = GrabbedInside
		}
	}
}

// CursorLeft is called when the pointer leaves the surface entirely.
func (r *Router) CursorLeft() {
	r.hasCursor = false
	if r.tree == nil {
		return
	}
	switch r.grab {
	case NoGrab:
		r.syncHover()
	case GrabbedInside:
		r.call(r.active, leaveEvent)
		r.grab = GrabbedOutside
	}
}

func (r *Router) Press(button core.MouseButton) {
	if r.tree == nil {
		return
	}
	if button != PrimaryButton {
		r.button(ButtonEvent{Button: button, Down: true, Pos: r.cursor})
		return
	}
	if r.grab != NoGrab {
		return
	}
	for id := r.Hovered(); id != NoNode; id = r.tree.Parent[id] {
		if r.call(id, pressEvent) != NotHandled {
			r.active = id
			r.grab = GrabbedInside
			return
		}
	}
}

func (r *Router) Release(button core.MouseButton) {
	if r.tree == nil {
		return
	}
	if button != PrimaryButton {
		r.button(ButtonEvent{Button: button, Down: false, Pos: r.cursor})
		return
	}
	switch r.grab {
	case NoGrab:
		return
	case GrabbedInside:
		r.call(r.active, releaseEvent)
	case GrabbedOutside:
		r.dropActive()
	}
	r.grab = NoGrab
	r.active = NoNode
	r.syncHover()
}

// Key delivers ev to the grabbing node, or the deepest hovered one, bubbling up
// until a node handles it.
func (r *Router) Key(ev core.EventKey) {
	if r.tree == nil {
		return
	}
	start := r.Hovered()
	if r.grab != NoGrab {
		start = r.active
	}
	for id := start; id != NoNode; id = r.tree.Parent[id] {
		h, ok := r.tree.Nodes[id].(KeyHandler)
		if !ok {
			continue
		}
		if r.note(h.OnKey(r.ex, ev)) != NotHandled {
			return
		}
	}
}

func (r *Router) button(ev ButtonEvent) {
	for id := r.Hovered(); id != NoNode; id = r.tree.Parent[id] {
		h, ok := r.tree.Nodes[id].(ButtonHandler)
		if !ok {
			continue
		}
		if r.note(h.OnButton(r.ex, ev)) != NotHandled {
			return
		}
	}
}

// syncHover leaves every hovered node the pointer is no longer over, deepest
// first, then descends from what remains into the first child, in declaration
// order, that contains the pointer.
func (r *Router) syncHover() {
	for len(r.hierarchy) > 0 {
		top := r.hierarchy[len(r.hierarchy)-1]
		if r.hasCursor && r.contains(top, r.cursor) {
			break
		}
		r.hierarchy = r.hierarchy[:len(r.hierarchy)-1]
		r.call(top, leaveEvent)
	}
	if !r.hasCursor || r.tree == nil {
		return
	}
	candidates := r.tree.Roots
	if id := r.Hovered(); id != NoNode {
		candidates = r.tree.Children[id]
	}
	for {
		next := NoNode
		for _, c := range candidates {
			if r.contains(c, r.cursor) {
				next = c
				break
			}
		}
		if next == NoNode {
			return
		}
		r.hierarchy = append(r.hierarchy, next)
		r.call(next, enterEvent)
		candidates = r.tree.Children[next]
	}
}

// dropActive forgets the grabbing node after a release outside of it. The node
// already got its leave when the pointer crossed out; nodes hovered below it
// get theirs now.
func (r *Router) dropActive() {
	at := -1
	for i, id := range r.hierarchy {
		if id == r.active {
			at = i
			break
		}
	}
	if at < 0 {
		return
	}
	for len(r.hierarchy) > at+1 {
		top := r.hierarchy[len(r.hierarchy)-1]
		r.hierarchy = r.hierarchy[:len(r.hierarchy)-1]
		r.call(top, leaveEvent)
	}
	r.hierarchy = r.hierarchy[:at]
}

func (r *Router) contains(id NodeID, p geom.Point) bool {
	return r.layout.Bounds(id).Contains(p)
}

type routedEvent uint8

const (
	pressEvent routedEvent = iota
	releaseEvent
	enterEvent
	leaveEvent
)

func (r *Router) call(id NodeID, ev routedEvent) EventResponse {
	w := r.tree.Nodes[id]
	resp := NotHandled
	switch ev {
	case pressEvent:
		if h, ok := w.(PressHandler); ok {
			resp = h.OnPress(r.ex)
		}
	case releaseEvent:
		if h, ok := w.(ReleaseHandler); ok {
			resp = h.OnRelease(r.ex)
		}
	case enterEvent:
		if h, ok := w.(CursorEnterHandler); ok {
			resp = h.OnCursorEnter(r.ex)
		}
	case leaveEvent:
		if h, ok := w.(CursorLeaveHandler); ok {
			resp = h.OnCursorLeave(r.ex)
		}
	}
	return r.note(resp)
}

func (r *Router) note(resp EventResponse) EventResponse {
	if resp == HandledRedraw {
		r.redraw = true
	}
	return resp
}
