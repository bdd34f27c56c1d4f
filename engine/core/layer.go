package core

// Layer is one slice of the frame: the game view, a UI overlay, a debug panel.
type Layer interface {
	OnAttach(e *Engine)
	OnDetach(e *Engine)
	OnUpdate(e *Engine, dt float64)
	OnRender(e *Engine, alpha float64)
	OnEvent(e *Engine, ev Event) bool // return true if handled; propagation stops
}

// LayerStack renders bottom to top and offers events top to bottom.
type LayerStack struct{ list []Layer }

func (ls *LayerStack) Push(l Layer) { ls.list = append(ls.list, l) }

func (ls *LayerStack) Pop() (Layer, bool) {
	if len(ls.list) == 0 {
		return nil, false
	}
	i := len(ls.list) - 1
	l := ls.list[i]
	ls.list = ls.list[:i]
	return l, true
}

func (ls *LayerStack) Len() int { return len(ls.list) }

func (ls *LayerStack) ForEach(f func(Layer)) {
	for _, l := range ls.list {
		f(l)
	}
}

// Dispatch offers ev to the layers from the top down and reports whether one
// handled it.
func (ls *LayerStack) Dispatch(e *Engine, ev Event) bool {
	for i := len(ls.list) - 1; i >= 0; i-- {
		if ls.list[i].OnEvent(e, ev) {
			return true
		}
	}
	return false
}
