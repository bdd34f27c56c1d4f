package ui

import (
	"log/slog"
	"reflect"

	"github.com/hubastard/arbor/engine/core"
	"github.com/hubastard/arbor/engine/geom"
	"github.com/hubastard/arbor/engine/gfx/renderer2d"
	"github.com/hubastard/arbor/engine/profiler"
	"github.com/mohae/deepcopy"
)

// BuildFunc declares the interface for one snapshot of the application state.
type BuildFunc[S any] func(b *Builder, s S)

type Options struct {
	Viewport  geom.Size
	Resources Resources
	Logger    *slog.Logger
}

// GuiContext owns the application state, the current Tree and its layout, the
// input router and the cached render commands. Not safe for concurrent use.
type GuiContext[S any] struct {
	state    S
	snapshot S
	build    BuildFunc[S]
	equal    func(a, b S) bool
	clone    func(s S) S

	res      Resources
	log      *slog.Logger
	viewport geom.Size

	tree   *Tree
	layout *Layout
	router *Router
	exec   *Executor
	post   PostBox

	batches  []renderer2d.RenderCommand
	dirty    bool
	rebuilds int
}

// NewGuiContext builds the first Tree for state right away.
func NewGuiContext[S any](state S, build BuildFunc[S], opts Options) *GuiContext[S] {
	g := &GuiContext[S]{
		state:    state,
		build:    build,
		equal:    func(a, b S) bool { return reflect.DeepEqual(a, b) },
		clone:    deepClone[S],
		res:      opts.Resources,
		log:      opts.Logger,
		viewport: opts.Viewport,
		router:   NewRouter(),
	}
	if g.res == nil {
		g.res = NoResources{}
	}
	if g.log == nil {
		g.log = slog.Default()
	}
	g.Rebuild()
	return g
}

// SetEqual replaces the state comparison used by Update.
func (g *GuiContext[S]) SetEqual(eq func(a, b S) bool) { g.equal = eq }

// SetClone replaces the deep copy taken of the state at every rebuild. The
// snapshot must not share slices, maps or pointers with the live state. The
// default copies exported fields only.
func (g *GuiContext[S]) SetClone(clone func(s S) S) { g.clone = clone }

func deepClone[S any](s S) S {
	if c, ok := deepcopy.Copy(s).(S); ok {
		return c
	}
	return s
}

func (g *GuiContext[S]) State() S            { return g.state }
func (g *GuiContext[S]) Tree() *Tree         { return g.tree }
func (g *GuiContext[S]) Layout() *Layout     { return g.layout }
func (g *GuiContext[S]) Router() *Router     { return g.router }
func (g *GuiContext[S]) Viewport() geom.Size { return g.viewport }
func (g *GuiContext[S]) Rebuilds() int       { return g.rebuilds }

// Mutate changes the state from outside a callback and rebuilds if it changed.
func (g *GuiContext[S]) Mutate(fn func(s *S)) {
	fn(&g.state)
	g.Update()
}

// Rebuild declares, solves and re-attaches the router unconditionally.
func (g *GuiContext[S]) Rebuild() {
	defer profiler.Start("ui.Rebuild")()
	g.snapshot = g.clone(g.state)
	view := g.state
	g.tree = ProduceTree(func(b *Builder) { g.build(b, view) }, WithResources(g.res))
	g.layout = Solve(g.tree, g.viewport)
	g.exec = NewExecutor(g.tree, &g.state, &g.post)
	g.router.Attach(g.tree, g.layout, g.exec)
	g.router.TakeRedraw()
	g.dirty = true
	g.rebuilds++
	g.log.Debug("ui: rebuilt tree", "nodes", g.tree.Len(), "roots", len(g.tree.Roots), "viewport", g.viewport)
}

// Update rebuilds when the state no longer equals the snapshot the current Tree
// was declared from.
func (g *GuiContext[S]) Update() bool {
	if g.equal(g.state, g.snapshot) {
		return false
	}
	g.Rebuild()
	return true
}

// Resize re-solves the interface for a new viewport.
func (g *GuiContext[S]) Resize(viewport geom.Size) {
	if viewport == g.viewport {
		return
	}
	g.viewport = viewport
	g.Rebuild()
}

func (g *GuiContext[S]) step(route func(r *Router)) {
	route(g.router)
	g.Update()
	if g.router.TakeRedraw() {
		g.dirty = true
	}
}

func (g *GuiContext[S]) CursorMoved(p geom.Point) {
	g.step(func(r *Router) { r.CursorMoved(p) })
}

func (g *GuiContext[S]) CursorLeft() {
	g.step(func(r *Router) { r.CursorLeft() })
}

func (g *GuiContext[S]) Press(button core.MouseButton) {
	g.step(func(r *Router) { r.Press(button) })
}

func (g *GuiContext[S]) Release(button core.MouseButton) {
	g.step(func(r *Router) { r.Release(button) })
}

func (g *GuiContext[S]) Key(ev core.EventKey) {
	g.step(func(r *Router) { r.Key(ev) })
}

// HandleEvent routes a platform event. It reports whether the event was input
// the interface consumed.
func (g *GuiContext[S]) HandleEvent(ev core.Event) bool {
	switch e := ev.(type) {
	case core.EventMouseMove:
		g.CursorMoved(geom.Pt(float32(e.X), float32(e.Y)))
	case core.EventCursorLeave:
		g.CursorLeft()
	case core.EventMouseButton:
		if e.Down {
			g.Press(e.Button)
		} else {
			g.Release(e.Button)
		}
		return g.router.Hovered() != NoNode || g.router.State() != NoGrab
	case core.EventKey:
		g.Key(e)
	}
	return false
}

// Dirty reports whether the next Batches call will re-render.
func (g *GuiContext[S]) Dirty() bool { return g.dirty }

// Batches returns the render commands for the current tree, rebuilding them
// only if a rebuild or a redraw request happened since the last call.
func (g *GuiContext[S]) Batches() []renderer2d.RenderCommand {
	if !g.dirty {
		return g.batches
	}
	end := profiler.Start("ui.Batches")
	g.batches = renderer2d.IntoBatches(Render(g.tree, g.layout, g.res))
	g.dirty = false
	end()
	return g.batches
}

// Messages drains what widgets posted since the last call.
func (g *GuiContext[S]) Messages() []any { return g.post.Drain() }
