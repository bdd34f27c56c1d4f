package ui

import (
	"strings"

	"github.com/chewxy/math32"
	"github.com/hubastard/arbor/engine/colors"
	"github.com/hubastard/arbor/engine/core"
	"github.com/hubastard/arbor/engine/geom"
	"github.com/hubastard/arbor/engine/gfx/renderer2d"
)

// recorder hands out test widgets that append every event they see to one log.
type recorder struct {
	events []string
	drawn  int
}

func (r *recorder) reset() { r.events = nil }

// leaf is a fixed size node.
func (r *recorder) leaf(name string, w, h float32) *testWidget {
	return &testWidget{name: name, fixed: geom.Sz(w, h), rec: r, resp: map[string]EventResponse{}}
}

// col stacks its children vertically and fits around them.
func (r *recorder) col(name string) *testWidget {
	return &testWidget{name: name, fit: true, rec: r, resp: map[string]EventResponse{}}
}

type testWidget struct {
	name      string
	fixed     geom.Size
	fit       bool
	pad       float32
	color     colors.Color
	onRelease CallbackID
	rec       *recorder
	resp      map[string]EventResponse

	constraint  geom.Constraint
	constrained bool
	cursor      float32
	width       float32
	childCalls  int
}

func (w *testWidget) handles(events ...string) *testWidget {
	for _, ev := range events {
		w.resp[ev] = Handled
	}
	return w
}

func (w *testWidget) redraws(events ...string) *testWidget {
	for _, ev := range events {
		w.resp[ev] = HandledRedraw
	}
	return w
}

func (w *testWidget) Constraint(c geom.Constraint) {
	w.constraint, w.constrained = c, true
	w.cursor, w.width = 0, 0
}

func (w *testWidget) ChildConstraint() (geom.Constraint, bool) {
	w.childCalls++
	in := w.constraint.Deflate(geom.Uniform(w.pad))
	in.Max.H = geom.Inf()
	return in, true
}

func (w *testWidget) PlaceChild(child geom.Size, _ float32) Position {
	pos := Position{X: w.pad, Y: w.pad + w.cursor, Elevation: ElevationStep}
	w.cursor += child.H
	w.width = math32.Max(w.width, child.W)
	return pos
}

func (w *testWidget) Size() geom.Size {
	if !w.constrained {
		panic("testWidget: size before constraint")
	}
	if w.fit {
		return w.constraint.Clamp(geom.Sz(w.width+2*w.pad, w.cursor+2*w.pad))
	}
	return w.constraint.Clamp(w.fixed)
}

func (w *testWidget) Draw(b *DrawBuilder) {
	w.rec.drawn++
	b.Rect(geom.RectFrom(geom.Point{}, w.Size()), w.color)
}

func (w *testWidget) log(ev string) EventResponse {
	w.rec.events = append(w.rec.events, w.name+":"+ev)
	return w.resp[ev]
}

func (w *testWidget) OnPress(*Executor) EventResponse       { return w.log("press") }
func (w *testWidget) OnCursorEnter(*Executor) EventResponse { return w.log("enter") }
func (w *testWidget) OnCursorLeave(*Executor) EventResponse { return w.log("leave") }

func (w *testWidget) OnRelease(ex *Executor) EventResponse {
	resp := w.log("release")
	ex.Run(w.onRelease)
	return resp
}

func (w *testWidget) OnKey(_ *Executor, ev core.EventKey) EventResponse { return w.log("key") }

func (w *testWidget) OnButton(_ *Executor, ev ButtonEvent) EventResponse {
	return w.log("button:" + ev.Button.String())
}

// expander injects synthetic children ahead of the declared ones.
type expander struct {
	*testWidget
	synthetic []Widget
}

func (e expander) Expand() []Widget { return e.synthetic }

// fakeFont lays every rune out as a half-em wide cell.
type fakeFont struct{ tex renderer2d.TextureID }

func (f fakeFont) Texture() renderer2d.TextureID { return f.tex }

func (f fakeFont) Layout(s string, size float32) ([]Glyph, geom.Size) {
	var glyphs []Glyph
	var bounds geom.Size
	for line, text := range strings.Split(s, "\n") {
		y := float32(line) * size
		x := float32(0)
		for range text {
			glyphs = append(glyphs, Glyph{
				Rect: geom.Rect{Min: geom.Pt(x, y), Max: geom.Pt(x+size/2, y+size)},
				UV:   geom.Rect{Max: geom.Pt(1, 1)},
			})
			x += size / 2
		}
		bounds.W = math32.Max(bounds.W, x)
		bounds.H = y + size
	}
	return glyphs, bounds
}

type fakeResources struct {
	textures map[string]renderer2d.TextureID
	fonts    map[string]GlyphLayout
}

func newFakeResources() *fakeResources {
	return &fakeResources{
		textures: map[string]renderer2d.TextureID{"sprite": 3},
		fonts:    map[string]GlyphLayout{"mono": fakeFont{tex: 7}},
	}
}

func (r *fakeResources) Scale() float32 { return 1 }

func (r *fakeResources) Texture(name string) (renderer2d.TextureID, geom.Size, bool) {
	id, ok := r.textures[name]
	return id, geom.Sz(32, 32), ok
}

func (r *fakeResources) Font(family string) (GlyphLayout, bool) {
	f, ok := r.fonts[family]
	return f, ok
}
