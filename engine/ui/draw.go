package ui

import (
	"log/slog"

	"github.com/hubastard/arbor/engine/colors"
	"github.com/hubastard/arbor/engine/geom"
	"github.com/hubastard/arbor/engine/gfx/renderer2d"
)

// Glyph is one positioned glyph of a laid out string. Rect is relative to the
// string's top-left origin; UV is the glyph's rectangle in the font texture.
type Glyph struct {
	Rect geom.Rect
	UV   geom.Rect
}

// GlyphLayout lays out strings for one font family.
type GlyphLayout interface {
	Texture() renderer2d.TextureID
	// Layout returns the glyphs of s at the given size and the bounds of the whole string.
	Layout(s string, size float32) ([]Glyph, geom.Size)
}

// Resources resolves the named assets widgets refer to.
type Resources interface {
	// Scale is the number of pixels per logical unit.
	Scale() float32
	Texture(name string) (renderer2d.TextureID, geom.Size, bool)
	Font(family string) (GlyphLayout, bool)
}

// NoResources resolves nothing. Drawing against it skips images and text.
type NoResources struct{}

func (NoResources) Scale() float32 { return 1 }
func (NoResources) Texture(string) (renderer2d.TextureID, geom.Size, bool) {
	return renderer2d.NoTexture, geom.Size{}, false
}
func (NoResources) Font(string) (GlyphLayout, bool) { return nil, false }

// DrawBuilder collects the draw objects of a render walk. Widgets draw in local
// coordinates; the builder translates them by the node's absolute position and
// tags them with the node's elevation.
type DrawBuilder struct {
	res       Resources
	offset    geom.Point
	elevation float32
	objs      []renderer2d.DrawObject
	skipped   int
}

func NewDrawBuilder(res Resources) *DrawBuilder {
	if res == nil {
		res = NoResources{}
	}
	return &DrawBuilder{res: res}
}

// At moves the builder to a node's origin and elevation.
func (b *DrawBuilder) At(offset geom.Point, elevation float32) {
	b.offset, b.elevation = offset, elevation
}

func (b *DrawBuilder) Offset() geom.Point               { return b.offset }
func (b *DrawBuilder) Elevation() float32               { return b.elevation }
func (b *DrawBuilder) Resources() Resources             { return b.res }
func (b *DrawBuilder) Objects() []renderer2d.DrawObject { return b.objs }

// Skipped counts primitives dropped because a resource could not be resolved.
func (b *DrawBuilder) Skipped() int { return b.skipped }

func (b *DrawBuilder) translate(pts []geom.Point) []geom.Point {
	for i := range pts {
		pts[i] = pts[i].Add(b.offset)
	}
	return pts
}

func (b *DrawBuilder) emit(o renderer2d.DrawObject) {
	if len(o.Vertices) == 0 {
		return
	}
	o.Vertices = b.translate(o.Vertices)
	o.Elevation = b.elevation
	b.objs = append(b.objs, o)
}

func (b *DrawBuilder) solid(c colors.Color, p renderer2d.Primitive, pts []geom.Point) {
	if c.Invisible() {
		return
	}
	b.emit(renderer2d.DrawObject{
		Vertices:    pts,
		Color:       renderer2d.UniformColor(c),
		Transparent: !c.Opaque(),
		Primitive:   p,
	})
}

// Rect fills r.
func (b *DrawBuilder) Rect(r geom.Rect, c colors.Color) {
	if r.Empty() {
		return
	}
	b.solid(c, renderer2d.Triangles, renderer2d.QuadVertices(r))
}

// Outline strokes the edges of r with one-pixel lines.
func (b *DrawBuilder) Outline(r geom.Rect, c colors.Color) {
	b.solid(c, renderer2d.Lines, renderer2d.OutlineVertices(r))
}

func (b *DrawBuilder) Line(from, to geom.Point, c colors.Color) {
	b.solid(c, renderer2d.Lines, []geom.Point{from, to})
}

func (b *DrawBuilder) Points(pts []geom.Point, c colors.Color) {
	b.solid(c, renderer2d.Points, append([]geom.Point(nil), pts...))
}

// Triangles emits a triangle list with one color per vertex.
func (b *DrawBuilder) Triangles(vs []geom.Point, cs []colors.Color) {
	if len(vs) < 3 {
		return
	}
	transparent, visible := false, len(cs) == 0
	for _, c := range cs {
		if !c.Opaque() {
			transparent = true
		}
		if !c.Invisible() {
			visible = true
		}
	}
	if !visible {
		return
	}
	vs = append([]geom.Point(nil), vs[:len(vs)-len(vs)%3]...)
	b.emit(renderer2d.DrawObject{
		Vertices:    vs,
		Color:       renderer2d.VertexColors(cs),
		Transparent: transparent,
		Primitive:   renderer2d.Triangles,
	})
}

// Image draws the named texture stretched over r, tinted by tint.
func (b *DrawBuilder) Image(name string, r geom.Rect, tint colors.Color) {
	if name == "" || tint.Invisible() {
		return
	}
	tex, _, ok := b.res.Texture(name)
	if !ok {
		b.skip("texture", name)
		return
	}
	b.SubImage(renderer2d.Full(tex), r, tint)
}

// SubImage draws part of a texture over r.
func (b *DrawBuilder) SubImage(sub renderer2d.SubTexture, r geom.Rect, tint colors.Color) {
	if sub.Texture == renderer2d.NoTexture || tint.Invisible() || r.Empty() {
		return
	}
	b.emit(renderer2d.DrawObject{
		Vertices:    renderer2d.QuadVertices(r),
		TexCoords:   renderer2d.QuadUVs(sub),
		Color:       renderer2d.UniformColor(tint),
		Texture:     sub.Texture,
		Transparent: true,
		Primitive:   renderer2d.Triangles,
	})
}

// Text draws s with its top-left corner at origin and returns the laid out size.
func (b *DrawBuilder) Text(family, s string, origin geom.Point, size float32, c colors.Color) geom.Size {
	if s == "" || c.Invisible() {
		return geom.Size{}
	}
	font, ok := b.res.Font(family)
	if !ok {
		b.skip("font", family)
		return geom.Size{}
	}
	glyphs, bounds := font.Layout(s, size)
	tex := font.Texture()
	if len(glyphs) == 0 || tex == renderer2d.NoTexture {
		return bounds
	}
	verts := make([]geom.Point, 0, len(glyphs)*6)
	uvs := make([]geom.Point, 0, len(glyphs)*6)
	for _, g := range glyphs {
		verts = append(verts, renderer2d.QuadVertices(g.Rect.Translate(origin))...)
		sub := renderer2d.SubTexture{Texture: tex, U0: g.UV.Min.X, V0: g.UV.Min.Y, U1: g.UV.Max.X, V1: g.UV.Max.Y}
		uvs = append(uvs, renderer2d.QuadUVs(sub)...)
	}
	b.emit(renderer2d.DrawObject{
		Vertices:    verts,
		TexCoords:   uvs,
		Color:       renderer2d.UniformColor(c),
		Texture:     tex,
		Transparent: true,
		Primitive:   renderer2d.Triangles,
	})
	return bounds
}

func (b *DrawBuilder) skip(kind, name string) {
	b.skipped++
	slog.Debug("ui: skipping draw with unresolved resource", "kind", kind, "name", name)
}

// Render walks t in preorder and collects every node's draw objects.
func Render(t *Tree, l *Layout, res Resources) []renderer2d.DrawObject {
	b := NewDrawBuilder(res)
	for i, w := range t.Nodes {
		b.At(l.Absolute[i], l.Elevation[i])
		w.Draw(b)
	}
	return b.objs
}
