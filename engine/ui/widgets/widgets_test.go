package widgets

import (
	"strings"
	"testing"

	"github.com/chewxy/math32"
	"github.com/hubastard/arbor/engine/colors"
	"github.com/hubastard/arbor/engine/core"
	"github.com/hubastard/arbor/engine/geom"
	"github.com/hubastard/arbor/engine/gfx/renderer2d"
	"github.com/hubastard/arbor/engine/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type monoFont struct{}

func (monoFont) Texture() renderer2d.TextureID { return 9 }

func (monoFont) Layout(s string, size float32) ([]ui.Glyph, geom.Size) {
	var glyphs []ui.Glyph
	var bounds geom.Size
	for line, text := range strings.Split(s, "\n") {
		x, y := float32(0), float32(line)*size
		for range text {
			glyphs = append(glyphs, ui.Glyph{Rect: geom.Rect{Min: geom.Pt(x, y), Max: geom.Pt(x+size/2, y+size)}})
			x += size / 2
		}
		bounds = geom.Size{W: math32.Max(bounds.W, x), H: y + size}
	}
	return glyphs, bounds
}

type testResources struct{ scale float32 }

func (r testResources) Scale() float32 { return r.scale }

func (testResources) Texture(name string) (renderer2d.TextureID, geom.Size, bool) {
	if name != "sprite" {
		return renderer2d.NoTexture, geom.Size{}, false
	}
	return 4, geom.Sz(32, 32), true
}

func (testResources) Font(family string) (ui.GlyphLayout, bool) {
	if family != DefaultFont {
		return nil, false
	}
	return monoFont{}, true
}

func solve(t *testing.T, viewport geom.Size, declare func(b *ui.Builder)) (*ui.Tree, *ui.Layout) {
	t.Helper()
	tree := ui.ProduceTree(declare, ui.WithResources(testResources{scale: 1}))
	require.NoError(t, tree.Validate())
	return tree, ui.Solve(tree, viewport)
}

func TestVStackPlacesChildrenInOrder(t *testing.T) {
	_, l := solve(t, geom.Sz(100, 100), func(b *ui.Builder) {
		b.Add(VStack(), func() {
			b.Add(Box(40, 10))
			b.Add(Box(40, 20))
			b.Add(Box(40, 30))
		})
	})
	assert.Equal(t, float32(0), l.Local[1].Y)
	assert.Equal(t, float32(10), l.Local[2].Y)
	assert.Equal(t, float32(30), l.Local[3].Y)
	assert.Equal(t, geom.Sz(40, 60), l.Sizes[0])
	assert.Equal(t, ui.ElevationStep, l.Elevation[3])
}

func TestHStackGapPaddingAndAlignment(t *testing.T) {
	_, l := solve(t, geom.Sz(200, 200), func(b *ui.Builder) {
		b.Add(HStack().Gap(5).Padding(2), func() {
			b.Add(Box(10, 10))
			b.Add(Box(20, 20))
		})
		b.Add(HStack().HeightFixed(40).AlignCross(AlignCenter), func() {
			b.Add(Box(10, 10))
		})
		b.Add(VStack().WidthFixed(50).AlignCross(AlignEnd), func() {
			b.Add(Box(10, 10))
		})
	})
	assert.Equal(t, ui.Position{X: 2, Y: 2, Elevation: 1}, l.Local[1])
	assert.Equal(t, ui.Position{X: 17, Y: 2, Elevation: 1}, l.Local[2])
	assert.Equal(t, geom.Sz(39, 24), l.Sizes[0])

	assert.Equal(t, float32(15), l.Local[4].Y)
	assert.Equal(t, geom.Sz(10, 40), l.Sizes[3])

	assert.Equal(t, float32(40), l.Local[6].X)
}

func TestStackSizeModes(t *testing.T) {
	_, l := solve(t, geom.Sz(300, 120), func(b *ui.Builder) {
		b.Add(VStack().WidthExpand().HeightExpand(), func() {
			b.Add(Box(500, 10))
		})
	})
	assert.Equal(t, geom.Sz(300, 120), l.Sizes[0])
	assert.Equal(t, float32(300), l.Sizes[1].W, "children are clamped to the cross axis")

	_, l = solve(t, geom.Sz(300, geom.Inf()), func(b *ui.Builder) {
		b.Add(VStack().HeightExpand(), func() { b.Add(Box(5, 70)) })
	})
	assert.Equal(t, float32(70), l.Sizes[0].H, "expanding into an unbounded axis fits the content")
}

func TestOverlayRaisesEachChild(t *testing.T) {
	_, l := solve(t, geom.Sz(100, 100), func(b *ui.Builder) {
		b.Add(Overlay().Padding(4), func() {
			b.Add(Panel().Padding(1), func() {
				b.Add(Box(20, 20))
			})
			b.Add(Box(30, 10))
		})
	})
	assert.Equal(t, float32(1), l.Elevation[1])
	assert.Equal(t, float32(2), l.Elevation[2])
	assert.Equal(t, float32(3), l.Elevation[3], "second layer draws above the first one's content")
	assert.Equal(t, geom.Pt(4, 4), l.Absolute[3])
	assert.Equal(t, geom.Sz(38, 30), l.Sizes[0])
}

func TestPanelHoldsOneChild(t *testing.T) {
	tree := ui.ProduceTree(func(b *ui.Builder) {
		b.Add(Panel(), func() {
			b.Add(Box(1, 1))
			b.Add(Box(1, 1))
		})
	})
	assert.Panics(t, func() { ui.Solve(tree, geom.Sz(10, 10)) })
}

func TestSizeBeforeConstraintPanics(t *testing.T) {
	assert.Panics(t, func() { Box(1, 1).Size() })
	assert.Panics(t, func() { VStack().Size() })
}

func TestLabelMeasuresAndWraps(t *testing.T) {
	_, l := solve(t, geom.Sz(200, 200), func(b *ui.Builder) {
		b.Add(Label("hello").FontSize(10))
		b.Add(VStack().WidthFixed(30), func() {
			b.Add(Label("aa bb cc").FontSize(10).Wrap(true))
		})
		b.Add(Label("no font").Family("serif"))
	})
	assert.Equal(t, geom.Sz(25, 10), l.Sizes[0])
	assert.Equal(t, geom.Sz(25, 20), l.Sizes[2])
	assert.Equal(t, geom.Size{}, l.Sizes[3])
}

func TestLabelDrawsGlyphs(t *testing.T) {
	tree, l := solve(t, geom.Sz(200, 200), func(b *ui.Builder) {
		b.Add(Label("hi").FontSize(10).Padding(3))
	})
	objs := ui.Render(tree, l, testResources{scale: 1})
	require.Len(t, objs, 1)
	assert.Equal(t, renderer2d.TextureID(9), objs[0].Texture)
	assert.Len(t, objs[0].Vertices, 12)
	assert.Equal(t, geom.Pt(3, 3), objs[0].Vertices[0])
}

type clicks struct{ N int }

func TestButtonClickRunsCallback(t *testing.T) {
	g := ui.NewGuiContext(clicks{}, func(b *ui.Builder, s clicks) {
		b.Add(VStack(), func() {
			b.Add(Button("+1", ui.On(b, func(s *clicks, _ *ui.PostBox) { s.N++ })))
		})
	}, ui.Options{Viewport: geom.Sz(200, 100), Resources: testResources{scale: 1}})

	require.Equal(t, 3, g.Tree().Len(), "stack, button and its label")
	assert.Equal(t, geom.Sz(40, 28), g.Layout().Sizes[1])

	g.CursorMoved(geom.Pt(20, 10))
	assert.Equal(t, []ui.NodeID{0, 1, 2}, g.Router().Hierarchy())
	btn := g.Tree().Widget(1).(*UIButton)
	assert.True(t, btn.Hovered())

	g.Press(core.MouseButtonLeft)
	assert.Equal(t, ui.NodeID(1), g.Router().Active(), "the label bubbles the press to its button")
	assert.True(t, btn.Pressed())

	g.Release(core.MouseButtonLeft)
	assert.Equal(t, 1, g.State().N)
	assert.Equal(t, 2, g.Rebuilds())
}

func TestButtonReleasedOutsideDoesNotClick(t *testing.T) {
	g := ui.NewGuiContext(clicks{}, func(b *ui.Builder, s clicks) {
		b.Add(Button("go", ui.On(b, func(s *clicks, _ *ui.PostBox) { s.N++ })))
	}, ui.Options{Viewport: geom.Sz(200, 100), Resources: testResources{scale: 1}})

	g.CursorMoved(geom.Pt(5, 5))
	g.Press(core.MouseButtonLeft)
	g.CursorMoved(geom.Pt(150, 90))
	assert.Equal(t, ui.GrabbedOutside, g.Router().State())
	g.Release(core.MouseButtonLeft)
	assert.Equal(t, 0, g.State().N)
	assert.Equal(t, 1, g.Rebuilds())
}

func TestButtonDrawReflectsHover(t *testing.T) {
	tree, l := solve(t, geom.Sz(200, 100), func(b *ui.Builder) {
		b.Add(Button("x", ui.NoCallback).HoverColor(colors.Green).Family("missing"))
	})
	btn := tree.Widget(0).(*UIButton)

	objs := ui.Render(tree, l, testResources{scale: 1})
	require.Len(t, objs, 1)
	assert.Equal(t, renderer2d.UniformColor(colors.Gray), objs[0].Color)

	assert.Equal(t, ui.HandledRedraw, btn.OnCursorEnter(nil))
	objs = ui.Render(tree, l, testResources{scale: 1})
	assert.Equal(t, renderer2d.UniformColor(colors.Green), objs[0].Color)
}

func TestImageUsesNaturalSize(t *testing.T) {
	tree, l := solve(t, geom.Sz(200, 200), func(b *ui.Builder) {
		b.Add(Image("sprite"))
		b.Add(Image("sprite").Fixed(10, 5).Tint(colors.Red))
		b.Add(Image("nope"))
	})
	assert.Equal(t, geom.Sz(32, 32), l.Sizes[0])
	assert.Equal(t, geom.Sz(10, 5), l.Sizes[1])
	assert.Equal(t, geom.Size{}, l.Sizes[2])

	objs := ui.Render(tree, l, testResources{scale: 1})
	require.Len(t, objs, 2)
	assert.Equal(t, renderer2d.TextureID(4), objs[0].Texture)
	assert.Equal(t, renderer2d.UniformColor(colors.Red), objs[1].Color)

	scaled := ui.ProduceTree(func(b *ui.Builder) { b.Add(Image("sprite")) }, ui.WithResources(testResources{scale: 2}))
	assert.Equal(t, geom.Sz(16, 16), ui.Solve(scaled, geom.Sz(100, 100)).Sizes[0])
}

func TestCanvasPaintsInsidePadding(t *testing.T) {
	var painted geom.Size
	tree, l := solve(t, geom.Sz(200, 200), func(b *ui.Builder) {
		b.Add(VStack().Padding(2), func() {
			b.Add(Canvas(40, 30, func(d *ui.DrawBuilder, size geom.Size) {
				painted = size
				d.Line(geom.Pt(0, 0), geom.Pt(10, 10), colors.White)
				d.Triangles(
					[]geom.Point{geom.Pt(0, 0), geom.Pt(4, 0), geom.Pt(0, 4)},
					[]colors.Color{colors.Red, colors.Green, colors.Blue},
				)
			}).Padding(5))
		})
	})
	assert.Equal(t, geom.Sz(40, 30), l.Sizes[1])

	objs := ui.Render(tree, l, testResources{scale: 1})
	require.Len(t, objs, 2)
	assert.Equal(t, geom.Sz(30, 20), painted)
	assert.Equal(t, []geom.Point{geom.Pt(7, 7), geom.Pt(17, 17)}, objs[0].Vertices)
	assert.Equal(t, renderer2d.Lines, objs[0].Primitive)
	assert.Equal(t, geom.Pt(11, 7), objs[1].Vertices[1])
	assert.Equal(t, float32(1), objs[1].Elevation)
}

func TestSpacerSeparatesSiblings(t *testing.T) {
	tree, l := solve(t, geom.Sz(100, 100), func(b *ui.Builder) {
		b.Add(VStack(), func() {
			b.Add(Box(10, 10).Color(colors.Red))
			b.Add(Spacer(0, 8))
			b.Add(Box(10, 10).Color(colors.Red))
		})
	})
	assert.Equal(t, float32(18), l.Local[3].Y)
	assert.Equal(t, geom.Sz(10, 28), l.Sizes[0])
	assert.Len(t, ui.Render(tree, l, testResources{scale: 1}), 2, "spacers draw nothing")
}

func TestLabelMaxWidthWraps(t *testing.T) {
	_, l := solve(t, geom.Sz(200, 200), func(b *ui.Builder) {
		b.Add(Label("aa bb cc").FontSize(10).MaxWidth(30))
		b.Add(Label("aa bb cc").FontSize(10))
	})
	assert.Equal(t, geom.Sz(25, 20), l.Sizes[0])
	assert.Equal(t, geom.Sz(40, 10), l.Sizes[1])

	lbl := Label("aa bb cc").FontSize(10).MaxWidth(30)
	lbl.BindResources(testResources{scale: 1})
	lbl.Constraint(geom.Unbounded())
	assert.Equal(t, geom.Sz(25, 20), lbl.Size(), "limit applies without a bounded parent")
}
