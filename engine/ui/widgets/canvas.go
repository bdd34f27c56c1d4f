package widgets

import (
	"github.com/hubastard/arbor/engine/geom"
	"github.com/hubastard/arbor/engine/ui"
)

// PaintFunc draws inside a canvas. The builder origin is the top-left corner of
// the padded area and size is that area's extent.
type PaintFunc func(b *ui.DrawBuilder, size geom.Size)

// UICanvas is a fixed-size leaf that hands its area to a paint function for
// lines, points and free-form triangles.
type UICanvas struct {
	ui.Leaf
	Common[*UICanvas]
	paint PaintFunc
}

func Canvas(w, h float32, paint PaintFunc) *UICanvas {
	c := &UICanvas{paint: paint}
	c.Common = newCommon(c)
	c.Fixed(w, h)
	return c
}

func (c *UICanvas) Size() geom.Size {
	c.mustBeConstrained(c)
	return c.outer(geom.Size{})
}

func (c *UICanvas) Draw(b *ui.DrawBuilder) {
	size := c.Size()
	c.drawFrame(b, size)
	if c.paint == nil {
		return
	}
	origin := b.Offset()
	b.At(origin.Add(geom.Pt(c.padding.L, c.padding.T)), b.Elevation())
	c.paint(b, geom.Size{
		W: max(0, size.W-c.padding.Horizontal()),
		H: max(0, size.H-c.padding.Vertical()),
	})
	b.At(origin, b.Elevation())
}
