package widgets

import (
	"github.com/hubastard/arbor/engine/colors"
	"github.com/hubastard/arbor/engine/geom"
	"github.com/hubastard/arbor/engine/ui"
)

// UIBox is a leaf of a given size filled with a color. A spacer when the color
// is transparent.
type UIBox struct {
	ui.Leaf
	Common[*UIBox]
}

func Box(w, h float32) *UIBox {
	x := &UIBox{}
	x.Common = newCommon(x)
	x.Fixed(w, h)
	return x
}

// Spacer is an invisible box.
func Spacer(w, h float32) *UIBox { return Box(w, h) }

func (x *UIBox) Color(c colors.Color) *UIBox { return x.BgColor(c) }

func (x *UIBox) Size() geom.Size {
	x.mustBeConstrained(x)
	return x.outer(geom.Size{})
}

func (x *UIBox) Draw(b *ui.DrawBuilder) {
	x.drawFrame(b, x.Size())
}
