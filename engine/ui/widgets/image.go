package widgets

import (
	"github.com/hubastard/arbor/engine/colors"
	"github.com/hubastard/arbor/engine/geom"
	"github.com/hubastard/arbor/engine/ui"
)

// UIImage draws a named texture. Without a fixed size it takes the texture's
// natural size divided by the resource scale.
type UIImage struct {
	ui.Leaf
	Common[*UIImage]
	name    string
	tint    colors.Color
	natural geom.Size
}

func Image(name string) *UIImage {
	i := &UIImage{name: name, tint: colors.White}
	i.Common = newCommon(i)
	return i
}

func (i *UIImage) Tint(c colors.Color) *UIImage { i.tint = c; return i }

func (i *UIImage) BindResources(res ui.Resources) {
	_, size, ok := res.Texture(i.name)
	if !ok {
		return
	}
	if s := res.Scale(); s > 0 {
		size = geom.Size{W: size.W / s, H: size.H / s}
	}
	i.natural = size
}

func (i *UIImage) Size() geom.Size {
	i.mustBeConstrained(i)
	return i.outer(i.natural)
}

func (i *UIImage) Draw(b *ui.DrawBuilder) {
	size := i.Size()
	i.drawFrame(b, size)
	r := geom.Rect{
		Min: geom.Pt(i.padding.L, i.padding.T),
		Max: geom.Pt(size.W-i.padding.R, size.H-i.padding.B),
	}
	b.Image(i.name, r, i.tint)
}
