package widgets

import (
	"github.com/chewxy/math32"
	"github.com/hubastard/arbor/engine/geom"
	"github.com/hubastard/arbor/engine/ui"
)

// UIOverlay draws its children on top of each other at the content origin.
// Each child is raised above everything the previous children drew.
type UIOverlay struct {
	Common[*UIOverlay]
	elevation float32
	content   geom.Size
}

func Overlay() *UIOverlay {
	o := &UIOverlay{}
	o.Common = newCommon(o)
	return o
}

func (o *UIOverlay) Constraint(c geom.Constraint) {
	o.base.Constraint(c)
	o.elevation, o.content = 0, geom.Size{}
}

func (o *UIOverlay) ChildConstraint() (geom.Constraint, bool) { return o.inner(), true }

func (o *UIOverlay) PlaceChild(child geom.Size, childElevation float32) ui.Position {
	pos := ui.Position{X: o.padding.L, Y: o.padding.T, Elevation: o.elevation + ui.ElevationStep}
	o.elevation = pos.Elevation + childElevation
	o.content.W = math32.Max(o.content.W, child.W)
	o.content.H = math32.Max(o.content.H, child.H)
	return pos
}

func (o *UIOverlay) Size() geom.Size {
	o.mustBeConstrained(o)
	return o.outer(o.content)
}

func (o *UIOverlay) Draw(b *ui.DrawBuilder) {
	o.drawFrame(b, o.Size())
}
