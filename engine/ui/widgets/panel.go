package widgets

import (
	"github.com/hubastard/arbor/engine/colors"
	"github.com/hubastard/arbor/engine/geom"
	"github.com/hubastard/arbor/engine/ui"
)

// UIPanel frames a single child with padding, a background and a border.
type UIPanel struct {
	Common[*UIPanel]
	child  geom.Size
	placed bool
}

func Panel() *UIPanel {
	p := &UIPanel{}
	p.Common = newCommon(p)
	p.bg = colors.Gray
	return p
}

func (p *UIPanel) Constraint(c geom.Constraint) {
	p.base.Constraint(c)
	p.child, p.placed = geom.Size{}, false
}

func (p *UIPanel) ChildConstraint() (geom.Constraint, bool) {
	if p.placed {
		panic("widgets: Panel holds a single child")
	}
	return p.inner(), true
}

func (p *UIPanel) PlaceChild(child geom.Size, _ float32) ui.Position {
	p.child, p.placed = child, true
	return ui.Position{X: p.padding.L, Y: p.padding.T, Elevation: ui.ElevationStep}
}

func (p *UIPanel) Size() geom.Size {
	p.mustBeConstrained(p)
	return p.outer(p.child)
}

func (p *UIPanel) Draw(b *ui.DrawBuilder) {
	p.drawFrame(b, p.Size())
}
