package widgets

import (
	"github.com/hubastard/arbor/engine/colors"
	"github.com/hubastard/arbor/engine/geom"
	"github.com/hubastard/arbor/engine/ui"
)

// UIButton is a padded frame around a label that runs a callback when a
// press is released over it.
type UIButton struct {
	Common[*UIButton]
	label   *UILabel
	onClick ui.CallbackID
	hover   colors.Color
	down    colors.Color

	hovered bool
	pressed bool
	child   geom.Size
}

func Button(str string, onClick ui.CallbackID) *UIButton {
	b := &UIButton{
		label:   Label(str),
		onClick: onClick,
		hover:   colors.Gray.Scale(1.3),
		down:    colors.Gray.Scale(0.7),
	}
	b.Common = newCommon(b)
	b.bg = colors.Gray
	b.Padding2(12, 6)
	return b
}

func (b *UIButton) TextColor(c colors.Color) *UIButton  { b.label.Color(c); return b }
func (b *UIButton) FontSize(size float32) *UIButton     { b.label.FontSize(size); return b }
func (b *UIButton) Family(family string) *UIButton      { b.label.Family(family); return b }
func (b *UIButton) HoverColor(c colors.Color) *UIButton { b.hover = c; return b }
func (b *UIButton) PressColor(c colors.Color) *UIButton { b.down = c; return b }
func (b *UIButton) Hovered() bool                       { return b.hovered }
func (b *UIButton) Pressed() bool                       { return b.pressed }

func (b *UIButton) Expand() []ui.Widget { return []ui.Widget{b.label} }

func (b *UIButton) Constraint(c geom.Constraint) {
	b.base.Constraint(c)
	b.child = geom.Size{}
}

func (b *UIButton) ChildConstraint() (geom.Constraint, bool) { return b.inner(), true }

func (b *UIButton) PlaceChild(child geom.Size, _ float32) ui.Position {
	b.child.W = max(b.child.W, child.W)
	b.child.H = max(b.child.H, child.H)
	return ui.Position{X: b.padding.L, Y: b.padding.T, Elevation: ui.ElevationStep}
}

func (b *UIButton) Size() geom.Size {
	b.mustBeConstrained(b)
	return b.outer(b.child)
}

func (b *UIButton) Draw(d *ui.DrawBuilder) {
	r := geom.RectFrom(geom.Point{}, b.Size())
	fill := b.bg
	switch {
	case b.pressed && b.hovered:
		fill = b.down
	case b.hovered:
		fill = b.hover
	}
	d.Rect(r, fill)
	d.Outline(r, b.border)
}

func (b *UIButton) OnCursorEnter(*ui.Executor) ui.EventResponse {
	b.hovered = true
	return ui.HandledRedraw
}

func (b *UIButton) OnCursorLeave(*ui.Executor) ui.EventResponse {
	b.hovered = false
	return ui.HandledRedraw
}

func (b *UIButton) OnPress(*ui.Executor) ui.EventResponse {
	b.pressed = true
	return ui.HandledRedraw
}

func (b *UIButton) OnRelease(ex *ui.Executor) ui.EventResponse {
	b.pressed = false
	ex.Run(b.onClick)
	return ui.HandledRedraw
}
