package widgets

import (
	"github.com/chewxy/math32"
	"github.com/hubastard/arbor/engine/geom"
	"github.com/hubastard/arbor/engine/ui"
)

type LayoutDirection int

const (
	LayoutVertical LayoutDirection = iota
	LayoutHorizontal
)

// UIStack places its children one after another along the flow direction.
// The main axis is unbounded for children; the cross axis gets whatever the
// stack has left after padding.
type UIStack struct {
	Common[*UIStack]
	flow       LayoutDirection
	gap        float32
	crossAlign Align

	cursor   float32
	maxCross float32
	placed   int
}

func Stack(flow LayoutDirection) *UIStack {
	s := &UIStack{flow: flow}
	s.Common = newCommon(s)
	return s
}

func VStack() *UIStack { return Stack(LayoutVertical) }
func HStack() *UIStack { return Stack(LayoutHorizontal) }

func (s *UIStack) Gap(g float32) *UIStack      { s.gap = g; return s }
func (s *UIStack) AlignCross(a Align) *UIStack { s.crossAlign = a; return s }
func (s *UIStack) Direction() LayoutDirection  { return s.flow }

func (s *UIStack) Constraint(c geom.Constraint) {
	s.base.Constraint(c)
	s.cursor, s.maxCross, s.placed = 0, 0, 0
}

func (s *UIStack) ChildConstraint() (geom.Constraint, bool) {
	in := s.inner()
	if s.flow == LayoutVertical {
		in.Max.H = geom.Inf()
	} else {
		in.Max.W = geom.Inf()
	}
	return in, true
}

func (s *UIStack) PlaceChild(child geom.Size, _ float32) ui.Position {
	if s.placed > 0 {
		s.cursor += s.gap
	}
	s.placed++
	main, cross := child.H, child.W
	if s.flow == LayoutHorizontal {
		main, cross = child.W, child.H
	}
	offset := s.crossOffset(cross)
	pos := ui.Position{Elevation: ui.ElevationStep}
	if s.flow == LayoutVertical {
		pos.X, pos.Y = s.padding.L+offset, s.padding.T+s.cursor
	} else {
		pos.X, pos.Y = s.padding.L+s.cursor, s.padding.T+offset
	}
	s.cursor += main
	s.maxCross = math32.Max(s.maxCross, cross)
	return pos
}

// crossOffset aligns a child inside the cross extent when that extent is known
// before the children are placed, which is the case for fixed and expanding
// stacks. Fitting stacks always align at the start.
func (s *UIStack) crossOffset(cross float32) float32 {
	if s.crossAlign == AlignStart {
		return 0
	}
	mode, in := s.widthMod, s.inner().Max.W
	if s.flow == LayoutHorizontal {
		mode, in = s.heightMod, s.inner().Max.H
	}
	if mode == SizeModeFit || geom.IsInf(in) {
		return 0
	}
	free := math32.Max(0, in-cross)
	if s.crossAlign == AlignCenter {
		return free / 2
	}
	return free
}

func (s *UIStack) Size() geom.Size {
	s.mustBeConstrained(s)
	content := geom.Size{W: s.maxCross, H: s.cursor}
	if s.flow == LayoutHorizontal {
		content = geom.Size{W: s.cursor, H: s.maxCross}
	}
	return s.outer(content)
}

func (s *UIStack) Draw(b *ui.DrawBuilder) {
	s.drawFrame(b, s.Size())
}
