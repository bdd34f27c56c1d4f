// Package widgets holds the stock widgets built on the ui Widget contract.
// Each one is configured with chained setters and declared through a
// ui.Builder:
//
//	b.Add(widgets.VStack().Gap(8).Padding(12), func() {
//		b.Add(widgets.Label("hello"))
//		b.Add(widgets.Button("quit", onQuit))
//	})
package widgets

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/hubastard/arbor/engine/colors"
	"github.com/hubastard/arbor/engine/geom"
	"github.com/hubastard/arbor/engine/ui"
)

type SizeMode int

const (
	SizeModeFit SizeMode = iota
	SizeModeFixed
	SizeModeExpand
)

type Align int

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
)

// base is the box model shared by every widget: sizing modes, padding and
// the optional background and border.
type base struct {
	widthMod    SizeMode
	heightMod   SizeMode
	widthVal    float32
	heightVal   float32
	padding     geom.Insets
	bg          colors.Color
	border      colors.Color
	constraint  geom.Constraint
	constrained bool
}

func (b *base) Constraint(c geom.Constraint) {
	b.constraint = c
	b.constrained = true
}

func (b *base) mustBeConstrained(w any) {
	if !b.constrained {
		panic(fmt.Sprintf("widgets: %T sized before it was constrained", w))
	}
}

// inner is the constraint left for content once padding and fixed sizes apply.
func (b *base) inner() geom.Constraint {
	c := b.constraint
	if b.widthMod == SizeModeFixed {
		c.Max.W = math32.Min(b.widthVal, c.Max.W)
	}
	if b.heightMod == SizeModeFixed {
		c.Max.H = math32.Min(b.heightVal, c.Max.H)
	}
	return c.Deflate(b.padding)
}

// outer resolves the final box from the content size.
func (b *base) outer(content geom.Size) geom.Size {
	return geom.Size{
		W: resolveAxis(b.widthMod, b.widthVal, content.W+b.padding.Horizontal(), b.constraint.Max.W),
		H: resolveAxis(b.heightMod, b.heightVal, content.H+b.padding.Vertical(), b.constraint.Max.H),
	}
}

func (b *base) drawFrame(d *ui.DrawBuilder, size geom.Size) {
	r := geom.RectFrom(geom.Point{}, size)
	d.Rect(r, b.bg)
	d.Outline(r, b.border)
}

func resolveAxis(mode SizeMode, fixed, content, max float32) float32 {
	switch mode {
	case SizeModeFixed:
		return clamp(fixed, 0, max)
	case SizeModeExpand:
		if geom.IsInf(max) {
			return math32.Max(content, 0)
		}
		return max
	default:
		return clamp(content, 0, max)
	}
}

func clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(v, hi))
}

// Common carries the chained setters for the box model. T is the concrete widget.
type Common[T any] struct {
	owner T
	base
}

func newCommon[T any](owner T) Common[T] {
	return Common[T]{owner: owner}
}

func (c *Common[T]) BgColor(col colors.Color) T     { c.bg = col; return c.owner }
func (c *Common[T]) BorderColor(col colors.Color) T { c.border = col; return c.owner }

func (c *Common[T]) WidthFit() T {
	c.widthMod = SizeModeFit
	return c.owner
}

func (c *Common[T]) WidthFixed(width float32) T {
	c.widthMod = SizeModeFixed
	c.widthVal = width
	return c.owner
}

func (c *Common[T]) WidthExpand() T {
	c.widthMod = SizeModeExpand
	return c.owner
}

func (c *Common[T]) HeightFit() T {
	c.heightMod = SizeModeFit
	return c.owner
}

func (c *Common[T]) HeightFixed(height float32) T {
	c.heightMod = SizeModeFixed
	c.heightVal = height
	return c.owner
}

func (c *Common[T]) HeightExpand() T {
	c.heightMod = SizeModeExpand
	return c.owner
}

// Fixed sets both axes to fixed sizes.
func (c *Common[T]) Fixed(w, h float32) T {
	c.WidthFixed(w)
	return c.HeightFixed(h)
}

func (c *Common[T]) Padding(all float32) T {
	c.padding = geom.Uniform(all)
	return c.owner
}

func (c *Common[T]) Padding2(horizontal, vertical float32) T {
	c.padding = geom.Symmetric(horizontal, vertical)
	return c.owner
}

func (c *Common[T]) Padding4(left, top, right, bottom float32) T {
	c.padding = geom.Insets{L: left, T: top, R: right, B: bottom}
	return c.owner
}
