// Package geom holds the float32 value types shared by layout, input routing and drawing.
package geom

import "github.com/chewxy/math32"

type Point struct{ X, Y float32 }

func Pt(x, y float32) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

type Size struct{ W, H float32 }

func Sz(w, h float32) Size { return Size{W: w, H: h} }

// Finite reports whether neither axis is unbounded.
func (s Size) Finite() bool { return !math32.IsInf(s.W, 0) && !math32.IsInf(s.H, 0) }

// Rect is a min/max box. Contains is inclusive on every edge.
type Rect struct{ Min, Max Point }

func RectFrom(origin Point, size Size) Rect {
	return Rect{Min: origin, Max: Point{origin.X + size.W, origin.Y + size.H}}
}

func (r Rect) Size() Size  { return Size{r.Max.X - r.Min.X, r.Max.Y - r.Min.Y} }
func (r Rect) Empty() bool { return r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y }

func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

func (r Rect) Translate(d Point) Rect { return Rect{Min: r.Min.Add(d), Max: r.Max.Add(d)} }

// Constraint is the largest box a node may occupy. Either axis may be +Inf.
type Constraint struct {
	Max Size
}

func Bounded(w, h float32) Constraint { return Constraint{Max: Size{w, h}} }

// Unbounded returns a constraint with no limit on either axis.
func Unbounded() Constraint { return Constraint{Max: Size{Inf(), Inf()}} }

// Deflate shrinks the box by the given insets, never below zero.
func (c Constraint) Deflate(in Insets) Constraint {
	return Constraint{Max: Size{
		W: math32.Max(0, c.Max.W-in.L-in.R),
		H: math32.Max(0, c.Max.H-in.T-in.B),
	}}
}

// Clamp fits s inside the constraint.
func (c Constraint) Clamp(s Size) Size {
	return Size{W: math32.Min(s.W, c.Max.W), H: math32.Min(s.H, c.Max.H)}
}

type Insets struct{ L, T, R, B float32 }

func Uniform(all float32) Insets    { return Insets{all, all, all, all} }
func Symmetric(h, v float32) Insets { return Insets{h, v, h, v} }

func (in Insets) Horizontal() float32 { return in.L + in.R }
func (in Insets) Vertical() float32   { return in.T + in.B }

func Inf() float32 { return math32.Inf(1) }

// IsInf reports whether v is unbounded in either direction.
func IsInf(v float32) bool { return math32.IsInf(v, 0) }
