package scene

import "github.com/hubastard/arbor/engine/geom"

const minZoom = 0.05

// ScreenCamera2D maps logical screen units, origin top-left and y down, onto
// clip space. The z coordinate carries elevation: larger elevations end up
// nearer the viewer so a LEQUAL depth test keeps raised geometry on top.
type ScreenCamera2D struct {
	Width, Height float32
	X, Y          float32 // pan, in logical units
	Zoom          float32 // 1 = no zoom
	MaxElevation  float32
	vp            [16]float32
	dirty         bool
}

func NewScreenCamera2D(width, height float32) *ScreenCamera2D {
	c := &ScreenCamera2D{Width: width, Height: height, Zoom: 1, MaxElevation: 1}
	c.Recalculate()
	return c
}

func (c *ScreenCamera2D) SetViewport(w, h float32) { c.Width, c.Height = w, h; c.dirty = true }
func (c *ScreenCamera2D) Move(dx, dy float32)      { c.X += dx; c.Y += dy; c.dirty = true }

func (c *ScreenCamera2D) SetZoom(z float32) {
	c.Zoom = max(z, minZoom)
	c.dirty = true
}

// SetDepthRange makes room for elevations up to maxElevation.
func (c *ScreenCamera2D) SetDepthRange(maxElevation float32) {
	maxElevation = max(maxElevation, 1)
	if maxElevation != c.MaxElevation {
		c.MaxElevation = maxElevation
		c.dirty = true
	}
}

func (c *ScreenCamera2D) VP() [16]float32 {
	if c.dirty {
		c.Recalculate()
	}
	return c.vp
}

func (c *ScreenCamera2D) Recalculate() {
	w, h := c.Width/c.Zoom, c.Height/c.Zoom
	// eye z runs from -1 (far) to MaxElevation (near)
	c.vp = ortho(c.X, c.X+w, c.Y+h, c.Y, -c.MaxElevation, 1)
	c.dirty = false
}

// Project applies VP to a point, returning normalized device coordinates.
func (c *ScreenCamera2D) Project(x, y, z float32) (float32, float32, float32) {
	m := c.VP()
	return m[0]*x + m[4]*y + m[8]*z + m[12],
		m[1]*x + m[5]*y + m[9]*z + m[13],
		m[2]*x + m[6]*y + m[10]*z + m[14]
}

// ScreenToWorld converts a pointer position in window units to logical units.
func (c *ScreenCamera2D) ScreenToWorld(p geom.Point) geom.Point {
	return geom.Pt(c.X+p.X/c.Zoom, c.Y+p.Y/c.Zoom)
}

// ---- column-major, GLSL-style ----

func ortho(l, r, b, t, n, f float32) [16]float32 {
	rl := 1 / (r - l)
	tb := 1 / (t - b)
	fn := 1 / (f - n)
	return [16]float32{
		2 * rl, 0, 0, 0,
		0, 2 * tb, 0, 0,
		0, 0, -2 * fn, 0,
		-(r + l) * rl, -(t + b) * tb, -(f + n) * fn, 1,
	}
}
