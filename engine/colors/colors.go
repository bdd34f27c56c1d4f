package colors

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is straight (non-premultiplied) RGBA in [0..1].
type Color [4]float32

var (
	White       = Color{1, 1, 1, 1}
	Red         = Color{1, 0, 0, 1}
	Green       = Color{0, 1, 0, 1}
	Blue        = Color{0, 0, 1, 1}
	Black       = Color{0, 0, 0, 1}
	Magenta     = Color{1, 0, 1, 1}
	Cyan        = Color{0, 1, 1, 1}
	Yellow      = Color{1, 1, 0, 1}
	Gray        = Color{0.5, 0.5, 0.5, 1}
	DarkGray    = Color{0.08, 0.10, 0.12, 1}
	Transparent = Color{}
)

func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

// Invisible reports whether drawing with c is a no-op.
func (c Color) Invisible() bool { return c[3] <= 0 }

// Opaque reports whether c fully covers what is behind it.
func (c Color) Opaque() bool { return c[3] >= 1 }

// Scale multiplies the RGB channels by f, leaving alpha alone.
func (c Color) Scale(f float32) Color {
	for i := 0; i < 3; i++ {
		c[i] *= f
		if c[i] > 1 {
			c[i] = 1
		}
	}
	return c
}

// Hex parses "#rgb", "#rrggbb" or "#rrggbbaa".
func Hex(s string) (Color, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return Color{}, fmt.Errorf("colors: bad hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("colors: bad hex color %q: %w", s, err)
	}
	return Color{
		float32(v>>24&0xff) / 255,
		float32(v>>16&0xff) / 255,
		float32(v>>8&0xff) / 255,
		float32(v&0xff) / 255,
	}, nil
}

// MustHex is Hex for package-level palettes.
func MustHex(s string) Color {
	c, err := Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}
