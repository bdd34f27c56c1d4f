package renderer2d

import (
	"github.com/hubastard/arbor/engine/geom"
)

// TextureID names a GPU texture owned by the backend. Zero means no texture.
type TextureID uint32

const NoTexture TextureID = 0

// TextureUploader creates RGBA8 textures on the backend.
type TextureUploader interface {
	CreateTexture(w, h int, rgba []byte) (TextureID, error)
}

// Vertex: pos3 (x, y, elevation) + color4 + uv2 => 9 floats
const (
	PosComponents   = 3
	ColorComponents = 4
	UVComponents    = 2
	VertexStride    = PosComponents + ColorComponents + UVComponents
)

// AttribLocation matches the layout(location=N) qualifiers of the backend shaders.
type AttribLocation uint32

const (
	AttribPosition AttribLocation = iota
	AttribColor
	AttribUV
)

// Statistics captures the counts generated for one frame of commands.
type Statistics struct {
	DrawCalls    int
	ObjectCount  int
	VertexCount  int
	TextureCount int
}

// Measure reports what executing cmds in order would submit.
func Measure(cmds []RenderCommand) Statistics {
	var s Statistics
	seen := make(map[TextureID]struct{})
	for i := range cmds {
		c := &cmds[i]
		s.DrawCalls++
		s.ObjectCount += c.Objects
		s.VertexCount += c.VertexCount()
		if c.Uniforms.Texture != NoTexture {
			seen[c.Uniforms.Texture] = struct{}{}
		}
	}
	s.TextureCount = len(seen)
	return s
}

// QuadVertices returns the two triangles (TL, BL, TR, TR, BL, BR) covering r.
// Positive Y goes down.
func QuadVertices(r geom.Rect) []geom.Point {
	tl := r.Min
	br := r.Max
	tr := geom.Pt(br.X, tl.Y)
	bl := geom.Pt(tl.X, br.Y)
	return []geom.Point{tl, bl, tr, tr, bl, br}
}

// QuadUVs returns the texture coordinates matching QuadVertices for sub.
func QuadUVs(sub SubTexture) []geom.Point {
	tl := geom.Pt(sub.U0, sub.V0)
	br := geom.Pt(sub.U1, sub.V1)
	tr := geom.Pt(sub.U1, sub.V0)
	bl := geom.Pt(sub.U0, sub.V1)
	return []geom.Point{tl, bl, tr, tr, bl, br}
}

// OutlineVertices returns a line list tracing the edges of r.
func OutlineVertices(r geom.Rect) []geom.Point {
	tl := r.Min
	br := r.Max
	tr := geom.Pt(br.X, tl.Y)
	bl := geom.Pt(tl.X, br.Y)
	return []geom.Point{tl, tr, tr, br, br, bl, bl, tl}
}

// MaxElevation is the highest z among the commands' vertices, or zero.
func MaxElevation(cmds []RenderCommand) float32 {
	var m float32
	for i := range cmds {
		pos := cmds[i].Positions
		for j := PosComponents - 1; j < len(pos); j += PosComponents {
			m = max(m, pos[j])
		}
	}
	return m
}

// Interleave appends c's vertices to dst in the backend layout: position,
// color, then UV (zero for untextured commands).
func Interleave(dst []float32, c *RenderCommand) []float32 {
	n := c.VertexCount()
	textured := len(c.TexCoords) >= n*UVComponents
	for i := 0; i < n; i++ {
		dst = append(dst, c.Positions[i*PosComponents:(i+1)*PosComponents]...)
		dst = append(dst, c.Colors[i*ColorComponents:(i+1)*ColorComponents]...)
		if textured {
			dst = append(dst, c.TexCoords[i*UVComponents:(i+1)*UVComponents]...)
		} else {
			dst = append(dst, 0, 0)
		}
	}
	return dst
}
