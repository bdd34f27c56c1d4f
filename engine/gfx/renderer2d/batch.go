package renderer2d

import (
	"cmp"
	"slices"

	"github.com/hubastard/arbor/engine/colors"
	"github.com/hubastard/arbor/engine/geom"
)

// Primitive is the topology of a DrawObject's vertices. Only list topologies are
// supported so that adjacent objects can be concatenated into one draw call.
type Primitive uint8

const (
	Triangles Primitive = iota
	Lines
	Points
)

func (p Primitive) String() string {
	switch p {
	case Triangles:
		return "triangles"
	case Lines:
		return "lines"
	case Points:
		return "points"
	default:
		return "unknown"
	}
}

type ColorKind uint8

const (
	ColorDefault ColorKind = iota
	ColorUniform
	ColorPerVertex
)

// ColorSource says where a DrawObject's vertex colors come from.
type ColorSource struct {
	Kind      ColorKind
	Uniform   colors.Color
	PerVertex []colors.Color
}

func UniformColor(c colors.Color) ColorSource { return ColorSource{Kind: ColorUniform, Uniform: c} }

func VertexColors(cs []colors.Color) ColorSource {
	return ColorSource{Kind: ColorPerVertex, PerVertex: cs}
}

func (cs ColorSource) at(i int) colors.Color {
	switch cs.Kind {
	case ColorUniform:
		return cs.Uniform
	case ColorPerVertex:
		if i < len(cs.PerVertex) {
			return cs.PerVertex[i]
		}
	}
	return colors.White
}

// DrawObject is one draw request emitted during a render walk.
type DrawObject struct {
	Vertices    []geom.Point
	TexCoords   []geom.Point
	Color       ColorSource
	Texture     TextureID
	Transparent bool
	Elevation   float32
	Primitive   Primitive
}

type Shader uint8

const (
	ShaderColor Shader = iota
	ShaderTexture
)

// Uniforms are the per-command values bound next to the shared projection.
type Uniforms struct {
	Texture TextureID // bound to sampler slot 0 when Shader is ShaderTexture
}

// RenderCommand is one coalesced draw call.
type RenderCommand struct {
	Positions   []float32 // x, y, elevation
	Colors      []float32 // r, g, b, a
	TexCoords   []float32 // u, v; empty for ShaderColor
	Primitive   Primitive
	Shader      Shader
	Uniforms    Uniforms
	Transparent bool
	Objects     int
}

func (c *RenderCommand) VertexCount() int { return len(c.Positions) / PosComponents }

// compareObjects is the batching order: opaque objects first, grouped by texture and
// primitive; translucent objects after, back to front by elevation, then grouped the
// same way. Opaque content relies on the depth test (z = elevation) for occlusion.
func compareObjects(a, b *DrawObject) int {
	if a.Transparent != b.Transparent {
		if !a.Transparent {
			return -1
		}
		return 1
	}
	if a.Transparent {
		if c := cmp.Compare(a.Elevation, b.Elevation); c != 0 {
			return c
		}
	}
	if c := cmp.Compare(a.Texture, b.Texture); c != 0 {
		return c
	}
	return cmp.Compare(a.Primitive, b.Primitive)
}

// IntoBatches sorts objs (stably) and coalesces maximal runs of equal keys into
// render commands. objs is not modified.
func IntoBatches(objs []DrawObject) []RenderCommand {
	if len(objs) == 0 {
		return nil
	}
	order := make([]*DrawObject, len(objs))
	for i := range objs {
		order[i] = &objs[i]
	}
	slices.SortStableFunc(order, compareObjects)

	var cmds []RenderCommand
	for start := 0; start < len(order); {
		end := start + 1
		for end < len(order) && compareObjects(order[start], order[end]) == 0 {
			end++
		}
		cmds = append(cmds, merge(order[start:end]))
		start = end
	}
	return cmds
}

func merge(run []*DrawObject) RenderCommand {
	first := run[0]
	n := 0
	for _, o := range run {
		n += len(o.Vertices)
	}
	cmd := RenderCommand{
		Positions:   make([]float32, 0, n*PosComponents),
		Colors:      make([]float32, 0, n*ColorComponents),
		Primitive:   first.Primitive,
		Shader:      ShaderColor,
		Transparent: first.Transparent,
		Objects:     len(run),
	}
	textured := first.Texture != NoTexture
	if textured {
		cmd.Shader = ShaderTexture
		cmd.Uniforms.Texture = first.Texture
		cmd.TexCoords = make([]float32, 0, n*UVComponents)
	}
	for _, o := range run {
		for i, v := range o.Vertices {
			cmd.Positions = append(cmd.Positions, v.X, v.Y, o.Elevation)
			c := o.Color.at(i)
			cmd.Colors = append(cmd.Colors, c[0], c[1], c[2], c[3])
			if textured {
				var uv geom.Point
				if i < len(o.TexCoords) {
					uv = o.TexCoords[i]
				}
				cmd.TexCoords = append(cmd.TexCoords, uv.X, uv.Y)
			}
		}
	}
	return cmd
}
