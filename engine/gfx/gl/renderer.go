package glbackend

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/hubastard/arbor/engine/core"
	"github.com/hubastard/arbor/engine/gfx/renderer2d"
	"github.com/hubastard/arbor/engine/profiler"
)

// RendererGL executes render commands with one streamed vertex buffer and two
// programs, one for flat color and one for textured geometry.
type RendererGL struct {
	win      core.Window
	programs [2]program
	vao      uint32
	vbo      uint32
	vboCap   int // bytes
	scratch  []float32
	textures map[renderer2d.TextureID]struct{}
	stats    renderer2d.Statistics
}

var _ core.Renderer = (*RendererGL)(nil)

func NewRendererGL(win core.Window, _ core.Config) (*RendererGL, error) {
	r := &RendererGL{win: win, textures: map[renderer2d.TextureID]struct{}{}}
	if err := r.Init(); err != nil {
		r.Shutdown()
		return nil, err
	}
	return r, nil
}

func (r *RendererGL) Init() error {
	for _, s := range []renderer2d.Shader{renderer2d.ShaderColor, renderer2d.ShaderTexture} {
		p, err := loadProgram(shaderName(s))
		if err != nil {
			return err
		}
		r.programs[s] = p
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	const f32 = 4
	stride := int32(renderer2d.VertexStride * f32)
	attrib := func(loc renderer2d.AttribLocation, size, offset int) {
		gl.EnableVertexAttribArray(uint32(loc))
		gl.VertexAttribPointerWithOffset(uint32(loc), int32(size), gl.FLOAT, false, stride, uintptr(offset*f32))
	}
	attrib(renderer2d.AttribPosition, renderer2d.PosComponents, 0)
	attrib(renderer2d.AttribColor, renderer2d.ColorComponents, renderer2d.PosComponents)
	attrib(renderer2d.AttribUV, renderer2d.UVComponents, renderer2d.PosComponents+renderer2d.ColorComponents)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	return nil
}

func (r *RendererGL) Shutdown() {
	for id := range r.textures {
		name := uint32(id)
		gl.DeleteTextures(1, &name)
	}
	clear(r.textures)
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
		r.vbo = 0
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	for i := range r.programs {
		if r.programs[i].id != 0 {
			gl.DeleteProgram(r.programs[i].id)
			r.programs[i] = program{}
		}
	}
}

func (r *RendererGL) Resize(w, h int) {
	gl.Viewport(0, 0, int32(w), int32(h))
}

func (r *RendererGL) Clear(rf, gf, bf, af float32) {
	gl.DepthMask(true)
	gl.ClearColor(rf, gf, bf, af)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// CreateTexture uploads tightly packed RGBA8 pixels. The GL texture name is the id.
func (r *RendererGL) CreateTexture(w, h int, rgba []byte) (renderer2d.TextureID, error) {
	if w <= 0 || h <= 0 || len(rgba) < w*h*4 {
		return renderer2d.NoTexture, fmt.Errorf("create texture: %dx%d with %d bytes", w, h, len(rgba))
	}
	var name uint32
	gl.GenTextures(1, &name)
	if name == 0 {
		return renderer2d.NoTexture, fmt.Errorf("create texture: no texture name")
	}
	gl.BindTexture(gl.TEXTURE_2D, name)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	id := renderer2d.TextureID(name)
	r.textures[id] = struct{}{}
	slog.Debug("gl: texture created", "id", id, "w", w, "h", h)
	return id, nil
}

// Submit draws cmds in order. Opaque commands write depth; translucent ones
// blend and only test against it.
func (r *RendererGL) Submit(cmds []renderer2d.RenderCommand, vp [16]float32) {
	defer profiler.Start("gl.Submit")()
	r.stats = renderer2d.Measure(cmds)
	if len(cmds) == 0 {
		return
	}

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	for i := range r.programs {
		p := r.programs[i]
		gl.UseProgram(p.id)
		gl.UniformMatrix4fv(p.uVP, 1, false, &vp[0])
		if p.uTex >= 0 {
			gl.Uniform1i(p.uTex, 0)
		}
	}
	gl.ActiveTexture(gl.TEXTURE0)

	current := -1
	blending := false
	gl.Disable(gl.BLEND)
	gl.DepthMask(true)

	for i := range cmds {
		c := &cmds[i]
		if c.Transparent != blending {
			blending = c.Transparent
			if blending {
				gl.Enable(gl.BLEND)
				gl.DepthMask(false)
			} else {
				gl.Disable(gl.BLEND)
				gl.DepthMask(true)
			}
		}
		if int(c.Shader) != current {
			current = int(c.Shader)
			gl.UseProgram(r.programs[c.Shader].id)
		}
		if c.Shader == renderer2d.ShaderTexture {
			gl.BindTexture(gl.TEXTURE_2D, uint32(c.Uniforms.Texture))
		}
		r.upload(c)
		gl.DrawArrays(primitiveMode(c.Primitive), 0, int32(c.VertexCount()))
	}

	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// upload streams one command into the shared buffer, orphaning it first.
func (r *RendererGL) upload(c *renderer2d.RenderCommand) {
	r.scratch = renderer2d.Interleave(r.scratch[:0], c)
	size := len(r.scratch) * 4
	if size > r.vboCap {
		r.vboCap = max(size, 2*r.vboCap)
	}
	gl.BufferData(gl.ARRAY_BUFFER, r.vboCap, nil, gl.STREAM_DRAW)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, unsafe.Pointer(&r.scratch[0]))
}

func primitiveMode(p renderer2d.Primitive) uint32 {
	switch p {
	case renderer2d.Lines:
		return gl.LINES
	case renderer2d.Points:
		return gl.POINTS
	default:
		return gl.TRIANGLES
	}
}

// Stats returns what the last Submit drew.
func (r *RendererGL) Stats() renderer2d.Statistics { return r.stats }

func (r *RendererGL) GPUVendor() string   { return gl.GoStr(gl.GetString(gl.VENDOR)) }
func (r *RendererGL) GPURenderer() string { return gl.GoStr(gl.GetString(gl.RENDERER)) }
func (r *RendererGL) GPUVersion() string  { return gl.GoStr(gl.GetString(gl.VERSION)) }
