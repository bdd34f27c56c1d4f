package text

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"io/fs"

	"github.com/hubastard/arbor/engine/geom"
	"github.com/hubastard/arbor/engine/gfx/renderer2d"
	"github.com/hubastard/arbor/engine/ui"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// MaxAtlasSize bounds the square glyph atlas.
const MaxAtlasSize = 4096

var ErrAtlasTooLarge = errors.New("text: font atlas too large")

type glyph struct {
	advance  float32 // pixels
	bearingX float32 // left bearing in pixels
	bearingY float32 // distance from baseline to glyph top
	w, h     int     // bitmap size
	uv       geom.Rect
}

// Font is a rasterized face packed into a single white-on-transparent texture.
// Layout scales the atlas metrics, so one Font serves every text size.
type Font struct {
	SizePx                   float32
	Ascent, Descent, LineGap float32
	AtlasW, AtlasH           int

	glyphs  map[rune]glyph
	texture renderer2d.TextureID
	face    font.Face
}

// LoadTTF reads a TrueType/OpenType file from fsys and builds its atlas.
func LoadTTF(fsys fs.FS, path string, sizePx float32, up renderer2d.TextureUploader) (*Font, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	return NewFont(data, sizePx, up)
}

// NewFont rasterizes Latin-1 from ttf at sizePx and uploads the atlas.
func NewFont(ttf []byte, sizePx float32, up renderer2d.TextureUploader) (*Font, error) {
	ft, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size: float64(sizePx), DPI: 72, Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}

	m := face.Metrics()
	ascent := float32(m.Ascent.Round())
	descent := float32(-m.Descent.Round())
	lineGap := float32(m.Height.Round()) - ascent + descent

	type meas struct {
		r      rune
		w, h   int
		adv    float32
		bx, by float32
	}
	var measured []meas
	for r := rune(32); r <= 255; r++ {
		br, adv, ok := face.GlyphBounds(r)
		if !ok {
			continue
		}
		measured = append(measured, meas{
			r:   r,
			w:   (br.Max.X - br.Min.X).Round(),
			h:   (br.Max.Y - br.Min.Y).Round(),
			adv: float32(adv.Round()),
			bx:  float32(br.Min.X.Round()),
			by:  float32(-br.Min.Y.Round()),
		})
	}

	// Shelf packer: rows left to right, growing the square until everything fits.
	const padding = 2
	size := 128
	var pos map[rune]image.Point
	for {
		x, y, rowH := padding, padding, 0
		fits := true
		pos = make(map[rune]image.Point, len(measured))
		for _, g := range measured {
			if g.w == 0 || g.h == 0 {
				continue
			}
			if g.w+padding*2 > size || g.h+padding*2 > size {
				fits = false
				break
			}
			if x+g.w+padding > size {
				x = padding
				y += rowH + padding
				rowH = 0
			}
			if y+g.h+padding > size {
				fits = false
				break
			}
			pos[g.r] = image.Pt(x, y)
			x += g.w + padding
			rowH = max(rowH, g.h)
		}
		if fits {
			break
		}
		size *= 2
		if size > MaxAtlasSize {
			_ = face.Close()
			return nil, fmt.Errorf("%w (>%d)", ErrAtlasTooLarge, MaxAtlasSize)
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(dst, dst.Bounds(), image.Transparent, image.Point{}, draw.Src)
	drawer := &font.Drawer{Dst: dst, Src: image.White, Face: face}

	glyphs := make(map[rune]glyph, len(measured))
	for _, g := range measured {
		out := glyph{advance: g.adv, bearingX: g.bx, bearingY: g.by, w: g.w, h: g.h}
		if p, ok := pos[g.r]; ok {
			// the drawer's dot sits on the baseline, left of the bearing
			drawer.Dot = fixed.P(p.X-int(g.bx), p.Y+int(g.by))
			drawer.DrawString(string(g.r))
			s := float32(size)
			out.uv = geom.Rect{
				Min: geom.Pt(float32(p.X)/s, float32(p.Y)/s),
				Max: geom.Pt(float32(p.X+g.w)/s, float32(p.Y+g.h)/s),
			}
		}
		glyphs[g.r] = out
	}

	tex, err := up.CreateTexture(size, size, dst.Pix)
	if err != nil {
		_ = face.Close()
		return nil, fmt.Errorf("upload font atlas: %w", err)
	}

	return &Font{
		SizePx: sizePx,
		Ascent: ascent, Descent: descent, LineGap: lineGap,
		AtlasW: size, AtlasH: size,
		glyphs:  glyphs,
		texture: tex,
		face:    face,
	}, nil
}

func (f *Font) Close() error {
	if f == nil || f.face == nil {
		return nil
	}
	err := f.face.Close()
	f.face = nil
	return err
}

func (f *Font) Texture() renderer2d.TextureID { return f.texture }

// LineHeight is the distance between baselines at the atlas size.
func (f *Font) LineHeight() float32 { return f.Ascent - f.Descent + f.LineGap }

func (f *Font) kern(prev, r rune) float32 {
	if prev < 0 || f.face == nil {
		return 0
	}
	return float32(f.face.Kern(prev, r)) / 64
}

// Layout places the glyphs of s with the top-left corner of the first line at
// the origin. Lines break at '\n'. Runes outside the atlas advance like a space.
func (f *Font) Layout(s string, size float32) ([]ui.Glyph, geom.Size) {
	if s == "" {
		return nil, geom.Size{}
	}
	scale := size / f.SizePx
	lineH := f.LineHeight()
	var out []ui.Glyph
	var penX, width float32
	baseY := f.Ascent
	lines := 1
	prev := rune(-1)

	for _, r := range s {
		if r == '\n' {
			width = max(width, penX)
			penX = 0
			baseY += lineH
			lines++
			prev = -1
			continue
		}
		g, ok := f.glyphs[r]
		if !ok {
			penX += f.glyphs[' '].advance
			prev = r
			continue
		}
		penX += f.kern(prev, r)
		if g.w > 0 && g.h > 0 {
			left := penX + g.bearingX
			top := baseY - g.bearingY
			out = append(out, ui.Glyph{
				Rect: geom.Rect{
					Min: geom.Pt(left*scale, top*scale),
					Max: geom.Pt((left+float32(g.w))*scale, (top+float32(g.h))*scale),
				},
				UV: g.uv,
			})
		}
		penX += g.advance
		prev = r
	}
	width = max(width, penX)
	return out, geom.Size{W: width * scale, H: float32(lines) * lineH * scale}
}

// Measure returns the bounds Layout would report.
func (f *Font) Measure(s string, size float32) geom.Size {
	_, bounds := f.Layout(s, size)
	return bounds
}

var _ ui.GlyphLayout = (*Font)(nil)
