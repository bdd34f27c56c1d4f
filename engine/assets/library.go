package assets

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path"

	"github.com/hubastard/arbor/engine/geom"
	"github.com/hubastard/arbor/engine/gfx/renderer2d"
	"github.com/hubastard/arbor/engine/text"
	"github.com/hubastard/arbor/engine/ui"
)

// TextureDir and FontDir are where the Library looks inside its file system.
const (
	TextureDir = "textures"
	FontDir    = "fonts"
)

type texture struct {
	id   renderer2d.TextureID
	size geom.Size
	ok   bool
}

// Library resolves texture and font names for widgets. Textures are loaded
// from TextureDir on first use and cached, failures included, so a missing file
// is reported once and then skipped quietly.
type Library struct {
	fsys     fs.FS
	up       renderer2d.TextureUploader
	scale    float32
	textures map[string]texture
	fonts    map[string]ui.GlyphLayout
	log      *slog.Logger
}

func NewLibrary(fsys fs.FS, up renderer2d.TextureUploader) *Library {
	return &Library{
		fsys:     fsys,
		up:       up,
		scale:    1,
		textures: map[string]texture{},
		fonts:    map[string]ui.GlyphLayout{},
		log:      slog.Default(),
	}
}

// SetScale sets the pixels per logical unit, e.g. the window content scale.
func (l *Library) SetScale(s float32) {
	if s > 0 {
		l.scale = s
	}
}

func (l *Library) Scale() float32 { return l.scale }

func (l *Library) Texture(name string) (renderer2d.TextureID, geom.Size, bool) {
	if name == "" {
		return renderer2d.NoTexture, geom.Size{}, false
	}
	if t, ok := l.textures[name]; ok {
		return t.id, t.size, t.ok
	}
	t := texture{}
	id, size, err := l.loadTexture(name)
	if err != nil {
		l.log.Warn("assets: texture unavailable", "name", name, "err", err)
	} else {
		t = texture{id: id, size: size, ok: true}
	}
	l.textures[name] = t
	return t.id, t.size, t.ok
}

func (l *Library) loadTexture(name string) (renderer2d.TextureID, geom.Size, error) {
	w, h, rgba, err := LoadPNG(l.fsys, path.Join(TextureDir, name))
	if err != nil {
		return renderer2d.NoTexture, geom.Size{}, err
	}
	id, err := l.up.CreateTexture(w, h, rgba)
	if err != nil {
		return renderer2d.NoTexture, geom.Size{}, fmt.Errorf("upload %q: %w", name, err)
	}
	return id, geom.Sz(float32(w), float32(h)), nil
}

func (l *Library) Font(family string) (ui.GlyphLayout, bool) {
	f, ok := l.fonts[family]
	return f, ok
}

// RegisterFont makes f available under family, replacing any previous font.
func (l *Library) RegisterFont(family string, f ui.GlyphLayout) { l.fonts[family] = f }

// LoadFont rasterizes FontDir/file at sizePx and registers it under family.
func (l *Library) LoadFont(family, file string, sizePx float32) (*text.Font, error) {
	f, err := text.LoadTTF(l.fsys, path.Join(FontDir, file), sizePx*l.scale, l.up)
	if err != nil {
		return nil, fmt.Errorf("font %q: %w", family, err)
	}
	l.RegisterFont(family, f)
	return f, nil
}

// Close releases every font the Library loaded.
func (l *Library) Close() {
	for family, f := range l.fonts {
		if tf, ok := f.(*text.Font); ok {
			_ = tf.Close()
		}
		delete(l.fonts, family)
	}
}

var _ ui.Resources = (*Library)(nil)
