package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/hubastard/arbor/engine/assets"
	"github.com/hubastard/arbor/engine/colors"
	"github.com/hubastard/arbor/engine/core"
	"github.com/hubastard/arbor/engine/geom"
	"github.com/hubastard/arbor/engine/gfx/renderer2d"
	"github.com/hubastard/arbor/engine/scene"
	"github.com/hubastard/arbor/engine/text"
	"github.com/hubastard/arbor/engine/ui"
	"github.com/hubastard/arbor/engine/ui/widgets"
	"golang.org/x/image/font/gofont/goregular"
)

const baseFontPx = 16

type counterState struct {
	Count      int
	ShowSprite bool
}

func declareCounter(b *ui.Builder, s counterState) {
	inc := ui.On(b, func(s *counterState, _ *ui.PostBox) { s.Count++ })
	dec := ui.On(b, func(s *counterState, _ *ui.PostBox) { s.Count-- })
	toggle := ui.On(b, func(s *counterState, _ *ui.PostBox) { s.ShowSprite = !s.ShowSprite })
	quit := ui.On(b, func(_ *counterState, post *ui.PostBox) { post.Post(ui.QuitRequested{}) })

	b.Add(widgets.Panel().Padding(24).BgColor(colors.Black.WithAlpha(0.6)), func() {
		b.Add(widgets.VStack().Gap(12), func() {
			b.Add(widgets.Label(fmt.Sprintf("Count: %d", s.Count)).FontSize(28).Color(colors.Yellow))
			b.Add(widgets.HStack().Gap(8), func() {
				b.Add(widgets.Button("-", dec))
				b.Add(widgets.Button("+", inc))
			})
			b.Add(widgets.Canvas(160, 12, func(d *ui.DrawBuilder, size geom.Size) {
				d.Line(geom.Pt(0, size.H/2), geom.Pt(size.W, size.H/2), colors.Gray)
				x := size.W/2 + float32(max(-20, min(20, s.Count)))*size.W/40
				d.Triangles(
					[]geom.Point{geom.Pt(x-5, 0), geom.Pt(x+5, 0), geom.Pt(x, size.H)},
					[]colors.Color{colors.Yellow, colors.Yellow, colors.Red},
				)
			}))
			label := "Show sprite"
			if s.ShowSprite {
				label = "Hide sprite"
			}
			b.Add(widgets.Button(label, toggle))
			if s.ShowSprite {
				b.Add(widgets.Overlay(), func() {
					b.Add(widgets.Image("sprite.png").Fixed(96, 96))
					b.Add(widgets.Label("overlay").Padding(4).BgColor(colors.Black.WithAlpha(0.5)))
				})
			}
			b.Add(widgets.Button("Quit", quit).HoverColor(colors.Color{0.7, 0.25, 0.25, 1}))
		})
	})
}

// LayerUI hosts the counter interface and submits its batches every frame.
type LayerUI struct {
	gui         *ui.GuiContext[counterState]
	lib         *assets.Library
	cam         *scene.ScreenCamera2D
	scale       float32
	cursorScale float32
	stats       renderer2d.Statistics
}

func (l *LayerUI) OnAttach(e *core.Engine) {
	l.scale = e.Window.ContentScale()
	// macOS reports the cursor in logical units already
	l.cursorScale = l.scale
	if runtime.GOOS == "darwin" {
		l.cursorScale = 1
	}

	l.lib = assets.NewLibrary(os.DirFS(e.Config.AssetDir), e.Renderer)
	l.lib.SetScale(l.scale)
	font, err := text.NewFont(goregular.TTF, baseFontPx*l.scale, e.Renderer)
	if err != nil {
		slog.Error("ui: default font", "err", err)
	} else {
		l.lib.RegisterFont(widgets.DefaultFont, font)
	}

	viewport := l.viewport(e.Window.FramebufferSize())
	l.cam = scene.NewScreenCamera2D(viewport.W, viewport.H)
	l.gui = ui.NewGuiContext(counterState{}, declareCounter, ui.Options{
		Viewport:  viewport,
		Resources: l.lib,
		Logger:    slog.Default().With("layer", "ui"),
	})
}

func (l *LayerUI) OnDetach(e *core.Engine) { l.lib.Close() }

func (l *LayerUI) OnUpdate(e *core.Engine, dt float64) {
	for _, msg := range l.gui.Messages() {
		switch msg.(type) {
		case ui.QuitRequested:
			e.Window.RequestClose()
		}
	}
}

func (l *LayerUI) OnRender(e *core.Engine, alpha float64) {
	cmds := l.gui.Batches()
	l.stats = renderer2d.Measure(cmds)
	l.cam.SetDepthRange(renderer2d.MaxElevation(cmds) + 1)
	e.Renderer.Submit(cmds, l.cam.VP())
}

func (l *LayerUI) OnEvent(e *core.Engine, ev core.Event) bool {
	switch v := ev.(type) {
	case core.EventResize:
		viewport := l.viewport(v.W, v.H)
		l.cam.SetViewport(viewport.W, viewport.H)
		l.gui.Resize(viewport)
		return false
	case core.EventMouseMove:
		return l.gui.HandleEvent(core.EventMouseMove{X: v.X / float64(l.cursorScale), Y: v.Y / float64(l.cursorScale)})
	}
	return l.gui.HandleEvent(ev)
}

func (l *LayerUI) viewport(fbw, fbh int) geom.Size {
	return geom.Sz(float32(fbw)/l.scale, float32(fbh)/l.scale)
}
