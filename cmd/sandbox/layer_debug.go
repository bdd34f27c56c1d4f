package main

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/hubastard/arbor/engine/colors"
	"github.com/hubastard/arbor/engine/core"
	"github.com/hubastard/arbor/engine/geom"
	"github.com/hubastard/arbor/engine/gfx/renderer2d"
	"github.com/hubastard/arbor/engine/profiler"
	"github.com/hubastard/arbor/engine/scene"
	"github.com/hubastard/arbor/engine/ui"
	"github.com/hubastard/arbor/engine/ui/widgets"
)

const (
	speedscopePath = "profile.speedscope.json"
	panelWidth     = 320
)

type debugState struct {
	Tick      int
	FrameMs   float32
	Stats     renderer2d.Statistics
	MemoryMB  float32
	Routines  int
	GPU       [3]string
	Scopes    []profiler.Scope
	Collapsed bool
}

func declareDebug(b *ui.Builder, s debugState) {
	toggle := ui.On(b, func(s *debugState, _ *ui.PostBox) { s.Collapsed = !s.Collapsed })
	heading := func(str string) {
		b.Add(widgets.Label(str).Color(colors.Yellow).Padding4(0, 8, 0, 0))
	}
	line := func(format string, args ...any) {
		b.Add(widgets.Label(fmt.Sprintf(format, args...)).FontSize(14))
	}

	b.Add(widgets.Panel().Padding(16).BgColor(colors.Black.WithAlpha(0.5)), func() {
		b.Add(widgets.VStack().Gap(2), func() {
			b.Add(widgets.Button(fmt.Sprintf("Frame %d  %2.3f ms", s.Tick, s.FrameMs), toggle).FontSize(14))
			if s.Collapsed {
				return
			}
			heading("UI batches")
			line("Draw calls: %d", s.Stats.DrawCalls)
			line("Objects: %d", s.Stats.ObjectCount)
			line("Vertices: %d", s.Stats.VertexCount)
			line("Textures: %d", s.Stats.TextureCount)
			heading("Memory")
			line("Usage: %.3f MB", s.MemoryMB)
			line("Goroutines: %d", s.Routines)
			heading("GPU")
			line("Vendor: %s", s.GPU[0])
			line("Renderer: %s", s.GPU[1])
			line("Version: %s", s.GPU[2])
			if len(s.Scopes) > 0 {
				heading("Scopes")
				for _, sc := range s.Scopes {
					line("%s: %d x %v", sc.Name, sc.Count, sc.Mean())
				}
			}
		})
	})
}

// LayerDebug shows frame statistics in the top-right corner. Ctrl+P writes a
// speedscope profile when built with the profile tag.
type LayerDebug struct {
	gui           *ui.GuiContext[debugState]
	cam           *scene.ScreenCamera2D
	host          *LayerUI // shares its fonts
	stats         *renderer2d.Statistics
	frameDuration float32
	tick          int
	gpu           [3]string
	scale         float32
}

func (l *LayerDebug) OnAttach(e *core.Engine) {
	l.scale = e.Window.ContentScale()
	l.gpu = [3]string{e.Renderer.GPUVendor(), e.Renderer.GPURenderer(), e.Renderer.GPUVersion()}
	w, h := e.Window.FramebufferSize()
	viewport := geom.Sz(float32(w)/l.scale, float32(h)/l.scale)
	l.cam = scene.NewScreenCamera2D(viewport.W, viewport.H)

	var res ui.Resources
	if l.host != nil && l.host.lib != nil {
		res = l.host.lib
	}
	l.gui = ui.NewGuiContext(debugState{Collapsed: true}, declareDebug, ui.Options{
		Viewport:  geom.Sz(panelWidth, viewport.H),
		Resources: res,
		Logger:    slog.Default().With("layer", "debug"),
	})
	l.cam.Move(-(viewport.W-panelWidth), 0)
}

func (l *LayerDebug) OnDetach(e *core.Engine) {}

func (l *LayerDebug) OnUpdate(e *core.Engine, dt float64) {
	if l.tick%30 != 0 {
		return
	}
	l.gui.Mutate(func(s *debugState) {
		s.Tick = l.tick
		s.FrameMs = l.frameDuration
		if l.stats != nil {
			s.Stats = *l.stats
		}
		s.MemoryMB = float32(profiler.MemoryUsage()) / (1 << 20)
		s.Routines = profiler.NumGoroutine()
		s.GPU = l.gpu
		s.Scopes = profiler.Stats()
	})
}

func (l *LayerDebug) OnRender(e *core.Engine, alpha float64) {
	defer profiler.Start("LayerDebug.OnRender")()
	cmds := l.gui.Batches()
	l.cam.SetDepthRange(renderer2d.MaxElevation(cmds) + 1)
	e.Renderer.Submit(cmds, l.cam.VP())
}

func (l *LayerDebug) OnEvent(e *core.Engine, ev core.Event) bool {
	switch v := ev.(type) {
	case core.EventKey:
		if v.Down && v.Key == core.KeyP && (v.Mods&core.ModCtrl) != 0 {
			if !profiler.Enabled {
				slog.Info("profiler disabled; build with -tags profile")
				return true
			}
			if err := profiler.WriteSpeedscope(speedscopePath); err != nil {
				slog.Error("profiler dump", "err", err)
			} else {
				slog.Info("speedscope dump", "path", speedscopePath)
			}
			return true
		}
	case core.EventResize:
		viewport := geom.Sz(float32(v.W)/l.scale, float32(v.H)/l.scale)
		l.cam.SetViewport(viewport.W, viewport.H)
		l.cam.Move(-(viewport.W-panelWidth)-l.cam.X, 0)
		l.gui.Resize(geom.Sz(panelWidth, viewport.H))
	case core.EventMouseMove:
		cs := l.cursorScale()
		p := l.cam.ScreenToWorld(geom.Pt(float32(v.X)/cs, float32(v.Y)/cs))
		return l.gui.HandleEvent(core.EventMouseMove{X: float64(p.X), Y: float64(p.Y)})
	case core.EventMouseButton, core.EventCursorLeave:
		return l.gui.HandleEvent(ev)
	}
	return false
}

func (l *LayerDebug) cursorScale() float32 {
	if runtime.GOOS == "darwin" {
		return 1
	}
	return l.scale
}
