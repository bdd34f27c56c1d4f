package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/hubastard/arbor/engine/core"
	glbackend "github.com/hubastard/arbor/engine/gfx/gl"
	"github.com/hubastard/arbor/engine/platform"
	"github.com/hubastard/arbor/engine/profiler"
)

const configPath = "arbor.toml"

type App struct {
	lastFrame  time.Time
	tick       int
	uiLayer    *LayerUI
	debugLayer *LayerDebug
}

func (a *App) OnStart(e *core.Engine) {
	profiler.Init(1 << 10) // ~1K scope samples

	a.uiLayer = &LayerUI{}
	e.PushLayer(a.uiLayer)

	a.debugLayer = &LayerDebug{host: a.uiLayer, stats: &a.uiLayer.stats}
	e.PushLayer(a.debugLayer)
}

func (a *App) OnUpdate(e *core.Engine, dt float64) {
	a.tick++

	// Calculate frame duration
	now := time.Now()
	if a.debugLayer != nil && !a.lastFrame.IsZero() {
		a.debugLayer.frameDuration = float32(now.Sub(a.lastFrame).Seconds() * 1000.0)
		a.debugLayer.tick = a.tick
	}
	a.lastFrame = now
}

func (a *App) OnRender(e *core.Engine, alpha float64) {}

func (a *App) OnEvent(e *core.Engine, ev core.Event) {
	switch v := ev.(type) {
	case core.EventCloseRequested:
		e.Window.RequestClose()
	case core.EventKey:
		if v.Down && v.Key == core.KeyEscape {
			e.Window.RequestClose()
		}
	}
}

func (a *App) OnShutdown(e *core.Engine) {}

func main() {
	cfg, err := core.LoadConfig(configPath)
	if err != nil {
		slog.Error("config", "path", configPath, "err", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()})))

	newWindow := func(cfg core.Config) (core.Window, error) {
		return platform.NewGLFWWindow(cfg, nil)
	}
	newRenderer := func(win core.Window, cfg core.Config) (core.Renderer, error) {
		return glbackend.NewRendererGL(win, cfg)
	}

	if err := core.Run(&App{}, cfg, newWindow, newRenderer); err != nil {
		slog.Error("run", "err", err)
		os.Exit(1)
	}
}
