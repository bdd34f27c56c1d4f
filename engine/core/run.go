package core

import (
	"log/slog"
	"runtime"
	"time"

	"github.com/hubastard/arbor/engine/profiler"
)

// Run wires the platform window + renderer and executes the main loop.
func Run(app App, cfg Config, newWindow func(Config) (Window, error), newRenderer func(Window, Config) (Renderer, error)) error {
	// Graphics contexts require the main OS thread.
	runtime.LockOSThread()

	win, err := newWindow(cfg)
	if err != nil {
		return err
	}

	rend, err := newRenderer(win, cfg)
	if err != nil {
		return err
	}
	defer rend.Shutdown()

	w, h := win.FramebufferSize()
	rend.Resize(w, h)
	slog.Info("renderer ready", "vendor", rend.GPUVendor(), "renderer", rend.GPURenderer(), "version", rend.GPUVersion())

	eng := &Engine{Window: win, Renderer: rend, Input: NewInput(), Config: cfg, start: time.Now()}
	win.SetEventCallback(func(ev Event) { eng.dispatch(app, ev) })

	app.OnStart(eng)

	// Fixed timestep with interpolation
	tick := time.Second / time.Duration(max(cfg.TickRate, 1))
	var (
		accum   time.Duration
		prev    = time.Now()
		clear   = cfg.ClearColor
		maxStep = 10 // prevent spiral of death
	)

	for !win.ShouldClose() {
		endFrame := profiler.Start("frame")
		now := time.Now()
		accum += now.Sub(prev)
		prev = now

		// Poll OS events (platform will emit via callbacks)
		win.PollEvents()

		steps := 0
		for accum >= tick && steps < maxStep {
			dt := tick.Seconds()
			app.OnUpdate(eng, dt)
			eng.Layers.ForEach(func(l Layer) { l.OnUpdate(eng, dt) })
			accum -= tick
			steps++
		}
		alpha := float64(accum) / float64(tick)

		rend.Clear(clear[0], clear[1], clear[2], clear[3])
		app.OnRender(eng, alpha)
		eng.Layers.ForEach(func(l Layer) { l.OnRender(eng, alpha) })

		win.SwapBuffers()
		endFrame()
	}

	for {
		l, ok := eng.Layers.Pop()
		if !ok {
			break
		}
		l.OnDetach(eng)
	}
	app.OnShutdown(eng)
	slog.Info("engine exit", "uptime", eng.Uptime().Round(time.Millisecond))
	return nil
}

// PushLayer attaches l on top of the stack.
func (e *Engine) PushLayer(l Layer) {
	e.Layers.Push(l)
	l.OnAttach(e)
}

func (e *Engine) dispatch(app App, ev Event) {
	if e.Input != nil {
		e.Input.Handle(ev)
	}
	if _, ok := ev.(EventResize); ok {
		fw, fh := e.Window.FramebufferSize()
		if fw >= 1 && fh >= 1 {
			e.Renderer.Resize(fw, fh)
		}
	}
	if e.Layers.Dispatch(e, ev) {
		return
	}
	app.OnEvent(e, ev)
}
