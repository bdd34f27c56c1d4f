package core

import (
	"time"

	"github.com/hubastard/arbor/engine/gfx/renderer2d"
)

// App defines the application hooks.
type App interface {
	OnStart(e *Engine)                 // called once after window/renderer init
	OnUpdate(e *Engine, dt float64)    // called at a fixed tick (60Hz by default)
	OnRender(e *Engine, alpha float64) // render with interpolation alpha [0..1]
	OnEvent(e *Engine, ev Event)       // input/window events not consumed by a layer
	OnShutdown(e *Engine)              // before exit
}

// Engine exposes core services to the App and its layers.
type Engine struct {
	Window   Window
	Renderer Renderer
	Layers   LayerStack
	Input    *Input
	Config   Config
	start    time.Time
}

func (e *Engine) Uptime() time.Duration { return time.Since(e.start) }

// Window abstraction.
type Window interface {
	PollEvents()
	SwapBuffers()
	ShouldClose() bool
	RequestClose()
	FramebufferSize() (int, int)
	ContentScale() float32
	SetTitle(title string)
	SetEventCallback(cb func(Event))
}

// Renderer executes render commands produced by the 2D batcher.
type Renderer interface {
	Resize(w, h int)
	Clear(r, g, b, a float32)
	renderer2d.TextureUploader
	// Submit draws cmds in order with the given view-projection matrix.
	Submit(cmds []renderer2d.RenderCommand, vp [16]float32)
	GPUVendor() string
	GPURenderer() string
	GPUVersion() string
	Shutdown()
}

// Event model. The set is closed: only this package defines events.
type Event interface{ isEvent() }

type EventCloseRequested struct{}

func (EventCloseRequested) isEvent() {}

type EventResize struct{ W, H int }

func (EventResize) isEvent() {}

type EventKey struct {
	Key  Key
	Down bool
	Mods Mod
}

func (EventKey) isEvent() {}

type EventMouseMove struct{ X, Y float64 }

func (EventMouseMove) isEvent() {}

type EventMouseButton struct {
	Button MouseButton
	Down   bool
	Mods   Mod
}

func (EventMouseButton) isEvent() {}

// EventCursorEnter and EventCursorLeave report the pointer crossing the window edge.
type EventCursorEnter struct{}

func (EventCursorEnter) isEvent() {}

type EventCursorLeave struct{}

func (EventCursorLeave) isEvent() {}

type EventScroll struct{ Xoff, Yoff float64 }

func (EventScroll) isEvent() {}

// Key/mod enums (subset; add as needed).
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeySpace
	KeyEnter
	KeyTab
	KeyBackspace
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyW
	KeyA
	KeyS
	KeyD
	KeyP
	KeyQ
)

type Mod int

const (
	ModNone  Mod = 0
	ModShift Mod = 1 << 0
	ModCtrl  Mod = 1 << 1
	ModAlt   Mod = 1 << 2
	ModSuper Mod = 1 << 3
)

type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

func (b MouseButton) String() string {
	switch b {
	case MouseButtonLeft:
		return "left"
	case MouseButtonRight:
		return "right"
	case MouseButtonMiddle:
		return "middle"
	default:
		return "other"
	}
}
