package engine

import (
	"github.com/oxwell/brdfview/engine/camera"
	"github.com/oxwell/brdfview/engine/overlay"
	"github.com/oxwell/brdfview/engine/render"
	"github.com/oxwell/brdfview/engine/window"
)

type EngineBuilderOption func(*engine)

// WithWindowOptions forwards functional options to the window created by
// NewEngine.
//
// Parameters:
//   - options: window options (title, dimensions)
//
// Returns:
//   - EngineBuilderOption: a function that stores the window options
func WithWindowOptions(options ...window.BuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.windowOptions = append(e.windowOptions, options...)
	}
}

// WithCameraOptions forwards functional options to the camera created by
// NewEngine. Ignored when WithCamera supplies a camera directly.
//
// Parameters:
//   - options: camera options (position, target, perspective settings)
//
// Returns:
//   - EngineBuilderOption: a function that stores the camera options
func WithCameraOptions(options ...camera.CameraBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.cameraOptions = append(e.cameraOptions, options...)
	}
}

// WithCamera supplies a pre-built camera instead of having NewEngine create one.
//
// Parameters:
//   - c: the camera to use
//
// Returns:
//   - EngineBuilderOption: a function that sets the camera
func WithCamera(c camera.Camera) EngineBuilderOption {
	return func(e *engine) {
		e.camera = c
	}
}

// WithOverlay supplies a pre-built overlay instead of having NewEngine create one.
//
// Parameters:
//   - o: the overlay to use
//
// Returns:
//   - EngineBuilderOption: a function that sets the overlay
func WithOverlay(o overlay.Overlay) EngineBuilderOption {
	return func(e *engine) {
		e.overlay = o
	}
}

// WithWindow supplies a pre-built window instead of having NewEngine create
// one.
//
// Parameters:
//   - w: the window to use
//
// Returns:
//   - EngineBuilderOption: a function that sets the window
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithBackend supplies a pre-built GPU backend instead of having NewEngine
// initialize the device context from the window surface.
//
// Parameters:
//   - b: the backend to use
//
// Returns:
//   - EngineBuilderOption: a function that sets the backend
func WithBackend(b render.Backend) EngineBuilderOption {
	return func(e *engine) {
		e.backend = b
	}
}

// WithVSync controls whether presentation waits for vertical blank.
// Defaults to true.
//
// Parameters:
//   - enabled: whether to present with vsync
//
// Returns:
//   - EngineBuilderOption: a function that sets the present mode
func WithVSync(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.vsync = enabled
	}
}

// WithForceFallbackAdapter requests a software GPU adapter instead of
// hardware. Useful on machines without a usable GPU driver.
//
// Parameters:
//   - force: whether to force the fallback adapter
//
// Returns:
//   - EngineBuilderOption: a function that sets adapter selection
func WithForceFallbackAdapter(force bool) EngineBuilderOption {
	return func(e *engine) {
		e.forceFallback = force
	}
}

// WithClearColor sets the frame background color.
//
// Parameters:
//   - r, g, b, a: color components in [0, 1]
//
// Returns:
//   - EngineBuilderOption: a function that sets the clear color
func WithClearColor(r, g, b, a float32) EngineBuilderOption {
	return func(e *engine) {
		e.clearColor = [4]float32{r, g, b, a}
	}
}

// WithProfiling enables periodic frame statistics from engine start.
//
// Returns:
//   - EngineBuilderOption: a function that enables profiling
func WithProfiling() EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = true
	}
}

// WithDrawables registers drawables at construction time.
//
// Parameters:
//   - drawables: the drawables to register in draw order
//
// Returns:
//   - EngineBuilderOption: a function that registers the drawables
func WithDrawables(drawables ...*Drawable) EngineBuilderOption {
	return func(e *engine) {
		e.drawables = append(e.drawables, drawables...)
	}
}
