package engine

import (
	"sync/atomic"

	"github.com/oxwell/brdfview/common"
	"github.com/oxwell/brdfview/engine/camera"
	"github.com/oxwell/brdfview/engine/core"
	"github.com/oxwell/brdfview/engine/overlay"
	"github.com/oxwell/brdfview/engine/profiler"
	"github.com/oxwell/brdfview/engine/render"
	"github.com/oxwell/brdfview/engine/window"
)

// minSurfaceDim is the smallest surface edge the engine will configure.
// Resize events reporting less than this (a collapsed or minimized window)
// are clamped so the projection aspect ratio stays finite.
const minSurfaceDim = 8

// defaultClearColor is the frame background.
var defaultClearColor = [4]float32{0.2, 0.3, 0.3, 1.0}

// Drawable is one object rendered each frame: a named sphere with an
// editable world position, base color and radius. The overlay exposes these
// fields for live editing.
type Drawable struct {
	Name     string
	Position [3]float32
	Color    [3]float32
	Radius   float32
}

type engine struct {
	window  window.Window
	backend render.Backend
	surface *render.Surface
	target  *render.FrameTarget
	camera  camera.Camera
	overlay overlay.Overlay

	mesh         *render.Mesh
	sceneBuffer  *render.UniformBuffer
	objectBuffer *render.UniformBuffer

	drawables  []*Drawable
	clearColor [4]float32

	// resizePending is the single-slot resize signal. The window callback
	// sets it (possibly several times per poll); the frame loop consumes it
	// once, performing exactly one rebuild regardless of how many events
	// coalesced. The dimension fields are only touched on the loop thread,
	// where GLFW also delivers its callbacks.
	resizePending atomic.Bool
	pendingWidth  int
	pendingHeight int

	mouseX, mouseY int32
	mouseDown      bool

	profiler         *profiler.Profiler
	profilingEnabled bool

	running bool

	vsync         bool
	forceFallback bool
	windowOptions []window.BuilderOption
	cameraOptions []camera.CameraBuilderOption
}

// Engine owns the window, the GPU backend and the frame loop. Everything
// runs on the calling goroutine; the only intentional blocking point is the
// vsync wait inside Present.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Camera returns the scene camera for repositioning between frames.
	//
	// Returns:
	//   - camera.Camera: the camera instance
	Camera() camera.Camera

	// AddDrawable registers an object to render every frame. Drawables are
	// drawn in registration order and appear in the overlay panel.
	//
	// Parameters:
	//   - d: the drawable to register
	AddDrawable(d *Drawable)

	// Drawables returns the registered drawables in draw order.
	//
	// Returns:
	//   - []*Drawable: the registered drawables
	Drawables() []*Drawable

	// EnableProfiler enables periodic frame statistics in the log.
	EnableProfiler()

	// DisableProfiler disables frame statistics output.
	DisableProfiler()

	// Run executes the frame loop until the window closes or a present
	// failure occurs. Blocks the calling goroutine.
	//
	// Returns:
	//   - error: an InitError if presentation failed; nil on a normal close
	Run() error

	// Quit asks the frame loop to stop after the current frame. Safe to call
	// from callbacks.
	Quit()

	// Release frees the GPU backend and closes the window. The engine is
	// unusable afterwards.
	Release()
}

var _ Engine = &engine{}

// NewEngine creates the window, initializes the GPU device context, builds
// the presentation surface and frame target, and uploads the shared mesh and
// constant buffers. Any failure during device initialization is returned as
// an InitError; there is no partial engine.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the fully initialized engine
//   - error: an InitError naming the first initialization step that failed
func NewEngine(options ...EngineBuilderOption) (Engine, error) {
	e := &engine{
		clearColor: defaultClearColor,
		vsync:      true,
		profiler:   profiler.NewProfiler(),
	}
	for _, option := range options {
		option(e)
	}

	if e.window == nil {
		win, err := window.New(e.windowOptions...)
		if err != nil {
			return nil, err
		}
		e.window = win
	}

	if e.backend == nil {
		backend, err := render.NewBackend(e.window.SurfaceDescriptor(), e.forceFallback)
		if err != nil {
			e.window.Close()
			return nil, err
		}
		e.backend = backend
	}
	backend := e.backend

	width, height := clampDims(e.window.Width(), e.window.Height())
	mode := render.PresentModeVSync
	if !e.vsync {
		mode = render.PresentModeImmediate
	}
	surface, err := render.NewSurface(backend, width, height, mode)
	if err != nil {
		e.Release()
		return nil, err
	}
	e.surface = surface

	e.target = render.NewFrameTarget()
	if err := e.target.Build(surface); err != nil {
		e.Release()
		return nil, err
	}

	if e.camera == nil {
		e.camera = camera.NewCamera(e.cameraOptions...)
	}
	e.camera.SetAspect(float32(width) / float32(height))

	if e.overlay == nil {
		e.overlay = overlay.NewOverlay()
	}

	e.mesh = render.CubeMesh()
	if err := e.mesh.Upload(backend); err != nil {
		e.Release()
		return nil, err
	}

	sceneConstants := render.SceneConstants{}
	e.sceneBuffer, err = render.NewUniformBuffer(backend, sceneConstants.Size())
	if err != nil {
		e.Release()
		return nil, err
	}
	objectConstants := render.ObjectConstants{}
	e.objectBuffer, err = render.NewUniformBuffer(backend, objectConstants.Size())
	if err != nil {
		e.Release()
		return nil, err
	}

	e.window.SetResizeCallback(func(w, h int) {
		e.pendingWidth = w
		e.pendingHeight = h
		e.resizePending.Store(true)
	})
	e.window.SetMouseButtonCallback(func(x, y int32, pressed bool) {
		e.mouseX = x
		e.mouseY = y
		e.mouseDown = pressed
	})
	e.window.SetMouseMoveCallback(func(x, y int32) {
		e.mouseX = x
		e.mouseY = y
	})

	return e, nil
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Camera() camera.Camera {
	return e.camera
}

func (e *engine) AddDrawable(d *Drawable) {
	e.drawables = append(e.drawables, d)
}

func (e *engine) Drawables() []*Drawable {
	return e.drawables
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) Quit() {
	e.running = false
}

func (e *engine) Run() error {
	e.running = true
	core.LogInfo("frame loop started", "width", e.surface.Width(), "height", e.surface.Height(), "vsync", e.vsync)

	for e.running && e.window.PollEvents() {
		if e.resizePending.Load() {
			if err := e.handleResize(); err != nil {
				return err
			}
		}

		if err := e.renderFrame(); err != nil {
			return err
		}

		if e.profilingEnabled {
			e.profiler.Tick()
		}
	}

	e.running = false
	core.LogInfo("frame loop stopped")
	return nil
}

// handleResize consumes the pending resize signal: exactly one discard, one
// surface resize and one rebuild per loop iteration, no matter how many
// window events collapsed into the signal.
func (e *engine) handleResize() error {
	width, height := clampDims(e.pendingWidth, e.pendingHeight)
	e.resizePending.Store(false)

	if width == e.surface.Width() && height == e.surface.Height() {
		return nil
	}
	if err := e.target.Rebuild(e.surface, width, height); err != nil {
		return err
	}
	e.camera.SetAspect(float32(width) / float32(height))
	core.LogDebug("frame target rebuilt", "width", width, "height", height)
	return nil
}

func (e *engine) renderFrame() error {
	width := e.target.Width()
	height := e.target.Height()

	if err := e.writeSceneConstants(); err != nil {
		return err
	}
	if err := e.backend.Clear(e.target.Handle(), width, height, e.clearColor); err != nil {
		return err
	}

	for _, d := range e.drawables {
		if err := e.drawObject(d, width, height); err != nil {
			return err
		}
	}

	if err := e.drawOverlay(width, height); err != nil {
		return err
	}

	return e.surface.Present(e.target)
}

func (e *engine) writeSceneConstants() error {
	constants := render.SceneConstants{
		View: e.camera.ViewMatrix(),
		Proj: e.camera.ProjectionMatrix(),
		Eye:  e.camera.Position(),
	}
	region := e.sceneBuffer.ScopedWrite()
	copy(region.Bytes(), constants.Marshal())
	return region.Close()
}

// drawObject rewrites the shared object constant buffer for this drawable and
// submits its draw before the next rewrite, so every object renders with its
// own constants despite sharing one buffer.
func (e *engine) drawObject(d *Drawable, width, height int) error {
	var model [16]float32
	common.AffineTransform(model[:], d.Radius*2, d.Position[0], d.Position[1], d.Position[2])

	constants := render.ObjectConstants{
		Model:    model,
		Color:    d.Color,
		Position: d.Position,
		Radius:   d.Radius,
	}
	region := e.objectBuffer.ScopedWrite()
	copy(region.Bytes(), constants.Marshal())
	if err := region.Close(); err != nil {
		return err
	}

	return e.backend.Draw(render.DrawCommand{
		Target:       e.target.Handle(),
		Width:        width,
		Height:       height,
		VertexBuffer: e.mesh.VertexBuffer(),
		IndexBuffer:  e.mesh.IndexBuffer(),
		IndexFormat:  e.mesh.IndexFormat(),
		IndexCount:   e.mesh.IndexCount(),
		SceneBuffer:  e.sceneBuffer.Handle(),
		ObjectBuffer: e.objectBuffer.Handle(),
	})
}

func (e *engine) drawOverlay(width, height int) error {
	e.overlay.BeginFrame(width, height, float32(e.mouseX), float32(e.mouseY), e.mouseDown)
	if e.overlay.CollapsingHeader("Camera") {
		position := e.camera.Position()
		if e.overlay.DragFloat3("position##Camera", &position, 0.01) {
			e.camera.SetPosition(position[0], position[1], position[2])
		}
		target := e.camera.Target()
		if e.overlay.DragFloat3("target##Camera", &target, 0.01) {
			e.camera.SetTarget(target[0], target[1], target[2])
		}
	}
	for _, d := range e.drawables {
		if e.overlay.CollapsingHeader(d.Name) {
			e.overlay.DragFloat3("position##"+d.Name, &d.Position, 0.01)
			e.overlay.ColorEdit3("color##"+d.Name, &d.Color)
		}
	}
	vertexData, vertexCount := e.overlay.EndFrame()
	if vertexCount == 0 {
		return nil
	}
	return e.backend.DrawOverlay(render.OverlayCommand{
		Target:      e.target.Handle(),
		Width:       width,
		Height:      height,
		VertexData:  vertexData,
		VertexCount: vertexCount,
	})
}

func (e *engine) Release() {
	if e.target != nil && e.target.Bound() {
		e.target.Discard()
	}
	if e.backend != nil {
		e.backend.Release()
		e.backend = nil
	}
	if e.window != nil {
		if err := e.window.Close(); err != nil {
			core.LogWarn("window close failed", "error", err)
		}
		e.window = nil
	}
}

func clampDims(width, height int) (int, int) {
	if width < minSurfaceDim {
		width = minSurfaceDim
	}
	if height < minSurfaceDim {
		height = minSurfaceDim
	}
	return width, height
}
