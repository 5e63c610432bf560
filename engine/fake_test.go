package engine

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/oxwell/brdfview/engine/render"
)

// fakeWindow drives the frame loop for a fixed number of polls and can fire
// window events at chosen poll indices.
type fakeWindow struct {
	width, height int
	framesLeft    int
	polled        int

	// events fire during PollEvents, keyed by poll index, mirroring how GLFW
	// delivers callbacks from inside glfw.PollEvents.
	events map[int]func(w *fakeWindow)

	onResize      func(width, height int)
	onMouseButton func(x, y int32, pressed bool)
	onMouseMove   func(x, y int32)
	closed        bool
}

func newFakeWindow(width, height, frames int) *fakeWindow {
	return &fakeWindow{
		width:      width,
		height:     height,
		framesLeft: frames,
		events:     make(map[int]func(w *fakeWindow)),
	}
}

func (w *fakeWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *fakeWindow) SetMouseButtonCallback(callback func(x, y int32, pressed bool)) {
	w.onMouseButton = callback
}

func (w *fakeWindow) SetMouseMoveCallback(callback func(x, y int32)) {
	w.onMouseMove = callback
}

func (w *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return nil
}

func (w *fakeWindow) PollEvents() bool {
	if w.framesLeft <= 0 {
		return false
	}
	if fire, ok := w.events[w.polled]; ok {
		fire(w)
	}
	w.polled++
	w.framesLeft--
	return true
}

func (w *fakeWindow) Close() error {
	w.closed = true
	return nil
}

func (w *fakeWindow) Width() int {
	return w.width
}

func (w *fakeWindow) Height() int {
	return w.height
}

// fakeBackend records backend calls for loop-level assertions.
type fakeBackend struct {
	configured   [][2]int
	liveTextures map[render.TextureHandle][2]int
	createdCount int
	releasedLog  []render.TextureHandle

	buffers  map[render.BufferHandle][]byte
	writeLog []render.BufferHandle

	clearLog   [][4]float32
	drawLog    []render.DrawCommand
	overlayLog []render.OverlayCommand
	presentLog [][3]int // target, width, height

	presentErr error
	released   bool

	nextTexture render.TextureHandle
	nextBuffer  render.BufferHandle

	callLog []string
}

var _ render.Backend = &fakeBackend{}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		liveTextures: make(map[render.TextureHandle][2]int),
		buffers:      make(map[render.BufferHandle][]byte),
	}
}

func (f *fakeBackend) ConfigureSurface(width, height int, mode render.PresentMode) error {
	f.callLog = append(f.callLog, "configure")
	f.configured = append(f.configured, [2]int{width, height})
	return nil
}

func (f *fakeBackend) CreateTargetTexture(width, height int) (render.TextureHandle, error) {
	f.callLog = append(f.callLog, "createTexture")
	f.nextTexture++
	f.liveTextures[f.nextTexture] = [2]int{width, height}
	f.createdCount++
	return f.nextTexture, nil
}

func (f *fakeBackend) ReleaseTexture(handle render.TextureHandle) {
	f.callLog = append(f.callLog, "releaseTexture")
	delete(f.liveTextures, handle)
	f.releasedLog = append(f.releasedLog, handle)
}

func (f *fakeBackend) CreateVertexBuffer(data []byte) (render.BufferHandle, error) {
	return f.createBuffer(data)
}

func (f *fakeBackend) CreateIndexBuffer(data []byte) (render.BufferHandle, error) {
	return f.createBuffer(data)
}

func (f *fakeBackend) CreateUniformBuffer(size int) (render.BufferHandle, error) {
	return f.createBuffer(make([]byte, size))
}

func (f *fakeBackend) createBuffer(data []byte) (render.BufferHandle, error) {
	f.nextBuffer++
	stored := make([]byte, len(data))
	copy(stored, data)
	f.buffers[f.nextBuffer] = stored
	return f.nextBuffer, nil
}

func (f *fakeBackend) WriteBuffer(handle render.BufferHandle, data []byte) error {
	f.callLog = append(f.callLog, "write")
	stored := make([]byte, len(data))
	copy(stored, data)
	f.buffers[handle] = stored
	f.writeLog = append(f.writeLog, handle)
	return nil
}

func (f *fakeBackend) Clear(target render.TextureHandle, width, height int, color [4]float32) error {
	f.callLog = append(f.callLog, "clear")
	f.clearLog = append(f.clearLog, color)
	return nil
}

func (f *fakeBackend) Draw(cmd render.DrawCommand) error {
	f.callLog = append(f.callLog, "draw")
	f.drawLog = append(f.drawLog, cmd)
	return nil
}

func (f *fakeBackend) DrawOverlay(cmd render.OverlayCommand) error {
	f.callLog = append(f.callLog, "overlay")
	f.overlayLog = append(f.overlayLog, cmd)
	return nil
}

func (f *fakeBackend) Present(target render.TextureHandle, width, height int) error {
	if f.presentErr != nil {
		return f.presentErr
	}
	f.callLog = append(f.callLog, "present")
	f.presentLog = append(f.presentLog, [3]int{int(target), width, height})
	return nil
}

func (f *fakeBackend) Release() {
	f.released = true
}
