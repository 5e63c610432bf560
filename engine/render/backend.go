package render

// TextureHandle identifies a backend-owned texture (a frame target).
// Handles are opaque and only meaningful to the backend that issued them.
type TextureHandle uint64

// BufferHandle identifies a backend-owned GPU buffer.
type BufferHandle uint64

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting,
	// capping frame rate to the monitor's refresh rate. This is the frame
	// loop's only intentional blocking point.
	PresentModeVSync PresentMode = iota

	// PresentModeImmediate presents frames immediately without waiting for
	// vertical blank. May cause screen tearing.
	PresentModeImmediate
)

// IndexFormat identifies the width of mesh index data on the GPU.
type IndexFormat int

const (
	// IndexFormatUint16 is the 16-bit index format, derived from a 2-byte index width.
	IndexFormatUint16 IndexFormat = iota

	// IndexFormatUint32 is the 32-bit index format, derived from a 4-byte index width.
	IndexFormatUint32
)

// DrawCommand describes one indexed draw into a frame target. The full
// pipeline state is bound fresh for every command; the backend caches
// nothing across frames.
type DrawCommand struct {
	Target TextureHandle

	// Viewport dimensions in pixels, already clamped by the caller.
	Width  int
	Height int

	VertexBuffer BufferHandle
	IndexBuffer  BufferHandle
	IndexFormat  IndexFormat
	IndexCount   int

	// Per-frame and per-object constant buffers bound to the shader stages.
	SceneBuffer  BufferHandle
	ObjectBuffer BufferHandle
}

// OverlayCommand describes the UI overlay's accumulated draw data: a list of
// pre-transformed 2D vertices (clip-space position + color) rasterized into
// the frame target on top of the scene.
type OverlayCommand struct {
	Target TextureHandle
	Width  int
	Height int

	// VertexData is VertexCount packed overlay vertices (vec2 position,
	// vec4 color; 24 bytes each).
	VertexData  []byte
	VertexCount int
}

// Backend is the GPU seam. The WebGPU implementation owns the device
// context (instance, surface, adapter, device, queue); tests substitute a
// recording fake. All methods are called from the single frame-loop thread.
type Backend interface {
	// ConfigureSurface (re)configures the presentation surface to the given
	// pixel dimensions and present mode. Precondition: no frame-target
	// texture derived from the previous configuration may still be live.
	//
	// Parameters:
	//   - width: surface width in pixels
	//   - height: surface height in pixels
	//   - mode: the present mode to configure
	//
	// Returns:
	//   - error: an InitError if the surface could not be configured
	ConfigureSurface(width, height int, mode PresentMode) error

	// CreateTargetTexture creates a surface-sized color texture usable as a
	// render attachment and as the source of the present copy.
	//
	// Parameters:
	//   - width: texture width in pixels
	//   - height: texture height in pixels
	//
	// Returns:
	//   - TextureHandle: handle to the created texture
	//   - error: an InitError if creation failed
	CreateTargetTexture(width, height int) (TextureHandle, error)

	// ReleaseTexture releases the texture identified by handle. The handle is
	// invalid afterwards.
	ReleaseTexture(handle TextureHandle)

	// CreateVertexBuffer uploads immutable vertex data to a GPU-read-only buffer.
	//
	// Returns:
	//   - BufferHandle: handle to the created buffer
	//   - error: an InitError if creation failed
	CreateVertexBuffer(data []byte) (BufferHandle, error)

	// CreateIndexBuffer uploads immutable index data to a GPU-read-only buffer.
	//
	// Returns:
	//   - BufferHandle: handle to the created buffer
	//   - error: an InitError if creation failed
	CreateIndexBuffer(data []byte) (BufferHandle, error)

	// CreateUniformBuffer creates a CPU-writable constant buffer of exactly
	// size bytes.
	//
	// Returns:
	//   - BufferHandle: handle to the created buffer
	//   - error: an InitError if creation failed
	CreateUniformBuffer(size int) (BufferHandle, error)

	// WriteBuffer replaces the buffer's contents with data. The write becomes
	// visible to every GPU command submitted afterwards; commands already in
	// flight keep reading the prior contents (discard-on-map semantics).
	//
	// Returns:
	//   - error: an error if the handle is unknown or the size mismatches
	WriteBuffer(handle BufferHandle, data []byte) error

	// Clear fills the target with the given color. Called once at the start
	// of every frame, before any draw.
	//
	// Returns:
	//   - error: an error if the target handle is unknown
	Clear(target TextureHandle, width, height int, color [4]float32) error

	// Draw encodes and submits one indexed draw, loading the target's
	// existing contents. Submission happens before Draw returns so that a
	// subsequent WriteBuffer targets only later draws.
	//
	// Returns:
	//   - error: an error if the command references unknown handles
	Draw(cmd DrawCommand) error

	// DrawOverlay rasterizes the overlay's accumulated vertices into the
	// target, loading (never clearing) the existing contents.
	//
	// Returns:
	//   - error: an error if the command references unknown handles
	DrawOverlay(cmd OverlayCommand) error

	// Present copies the frame target into the surface's current back buffer
	// and presents it. With PresentModeVSync this blocks until the next
	// vertical interval. A present failure has no recovery path.
	//
	// Parameters:
	//   - target: the frame target to present
	//   - width, height: target dimensions in pixels
	//
	// Returns:
	//   - error: an InitError if acquiring or presenting the back buffer failed
	Present(target TextureHandle, width, height int) error

	// Release frees device-level resources. The backend is unusable afterwards.
	Release()
}
