package render

// fakeBackend records every backend call so tests can assert on ordering and
// resource lifecycles without a GPU.
type fakeBackend struct {
	configured   [][3]int // width, height, mode
	liveTextures map[TextureHandle]bool
	createdCount int
	releasedLog  []TextureHandle

	buffers    map[BufferHandle][]byte
	bufferKind map[BufferHandle]string
	writeLog   []BufferHandle

	clearLog   []TextureHandle
	drawLog    []DrawCommand
	overlayLog []OverlayCommand
	presentLog []TextureHandle

	createTextureErr error
	presentErr       error
	released         bool

	nextTexture TextureHandle
	nextBuffer  BufferHandle

	// callLog records the call sequence by name for ordering assertions.
	callLog []string
}

var _ Backend = &fakeBackend{}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		liveTextures: make(map[TextureHandle]bool),
		buffers:      make(map[BufferHandle][]byte),
		bufferKind:   make(map[BufferHandle]string),
	}
}

func (f *fakeBackend) ConfigureSurface(width, height int, mode PresentMode) error {
	f.callLog = append(f.callLog, "configure")
	f.configured = append(f.configured, [3]int{width, height, int(mode)})
	return nil
}

func (f *fakeBackend) CreateTargetTexture(width, height int) (TextureHandle, error) {
	if f.createTextureErr != nil {
		return 0, f.createTextureErr
	}
	f.callLog = append(f.callLog, "createTexture")
	f.nextTexture++
	f.liveTextures[f.nextTexture] = true
	f.createdCount++
	return f.nextTexture, nil
}

func (f *fakeBackend) ReleaseTexture(handle TextureHandle) {
	f.callLog = append(f.callLog, "releaseTexture")
	delete(f.liveTextures, handle)
	f.releasedLog = append(f.releasedLog, handle)
}

func (f *fakeBackend) CreateVertexBuffer(data []byte) (BufferHandle, error) {
	return f.createBuffer("vertex", data)
}

func (f *fakeBackend) CreateIndexBuffer(data []byte) (BufferHandle, error) {
	return f.createBuffer("index", data)
}

func (f *fakeBackend) CreateUniformBuffer(size int) (BufferHandle, error) {
	return f.createBuffer("uniform", make([]byte, size))
}

func (f *fakeBackend) createBuffer(kind string, data []byte) (BufferHandle, error) {
	f.nextBuffer++
	stored := make([]byte, len(data))
	copy(stored, data)
	f.buffers[f.nextBuffer] = stored
	f.bufferKind[f.nextBuffer] = kind
	return f.nextBuffer, nil
}

func (f *fakeBackend) WriteBuffer(handle BufferHandle, data []byte) error {
	f.callLog = append(f.callLog, "write")
	stored := make([]byte, len(data))
	copy(stored, data)
	f.buffers[handle] = stored
	f.writeLog = append(f.writeLog, handle)
	return nil
}

func (f *fakeBackend) Clear(target TextureHandle, width, height int, color [4]float32) error {
	f.callLog = append(f.callLog, "clear")
	f.clearLog = append(f.clearLog, target)
	return nil
}

func (f *fakeBackend) Draw(cmd DrawCommand) error {
	f.callLog = append(f.callLog, "draw")
	f.drawLog = append(f.drawLog, cmd)
	return nil
}

func (f *fakeBackend) DrawOverlay(cmd OverlayCommand) error {
	f.callLog = append(f.callLog, "overlay")
	f.overlayLog = append(f.overlayLog, cmd)
	return nil
}

func (f *fakeBackend) Present(target TextureHandle, width, height int) error {
	if f.presentErr != nil {
		return f.presentErr
	}
	f.callLog = append(f.callLog, "present")
	f.presentLog = append(f.presentLog, target)
	return nil
}

func (f *fakeBackend) Release() {
	f.released = true
}
