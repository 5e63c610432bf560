package render

import (
	"github.com/oxwell/brdfview/engine/core"
)

// UniformBuffer is a fixed-size GPU constant buffer written through scoped
// mapped regions. Each write replaces the whole contents; GPU commands
// submitted before the write keep reading the prior contents, commands
// submitted after it see the new data.
type UniformBuffer struct {
	backend Backend
	handle  BufferHandle
	size    int
	mapped  bool
}

// NewUniformBuffer creates a constant buffer of exactly size bytes.
//
// Parameters:
//   - backend: the GPU backend that owns the buffer
//   - size: buffer size in bytes
//
// Returns:
//   - *UniformBuffer: the created buffer
//   - error: an InitError if creation failed
func NewUniformBuffer(backend Backend, size int) (*UniformBuffer, error) {
	if size <= 0 {
		return nil, core.NewAssertionError("uniform buffer size must be positive, got %d", size)
	}
	handle, err := backend.CreateUniformBuffer(size)
	if err != nil {
		return nil, err
	}
	return &UniformBuffer{
		backend: backend,
		handle:  handle,
		size:    size,
	}, nil
}

// Handle returns the backend buffer handle for binding.
func (u *UniformBuffer) Handle() BufferHandle {
	return u.handle
}

// Size returns the buffer size in bytes.
func (u *UniformBuffer) Size() int {
	return u.size
}

// ScopedWrite opens a mapped region over the whole buffer. The caller fills
// Bytes and must Close the region exactly once; Close flushes the staged
// bytes to the GPU. Opening a second region while one is still open panics
// with an AssertionError.
func (u *UniformBuffer) ScopedWrite() *MappedRegion {
	if u.mapped {
		panic(core.NewAssertionError("uniform buffer mapped while a scoped write is still open"))
	}
	u.mapped = true
	return &MappedRegion{
		owner: u,
		data:  make([]byte, u.size),
	}
}

// MappedRegion is the CPU-side staging window of one scoped write. It is
// valid from ScopedWrite until Close; any access after Close panics with an
// AssertionError.
type MappedRegion struct {
	owner  *UniformBuffer
	data   []byte
	closed bool
}

// Bytes returns the staging bytes to fill. The slice covers the entire
// buffer; unwritten bytes flush as zero.
func (r *MappedRegion) Bytes() []byte {
	if r.closed {
		panic(core.NewAssertionError("mapped region accessed after close"))
	}
	return r.data
}

// Close flushes the staged bytes to the GPU and invalidates the region.
// Closing twice panics with an AssertionError.
//
// Returns:
//   - error: an error if the backend rejected the write
func (r *MappedRegion) Close() error {
	if r.closed {
		panic(core.NewAssertionError("mapped region closed twice"))
	}
	r.closed = true
	r.owner.mapped = false
	return r.owner.backend.WriteBuffer(r.owner.handle, r.data)
}
