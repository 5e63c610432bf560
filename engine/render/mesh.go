package render

import (
	"github.com/oxwell/brdfview/common"
	"github.com/oxwell/brdfview/engine/core"
)

// Mesh holds validated vertex and index data plus, after Upload, the GPU
// buffers backing it. Validation happens entirely in NewMesh so that a
// malformed mesh is rejected before any GPU resource is touched.
type Mesh struct {
	vertexData   []byte
	vertexStride int
	vertexCount  int

	indexData   []byte
	indexCount  int
	indexFormat IndexFormat

	vertexBuffer BufferHandle
	indexBuffer  BufferHandle
	uploaded     bool
}

// NewMesh validates raw vertex and index data and returns a CPU-side mesh
// ready for Upload.
//
// Parameters:
//   - vertexData: packed vertex bytes, a whole number of vertexStride-sized vertices
//   - vertexStride: size of one vertex in bytes
//   - indexData: packed index bytes, a whole number of indexWidth-sized indices
//   - indexWidth: bytes per index, 2 or 4
//
// Returns:
//   - *Mesh: the validated mesh
//   - error: an AssertionError describing the first validation failure
func NewMesh(vertexData []byte, vertexStride int, indexData []byte, indexWidth int) (*Mesh, error) {
	if vertexStride <= 0 {
		return nil, core.NewAssertionError("mesh vertex stride must be positive, got %d", vertexStride)
	}
	if len(vertexData) == 0 || len(vertexData)%vertexStride != 0 {
		return nil, core.NewAssertionError("mesh vertex data length %d is not a positive multiple of stride %d", len(vertexData), vertexStride)
	}

	var format IndexFormat
	switch indexWidth {
	case 2:
		format = IndexFormatUint16
	case 4:
		format = IndexFormatUint32
	default:
		return nil, core.NewAssertionError("mesh index width must be 2 or 4 bytes, got %d", indexWidth)
	}
	if len(indexData) == 0 || len(indexData)%indexWidth != 0 {
		return nil, core.NewAssertionError("mesh index data length %d is not a positive multiple of width %d", len(indexData), indexWidth)
	}

	return &Mesh{
		vertexData:   vertexData,
		vertexStride: vertexStride,
		vertexCount:  len(vertexData) / vertexStride,
		indexData:    indexData,
		indexCount:   len(indexData) / indexWidth,
		indexFormat:  format,
	}, nil
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return m.vertexCount
}

// IndexCount returns the number of indices.
func (m *Mesh) IndexCount() int {
	return m.indexCount
}

// IndexFormat returns the GPU index format derived from the index width.
func (m *Mesh) IndexFormat() IndexFormat {
	return m.indexFormat
}

// VertexBuffer returns the uploaded vertex buffer handle. Only valid after Upload.
func (m *Mesh) VertexBuffer() BufferHandle {
	return m.vertexBuffer
}

// IndexBuffer returns the uploaded index buffer handle. Only valid after Upload.
func (m *Mesh) IndexBuffer() BufferHandle {
	return m.indexBuffer
}

// Upload creates the immutable GPU buffers for the mesh data. Uploading the
// same mesh twice panics with an AssertionError.
//
// Returns:
//   - error: an InitError if buffer creation failed
func (m *Mesh) Upload(backend Backend) error {
	if m.uploaded {
		panic(core.NewAssertionError("mesh uploaded twice"))
	}
	vertexBuffer, err := backend.CreateVertexBuffer(m.vertexData)
	if err != nil {
		return err
	}
	indexBuffer, err := backend.CreateIndexBuffer(m.indexData)
	if err != nil {
		return err
	}
	m.vertexBuffer = vertexBuffer
	m.indexBuffer = indexBuffer
	m.uploaded = true
	return nil
}

// CubeMesh returns a unit-diameter cube centered at the origin: 24 position
// vertices (4 per face so face normals stay sharp) and 36 indices. It stands
// in for the unit sphere; the object's model matrix scales it by the sphere
// diameter.
func CubeMesh() *Mesh {
	const h = 0.5
	positions := []float32{
		// +X face
		h, -h, -h, h, h, -h, h, h, h, h, -h, h,
		// -X face
		-h, -h, h, -h, h, h, -h, h, -h, -h, -h, -h,
		// +Y face
		-h, h, -h, -h, h, h, h, h, h, h, h, -h,
		// -Y face
		-h, -h, h, -h, -h, -h, h, -h, -h, h, -h, h,
		// +Z face
		h, -h, h, h, h, h, -h, h, h, -h, -h, h,
		// -Z face
		-h, -h, -h, -h, h, -h, h, h, -h, h, -h, -h,
	}
	indices := make([]uint32, 0, 36)
	for face := uint32(0); face < 6; face++ {
		base := face * 4
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}

	mesh, err := NewMesh(common.SliceToBytes(positions), 12, common.SliceToBytes(indices), 4)
	if err != nil {
		panic(err)
	}
	return mesh
}
