package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxwell/brdfview/engine/core"
)

func TestNewMeshValidation(t *testing.T) {
	validVerts := make([]byte, 36) // 3 vertices of 12 bytes
	validIndices := make([]byte, 12)

	tests := []struct {
		name        string
		vertexData  []byte
		stride      int
		indexData   []byte
		indexWidth  int
		wantErr     bool
		vertexCount int
		indexCount  int
		format      IndexFormat
	}{
		{
			name:       "valid uint32 indices",
			vertexData: validVerts, stride: 12,
			indexData: validIndices, indexWidth: 4,
			vertexCount: 3, indexCount: 3, format: IndexFormatUint32,
		},
		{
			name:       "valid uint16 indices",
			vertexData: validVerts, stride: 12,
			indexData: validIndices, indexWidth: 2,
			vertexCount: 3, indexCount: 6, format: IndexFormatUint16,
		},
		{
			name:       "empty vertex data",
			vertexData: nil, stride: 12,
			indexData: validIndices, indexWidth: 4,
			wantErr: true,
		},
		{
			name:       "zero stride",
			vertexData: validVerts, stride: 0,
			indexData: validIndices, indexWidth: 4,
			wantErr: true,
		},
		{
			name:       "vertex data not a multiple of stride",
			vertexData: validVerts[:35], stride: 12,
			indexData: validIndices, indexWidth: 4,
			wantErr: true,
		},
		{
			name:       "empty index data",
			vertexData: validVerts, stride: 12,
			indexData: nil, indexWidth: 4,
			wantErr: true,
		},
		{
			name:       "unsupported index width",
			vertexData: validVerts, stride: 12,
			indexData: validIndices, indexWidth: 3,
			wantErr: true,
		},
		{
			name:       "index data not a multiple of width",
			vertexData: validVerts, stride: 12,
			indexData: validIndices[:10], indexWidth: 4,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mesh, err := NewMesh(tt.vertexData, tt.stride, tt.indexData, tt.indexWidth)
			if tt.wantErr {
				require.Error(t, err)
				var assertionErr *core.AssertionError
				assert.ErrorAs(t, err, &assertionErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.vertexCount, mesh.VertexCount())
			assert.Equal(t, tt.indexCount, mesh.IndexCount())
			assert.Equal(t, tt.format, mesh.IndexFormat())
		})
	}
}

func TestCubeMesh(t *testing.T) {
	mesh := CubeMesh()
	assert.Equal(t, 24, mesh.VertexCount())
	assert.Equal(t, 36, mesh.IndexCount())
	assert.Equal(t, IndexFormatUint32, mesh.IndexFormat())
}

func TestMeshUpload(t *testing.T) {
	backend := newFakeBackend()
	mesh := CubeMesh()

	require.NoError(t, mesh.Upload(backend))
	assert.Equal(t, "vertex", backend.bufferKind[mesh.VertexBuffer()])
	assert.Equal(t, "index", backend.bufferKind[mesh.IndexBuffer()])
	assert.Len(t, backend.buffers[mesh.VertexBuffer()], 24*12)
	assert.Len(t, backend.buffers[mesh.IndexBuffer()], 36*4)

	assert.Panics(t, func() { _ = mesh.Upload(backend) })
}
