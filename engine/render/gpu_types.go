package render

import (
	"encoding/binary"
	"math"
)

// SceneConstants is the GPU-aligned representation of the per-frame scene
// uniform buffer. Matches the WGSL SceneConstants struct layout exactly.
// Size: 144 bytes (std140 / WGSL aligned).
type SceneConstants struct {
	View     [16]float32 // offset   0: world-to-view matrix (mat4x4<f32>)
	Proj     [16]float32 // offset  64: view-to-clip matrix (mat4x4<f32>)
	Eye      [3]float32  // offset 128: world-space camera position (vec3<f32>)
	_padding float32     // offset 140: padding to 144 bytes
}

// Size returns the size of the SceneConstants struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (144)
func (s *SceneConstants) Size() int {
	return 144
}

// Marshal serializes the SceneConstants struct into a byte buffer suitable
// for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (s *SceneConstants) Marshal() []byte {
	buf := make([]byte, s.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(s.View[i]))
	}
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(s.Proj[i]))
	}
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[128+i*4:], math.Float32bits(s.Eye[i]))
	}
	binary.LittleEndian.PutUint32(buf[140:], 0) // _padding
	return buf
}

// ObjectConstants is the GPU-aligned representation of the per-object uniform
// buffer, rewritten before every draw. Matches the WGSL ObjectConstants
// struct layout exactly. Size: 96 bytes (std140 / WGSL aligned).
type ObjectConstants struct {
	Model    [16]float32 // offset  0: object-to-world matrix (mat4x4<f32>)
	Color    [3]float32  // offset 64: base color (vec3<f32>)
	_padding float32     // offset 76: padding for vec3 alignment
	Position [3]float32  // offset 80: world-space object center (vec3<f32>)
	Radius   float32     // offset 92: bounding radius
}

// Size returns the size of the ObjectConstants struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (96)
func (o *ObjectConstants) Size() int {
	return 96
}

// Marshal serializes the ObjectConstants struct into a byte buffer suitable
// for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (o *ObjectConstants) Marshal() []byte {
	buf := make([]byte, o.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(o.Model[i]))
	}
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(o.Color[i]))
	}
	binary.LittleEndian.PutUint32(buf[76:], 0) // _padding
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[80+i*4:], math.Float32bits(o.Position[i]))
	}
	binary.LittleEndian.PutUint32(buf[92:], math.Float32bits(o.Radius))
	return buf
}
