package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentity(t *testing.T) {
	m := make([]float32, 16)
	for i := range m {
		m[i] = 9
	}
	Identity(m)
	for i, v := range m {
		if i%5 == 0 {
			assert.Equal(t, float32(1), v, "diagonal element %d", i)
		} else {
			assert.Equal(t, float32(0), v, "off-diagonal element %d", i)
		}
	}
}

func TestMul4Identity(t *testing.T) {
	a := []float32{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	}
	id := make([]float32, 16)
	Identity(id)

	out := make([]float32, 16)
	Mul4(out, a, id)
	assert.Equal(t, a, out)

	Mul4(out, id, a)
	assert.Equal(t, a, out)
}

func TestMul4Translation(t *testing.T) {
	// Composing two translations adds their offsets.
	ta := make([]float32, 16)
	tb := make([]float32, 16)
	AffineTransform(ta, 1, 1, 2, 3)
	AffineTransform(tb, 1, 10, 20, 30)

	out := make([]float32, 16)
	Mul4(out, ta, tb)
	assert.Equal(t, float32(11), out[12])
	assert.Equal(t, float32(22), out[13])
	assert.Equal(t, float32(33), out[14])
	assert.Equal(t, float32(1), out[15])
}

func TestMul4AliasedOutput(t *testing.T) {
	a := make([]float32, 16)
	AffineTransform(a, 2, 0, 0, 0)
	expected := make([]float32, 16)
	Mul4(expected, a, a)

	// out may alias an input.
	Mul4(a, a, a)
	assert.Equal(t, expected, a)
}

func TestPerspective(t *testing.T) {
	fov := float32(45.0 * math.Pi / 180.0)
	aspect := float32(16.0 / 9.0)
	near := float32(0.1)
	far := float32(100.0)

	out := make([]float32, 16)
	Perspective(out, fov, aspect, near, far)

	f := 1.0 / float32(math.Tan(float64(fov)/2))
	assert.InDelta(t, f/aspect, out[0], 1e-6)
	assert.InDelta(t, f, out[5], 1e-6)
	assert.InDelta(t, far/(near-far), out[10], 1e-6)
	assert.Equal(t, float32(-1), out[11])
	assert.InDelta(t, near*far/(near-far), out[14], 1e-4)
	assert.Equal(t, float32(0), out[15])
}

func TestPerspectiveDepthRange(t *testing.T) {
	// A point on the near plane projects to depth 0 and one on the far plane
	// to depth 1 (WebGPU clip convention).
	near := float32(0.1)
	far := float32(100.0)
	proj := make([]float32, 16)
	Perspective(proj, float32(math.Pi/4), 1, near, far)

	project := func(z float32) float32 {
		// View space looks down -Z.
		clipZ := proj[10]*z + proj[14]
		clipW := proj[11] * z
		return clipZ / clipW
	}
	assert.InDelta(t, 0.0, project(-near), 1e-5)
	assert.InDelta(t, 1.0, project(-far), 1e-5)
}

func TestAffineTransform(t *testing.T) {
	out := make([]float32, 16)
	AffineTransform(out, 2, 1, -2, 3)

	assert.Equal(t, float32(2), out[0])
	assert.Equal(t, float32(2), out[5])
	assert.Equal(t, float32(2), out[10])
	assert.Equal(t, float32(1), out[12])
	assert.Equal(t, float32(-2), out[13])
	assert.Equal(t, float32(3), out[14])
	assert.Equal(t, float32(1), out[15])
}

func transformPoint(m []float32, x, y, z float32) (float32, float32, float32) {
	return m[0]*x + m[4]*y + m[8]*z + m[12],
		m[1]*x + m[5]*y + m[9]*z + m[13],
		m[2]*x + m[6]*y + m[10]*z + m[14]
}

func TestLookAt(t *testing.T) {
	view := make([]float32, 16)
	LookAt(view, 2, 2, -5, 0, 0, 0, 0, 1, 0)

	// The eye maps to the view-space origin.
	x, y, z := transformPoint(view, 2, 2, -5)
	assert.InDelta(t, 0, x, 1e-5)
	assert.InDelta(t, 0, y, 1e-5)
	assert.InDelta(t, 0, z, 1e-5)

	// The target lies straight ahead on the -Z axis at eye distance.
	dist := float32(math.Sqrt(2*2 + 2*2 + 5*5))
	x, y, z = transformPoint(view, 0, 0, 0)
	assert.InDelta(t, 0, x, 1e-5)
	assert.InDelta(t, 0, y, 1e-5)
	assert.InDelta(t, -dist, z, 1e-5)
}
