package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const overlayVertexBytes = overlayVertexFloats * 4

func TestCollapsingHeaderTogglesOnClick(t *testing.T) {
	o := NewOverlay(WithPanelPosition(0, 0), WithPanelWidth(200))

	// Headers start open.
	o.BeginFrame(640, 480, 500, 400, false)
	assert.True(t, o.CollapsingHeader("Sphere"))
	o.EndFrame()

	// Click inside the header row toggles it closed.
	o.BeginFrame(640, 480, 50, 10, true)
	assert.False(t, o.CollapsingHeader("Sphere"))
	o.EndFrame()

	// Holding the button is not a new click.
	o.BeginFrame(640, 480, 50, 10, true)
	assert.False(t, o.CollapsingHeader("Sphere"))
	o.EndFrame()

	// Release, then a fresh click reopens.
	o.BeginFrame(640, 480, 50, 10, false)
	assert.False(t, o.CollapsingHeader("Sphere"))
	o.EndFrame()

	o.BeginFrame(640, 480, 50, 10, true)
	assert.True(t, o.CollapsingHeader("Sphere"))
	o.EndFrame()
}

func TestClosedHeaderSuppressesWidgets(t *testing.T) {
	o := NewOverlay(WithPanelPosition(0, 0), WithPanelWidth(200))
	values := [3]float32{1, 2, 3}

	// Close the header.
	o.BeginFrame(640, 480, 50, 10, true)
	o.CollapsingHeader("Sphere")
	o.EndFrame()

	o.BeginFrame(640, 480, 50, 40, true)
	open := o.CollapsingHeader("Sphere")
	changed := o.DragFloat3("position", &values, 0.01)
	data, count := o.EndFrame()

	assert.False(t, open)
	assert.False(t, changed)
	assert.Equal(t, [3]float32{1, 2, 3}, values)
	// Only the header row drew: background plus collapse marker, 12 vertices.
	assert.Equal(t, 12, count)
	assert.Len(t, data, 12*overlayVertexBytes)
}

func TestDragFloat3AdjustsValueByMouseDelta(t *testing.T) {
	o := NewOverlay(WithPanelPosition(0, 0), WithPanelWidth(300))
	values := [3]float32{}

	// Press inside the first cell of the row under the header.
	o.BeginFrame(640, 480, 20, 35, true)
	o.CollapsingHeader("Sphere")
	o.DragFloat3("position", &values, 0.01)
	o.EndFrame()

	// Drag 50 pixels to the right while held.
	o.BeginFrame(640, 480, 70, 35, true)
	o.CollapsingHeader("Sphere")
	changed := o.DragFloat3("position", &values, 0.01)
	o.EndFrame()

	assert.True(t, changed)
	assert.InDelta(t, 0.5, values[0], 1e-5)
	assert.Equal(t, float32(0), values[1])
	assert.Equal(t, float32(0), values[2])

	// Releasing ends the drag; further motion changes nothing.
	o.BeginFrame(640, 480, 200, 35, false)
	o.CollapsingHeader("Sphere")
	changed = o.DragFloat3("position", &values, 0.01)
	o.EndFrame()
	assert.False(t, changed)
	assert.InDelta(t, 0.5, values[0], 1e-5)
}

func TestColorEdit3ClampsToUnitRange(t *testing.T) {
	o := NewOverlay(WithPanelPosition(0, 0), WithPanelWidth(300))
	rgb := [3]float32{0.9, 0.5, 0.5}

	// Press inside the first channel cell (row 0, right of the swatch).
	o.BeginFrame(640, 480, 40, 10, true)
	o.ColorEdit3("color", &rgb)
	o.EndFrame()

	// Drag far right; the channel saturates at 1.
	o.BeginFrame(640, 480, 600, 10, true)
	changed := o.ColorEdit3("color", &rgb)
	o.EndFrame()

	assert.True(t, changed)
	assert.Equal(t, float32(1), rgb[0])

	// Drag far left; it saturates at 0.
	o.BeginFrame(640, 480, 0, 10, true)
	o.ColorEdit3("color", &rgb)
	o.EndFrame()
	assert.Equal(t, float32(0), rgb[0])
}

func TestEndFrameVertexPacking(t *testing.T) {
	o := NewOverlay(WithPanelPosition(0, 0), WithPanelWidth(200))
	values := [3]float32{}

	o.BeginFrame(640, 480, 500, 400, false)
	o.CollapsingHeader("Sphere")
	o.DragFloat3("position", &values, 0.01)
	data, count := o.EndFrame()

	assert.Greater(t, count, 0)
	assert.Zero(t, count%6, "quads emit whole triangle pairs")
	assert.Len(t, data, count*overlayVertexBytes)

	// An empty frame yields no geometry.
	o.BeginFrame(640, 480, 0, 0, false)
	data, count = o.EndFrame()
	assert.Nil(t, data)
	assert.Zero(t, count)
}
