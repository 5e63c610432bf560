package overlay

import (
	"fmt"

	"github.com/oxwell/brdfview/common"
)

// overlayVertexFloats is the number of float32 components per overlay vertex:
// vec2 clip-space position followed by vec4 color.
const overlayVertexFloats = 6

const (
	rowHeight     = 22
	rowPadding    = 2
	cellGap       = 3
	swatchWidth   = 22
	headerIndent  = 6
	valueBarInset = 2
)

var (
	colorPanelBG   = [4]float32{0.06, 0.06, 0.06, 0.85}
	colorHeaderBG  = [4]float32{0.16, 0.29, 0.48, 0.9}
	colorHeaderHot = [4]float32{0.26, 0.59, 0.98, 0.9}
	colorCellBG    = [4]float32{0.14, 0.14, 0.14, 0.9}
	colorCellHot   = [4]float32{0.25, 0.25, 0.25, 0.9}
	colorFill      = [4]float32{0.26, 0.59, 0.98, 0.9}
)

type widgetState struct {
	open map[string]bool

	// activeID is the drag target while the mouse button stays held.
	activeID string

	mouseX, mouseY float32
	lastMouseX     float32
	mouseDown      bool
	wasDown        bool
}

type overlayImpl struct {
	state widgetState

	panelX, panelY float32
	panelWidth     float32

	width, height int
	cursorY       float32
	currentOpen   bool
	inFrame       bool
	changed       bool

	vertices []float32
}

// Overlay is an immediate-mode debug panel. Each frame the caller brackets a
// sequence of widget calls with BeginFrame and EndFrame; widgets read the
// current mouse state, mutate the bound values in place, and emit their
// geometry as pre-transformed clip-space quads for the overlay pipeline.
type Overlay interface {
	// BeginFrame starts a new widget sequence against the current frame
	// dimensions and mouse state.
	//
	// Parameters:
	//   - width, height: frame target dimensions in pixels
	//   - mouseX, mouseY: cursor position in pixels
	//   - mouseDown: whether the primary button is held
	BeginFrame(width, height int, mouseX, mouseY float32, mouseDown bool)

	// CollapsingHeader emits a clickable section header. Clicking toggles the
	// section; widgets that follow should only run while it reports open.
	//
	// Parameters:
	//   - label: unique section label
	//
	// Returns:
	//   - bool: whether the section is open
	CollapsingHeader(label string) bool

	// DragFloat3 emits three horizontal drag cells bound to values. Dragging
	// a cell adjusts its component by the horizontal mouse delta times speed.
	//
	// Parameters:
	//   - label: unique widget label
	//   - values: the three components to edit in place
	//   - speed: value change per pixel of horizontal drag
	//
	// Returns:
	//   - bool: whether any component changed this frame
	DragFloat3(label string, values *[3]float32, speed float32) bool

	// ColorEdit3 emits a color swatch plus three channel cells bound to rgb.
	// Channels are dragged in the same way as DragFloat3 and clamp to [0, 1].
	//
	// Parameters:
	//   - label: unique widget label
	//   - rgb: the color to edit in place
	//
	// Returns:
	//   - bool: whether any channel changed this frame
	ColorEdit3(label string, rgb *[3]float32) bool

	// Changed reports whether any widget mutated its bound value this frame.
	//
	// Returns:
	//   - bool: whether any value changed since BeginFrame
	Changed() bool

	// EndFrame closes the widget sequence and returns the accumulated vertex
	// data: packed overlay vertices (vec2 position, vec4 color) ready for the
	// overlay pipeline.
	//
	// Returns:
	//   - []byte: packed vertex data, nil when nothing was drawn
	//   - int: vertex count
	EndFrame() ([]byte, int)
}

var _ Overlay = &overlayImpl{}

// NewOverlay creates a debug overlay panel anchored to the top-left corner.
//
// Parameters:
//   - options: functional options to configure the overlay
//
// Returns:
//   - Overlay: the newly created overlay
func NewOverlay(options ...OverlayBuilderOption) Overlay {
	o := &overlayImpl{
		state: widgetState{
			open: make(map[string]bool),
		},
		panelX:     10,
		panelY:     10,
		panelWidth: 280,
	}
	for _, option := range options {
		option(o)
	}
	return o
}

func (o *overlayImpl) BeginFrame(width, height int, mouseX, mouseY float32, mouseDown bool) {
	o.width = width
	o.height = height
	o.cursorY = o.panelY
	o.currentOpen = true
	o.inFrame = true
	o.changed = false
	o.vertices = o.vertices[:0]

	o.state.mouseX = mouseX
	o.state.mouseY = mouseY
	o.state.mouseDown = mouseDown
	if !mouseDown {
		o.state.activeID = ""
	}
}

func (o *overlayImpl) CollapsingHeader(label string) bool {
	y := o.advanceRow()
	open, seen := o.state.open[label]
	if !seen {
		open = true
	}

	hot := o.hit(o.panelX, y, o.panelWidth, rowHeight)
	if hot && o.clicked() {
		open = !open
	}
	o.state.open[label] = open
	o.currentOpen = open

	bg := colorHeaderBG
	if hot {
		bg = colorHeaderHot
	}
	o.rect(o.panelX, y, o.panelWidth, rowHeight, bg)
	// Collapse marker: a small square on the left, filled while open.
	marker := colorFill
	if !open {
		marker = colorCellBG
	}
	o.rect(o.panelX+headerIndent, y+rowHeight/2-4, 8, 8, marker)
	return open
}

func (o *overlayImpl) DragFloat3(label string, values *[3]float32, speed float32) bool {
	if !o.currentOpen {
		return false
	}
	y := o.advanceRow()
	o.rect(o.panelX, y, o.panelWidth, rowHeight, colorPanelBG)

	changed := false
	cellWidth := (o.panelWidth - 2*cellGap) / 3
	for i := range 3 {
		x := o.panelX + float32(i)*(cellWidth+cellGap)
		id := fmt.Sprintf("%s#%d", label, i)
		if o.dragCell(id, x, y, cellWidth, speed, &values[i], false) {
			changed = true
		}
	}
	if changed {
		o.changed = true
	}
	return changed
}

func (o *overlayImpl) ColorEdit3(label string, rgb *[3]float32) bool {
	if !o.currentOpen {
		return false
	}
	y := o.advanceRow()
	o.rect(o.panelX, y, o.panelWidth, rowHeight, colorPanelBG)

	// Live swatch first, then one drag cell per channel.
	o.rect(o.panelX, y+rowPadding, swatchWidth, rowHeight-2*rowPadding, [4]float32{rgb[0], rgb[1], rgb[2], 1})

	changed := false
	barsX := o.panelX + swatchWidth + cellGap
	cellWidth := (o.panelWidth - swatchWidth - 3*cellGap) / 3
	for i := range 3 {
		x := barsX + float32(i)*(cellWidth+cellGap)
		id := fmt.Sprintf("%s#%d", label, i)
		if o.dragCell(id, x, y, cellWidth, 0.005, &rgb[i], true) {
			changed = true
		}
	}
	if changed {
		o.changed = true
	}
	return changed
}

func (o *overlayImpl) Changed() bool {
	return o.changed
}

func (o *overlayImpl) EndFrame() ([]byte, int) {
	o.inFrame = false
	o.state.lastMouseX = o.state.mouseX
	o.state.wasDown = o.state.mouseDown
	if len(o.vertices) == 0 {
		return nil, 0
	}
	return common.SliceToBytes(o.vertices), len(o.vertices) / overlayVertexFloats
}

// dragCell handles one draggable value cell: hit test, drag delta, optional
// [0,1] clamping for color channels, and the cell's background plus fill bar.
func (o *overlayImpl) dragCell(id string, x, y, width, speed float32, value *float32, clamp01 bool) bool {
	hot := o.hit(x, y+rowPadding, width, rowHeight-2*rowPadding)
	justActivated := false
	if hot && o.clicked() {
		o.state.activeID = id
		justActivated = true
	}
	active := o.state.activeID == id

	changed := false
	// The press frame only arms the drag; deltas apply from the next frame so
	// stale mouse positions from before the press never move the value.
	if active && o.state.mouseDown && !justActivated {
		delta := o.state.mouseX - o.state.lastMouseX
		if delta != 0 {
			*value += delta * speed
			if clamp01 {
				if *value < 0 {
					*value = 0
				}
				if *value > 1 {
					*value = 1
				}
			}
			changed = true
		}
	}

	bg := colorCellBG
	if hot || active {
		bg = colorCellHot
	}
	o.rect(x, y+rowPadding, width, rowHeight-2*rowPadding, bg)
	if clamp01 {
		// Channel cells show their value as a proportional fill.
		fill := *value * (width - 2*valueBarInset)
		if fill > 0 {
			o.rect(x+valueBarInset, y+rowPadding+valueBarInset, fill, rowHeight-2*rowPadding-2*valueBarInset, colorFill)
		}
	} else {
		// Unbounded cells show a center tick that leans with the sign.
		tickX := x + width/2 + clampF(*value*4, -width/2+valueBarInset, width/2-2*valueBarInset)
		o.rect(tickX, y+rowPadding+valueBarInset, 2, rowHeight-2*rowPadding-2*valueBarInset, colorFill)
	}
	return changed
}

func (o *overlayImpl) advanceRow() float32 {
	y := o.cursorY
	o.cursorY += rowHeight + rowPadding
	return y
}

func (o *overlayImpl) hit(x, y, w, h float32) bool {
	return o.state.mouseX >= x && o.state.mouseX < x+w &&
		o.state.mouseY >= y && o.state.mouseY < y+h
}

// clicked reports a rising edge of the primary button this frame.
func (o *overlayImpl) clicked() bool {
	return o.state.mouseDown && !o.state.wasDown
}

// rect appends two clip-space triangles covering a pixel-space rectangle.
func (o *overlayImpl) rect(x, y, w, h float32, color [4]float32) {
	if o.width <= 0 || o.height <= 0 {
		return
	}
	x0 := 2*x/float32(o.width) - 1
	x1 := 2*(x+w)/float32(o.width) - 1
	y0 := 1 - 2*y/float32(o.height)
	y1 := 1 - 2*(y+h)/float32(o.height)

	o.vertex(x0, y0, color)
	o.vertex(x1, y0, color)
	o.vertex(x1, y1, color)
	o.vertex(x0, y0, color)
	o.vertex(x1, y1, color)
	o.vertex(x0, y1, color)
}

func (o *overlayImpl) vertex(x, y float32, color [4]float32) {
	o.vertices = append(o.vertices, x, y, color[0], color[1], color[2], color[3])
}

func clampF(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
