package render

import (
	"github.com/oxwell/brdfview/engine/core"
)

// FrameTarget is the color attachment every frame is rendered into before
// being presented. It is persistent: built once against the surface's current
// dimensions and reused frame after frame, torn down and rebuilt only when
// the surface resizes.
//
// The target is either Bound (holding a live texture sized to the surface) or
// Unbound (holding nothing). Drawing or presenting through an unbound target
// is an invariant violation, as is resizing the surface while bound; both
// panic with an AssertionError rather than limping on with a stale texture.
type FrameTarget struct {
	bound   bool
	handle  TextureHandle
	width   int
	height  int
	surface *Surface
}

// NewFrameTarget returns an unbound frame target. Call Build before drawing.
func NewFrameTarget() *FrameTarget {
	return &FrameTarget{}
}

// Bound reports whether the target currently holds a live texture.
func (t *FrameTarget) Bound() bool {
	return t.bound
}

// Handle returns the backend texture handle. Only valid while Bound.
func (t *FrameTarget) Handle() TextureHandle {
	if !t.bound {
		panic(core.NewAssertionError("frame target handle requested while unbound"))
	}
	return t.handle
}

// Width returns the bound texture's width in pixels.
func (t *FrameTarget) Width() int {
	return t.width
}

// Height returns the bound texture's height in pixels.
func (t *FrameTarget) Height() int {
	return t.height
}

// Build creates the target texture at the surface's current dimensions and
// binds the target to the surface. Building an already-bound target panics
// with an AssertionError.
//
// Parameters:
//   - surface: the surface whose dimensions the texture adopts
//
// Returns:
//   - error: an InitError if texture creation failed
func (t *FrameTarget) Build(surface *Surface) error {
	if t.bound {
		panic(core.NewAssertionError("frame target built while already bound"))
	}
	handle, err := surface.backend.CreateTargetTexture(surface.Width(), surface.Height())
	if err != nil {
		return err
	}
	t.handle = handle
	t.width = surface.Width()
	t.height = surface.Height()
	t.surface = surface
	t.bound = true
	surface.bound = true
	return nil
}

// Discard releases the target texture and unbinds the target, freeing the
// surface for resizing. Discarding an unbound target panics with an
// AssertionError.
func (t *FrameTarget) Discard() {
	if !t.bound {
		panic(core.NewAssertionError("frame target discarded while unbound"))
	}
	t.surface.backend.ReleaseTexture(t.handle)
	t.surface.bound = false
	t.surface = nil
	t.handle = 0
	t.width = 0
	t.height = 0
	t.bound = false
}

// Rebuild performs the resize handshake as one atomic step: discard the
// current texture, resize the surface, and build a fresh texture at the new
// dimensions. Exactly one Discard and one Build happen per call regardless
// of how the resize was triggered.
//
// Parameters:
//   - surface: the surface to resize and rebind against
//   - width: new width in pixels
//   - height: new height in pixels
//
// Returns:
//   - error: an InitError if the surface or texture could not be recreated
func (t *FrameTarget) Rebuild(surface *Surface, width, height int) error {
	t.Discard()
	if err := surface.Resize(width, height); err != nil {
		return err
	}
	return t.Build(surface)
}
