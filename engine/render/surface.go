package render

import (
	"github.com/oxwell/brdfview/engine/core"
)

// Surface owns the presentation side of the swap chain: its pixel dimensions,
// present mode, and the rule that it may only be resized while no frame
// target is bound to it.
type Surface struct {
	backend Backend
	width   int
	height  int
	mode    PresentMode
	bound   bool
}

// NewSurface configures the backend's presentation surface and returns the
// handle that frame targets bind to.
//
// Parameters:
//   - backend: the GPU backend owning the native surface
//   - width: initial width in pixels
//   - height: initial height in pixels
//   - mode: the present mode to configure
//
// Returns:
//   - *Surface: the configured surface
//   - error: an InitError if configuration failed
func NewSurface(backend Backend, width, height int, mode PresentMode) (*Surface, error) {
	if err := backend.ConfigureSurface(width, height, mode); err != nil {
		return nil, err
	}
	return &Surface{
		backend: backend,
		width:   width,
		height:  height,
		mode:    mode,
	}, nil
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int {
	return s.width
}

// Height returns the surface height in pixels.
func (s *Surface) Height() int {
	return s.height
}

// Resize reconfigures the surface buffers to the new dimensions. Calling this
// while a frame target is still bound panics with an AssertionError: the
// target holds a texture sized for the old configuration and must be
// discarded first.
//
// Parameters:
//   - width: new width in pixels
//   - height: new height in pixels
//
// Returns:
//   - error: an InitError if the backend could not reconfigure the surface
func (s *Surface) Resize(width, height int) error {
	if s.bound {
		panic(core.NewAssertionError("surface resized while a frame target is bound"))
	}
	if err := s.backend.ConfigureSurface(width, height, s.mode); err != nil {
		return err
	}
	s.width = width
	s.height = height
	return nil
}

// Present copies the bound frame target into the surface's current back
// buffer and presents it. With vsync enabled this blocks until the next
// vertical interval.
//
// Returns:
//   - error: an InitError if acquisition or presentation failed; there is no
//     recovery path from a present failure
func (s *Surface) Present(target *FrameTarget) error {
	if !target.Bound() {
		panic(core.NewAssertionError("present called with an unbound frame target"))
	}
	return s.backend.Present(target.Handle(), target.Width(), target.Height())
}
