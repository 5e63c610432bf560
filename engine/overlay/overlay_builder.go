package overlay

type OverlayBuilderOption func(*overlayImpl)

// WithPanelPosition sets the panel's top-left anchor in pixels.
//
// Parameters:
//   - x, y: anchor position in pixels
//
// Returns:
//   - OverlayBuilderOption: a function that sets the panel position
func WithPanelPosition(x, y float32) OverlayBuilderOption {
	return func(o *overlayImpl) {
		o.panelX = x
		o.panelY = y
	}
}

// WithPanelWidth sets the panel width in pixels.
//
// Parameters:
//   - width: panel width in pixels
//
// Returns:
//   - OverlayBuilderOption: a function that sets the panel width
func WithPanelWidth(width float32) OverlayBuilderOption {
	return func(o *overlayImpl) {
		o.panelWidth = width
	}
}
