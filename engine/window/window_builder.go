package window

// BuilderOption is a functional option for configuring an engineWindow.
// Use the With* functions to create options.
type BuilderOption func(w *engineWindow)

// WithTitle sets the window title displayed in the title bar.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - BuilderOption: option function to apply
func WithTitle(title string) BuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithWidth sets the initial window width.
//
// Parameters:
//   - width: initial width in pixels
//
// Returns:
//   - BuilderOption: option function to apply
func WithWidth(width int) BuilderOption {
	return func(w *engineWindow) {
		w.width = width
	}
}

// WithHeight sets the initial window height.
//
// Parameters:
//   - height: initial height in pixels
//
// Returns:
//   - BuilderOption: option function to apply
func WithHeight(height int) BuilderOption {
	return func(w *engineWindow) {
		w.height = height
	}
}
