package window

import "github.com/Carmen-Shannon/oxy-raymarch/common"

// WindowBuilderOption configures the viewer window before the platform window is created.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the title bar text.
//
// Parameters:
//   - title: the title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithSize sets the client area the viewer opens with. This is also the initial render resolution
// handed to the camera. Non-positive values keep the default.
//
// Parameters:
//   - width: client area width in pixels
//   - height: client area height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.width = common.PositiveOr(width, w.width)
		w.height = common.PositiveOr(height, w.height)
	}
}

// WithSizeLimits bounds how far the user can resize the viewer. Every resize resets temporal
// accumulation, so the limits also cap the cost of a full-resolution frame. A zero bound keeps the
// default for that edge.
//
// Parameters:
//   - minWidth, minHeight: smallest client area in pixels
//   - maxWidth, maxHeight: largest client area in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSizeLimits(minWidth, minHeight, maxWidth, maxHeight int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.minWidth = common.PositiveOr(minWidth, w.minWidth)
		w.minHeight = common.PositiveOr(minHeight, w.minHeight)
		w.maxWidth = common.PositiveOr(maxWidth, w.maxWidth)
		w.maxHeight = common.PositiveOr(maxHeight, w.maxHeight)
	}
}

// WithCursorCaptured starts the viewer in mouse-look mode, with the cursor hidden and locked.
// Clicking captures it later and Esc releases it either way.
//
// Parameters:
//   - captured: whether mouse look is active on the first frame
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithCursorCaptured(captured bool) WindowBuilderOption {
	return func(w *engineWindow) {
		w.captured = captured
	}
}
