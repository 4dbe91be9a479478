package input

// InputBuilderOption is a functional option for configuring an Input.
type InputBuilderOption func(*inputImpl)

// WithApertureStep sets the aperture change per R/F key press or repeat.
//
// Parameters:
//   - step: aperture delta per key event
//
// Returns:
//   - InputBuilderOption: option function to apply
func WithApertureStep(step float32) InputBuilderOption {
	return func(in *inputImpl) {
		in.apertureStep = step
	}
}

// WithFocusStep sets the focus distance change per T/G key press or repeat.
//
// Parameters:
//   - step: focus delta per key event
//
// Returns:
//   - InputBuilderOption: option function to apply
func WithFocusStep(step float32) InputBuilderOption {
	return func(in *inputImpl) {
		in.focusStep = step
	}
}

// WithRollStep sets the roll intent produced per frame while Q or E is held.
//
// Parameters:
//   - step: roll intent in radians
//
// Returns:
//   - InputBuilderOption: option function to apply
func WithRollStep(step float32) InputBuilderOption {
	return func(in *inputImpl) {
		in.rollStep = step
	}
}
