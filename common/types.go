// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"github.com/go-gl/mathgl/mgl32"
)

// FrameInput is the normalized user intent sampled once per frame by the input layer and consumed by
// the camera controller. It carries no device or window state.
type FrameInput struct {
	// Movement is the local-space movement intent along right (X), up (Y) and forward (Z).
	// It is unit length when non-zero.
	Movement mgl32.Vec3 `toml:"movement"`

	// Rotation is the look intent: X is yaw, Y is pitch (both from pointer deltas normalized by the
	// viewport size), Z is roll.
	Rotation mgl32.Vec3 `toml:"rotation"`

	// Zoom is the signed, unnormalized zoom delta (typically scroll wheel offset).
	Zoom float32 `toml:"zoom"`

	// Aperture is the additive aperture adjustment for this frame.
	Aperture float32 `toml:"aperture"`

	// Focus is the additive focus distance adjustment for this frame.
	Focus float32 `toml:"focus"`

	// ToggleFraming requests the scripted look-at framing to be switched on or off.
	ToggleFraming bool `toml:"toggle_framing,omitempty"`
}

// IsZero reports whether the input carries no intent at all.
func (f FrameInput) IsZero() bool {
	return f == FrameInput{}
}
