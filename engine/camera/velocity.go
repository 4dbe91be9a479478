package camera

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-raymarch/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Activity thresholds per channel. Rotation deltas are far smaller per frame than movement or zoom,
// so its threshold is several orders of magnitude lower.
const (
	movingMovementThreshold = 1e-4 // squared magnitude
	movingRotationThreshold = 1e-8 // squared magnitude
	movingZoomThreshold     = 1e-4 // absolute value
)

// VelocityState is the smoothing state of the camera's three channels. Each value is the output of
// an exponential low-pass filter and persists across frames, decaying toward zero once input stops.
// It is a plain value so it can be inspected, copied and threaded through the Filter* functions
// without any camera or window context.
type VelocityState struct {
	// Movement is the world-space translation velocity in units per second.
	Movement mgl32.Vec3 `json:"movement" toml:"movement"`
	// Rotation is the filtered (yaw, pitch, roll) delta applied per frame, in radians.
	Rotation mgl32.Vec3 `json:"rotation" toml:"rotation"`
	// Zoom is the filtered zoom factor change applied per frame.
	Zoom float32 `json:"zoom" toml:"zoom"`
}

// IsMoving reports whether any channel is still above its activity threshold.
func (v VelocityState) IsMoving() bool {
	return v.Movement.LenSqr() > movingMovementThreshold ||
		v.Rotation.LenSqr() > movingRotationThreshold ||
		math32.Abs(v.Zoom) > movingZoomThreshold
}

// Tuning holds the per-channel speed and smoothing constants. Smoothing factors are in (0, 1]:
// 1 follows the input immediately, smaller values add more inertia.
type Tuning struct {
	MovementSpeed     float32 `mapstructure:"movement_speed" toml:"movement_speed"`
	MovementSmoothing float32 `mapstructure:"movement_smoothing" toml:"movement_smoothing"`
	RotationSpeed     float32 `mapstructure:"rotation_speed" toml:"rotation_speed"`
	RotationSmoothing float32 `mapstructure:"rotation_smoothing" toml:"rotation_smoothing"`
	ZoomSpeed         float32 `mapstructure:"zoom_speed" toml:"zoom_speed"`
	ZoomSmoothing     float32 `mapstructure:"zoom_smoothing" toml:"zoom_smoothing"`
}

// DefaultTuning returns the tuning used when no options are supplied.
func DefaultTuning() Tuning {
	return Tuning{
		MovementSpeed:     2.0,
		MovementSmoothing: 0.1,
		RotationSpeed:     1.0,
		RotationSmoothing: 0.2,
		ZoomSpeed:         0.1,
		ZoomSmoothing:     0.15,
	}
}

// Validate checks that every smoothing factor is in (0, 1] and no speed is negative.
//
// Returns:
//   - error: describing the first invalid field, or nil
func (t Tuning) Validate() error {
	factors := []struct {
		name  string
		value float32
	}{
		{"movement_smoothing", t.MovementSmoothing},
		{"rotation_smoothing", t.RotationSmoothing},
		{"zoom_smoothing", t.ZoomSmoothing},
	}
	for _, f := range factors {
		if f.value <= 0 || f.value > 1 {
			return fmt.Errorf("%s must be in (0, 1], got %v", f.name, f.value)
		}
	}
	if t.MovementSpeed < 0 || t.RotationSpeed < 0 || t.ZoomSpeed < 0 {
		return fmt.Errorf("speeds must not be negative: movement=%v rotation=%v zoom=%v",
			t.MovementSpeed, t.RotationSpeed, t.ZoomSpeed)
	}
	return nil
}

// FilterMovement low-pass filters the movement velocity toward worldIntent * MovementSpeed.
//
// Parameters:
//   - v: current smoothing state
//   - worldIntent: movement intent already transformed into world space
//
// Returns:
//   - VelocityState: state with the movement channel updated
func (t Tuning) FilterMovement(v VelocityState, worldIntent mgl32.Vec3) VelocityState {
	v.Movement = common.LerpVec3(v.Movement, worldIntent.Mul(t.MovementSpeed), t.MovementSmoothing)
	return v
}

// FilterRotation low-pass filters the rotation velocity toward delta * RotationSpeed.
//
// Parameters:
//   - v: current smoothing state
//   - delta: (yaw, pitch, roll) look intent for this frame
//
// Returns:
//   - VelocityState: state with the rotation channel updated
func (t Tuning) FilterRotation(v VelocityState, delta mgl32.Vec3) VelocityState {
	v.Rotation = common.LerpVec3(v.Rotation, delta.Mul(t.RotationSpeed), t.RotationSmoothing)
	return v
}

// FilterZoom low-pass filters the zoom velocity toward delta * ZoomSpeed.
//
// Parameters:
//   - v: current smoothing state
//   - delta: signed zoom intent for this frame
//
// Returns:
//   - VelocityState: state with the zoom channel updated
func (t Tuning) FilterZoom(v VelocityState, delta float32) VelocityState {
	v.Zoom = common.Lerp(v.Zoom, delta*t.ZoomSpeed, t.ZoomSmoothing)
	return v
}
