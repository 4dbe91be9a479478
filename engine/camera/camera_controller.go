package camera

import (
	"github.com/Carmen-Shannon/oxy-raymarch/common"
	"github.com/go-gl/mathgl/mgl32"
)

// CameraController applies one frame of normalized user intent to a Camera.
// The controller owns no camera state; it only decides how input maps onto camera mutators and in
// which order they run: Move, Rotate, Zoom, AdjustAperture, AdjustFocus, then the optional scripted
// framing (drift plus LookAt toward the framing target).
type CameraController interface {
	// Apply mutates the camera with one frame of input.
	//
	// Parameters:
	//   - cam: the camera to drive
	//   - in: normalized input sampled for this frame
	//   - dt: elapsed seconds since the previous frame
	Apply(cam Camera, in common.FrameInput, dt float32)

	// LookSensitivity returns the multiplier applied to yaw and pitch intent.
	//
	// Returns:
	//   - float32: look sensitivity
	LookSensitivity() float32

	// SetLookSensitivity sets the multiplier applied to yaw and pitch intent.
	//
	// Parameters:
	//   - sensitivity: new multiplier
	SetLookSensitivity(sensitivity float32)

	// InvertY reports whether pitch intent is negated.
	InvertY() bool

	// SetInvertY sets whether pitch intent is negated.
	//
	// Parameters:
	//   - invert: true to negate pitch
	SetInvertY(invert bool)

	// Framing reports whether scripted framing is active.
	Framing() bool

	// SetFraming enables or disables scripted framing.
	//
	// Parameters:
	//   - enabled: true to keep the camera facing the framing target
	SetFraming(enabled bool)

	// FramingTarget returns the point the camera faces while framing is active.
	FramingTarget() mgl32.Vec3

	// SetFramingTarget sets the point the camera faces while framing is active.
	//
	// Parameters:
	//   - target: world-space point
	SetFramingTarget(target mgl32.Vec3)

	// Drift returns the world-space velocity applied while framing is active.
	Drift() mgl32.Vec3

	// SetDrift sets the world-space velocity applied while framing is active.
	//
	// Parameters:
	//   - perSecond: drift in world units per second
	SetDrift(perSecond mgl32.Vec3)
}
