package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithLookSensitivity sets the multiplier applied to yaw and pitch intent.
//
// Parameters:
//   - sensitivity: look multiplier (1 = unscaled)
//
// Returns:
//   - CameraControllerOption: functional option to set the look sensitivity
func WithLookSensitivity(sensitivity float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.lookSensitivity = sensitivity
	}
}

// WithInvertY negates pitch intent.
//
// Parameters:
//   - invert: true to invert the vertical look axis
//
// Returns:
//   - CameraControllerOption: functional option to set pitch inversion
func WithInvertY(invert bool) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.invertY = invert
	}
}

// WithAutoTarget enables scripted framing toward target from the first frame.
//
// Parameters:
//   - target: world-space point the camera keeps facing
//
// Returns:
//   - CameraControllerOption: functional option to enable framing
func WithAutoTarget(target mgl32.Vec3) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.framing = true
		cc.framingTarget = target
	}
}

// WithDrift sets a constant world-space translation applied each frame while framing is active.
//
// Parameters:
//   - perSecond: drift velocity in world units per second
//
// Returns:
//   - CameraControllerOption: functional option to set the framing drift
func WithDrift(perSecond mgl32.Vec3) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.drift = perSecond
	}
}
