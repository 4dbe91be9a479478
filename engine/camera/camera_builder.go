package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

type CameraBuilderOption func(*cameraImpl)

// WithPosition sets the camera's initial world-space position.
//
// Parameters:
//   - position: world-space coordinates
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's position
func WithPosition(position mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = position
	}
}

// WithLookAt sets the point the camera initially faces. The orientation is derived from the
// position and this target once all options have been applied.
//
// Parameters:
//   - target: world-space point to face
//
// Returns:
//   - CameraBuilderOption: a function that sets the initial look-at target
func WithLookAt(target mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.target = target
	}
}

// WithFov sets the camera's field of view in degrees.
//
// Parameters:
//   - degrees: unzoomed field of view
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's field of view
func WithFov(degrees float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = degrees
	}
}

// WithZoom sets the initial zoom factor. Values below 1 are clamped to 1.
//
// Parameters:
//   - zoom: initial zoom factor
//
// Returns:
//   - CameraBuilderOption: a function that sets the zoom factor
func WithZoom(zoom float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.zoom = zoom
	}
}

// WithResolution sets the viewport size used to derive the aspect ratio.
//
// Parameters:
//   - width, height: viewport size in pixels
//
// Returns:
//   - CameraBuilderOption: a function that sets the resolution
func WithResolution(width, height float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.resolution = [2]float32{width, height}
	}
}

// WithAperture sets the initial aperture. Negative values are clamped to 0.
//
// Parameters:
//   - aperture: lens aperture
//
// Returns:
//   - CameraBuilderOption: a function that sets the aperture
func WithAperture(aperture float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.aperture = aperture
	}
}

// WithFocusDistance sets the initial focus distance. Values below 0.1 are clamped to 0.1.
//
// Parameters:
//   - distance: focus distance in world units
//
// Returns:
//   - CameraBuilderOption: a function that sets the focus distance
func WithFocusDistance(distance float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.focusDistance = distance
	}
}

// WithTuning sets the per-channel speed and smoothing constants.
//
// Parameters:
//   - tuning: speed and smoothing constants
//
// Returns:
//   - CameraBuilderOption: a function that sets the tuning
func WithTuning(tuning Tuning) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.tuning = tuning
	}
}
