package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-raymarch/common"
	"github.com/go-gl/mathgl/mgl32"
)

// cameraControllerImpl is the single implementation of CameraController.
type cameraControllerImpl struct {
	mu *sync.Mutex

	lookSensitivity float32
	invertY         bool

	// Scripted framing
	framing       bool
	framingTarget mgl32.Vec3
	drift         mgl32.Vec3 // world units per second while framing
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a new camera controller. By default look sensitivity is 1, pitch is
// not inverted and scripted framing is off with its target at the origin.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:              &sync.Mutex{},
		lookSensitivity: 1.0,
	}

	for _, option := range options {
		option(cc)
	}
	return cc
}

func (cc *cameraControllerImpl) Apply(cam Camera, in common.FrameInput, dt float32) {
	cc.mu.Lock()
	if in.ToggleFraming {
		cc.framing = !cc.framing
	}
	look := in.Rotation
	look[0] *= cc.lookSensitivity
	look[1] *= cc.lookSensitivity
	if cc.invertY {
		look[1] = -look[1]
	}
	framing, target, drift := cc.framing, cc.framingTarget, cc.drift
	cc.mu.Unlock()

	cam.Move(in.Movement, dt)
	cam.Rotate(look)
	cam.Zoom(in.Zoom)
	if in.Aperture != 0 {
		cam.AdjustAperture(in.Aperture)
	}
	if in.Focus != 0 {
		cam.AdjustFocus(in.Focus)
	}

	if framing {
		if drift.LenSqr() > 0 {
			cam.Translate(drift.Mul(dt))
		}
		cam.LookAt(target)
	}
}

func (cc *cameraControllerImpl) LookSensitivity() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.lookSensitivity
}

func (cc *cameraControllerImpl) SetLookSensitivity(sensitivity float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.lookSensitivity = sensitivity
}

func (cc *cameraControllerImpl) InvertY() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.invertY
}

func (cc *cameraControllerImpl) SetInvertY(invert bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.invertY = invert
}

func (cc *cameraControllerImpl) Framing() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.framing
}

func (cc *cameraControllerImpl) SetFraming(enabled bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.framing = enabled
}

func (cc *cameraControllerImpl) FramingTarget() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.framingTarget
}

func (cc *cameraControllerImpl) SetFramingTarget(target mgl32.Vec3) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.framingTarget = target
}

func (cc *cameraControllerImpl) Drift() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.drift
}

func (cc *cameraControllerImpl) SetDrift(perSecond mgl32.Vec3) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.drift = perSecond
}
