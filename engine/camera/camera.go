package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-raymarch/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Lens floors.
const (
	minZoom          float32 = 1.0
	minAperture      float32 = 0.0
	minFocusDistance float32 = 0.1
)

type cameraImpl struct {
	mu *sync.Mutex

	position    mgl32.Vec3
	orientation common.Quaternion

	// Derived from orientation, never written directly.
	forward mgl32.Vec3
	up      mgl32.Vec3
	right   mgl32.Vec3

	velocity VelocityState
	tuning   Tuning

	fov           float32 // degrees
	zoom          float32
	aperture      float32
	focusDistance float32

	resolution [2]float32
	aspect     float32

	target mgl32.Vec3 // initial look-at target, consumed at construction
}

// State is everything the renderer reads from a camera for one frame, captured under a single lock.
type State struct {
	Position      mgl32.Vec3
	Rotation      mgl32.Mat3 // columns right, up, forward
	Fov           float32    // radians, zoom applied
	Aperture      float32
	FocusDistance float32
	Resolution    [2]float32
	Moving        bool
}

// Camera is a free-flying viewpoint with a quaternion orientation, per-channel smoothed velocities and
// thin-lens parameters. It is mutated once per frame by its owning loop and read by the renderer.
type Camera interface {
	// Translate adds delta to the position directly, with no smoothing.
	//
	// Parameters:
	//   - delta: world-space offset
	Translate(delta mgl32.Vec3)

	// Move converts a local-space intent (right, up, forward components) into world space, filters the
	// movement velocity toward it and integrates the position over dt.
	//
	// Parameters:
	//   - local: movement intent along the camera's right, up and forward axes
	//   - dt: elapsed seconds since the previous frame
	Move(local mgl32.Vec3, dt float32)

	// Rotate filters the rotation velocity toward delta and applies it as yaw about up, pitch about
	// right and roll about forward, composed as yaw * pitch * roll * orientation.
	//
	// Parameters:
	//   - delta: (yaw, pitch, roll) intent in radians
	Rotate(delta mgl32.Vec3)

	// LookAt replaces the orientation with one facing target from the current position. Velocities
	// are left untouched.
	//
	// Parameters:
	//   - target: world-space point to face
	LookAt(target mgl32.Vec3)

	// Zoom filters the zoom velocity toward delta, integrates it and clamps the zoom factor to >= 1.
	//
	// Parameters:
	//   - delta: signed zoom intent
	Zoom(delta float32)

	// AdjustAperture adds delta to the aperture, clamped to >= 0.
	//
	// Parameters:
	//   - delta: signed aperture change
	AdjustAperture(delta float32)

	// AdjustFocus adds delta to the focus distance, clamped to >= 0.1.
	//
	// Parameters:
	//   - delta: signed focus distance change
	AdjustFocus(delta float32)

	// Position returns the world-space position.
	Position() mgl32.Vec3

	// Orientation returns the current unit quaternion.
	Orientation() common.Quaternion

	// RotationMatrix returns the orientation as a column-major 3x3 matrix whose columns are the
	// right, up and forward basis vectors.
	RotationMatrix() mgl32.Mat3

	// Forward returns the camera's forward basis vector.
	Forward() mgl32.Vec3

	// Up returns the camera's up basis vector.
	Up() mgl32.Vec3

	// Right returns the camera's right basis vector.
	Right() mgl32.Vec3

	// Fov returns the effective field of view in radians, narrowed by the zoom factor.
	//
	// Returns:
	//   - float32: fovDegrees * π / (180 * zoom)
	Fov() float32

	// FovDegrees returns the configured (unzoomed) field of view in degrees.
	FovDegrees() float32

	// ZoomFactor returns the current zoom factor, always >= 1.
	ZoomFactor() float32

	// Aperture returns the current aperture, always >= 0.
	Aperture() float32

	// FocusDistance returns the current focus distance, always >= 0.1.
	FocusDistance() float32

	// Aspect returns the aspect ratio derived from the resolution.
	Aspect() float32

	// Resolution returns the viewport size in pixels.
	//
	// Returns:
	//   - width, height: viewport size
	Resolution() (width, height float32)

	// SetResolution updates the viewport size and derived aspect ratio.
	// Non-positive sizes (a minimized window) are ignored.
	//
	// Parameters:
	//   - width, height: viewport size in pixels
	SetResolution(width, height float32)

	// Snapshot captures the render-facing state atomically, so a concurrent Move or Rotate can never
	// leave position and rotation from different frames.
	//
	// Returns:
	//   - State: the camera state at one instant
	Snapshot() State

	// IsMoving reports whether any smoothed velocity channel is still above its activity threshold.
	IsMoving() bool

	// Velocity returns a copy of the smoothing state.
	Velocity() VelocityState

	// SetVelocity replaces the smoothing state.
	//
	// Parameters:
	//   - v: the new smoothing state
	SetVelocity(v VelocityState)

	// Tuning returns the speed and smoothing constants.
	Tuning() Tuning

	// SetTuning replaces the speed and smoothing constants. Velocities are kept.
	//
	// Parameters:
	//   - t: the new tuning
	SetTuning(t Tuning)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera. Without options it sits at the origin looking down +Z with a
// 60 degree field of view. The orientation is derived by look-at from the configured position and
// target after all options are applied, so WithPosition and WithLookAt may be given in any order.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:            &sync.Mutex{},
		orientation:   common.QuaternionIdentity(),
		tuning:        DefaultTuning(),
		fov:           60,
		zoom:          1,
		aperture:      0,
		focusDistance: 4,
		resolution:    [2]float32{1920, 1080},
		target:        common.WorldForward,
	}
	for _, option := range options {
		option(c)
	}

	c.zoom = math32.Max(minZoom, c.zoom)
	c.aperture = math32.Max(minAperture, c.aperture)
	c.focusDistance = math32.Max(minFocusDistance, c.focusDistance)
	c.aspect = aspectOf(c.resolution)
	c.velocity = VelocityState{}
	c.orientation = common.QuaternionLookAt(c.position, c.target, common.WorldUp)
	c.refreshBasis()
	return c
}

func (c *cameraImpl) Translate(delta mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = c.position.Add(delta)
}

func (c *cameraImpl) Move(local mgl32.Vec3, dt float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	world := c.right.Mul(local.X()).
		Add(c.up.Mul(local.Y())).
		Add(c.forward.Mul(local.Z()))
	c.velocity = c.tuning.FilterMovement(c.velocity, world)
	c.position = c.position.Add(c.velocity.Movement.Mul(dt))
}

func (c *cameraImpl) Rotate(delta mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.velocity = c.tuning.FilterRotation(c.velocity, delta)

	rv := c.velocity.Rotation
	yaw := common.QuaternionFromAxisAngle(c.up, rv.X())
	pitch := common.QuaternionFromAxisAngle(c.right, rv.Y())
	roll := common.QuaternionFromAxisAngle(c.forward, rv.Z())

	c.orientation = yaw.Mul(pitch).Mul(roll).Mul(c.orientation).Normalize()
	c.refreshBasis()
}

func (c *cameraImpl) LookAt(target mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orientation = common.QuaternionLookAt(c.position, target, common.WorldUp)
	c.refreshBasis()
}

func (c *cameraImpl) Zoom(delta float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.velocity = c.tuning.FilterZoom(c.velocity, delta)
	c.zoom = math32.Max(minZoom, c.zoom+c.velocity.Zoom)
}

func (c *cameraImpl) AdjustAperture(delta float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aperture = math32.Max(minAperture, c.aperture+delta)
}

func (c *cameraImpl) AdjustFocus(delta float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.focusDistance = math32.Max(minFocusDistance, c.focusDistance+delta)
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) Orientation() common.Quaternion {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orientation
}

func (c *cameraImpl) RotationMatrix() mgl32.Mat3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orientation.ToMatrix()
}

func (c *cameraImpl) Forward() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.forward
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) Right() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.right
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov * math32.Pi / (180 * c.zoom)
}

func (c *cameraImpl) FovDegrees() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) ZoomFactor() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.zoom
}

func (c *cameraImpl) Aperture() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aperture
}

func (c *cameraImpl) FocusDistance() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.focusDistance
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Resolution() (width, height float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resolution[0], c.resolution[1]
}

func (c *cameraImpl) SetResolution(width, height float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if width <= 0 || height <= 0 {
		return
	}
	c.resolution = [2]float32{width, height}
	c.aspect = aspectOf(c.resolution)
}

func (c *cameraImpl) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Position:      c.position,
		Rotation:      c.orientation.ToMatrix(),
		Fov:           c.fov * math32.Pi / (180 * c.zoom),
		Aperture:      c.aperture,
		FocusDistance: c.focusDistance,
		Resolution:    c.resolution,
		Moving:        c.velocity.IsMoving(),
	}
}

func (c *cameraImpl) IsMoving() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.velocity.IsMoving()
}

func (c *cameraImpl) Velocity() VelocityState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.velocity
}

func (c *cameraImpl) SetVelocity(v VelocityState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.velocity = v
}

func (c *cameraImpl) Tuning() Tuning {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tuning
}

func (c *cameraImpl) SetTuning(t Tuning) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tuning = t
}

// refreshBasis recomputes forward, up and right by rotating the world axes with the orientation.
// Caller must hold the mutex.
func (c *cameraImpl) refreshBasis() {
	c.forward = c.orientation.Rotate(common.WorldForward)
	c.up = c.orientation.Rotate(common.WorldUp)
	c.right = c.orientation.Rotate(common.WorldRight)
}

func aspectOf(resolution [2]float32) float32 {
	if resolution[1] == 0 {
		return 1
	}
	return resolution[0] / resolution[1]
}
