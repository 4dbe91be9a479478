package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestTuningValidate(t *testing.T) {
	assert.NoError(t, DefaultTuning().Validate())
	assert.NoError(t, instantTuning().Validate())

	cases := map[string]func(*Tuning){
		"zero movement smoothing": func(tu *Tuning) { tu.MovementSmoothing = 0 },
		"rotation smoothing > 1":  func(tu *Tuning) { tu.RotationSmoothing = 1.5 },
		"negative zoom smoothing": func(tu *Tuning) { tu.ZoomSmoothing = -0.1 },
		"negative movement speed": func(tu *Tuning) { tu.MovementSpeed = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			tu := DefaultTuning()
			mutate(&tu)
			assert.Error(t, tu.Validate())
		})
	}
}

func TestFilterFunctions(t *testing.T) {
	tu := DefaultTuning()
	var v VelocityState

	v = tu.FilterMovement(v, mgl32.Vec3{1, 0, 0})
	assert.InDelta(t, tu.MovementSpeed*tu.MovementSmoothing, v.Movement.X(), 1e-6)

	v = tu.FilterRotation(v, mgl32.Vec3{0, 0.5, 0})
	assert.InDelta(t, 0.5*tu.RotationSpeed*tu.RotationSmoothing, v.Rotation.Y(), 1e-6)

	v = tu.FilterZoom(v, -2)
	assert.InDelta(t, -2*tu.ZoomSpeed*tu.ZoomSmoothing, v.Zoom, 1e-6)

	// Filters touch only their own channel.
	before := v
	v = tu.FilterZoom(v, 0)
	assert.Equal(t, before.Movement, v.Movement)
	assert.Equal(t, before.Rotation, v.Rotation)
}

func TestFilterConvergesToTarget(t *testing.T) {
	tu := DefaultTuning()
	var v VelocityState
	for range 500 {
		v = tu.FilterMovement(v, mgl32.Vec3{0, 0, 1})
	}
	assert.InDelta(t, tu.MovementSpeed, v.Movement.Z(), 1e-4)
}

func TestVelocityStateIsMoving(t *testing.T) {
	assert.False(t, VelocityState{}.IsMoving())

	// Movement threshold is on the squared magnitude.
	assert.False(t, VelocityState{Movement: mgl32.Vec3{0.009, 0, 0}}.IsMoving())
	assert.True(t, VelocityState{Movement: mgl32.Vec3{0.011, 0, 0}}.IsMoving())

	// Rotation threshold is much tighter.
	assert.False(t, VelocityState{Rotation: mgl32.Vec3{0, 0.00009, 0}}.IsMoving())
	assert.True(t, VelocityState{Rotation: mgl32.Vec3{0, 0.00011, 0}}.IsMoving())

	// Zoom threshold is on the absolute value.
	assert.False(t, VelocityState{Zoom: -0.00009}.IsMoving())
	assert.True(t, VelocityState{Zoom: -0.00011}.IsMoving())
	assert.Equal(t, VelocityState{Zoom: 0.00011}.IsMoving(), VelocityState{Zoom: -0.00011}.IsMoving())
	assert.Equal(t, VelocityState{Zoom: 0.00009}.IsMoving(), VelocityState{Zoom: -0.00009}.IsMoving())

	// Sign never matters on any channel.
	assert.True(t, VelocityState{Movement: mgl32.Vec3{0, -0.011, 0}}.IsMoving())
	assert.True(t, VelocityState{Rotation: mgl32.Vec3{0, 0, -0.00011}}.IsMoving())
	assert.False(t, VelocityState{Movement: mgl32.Vec3{-0.005, 0.005, -0.005}, Zoom: -0.00005}.IsMoving())
}
