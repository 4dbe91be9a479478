package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-raymarch/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestControllerDefaults(t *testing.T) {
	cc := NewCameraController()
	assert.Equal(t, float32(1), cc.LookSensitivity())
	assert.False(t, cc.InvertY())
	assert.False(t, cc.Framing())
	assert.Equal(t, mgl32.Vec3{}, cc.FramingTarget())
}

func TestControllerAppliesAllChannels(t *testing.T) {
	cam := NewCamera(WithTuning(instantTuning()), WithFocusDistance(2))
	cc := NewCameraController()

	cc.Apply(cam, common.FrameInput{
		Movement: mgl32.Vec3{0, 0, 1},
		Zoom:     0.5,
		Aperture: 0.25,
		Focus:    -1,
	}, 0.5)

	assertVecNear(t, mgl32.Vec3{0, 0, 1}, cam.Position(), 1e-5)
	assert.InDelta(t, 1.5, cam.ZoomFactor(), 1e-6)
	assert.InDelta(t, 0.25, cam.Aperture(), 1e-6)
	assert.InDelta(t, 1, cam.FocusDistance(), 1e-6)
	assert.True(t, cam.IsMoving())
}

func TestControllerLookSensitivityAndInvert(t *testing.T) {
	in := common.FrameInput{Rotation: mgl32.Vec3{0.1, 0.2, 0.3}}

	cam := NewCamera(WithTuning(instantTuning()))
	NewCameraController(WithLookSensitivity(2), WithInvertY(true)).Apply(cam, in, frameDt)

	// Roll is not scaled by look sensitivity.
	assertVecNear(t, mgl32.Vec3{0.2, -0.4, 0.3}, cam.Velocity().Rotation, 1e-6)
}

func TestControllerSetters(t *testing.T) {
	cc := NewCameraController()
	cc.SetLookSensitivity(0.5)
	cc.SetInvertY(true)
	cc.SetFramingTarget(mgl32.Vec3{1, 2, 3})
	cc.SetFraming(true)

	assert.Equal(t, float32(0.5), cc.LookSensitivity())
	assert.True(t, cc.InvertY())
	assert.True(t, cc.Framing())
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, cc.FramingTarget())
}

func TestControllerFraming(t *testing.T) {
	target := mgl32.Vec3{0, 0, 0}
	cam := NewCamera(WithPosition(mgl32.Vec3{0.01, 0, -5}), WithLookAt(mgl32.Vec3{0, 0, 2}))
	cc := NewCameraController(WithAutoTarget(target), WithDrift(mgl32.Vec3{0.6, 0, 0}))
	assert.True(t, cc.Framing())

	for range 60 {
		cc.Apply(cam, common.FrameInput{Rotation: mgl32.Vec3{0.05, 0, 0}}, frameDt)
		dir := target.Sub(cam.Position()).Normalize()
		assert.InDelta(t, 1, cam.Forward().Dot(dir), 1e-5, "framing overrides user look")
	}
	assert.InDelta(t, 0.61, cam.Position().X(), 1e-4, "drift moves the camera while framing")

	cc.Apply(cam, common.FrameInput{ToggleFraming: true}, frameDt)
	assert.False(t, cc.Framing())

	x := cam.Position().X()
	cc.Apply(cam, common.FrameInput{}, frameDt)
	assert.Equal(t, x, cam.Position().X(), "no drift once framing is off")
}
