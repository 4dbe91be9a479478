package input

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-raymarch/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	keyDown func(uint32)
	keyUp   func(uint32)
	scroll  func(float32)
	move    func(x, y float64)
}

func (f *fakeSource) SetKeyDownCallback(cb func(uint32)) { f.keyDown = cb }
func (f *fakeSource) SetKeyUpCallback(cb func(uint32)) { f.keyUp = cb }
func (f *fakeSource) SetScrollCallback(cb func(float32)) { f.scroll = cb }
func (f *fakeSource) SetMouseMoveCallback(cb func(x, y float64)) { f.move = cb }

func TestMovementKeys(t *testing.T) {
	cases := []struct {
		name string
		keys []uint32
		want mgl32.Vec3
	}{
		{"none", nil, mgl32.Vec3{}},
		{"forward", []uint32{common.KeyW}, mgl32.Vec3{0, 0, 1}},
		{"back", []uint32{common.KeyS}, mgl32.Vec3{0, 0, -1}},
		{"left", []uint32{common.KeyA}, mgl32.Vec3{-1, 0, 0}},
		{"right", []uint32{common.KeyD}, mgl32.Vec3{1, 0, 0}},
		{"up", []uint32{common.KeySpace}, mgl32.Vec3{0, 1, 0}},
		{"down", []uint32{common.KeyLeftShift}, mgl32.Vec3{0, -1, 0}},
		{"down right shift", []uint32{common.KeyRightShift}, mgl32.Vec3{0, -1, 0}},
		{"opposing cancel", []uint32{common.KeyW, common.KeyS}, mgl32.Vec3{}},
		{"vertical cancel", []uint32{common.KeySpace, common.KeyLeftShift}, mgl32.Vec3{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := NewInput()
			for _, k := range tc.keys {
				in.KeyDown(k)
			}
			assert.Equal(t, tc.want, in.Sample(800, 600).Movement)
		})
	}
}

func TestMovementNormalized(t *testing.T) {
	in := NewInput()
	in.KeyDown(common.KeyW)
	in.KeyDown(common.KeyD)
	in.KeyDown(common.KeySpace)

	got := in.Sample(800, 600).Movement
	assert.InDelta(t, 1, got.Len(), 1e-6)
	assert.InDelta(t, got.X(), got.Z(), 1e-6)

	// Held keys persist across samples until released.
	assert.Equal(t, got, in.Sample(800, 600).Movement)
	in.KeyUp(common.KeyD)
	in.KeyUp(common.KeySpace)
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, in.Sample(800, 600).Movement)
	assert.True(t, in.IsPressed(common.KeyW))
	assert.False(t, in.IsPressed(common.KeyD))
}

func TestPointerDeltaScaledByViewport(t *testing.T) {
	in := NewInput()
	in.MouseMove(400, 300) // reference only
	assert.Equal(t, mgl32.Vec3{}, in.Sample(800, 600).Rotation)

	in.MouseMove(440, 300)
	in.MouseMove(480, 330)
	got := in.Sample(800, 600).Rotation
	assert.InDelta(t, 80.0/800*2, got.X(), 1e-6)
	assert.InDelta(t, 30.0/600*2, got.Y(), 1e-6)
	assert.Equal(t, float32(0), got.Z())

	// Delta is consumed by Sample.
	assert.Equal(t, mgl32.Vec3{}, in.Sample(800, 600).Rotation)

	in.MouseMove(500, 330)
	assert.Equal(t, mgl32.Vec3{}, in.Sample(0, 0).Rotation, "zero viewport yields no look intent")
}

func TestResetPointer(t *testing.T) {
	in := NewInput()
	in.MouseMove(10, 10)
	in.MouseMove(20, 20)
	in.ResetPointer()
	in.MouseMove(400, 400)
	assert.Equal(t, mgl32.Vec3{}, in.Sample(800, 600).Rotation)
}

func TestRollKeys(t *testing.T) {
	in := NewInput(WithRollStep(0.05))
	in.KeyDown(common.KeyQ)
	assert.Equal(t, float32(0.05), in.Sample(800, 600).Rotation.Z())
	in.KeyDown(common.KeyE)
	assert.Equal(t, float32(0), in.Sample(800, 600).Rotation.Z())
	in.KeyUp(common.KeyQ)
	assert.Equal(t, float32(-0.05), in.Sample(800, 600).Rotation.Z())
}

func TestScrollAccumulates(t *testing.T) {
	in := NewInput()
	in.Scroll(1)
	in.Scroll(0.5)
	assert.Equal(t, float32(1.5), in.Sample(800, 600).Zoom)
	assert.Equal(t, float32(0), in.Sample(800, 600).Zoom)
}

func TestLensSteps(t *testing.T) {
	in := NewInput(WithApertureStep(0.02), WithFocusStep(0.5))
	in.KeyDown(common.KeyR)
	in.KeyDown(common.KeyR) // repeat
	in.KeyDown(common.KeyG)

	got := in.Sample(800, 600)
	assert.InDelta(t, 0.04, got.Aperture, 1e-6)
	assert.InDelta(t, -0.5, got.Focus, 1e-6)

	// Steps are events, not held state.
	got = in.Sample(800, 600)
	assert.Equal(t, float32(0), got.Aperture)
	assert.Equal(t, float32(0), got.Focus)

	in.KeyDown(common.KeyF)
	in.KeyDown(common.KeyT)
	got = in.Sample(800, 600)
	assert.InDelta(t, -0.02, got.Aperture, 1e-6)
	assert.InDelta(t, 0.5, got.Focus, 1e-6)
}

func TestFramingToggleIgnoresRepeat(t *testing.T) {
	in := NewInput()
	in.KeyDown(common.KeyL)
	in.KeyDown(common.KeyL) // repeat
	in.KeyDown(common.KeyL) // repeat
	assert.True(t, in.Sample(800, 600).ToggleFraming)
	assert.False(t, in.Sample(800, 600).ToggleFraming)

	in.KeyUp(common.KeyL)
	in.KeyDown(common.KeyL)
	assert.True(t, in.Sample(800, 600).ToggleFraming)
}

func TestAttach(t *testing.T) {
	src := &fakeSource{}
	in := NewInput()
	in.Attach(src)
	require.NotNil(t, src.keyDown)
	require.NotNil(t, src.keyUp)
	require.NotNil(t, src.scroll)
	require.NotNil(t, src.move)

	src.keyDown(common.KeyW)
	src.scroll(-2)
	src.move(0, 0)
	src.move(100, 0)

	got := in.Sample(200, 100)
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, got.Movement)
	assert.Equal(t, float32(-2), got.Zoom)
	assert.InDelta(t, 1, got.Rotation.X(), 1e-6)

	src.keyUp(common.KeyW)
	assert.True(t, in.Sample(200, 100).IsZero())
}
