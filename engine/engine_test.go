package engine

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-raymarch/common"
	"github.com/Carmen-Shannon/oxy-raymarch/engine/camera"
	"github.com/Carmen-Shannon/oxy-raymarch/engine/input"
	"github.com/Carmen-Shannon/oxy-raymarch/engine/replay"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dt = float32(1.0 / 60.0)

func newTestEngine(options ...EngineBuilderOption) Engine {
	cam := camera.NewCamera(
		camera.WithPosition(mgl32.Vec3{0.01, 0, -5}),
		camera.WithLookAt(mgl32.Vec3{0, 0, 2}),
		camera.WithFov(60),
		camera.WithResolution(800, 600),
	)
	return NewEngine(append([]EngineBuilderOption{WithCamera(cam)}, options...)...)
}

func TestNewEngineDefaults(t *testing.T) {
	e := NewEngine()
	assert.Nil(t, e.Window())
	assert.NotNil(t, e.Camera())
	assert.NotNil(t, e.Controller())
	assert.NotNil(t, e.Input())
	assert.NotNil(t, e.Accumulator())
	assert.Nil(t, e.Recorder())
	assert.ErrorIs(t, e.Run(), ErrNoWindow)

	// Quit without Run is a no-op that must not panic when repeated.
	e.Quit()
	e.Quit()
}

func TestStepDrivesCamera(t *testing.T) {
	e := newTestEngine()
	start := e.Camera().Position()

	var ticks int
	var last common.FrameInput
	e.SetTickCallback(func(in common.FrameInput, deltaTime float32) {
		ticks++
		last = in
		assert.Equal(t, dt, deltaTime)
	})

	e.Input().KeyDown(common.KeyW)
	for range 30 {
		e.Step(dt)
	}
	assert.Equal(t, 30, ticks)
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, last.Movement)
	assert.Greater(t, e.Camera().Position().Z(), start.Z())
	assert.True(t, e.Camera().IsMoving())
}

func TestStepUsesCameraResolutionForPointer(t *testing.T) {
	in := input.NewInput()
	e := newTestEngine(WithInput(in))

	var got common.FrameInput
	e.SetTickCallback(func(sample common.FrameInput, _ float32) { got = sample })

	in.MouseMove(100, 100)
	in.MouseMove(180, 130)
	e.Step(dt)
	assert.InDelta(t, 80.0/800*2, got.Rotation.X(), 1e-6)
	assert.InDelta(t, 30.0/600*2, got.Rotation.Y(), 1e-6)
}

func TestRenderFrameAccumulates(t *testing.T) {
	e := newTestEngine()

	var frames []camera.GPUCameraUniform
	e.SetRenderCallback(func(u camera.GPUCameraUniform, _ float32) {
		frames = append(frames, u)
	})

	// Still camera: the index counts up.
	for range 3 {
		e.RenderFrame(dt)
	}
	require.Len(t, frames, 3)
	assert.Equal(t, uint32(0), frames[0].FrameIndex)
	assert.Equal(t, uint32(2), frames[2].FrameIndex)
	assert.InDelta(t, 3*dt, frames[2].Time, 1e-6)
	assert.Equal(t, [2]float32{800, 600}, frames[2].Resolution)

	// Moving camera: the index resets.
	e.Input().KeyDown(common.KeyD)
	e.Step(dt)
	u := e.RenderFrame(dt)
	assert.Equal(t, uint32(0), u.FrameIndex)
	assert.Equal(t, uint32(1), u.Moving)

	// Released and settled: counting resumes from zero.
	e.Input().KeyUp(common.KeyD)
	for range 1000 {
		e.Step(dt)
	}
	require.False(t, e.Camera().IsMoving())
	assert.Equal(t, uint32(0), e.RenderFrame(dt).FrameIndex)
	assert.Equal(t, uint32(1), e.RenderFrame(dt).FrameIndex)
	assert.Equal(t, uint64(len(frames)), e.Accumulator().Total())
}

func TestRecorderCapturesTicks(t *testing.T) {
	e := newTestEngine()
	rec := replay.NewRecorder("engine", e.Camera())
	rec.SetController(e.Controller())
	e.SetRecorder(rec)
	assert.Same(t, rec, e.Recorder())

	e.Input().KeyDown(common.KeyW)
	e.Input().Scroll(1)
	for range 20 {
		e.Step(dt)
	}
	e.Input().KeyUp(common.KeyW)
	for range 20 {
		e.Step(dt)
	}
	require.Equal(t, 40, rec.Len())

	samples, err := replay.Run(rec.Track())
	require.NoError(t, err)
	last := samples[len(samples)-1]
	for i := range 3 {
		assert.InDelta(t, e.Camera().Position()[i], last.Position[i], 1e-4)
	}
	for i := range 9 {
		assert.InDelta(t, e.Camera().RotationMatrix()[i], last.Rotation[i], 1e-4)
	}
	assert.InDelta(t, e.Camera().Fov(), last.Fov, 1e-5)

	e.SetRecorder(nil)
	e.Step(dt)
	assert.Equal(t, 40, rec.Len())
}

func TestTickInterval(t *testing.T) {
	assert.Equal(t, tickInterval(60), tickInterval(0))
	assert.InDelta(t, 1.0/144, tickInterval(144).Seconds(), 1e-9)
	assert.Zero(t, frameLimit(-1))
	assert.InDelta(t, 1.0/30, frameLimit(30).Seconds(), 1e-9)
}

func TestLiveSettingsFromOtherGoroutines(t *testing.T) {
	e := newTestEngine(WithProfiling(false), WithTickRate(144))
	assert.False(t, e.Running())
	assert.False(t, e.ProfilerEnabled())
	assert.Equal(t, tickInterval(144), e.TickRate())

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := range 500 {
			if i%2 == 0 {
				e.EnableProfiler()
			} else {
				e.DisableProfiler()
			}
			e.SetTickRate(float64(30 + i%90))
		}
		e.EnableProfiler()
		e.SetTickRate(120)
	}()

	for range 500 {
		e.Step(dt)
		e.RenderFrame(dt)
	}
	<-done

	assert.True(t, e.ProfilerEnabled())
	assert.Equal(t, tickInterval(120), e.TickRate())
	e.Quit()
	assert.False(t, e.Running())
}

func TestRenderFrameNeverTearsAgainstStep(t *testing.T) {
	e := newTestEngine()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := range 2000 {
			if i%50 == 0 {
				e.Input().KeyDown(common.KeyW)
			}
			if i%50 == 25 {
				e.Input().KeyUp(common.KeyW)
			}
			e.Step(dt)
		}
	}()

	var torn int
	for range 2000 {
		u := e.RenderFrame(dt)
		if u.Moving == 1 && u.FrameIndex != 0 {
			torn++
		}
	}
	<-done
	assert.Zero(t, torn)
}
