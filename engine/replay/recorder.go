package replay

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-raymarch/common"
	"github.com/Carmen-Shannon/oxy-raymarch/engine/camera"
)

// Recorder captures the frames applied to a live camera so the session can be replayed later.
// Record is called from the engine's tick goroutine; Track may be called from any goroutine.
type Recorder struct {
	mu     sync.Mutex
	header Track
	frames []Frame
}

// NewRecorder starts a recording for a camera. The camera's current position, facing and lens
// become the track's starting state.
//
// Parameters:
//   - name: track name
//   - cam: the camera being driven
//
// Returns:
//   - *Recorder: the recorder
func NewRecorder(name string, cam camera.Camera) *Recorder {
	tuning := cam.Tuning()
	return &Recorder{
		header: Track{
			Name:          name,
			Position:      cam.Position(),
			Target:        cam.Position().Add(cam.Forward()),
			Fov:           cam.FovDegrees(),
			Zoom:          cam.ZoomFactor(),
			Aperture:      cam.Aperture(),
			FocusDistance: cam.FocusDistance(),
			Tuning:        &tuning,
		},
	}
}

// SetController copies the controller settings a replay needs to reproduce the session.
//
// Parameters:
//   - cc: the controller driving the recorded camera
func (r *Recorder) SetController(cc camera.CameraController) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.header.LookSensitivity = cc.LookSensitivity()
	r.header.InvertY = cc.InvertY()
	r.header.Framing = cc.Framing()
	target := cc.FramingTarget()
	r.header.FramingTarget = &target
	drift := cc.Drift()
	r.header.Drift = &drift
}

// Record appends one frame.
//
// Parameters:
//   - in: the input applied this tick
//   - dt: elapsed seconds the input was applied over
func (r *Recorder) Record(in common.FrameInput, dt float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, Frame{Input: in, DeltaTime: dt})
}

// Len returns the number of recorded frames.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

// Track returns a copy of the recording so far.
//
// Returns:
//   - Track: the recorded track
func (r *Recorder) Track() Track {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := r.header
	t.Frames = append([]Frame(nil), r.frames...)
	return t
}
