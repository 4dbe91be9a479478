// Package replay records and replays camera input tracks. Replaying a track is deterministic: the same
// track always yields the same per-frame samples, which makes tracks usable as golden outputs.
package replay

import (
	"errors"
	"fmt"
	"io"

	"github.com/Carmen-Shannon/oxy-raymarch/common"
	"github.com/Carmen-Shannon/oxy-raymarch/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
)

// Frame is one recorded tick: the input sampled that tick and the elapsed time it was applied over.
type Frame struct {
	Input     common.FrameInput `toml:"input"`
	DeltaTime float32           `toml:"dt"`
}

// Track is a camera setup plus an ordered sequence of frames.
type Track struct {
	Name          string     `toml:"name"`
	Position      mgl32.Vec3 `toml:"position"`
	Target        mgl32.Vec3 `toml:"target"`
	Fov           float32    `toml:"fov"`
	Zoom          float32    `toml:"zoom"`
	Aperture      float32    `toml:"aperture"`
	FocusDistance float32    `toml:"focus_distance"`

	// Tuning overrides the default smoothing constants when set.
	Tuning *camera.Tuning `toml:"tuning,omitempty"`

	LookSensitivity float32     `toml:"look_sensitivity,omitempty"`
	InvertY         bool        `toml:"invert_y,omitempty"`
	Framing         bool        `toml:"framing,omitempty"`
	FramingTarget   *mgl32.Vec3 `toml:"framing_target,omitempty"`
	Drift           *mgl32.Vec3 `toml:"drift,omitempty"`

	Frames []Frame `toml:"frames"`
}

// Validate reports structural problems that would make a replay meaningless.
//
// Returns:
//   - error: the first problem found, or nil
func (t Track) Validate() error {
	if t.Target.Sub(t.Position).LenSqr() == 0 {
		return errors.New("track target must differ from position")
	}
	if t.Fov <= 0 {
		return fmt.Errorf("track fov must be positive, got %v", t.Fov)
	}
	if t.Tuning != nil {
		if err := t.Tuning.Validate(); err != nil {
			return fmt.Errorf("track tuning: %w", err)
		}
	}
	for i, f := range t.Frames {
		if f.DeltaTime < 0 {
			return fmt.Errorf("frame %d: negative dt %v", i, f.DeltaTime)
		}
	}
	return nil
}

// NewCamera builds the camera a replay of this track starts from.
//
// Returns:
//   - camera.Camera: the initial camera
func (t Track) NewCamera() camera.Camera {
	opts := []camera.CameraBuilderOption{
		camera.WithPosition(t.Position),
		camera.WithLookAt(t.Target),
		camera.WithFov(t.Fov),
		camera.WithZoom(common.PositiveOr(t.Zoom, 1)),
		camera.WithAperture(t.Aperture),
		camera.WithFocusDistance(common.PositiveOr(t.FocusDistance, 4)),
	}
	if t.Tuning != nil {
		opts = append(opts, camera.WithTuning(*t.Tuning))
	}
	return camera.NewCamera(opts...)
}

// NewController builds the controller a replay of this track is driven by.
//
// Returns:
//   - camera.CameraController: the controller
func (t Track) NewController() camera.CameraController {
	opts := []camera.CameraControllerOption{
		camera.WithLookSensitivity(common.PositiveOr(t.LookSensitivity, 1)),
		camera.WithInvertY(t.InvertY),
	}
	cc := camera.NewCameraController(opts...)
	if t.FramingTarget != nil {
		cc.SetFramingTarget(*t.FramingTarget)
	}
	if t.Drift != nil {
		cc.SetDrift(*t.Drift)
	}
	cc.SetFraming(t.Framing)
	return cc
}

// DecodeTrack reads a TOML-encoded track and validates it.
//
// Parameters:
//   - r: TOML source
//
// Returns:
//   - Track: the decoded track
//   - error: decoding or validation error
func DecodeTrack(r io.Reader) (Track, error) {
	var t Track
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&t); err != nil {
		return Track{}, fmt.Errorf("decode track: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Track{}, fmt.Errorf("invalid track %q: %w", t.Name, err)
	}
	return t, nil
}

// EncodeTrack writes a track as TOML.
//
// Parameters:
//   - w: destination
//   - t: the track to write
//
// Returns:
//   - error: encoding error
func EncodeTrack(w io.Writer, t Track) error {
	if err := toml.NewEncoder(w).Encode(t); err != nil {
		return fmt.Errorf("encode track %q: %w", t.Name, err)
	}
	return nil
}
