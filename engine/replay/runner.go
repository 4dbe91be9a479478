package replay

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-raymarch/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
)

// Sample is the camera output observed after applying one frame, i.e. what the renderer would read.
type Sample struct {
	Frame         int        `toml:"frame"`
	Position      mgl32.Vec3 `toml:"position"`
	Rotation      mgl32.Mat3 `toml:"rotation"` // column-major
	Fov           float32    `toml:"fov"`
	Aperture      float32    `toml:"aperture"`
	FocusDistance float32    `toml:"focus_distance"`
	Moving        bool       `toml:"moving"`
}

// Run replays a track from its initial camera and returns one sample per frame.
//
// Parameters:
//   - t: the track to replay
//
// Returns:
//   - []Sample: per-frame camera outputs, in frame order
//   - error: validation error
func Run(t Track) ([]Sample, error) {
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid track %q: %w", t.Name, err)
	}

	cam := t.NewCamera()
	ctrl := t.NewController()
	samples := make([]Sample, len(t.Frames))
	for i, f := range t.Frames {
		ctrl.Apply(cam, f.Input, f.DeltaTime)
		samples[i] = sampleOf(i, cam)
	}
	return samples, nil
}

// RunBatch replays tracks in parallel on a bounded worker pool. Results are returned in the same order
// as tracks; the first failing track's error is returned alongside whatever succeeded.
//
// Parameters:
//   - tracks: tracks to replay
//   - workers: maximum concurrent replays; values below 1 mean 1
//
// Returns:
//   - [][]Sample: samples per track, nil for a failed track
//   - error: the error of the lowest-indexed failing track, or nil
func RunBatch(tracks []Track, workers int) ([][]Sample, error) {
	results := make([][]Sample, len(tracks))
	if len(tracks) == 0 {
		return results, nil
	}

	errs := make([]error, len(tracks))
	pool := worker.NewDynamicWorkerPool(max(workers, 1), len(tracks), time.Second)

	// pool.Wait() only returns once workers idle out, so a WaitGroup is the batch barrier.
	var wg sync.WaitGroup
	for i := range tracks {
		wg.Add(1)
		idx := i
		pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				samples, err := Run(tracks[idx])
				results[idx] = samples
				errs[idx] = err
				return nil, err
			},
		})
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

// EncodeSamples writes replay output as TOML, suitable for golden files.
//
// Parameters:
//   - w: destination
//   - name: track name recorded in the output
//   - samples: the samples to write
//
// Returns:
//   - error: encoding error
func EncodeSamples(w io.Writer, name string, samples []Sample) error {
	doc := struct {
		Track   string   `toml:"track"`
		Samples []Sample `toml:"samples"`
	}{name, samples}
	if err := toml.NewEncoder(w).Encode(doc); err != nil {
		return fmt.Errorf("encode samples for %q: %w", name, err)
	}
	return nil
}

func sampleOf(frame int, c camera.Camera) Sample {
	s := c.Snapshot()
	return Sample{
		Frame:         frame,
		Position:      s.Position,
		Rotation:      s.Rotation,
		Fov:           s.Fov,
		Aperture:      s.Aperture,
		FocusDistance: s.FocusDistance,
		Moving:        s.Moving,
	}
}
