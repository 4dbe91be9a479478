package camera

import (
	"sync"
)

// Accumulator tracks the temporal accumulation frame index for a camera. The index counts
// consecutive still frames and drops back to 0 on any frame where the camera is moving, which tells
// the renderer to discard its blended history.
type Accumulator struct {
	mu    sync.Mutex
	index uint32
	total uint64 // frames since the last reset, moving or not
}

// NewAccumulator creates an Accumulator starting at frame index 0.
//
// Returns:
//   - *Accumulator: the accumulator
func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

// Next snapshots the camera into a uniform and advances the accumulation index.
//
// Parameters:
//   - c: the camera to read
//   - time: seconds since start
//
// Returns:
//   - GPUCameraUniform: the uniform for this frame
func (a *Accumulator) Next(c Camera, time float32) GPUCameraUniform {
	a.mu.Lock()
	defer a.mu.Unlock()

	state := c.Snapshot()
	if state.Moving {
		a.index = 0
	}
	u := uniformFromState(state, time, a.index)
	if !state.Moving {
		a.index++
	}
	a.total++
	return u
}

// Index returns the frame index the next still frame will carry.
func (a *Accumulator) Index() uint32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.index
}

// Reset forces the next frame to start a new accumulation, e.g. after a resize.
func (a *Accumulator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.index = 0
	a.total = 0
}

// Total returns the number of frames produced since the last reset.
func (a *Accumulator) Total() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.total
}
