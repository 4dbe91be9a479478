package profiler

import (
	"runtime"
	"time"

	"github.com/rs/zerolog"
)

// Stats is one interval's worth of frame and memory statistics.
type Stats struct {
	FPS          float64
	HeapMB       float64
	AllocRateMB  float64 // MB allocated per second over the interval
	SysMB        float64
	GCCount      uint32
	LastPauseUs  uint64
	MaxPauseUs   uint64
	MovingFrames int    // frames in the interval where the camera was moving
	Accumulated  uint32 // highest accumulation index reached in the interval
}

// Profiler tracks frame rate, memory and temporal accumulation statistics.
// Logs stats through zerolog at a configurable interval.
type Profiler struct {
	logger         zerolog.Logger
	now            func() time.Time
	frameCount     int
	movingFrames   int
	maxAccumulated uint32
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// ProfilerOption is a functional option for configuring a Profiler.
type ProfilerOption func(*Profiler)

// WithInterval sets how often statistics are reported.
//
// Parameters:
//   - interval: reporting interval
//
// Returns:
//   - ProfilerOption: option function to apply
func WithInterval(interval time.Duration) ProfilerOption {
	return func(p *Profiler) {
		p.updateInterval = interval
	}
}

// WithLogger sets the logger statistics are written to.
//
// Parameters:
//   - logger: destination logger
//
// Returns:
//   - ProfilerOption: option function to apply
func WithLogger(logger zerolog.Logger) ProfilerOption {
	return func(p *Profiler) {
		p.logger = logger.With().Str("component", "profiler").Logger()
	}
}

// WithClock replaces time.Now, mainly for tests.
//
// Parameters:
//   - now: clock function
//
// Returns:
//   - ProfilerOption: option function to apply
func WithClock(now func() time.Time) ProfilerOption {
	return func(p *Profiler) {
		p.now = now
	}
}

// NewProfiler creates a new Profiler. The update interval defaults to 1 second and output is
// discarded unless WithLogger is given.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		logger:         zerolog.Nop(),
		now:            time.Now,
		updateInterval: time.Second,
	}
	for _, option := range options {
		option(p)
	}
	p.lastTime = p.now()
	return p
}

// Tick should be called once per rendered frame.
// Logs statistics when the update interval has elapsed.
//
// Parameters:
//   - moving: whether the camera was moving this frame
//   - frameIndex: the accumulation index rendered this frame
//
// Returns:
//   - Stats: the interval statistics when reported
//   - bool: true if stats were reported this tick
func (p *Profiler) Tick(moving bool, frameIndex uint32) (Stats, bool) {
	p.frameCount++
	if moving {
		p.movingFrames++
	}
	p.maxAccumulated = max(p.maxAccumulated, frameIndex)

	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval || elapsed <= 0 {
		return Stats{}, false
	}

	stats := Stats{
		FPS:          float64(p.frameCount) / elapsed.Seconds(),
		MovingFrames: p.movingFrames,
		Accumulated:  p.maxAccumulated,
	}

	runtime.ReadMemStats(&p.memStats)
	// Alloc: live heap. TotalAlloc: cumulative, tracks churn. Sys: process footprint.
	stats.HeapMB = float64(p.memStats.Alloc) / 1024 / 1024
	stats.SysMB = float64(p.memStats.Sys) / 1024 / 1024
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	stats.AllocRateMB = float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	gcCount := p.memStats.NumGC
	stats.GCCount = gcCount
	if gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses
		stats.LastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			stats.MaxPauseUs = max(stats.MaxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	p.logger.Info().
		Float64("fps", stats.FPS).
		Float64("heap_mb", stats.HeapMB).
		Float64("alloc_rate_mb", stats.AllocRateMB).
		Uint32("gc", stats.GCCount).
		Uint64("gc_last_us", stats.LastPauseUs).
		Uint64("gc_max_us", stats.MaxPauseUs).
		Float64("sys_mb", stats.SysMB).
		Int("moving_frames", stats.MovingFrames).
		Uint32("accumulated", stats.Accumulated).
		Msg("frame stats")

	p.frameCount = 0
	p.movingFrames = 0
	p.maxAccumulated = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return stats, true
}
