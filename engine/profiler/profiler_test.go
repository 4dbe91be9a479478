package profiler

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestProfilerReportsAtInterval(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	var buf bytes.Buffer
	p := NewProfiler(
		WithInterval(time.Second),
		WithClock(clock.now),
		WithLogger(zerolog.New(&buf)),
	)

	for i := range 49 {
		clock.t = clock.t.Add(20 * time.Millisecond)
		_, reported := p.Tick(i < 10, uint32(i))
		require.False(t, reported, "frame %d", i)
	}
	clock.t = clock.t.Add(20 * time.Millisecond)
	stats, reported := p.Tick(false, 49)
	require.True(t, reported)

	assert.InDelta(t, 50, stats.FPS, 1e-9)
	assert.Equal(t, 10, stats.MovingFrames)
	assert.Equal(t, uint32(49), stats.Accumulated)
	assert.Contains(t, buf.String(), `"component":"profiler"`)
	assert.Contains(t, buf.String(), `"moving_frames":10`)

	// Counters restart after a report.
	clock.t = clock.t.Add(time.Second)
	stats, reported = p.Tick(true, 0)
	require.True(t, reported)
	assert.Equal(t, 1, stats.MovingFrames)
	assert.Equal(t, uint32(0), stats.Accumulated)
}
