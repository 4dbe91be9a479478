package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-raymarch/common"
	"github.com/Carmen-Shannon/oxy-raymarch/config"
	"github.com/Carmen-Shannon/oxy-raymarch/engine/replay"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeTestTrack(t *testing.T, dir, name string) string {
	t.Helper()
	track := replay.Track{
		Name:     name,
		Position: mgl32.Vec3{0.01, 0, -5},
		Target:   mgl32.Vec3{0, 0, 2},
		Fov:      60,
	}
	for range 5 {
		track.Frames = append(track.Frames, replay.Frame{
			Input:     common.FrameInput{Movement: mgl32.Vec3{0, 0, 1}},
			DeltaTime: 1.0 / 60,
		})
	}
	path := filepath.Join(dir, name+".toml")
	require.NoError(t, writeTrack(path, track))
	return path
}

func TestReplayCommandStdout(t *testing.T) {
	dir := t.TempDir()
	a := writeTestTrack(t, dir, "alpha")
	b := writeTestTrack(t, dir, "beta")

	out, err := execute(t, "replay", "--workers", "2", "--out", "", a, b)
	require.NoError(t, err)
	assert.Equal(t, 10, strings.Count(out, "[[samples]]"))
	assert.Less(t, strings.Index(out, "alpha"), strings.Index(out, "beta"))
}

func TestReplayCommandOutDir(t *testing.T) {
	dir := t.TempDir()
	track := writeTestTrack(t, dir, "gamma")
	outDir := filepath.Join(dir, "golden")

	_, err := execute(t, "replay", "--workers", "1", "--out", outDir, track)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(outDir, "gamma.samples.toml"))
	require.NoError(t, err)
	assert.Equal(t, 5, strings.Count(string(data), "[[samples]]"))

	// Replay output is deterministic.
	_, err = execute(t, "replay", "--workers", "1", "--out", outDir, track)
	require.NoError(t, err)
	again, err := os.ReadFile(filepath.Join(outDir, "gamma.samples.toml"))
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestReplayCommandErrors(t *testing.T) {
	_, err := execute(t, "replay", "--out", "", filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = execute(t, "replay")
	assert.Error(t, err)
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raymarch.toml")

	out, err := execute(t, "config", "init", "--force=false", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	_, err = execute(t, "config", "init", "--force=false", path)
	assert.ErrorContains(t, err, "already exists")

	out, err = execute(t, "config", "show", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "tick_rate")
	assert.Contains(t, out, "movement_smoothing")
}

func TestNewEngineFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Camera.LookSensitivity = 2
	cfg.Camera.Framing = true
	cfg.Camera.FramingTarget = mgl32.Vec3{0, 1, 0}

	eng := newEngine(cfg, nil, zerolog.Nop())
	assert.Nil(t, eng.Window())
	assert.Equal(t, cfg.Camera.Position, eng.Camera().Position())
	assert.InDelta(t, 60, eng.Camera().FovDegrees(), 1e-4)
	assert.Equal(t, cfg.Camera.Tuning, eng.Camera().Tuning())
	assert.Equal(t, float32(2), eng.Controller().LookSensitivity())
	assert.True(t, eng.Controller().Framing())
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, eng.Controller().FramingTarget())

	w, h := eng.Camera().Resolution()
	assert.Equal(t, float32(cfg.Window.Width), w)
	assert.Equal(t, float32(cfg.Window.Height), h)

	next := config.DefaultConfig()
	next.Camera.Tuning.MovementSpeed = 8
	next.Camera.InvertY = true
	next.Camera.Drift = mgl32.Vec3{1, 0, 0}
	next.Engine.TickRate = 30
	next.Engine.Profile = true
	applyLiveConfig(eng, next)
	assert.Equal(t, float32(8), eng.Camera().Tuning().MovementSpeed)
	assert.InDelta(t, 1.0/30, eng.TickRate().Seconds(), 1e-9)
	assert.True(t, eng.ProfilerEnabled())
	assert.True(t, eng.Controller().InvertY())
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, eng.Controller().Drift())
}

func TestTrackAndSampleFilesReportWriteFailures(t *testing.T) {
	dir := t.TempDir()
	track := replay.Track{Name: "fail", Position: mgl32.Vec3{0, 0, -5}, Target: mgl32.Vec3{0, 0, 1}, Fov: 60}
	samples, err := replay.Run(track)
	require.NoError(t, err)

	missing := filepath.Join(dir, "missing", "out.toml")
	assert.ErrorContains(t, writeTrack(missing, track), "create track file")
	assert.ErrorContains(t, writeSamplesFile(missing, "fail", samples), "create samples file")

	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("no /dev/full on this platform")
	}
	assert.Error(t, writeTrack("/dev/full", track))
	assert.Error(t, writeSamplesFile("/dev/full", "fail", samples))
}
