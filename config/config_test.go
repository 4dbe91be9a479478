package config

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, mgl32.Vec3{0.01, 0, -5}, cfg.Camera.Position)
	assert.Equal(t, mgl32.Vec3{0, 0, 2}, cfg.Camera.Target)
	assert.Equal(t, float32(60), cfg.Camera.Fov)
	assert.Equal(t, 1920, cfg.Window.Width)
	assert.Equal(t, 1080, cfg.Window.Height)
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "raymarch.toml", `
[window]
width = 800
height = 600

[camera]
position = [1.0, 2.0, 3.0]
fov = 90.0
invert_y = true

[camera.tuning]
movement_speed = 4.0

[engine]
profile_interval = "250ms"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, cfg.Camera.Position)
	assert.Equal(t, float32(90), cfg.Camera.Fov)
	assert.True(t, cfg.Camera.InvertY)
	assert.Equal(t, float32(4), cfg.Camera.Tuning.MovementSpeed)
	assert.Equal(t, 250*time.Millisecond, cfg.Engine.ProfileInterval)

	// Untouched keys keep their defaults.
	def := DefaultConfig()
	assert.Equal(t, def.Camera.Target, cfg.Camera.Target)
	assert.Equal(t, def.Camera.Tuning.RotationSmoothing, cfg.Camera.Tuning.RotationSmoothing)
	assert.Equal(t, def.Engine.TickRate, cfg.Engine.TickRate)
	assert.Equal(t, def.Window.Title, cfg.Window.Title)
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeFile(t, t.TempDir(), "raymarch.toml", "[camera]\nfov = 90.0\n")
	t.Setenv("RAYMARCH_CAMERA_FOV", "75")
	t.Setenv("RAYMARCH_ENGINE_TICK_RATE", "30")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, float32(75), cfg.Camera.Fov)
	assert.Equal(t, 30, cfg.Engine.TickRate)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err, "explicit path must exist")

	_, err = Load(writeFile(t, dir, "broken.toml", "[camera\nfov = "))
	assert.Error(t, err)

	_, err = Load(writeFile(t, dir, "smoothing.toml", "[camera.tuning]\nzoom_smoothing = 0.0\n"))
	assert.ErrorContains(t, err, "camera.tuning")

	_, err = Load(writeFile(t, dir, "fov.toml", "[camera]\nfov = 180.0\n"))
	assert.ErrorContains(t, err, "camera.fov")

	_, err = Load(writeFile(t, dir, "target.toml", "[camera]\nposition = [0.0, 0.0, 2.0]\n"))
	assert.ErrorContains(t, err, "camera.target")

	_, err = Load(writeFile(t, dir, "limits.toml", "[window]\nmin_width = 800\nmax_width = 640\n"))
	assert.ErrorContains(t, err, "window minimum size")
}

func TestSaveThenLoad(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Window.Title = "saved"
	cfg.Camera.Drift = mgl32.Vec3{0.5, 0, 0}
	cfg.Camera.Tuning.ZoomSpeed = 0.3

	path := filepath.Join(t.TempDir(), "nested", "raymarch.toml")
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSaveReportsWriteFailures(t *testing.T) {
	dir := t.TempDir()
	blocker := writeFile(t, dir, "blocker", "")
	assert.Error(t, Save(filepath.Join(blocker, "raymarch.toml"), DefaultConfig()))
	assert.Error(t, Save(dir, DefaultConfig()), "a directory is not a config file")

	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("no /dev/full on this platform")
	}
	assert.ErrorContains(t, Save("/dev/full", DefaultConfig()), "encode config")
}

func TestManagerReload(t *testing.T) {
	path := writeFile(t, t.TempDir(), "raymarch.toml", "[camera]\nfov = 70.0\n")
	m, err := NewManager(path, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, path, m.File())
	assert.Equal(t, float32(70), m.Config().Camera.Fov)

	require.NoError(t, os.WriteFile(path, []byte("[camera]\nfov = 45.0\n"), 0o644))
	cfg, err := m.Reload()
	require.NoError(t, err)
	assert.Equal(t, float32(45), cfg.Camera.Fov)
	assert.Same(t, cfg, m.Config())

	// An invalid edit keeps the previous config.
	require.NoError(t, os.WriteFile(path, []byte("[camera]\nfov = -1.0\n"), 0o644))
	_, err = m.Reload()
	assert.Error(t, err)
	assert.Equal(t, float32(45), m.Config().Camera.Fov)
}

func TestManagerWatch(t *testing.T) {
	path := writeFile(t, t.TempDir(), "raymarch.toml", "[camera.tuning]\nmovement_speed = 2.0\n")
	m, err := NewManager(path, zerolog.Nop())
	require.NoError(t, err)

	var speed atomic.Value
	m.Watch(func(cfg *Config) {
		speed.Store(cfg.Camera.Tuning.MovementSpeed)
	})

	require.NoError(t, os.WriteFile(path, []byte("[camera.tuning]\nmovement_speed = 6.0\n"), 0o644))
	require.Eventually(t, func() bool {
		v, ok := speed.Load().(float32)
		return ok && v == 6
	}, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, float32(6), m.Config().Camera.Tuning.MovementSpeed)
}
