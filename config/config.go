// Package config provides configuration management for oxy-raymarch
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-raymarch/engine/camera"
	"github.com/fsnotify/fsnotify"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. RAYMARCH_CAMERA_FOV=75.
const EnvPrefix = "RAYMARCH"

// Config holds all application configuration
type Config struct {
	Window WindowConfig `mapstructure:"window" toml:"window"`
	Camera CameraConfig `mapstructure:"camera" toml:"camera"`
	Input  InputConfig  `mapstructure:"input" toml:"input"`
	Engine EngineConfig `mapstructure:"engine" toml:"engine"`
	Log    LogConfig    `mapstructure:"log" toml:"log"`
}

// WindowConfig configures the window
type WindowConfig struct {
	Title         string `mapstructure:"title" toml:"title"`
	Width         int    `mapstructure:"width" toml:"width"`
	Height        int    `mapstructure:"height" toml:"height"`
	CaptureCursor bool   `mapstructure:"capture_cursor" toml:"capture_cursor"`
	MinWidth      int    `mapstructure:"min_width" toml:"min_width"`
	MinHeight     int    `mapstructure:"min_height" toml:"min_height"`
	MaxWidth      int    `mapstructure:"max_width" toml:"max_width"`
	MaxHeight     int    `mapstructure:"max_height" toml:"max_height"`
}

// CameraConfig configures the initial camera, its smoothing and the controller driving it
type CameraConfig struct {
	Position      mgl32.Vec3    `mapstructure:"position" toml:"position"`
	Target        mgl32.Vec3    `mapstructure:"target" toml:"target"`
	Fov           float32       `mapstructure:"fov" toml:"fov"` // degrees
	Zoom          float32       `mapstructure:"zoom" toml:"zoom"`
	Aperture      float32       `mapstructure:"aperture" toml:"aperture"`
	FocusDistance float32       `mapstructure:"focus_distance" toml:"focus_distance"`
	Tuning        camera.Tuning `mapstructure:"tuning" toml:"tuning"`

	LookSensitivity float32    `mapstructure:"look_sensitivity" toml:"look_sensitivity"`
	InvertY         bool       `mapstructure:"invert_y" toml:"invert_y"`
	Framing         bool       `mapstructure:"framing" toml:"framing"` // start with scripted framing on
	FramingTarget   mgl32.Vec3 `mapstructure:"framing_target" toml:"framing_target"`
	Drift           mgl32.Vec3 `mapstructure:"drift" toml:"drift"` // world units per second while framing
}

// InputConfig configures the discrete key steps
type InputConfig struct {
	ApertureStep float32 `mapstructure:"aperture_step" toml:"aperture_step"`
	FocusStep    float32 `mapstructure:"focus_step" toml:"focus_step"`
	RollStep     float32 `mapstructure:"roll_step" toml:"roll_step"`
}

// EngineConfig configures the engine loops
type EngineConfig struct {
	TickRate        int           `mapstructure:"tick_rate" toml:"tick_rate"` // ticks per second
	ProfileInterval time.Duration `mapstructure:"profile_interval" toml:"profile_interval"`
	Profile         bool          `mapstructure:"profile" toml:"profile"`
}

// LogConfig configures logging
type LogConfig struct {
	Level  string `mapstructure:"level" toml:"level"`
	Pretty bool   `mapstructure:"pretty" toml:"pretty"`
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Title:         "oxy-raymarch",
			Width:         1920,
			Height:        1080,
			CaptureCursor: false,
			MinWidth:      320,
			MinHeight:     200,
			MaxWidth:      3840,
			MaxHeight:     2160,
		},
		Camera: CameraConfig{
			Position:        mgl32.Vec3{0.01, 0, -5},
			Target:          mgl32.Vec3{0, 0, 2},
			Fov:             60,
			Zoom:            1,
			Aperture:        0,
			FocusDistance:   4,
			Tuning:          camera.DefaultTuning(),
			LookSensitivity: 1,
			FramingTarget:   mgl32.Vec3{0, 0, 0},
		},
		Input: InputConfig{
			ApertureStep: 0.01,
			FocusStep:    0.1,
			RollStep:     0.01,
		},
		Engine: EngineConfig{
			TickRate:        144,
			ProfileInterval: time.Second,
			Profile:         true,
		},
		Log: LogConfig{
			Level:  "info",
			Pretty: true,
		},
	}
}

// Validate checks ranges the engine relies on.
//
// Returns:
//   - error: the first invalid setting, or nil
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.MaxWidth > 0 && c.Window.MinWidth > c.Window.MaxWidth ||
		c.Window.MaxHeight > 0 && c.Window.MinHeight > c.Window.MaxHeight {
		return fmt.Errorf("window minimum size %dx%d exceeds maximum %dx%d",
			c.Window.MinWidth, c.Window.MinHeight, c.Window.MaxWidth, c.Window.MaxHeight)
	}
	if c.Camera.Fov <= 0 || c.Camera.Fov >= 180 {
		return fmt.Errorf("camera.fov must be in (0, 180), got %v", c.Camera.Fov)
	}
	if c.Camera.Target.Sub(c.Camera.Position).LenSqr() == 0 {
		return errors.New("camera.target must differ from camera.position")
	}
	if err := c.Camera.Tuning.Validate(); err != nil {
		return fmt.Errorf("camera.tuning: %w", err)
	}
	if c.Engine.TickRate <= 0 {
		return fmt.Errorf("engine.tick_rate must be positive, got %d", c.Engine.TickRate)
	}
	return nil
}

// Manager owns a viper instance bound to one configuration source and keeps the last valid Config.
type Manager struct {
	mu     sync.Mutex
	v      *viper.Viper
	logger zerolog.Logger
	cfg    *Config
}

// NewManager reads configuration from path (or, when path is empty, from raymarch.toml in the
// working directory or the user config directory) with RAYMARCH_* environment overrides on top.
// A missing file is only an error when path was given explicitly.
//
// Parameters:
//   - path: explicit config file, or "" to search
//   - logger: logger for reload diagnostics
//
// Returns:
//   - *Manager: the manager holding the loaded config
//   - error: read, decode or validation error
func NewManager(path string, logger zerolog.Logger) (*Manager, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("raymarch")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "oxy-raymarch"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, DefaultConfig())

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		logger.Debug().Msg("no config file found, using defaults")
	}

	m := &Manager{
		v:      v,
		logger: logger.With().Str("component", "config").Logger(),
	}
	cfg, err := m.decode()
	if err != nil {
		return nil, err
	}
	m.cfg = cfg
	return m, nil
}

// Load reads configuration the same way as NewManager and returns only the Config.
//
// Parameters:
//   - path: explicit config file, or "" to search
//
// Returns:
//   - *Config: the loaded config
//   - error: read, decode or validation error
func Load(path string) (*Config, error) {
	m, err := NewManager(path, zerolog.Nop())
	if err != nil {
		return nil, err
	}
	return m.Config(), nil
}

// Config returns the last successfully loaded configuration.
func (m *Manager) Config() *Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cfg
}

// SetLogger replaces the logger used for reload diagnostics.
//
// Parameters:
//   - logger: the new logger
func (m *Manager) SetLogger(logger zerolog.Logger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logger = logger.With().Str("component", "config").Logger()
}

// File returns the config file in use, or "" when running on defaults.
func (m *Manager) File() string {
	return m.v.ConfigFileUsed()
}

// Reload re-reads the config file. On failure the previous config is kept.
//
// Returns:
//   - *Config: the newly loaded config
//   - error: read, decode or validation error
func (m *Manager) Reload() (*Config, error) {
	if m.v.ConfigFileUsed() != "" {
		if err := m.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reload config: %w", err)
		}
	}
	cfg, err := m.decode()
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.cfg = cfg
	m.mu.Unlock()
	return cfg, nil
}

// Watch reloads the config whenever its file changes and hands each valid result to onChange.
// Invalid edits are logged and ignored. Does nothing when running on defaults.
//
// Parameters:
//   - onChange: called from the watcher goroutine with the new config
func (m *Manager) Watch(onChange func(*Config)) {
	if m.v.ConfigFileUsed() == "" {
		return
	}
	m.mu.Lock()
	logger := m.logger
	m.mu.Unlock()

	m.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := m.decode()
		if err != nil {
			logger.Warn().Err(err).Str("file", e.Name).Msg("ignoring invalid config change")
			return
		}
		m.mu.Lock()
		m.cfg = cfg
		m.mu.Unlock()
		logger.Info().Str("file", e.Name).Msg("config reloaded")
		if onChange != nil {
			onChange(cfg)
		}
	})
	m.v.WatchConfig()
}

// Save writes cfg as TOML to path, creating parent directories.
//
// Parameters:
//   - path: destination file
//   - cfg: configuration to write
//
// Returns:
//   - error: write or encode error
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config file: %w", err)
	}

	enc := toml.NewEncoder(f)
	enc.SetIndentTables(true)
	if err := enc.Encode(cfg); err != nil {
		return errors.Join(fmt.Errorf("encode config: %w", err), f.Close())
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close config file: %w", err)
	}
	return nil
}

// decode unmarshals the viper state over the defaults and validates it.
func (m *Manager) decode() (*Config, error) {
	cfg := DefaultConfig()
	if err := m.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// setDefaults registers every scalar key so AutomaticEnv can override it and Unmarshal sees it.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("window.title", cfg.Window.Title)
	v.SetDefault("window.width", cfg.Window.Width)
	v.SetDefault("window.height", cfg.Window.Height)
	v.SetDefault("window.capture_cursor", cfg.Window.CaptureCursor)
	v.SetDefault("window.min_width", cfg.Window.MinWidth)
	v.SetDefault("window.min_height", cfg.Window.MinHeight)
	v.SetDefault("window.max_width", cfg.Window.MaxWidth)
	v.SetDefault("window.max_height", cfg.Window.MaxHeight)

	v.SetDefault("camera.position", cfg.Camera.Position)
	v.SetDefault("camera.target", cfg.Camera.Target)
	v.SetDefault("camera.fov", cfg.Camera.Fov)
	v.SetDefault("camera.zoom", cfg.Camera.Zoom)
	v.SetDefault("camera.aperture", cfg.Camera.Aperture)
	v.SetDefault("camera.focus_distance", cfg.Camera.FocusDistance)
	v.SetDefault("camera.tuning.movement_speed", cfg.Camera.Tuning.MovementSpeed)
	v.SetDefault("camera.tuning.movement_smoothing", cfg.Camera.Tuning.MovementSmoothing)
	v.SetDefault("camera.tuning.rotation_speed", cfg.Camera.Tuning.RotationSpeed)
	v.SetDefault("camera.tuning.rotation_smoothing", cfg.Camera.Tuning.RotationSmoothing)
	v.SetDefault("camera.tuning.zoom_speed", cfg.Camera.Tuning.ZoomSpeed)
	v.SetDefault("camera.tuning.zoom_smoothing", cfg.Camera.Tuning.ZoomSmoothing)
	v.SetDefault("camera.look_sensitivity", cfg.Camera.LookSensitivity)
	v.SetDefault("camera.invert_y", cfg.Camera.InvertY)
	v.SetDefault("camera.framing", cfg.Camera.Framing)
	v.SetDefault("camera.framing_target", cfg.Camera.FramingTarget)
	v.SetDefault("camera.drift", cfg.Camera.Drift)

	v.SetDefault("input.aperture_step", cfg.Input.ApertureStep)
	v.SetDefault("input.focus_step", cfg.Input.FocusStep)
	v.SetDefault("input.roll_step", cfg.Input.RollStep)

	v.SetDefault("engine.tick_rate", cfg.Engine.TickRate)
	v.SetDefault("engine.profile_interval", cfg.Engine.ProfileInterval)
	v.SetDefault("engine.profile", cfg.Engine.Profile)

	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.pretty", cfg.Log.Pretty)
}
