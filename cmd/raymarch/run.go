package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxy-raymarch/config"
	"github.com/Carmen-Shannon/oxy-raymarch/engine"
	"github.com/Carmen-Shannon/oxy-raymarch/engine/camera"
	"github.com/Carmen-Shannon/oxy-raymarch/engine/input"
	"github.com/Carmen-Shannon/oxy-raymarch/engine/profiler"
	"github.com/Carmen-Shannon/oxy-raymarch/engine/replay"
	"github.com/Carmen-Shannon/oxy-raymarch/engine/window"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	recordPath string
	recordName string
	noWatch    bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the viewer window and fly the camera",
	Long: `Open the viewer window and drive the camera from keyboard and mouse.

  W/A/S/D      move            Space/Shift  up/down
  mouse        look            Q/E          roll
  scroll       zoom            R/F, T/G     aperture, focus distance
  L            toggle framing  click / Esc  capture / release cursor`,
	Args: cobra.NoArgs,
	RunE: runViewer,
}

func init() {
	runCmd.Flags().StringVar(&recordPath, "record", "", "write the session's input track to this file on exit")
	runCmd.Flags().StringVar(&recordName, "record-name", "session", "name stored in the recorded track")
	runCmd.Flags().BoolVar(&noWatch, "no-watch", false, "disable config hot reload")
	rootCmd.AddCommand(runCmd)
}

func runViewer(cmd *cobra.Command, args []string) error {
	m, logger, err := loadConfig()
	if err != nil {
		return err
	}
	cfg := m.Config()

	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
		window.WithSizeLimits(cfg.Window.MinWidth, cfg.Window.MinHeight, cfg.Window.MaxWidth, cfg.Window.MaxHeight),
		window.WithCursorCaptured(cfg.Window.CaptureCursor),
	)
	if err != nil {
		return fmt.Errorf("open window: %w", err)
	}

	eng := newEngine(cfg, win, logger)

	var rec *replay.Recorder
	if recordPath != "" {
		rec = replay.NewRecorder(recordName, eng.Camera())
		rec.SetController(eng.Controller())
		eng.SetRecorder(rec)
	}

	if !noWatch {
		m.Watch(func(next *config.Config) {
			applyLiveConfig(eng, next)
		})
	}

	logger.Info().
		Int("width", cfg.Window.Width).
		Int("height", cfg.Window.Height).
		Int("tick_rate", cfg.Engine.TickRate).
		Msg("starting viewer")
	if err := eng.Run(); err != nil {
		return err
	}

	if rec != nil {
		if err := writeTrack(recordPath, rec.Track()); err != nil {
			return err
		}
		logger.Info().Str("file", recordPath).Int("frames", rec.Len()).Msg("recorded track")
	}
	return nil
}

// newEngine builds the camera, controller, input layer and engine described by cfg.
func newEngine(cfg *config.Config, win window.Window, logger zerolog.Logger) engine.Engine {
	cc := cfg.Camera
	cam := camera.NewCamera(
		camera.WithPosition(cc.Position),
		camera.WithLookAt(cc.Target),
		camera.WithFov(cc.Fov),
		camera.WithZoom(cc.Zoom),
		camera.WithAperture(cc.Aperture),
		camera.WithFocusDistance(cc.FocusDistance),
		camera.WithTuning(cc.Tuning),
		camera.WithResolution(float32(cfg.Window.Width), float32(cfg.Window.Height)),
	)

	ctrlOpts := []camera.CameraControllerOption{
		camera.WithLookSensitivity(cc.LookSensitivity),
		camera.WithInvertY(cc.InvertY),
		camera.WithDrift(cc.Drift),
	}
	ctrl := camera.NewCameraController(ctrlOpts...)
	ctrl.SetFramingTarget(cc.FramingTarget)
	ctrl.SetFraming(cc.Framing)

	in := input.NewInput(
		input.WithApertureStep(cfg.Input.ApertureStep),
		input.WithFocusStep(cfg.Input.FocusStep),
		input.WithRollStep(cfg.Input.RollStep),
	)

	opts := []engine.EngineBuilderOption{
		engine.WithLogger(logger),
		engine.WithCamera(cam),
		engine.WithController(ctrl),
		engine.WithInput(in),
		engine.WithTickRate(float64(cfg.Engine.TickRate)),
		engine.WithProfiling(cfg.Engine.Profile),
		engine.WithProfiler(profiler.NewProfiler(
			profiler.WithInterval(cfg.Engine.ProfileInterval),
			profiler.WithLogger(logger),
		)),
	}
	if win != nil {
		opts = append(opts, engine.WithWindow(win))
	}
	return engine.NewEngine(opts...)
}

// applyLiveConfig pushes the settings that can change without a restart into a running engine.
func applyLiveConfig(eng engine.Engine, cfg *config.Config) {
	eng.Camera().SetTuning(cfg.Camera.Tuning)
	eng.Controller().SetLookSensitivity(cfg.Camera.LookSensitivity)
	eng.Controller().SetInvertY(cfg.Camera.InvertY)
	eng.Controller().SetFramingTarget(cfg.Camera.FramingTarget)
	eng.Controller().SetDrift(cfg.Camera.Drift)
	eng.SetTickRate(float64(cfg.Engine.TickRate))
	if cfg.Engine.Profile {
		eng.EnableProfiler()
	} else {
		eng.DisableProfiler()
	}
}

func writeTrack(path string, t replay.Track) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create track file: %w", err)
	}
	if err := replay.EncodeTrack(f, t); err != nil {
		return errors.Join(err, f.Close())
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close track file: %w", err)
	}
	return nil
}
