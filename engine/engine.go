package engine

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-raymarch/common"
	"github.com/Carmen-Shannon/oxy-raymarch/engine/camera"
	"github.com/Carmen-Shannon/oxy-raymarch/engine/input"
	"github.com/Carmen-Shannon/oxy-raymarch/engine/profiler"
	"github.com/Carmen-Shannon/oxy-raymarch/engine/replay"
	"github.com/Carmen-Shannon/oxy-raymarch/engine/window"
	"github.com/rs/zerolog"
)

// ErrNoWindow is returned by Run when the engine was built without a window.
var ErrNoWindow = errors.New("engine has no window")

// engine implements the Engine interface.
// Coordinates the tick, render, and window threads around a single camera.
type engine struct {
	tickRateChannel chan struct{} // Signals the tick loop to pick up engineTickRate

	running atomic.Bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once
	closeOnce   sync.Once // Ensures the window is only closed once

	window window.Window
	logger zerolog.Logger

	camera      camera.Camera
	controller  camera.CameraController
	input       input.Input
	accumulator *camera.Accumulator

	recorderMu sync.Mutex
	recorder   *replay.Recorder

	profiler         *profiler.Profiler
	profilingEnabled atomic.Bool

	tickMu         sync.Mutex
	engineTickRate time.Duration

	tickCallback   func(in common.FrameInput, deltaTime float32)
	renderCallback func(uniform camera.GPUCameraUniform, deltaTime float32)

	// frameMu serializes a tick's camera mutation with the render loop's snapshot.
	frameMu sync.Mutex
	elapsed float32 // seconds of render time, fed to the uniform

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine is the main entry point for the viewer.
// It orchestrates the tick loop (input to controller to camera), the render loop (camera to GPU
// uniform) and window management.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance, or nil when running headless
	Window() window.Window

	// Camera returns the camera driven by the engine.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// Controller returns the controller applying input to the camera.
	//
	// Returns:
	//   - camera.CameraController: the controller
	Controller() camera.CameraController

	// Input returns the input layer sampled each tick.
	//
	// Returns:
	//   - input.Input: the input layer
	Input() input.Input

	// Accumulator returns the temporal accumulation counter used by the render loop.
	//
	// Returns:
	//   - *camera.Accumulator: the accumulator
	Accumulator() *camera.Accumulator

	// SetRecorder starts (or with nil stops) recording every tick's input.
	//
	// Parameters:
	//   - rec: the recorder to append to
	SetRecorder(rec *replay.Recorder)

	// Recorder returns the active recorder, or nil.
	Recorder() *replay.Recorder

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// ProfilerEnabled reports whether profiling output is on.
	ProfilerEnabled() bool

	// Running reports whether Run has started the loops and no quit has been signalled.
	Running() bool

	// SetTickRate sets the engine tick rate in ticks per second. Safe to call from any goroutine.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// TickRate returns the current interval between ticks.
	TickRate() time.Duration

	// SetTickCallback registers the function called after each tick has been applied to the camera.
	//
	// Parameters:
	//   - callback: function receiving the sampled input and the delta time in seconds
	SetTickCallback(callback func(in common.FrameInput, deltaTime float32))

	// SetRenderCallback registers the function called each render frame with the camera uniform.
	// This is where a renderer uploads the uniform and dispatches the raymarch pass.
	//
	// Parameters:
	//   - callback: function receiving the uniform and the delta time in seconds
	SetRenderCallback(callback func(uniform camera.GPUCameraUniform, deltaTime float32))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Step runs one tick synchronously: samples input, applies it to the camera, records it and
	// fires the tick callback. The tick goroutine calls this; headless callers may call it directly.
	//
	// Parameters:
	//   - deltaTime: elapsed seconds for this tick
	//
	// Returns:
	//   - common.FrameInput: the input applied
	Step(deltaTime float32) common.FrameInput

	// RenderFrame builds one frame's uniform and fires the render callback and profiler.
	// The uniform never mixes state from two ticks.
	//
	// Parameters:
	//   - deltaTime: elapsed seconds since the previous frame
	//
	// Returns:
	//   - camera.GPUCameraUniform: the uniform handed to the render callback
	RenderFrame(deltaTime float32) camera.GPUCameraUniform

	// Run starts the tick and render loops and runs the window message loop on the calling
	// goroutine. Blocks until the window closes or Quit is called.
	//
	// Returns:
	//   - error: ErrNoWindow if the engine has no window
	Run() error

	// Quit signals all engine goroutines to stop and closes the window.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// Anything not supplied gets a default: a camera at the origin, a default controller and input
// layer, and a silent logger. When a window is supplied the input layer is attached to it, resize
// events update the camera resolution and cursor capture resets the pointer reference.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel: make(chan struct{}, 1),
		quitChannel:     make(chan struct{}),
		wg:              sync.WaitGroup{},
		logger:          zerolog.Nop(),
		accumulator:     camera.NewAccumulator(),
		engineTickRate:  time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}

	e.logger = e.logger.With().Str("component", "engine").Logger()
	if e.camera == nil {
		e.camera = camera.NewCamera()
	}
	if e.controller == nil {
		e.controller = camera.NewCameraController()
	}
	if e.input == nil {
		e.input = input.NewInput()
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger))
	}

	if e.window != nil {
		e.input.Attach(e.window)
		e.camera.SetResolution(float32(e.window.Width()), float32(e.window.Height()))
		e.window.SetResizeCallback(func(width, height int) {
			e.camera.SetResolution(float32(width), float32(height))
			e.accumulator.Reset()
		})
		e.window.SetCaptureCallback(func(captured bool) {
			e.input.ResetPointer()
			e.logger.Debug().Bool("captured", captured).Msg("cursor capture changed")
		})
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Camera() camera.Camera {
	return e.camera
}

func (e *engine) Controller() camera.CameraController {
	return e.controller
}

func (e *engine) Input() input.Input {
	return e.input
}

func (e *engine) Accumulator() *camera.Accumulator {
	return e.accumulator
}

func (e *engine) SetRecorder(rec *replay.Recorder) {
	e.recorderMu.Lock()
	defer e.recorderMu.Unlock()
	e.recorder = rec
}

func (e *engine) Recorder() *replay.Recorder {
	e.recorderMu.Lock()
	defer e.recorderMu.Unlock()
	return e.recorder
}

func (e *engine) Run() error {
	if e.window == nil {
		return ErrNoWindow
	}

	// The window must be closed from the thread running its message loop.
	e.window.SetUpdateCallback(func() {
		select {
		case <-e.quitChannel:
			e.closeWindow()
		default:
		}
	})

	e.running.Store(true)
	e.handle()
	e.window.ProcessMessages()

	e.signalQuit()
	e.wg.Wait()
	e.closeWindow()
	e.logger.Info().Uint64("frames", e.accumulator.Total()).Msg("engine stopped")
	return nil
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.running.Store(false)
		close(e.quitChannel)
	})
}

func (e *engine) closeWindow() {
	e.closeOnce.Do(func() {
		if err := e.window.Close(); err != nil {
			e.logger.Warn().Err(err).Msg("failed to close window")
		}
	})
}

// handle launches the engine, render, and quit goroutines.
// Each goroutine is tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.wg.Add(3)
	go e.handleEngine()
	go e.handleRender()
	go e.handleQuit()
}

func (e *engine) Step(deltaTime float32) common.FrameInput {
	width, height := e.camera.Resolution()
	in := e.input.Sample(width, height)

	e.frameMu.Lock()
	e.controller.Apply(e.camera, in, deltaTime)
	e.frameMu.Unlock()

	if rec := e.Recorder(); rec != nil {
		rec.Record(in, deltaTime)
	}
	if e.tickCallback != nil {
		e.tickCallback(in, deltaTime)
	}
	return in
}

func (e *engine) RenderFrame(deltaTime float32) camera.GPUCameraUniform {
	e.frameMu.Lock()
	e.elapsed += deltaTime
	uniform := e.accumulator.Next(e.camera, e.elapsed)
	e.frameMu.Unlock()

	if e.renderCallback != nil {
		e.renderCallback(uniform, deltaTime)
	}

	if e.profilingEnabled.Load() && e.profiler != nil {
		e.profiler.Tick(uniform.Moving != 0, uniform.FrameIndex)
	}
	return uniform
}

// handleEngine runs the fixed-rate engine tick loop in its own goroutine.
// Steps the camera at the configured tick rate and picks up rate changes signalled
// on tickRateChannel. Exits when the quit channel is closed.
func (e *engine) handleEngine() {
	defer e.wg.Done()
	defer e.recoverAndQuit("tick")

	ticker := time.NewTicker(e.TickRate())
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now

			e.Step(dt)
		case <-e.tickRateChannel:
			ticker.Reset(e.TickRate())
		}
	}
}

// handleRender runs the uncapped (or frame-limited) render loop in its own goroutine.
func (e *engine) handleRender() {
	defer e.wg.Done()
	defer e.recoverAndQuit("render")

	lastRender := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		default:
			now := time.Now()
			dt := float32(now.Sub(lastRender).Seconds())
			lastRender = now

			e.RenderFrame(dt)

			// Frame rate limiting
			if e.renderFrameLimit > 0 {
				elapsed := time.Since(lastRender)
				if remaining := e.renderFrameLimit - elapsed; remaining > 0 {
					time.Sleep(remaining)
				}
			}
		}
	}
}

// recoverAndQuit turns a panic in a loop goroutine into an orderly shutdown.
func (e *engine) recoverAndQuit(loop string) {
	if r := recover(); r != nil {
		e.logger.Error().Str("loop", loop).Interface("panic", r).Msg("goroutine recovered from panic")
		e.signalQuit()
	}
}

// handleQuit blocks until the quit channel is closed, then decrements the WaitGroup.
func (e *engine) handleQuit() {
	defer e.wg.Done()
	<-e.quitChannel
	e.logger.Debug().Msg("quit signalled")
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled.Store(true)
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled.Store(false)
}

func (e *engine) Running() bool {
	return e.running.Load()
}

func (e *engine) ProfilerEnabled() bool {
	return e.profilingEnabled.Load()
}

// SetTickRate sets the engine tick rate in ticks per second.
// A running tick loop picks the new rate up on its next iteration.
func (e *engine) SetTickRate(fps float64) {
	e.tickMu.Lock()
	e.engineTickRate = tickInterval(fps)
	e.tickMu.Unlock()

	// One pending signal covers any number of updates.
	select {
	case e.tickRateChannel <- struct{}{}:
	default:
	}
}

func (e *engine) TickRate() time.Duration {
	e.tickMu.Lock()
	defer e.tickMu.Unlock()
	return e.engineTickRate
}

// SetTickCallback registers the function called each engine tick.
func (e *engine) SetTickCallback(callback func(in common.FrameInput, deltaTime float32)) {
	e.tickCallback = callback
}

// SetRenderCallback registers the function called each render frame.
func (e *engine) SetRenderCallback(callback func(uniform camera.GPUCameraUniform, deltaTime float32)) {
	e.renderCallback = callback
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameLimit(fps)
}

func tickInterval(fps float64) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Duration(float64(time.Second) / fps)
}

func frameLimit(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
