// Package input turns raw key, pointer and scroll events into the normalized per-frame intent the
// camera controller consumes. It knows nothing about windows beyond the EventSource callback setters.
package input

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-raymarch/common"
	"github.com/go-gl/mathgl/mgl32"
)

// EventSource is anything that can deliver input events through callbacks. window.Window satisfies it.
type EventSource interface {
	SetKeyDownCallback(callback func(keyCode uint32))
	SetKeyUpCallback(callback func(keyCode uint32))
	SetScrollCallback(callback func(delta float32))
	SetMouseMoveCallback(callback func(x, y float64))
}

// Input accumulates device events between frames and produces one common.FrameInput per Sample.
// Event methods may be called from the window thread while Sample runs on the tick goroutine.
type Input interface {
	// Attach registers this Input's handlers on src, replacing any handlers already set there.
	//
	// Parameters:
	//   - src: the event source to listen on
	Attach(src EventSource)

	// KeyDown records a key press or key repeat.
	//
	// Parameters:
	//   - keyCode: GLFW key code
	KeyDown(keyCode uint32)

	// KeyUp records a key release.
	//
	// Parameters:
	//   - keyCode: GLFW key code
	KeyUp(keyCode uint32)

	// MouseMove records an absolute cursor position. The first position after construction or
	// ResetPointer only establishes the reference point.
	//
	// Parameters:
	//   - x, y: cursor position in pixels
	MouseMove(x, y float64)

	// Scroll accumulates a scroll wheel offset.
	//
	// Parameters:
	//   - delta: vertical scroll offset
	Scroll(delta float32)

	// IsPressed reports whether a key is currently held.
	//
	// Parameters:
	//   - keyCode: GLFW key code
	//
	// Returns:
	//   - bool: true while the key is held
	IsPressed(keyCode uint32) bool

	// ResetPointer forgets the last cursor position so the next MouseMove produces no delta.
	// Call it when the cursor is captured or released to avoid a jump.
	ResetPointer()

	// Sample builds the FrameInput for this frame and clears the per-frame accumulators
	// (pointer delta, scroll, lens steps, framing toggle). Held keys persist.
	//
	// Parameters:
	//   - width, height: viewport size used to normalize the pointer delta
	//
	// Returns:
	//   - common.FrameInput: the normalized intent for this frame
	Sample(width, height float32) common.FrameInput
}

type inputImpl struct {
	mu *sync.Mutex

	pressed map[uint32]bool

	lastX, lastY float64
	hasLast      bool
	dx, dy       float64

	scroll   float32
	aperture float32
	focus    float32
	toggle   bool

	apertureStep float32
	focusStep    float32
	rollStep     float32
}

var _ Input = &inputImpl{}

// NewInput creates a new Input with default lens and roll steps.
//
// Parameters:
//   - options: functional options to configure the input layer
//
// Returns:
//   - Input: the newly created input layer
func NewInput(options ...InputBuilderOption) Input {
	in := &inputImpl{
		mu:           &sync.Mutex{},
		pressed:      make(map[uint32]bool),
		apertureStep: 0.01,
		focusStep:    0.1,
		rollStep:     0.01,
	}
	for _, option := range options {
		option(in)
	}
	return in
}

func (in *inputImpl) Attach(src EventSource) {
	src.SetKeyDownCallback(in.KeyDown)
	src.SetKeyUpCallback(in.KeyUp)
	src.SetScrollCallback(in.Scroll)
	src.SetMouseMoveCallback(in.MouseMove)
}

func (in *inputImpl) KeyDown(keyCode uint32) {
	in.mu.Lock()
	defer in.mu.Unlock()

	repeat := in.pressed[keyCode]
	in.pressed[keyCode] = true

	switch keyCode {
	case common.KeyR:
		in.aperture += in.apertureStep
	case common.KeyF:
		in.aperture -= in.apertureStep
	case common.KeyT:
		in.focus += in.focusStep
	case common.KeyG:
		in.focus -= in.focusStep
	case common.KeyL:
		if !repeat {
			in.toggle = !in.toggle
		}
	}
}

func (in *inputImpl) KeyUp(keyCode uint32) {
	in.mu.Lock()
	defer in.mu.Unlock()
	delete(in.pressed, keyCode)
}

func (in *inputImpl) MouseMove(x, y float64) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.hasLast {
		in.dx += x - in.lastX
		in.dy += y - in.lastY
	}
	in.lastX, in.lastY = x, y
	in.hasLast = true
}

func (in *inputImpl) Scroll(delta float32) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.scroll += delta
}

func (in *inputImpl) IsPressed(keyCode uint32) bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.pressed[keyCode]
}

func (in *inputImpl) ResetPointer() {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.hasLast = false
	in.dx, in.dy = 0, 0
}

func (in *inputImpl) Sample(width, height float32) common.FrameInput {
	in.mu.Lock()
	defer in.mu.Unlock()

	out := common.FrameInput{
		Movement:      in.movement(),
		Zoom:          in.scroll,
		Aperture:      in.aperture,
		Focus:         in.focus,
		ToggleFraming: in.toggle,
	}

	if width > 0 && height > 0 {
		out.Rotation[0] = float32(in.dx) / width * 2
		out.Rotation[1] = float32(in.dy) / height * 2
	}
	out.Rotation[2] = in.axis(common.KeyQ, common.KeyE) * in.rollStep

	in.dx, in.dy = 0, 0
	in.scroll = 0
	in.aperture = 0
	in.focus = 0
	in.toggle = false
	return out
}

// movement builds the local movement intent from held keys, normalized when non-zero.
// Caller must hold the mutex.
func (in *inputImpl) movement() mgl32.Vec3 {
	var vertical float32
	if in.pressed[common.KeySpace] {
		vertical++
	}
	if in.pressed[common.KeyLeftShift] || in.pressed[common.KeyRightShift] {
		vertical--
	}
	v := mgl32.Vec3{
		in.axis(common.KeyD, common.KeyA),
		vertical,
		in.axis(common.KeyW, common.KeyS),
	}
	return common.NormalizeOrZero(v)
}

// axis returns +1 when only positive is held, -1 when only negative is held and 0 otherwise.
// Caller must hold the mutex.
func (in *inputImpl) axis(positive, negative uint32) float32 {
	var v float32
	if in.pressed[positive] {
		v++
	}
	if in.pressed[negative] {
		v--
	}
	return v
}
