package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyW     = 87 // W key (ASCII) - move forward
	KeyA     = 65 // A key (ASCII) - move left
	KeyS     = 83 // S key (ASCII) - move backward
	KeyD     = 68 // D key (ASCII) - move right
	KeyQ     = 81 // Q key (ASCII) - roll left
	KeyE     = 69 // E key (ASCII) - roll right
	KeyR     = 82 // R key (ASCII) - open aperture
	KeyF     = 70 // F key (ASCII) - close aperture
	KeyT     = 84 // T key (ASCII) - push focus out
	KeyG     = 71 // G key (ASCII) - pull focus in
	KeyL     = 76 // L key (ASCII) - toggle scripted framing
	KeySpace = 32 // Spacebar (ASCII) - move up

	KeyEsc = 256 // Escape key (GLFW)
)

// Additional non-printable keys
const (
	KeyLeftShift  = 340 // Left Shift (GLFW) - move down
	KeyRightShift = 344 // Right Shift (GLFW)
)
