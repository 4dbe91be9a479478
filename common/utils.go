package common

// Number is any scalar a camera or window setting is stored as.
type Number interface {
	~int | ~float32 | ~float64
}

// PositiveOr returns v when it is greater than zero, otherwise fallback.
// Decoded tracks and window options leave zoom, focus distance, sensitivity and sizes at zero when
// unset, and none of them has a meaningful zero or negative value.
func PositiveOr[T Number](v, fallback T) T {
	if v > 0 {
		return v
	}
	return fallback
}
