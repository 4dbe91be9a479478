package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// World axes used to derive camera basis vectors.
var (
	WorldRight   = mgl32.Vec3{1, 0, 0}
	WorldUp      = mgl32.Vec3{0, 1, 0}
	WorldForward = mgl32.Vec3{0, 0, 1}
)

// Clamp limits v to the closed range [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}

// Lerp linearly interpolates from a toward b by factor t.
// With t in (0, 1] this is one step of an exponential low-pass filter.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// LerpVec3 is the componentwise Lerp of two vectors.
func LerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// NormalizeOrZero returns v scaled to unit length, or the zero vector when v has zero length.
func NormalizeOrZero(v mgl32.Vec3) mgl32.Vec3 {
	if v.LenSqr() == 0 {
		return mgl32.Vec3{}
	}
	return v.Normalize()
}

// LookAtBasis builds the orthonormal viewing frame for a viewpoint looking at target.
//
//	forward = normalize(target - eye)
//	right   = normalize(worldUp × forward)
//	up      = normalize(forward × right)
//
// The frame is right-handed with right × up = forward, matching the world axes X, Y, Z.
// If forward is parallel to worldUp the cross product is zero and the result is undefined (NaN);
// callers must not look straight along worldUp.
//
// Parameters:
//   - eye: viewpoint position
//   - target: point to look at
//   - worldUp: reference up vector, typically (0, 1, 0)
//
// Returns:
//   - forward, right, up: unit basis vectors
func LookAtBasis(eye, target, worldUp mgl32.Vec3) (forward, right, up mgl32.Vec3) {
	forward = target.Sub(eye).Normalize()
	right = worldUp.Cross(forward).Normalize()
	up = forward.Cross(right).Normalize()
	return forward, right, up
}

// BasisMatrix places the basis vectors in the columns of a rotation matrix, so the matrix maps
// world X, Y, Z onto right, up, forward respectively.
//
// Parameters:
//   - right, up, forward: orthonormal basis vectors
//
// Returns:
//   - mgl32.Mat3: column-major rotation matrix
func BasisMatrix(right, up, forward mgl32.Vec3) mgl32.Mat3 {
	return mgl32.Mat3FromCols(right, up, forward)
}

// BuildRotationMatrix constructs a rotation matrix from Euler angles in Y * X * Z order
// (yaw-pitch-roll), column-major.
//
// Parameters:
//   - pitch: rotation about X in radians
//   - yaw: rotation about Y in radians
//   - roll: rotation about Z in radians
//
// Returns:
//   - mgl32.Mat3: the rotation matrix R = Ry * Rx * Rz
func BuildRotationMatrix(pitch, yaw, roll float32) mgl32.Mat3 {
	sx, cx := math32.Sincos(pitch)
	sy, cy := math32.Sincos(yaw)
	sz, cz := math32.Sincos(roll)

	return mgl32.Mat3{
		cy*cz + sy*sx*sz, cx * sz, -sy*cz + cy*sx*sz,
		cy*-sz + sy*sx*cz, cx * cz, sy*sz + cy*sx*cz,
		sy * cx, -sx, cy * cx,
	}
}
