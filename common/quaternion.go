package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// slerpLinearThreshold is the sin(theta) floor below which Slerp falls back to normalized lerp.
const slerpLinearThreshold = 1e-6

// Quaternion is an immutable rotation value stored as (X, Y, Z, W) where W is the scalar part.
// Every operation that produces a rotation returns a unit quaternion; NewQuaternion is the only
// constructor that does not normalize and should only be used for intermediate values.
//
// Quaternions are compared approximately, and q and q.Negative() describe the same rotation.
type Quaternion struct {
	X, Y, Z, W float32
}

// NewQuaternion creates a quaternion from raw components without normalizing.
//
// Parameters:
//   - x, y, z: vector part
//   - w: scalar part
//
// Returns:
//   - Quaternion: the raw quaternion
func NewQuaternion(x, y, z, w float32) Quaternion {
	return Quaternion{X: x, Y: y, Z: z, W: w}
}

// QuaternionIdentity returns the rotation representing no rotation, (0, 0, 0, 1).
func QuaternionIdentity() Quaternion {
	return Quaternion{W: 1}
}

// QuaternionFromAxisAngle builds the rotation of angle radians about axis.
// The axis is normalized first; a zero-length axis is undefined and yields NaN components.
//
// Parameters:
//   - axis: rotation axis (any non-zero length)
//   - angle: rotation angle in radians
//
// Returns:
//   - Quaternion: the unit rotation quaternion
func QuaternionFromAxisAngle(axis mgl32.Vec3, angle float32) Quaternion {
	a := axis.Normalize()
	s, c := math32.Sincos(angle / 2)
	return Quaternion{X: a[0] * s, Y: a[1] * s, Z: a[2] * s, W: c}
}

// QuaternionFromEuler builds a rotation from Euler angles applied in YXZ order:
// roll about Z first, then pitch about X, then yaw about Y (q = qYaw * qPitch * qRoll).
// This matches the Ry * Rx * Rz convention used by BuildRotationMatrix.
//
// Parameters:
//   - pitch: rotation about the X axis in radians
//   - yaw: rotation about the Y axis in radians
//   - roll: rotation about the Z axis in radians
//
// Returns:
//   - Quaternion: the unit rotation quaternion
func QuaternionFromEuler(pitch, yaw, roll float32) Quaternion {
	sx, cx := math32.Sincos(pitch / 2)
	sy, cy := math32.Sincos(yaw / 2)
	sz, cz := math32.Sincos(roll / 2)

	return Quaternion{
		X: cy*sx*cz + sy*cx*sz,
		Y: sy*cx*cz - cy*sx*sz,
		Z: cy*cx*sz - sy*sx*cz,
		W: cy*cx*cz + sy*sx*sz,
	}
}

// QuaternionFromRotationMatrix converts a rotation matrix to a quaternion using Shepperd's method.
// The branch is chosen on the trace, or on the largest diagonal element when the trace is not
// positive, so the divisor never approaches zero (near 180 degree rotations in particular).
//
// Parameters:
//   - m: rotation matrix (column-major, m.At(row, col)) such that m * v rotates v
//
// Returns:
//   - Quaternion: the unit quaternion q with q.ToMatrix() == m
func QuaternionFromRotationMatrix(m mgl32.Mat3) Quaternion {
	m00, m01, m02 := m.At(0, 0), m.At(0, 1), m.At(0, 2)
	m10, m11, m12 := m.At(1, 0), m.At(1, 1), m.At(1, 2)
	m20, m21, m22 := m.At(2, 0), m.At(2, 1), m.At(2, 2)

	trace := m00 + m11 + m22

	var q Quaternion
	switch {
	case trace > 0:
		s := 2 * math32.Sqrt(trace+1)
		q.W = 0.25 * s
		q.X = (m21 - m12) / s
		q.Y = (m02 - m20) / s
		q.Z = (m10 - m01) / s
	case m00 > m11 && m00 > m22:
		s := 2 * math32.Sqrt(1+m00-m11-m22)
		q.W = (m21 - m12) / s
		q.X = 0.25 * s
		q.Y = (m01 + m10) / s
		q.Z = (m02 + m20) / s
	case m11 > m22:
		s := 2 * math32.Sqrt(1+m11-m00-m22)
		q.W = (m02 - m20) / s
		q.X = (m01 + m10) / s
		q.Y = 0.25 * s
		q.Z = (m12 + m21) / s
	default:
		s := 2 * math32.Sqrt(1+m22-m00-m11)
		q.W = (m10 - m01) / s
		q.X = (m02 + m20) / s
		q.Y = (m12 + m21) / s
		q.Z = 0.25 * s
	}
	return q.Normalize()
}

// QuaternionLookAt returns the orientation whose basis looks from eye toward target.
// The rotation maps world right (1,0,0), up (0,1,0) and forward (0,0,1) onto the look-at basis
// produced by LookAtBasis. Looking along worldUp is undefined (see LookAtBasis).
//
// Parameters:
//   - eye: viewpoint position
//   - target: point to look at
//   - worldUp: reference up vector, typically (0, 1, 0)
//
// Returns:
//   - Quaternion: the unit orientation
func QuaternionLookAt(eye, target, worldUp mgl32.Vec3) Quaternion {
	forward, right, up := LookAtBasis(eye, target, worldUp)
	return QuaternionFromRotationMatrix(BasisMatrix(right, up, forward))
}

// QuaternionDot returns the 4D dot product of two quaternions.
func QuaternionDot(q1, q2 Quaternion) float32 {
	return q1.X*q2.X + q1.Y*q2.Y + q1.Z*q2.Z + q1.W*q2.W
}

// QuaternionSlerp spherically interpolates between two rotations along the shorter arc.
// Both inputs are normalized first. When the rotations are nearly parallel the spherical weights
// are unstable, so a normalized linear interpolation is used instead.
//
// Parameters:
//   - q1: rotation at t = 0
//   - q2: rotation at t = 1
//   - t: interpolation factor in [0, 1]
//
// Returns:
//   - Quaternion: the interpolated unit rotation (equal to q1 or q2 up to sign at the endpoints)
func QuaternionSlerp(q1, q2 Quaternion, t float32) Quaternion {
	a := q1.Normalize()
	b := q2.Normalize()

	d := QuaternionDot(a, b)
	if d < 0 {
		a = a.Negative()
		d = -d
	}
	d = Clamp(d, -1, 1)

	theta := math32.Acos(d)
	sinTheta := math32.Sin(theta)
	if sinTheta < slerpLinearThreshold {
		return a.Scale(1 - t).Add(b.Scale(t)).Normalize()
	}

	wa := math32.Sin((1-t)*theta) / sinTheta
	wb := math32.Sin(t*theta) / sinTheta
	return a.Scale(wa).Add(b.Scale(wb)).Normalize()
}

// Vec returns the vector part of the quaternion.
func (q Quaternion) Vec() mgl32.Vec3 {
	return mgl32.Vec3{q.X, q.Y, q.Z}
}

// Len returns the Euclidean magnitude of the quaternion.
func (q Quaternion) Len() float32 {
	return math32.Sqrt(QuaternionDot(q, q))
}

// Normalize returns the quaternion scaled to unit length.
// A zero-magnitude quaternion returns QuaternionIdentity instead of NaN components.
//
// Returns:
//   - Quaternion: the unit quaternion
func (q Quaternion) Normalize() Quaternion {
	l := q.Len()
	if l == 0 {
		return QuaternionIdentity()
	}
	inv := 1 / l
	return Quaternion{X: q.X * inv, Y: q.Y * inv, Z: q.Z * inv, W: q.W * inv}
}

// Conjugate negates the vector part. For unit quaternions this is the inverse rotation.
func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

// Negative negates all four components. The result describes the same rotation.
func (q Quaternion) Negative() Quaternion {
	return Quaternion{X: -q.X, Y: -q.Y, Z: -q.Z, W: -q.W}
}

// Mul returns the Hamilton product q * other. Rotating a vector by the result applies other first,
// then q.
//
// Parameters:
//   - other: right-hand quaternion
//
// Returns:
//   - Quaternion: the product (not renormalized)
func (q Quaternion) Mul(other Quaternion) Quaternion {
	return Quaternion{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

// Scale multiplies every component by f. Interpolation building block only.
func (q Quaternion) Scale(f float32) Quaternion {
	return Quaternion{X: q.X * f, Y: q.Y * f, Z: q.Z * f, W: q.W * f}
}

// Add sums two quaternions componentwise. Interpolation building block only.
func (q Quaternion) Add(other Quaternion) Quaternion {
	return Quaternion{X: q.X + other.X, Y: q.Y + other.Y, Z: q.Z + other.Z, W: q.W + other.W}
}

// Rotate applies the rotation to v using v + 2w(q×v) + 2(q×(q×v)), which avoids building a matrix.
// The result matches ToMatrix().Mul3x1(v).
//
// Parameters:
//   - v: vector to rotate
//
// Returns:
//   - mgl32.Vec3: the rotated vector
func (q Quaternion) Rotate(v mgl32.Vec3) mgl32.Vec3 {
	qv := q.Vec()
	c := qv.Cross(v)
	return v.Add(c.Mul(2 * q.W)).Add(qv.Cross(c).Mul(2))
}

// ToMatrix returns the 3x3 rotation matrix of the quaternion (column-major, mgl32 layout).
// Column i is the image of world axis i, so m.Mul3x1(v) == q.Rotate(v).
//
// Returns:
//   - mgl32.Mat3: the rotation matrix
func (q Quaternion) ToMatrix() mgl32.Mat3 {
	xx, yy, zz := q.X*q.X, q.Y*q.Y, q.Z*q.Z
	xy, xz, yz := q.X*q.Y, q.X*q.Z, q.Y*q.Z
	wx, wy, wz := q.W*q.X, q.W*q.Y, q.W*q.Z

	return mgl32.Mat3{
		1 - 2*(yy+zz), 2 * (xy + wz), 2 * (xz - wy), // column 0
		2 * (xy - wz), 1 - 2*(xx+zz), 2 * (yz + wx), // column 1
		2 * (xz + wy), 2 * (yz - wx), 1 - 2*(xx+yy), // column 2
	}
}

// ToAxisAngle decomposes the rotation into a unit axis and an angle in [0, 2π].
// For rotations too small to define an axis, the X axis and angle 0 are returned.
//
// Returns:
//   - mgl32.Vec3: unit rotation axis
//   - float32: rotation angle in radians
func (q Quaternion) ToAxisAngle() (mgl32.Vec3, float32) {
	n := q.Normalize()
	w := Clamp(n.W, -1, 1)
	angle := 2 * math32.Acos(w)
	s := math32.Sqrt(1 - w*w)
	if s < slerpLinearThreshold {
		return mgl32.Vec3{1, 0, 0}, 0
	}
	return mgl32.Vec3{n.X / s, n.Y / s, n.Z / s}, angle
}

// ToEuler is the inverse of QuaternionFromEuler for the YXZ order.
// At gimbal lock (pitch of ±90 degrees) roll is reported as 0 and folded into yaw.
//
// Returns:
//   - pitch, yaw, roll: angles in radians
func (q Quaternion) ToEuler() (pitch, yaw, roll float32) {
	m := q.Normalize().ToMatrix()
	sp := Clamp(-m.At(1, 2), -1, 1)
	pitch = math32.Asin(sp)
	if math32.Abs(sp) < 0.9999 {
		yaw = math32.Atan2(m.At(0, 2), m.At(2, 2))
		roll = math32.Atan2(m.At(1, 0), m.At(1, 1))
		return
	}
	yaw = math32.Atan2(-m.At(2, 0), m.At(0, 0))
	return pitch, yaw, 0
}

// ApproxEqual reports whether every component differs by at most tol.
func (q Quaternion) ApproxEqual(other Quaternion, tol float32) bool {
	return math32.Abs(q.X-other.X) <= tol &&
		math32.Abs(q.Y-other.Y) <= tol &&
		math32.Abs(q.Z-other.Z) <= tol &&
		math32.Abs(q.W-other.W) <= tol
}

// OrientationEqual reports whether q and other describe the same rotation within tol,
// accounting for the double cover (q and -q are equal orientations).
func (q Quaternion) OrientationEqual(other Quaternion, tol float32) bool {
	return q.ApproxEqual(other, tol) || q.ApproxEqual(other.Negative(), tol)
}
