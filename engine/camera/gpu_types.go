package camera

import (
	_ "embed"
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// GPUCameraUniformSource is the canonical WGSL definition of the CameraUniform struct.
// Matches GPUCameraUniform layout exactly (96 bytes, uniform address space aligned).
//
//go:embed assets/camera_uniform.wgsl
var GPUCameraUniformSource string

// gpuCameraUniformSize is the WGSL size of CameraUniform. mat3x3<f32> columns are padded to 16 bytes
// on the GPU, so this differs from the Go struct size.
const gpuCameraUniformSize = 96

// GPUCameraUniform is the per-frame camera state handed to the raymarching pass.
// Matches the WGSL CameraUniform struct layout exactly (see GPUCameraUniformSource).
type GPUCameraUniform struct {
	Position      [3]float32 // offset  0: world-space camera position (vec3<f32>)
	Fov           float32    // offset 12: zoomed field of view in radians
	Rotation      [9]float32 // offset 16: column-major rotation (mat3x3<f32>, each column padded to 16 bytes)
	Aperture      float32    // offset 64
	FocusDistance float32    // offset 68
	Time          float32    // offset 72: seconds since start
	FrameIndex    uint32     // offset 76: temporal accumulation index, 0 while moving
	Resolution    [2]float32 // offset 80: viewport size in pixels (vec2<f32>)
	Moving        uint32     // offset 88: 1 while the camera is moving
	_pad          float32    // offset 92: padding to 96 bytes
}

// NewGPUCameraUniform snapshots a camera into its GPU representation.
//
// Parameters:
//   - c: the camera to read
//   - time: seconds since start
//   - frameIndex: temporal accumulation index
//
// Returns:
//   - GPUCameraUniform: the populated uniform
func NewGPUCameraUniform(c Camera, time float32, frameIndex uint32) GPUCameraUniform {
	return uniformFromState(c.Snapshot(), time, frameIndex)
}

func uniformFromState(s State, time float32, frameIndex uint32) GPUCameraUniform {
	u := GPUCameraUniform{
		Position:      s.Position,
		Fov:           s.Fov,
		Rotation:      s.Rotation,
		Aperture:      s.Aperture,
		FocusDistance: s.FocusDistance,
		Time:          time,
		FrameIndex:    frameIndex,
		Resolution:    s.Resolution,
	}
	if s.Moving {
		u.Moving = 1
	}
	return u
}

// RotationMatrix returns the rotation field as an mgl32.Mat3.
func (g *GPUCameraUniform) RotationMatrix() mgl32.Mat3 {
	return mgl32.Mat3(g.Rotation)
}

// Size returns the size of the GPUCameraUniform struct on the GPU in bytes.
//
// Returns:
//   - int: the struct size in bytes (96)
func (g *GPUCameraUniform) Size() int {
	return gpuCameraUniformSize
}

// Marshal serializes the GPUCameraUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Position[i]))
	}
	binary.LittleEndian.PutUint32(buf[12:], math.Float32bits(g.Fov))
	for col := range 3 {
		for row := range 3 {
			binary.LittleEndian.PutUint32(buf[16+col*16+row*4:], math.Float32bits(g.Rotation[col*3+row]))
		}
		// buf[16+col*16+12:] stays zero (column padding)
	}
	binary.LittleEndian.PutUint32(buf[64:], math.Float32bits(g.Aperture))
	binary.LittleEndian.PutUint32(buf[68:], math.Float32bits(g.FocusDistance))
	binary.LittleEndian.PutUint32(buf[72:], math.Float32bits(g.Time))
	binary.LittleEndian.PutUint32(buf[76:], g.FrameIndex)
	binary.LittleEndian.PutUint32(buf[80:], math.Float32bits(g.Resolution[0]))
	binary.LittleEndian.PutUint32(buf[84:], math.Float32bits(g.Resolution[1]))
	binary.LittleEndian.PutUint32(buf[88:], g.Moving)
	binary.LittleEndian.PutUint32(buf[92:], 0) // _pad
	return buf
}
