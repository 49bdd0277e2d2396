package math3d

import "github.com/go-gl/mathgl/mgl32"

// Float32 narrows the vector for float32 vertex buffers and shader uniforms.
func (a Vec3) Float32() mgl32.Vec3 {
	return mgl32.Vec3{float32(a.X), float32(a.Y), float32(a.Z)}
}

// Float32 narrows the matrix to mgl32's layout. Both are column-major, so the
// elements map one to one.
func (m Mat4) Float32() mgl32.Mat4 {
	var out mgl32.Mat4
	for i, v := range m {
		out[i] = float32(v)
	}
	return out
}

// FromFloat32 widens an mgl32 matrix.
func FromFloat32(m mgl32.Mat4) Mat4 {
	var out Mat4
	for i, v := range m {
		out[i] = float64(v)
	}
	return out
}
