package math3d

import (
	"testing"
)

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Translate(V3(1, 2, 3))
	m2 := ScaleUniform(0.5)

	for b.Loop() {
		_ = m1.Mul(m2)
	}
}

func BenchmarkMat4MulVec4(b *testing.B) {
	m := Translate(V3(1, 2, 3)).Mul(ScaleUniform(0.5))
	v := V4(1, 2, 3, 1)

	for b.Loop() {
		_ = m.MulVec4(v)
	}
}

func BenchmarkVec3Normalize(b *testing.B) {
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = v.Normalize()
	}
}

func BenchmarkVec3MidpointNormalize(b *testing.B) {
	v1 := V3(1, 0, 0)
	v2 := V3(0, 1, 0)

	for b.Loop() {
		_ = v1.Midpoint(v2).Normalize()
	}
}

func BenchmarkLookAt(b *testing.B) {
	eye := V3(0, 0, -2)
	target := V3(0, 0, 0)
	up := V3(0, 1, 0)

	for b.Loop() {
		_ = LookAt(eye, target, up)
	}
}

func BenchmarkViewProjection(b *testing.B) {
	view := LookAt(V3(0, 0, -2), Zero3(), Up())
	proj := Perspective(0.785, 16.0/9.0, 0.001, 5)

	for b.Loop() {
		_ = proj.Mul(view)
	}
}
