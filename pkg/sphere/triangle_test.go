package sphere

import (
	"math"
	"testing"

	"github.com/taigrr/icosphere/pkg/math3d"
)

func TestTriangleNormalIsCentroid(t *testing.T) {
	tri := NewTriangle(math3d.V3(1, 0, 0), math3d.V3(0, 1, 0), math3d.V3(0, 0, 1))

	got := tri.Normal()
	want := math3d.V3(1.0/3, 1.0/3, 1.0/3)
	if !got.ApproxEqual(want, 1e-15) {
		t.Errorf("Normal() = %v, want %v", got, want)
	}

	// Centroid, not renormalized.
	if l := got.Len(); math.Abs(l-1) < 0.1 {
		t.Errorf("Normal() length = %v, expected the raw centroid length ~0.577", l)
	}
}

func TestTriangleSubdivide(t *testing.T) {
	v1, v2, v3 := math3d.V3(1, 0, 0), math3d.V3(0, 1, 0), math3d.V3(0, 0, 1)
	quad := NewTriangle(v1, v2, v3).Subdivide()

	m12 := math3d.V3(1, 1, 0).Normalize()
	m23 := math3d.V3(0, 1, 1).Normalize()
	m31 := math3d.V3(1, 0, 1).Normalize()

	want := [4]Triangle{
		{v1, m12, m31},
		{m12, m23, m31},
		{m12, v2, m23},
		{m31, m23, v3},
	}

	for i := range want {
		for k, v := range quad[i].Vertices() {
			if !v.ApproxEqual(want[i].Vertices()[k], 1e-15) {
				t.Errorf("face %d corner %d = %v, want %v", i, k, v, want[i].Vertices()[k])
			}
			if math.Abs(v.Len()-1) > 1e-12 {
				t.Errorf("face %d corner %d has length %v, want 1", i, k, v.Len())
			}
		}
	}
}

func TestSubdividePreservesWinding(t *testing.T) {
	tri := NewTriangle(math3d.V3(1, 0, 0), math3d.V3(0, 1, 0), math3d.V3(0, 0, 1))
	parent := tri.GeometricNormal()

	for i, child := range tri.Subdivide() {
		if child.GeometricNormal().Dot(parent) <= 0 {
			t.Errorf("child %d flipped winding", i)
		}
	}
}
