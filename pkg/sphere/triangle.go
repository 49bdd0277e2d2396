package sphere

import "github.com/taigrr/icosphere/pkg/math3d"

// Triangle is one face of the sphere: three corner positions, each on the
// unit sphere. Faces do not share vertices; the same point is stored once
// per face that touches it.
type Triangle struct {
	V1, V2, V3 math3d.Vec3
}

// NewTriangle creates a face from three corners, listed counter-clockwise
// as seen from outside the sphere.
func NewTriangle(v1, v2, v3 math3d.Vec3) Triangle {
	return Triangle{V1: v1, V2: v2, V3: v3}
}

// Vertices returns the corners in winding order.
func (t Triangle) Vertices() [3]math3d.Vec3 {
	return [3]math3d.Vec3{t.V1, t.V2, t.V3}
}

// Normal returns the shading normal of the face: the centroid of its three
// corners. It is not renormalized, so its length is slightly below 1.
func (t Triangle) Normal() math3d.Vec3 {
	return math3d.Centroid(t.V1, t.V2, t.V3)
}

// GeometricNormal returns the unit cross-product normal. The vertex stream
// never uses it; it exists for winding and diagnostics checks.
func (t Triangle) GeometricNormal() math3d.Vec3 {
	return t.V2.Sub(t.V1).Cross(t.V3.Sub(t.V1)).Normalize()
}

// Subdivide splits the face into four. Each edge midpoint is pushed back
// out onto the unit sphere; the corner faces keep one parent vertex and
// the inner face uses only midpoints. Winding is preserved.
func (t Triangle) Subdivide() [4]Triangle {
	m12 := t.V1.Midpoint(t.V2).Normalize()
	m23 := t.V2.Midpoint(t.V3).Normalize()
	m31 := t.V3.Midpoint(t.V1).Normalize()

	return [4]Triangle{
		{t.V1, m12, m31},
		{m12, m23, m31},
		{m12, t.V2, m23},
		{m31, m23, t.V3},
	}
}
