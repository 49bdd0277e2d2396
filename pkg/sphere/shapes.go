package sphere

import (
	"fmt"
	"math"
	"strings"

	"github.com/taigrr/icosphere/pkg/math3d"
)

// BaseShape selects the polyhedron a mesh starts from before refinement.
type BaseShape int

const (
	Icosahedron BaseShape = iota // 20 faces, the default
	Tetrahedron                  // 4 faces
)

// String returns the lower-case shape name.
func (b BaseShape) String() string {
	switch b {
	case Icosahedron:
		return "icosahedron"
	case Tetrahedron:
		return "tetrahedron"
	default:
		return fmt.Sprintf("BaseShape(%d)", int(b))
	}
}

// ParseBaseShape converts a shape name back to a BaseShape.
func ParseBaseShape(s string) (BaseShape, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "icosahedron", "ico":
		return Icosahedron, nil
	case "tetrahedron", "tetra":
		return Tetrahedron, nil
	}
	return 0, fmt.Errorf("unknown base shape %q", s)
}

// FaceCount returns the number of faces of the unrefined shape.
func (b BaseShape) FaceCount() int {
	if b == Tetrahedron {
		return len(tetrahedronFaces)
	}
	return len(icosahedronFaces)
}

// FacesAt returns the face count after level refinements: base × 4^level.
func (b BaseShape) FacesAt(level int) int {
	return b.FaceCount() << (2 * level)
}

// faces builds a fresh face list for the shape.
func (b BaseShape) faces() []Triangle {
	if b == Tetrahedron {
		return buildFaces(tetrahedronVertices(), tetrahedronFaces[:])
	}
	return buildFaces(icosahedronVertices(), icosahedronFaces[:])
}

// icosahedronFaces is the canonical 20-face triangulation: five faces around
// vertex 0, a ten-face band, five faces around vertex 3. Every face is
// counter-clockwise seen from outside.
var icosahedronFaces = [20][3]int{
	{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
	{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
	{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
	{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
}

// icosahedronVertices returns the 12 corners built from the golden ratio,
// normalized onto the unit sphere.
func icosahedronVertices() []math3d.Vec3 {
	phi := (1 + math.Sqrt(5)) / 2

	raw := []math3d.Vec3{
		{X: -1, Y: phi}, {X: 1, Y: phi}, {X: -1, Y: -phi}, {X: 1, Y: -phi},
		{Y: -1, Z: phi}, {Y: 1, Z: phi}, {Y: -1, Z: -phi}, {Y: 1, Z: -phi},
		{X: phi, Z: -1}, {X: phi, Z: 1}, {X: -phi, Z: -1}, {X: -phi, Z: 1},
	}
	for i := range raw {
		raw[i] = raw[i].Normalize()
	}
	return raw
}

var tetrahedronFaces = [4][3]int{
	{0, 3, 2}, {0, 1, 3}, {0, 2, 1}, {1, 2, 3},
}

func tetrahedronVertices() []math3d.Vec3 {
	raw := []math3d.Vec3{
		{X: -1, Y: 1, Z: -1},
		{X: 1, Y: 1, Z: 1},
		{X: -1, Y: -1, Z: 1},
		{X: 1, Y: -1, Z: -1},
	}
	for i := range raw {
		raw[i] = raw[i].Normalize()
	}
	return raw
}

func buildFaces(verts []math3d.Vec3, idx [][3]int) []Triangle {
	faces := make([]Triangle, len(idx))
	for i, f := range idx {
		faces[i] = NewTriangle(verts[f[0]], verts[f[1]], verts[f[2]])
	}
	return faces
}
