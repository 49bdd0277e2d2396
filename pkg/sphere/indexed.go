package sphere

import (
	"math"

	"github.com/taigrr/icosphere/pkg/math3d"
)

// weldScale sets the grid corner positions snap to when welding. Copies of
// a point produced by different faces differ far below 1e-9.
const weldScale = 1e9

// Indexed is a shared-vertex view of a mesh: each distinct corner position
// stored once, faces as index triples into Vertices.
type Indexed struct {
	Vertices []math3d.Vec3
	Faces    [][3]int

	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// Indexed welds the mesh's duplicated corners into an Indexed view. The
// mesh itself is not changed.
func (m *Mesh) Indexed() *Indexed {
	return Weld(m.faces)
}

// Weld merges corners that land on the same point.
func Weld(faces []Triangle) *Indexed {
	idx := &Indexed{
		Faces: make([][3]int, len(faces)),
	}
	seen := make(map[[3]int64]int, len(faces)/2+2)

	lookup := func(v math3d.Vec3) int {
		key := [3]int64{snap(v.X), snap(v.Y), snap(v.Z)}
		if i, ok := seen[key]; ok {
			return i
		}
		idx.Vertices = append(idx.Vertices, v)
		seen[key] = len(idx.Vertices) - 1
		return len(idx.Vertices) - 1
	}

	for i, f := range faces {
		idx.Faces[i] = [3]int{lookup(f.V1), lookup(f.V2), lookup(f.V3)}
	}
	idx.calculateBounds()
	return idx
}

func snap(x float64) int64 {
	return int64(math.Round(x * weldScale))
}

func (x *Indexed) calculateBounds() {
	if len(x.Vertices) == 0 {
		return
	}

	x.BoundsMin = x.Vertices[0]
	x.BoundsMax = x.Vertices[0]
	for _, v := range x.Vertices[1:] {
		x.BoundsMin = x.BoundsMin.Min(v)
		x.BoundsMax = x.BoundsMax.Max(v)
	}
}

// VertexCount returns the number of distinct vertices.
func (x *Indexed) VertexCount() int {
	return len(x.Vertices)
}

// TriangleCount returns the number of faces.
func (x *Indexed) TriangleCount() int {
	return len(x.Faces)
}

// EdgeCount returns the number of distinct undirected edges.
func (x *Indexed) EdgeCount() int {
	edges := make(map[[2]int]struct{}, len(x.Faces)*3/2)
	for _, f := range x.Faces {
		for k := range 3 {
			a, b := f[k], f[(k+1)%3]
			if a > b {
				a, b = b, a
			}
			edges[[2]int{a, b}] = struct{}{}
		}
	}
	return len(edges)
}

// EulerCharacteristic returns V - E + F, which is 2 for a closed sphere.
func (x *Indexed) EulerCharacteristic() int {
	return x.VertexCount() - x.EdgeCount() + x.TriangleCount()
}

// Center returns the center of the bounding box.
func (x *Indexed) Center() math3d.Vec3 {
	return x.BoundsMin.Add(x.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (x *Indexed) Size() math3d.Vec3 {
	return x.BoundsMax.Sub(x.BoundsMin)
}

// MaxRadiusError returns the largest distance of any face centroid from the
// unit sphere. It shrinks as the mesh is refined.
func MaxRadiusError(faces []Triangle) float64 {
	var worst float64
	for _, f := range faces {
		worst = math.Max(worst, 1-f.Normal().Len())
	}
	return worst
}
