package sphere

import (
	"encoding/binary"
	"image/color"
	"math"

	"github.com/taigrr/icosphere/pkg/math3d"
)

// Packed record layout, in bytes.
const (
	PositionOffset = 0
	ColorOffset    = 12
	NormalOffset   = 16
	VertexStride   = 28
)

// Vertex is one record of the drawable stream.
type Vertex struct {
	Position math3d.Vec3
	Color    color.RGBA
	Normal   math3d.Vec3
}

// VertexStream is a flat triangle list: records 3i, 3i+1 and 3i+2 are the
// corners of face i.
type VertexStream []Vertex

// BuildVertexStream flattens faces into a triangle list. Every corner of a
// face carries the face's normal and the given color.
func BuildVertexStream(faces []Triangle, c color.RGBA) VertexStream {
	s := make(VertexStream, 0, 3*len(faces))
	for _, f := range faces {
		n := f.Normal()
		s = append(s,
			Vertex{Position: f.V1, Color: c, Normal: n},
			Vertex{Position: f.V2, Color: c, Normal: n},
			Vertex{Position: f.V3, Color: c, Normal: n},
		)
	}
	return s
}

// VertexCount returns the number of records.
func (s VertexStream) VertexCount() int {
	return len(s)
}

// TriangleCount returns the number of faces in the stream.
func (s VertexStream) TriangleCount() int {
	return len(s) / 3
}

// VertexAt returns the attributes of record i.
func (s VertexStream) VertexAt(i int) (pos, normal math3d.Vec3, c color.RGBA) {
	v := s[i]
	return v.Position, v.Normal, v.Color
}

// Bytes packs the stream as little-endian float32 positions, RGBA8 colors and
// float32 normals, VertexStride bytes per record.
func (s VertexStream) Bytes() []byte {
	return s.AppendBytes(make([]byte, 0, len(s)*VertexStride))
}

// AppendBytes appends the packed stream to dst.
func (s VertexStream) AppendBytes(dst []byte) []byte {
	for _, v := range s {
		dst = appendVec3(dst, v.Position)
		dst = append(dst, v.Color.R, v.Color.G, v.Color.B, v.Color.A)
		dst = appendVec3(dst, v.Normal)
	}
	return dst
}

func appendVec3(dst []byte, v math3d.Vec3) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(float32(v.X)))
	dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(float32(v.Y)))
	dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(float32(v.Z)))
	return dst
}
