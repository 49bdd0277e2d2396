// Package sphere generates icospheres: a base polyhedron inscribed in the
// unit sphere, refined by repeated four-way subdivision, and flattened into
// a triangle-list vertex stream for drawing.
//
// A Mesh keeps its faces and its drawable stream separate. Refine mutates
// the faces and marks the stream stale; PrepareForDraw rebuilds the stream
// only when it is stale.
package sphere

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/charmbracelet/log"

	"github.com/taigrr/icosphere/pkg/lazy"
)

// ErrMaxLevel is returned by Refine when the mesh is already at its
// configured maximum refinement level.
var ErrMaxLevel = errors.New("maximum refinement level reached")

// DefaultColor is the material color written into every vertex record.
var DefaultColor = color.RGBA{R: 255, G: 165, B: 0, A: 255} // orange

// Mesh is a sphere approximated by independent triangular faces.
//
// Mesh is not safe for concurrent use. Streams returned by PrepareForDraw
// must not be retained across a later Refine.
type Mesh struct {
	faces    []Triangle
	base     BaseShape
	level    int
	maxLevel int
	color    color.RGBA
	stream   *lazy.Memo[VertexStream]
	logger   *log.Logger
}

// Option configures a Mesh.
type Option func(*Mesh)

// WithBaseShape sets the starting polyhedron. Defaults to Icosahedron.
func WithBaseShape(b BaseShape) Option {
	return func(m *Mesh) {
		m.base = b
	}
}

// WithMaxLevel caps the number of refinements. Zero means no cap.
func WithMaxLevel(n int) Option {
	return func(m *Mesh) {
		m.maxLevel = n
	}
}

// WithColor sets the material color of the vertex stream.
func WithColor(c color.RGBA) Option {
	return func(m *Mesh) {
		m.color = c
	}
}

// WithLogger sets the logger used for refinement and rebuild events.
func WithLogger(l *log.Logger) Option {
	return func(m *Mesh) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewMesh builds the unrefined base shape. The vertex stream starts stale.
func NewMesh(opts ...Option) *Mesh {
	m := &Mesh{
		base:   Icosahedron,
		color:  DefaultColor,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.faces = m.base.faces()
	m.stream = lazy.New(m.buildStream)
	return m
}

// Refine replaces every face with four smaller ones, projecting the new
// vertices onto the sphere, and marks the vertex stream stale.
//
// If the mesh is at its maximum level, Refine returns an error wrapping
// ErrMaxLevel and changes nothing.
func (m *Mesh) Refine() error {
	if m.maxLevel > 0 && m.level >= m.maxLevel {
		return fmt.Errorf("refine level %d: %w", m.level+1, ErrMaxLevel)
	}

	next := make([]Triangle, 0, len(m.faces)*4)
	for _, f := range m.faces {
		quad := f.Subdivide()
		next = append(next, quad[:]...)
	}

	m.faces = next
	m.level++
	m.stream.Invalidate()

	m.logger.Debug("refined mesh", "level", m.level, "faces", len(m.faces))
	return nil
}

// RefineTo refines until the mesh reaches level. A mesh already at or past
// level is left alone.
func (m *Mesh) RefineTo(level int) error {
	for m.level < level {
		if err := m.Refine(); err != nil {
			return err
		}
	}
	return nil
}

// PrepareForDraw returns the drawable vertex stream, rebuilding it first if
// the faces changed since the last call.
func (m *Mesh) PrepareForDraw() VertexStream {
	return m.stream.Get()
}

func (m *Mesh) buildStream() VertexStream {
	s := BuildVertexStream(m.faces, m.color)
	m.logger.Debug("rebuilt vertex stream", "level", m.level, "vertices", len(s))
	return s
}

// NeedsRebuild reports whether the next PrepareForDraw will rebuild.
func (m *Mesh) NeedsRebuild() bool {
	return m.stream.Dirty()
}

// Rebuilds returns how many times the vertex stream has been rebuilt.
func (m *Mesh) Rebuilds() int {
	return m.stream.Computes()
}

// FaceCount returns the number of faces.
func (m *Mesh) FaceCount() int {
	return len(m.faces)
}

// DrawCount returns the number of vertices a triangle-list draw of the mesh
// submits.
func (m *Mesh) DrawCount() int {
	return 3 * len(m.faces)
}

// Face returns a copy of face i.
func (m *Mesh) Face(i int) Triangle {
	return m.faces[i]
}

// Faces returns a copy of the face list.
func (m *Mesh) Faces() []Triangle {
	out := make([]Triangle, len(m.faces))
	copy(out, m.faces)
	return out
}

// Level returns how many times the mesh has been refined.
func (m *Mesh) Level() int {
	return m.level
}

// MaxLevel returns the refinement cap, or zero if there is none.
func (m *Mesh) MaxLevel() int {
	return m.maxLevel
}

// BaseShape returns the polyhedron the mesh started from.
func (m *Mesh) BaseShape() BaseShape {
	return m.base
}

// Color returns the material color.
func (m *Mesh) Color() color.RGBA {
	return m.color
}
