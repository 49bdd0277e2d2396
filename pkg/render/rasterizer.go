package render

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/taigrr/icosphere/pkg/math3d"
)

// VertexSource is a flat triangle list: vertices 3i, 3i+1, 3i+2 form one
// triangle, wound counter-clockwise when seen from its front.
// sphere.VertexStream implements it.
type VertexSource interface {
	VertexCount() int
	VertexAt(i int) (pos, normal math3d.Vec3, c color.RGBA)
}

// DrawStats counts what the last draw calls did.
type DrawStats struct {
	Triangles int // Triangles submitted
	Culled    int // Back-facing or behind the camera
	Pixels    int // Pixels written
}

// Rasterizer draws triangle lists into a framebuffer with a depth buffer and
// flat shading.
type Rasterizer struct {
	camera  *Camera
	fb      *Framebuffer
	zbuffer []float64 // Depth buffer (1D array, row-major)

	Ambient                float64 // Light level of faces turned away from the light
	DisableBackfaceCulling bool    // If true, render both sides of triangles
	Stats                  DrawStats
}

// NewRasterizer creates a new rasterizer.
func NewRasterizer(camera *Camera, fb *Framebuffer) *Rasterizer {
	r := &Rasterizer{
		camera:  camera,
		fb:      fb,
		Ambient: 0.3,
	}
	r.Resize()
	return r
}

// Resize resizes the depth buffer to match the framebuffer.
func (r *Rasterizer) Resize() {
	if r.fb == nil {
		r.zbuffer = nil
		return
	}
	r.zbuffer = make([]float64, r.fb.Width*r.fb.Height)
}

// Width returns the framebuffer width.
func (r *Rasterizer) Width() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Width
}

// Height returns the framebuffer height.
func (r *Rasterizer) Height() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Height
}

// ClearDepth clears the depth buffer and the draw stats (call before each
// frame).
func (r *Rasterizer) ClearDepth() {
	r.Stats = DrawStats{}

	// Use copy-doubling for faster clearing
	n := len(r.zbuffer)
	if n == 0 {
		return
	}
	r.zbuffer[0] = math.MaxFloat64
	for i := 1; i < n; i *= 2 {
		copy(r.zbuffer[i:], r.zbuffer[:i])
	}
}

// screenVertex holds a vertex transformed to screen space.
type screenVertex struct {
	X, Y float64 // Screen coordinates
	Z    float64 // Depth (for Z-buffer)
}

// project transforms a world position to screen space. ok is false when
// the point is behind the camera.
func (r *Rasterizer) project(viewProj math3d.Mat4, p math3d.Vec3) (sv screenVertex, ok bool) {
	clip := viewProj.MulVec4(math3d.V4FromV3(p, 1))
	if clip.W <= 0 {
		return sv, false
	}
	ndc := clip.PerspectiveDivide()
	sv.X = (ndc.X + 1) * 0.5 * float64(r.Width())
	sv.Y = (1 - ndc.Y) * 0.5 * float64(r.Height()) // Y flipped
	sv.Z = ndc.Z
	return sv, true
}

// DrawTriangleList draws every triangle of src with flat shading. Each
// triangle is lit by its first vertex's normal and color; lightDir is the
// direction light travels (for a headlight, the camera's LightDirection).
func (r *Rasterizer) DrawTriangleList(src VertexSource, lightDir math3d.Vec3) {
	viewProj := r.camera.ViewProjectionMatrix()
	toLight := lightDir.Normalize().Negate()

	n := src.VertexCount() - src.VertexCount()%3
	for i := 0; i < n; i += 3 {
		r.Stats.Triangles++

		var sv [3]screenVertex
		visible := true
		for k := range 3 {
			pos, _, _ := src.VertexAt(i + k)
			var ok bool
			if sv[k], ok = r.project(viewProj, pos); !ok {
				visible = false
				break
			}
		}
		// No near-plane clipping: a triangle crossing behind the camera is
		// dropped whole.
		if !visible || (!r.DisableBackfaceCulling && backFacing(sv)) {
			r.Stats.Culled++
			continue
		}

		_, normal, base := src.VertexAt(i)
		intensity := math.Max(0, normal.Normalize().Dot(toLight))
		intensity = r.Ambient + (1-r.Ambient)*intensity // Ambient + diffuse

		r.fillTriangle(sv, shade(base, intensity))
	}
}

// DrawTriangleListWireframe draws the edges of every triangle of src,
// including hidden ones.
func (r *Rasterizer) DrawTriangleListWireframe(src VertexSource, c Color) {
	viewProj := r.camera.ViewProjectionMatrix()

	n := src.VertexCount() - src.VertexCount()%3
	for i := 0; i < n; i += 3 {
		r.Stats.Triangles++

		var sv [3]screenVertex
		visible := true
		for k := range 3 {
			pos, _, _ := src.VertexAt(i + k)
			var ok bool
			if sv[k], ok = r.project(viewProj, pos); !ok {
				visible = false
				break
			}
		}
		if !visible {
			r.Stats.Culled++
			continue
		}

		for k := range 3 {
			a, b := sv[k], sv[(k+1)%3]
			r.fb.DrawLine(int(a.X), int(a.Y), int(b.X), int(b.Y), c)
		}
	}
}

// backFacing reports whether a triangle is wound clockwise on screen. Screen
// Y points down, so counter-clockwise front faces have a negative signed
// area here.
func backFacing(sv [3]screenVertex) bool {
	cross := (sv[1].X-sv[0].X)*(sv[2].Y-sv[0].Y) - (sv[1].Y-sv[0].Y)*(sv[2].X-sv[0].X)
	return cross > 0
}

// fillTriangle rasterizes a screen-space triangle with a single color.
func (r *Rasterizer) fillTriangle(sv [3]screenVertex, c Color) {
	// Find bounding box
	minX := int(math.Max(0, math.Floor(min3(sv[0].X, sv[1].X, sv[2].X))))
	maxX := int(math.Min(float64(r.Width()-1), math.Ceil(max3(sv[0].X, sv[1].X, sv[2].X))))
	minY := int(math.Max(0, math.Floor(min3(sv[0].Y, sv[1].Y, sv[2].Y))))
	maxY := int(math.Min(float64(r.Height()-1), math.Ceil(max3(sv[0].Y, sv[1].Y, sv[2].Y))))

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5

			bc := barycentric(
				sv[0].X, sv[0].Y,
				sv[1].X, sv[1].Y,
				sv[2].X, sv[2].Y,
				px, py,
			)
			if bc.X < 0 || bc.Y < 0 || bc.Z < 0 {
				continue
			}

			z := bc.X*sv[0].Z + bc.Y*sv[1].Z + bc.Z*sv[2].Z
			if z >= r.getDepth(x, y) {
				continue
			}

			r.setDepth(x, y, z)
			r.fb.SetPixel(x, y, c)
			r.Stats.Pixels++
		}
	}
}

// shade scales a color's RGB by intensity, keeping alpha.
func shade(c Color, intensity float64) Color {
	base, ok := colorful.MakeColor(c)
	if !ok {
		return c
	}
	lit := colorful.Color{
		R: base.R * intensity,
		G: base.G * intensity,
		B: base.B * intensity,
	}.Clamped()
	rr, gg, bb := lit.RGB255()
	return RGBA(rr, gg, bb, c.A)
}

// getDepth returns the depth at (x, y).
func (r *Rasterizer) getDepth(x, y int) float64 {
	if x < 0 || x >= r.Width() || y < 0 || y >= r.Height() {
		return math.MaxFloat64
	}
	return r.zbuffer[y*r.Width()+x]
}

// setDepth sets the depth at (x, y).
func (r *Rasterizer) setDepth(x, y int, z float64) {
	if x < 0 || x >= r.Width() || y < 0 || y >= r.Height() {
		return
	}
	r.zbuffer[y*r.Width()+x] = z
}

// barycentric calculates barycentric coordinates for point (px, py) in a
// triangle.
func barycentric(x0, y0, x1, y1, x2, y2, px, py float64) math3d.Vec3 {
	denom := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if math.Abs(denom) < 1e-10 {
		return math3d.V3(-1, -1, -1) // Degenerate triangle
	}

	w0 := ((y1-y2)*(px-x2) + (x2-x1)*(py-y2)) / denom
	w1 := ((y2-y0)*(px-x2) + (x0-x2)*(py-y2)) / denom
	w2 := 1 - w0 - w1

	return math3d.V3(w0, w1, w2)
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}
