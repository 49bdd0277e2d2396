package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/taigrr/icosphere/pkg/lazy"
	"github.com/taigrr/icosphere/pkg/math3d"
)

// Camera defaults: a 1280x720 view with a tight depth range around a unit
// sphere.
const (
	DefaultFOV    = math.Pi / 4
	DefaultAspect = 1280.0 / 720.0
	DefaultNear   = 0.001
	DefaultFar    = 5.0
)

// Camera looks from an eye point toward a target point with +Y up.
//
// The view matrix is cached and only rebuilt on the first read after the
// eye or target moves. The projection is fixed at construction.
type Camera struct {
	eye    math3d.Vec3
	target math3d.Vec3

	fov    float64
	aspect float64
	near   float64
	far    float64

	view     *lazy.Memo[math3d.Mat4]
	viewProj *lazy.Memo[math3d.Mat4]
	proj     math3d.Mat4
}

// NewCamera creates a camera. fov is the vertical field of view in radians
// and aspect is width/height.
func NewCamera(eye, target math3d.Vec3, fov, aspect, near, far float64) *Camera {
	c := &Camera{
		eye:    eye,
		target: target,
		fov:    fov,
		aspect: aspect,
		near:   near,
		far:    far,
		proj:   math3d.Perspective(fov, aspect, near, far),
	}
	c.view = lazy.New(c.computeViewMatrix)
	c.viewProj = lazy.New(func() math3d.Mat4 {
		return c.proj.Mul(c.view.Get())
	})
	return c
}

// DefaultCamera returns a camera two units down -Z looking at the origin.
func DefaultCamera(aspect float64) *Camera {
	return NewCamera(math3d.V3(0, 0, -2), math3d.Zero3(), DefaultFOV, aspect, DefaultNear, DefaultFar)
}

// SetEye moves the camera.
func (c *Camera) SetEye(eye math3d.Vec3) {
	c.eye = eye
	c.invalidate()
}

// SetTarget changes the point the camera looks at.
func (c *Camera) SetTarget(target math3d.Vec3) {
	c.target = target
	c.invalidate()
}

func (c *Camera) invalidate() {
	c.view.Invalidate()
	c.viewProj.Invalidate()
}

// Eye returns the camera position.
func (c *Camera) Eye() math3d.Vec3 {
	return c.eye
}

// Target returns the look-at point.
func (c *Camera) Target() math3d.Vec3 {
	return c.target
}

// FOV returns the vertical field of view in radians.
func (c *Camera) FOV() float64 {
	return c.fov
}

// AspectRatio returns width/height.
func (c *Camera) AspectRatio() float64 {
	return c.aspect
}

// ClipPlanes returns the near and far clip distances.
func (c *Camera) ClipPlanes() (near, far float64) {
	return c.near, c.far
}

// LightDirection returns the direction a headlight travels: target - eye.
// It is not normalized.
func (c *Camera) LightDirection() math3d.Vec3 {
	return c.target.Sub(c.eye)
}

// ViewMatrix returns the view matrix, rebuilding it if the camera moved.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	return c.view.Get()
}

// ProjectionMatrix returns the fixed projection matrix.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	return c.proj
}

// ViewProjectionMatrix returns projection * view.
func (c *Camera) ViewProjectionMatrix() math3d.Mat4 {
	return c.viewProj.Get()
}

// ViewMatrix32 returns the view matrix narrowed for float32 backends.
func (c *Camera) ViewMatrix32() mgl32.Mat4 {
	return c.ViewMatrix().Float32()
}

// ProjectionMatrix32 returns the projection matrix narrowed for float32
// backends.
func (c *Camera) ProjectionMatrix32() mgl32.Mat4 {
	return c.proj.Float32()
}

// CacheHits returns how many view matrix reads were served from the cache.
func (c *Camera) CacheHits() int {
	return c.view.Hits()
}

// Recomputes returns how many times the view matrix has been rebuilt.
func (c *Camera) Recomputes() int {
	return c.view.Computes()
}

func (c *Camera) computeViewMatrix() math3d.Mat4 {
	return math3d.LookAt(c.eye, c.target, math3d.Up())
}

// WorldToScreen transforms a world point to screen coordinates.
// Returns (screenX, screenY, depth, visible).
func (c *Camera) WorldToScreen(worldPos math3d.Vec3, screenWidth, screenHeight int) (x, y, depth float64, visible bool) {
	clipPos := c.ViewProjectionMatrix().MulVec4(math3d.V4FromV3(worldPos, 1))

	// Behind the camera
	if clipPos.W <= 0 {
		return 0, 0, 0, false
	}

	ndc := clipPos.PerspectiveDivide()
	if ndc.X < -1 || ndc.X > 1 || ndc.Y < -1 || ndc.Y > 1 || ndc.Z < -1 || ndc.Z > 1 {
		return 0, 0, 0, false
	}

	x = (ndc.X + 1) * 0.5 * float64(screenWidth)
	y = (1 - ndc.Y) * 0.5 * float64(screenHeight) // Y is flipped
	depth = ndc.Z

	return x, y, depth, true
}
