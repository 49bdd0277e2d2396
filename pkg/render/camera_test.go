package render

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/taigrr/icosphere/pkg/math3d"
)

func TestCameraInitialView(t *testing.T) {
	eye := math3d.V3(0, 0, -2)
	c := DefaultCamera(DefaultAspect)

	want := math3d.LookAt(eye, math3d.Zero3(), math3d.V3(0, 1, 0))
	if got := c.ViewMatrix(); !got.ApproxEqual(want, 1e-12) {
		t.Errorf("ViewMatrix() = %v, want %v", got, want)
	}

	// The target is straight ahead of the eye.
	ahead := c.ViewMatrix().MulVec3(math3d.Zero3())
	if !ahead.ApproxEqual(math3d.V3(0, 0, -2), 1e-12) {
		t.Errorf("target in view space = %v, want (0, 0, -2)", ahead)
	}
}

func TestCameraViewCache(t *testing.T) {
	c := DefaultCamera(DefaultAspect)

	before := c.ViewMatrix()
	if c.Recomputes() != 1 || c.CacheHits() != 0 {
		t.Fatalf("after first read: recomputes=%d hits=%d, want 1 and 0", c.Recomputes(), c.CacheHits())
	}

	c.ViewMatrix()
	if c.CacheHits() != 1 {
		t.Fatalf("second read should hit cache: hits=%d", c.CacheHits())
	}

	hits := c.CacheHits()
	c.SetEye(math3d.V3(1, 0, -2))
	after := c.ViewMatrix()

	if after == before {
		t.Error("view matrix unchanged after SetEye")
	}
	if c.CacheHits() != hits {
		t.Errorf("read after SetEye counted as cache hit: hits %d -> %d", hits, c.CacheHits())
	}
	if c.Recomputes() != 2 {
		t.Errorf("Recomputes() = %d, want 2", c.Recomputes())
	}
}

func TestCameraSetTargetInvalidates(t *testing.T) {
	c := DefaultCamera(1)
	before := c.ViewMatrix()
	vpBefore := c.ViewProjectionMatrix()

	c.SetTarget(math3d.V3(0, 1, 0))
	if c.ViewMatrix() == before {
		t.Error("view matrix unchanged after SetTarget")
	}
	if c.ViewProjectionMatrix() == vpBefore {
		t.Error("view-projection matrix unchanged after SetTarget")
	}
}

func TestCameraProjectionFixed(t *testing.T) {
	c := NewCamera(math3d.V3(0, 0, -2), math3d.Zero3(), math.Pi/4, 16.0/9.0, 0.001, 5)
	proj := c.ProjectionMatrix()

	c.SetEye(math3d.V3(3, 0, 0))
	if c.ProjectionMatrix() != proj {
		t.Error("projection changed after moving the eye")
	}

	want := math3d.Perspective(math.Pi/4, 16.0/9.0, 0.001, 5)
	if proj != want {
		t.Errorf("ProjectionMatrix() = %v, want %v", proj, want)
	}

	near, far := c.ClipPlanes()
	if near != 0.001 || far != 5 || c.FOV() != math.Pi/4 || c.AspectRatio() != 16.0/9.0 {
		t.Errorf("camera parameters not preserved: fov=%v aspect=%v near=%v far=%v", c.FOV(), c.AspectRatio(), near, far)
	}
}

func TestCameraLightDirection(t *testing.T) {
	c := DefaultCamera(1)
	if got := c.LightDirection(); got != math3d.V3(0, 0, 2) {
		t.Errorf("LightDirection() = %v, want (0, 0, 2)", got)
	}

	c.SetEye(math3d.V3(3, 0, 0))
	if got := c.LightDirection(); got != math3d.V3(-3, 0, 0) {
		t.Errorf("LightDirection() = %v, want (-3, 0, 0)", got)
	}
}

func TestCameraFloat32Matrices(t *testing.T) {
	c := DefaultCamera(DefaultAspect)

	wantView := mgl32.LookAtV(mgl32.Vec3{0, 0, -2}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	if got := c.ViewMatrix32(); !got.ApproxEqualThreshold(wantView, 1e-5) {
		t.Errorf("ViewMatrix32() = %v, want %v", got, wantView)
	}

	wantProj := mgl32.Perspective(math.Pi/4, DefaultAspect, DefaultNear, DefaultFar)
	if got := c.ProjectionMatrix32(); !got.ApproxEqualThreshold(wantProj, 1e-4) {
		t.Errorf("ProjectionMatrix32() = %v, want %v", got, wantProj)
	}
}

func TestWorldToScreen(t *testing.T) {
	c := DefaultCamera(1)

	x, y, _, ok := c.WorldToScreen(math3d.Zero3(), 100, 100)
	if !ok {
		t.Fatal("origin should be visible")
	}
	if math.Abs(x-50) > 1e-9 || math.Abs(y-50) > 1e-9 {
		t.Errorf("origin projects to (%v, %v), want (50, 50)", x, y)
	}

	if _, _, _, ok := c.WorldToScreen(math3d.V3(0, 0, -3), 100, 100); ok {
		t.Error("point behind the camera should not be visible")
	}
}
