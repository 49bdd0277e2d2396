package config

import (
	"errors"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/taigrr/icosphere/pkg/math3d"
	"github.com/taigrr/icosphere/pkg/sphere"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, found, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if found {
		t.Error("found = true for missing file")
	}
	if cfg != Default() {
		t.Error("missing file should yield defaults")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icosphere.json")
	data := `{"mesh": {"level": 2, "baseShape": "tetrahedron", "color": "#102030"}, "preview": {"fps": 30}}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, found, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !found {
		t.Error("found = false for existing file")
	}
	if cfg.Mesh.Level != 2 || cfg.Mesh.BaseShape != "tetrahedron" || cfg.Preview.FPS != 30 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	// Untouched fields keep their defaults.
	if cfg.Mesh.MaxLevel != 7 || cfg.Camera.Far != Default().Camera.Far {
		t.Errorf("defaults lost: maxLevel=%d far=%v", cfg.Mesh.MaxLevel, cfg.Camera.Far)
	}
}

func TestLoadRejectsBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{mesh"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"negative level", func(c *Config) { c.Mesh.Level = -1 }},
		{"level over cap", func(c *Config) { c.Mesh.Level = 9 }},
		{"bad shape", func(c *Config) { c.Mesh.BaseShape = "cube" }},
		{"bad color", func(c *Config) { c.Mesh.Color = "orange" }},
		{"near past far", func(c *Config) { c.Camera.Near = 10 }},
		{"zero fov", func(c *Config) { c.Camera.FOVDegrees = 0 }},
		{"eye at target", func(c *Config) { c.Camera.Eye = c.Camera.Target }},
		{"zero fps", func(c *Config) { c.Preview.FPS = 0 }},
		{"bad background", func(c *Config) { c.Preview.Background = "#12" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.modify(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestUncappedLevelIsValid(t *testing.T) {
	cfg := Default()
	cfg.Mesh.MaxLevel = 0
	cfg.Mesh.Level = 9
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil with no cap", err)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#ffa500", color.RGBA{255, 165, 0, 255}, false},
		{"#FFFFFF", color.RGBA{255, 255, 255, 255}, false},
		{"#fa0", color.RGBA{255, 170, 0, 255}, false},
		{"ffa500", color.RGBA{}, true},
		{"", color.RGBA{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseColor(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseColor(%q) err = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if err == nil && got != tc.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestMeshOptions(t *testing.T) {
	cfg := Default()
	cfg.Mesh.BaseShape = "tetrahedron"
	cfg.Mesh.MaxLevel = 1

	opts, err := cfg.MeshOptions()
	if err != nil {
		t.Fatal(err)
	}
	m := sphere.NewMesh(opts...)

	if m.BaseShape() != sphere.Tetrahedron || m.FaceCount() != 4 {
		t.Errorf("mesh = %v with %d faces, want tetrahedron with 4", m.BaseShape(), m.FaceCount())
	}
	if m.Color() != (color.RGBA{255, 165, 0, 255}) {
		t.Errorf("Color() = %v, want orange", m.Color())
	}
	if err := m.RefineTo(2); !errors.Is(err, sphere.ErrMaxLevel) {
		t.Errorf("RefineTo(2) = %v, want ErrMaxLevel", err)
	}
}

func TestNewCamera(t *testing.T) {
	cfg := Default()

	c := cfg.NewCamera(0)
	if c.Eye() != math3d.V3(0, 0, -2) || c.Target() != math3d.Zero3() {
		t.Errorf("eye=%v target=%v, want (0,0,-2) and origin", c.Eye(), c.Target())
	}
	if math.Abs(c.FOV()-math.Pi/4) > 1e-12 {
		t.Errorf("FOV() = %v, want π/4", c.FOV())
	}
	if c.AspectRatio() != cfg.Camera.Aspect {
		t.Errorf("AspectRatio() = %v, want %v", c.AspectRatio(), cfg.Camera.Aspect)
	}

	if got := cfg.NewCamera(2).AspectRatio(); got != 2 {
		t.Errorf("aspect override = %v, want 2", got)
	}
}
