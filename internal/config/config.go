// Package config loads icosphere settings from a JSON file on top of
// built-in defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"math"
	"os"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/taigrr/icosphere/pkg/math3d"
	"github.com/taigrr/icosphere/pkg/render"
	"github.com/taigrr/icosphere/pkg/sphere"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

// Config is the full settings file.
type Config struct {
	Mesh    MeshSettings    `json:"mesh"`
	Camera  CameraSettings  `json:"camera"`
	Preview PreviewSettings `json:"preview"`
	Log     LogSettings     `json:"log"`
}

type MeshSettings struct {
	Level     int    `json:"level"`     // Refinements applied at startup
	MaxLevel  int    `json:"maxLevel"`  // Refinement cap, 0 = none
	BaseShape string `json:"baseShape"` // "icosahedron" or "tetrahedron"
	Color     string `json:"color"`     // Hex material color
}

type CameraSettings struct {
	FOVDegrees  float64    `json:"fovDegrees"`
	Aspect      float64    `json:"aspect"`
	Near        float64    `json:"near"`
	Far         float64    `json:"far"`
	Eye         [3]float64 `json:"eye"`
	Target      [3]float64 `json:"target"`
	OrbitRadius float64    `json:"orbitRadius"` // Preview orbit distance from the target
}

type PreviewSettings struct {
	FPS        int    `json:"fps"`
	Background string `json:"background"` // Hex color
}

type LogSettings struct {
	Level string `json:"level"`
}

// Default returns the built-in settings: the default camera and an
// orange icosahedron capped at seven refinements.
func Default() Config {
	return Config{
		Mesh: MeshSettings{
			Level:     0,
			MaxLevel:  7,
			BaseShape: sphere.Icosahedron.String(),
			Color:     "#ffa500",
		},
		Camera: CameraSettings{
			FOVDegrees:  45,
			Aspect:      render.DefaultAspect,
			Near:        render.DefaultNear,
			Far:         render.DefaultFar,
			Eye:         [3]float64{0, 0, -2},
			Target:      [3]float64{0, 0, 0},
			OrbitRadius: 3,
		},
		Preview: PreviewSettings{
			FPS:        60,
			Background: "#000000",
		},
		Log: LogSettings{
			Level: "info",
		},
	}
}

// Load reads path over the defaults. A missing file is not an error: the
// defaults are returned and found is false.
func Load(path string) (cfg Config, found bool, err error) {
	cfg = Default()
	if path == "" {
		return cfg, false, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, false, nil
	}
	if err != nil {
		return cfg, false, fmt.Errorf("read config: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, true, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, true, err
	}
	return cfg, true, nil
}

// Validate checks every field. Errors wrap ErrInvalid.
func (c Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.Mesh.Level < 0 {
		invalid("mesh.level %d is negative", c.Mesh.Level)
	}
	if c.Mesh.MaxLevel < 0 {
		invalid("mesh.maxLevel %d is negative", c.Mesh.MaxLevel)
	}
	if c.Mesh.MaxLevel > 0 && c.Mesh.Level > c.Mesh.MaxLevel {
		invalid("mesh.level %d exceeds mesh.maxLevel %d", c.Mesh.Level, c.Mesh.MaxLevel)
	}
	if _, err := sphere.ParseBaseShape(c.Mesh.BaseShape); err != nil {
		invalid("mesh.baseShape: %v", err)
	}
	if _, err := ParseColor(c.Mesh.Color); err != nil {
		invalid("mesh.color: %v", err)
	}

	if c.Camera.FOVDegrees <= 0 || c.Camera.FOVDegrees >= 180 {
		invalid("camera.fovDegrees %v not in (0, 180)", c.Camera.FOVDegrees)
	}
	if c.Camera.Aspect <= 0 {
		invalid("camera.aspect %v must be positive", c.Camera.Aspect)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		invalid("camera clip planes near=%v far=%v", c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.Eye == c.Camera.Target {
		invalid("camera.eye equals camera.target")
	}
	if c.Camera.OrbitRadius <= 0 {
		invalid("camera.orbitRadius %v must be positive", c.Camera.OrbitRadius)
	}

	if c.Preview.FPS <= 0 {
		invalid("preview.fps %d must be positive", c.Preview.FPS)
	}
	if _, err := ParseColor(c.Preview.Background); err != nil {
		invalid("preview.background: %v", err)
	}

	return errors.Join(errs...)
}

// ParseColor parses a hex color such as "#ffa500" or "#fa0".
func ParseColor(s string) (color.RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// MeshOptions converts the mesh settings to sphere options.
func (c Config) MeshOptions() ([]sphere.Option, error) {
	shape, err := sphere.ParseBaseShape(c.Mesh.BaseShape)
	if err != nil {
		return nil, err
	}
	col, err := ParseColor(c.Mesh.Color)
	if err != nil {
		return nil, fmt.Errorf("mesh color: %w", err)
	}
	return []sphere.Option{
		sphere.WithBaseShape(shape),
		sphere.WithMaxLevel(c.Mesh.MaxLevel),
		sphere.WithColor(col),
	}, nil
}

// NewCamera builds the configured camera. A non-zero aspect overrides the
// configured one, for callers that size to a window or terminal.
func (c Config) NewCamera(aspect float64) *render.Camera {
	if aspect <= 0 {
		aspect = c.Camera.Aspect
	}
	eye := math3d.V3(c.Camera.Eye[0], c.Camera.Eye[1], c.Camera.Eye[2])
	target := math3d.V3(c.Camera.Target[0], c.Camera.Target[1], c.Camera.Target[2])
	fov := c.Camera.FOVDegrees * math.Pi / 180
	return render.NewCamera(eye, target, fov, aspect, c.Camera.Near, c.Camera.Far)
}
