package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/taigrr/icosphere/internal/config"
	"github.com/taigrr/icosphere/pkg/math3d"
	"github.com/taigrr/icosphere/pkg/render"
	"github.com/taigrr/icosphere/pkg/sphere"
)

// errQuit ends the preview without reporting a failure.
var errQuit = errors.New("quit")

const (
	orbitSpeed = 0.6 // radians per second
	minRadius  = 1.5
	maxRadius  = 4.5
	zoomStep   = 0.25
)

// action is a request from the input goroutine to the render goroutine.
// Only the render goroutine touches the mesh, camera and framebuffer.
type action int

const (
	actionRefine action = iota
	actionReset
	actionToggleWireframe
	actionTogglePause
	actionZoomIn
	actionZoomOut
	actionResize
)

type inputEvent struct {
	action        action
	width, height int
}

func newPreviewCmd(a *app) *cobra.Command {
	var (
		level int
		fps   int
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Orbit the sphere in the terminal",
		Long: `Orbit the sphere in the terminal.

Controls:
  r / enter   refine one level
  0           back to the starting level
  w           toggle wireframe overlay
  space       pause or resume the orbit
  up / down   zoom in and out
  q / esc     quit`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if fps <= 0 {
				fps = a.cfg.Preview.FPS
			}
			return a.preview(cmd.Context(), level, fps)
		},
	}

	cmd.Flags().IntVarP(&level, "level", "l", -1, "starting refinement level (default from config)")
	cmd.Flags().IntVar(&fps, "fps", 0, "target frames per second (default from config)")
	return cmd
}

// orbit moves the eye around the Y axis. Zoom and orbit speed ease toward
// their targets with critically damped springs.
type orbit struct {
	angle float64

	radius, radiusVel, radiusTarget float64
	radiusSpring                    harmonica.Spring

	speed, speedVel, speedTarget float64
	speedSpring                  harmonica.Spring
}

func newOrbit(fps int, radius float64) *orbit {
	return &orbit{
		radius:       radius,
		radiusTarget: radius,
		radiusSpring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
		speedTarget:  orbitSpeed,
		speedSpring:  harmonica.NewSpring(harmonica.FPS(fps), 3.0, 1.0),
	}
}

func (o *orbit) update(dt float64) {
	o.speed, o.speedVel = o.speedSpring.Update(o.speed, o.speedVel, o.speedTarget)
	o.radius, o.radiusVel = o.radiusSpring.Update(o.radius, o.radiusVel, o.radiusTarget)
	o.angle += o.speed * dt
}

func (o *orbit) zoom(delta float64) {
	o.radiusTarget = math.Max(minRadius, math.Min(maxRadius, o.radiusTarget+delta))
}

func (o *orbit) togglePause() {
	if o.speedTarget == 0 {
		o.speedTarget = orbitSpeed
	} else {
		o.speedTarget = 0
	}
}

// eye returns the camera position around target.
func (o *orbit) eye(target math3d.Vec3) math3d.Vec3 {
	return target.Add(math3d.V3(math.Sin(o.angle), 0, math.Cos(o.angle)).Scale(o.radius))
}

// scene is everything the render goroutine owns.
type scene struct {
	a   *app
	cfg config.Config
	bg  render.Color

	mesh       *sphere.Mesh
	startLevel int
	wireframe  bool
	orbit      *orbit

	term       *uv.Terminal
	termRender *render.TerminalRenderer
	fb         *render.Framebuffer
	camera     *render.Camera
	rasterizer *render.Rasterizer

	lastErr error
}

func (a *app) preview(ctx context.Context, level, fps int) error {
	bg, err := config.ParseColor(a.cfg.Preview.Background)
	if err != nil {
		return fmt.Errorf("background: %w", err)
	}
	m, err := a.newMesh(level)
	if err != nil {
		return err
	}

	term := uv.DefaultTerminal()
	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()

	s := &scene{
		a:          a,
		cfg:        a.cfg,
		bg:         bg,
		mesh:       m,
		startLevel: m.Level(),
		orbit:      newOrbit(fps, a.cfg.Camera.OrbitRadius),
		term:       term,
	}
	s.resize(width, height)

	inputs := make(chan inputEvent, 16)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return pumpEvents(ctx, term, inputs)
	})
	g.Go(func() error {
		return s.loop(ctx, fps, inputs)
	})

	err = g.Wait()

	term.ExitAltScreen()
	term.ShowCursor()
	if serr := term.Shutdown(context.Background()); serr != nil {
		a.logger.Debug("terminal shutdown", "err", serr)
	}

	if s.lastErr != nil {
		a.logger.Warn("refine", "err", s.lastErr)
	}
	if errors.Is(err, errQuit) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// pumpEvents turns terminal events into scene actions.
func pumpEvents(ctx context.Context, term *uv.Terminal, out chan<- inputEvent) error {
	events := term.Events()
	for {
		var ev uv.Event
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e, ok := <-events:
			if !ok {
				return errQuit
			}
			ev = e
		}

		var in inputEvent
		switch ev := ev.(type) {
		case uv.WindowSizeEvent:
			in = inputEvent{action: actionResize, width: ev.Width, height: ev.Height}
		case uv.KeyPressEvent:
			switch {
			case ev.MatchString("q", "escape", "ctrl+c"):
				return errQuit
			case ev.MatchString("r", "enter"):
				in.action = actionRefine
			case ev.MatchString("0"):
				in.action = actionReset
			case ev.MatchString("w"):
				in.action = actionToggleWireframe
			case ev.MatchString("space"):
				in.action = actionTogglePause
			case ev.MatchString("up", "+", "="):
				in.action = actionZoomIn
			case ev.MatchString("down", "-", "_"):
				in.action = actionZoomOut
			default:
				continue
			}
		default:
			continue
		}

		select {
		case out <- in:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// loop draws frames at fps and applies inputs between frames.
func (s *scene) loop(ctx context.Context, fps int, inputs <-chan inputEvent) error {
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case in := <-inputs:
			s.apply(in)
		case now := <-ticker.C:
			dt := math.Min(now.Sub(last).Seconds(), 0.1)
			last = now

			s.orbit.update(dt)
			if err := s.draw(); err != nil {
				return err
			}
		}
	}
}

func (s *scene) apply(in inputEvent) {
	switch in.action {
	case actionRefine:
		if err := s.mesh.Refine(); err != nil {
			s.lastErr = err
		}
	case actionReset:
		m, err := s.a.newMesh(s.startLevel)
		if err != nil {
			s.lastErr = err
			return
		}
		s.mesh = m
	case actionToggleWireframe:
		s.wireframe = !s.wireframe
	case actionTogglePause:
		s.orbit.togglePause()
	case actionZoomIn:
		s.orbit.zoom(-zoomStep)
	case actionZoomOut:
		s.orbit.zoom(zoomStep)
	case actionResize:
		s.term.Erase()
		s.resize(in.width, in.height)
	}
}

// resize rebuilds the framebuffer, depth buffer and camera for a terminal
// of width x height cells.
func (s *scene) resize(width, height int) {
	s.term.Resize(width, height)
	s.termRender = render.NewTerminalRenderer(s.term, width, height)
	fbWidth, fbHeight := s.termRender.FramebufferSize()
	s.fb = render.NewFramebuffer(fbWidth, fbHeight)

	aspect := 1.0
	if fbHeight > 0 {
		aspect = float64(fbWidth) / float64(fbHeight)
	}
	// A fixed far plane would clip the sphere when zoomed out.
	cfg := s.cfg
	cfg.Camera.Far = math.Max(cfg.Camera.Far, maxRadius+2)
	s.camera = cfg.NewCamera(aspect)
	s.rasterizer = render.NewRasterizer(s.camera, s.fb)
}

func (s *scene) draw() error {
	s.camera.SetEye(s.orbit.eye(s.camera.Target()))

	s.fb.Clear(s.bg)
	s.rasterizer.ClearDepth()

	stream := s.mesh.PrepareForDraw()
	s.rasterizer.DrawTriangleList(stream, s.camera.LightDirection())
	if s.wireframe {
		s.rasterizer.DrawTriangleListWireframe(stream, render.RGB(0, 255, 128))
	}

	s.termRender.Render(s.fb)
	if err := s.termRender.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}
