package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taigrr/icosphere/internal/config"
	"github.com/taigrr/icosphere/pkg/render"
)

type renderOptions struct {
	out       string
	width     int
	height    int
	level     int
	wireframe bool
}

func newRenderCmd(a *app) *cobra.Command {
	opts := renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the sphere to a PNG file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.render(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.out, "out", "o", "icosphere.png", "output PNG path")
	cmd.Flags().IntVar(&opts.width, "width", 1280, "image width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", 720, "image height in pixels")
	cmd.Flags().IntVarP(&opts.level, "level", "l", -1, "refinement level (default from config)")
	cmd.Flags().BoolVar(&opts.wireframe, "wireframe", false, "overlay triangle edges")
	return cmd
}

func (a *app) render(opts renderOptions) error {
	if opts.width <= 0 || opts.height <= 0 {
		return fmt.Errorf("image size %dx%d must be positive", opts.width, opts.height)
	}

	m, err := a.newMesh(opts.level)
	if err != nil {
		return err
	}
	bg, err := config.ParseColor(a.cfg.Preview.Background)
	if err != nil {
		return fmt.Errorf("background: %w", err)
	}

	camera := a.cfg.NewCamera(float64(opts.width) / float64(opts.height))
	fb := render.NewFramebuffer(opts.width, opts.height)
	rasterizer := render.NewRasterizer(camera, fb)

	fb.Clear(bg)
	rasterizer.ClearDepth()

	stream := m.PrepareForDraw()
	rasterizer.DrawTriangleList(stream, camera.LightDirection())
	if opts.wireframe {
		rasterizer.DrawTriangleListWireframe(stream, render.RGB(0, 255, 128))
	}

	if err := fb.SavePNG(opts.out); err != nil {
		return err
	}

	a.logger.Info("rendered",
		"out", opts.out,
		"level", m.Level(),
		"triangles", rasterizer.Stats.Triangles,
		"culled", rasterizer.Stats.Culled,
		"pixels", rasterizer.Stats.Pixels,
	)
	return nil
}
