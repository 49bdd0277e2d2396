// icosphere - unit sphere mesh generator and viewer
//
// Builds an icosphere by repeatedly subdividing an icosahedron (or a
// tetrahedron) and projecting the new vertices onto the unit sphere, then
// reports on it, renders it to a PNG, or previews it in the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/taigrr/icosphere/internal/config"
	"github.com/taigrr/icosphere/pkg/sphere"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	configPath string
	logLevel   string

	cfg    config.Config
	logger *log.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fang.Execute(ctx, newRootCmd()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "icosphere",
		Short: "Generate, inspect and view refined icospheres",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "icosphere.json", "path to a JSON config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error); overrides the config file")

	root.AddCommand(
		newStatsCmd(a),
		newRenderCmd(a),
		newPreviewCmd(a),
	)
	return root
}

// setup loads the config and builds the logger.
func (a *app) setup() error {
	cfg, found, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("log level %q: %w", cfg.Log.Level, err)
	}

	a.cfg = cfg
	a.logger = log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		Prefix:          "icosphere",
		ReportTimestamp: true,
	})

	if found {
		a.logger.Debug("loaded config", "path", a.configPath)
	} else {
		a.logger.Debug("no config file, using defaults", "path", a.configPath)
	}
	return nil
}

// newMesh builds the configured mesh and refines it to level. A negative
// level means the configured starting level.
func (a *app) newMesh(level int) (*sphere.Mesh, error) {
	opts, err := a.cfg.MeshOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts, sphere.WithLogger(a.logger))

	if level < 0 {
		level = a.cfg.Mesh.Level
	}

	m := sphere.NewMesh(opts...)
	if err := m.RefineTo(level); err != nil {
		return nil, err
	}
	return m, nil
}
