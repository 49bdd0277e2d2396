package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/taigrr/icosphere/pkg/sphere"
)

// Past this many faces the weld pass takes noticeably long.
const largeFaceCount = 1 << 20

func newStatsCmd(a *app) *cobra.Command {
	var levels int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print face, vertex and accuracy figures per refinement level",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if levels < 0 {
				return fmt.Errorf("--levels must not be negative, got %d", levels)
			}

			m, err := a.newMesh(0)
			if err != nil {
				return err
			}

			if n := m.BaseShape().FacesAt(levels); n > largeFaceCount {
				a.logger.Warn("large mesh requested", "levels", levels, "faces", n)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintf(w, "level\tfaces\trecords\tbytes\tvertices\tedges\tmax radius error\t\n")

			for {
				writeStatsRow(w, m)
				if m.Level() >= levels {
					break
				}
				if err := m.Refine(); err != nil {
					a.logger.Warn("stopped early", "err", err)
					break
				}
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVarP(&levels, "levels", "n", 5, "highest refinement level to report")
	return cmd
}

func writeStatsRow(w *tabwriter.Writer, m *sphere.Mesh) {
	stream := m.PrepareForDraw()
	x := m.Indexed()
	fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%d\t%d\t%.6f\t\n",
		m.Level(),
		m.FaceCount(),
		stream.VertexCount(),
		stream.VertexCount()*sphere.VertexStride,
		x.VertexCount(),
		x.EdgeCount(),
		sphere.MaxRadiusError(m.Faces()),
	)
}
