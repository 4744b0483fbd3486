package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/onion/pkg/hull"
	"github.com/matzehuels/onion/pkg/io"
	"github.com/matzehuels/onion/pkg/pipeline"
)

// hullCommand creates the hull command.
func (c *CLI) hullCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "hull [file]",
		Short: "Print the convex hull of a point set",
		Long: `Print the convex hull of a point set as counter-clockwise vertices.

With --json the hull is printed as a list of segments in the same form used
by the layers document.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := pipeline.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			set, err := doc.PointSet()
			if err != nil {
				return err
			}

			if asJSON {
				segs := hull.Of(set.Positions())
				out := make([]io.Segment, len(segs))
				for i, s := range segs {
					out[i] = io.Segment{From: io.XY{X: s.From.X, Y: s.From.Y}, To: io.XY{X: s.To.X, Y: s.To.Y}}
				}
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			ids := make(map[r2.Vec]int, set.Len())
			for _, n := range set.Nodes() {
				if _, ok := ids[n.Pos()]; !ok {
					ids[n.Pos()] = n.ID
				}
			}
			poly := hull.Polygon(set.Positions())
			printSuccess("Hull of %s: %d vertices", args[0], len(poly))
			for _, p := range poly {
				printKeyValue(fmt.Sprintf("node %d", ids[p]), fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print hull segments as JSON")
	return cmd
}
