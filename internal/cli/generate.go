package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/onion/pkg/generate"
	"github.com/matzehuels/onion/pkg/io"
	"github.com/matzehuels/onion/pkg/pipeline"
)

// generateCommand creates the generate command for random demo point sets.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		opts   generate.Options
		rng    float64
		output string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random grid-stratified point set",
		Long: `Generate a random point set as JSON.

Points are spread over a grid so that every cell holds the same share of
points before the remainder is scattered uniformly. Ids run from 1 to count.
The same seed always yields the same point set.`,
		Example: `  onion generate -n 300 -o points.json
  onion generate --width 400 --height 400 --seed 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.SetDefaults()
			nodes, err := generate.Points(opts)
			if err != nil {
				return err
			}
			doc := io.NewDocument(opts.Width, opts.Height, rng, nodes)

			if output == "" {
				return io.WriteJSON(doc, os.Stdout)
			}
			if err := io.ExportJSON(doc, output); err != nil {
				return err
			}
			printSuccess("Generated %d points", len(doc.Nodes))
			printFile(output)
			printNextStep("Peel it", "onion peel "+output)
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.Count, "count", "n", generate.DefaultCount, "number of points")
	cmd.Flags().Float64Var(&opts.Width, "width", generate.DefaultWidth, "frame width")
	cmd.Flags().Float64Var(&opts.Height, "height", generate.DefaultHeight, "frame height")
	cmd.Flags().IntVar(&opts.GridWidth, "grid-width", generate.DefaultGridWidth, "grid columns")
	cmd.Flags().IntVar(&opts.GridHeight, "grid-height", generate.DefaultGridHeight, "grid rows")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", generate.DefaultSeed, "random seed")
	cmd.Flags().Float64Var(&rng, "range", pipeline.DefaultDiameter, "neighbor range stored in the document")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}
