package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/onion/pkg/io"
	"github.com/matzehuels/onion/pkg/pipeline"
)

// renderCommand creates the render command, which draws previously peeled
// layers without peeling again.
func (c *CLI) renderCommand() *cobra.Command {
	var flags peelFlags

	cmd := &cobra.Command{
		Use:   "render [points] [layers]",
		Short: "Render a point set with previously peeled layers",
		Long: `Render a point set together with a layers document written by
"onion peel -f json".`,
		Example: `  onion peel points.json -f json
  onion render points.json points_onion.json -f svg,png --neighbors`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts, err := c.pipelineOptions(cmd, flags)
			if err != nil {
				return err
			}

			doc, err := pipeline.Load(ctx, args[0])
			if err != nil {
				return err
			}
			layers, err := io.ImportLayersJSON(args[1])
			if err != nil {
				return err
			}

			noCache := unlessSet(cmd, "no-cache", flags.noCache, c.config.NoCache)
			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			prog := newProgress(c.Logger)
			artifacts, hit, err := runner.RenderWithCacheInfo(ctx, doc, layers, opts)
			if err != nil {
				return err
			}
			prog.done("Rendered " + args[0])

			paths, err := writeArtifacts(basePath(flags.output, args[0]), artifacts)
			if err != nil {
				return err
			}
			printStats(len(doc.Nodes), len(layers.Layers), hit)
			for _, p := range paths {
				printFile(p)
			}
			return nil
		},
	}

	addRenderFlags(cmd, &flags)
	cmd.Flags().BoolVar(&flags.hull, "hull", false, "draw layer hulls stored in the layers document")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable the result cache")

	return cmd
}
