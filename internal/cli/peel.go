package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/onion/pkg/io"
	"github.com/matzehuels/onion/pkg/pipeline"
)

// peelFlags holds the raw command-line flags shared by peel and render.
type peelFlags struct {
	diameters string
	layers    int
	exclude   string
	anchor    int
	hull      bool
	formats   string
	output    string
	neighbors bool
	labels    bool
	scale     float64
	noCache   bool
	refresh   bool
}

// peelCommand creates the peel command.
func (c *CLI) peelCommand() *cobra.Command {
	var flags peelFlags

	cmd := &cobra.Command{
		Use:   "peel [file]",
		Short: "Peel boundary layers off a point set",
		Long: `Peel boundary layers off a point set and render the result.

A disc of the given diameter is rolled around the point set until it returns
to its starting edge. The points it touched form the first layer; they are
removed and the disc is rolled again over the remainder. Pass several
diameters to change the disc size from layer to layer; the last diameter is
reused for further layers.

Outputs are written next to the input as <name>_onion.<format> unless -o is
given.`,
		Example: `  onion peel points.json
  onion peel points.json -d 60,40 --layers 4 -f svg,json
  onion peel points.json --exclude 3,17 --hull -o out/peeled.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.pipelineOptions(cmd, flags)
			if err != nil {
				return err
			}
			noCache := unlessSet(cmd, "no-cache", flags.noCache, c.config.NoCache)
			return c.runPeel(cmd.Context(), args[0], flags.output, opts, noCache)
		},
	}

	addPeelFlags(cmd, &flags)
	addRenderFlags(cmd, &flags)
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "recompute layers even when cached")

	return cmd
}

func addPeelFlags(cmd *cobra.Command, flags *peelFlags) {
	cmd.Flags().StringVarP(&flags.diameters, "diameter", "d", "", "disc diameters, comma-separated (default 60)")
	cmd.Flags().IntVar(&flags.layers, "layers", 0, "maximum layers, negative for no limit (default max(2, #diameters))")
	cmd.Flags().StringVar(&flags.exclude, "exclude", "", "node ids to remove before peeling, comma-separated")
	cmd.Flags().IntVar(&flags.anchor, "anchor", 0, "node id to start the first layer from (default: leftmost)")
	cmd.Flags().BoolVar(&flags.hull, "hull", false, "compute the convex hull of every layer")
}

func addRenderFlags(cmd *cobra.Command, flags *peelFlags) {
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output formats: svg, png, pdf, dot, json (comma-separated)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file or base path")
	cmd.Flags().BoolVar(&flags.neighbors, "neighbors", false, "draw the neighbor graph")
	cmd.Flags().BoolVar(&flags.labels, "labels", false, "draw node ids")
	cmd.Flags().Float64Var(&flags.scale, "scale", pipeline.DefaultPNGScale, "PNG scale factor")
}

// pipelineOptions merges flags over config file values.
func (c *CLI) pipelineOptions(cmd *cobra.Command, flags peelFlags) (pipeline.Options, error) {
	diameters, err := parseDiameters(flags.diameters)
	if err != nil {
		return pipeline.Options{}, err
	}
	exclude, err := parseIDs(flags.exclude)
	if err != nil {
		return pipeline.Options{}, err
	}
	var formats []string
	if flags.formats != "" {
		formats = parseFormats(flags.formats)
	}

	cfg := c.config
	opts := pipeline.Options{
		Diameters: unlessSet(cmd, "diameter", diameters, cfg.Diameters),
		MaxLayers: unlessSet(cmd, "layers", flags.layers, cfg.MaxLayers),
		Exclude:   exclude,
		Hull:      unlessSet(cmd, "hull", flags.hull, cfg.Hull),
		Refresh:   flags.refresh,
		Formats:   unlessSet(cmd, "format", formats, cfg.Formats),
		Neighbors: unlessSet(cmd, "neighbors", flags.neighbors, cfg.Neighbors),
		Labels:    unlessSet(cmd, "labels", flags.labels, cfg.Labels),
		Scale:     flags.scale,
		Logger:    c.Logger,
	}
	if cmd.Flags().Changed("anchor") {
		opts.Anchor = &flags.anchor
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

func (c *CLI) runPeel(ctx context.Context, input, output string, opts pipeline.Options, noCache bool) error {
	doc, err := pipeline.Load(ctx, input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Peeling %d points...", len(doc.Nodes)))
	spinner.Start()
	result, err := runner.Execute(ctx, doc, opts)
	if err != nil {
		spinner.StopWithError("Peeling failed")
		return err
	}
	spinner.Stop()

	paths, err := writeArtifacts(basePath(output, input), result.Artifacts)
	if err != nil {
		return err
	}

	printSuccess("Peeled %s", input)
	printStats(result.Stats.NodeCount, result.Stats.LayerCount, result.CacheInfo.PeelHit)
	printLayers(result.Layers)
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

// printLayers prints one summary line per layer.
func printLayers(layers io.Layers) {
	for _, l := range layers.Layers {
		state := l.Status
		if l.Found() {
			state = "open"
			if l.Closed {
				state = "closed"
			}
		}
		printKeyValue(fmt.Sprintf("layer %d", l.Index),
			fmt.Sprintf("d=%g %s %s", l.Diameter, state, summarizeIDs(l.OnRing, 12)))
	}
}

// summarizeIDs formats ids, eliding everything past limit.
func summarizeIDs(ids []int, limit int) string {
	if len(ids) == 0 {
		return "[]"
	}
	parts := make([]string, 0, min(len(ids), limit))
	for i, id := range ids {
		if i == limit {
			break
		}
		parts = append(parts, fmt.Sprint(id))
	}
	s := "[" + strings.Join(parts, " ")
	if len(ids) > limit {
		s += fmt.Sprintf(" … +%d", len(ids)-limit)
	}
	return s + "]"
}
