package pipeline

import (
	"bytes"
	"context"
	"fmt"

	onionio "github.com/matzehuels/onion/pkg/io"
	"github.com/matzehuels/onion/pkg/render/nodelink"
	"github.com/matzehuels/onion/pkg/render/svg"
)

// Render generates output artifacts in the requested formats.
// opts must have been validated.
func Render(ctx context.Context, doc onionio.Document, layers onionio.Layers, opts Options) (map[string][]byte, error) {
	svgOpts := buildSVGOptions(opts)
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = svg.Render(doc, layers, svgOpts...)
		case FormatPNG:
			data, err = svg.RenderPNG(ctx, doc, layers, opts.Scale, svgOpts...)
		case FormatPDF:
			data, err = svg.RenderPDF(ctx, doc, layers, svgOpts...)
		case FormatDOT:
			data, err = renderDOT(doc, layers, opts)
		case FormatJSON:
			var buf bytes.Buffer
			err = onionio.WriteLayersJSON(layers, &buf)
			data = buf.Bytes()
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func buildSVGOptions(opts Options) []svg.Option {
	var out []svg.Option
	if opts.Neighbors {
		out = append(out, svg.WithNeighbors())
	}
	if opts.Hull {
		out = append(out, svg.WithHulls())
	}
	if opts.Labels {
		out = append(out, svg.WithLabels())
	}
	return out
}

// renderDOT draws the neighbor graph at the document range, or at the first
// diameter when the document carries none.
func renderDOT(doc onionio.Document, layers onionio.Layers, opts Options) ([]byte, error) {
	set, err := doc.PointSet()
	if err != nil {
		return nil, err
	}
	rng := doc.Range
	if rng == 0 && len(opts.Diameters) > 0 {
		rng = opts.Diameters[0]
	}
	if err := set.Rebuild(rng); err != nil {
		return nil, err
	}
	return []byte(nodelink.ToDOT(set, nodelink.Options{Layers: layers, Detailed: opts.Labels})), nil
}
