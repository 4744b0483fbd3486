package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/onion/pkg/io"
	"github.com/matzehuels/onion/pkg/pointset"
	"github.com/matzehuels/onion/pkg/render"
)

// DefaultScale converts point set units to Graphviz points.
const DefaultScale = 1.0

// Options configures neighbor graph rendering.
type Options struct {
	// Layers colors ring nodes and draws ring edges bold. Optional.
	Layers io.Layers

	// Detailed adds coordinates to the node labels.
	Detailed bool

	// Scale multiplies coordinates before pinning. Zero means DefaultScale.
	Scale float64
}

var palette = []string{"#1f44ff", "#ff0066", "#10a37f", "#f59e0b", "#8b5cf6", "#06b6d4", "#ef4444"}

// ToDOT converts the current neighbor graph of set to Graphviz DOT. Every
// node is pinned at its coordinates (y flipped, since Graphviz grows y
// upwards), so the neato engine keeps the original geometry.
//
// The neighbor graph must already be built; ToDOT does not rebuild it.
func ToDOT(set *pointset.Set, opts Options) string {
	scale := opts.Scale
	if scale == 0 {
		scale = DefaultScale
	}

	layerOf := make(map[int]int)
	ringEdge := make(map[[2]int]int)
	for _, l := range opts.Layers.Layers {
		for _, id := range l.OnRing {
			layerOf[id] = l.Index
		}
		for _, e := range l.Edges {
			ringEdge[edgeKey(e.From, e.To)] = l.Index
		}
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=8, width=0.25, fixedsize=true];\n")
	buf.WriteString("  edge [color=\"#a1a1aa\"];\n")
	buf.WriteString("\n")

	for _, n := range set.Nodes() {
		attrs := []string{
			fmt.Sprintf("label=%q", fmtLabel(n, opts.Detailed)),
			fmt.Sprintf("pos=\"%.2f,%.2f!\"", n.X*scale, -n.Y*scale),
		}
		if idx, ok := layerOf[n.ID]; ok {
			attrs = append(attrs, fmt.Sprintf("fillcolor=%q", palette[idx%len(palette)]), "fontcolor=white")
		}
		fmt.Fprintf(&buf, "  %d [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, n := range set.Nodes() {
		for _, m := range n.Neighbors() {
			if m.ID < n.ID {
				continue
			}
			if idx, ok := ringEdge[edgeKey(n.ID, m.ID)]; ok {
				fmt.Fprintf(&buf, "  %d -- %d [color=%q, penwidth=2];\n", n.ID, m.ID, palette[idx%len(palette)])
				continue
			}
			fmt.Fprintf(&buf, "  %d -- %d;\n", n.ID, m.ID)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func edgeKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

func fmtLabel(n *pointset.Node, detailed bool) string {
	if !detailed {
		return strconv.Itoa(n.ID)
	}
	return fmt.Sprintf("%d\n(%.1f, %.1f)", n.ID, n.X, n.Y)
}

// RenderSVG renders a DOT graph to SVG using the Graphviz neato engine.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
