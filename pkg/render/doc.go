// Package render turns point sets and peeling results into pictures.
//
// # Overview
//
// This package contains the format conversion shared by the renderers:
//
//   - Scene rendering of nodes, rings and hulls (in [svg] subpackage)
//   - Neighbor graph diagrams (in [nodelink] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). When the tool is missing
// they fail with an UNSUPPORTED error.
//
//	scene := svg.Render(doc, layers, svg.WithHulls())
//	pdf, err := render.ToPDF(ctx, scene)
//	png, err := render.ToPNG(ctx, scene, 2.0)  // 2x scale
//
// # Scenes
//
// The [svg] subpackage draws the point cloud in its original frame, each
// peeled ring in its own color, and optionally the neighbor graph, the
// convex hulls and the final disc positions.
//
// # Neighbor Graphs
//
// The [nodelink] subpackage emits the neighbor graph as Graphviz DOT with
// every node pinned at its coordinates and renders it with the neato engine.
//
//	dot := nodelink.ToDOT(set, nodelink.Options{Layers: layers})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [svg]: github.com/matzehuels/onion/pkg/render/svg
// [nodelink]: github.com/matzehuels/onion/pkg/render/nodelink
package render
