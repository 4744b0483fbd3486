// Package nodelink renders the neighbor graph of a point set as a node-link
// diagram.
//
// # Usage
//
// Build the neighbor graph, convert it to DOT, then render to SVG:
//
//	_ = set.Rebuild(60)
//	dot := nodelink.ToDOT(set, nodelink.Options{Layers: layers})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # DOT Format
//
// The graph is undirected. Nodes carry pinned positions (pos="x,y!") so the
// neato engine reproduces the point cloud instead of computing a layout.
// Nodes on a peeled ring are filled with the ring's color and ring edges are
// drawn bold.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
