// Package pkg provides the core libraries for onion boundary peeling.
//
// # Overview
//
// A disc of fixed diameter is rolled around a planar point set. Wherever it
// rests it touches two points and covers none, so the points it visits trace
// the boundary of the set at that scale. Removing the boundary and rolling
// again peels the set layer by layer, like an onion.
//
// # Architecture
//
// The typical data flow:
//
//	point set JSON
//	      ↓
//	 [io] document → [pointset] nodes + neighbor graph
//	      ↓
//	 [pivot] seed + rolling disc → ring
//	      ↓
//	 [peel] layers with a diameter schedule
//	      ↓
//	 [render/svg], [render/nodelink] → SVG/PNG/PDF/DOT
//
// [pipeline] ties these together with caching, and is shared by the CLI and
// the HTTP server.
//
// # Quick Start
//
//	doc, _ := io.ImportJSON("points.json")
//	set, _ := doc.PointSet()
//	layers, _ := peel.PeelRepeatedly(ctx, set, peel.Reuse([]float64{60, 40}, 4))
//	for _, l := range layers {
//	    fmt.Println(l.Index, l.Status, l.OnRing)
//	}
//
// # Main Packages
//
// ## Geometry
//
// [geom] - Tangent circle centers, bearings, forward rotation angles and the
// empty-disc test.
//
// [hull] - Convex hulls with Andrew's monotone chain, drawn as a diagnostic
// overlay.
//
// [pointset] - Nodes addressed by id and the fixed-range neighbor graph.
//
// ## Peeling
//
// [pivot] - Seed search and the rolling disc. [pivot.Roller] emits one
// boundary edge per step and can be driven interactively.
//
// [peel] - Single layers and repeated peeling with a node ownership pool.
//
// [generate] - Grid-stratified random point sets for demos and tests.
//
// ## Visualization
//
// [render/svg] - Point set and layer drawings. [render] converts SVG to PDF
// and PNG with rsvg-convert.
//
// [render/nodelink] - The neighbor graph as Graphviz DOT.
//
// ## Infrastructure
//
// [pipeline] - Load → peel → render with caching, used by CLI and API.
//
// [cache] - File, Redis and no-op caches for layers and artifacts.
//
// [store] - Saved point sets in memory or MongoDB.
//
// [observability] - Hooks for metrics, with a Prometheus implementation.
//
// [errors] - Coded errors shared by the library, CLI and HTTP API.
//
// # Testing
//
// Run tests:
//
//	go test ./...                        # All tests
//	go test ./pkg/pivot/...              # Specific package
//	go test -run Example ./pkg/...       # Examples only
//	go test -tags integration ./pkg/...  # Include Redis and MongoDB tests
package pkg
