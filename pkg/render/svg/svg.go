// Package svg renders point sets and their peeled rings as SVG.
//
// Nodes are drawn in the coordinate frame of the point set document (y grows
// downwards, as in the generator). Each ring gets a color from the palette,
// cycling when there are more layers than colors; nodes not on any ring are
// drawn grey.
//
//	out := svg.Render(doc, layers, svg.WithNeighbors(), svg.WithHulls())
package svg

import (
	"bytes"
	"fmt"
	"math"

	"github.com/matzehuels/onion/pkg/io"
)

// Palette holds the ring colors, outermost first.
var Palette = []string{"#1f44ff", "#ff0066", "#10a37f", "#f59e0b", "#8b5cf6", "#06b6d4", "#ef4444"}

const (
	defaultNodeRadius = 2.5
	neighborColor     = "#d4d4d8"
	idleColor         = "#111111"
	margin            = 10.0
)

// Option configures scene rendering.
type Option func(*renderer)

type renderer struct {
	neighbors  bool
	hulls      bool
	labels     bool
	nodeRadius float64
}

// WithNeighbors draws the neighbor graph at the document's range.
func WithNeighbors() Option { return func(r *renderer) { r.neighbors = true } }

// WithHulls draws the convex hull stored with each layer.
func WithHulls() Option { return func(r *renderer) { r.hulls = true } }

// WithLabels writes each node id next to its node.
func WithLabels() Option { return func(r *renderer) { r.labels = true } }

// WithNodeRadius sets the drawn node radius.
func WithNodeRadius(radius float64) Option { return func(r *renderer) { r.nodeRadius = radius } }

// Render draws doc and the rings in layers. layers may be empty.
func Render(doc io.Document, layers io.Layers, opts ...Option) []byte {
	r := renderer{nodeRadius: defaultNodeRadius}
	for _, opt := range opts {
		opt(&r)
	}

	pos := make(map[int]io.Point, len(doc.Nodes))
	for _, p := range doc.Nodes {
		pos[p.ID] = p
	}
	colorOf := make(map[int]string)
	for _, l := range layers.Layers {
		for _, id := range l.OnRing {
			colorOf[id] = layerColor(l.Index)
		}
	}

	x0, y0, w, h := frame(doc)
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		x0, y0, w, h, w, h)
	fmt.Fprintf(&buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="white"/>`+"\n", x0, y0, w, h)

	if r.neighbors {
		renderNeighbors(&buf, doc)
	}
	if r.hulls {
		for _, l := range layers.Layers {
			renderHull(&buf, l)
		}
	}
	for _, l := range layers.Layers {
		renderRing(&buf, l, pos)
	}

	buf.WriteString(`  <g class="nodes">` + "\n")
	for _, p := range doc.Nodes {
		color, ok := colorOf[p.ID]
		if !ok {
			color = idleColor
		}
		fmt.Fprintf(&buf, `    <circle id="node-%d" cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>`+"\n",
			p.ID, p.X, p.Y, r.nodeRadius, color)
		if r.labels {
			fmt.Fprintf(&buf, `    <text x="%.2f" y="%.2f" font-size="8" font-family="monospace">%d</text>`+"\n",
				p.X+r.nodeRadius+1, p.Y-r.nodeRadius-1, p.ID)
		}
	}
	buf.WriteString("  </g>\n")

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func layerColor(index int) string { return Palette[index%len(Palette)] }

// frame returns the viewBox. The document frame is used when it is set and
// contains every node; otherwise the bounding box of the nodes plus a margin.
func frame(doc io.Document) (x, y, w, h float64) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range doc.Nodes {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	if len(doc.Nodes) == 0 {
		minX, minY, maxX, maxY = 0, 0, 0, 0
	}
	if doc.Width > 0 && doc.Height > 0 && minX >= 0 && minY >= 0 && maxX <= doc.Width && maxY <= doc.Height {
		return 0, 0, doc.Width, doc.Height
	}
	return minX - margin, minY - margin, maxX - minX + 2*margin, maxY - minY + 2*margin
}

func renderNeighbors(buf *bytes.Buffer, doc io.Document) {
	set, err := doc.PointSet()
	if err != nil || doc.Range <= 0 || set.Rebuild(doc.Range) != nil {
		return
	}
	buf.WriteString(`  <g class="neighbors" stroke="` + neighborColor + `" stroke-width="0.5">` + "\n")
	for _, n := range set.Nodes() {
		for _, m := range n.Neighbors() {
			if m.ID < n.ID {
				continue
			}
			writeLine(buf, n.X, n.Y, m.X, m.Y)
		}
	}
	buf.WriteString("  </g>\n")
}

func writeLine(buf *bytes.Buffer, x1, y1, x2, y2 float64) {
	fmt.Fprintf(buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>`+"\n", x1, y1, x2, y2)
}

func renderRing(buf *bytes.Buffer, l io.Layer, pos map[int]io.Point) {
	if len(l.Edges) == 0 {
		return
	}
	dash := ""
	if !l.Closed {
		dash = ` stroke-dasharray="4 2"`
	}
	fmt.Fprintf(buf, `  <g class="ring" id="ring-%d" stroke="%s" stroke-width="1.2"%s>`+"\n", l.Index, layerColor(l.Index), dash)
	for _, e := range l.Edges {
		a, okA := pos[e.From]
		b, okB := pos[e.To]
		if !okA || !okB {
			continue
		}
		writeLine(buf, a.X, a.Y, b.X, b.Y)
	}
	buf.WriteString("  </g>\n")
}

func renderHull(buf *bytes.Buffer, l io.Layer) {
	if len(l.Hull) == 0 {
		return
	}
	fmt.Fprintf(buf, `  <g class="hull" id="hull-%d" stroke="%s" stroke-width="0.8" stroke-dasharray="2 2" opacity="0.6">`+"\n",
		l.Index, layerColor(l.Index))
	for _, s := range l.Hull {
		writeLine(buf, s.From.X, s.From.Y, s.To.X, s.To.Y)
	}
	buf.WriteString("  </g>\n")
}
