// Package hull computes planar convex hulls with Andrew's monotone chain.
//
// Hulls are a diagnostic overlay for peeled rings and never feed back into
// the boundary search.
package hull

import (
	"slices"

	"gonum.org/v1/gonum/spatial/r2"
)

// Segment is one hull edge.
type Segment struct {
	From r2.Vec `json:"from"`
	To   r2.Vec `json:"to"`
}

// Polygon returns the hull vertices in counter-clockwise order, starting at
// the leftmost point (lowest on ties). Duplicate points are merged and points strictly
// inside a hull edge are dropped. Fewer than three distinct points yield the
// distinct points themselves.
func Polygon(points []r2.Vec) []r2.Vec {
	pts := slices.Clone(points)
	slices.SortFunc(pts, compare)
	pts = slices.Compact(pts)
	if len(pts) < 3 {
		return pts
	}

	out := make([]r2.Vec, 0, 2*len(pts))
	// Lower chain.
	for _, p := range pts {
		for len(out) >= 2 && cross(out[len(out)-2], out[len(out)-1], p) <= 0 {
			out = out[:len(out)-1]
		}
		out = append(out, p)
	}
	// Upper chain.
	lower := len(out) + 1
	for i := len(pts) - 2; i >= 0; i-- {
		p := pts[i]
		for len(out) >= lower && cross(out[len(out)-2], out[len(out)-1], p) <= 0 {
			out = out[:len(out)-1]
		}
		out = append(out, p)
	}
	// Collinear input collapses to the two extremes.
	return out[:len(out)-1]
}

// Of returns the hull as edges in counter-clockwise order. One distinct point
// or none yields no edges; two yield the segment in both directions.
func Of(points []r2.Vec) []Segment {
	poly := Polygon(points)
	if len(poly) < 2 {
		return nil
	}
	segs := make([]Segment, len(poly))
	for i, p := range poly {
		segs[i] = Segment{From: p, To: poly[(i+1)%len(poly)]}
	}
	return segs
}

// Contains reports whether p lies inside or on the hull polygon poly, as
// returned by [Polygon]. Points within a small relative tolerance of an edge
// count as on it.
func Contains(poly []r2.Vec, p r2.Vec) bool {
	switch len(poly) {
	case 0:
		return false
	case 1:
		return r2.Norm2(r2.Sub(p, poly[0])) <= tolerance(poly[0], poly[0])
	}
	for i, a := range poly {
		b := poly[(i+1)%len(poly)]
		if cross(a, b, p) < -tolerance(a, b) {
			return false
		}
	}
	if len(poly) == 2 {
		return onSegment(poly[0], poly[1], p)
	}
	return true
}

func onSegment(a, b, p r2.Vec) bool {
	ab := r2.Sub(b, a)
	t := r2.Dot(r2.Sub(p, a), ab)
	return t >= -tolerance(a, b) && t <= r2.Norm2(ab)+tolerance(a, b)
}

func tolerance(a, b r2.Vec) float64 {
	scale := max(1, r2.Norm2(a), r2.Norm2(b))
	return 1e-9 * scale
}

// cross returns the z component of (b-a)×(c-a); positive when a, b, c turn
// counter-clockwise.
func cross(a, b, c r2.Vec) float64 {
	return r2.Cross(r2.Sub(b, a), r2.Sub(c, a))
}

func compare(a, b r2.Vec) int {
	switch {
	case a.X < b.X:
		return -1
	case a.X > b.X:
		return 1
	case a.Y < b.Y:
		return -1
	case a.Y > b.Y:
		return 1
	}
	return 0
}
