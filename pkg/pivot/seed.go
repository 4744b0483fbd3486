package pivot

import (
	"slices"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/onion/pkg/geom"
	"github.com/matzehuels/onion/pkg/pointset"
)

// Seed is an anchor node together with an empty disc touching it.
type Seed struct {
	Anchor *pointset.Node
	Circle geom.Circle
}

type seedCandidate struct {
	center  r2.Vec
	bearing float64
}

// FindSeed returns the empty disc position around anchor whose center sees
// the anchor at the smallest bearing, measured counter-clockwise from +x.
//
// The neighbor graph must have been built at a range of at least diameter.
// ok is false when anchor has no neighbors or none of the tangent discs is
// empty; that is an expected outcome, not an error.
func FindSeed(anchor *pointset.Node, diameter float64) (seed Seed, ok bool) {
	neighbors := anchor.Neighbors()
	if len(neighbors) == 0 {
		return Seed{}, false
	}

	pos := anchor.Pos()
	others := pointset.Positions(neighbors)
	radius := diameter / 2

	var candidates []seedCandidate
	for i, n := range neighbors {
		c1, c2, err := geom.Centers(pos, n.Pos(), diameter)
		if err != nil {
			continue
		}
		for _, c := range [2]r2.Vec{c1, c2} {
			if geom.IsEmpty(c, others, i, radius) {
				candidates = append(candidates, seedCandidate{center: c, bearing: geom.Bearing(c, pos)})
			}
		}
	}
	if len(candidates) == 0 {
		return Seed{}, false
	}

	slices.SortStableFunc(candidates, func(a, b seedCandidate) int {
		switch {
		case a.bearing < b.bearing:
			return -1
		case a.bearing > b.bearing:
			return 1
		}
		return 0
	})
	return Seed{
		Anchor: anchor,
		Circle: geom.Circle{Center: candidates[0].center, Diameter: diameter},
	}, true
}
