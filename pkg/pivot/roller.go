package pivot

import (
	"iter"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/onion/pkg/errors"
	"github.com/matzehuels/onion/pkg/geom"
	"github.com/matzehuels/onion/pkg/pointset"
)

// Roller rolls a disc around the neighbor graph one edge at a time.
//
// A Roller is single-use and not safe for concurrent use. To replay a
// traversal, create a new Roller from the same seed.
type Roller struct {
	diameter float64
	anchor   *pointset.Node
	center   r2.Vec
	seed     int

	path   []Edge
	seen   map[rollState]struct{}
	limit  int
	done   bool
	closed bool
	err    error
}

// NewRoller starts a traversal at seed. The neighbor graph of set must be
// built at the seed's diameter; set only bounds the number of steps.
func NewRoller(set *pointset.Set, seed Seed) *Roller {
	return &Roller{
		diameter: seed.Circle.Diameter,
		anchor:   seed.Anchor,
		center:   seed.Circle.Center,
		seed:     seed.Anchor.ID,
		seen:     make(map[rollState]struct{}),
		limit:    4*set.EdgeCount() + 1,
	}
}

// rollState is a disc position reached by an edge. The next step depends only
// on it, so a repeated state means the traversal has entered a cycle.
type rollState struct {
	edge   Edge
	center r2.Vec
}

// Anchor returns the node the disc currently touches.
func (r *Roller) Anchor() *pointset.Node { return r.anchor }

// Center returns the current disc position.
func (r *Roller) Center() geom.Circle {
	return geom.Circle{Center: r.center, Diameter: r.diameter}
}

// Done reports whether the traversal has finished.
func (r *Roller) Done() bool { return r.done }

// Ring returns a snapshot of the edges emitted so far.
func (r *Roller) Ring() Ring {
	return newRing(r.diameter, r.seed, r.path, r.closed)
}

type rollCandidate struct {
	node   *pointset.Node
	center r2.Vec
	angle  float64
}

// Step performs one roll. It returns the emitted edge and true, or false once
// the traversal has closed or run out of candidates. After an error every
// further call returns the same error.
func (r *Roller) Step() (Edge, bool, error) {
	if r.err != nil {
		return Edge{}, false, r.err
	}
	if r.done {
		return Edge{}, false, nil
	}

	next, ok := r.nextCandidate()
	if !ok {
		r.done = true
		return Edge{}, false, nil
	}

	edge := Edge{From: r.anchor.ID, To: next.node.ID}
	state := rollState{edge: edge, center: next.center}
	if _, repeated := r.seen[state]; repeated || (len(r.path) > 0 && edge == r.path[0]) {
		r.done = true
		r.closed = true
		return Edge{}, false, nil
	}
	if len(r.path) >= r.limit {
		r.done = true
		r.err = errors.Invariant("traversal from node %d exceeded %d steps at diameter %g",
			r.seed, r.limit, r.diameter)
		return Edge{}, false, r.err
	}

	r.path = append(r.path, edge)
	r.seen[state] = struct{}{}
	r.anchor = next.node
	r.center = next.center
	return edge, true, nil
}

// nextCandidate picks the neighbor reached by the smallest forward rotation of
// the disc around the current anchor.
func (r *Roller) nextCandidate() (rollCandidate, bool) {
	pos := r.anchor.Pos()
	neighbors := r.anchor.Neighbors()
	others := pointset.Positions(neighbors)
	radius := r.diameter / 2
	current := geom.Bearing(pos, r.center)

	best := rollCandidate{angle: math.Inf(1)}
	for i, n := range neighbors {
		c1, c2, err := geom.Centers(pos, n.Pos(), r.diameter)
		if err != nil {
			continue
		}
		a1 := geom.ForwardAngle(current, geom.Bearing(pos, c1))
		a2 := geom.ForwardAngle(current, geom.Bearing(pos, c2))
		if a2 < a1 {
			c1, c2 = c2, c1
			a1, a2 = a2, a1
		}

		// The disc already touches n. Unless n lies ahead on the current
		// circle, rolling onto it would reverse along the incoming edge.
		// A pair exactly one diameter apart touches at a single position,
		// which the disc only reaches again after a full turn.
		if a1 == 0 {
			behind := geom.ForwardAngle(geom.Bearing(c1, n.Pos()), geom.Bearing(c1, pos))
			switch {
			case c1 == c2 || math.Abs(behind-180) <= geom.AngleEpsilon:
				a1 = 360
			case behind > 180:
				c1, a1 = c2, a2
				if a1 == 0 {
					a1 = 360
				}
			}
		}

		if !geom.IsEmpty(c1, others, i, radius) {
			continue
		}
		if a1 < best.angle {
			best = rollCandidate{node: n, center: c1, angle: a1}
		}
	}
	return best, best.node != nil
}

// Edges returns a lazy sequence of the remaining edges. Iteration ends when
// the traversal finishes; an invariant violation is yielded as a final
// (Edge{}, err) pair.
func (r *Roller) Edges() iter.Seq2[Edge, error] {
	return func(yield func(Edge, error) bool) {
		for {
			e, ok, err := r.Step()
			if err != nil {
				yield(Edge{}, err)
				return
			}
			if !ok || !yield(e, nil) {
				return
			}
		}
	}
}

// Run rolls until the traversal finishes and returns the resulting ring.
func (r *Roller) Run() (Ring, error) {
	for _, err := range r.Edges() {
		if err != nil {
			return Ring{}, err
		}
	}
	return r.Ring(), nil
}

// Trace finds a seed at anchor and runs a full traversal. ok is false when
// anchor has no seed at this diameter.
func Trace(set *pointset.Set, anchor *pointset.Node, diameter float64) (ring Ring, ok bool, err error) {
	seed, ok := FindSeed(anchor, diameter)
	if !ok {
		return Ring{}, false, nil
	}
	ring, err = NewRoller(set, seed).Run()
	if err != nil {
		return Ring{}, true, err
	}
	return ring, true, nil
}
