package pointset

import (
	"math"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/onion/pkg/errors"
)

// Node is a point of the cloud. Neighbors are derived data: they are rebuilt
// whenever the range or the active subset changes and are not part of the
// node's identity.
type Node struct {
	ID int
	X  float64
	Y  float64

	neighbors []*Node
}

// Pos returns the node position as a vector.
func (n *Node) Pos() r2.Vec { return r2.Vec{X: n.X, Y: n.Y} }

// Neighbors returns the current neighbors in enumeration order.
// The returned slice must not be modified.
func (n *Node) Neighbors() []*Node { return n.neighbors }

// Degree returns the number of current neighbors.
func (n *Node) Degree() int { return len(n.neighbors) }

// HasNeighbor reports whether m is currently a neighbor of n.
func (n *Node) HasNeighbor(m *Node) bool { return slices.Contains(n.neighbors, m) }

// Set is an arena of nodes addressed by ID.
//
// The zero value is an empty set. A Set is not safe for concurrent use;
// concurrent peeling must operate on disjoint sets.
type Set struct {
	nodes []*Node
	byID  map[int]*Node
	rng   float64
}

// New creates a set from nodes, keeping their order.
// It returns an INVALID_INPUT error for nil nodes, duplicate IDs or
// non-finite coordinates.
func New(nodes []*Node) (*Set, error) {
	s := &Set{
		nodes: make([]*Node, 0, len(nodes)),
		byID:  make(map[int]*Node, len(nodes)),
	}
	for _, n := range nodes {
		if n == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "nil node")
		}
		if _, dup := s.byID[n.ID]; dup {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate node id %d", n.ID)
		}
		if !finite(n.X) || !finite(n.Y) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "node %d has non-finite coordinates", n.ID)
		}
		s.nodes = append(s.nodes, n)
		s.byID[n.ID] = n
	}
	return s, nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Len returns the number of nodes in the set.
func (s *Set) Len() int { return len(s.nodes) }

// Nodes returns the nodes in insertion order.
// The returned slice must not be modified.
func (s *Set) Nodes() []*Node { return s.nodes }

// Node returns the node with the given ID.
func (s *Set) Node(id int) (*Node, bool) {
	n, ok := s.byID[id]
	return n, ok
}

// IDs returns the node IDs in insertion order.
func (s *Set) IDs() []int {
	ids := make([]int, len(s.nodes))
	for i, n := range s.nodes {
		ids[i] = n.ID
	}
	return ids
}

// Range returns the range used by the last Rebuild, or 0 if none.
func (s *Set) Range() float64 { return s.rng }

// Rebuild recomputes the neighbor graph of the whole set at range r.
func (s *Set) Rebuild(r float64) error {
	if err := Build(s.nodes, r); err != nil {
		return err
	}
	s.rng = r
	return nil
}

// EdgeCount returns the number of undirected neighbor pairs.
func (s *Set) EdgeCount() int {
	total := 0
	for _, n := range s.nodes {
		total += len(n.neighbors)
	}
	return total / 2
}

// Subset returns a new set holding the nodes whose IDs are in ids, keeping
// this set's order. Unknown IDs are ignored. Nodes are shared, not copied,
// so the subset's Rebuild overwrites their neighbor lists.
func (s *Set) Subset(ids mapset.Set[int]) *Set {
	return s.filter(func(n *Node) bool { return ids.Contains(n.ID) })
}

// Without returns a new set holding every node whose ID is not in ids.
func (s *Set) Without(ids mapset.Set[int]) *Set {
	return s.filter(func(n *Node) bool { return !ids.Contains(n.ID) })
}

func (s *Set) filter(keep func(*Node) bool) *Set {
	out := &Set{byID: make(map[int]*Node)}
	for _, n := range s.nodes {
		if keep(n) {
			out.nodes = append(out.nodes, n)
			out.byID[n.ID] = n
		}
	}
	return out
}

// Positions returns the node positions in insertion order.
func (s *Set) Positions() []r2.Vec { return Positions(s.nodes) }

// Positions returns the positions of nodes, in order.
func Positions(nodes []*Node) []r2.Vec {
	out := make([]r2.Vec, len(nodes))
	for i, n := range nodes {
		out[i] = n.Pos()
	}
	return out
}

// Build makes nodes[i] and nodes[j] neighbors iff their distance is at most r.
// Every neighbor list in nodes is cleared first. Each node's neighbors end up
// in the order the nodes appear in the slice.
//
// Build returns an INVALID_INPUT error when r is negative or not finite; the
// neighbor lists are left untouched in that case.
func Build(nodes []*Node, r float64) error {
	if r < 0 || !finite(r) {
		return errors.New(errors.ErrCodeInvalidInput, "range must be a finite non-negative number, got %g", r)
	}
	for _, n := range nodes {
		n.neighbors = n.neighbors[:0]
	}

	r2max := r * r
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			a, b := nodes[i], nodes[j]
			dx, dy := a.X-b.X, a.Y-b.Y
			if dx*dx+dy*dy <= r2max {
				a.neighbors = append(a.neighbors, b)
				b.neighbors = append(b.neighbors, a)
			}
		}
	}
	return nil
}
