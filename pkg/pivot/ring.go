package pivot

import (
	"fmt"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
)

// Edge is a boundary edge, directed in traversal order.
type Edge struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func (e Edge) String() string { return fmt.Sprintf("%d→%d", e.From, e.To) }

// Ring is the result of one traversal. It is a snapshot: accessors return
// copies and a Ring never changes once built.
type Ring struct {
	diameter float64
	anchor   int
	edges    []Edge
	ids      mapset.Set[int]
	closed   bool
}

func newRing(diameter float64, anchor int, edges []Edge, closed bool) Ring {
	ids := mapset.NewThreadUnsafeSet[int]()
	for _, e := range edges {
		ids.Add(e.From)
	}
	if len(edges) == 0 {
		ids.Add(anchor)
	}
	return Ring{
		diameter: diameter,
		anchor:   anchor,
		edges:    slices.Clone(edges),
		ids:      ids,
		closed:   closed,
	}
}

// Diameter returns the disc diameter the ring was traced with.
func (r Ring) Diameter() float64 { return r.diameter }

// Anchor returns the id of the seed anchor.
func (r Ring) Anchor() int { return r.anchor }

// Closed reports whether the traversal returned to its first edge or to a
// disc position it had already passed. An open ring is a chain that ended
// where no empty disc position existed.
func (r Ring) Closed() bool { return r.closed }

// Len returns the number of edges.
func (r Ring) Len() int { return len(r.edges) }

// Edges returns the edges in traversal order.
func (r Ring) Edges() []Edge { return slices.Clone(r.edges) }

// NodeIDs returns the ids appearing as the From endpoint of an edge. A ring
// without edges holds just its anchor.
func (r Ring) NodeIDs() mapset.Set[int] {
	if r.ids == nil {
		return mapset.NewThreadUnsafeSet[int]()
	}
	return r.ids.Clone()
}

// Contains reports whether id lies on the ring.
func (r Ring) Contains(id int) bool { return r.ids != nil && r.ids.Contains(id) }

// Path returns the visited node ids in order. For a closed ring the first id
// is not repeated at the end.
func (r Ring) Path() []int {
	if len(r.edges) == 0 {
		return []int{r.anchor}
	}
	out := make([]int, 0, len(r.edges)+1)
	for _, e := range r.edges {
		out = append(out, e.From)
	}
	if !r.closed {
		out = append(out, r.edges[len(r.edges)-1].To)
	}
	return out
}
