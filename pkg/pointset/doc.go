// Package pointset holds the planar nodes the boundary search works on and
// the proximity graph that connects them.
//
// # Nodes and Sets
//
// A [Node] has a stable integer ID and a position. A [Set] is an arena of
// nodes addressed by ID; it rejects duplicate IDs at construction and keeps
// nodes in insertion order, which is also the order neighbors are enumerated
// in. That order is what makes tie-breaks in the pivot search reproducible.
//
// # Neighbor Graph
//
// Two nodes are neighbors iff their Euclidean distance is at most the active
// range (the disc diameter). [Build] recomputes the relation for a subset of
// nodes from scratch; it first clears every neighbor list in the subset, so
// repeated calls with different ranges or subsets are never cumulative:
//
//	set, _ := pointset.New(nodes)
//	_ = set.Rebuild(20)         // full set at diameter 20
//	inner := set.Without(ring)  // remaining nodes
//	_ = inner.Rebuild(12)       // next layer at a new diameter
//
// The construction is all-pairs O(n²), which is fine at the few hundred
// points this package targets.
package pointset
