package pointset

import (
	"math"
	"testing"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/matzehuels/onion/pkg/errors"
)

func testNodes() []*Node {
	return []*Node{
		{ID: 1, X: 0, Y: 0},
		{ID: 2, X: 3, Y: 4}, // 5 from 1
		{ID: 3, X: 10, Y: 0},
		{ID: 4, X: 6, Y: 8}, // 10 from 1
	}
}

func neighborIDs(n *Node) []int {
	var ids []int
	for _, m := range n.Neighbors() {
		ids = append(ids, m.ID)
	}
	return ids
}

func TestNew(t *testing.T) {
	set, err := New(testNodes())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if set.Len() != 4 {
		t.Errorf("Len() = %d, want 4", set.Len())
	}
	if n, ok := set.Node(3); !ok || n.X != 10 {
		t.Errorf("Node(3) = %v, %v", n, ok)
	}
	if _, ok := set.Node(99); ok {
		t.Error("Node(99) found, want missing")
	}
}

func TestNewRejects(t *testing.T) {
	tests := []struct {
		name  string
		nodes []*Node
	}{
		{"DuplicateID", []*Node{{ID: 1}, {ID: 2, X: 1}, {ID: 1, X: 2}}},
		{"NilNode", []*Node{{ID: 1}, nil}},
		{"NaN", []*Node{{ID: 1, X: math.NaN()}}},
		{"Inf", []*Node{{ID: 1, Y: math.Inf(1)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.nodes)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("New() err = %v, want %s", err, errors.ErrCodeInvalidInput)
			}
		})
	}
}

func TestBuildSymmetric(t *testing.T) {
	nodes := testNodes()
	if err := Build(nodes, 10); err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, a := range nodes {
		for _, b := range nodes {
			if a == b {
				continue
			}
			dx, dy := a.X-b.X, a.Y-b.Y
			want := dx*dx+dy*dy <= 100
			if got := a.HasNeighbor(b); got != want {
				t.Errorf("%d.HasNeighbor(%d) = %v, want %v", a.ID, b.ID, got, want)
			}
			if a.HasNeighbor(b) != b.HasNeighbor(a) {
				t.Errorf("neighbor relation between %d and %d is not symmetric", a.ID, b.ID)
			}
		}
		if a.HasNeighbor(a) {
			t.Errorf("node %d is its own neighbor", a.ID)
		}
	}
}

func TestBuildBoundaryInclusive(t *testing.T) {
	nodes := testNodes()
	_ = Build(nodes, 5)
	if !nodes[0].HasNeighbor(nodes[1]) {
		t.Error("nodes exactly one range apart should be neighbors")
	}
	if nodes[0].HasNeighbor(nodes[3]) {
		t.Error("nodes 10 apart should not be neighbors at range 5")
	}
}

func TestBuildOrder(t *testing.T) {
	nodes := testNodes()
	_ = Build(nodes, 100)
	got := neighborIDs(nodes[2])
	want := []int{1, 2, 4}
	if len(got) != len(want) {
		t.Fatalf("neighbors of 3 = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("neighbors of 3 = %v, want %v", got, want)
			break
		}
	}
}

func TestBuildResets(t *testing.T) {
	nodes := testNodes()
	_ = Build(nodes, 100)
	_ = Build(nodes, 5)

	if got := nodes[0].Degree(); got != 1 {
		t.Errorf("after shrinking range, degree of 1 = %d, want 1", got)
	}

	// Rebuilding at the same range gives the same graph.
	before := neighborIDs(nodes[1])
	_ = Build(nodes, 5)
	after := neighborIDs(nodes[1])
	if len(before) != len(after) {
		t.Errorf("Build not idempotent: %v then %v", before, after)
	}
}

func TestBuildInvalidRange(t *testing.T) {
	nodes := testNodes()
	_ = Build(nodes, 100)
	for _, r := range []float64{-1, math.NaN(), math.Inf(1)} {
		if err := Build(nodes, r); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("Build(%v) err = %v, want %s", r, err, errors.ErrCodeInvalidInput)
		}
	}
	if nodes[0].Degree() != 3 {
		t.Errorf("failed Build changed the graph: degree = %d, want 3", nodes[0].Degree())
	}
}

func TestWithoutRebuild(t *testing.T) {
	set, _ := New(testNodes())
	if err := set.Rebuild(10); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	if got := set.EdgeCount(); got != 6 {
		t.Errorf("EdgeCount() = %d, want 6", got)
	}

	inner := set.Without(mapset.NewSet(2))
	if err := inner.Rebuild(10); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	if inner.Len() != 3 {
		t.Errorf("Without().Len() = %d, want 3", inner.Len())
	}
	if got := inner.EdgeCount(); got != 3 {
		t.Errorf("EdgeCount() after removal = %d, want 3", got)
	}
	if inner.Range() != 10 {
		t.Errorf("Range() = %v, want 10", inner.Range())
	}
	for _, n := range inner.Nodes() {
		for _, m := range n.Neighbors() {
			if m.ID == 2 {
				t.Errorf("node %d still neighbors removed node 2", n.ID)
			}
		}
	}
}

func TestSubset(t *testing.T) {
	set, _ := New(testNodes())
	sub := set.Subset(mapset.NewSet(4, 1, 42))
	ids := sub.IDs()
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 4 {
		t.Errorf("Subset().IDs() = %v, want [1 4]", ids)
	}
}
