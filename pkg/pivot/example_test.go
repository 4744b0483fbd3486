package pivot_test

import (
	"fmt"

	"github.com/matzehuels/onion/pkg/pivot"
	"github.com/matzehuels/onion/pkg/pointset"
)

func Example() {
	set, _ := pointset.New([]*pointset.Node{
		{ID: 1, X: 0, Y: 0},
		{ID: 2, X: 10, Y: 0},
		{ID: 3, X: 5, Y: 8},
	})
	_ = set.Rebuild(20)

	anchor, _ := set.Node(1)
	seed, ok := pivot.FindSeed(anchor, 20)
	if !ok {
		return
	}
	ring, err := pivot.NewRoller(set, seed).Run()
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(ring.Edges(), ring.Closed())
	// Output: [1→2 2→3 3→1] true
}

func ExampleRoller_Edges() {
	set, _ := pointset.New([]*pointset.Node{
		{ID: 1, X: 0, Y: 0},
		{ID: 2, X: 10, Y: 0},
	})
	_ = set.Rebuild(20)

	anchor, _ := set.Node(1)
	seed, _ := pivot.FindSeed(anchor, 20)
	for edge, err := range pivot.NewRoller(set, seed).Edges() {
		if err != nil {
			break
		}
		fmt.Println(edge)
	}
	// Output:
	// 1→2
	// 2→1
}
