package peel_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/onion/pkg/peel"
	"github.com/matzehuels/onion/pkg/pointset"
)

func ExamplePeelRepeatedly() {
	set, _ := pointset.New([]*pointset.Node{
		{ID: 1, X: 0, Y: 0},
		{ID: 2, X: 10, Y: 0},
		{ID: 3, X: 5, Y: 8},
		{ID: 4, X: 5, Y: 3},
	})

	layers, err := peel.PeelRepeatedly(context.Background(), set, peel.Reuse([]float64{20}, 0))
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, l := range layers {
		fmt.Println(l.Index, l.Status, l.OnRing, l.Remaining)
	}
	// Output:
	// 0 ring [1 2 3] [4]
	// 1 no further layer [] [4]
}
