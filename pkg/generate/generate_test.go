package generate

import (
	"testing"

	"github.com/matzehuels/onion/pkg/errors"
	"github.com/matzehuels/onion/pkg/pointset"
)

func TestPoints(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"Defaults", Options{}},
		{"Remainder", Options{Width: 100, Height: 50, Count: 25, GridWidth: 3, GridHeight: 2}},
		{"FewerThanCells", Options{Width: 100, Height: 100, Count: 3, GridWidth: 4, GridHeight: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			opts.SetDefaults()
			nodes, err := Points(opts)
			if err != nil {
				t.Fatalf("Points: %v", err)
			}
			if len(nodes) != opts.Count {
				t.Fatalf("len = %d, want %d", len(nodes), opts.Count)
			}
			for i, n := range nodes {
				if n.ID != i+1 {
					t.Errorf("nodes[%d].ID = %d, want %d", i, n.ID, i+1)
				}
				if n.X < 0 || n.X >= opts.Width || n.Y < 0 || n.Y >= opts.Height {
					t.Errorf("node %d at (%v, %v) outside %vx%v", n.ID, n.X, n.Y, opts.Width, opts.Height)
				}
			}
			if _, err := pointset.New(nodes); err != nil {
				t.Errorf("generated nodes rejected: %v", err)
			}
		})
	}
}

func TestPointsStratified(t *testing.T) {
	opts := Options{Width: 40, Height: 20, Count: 8, GridWidth: 4, GridHeight: 2, Seed: 7}
	nodes, err := Points(opts)
	if err != nil {
		t.Fatalf("Points: %v", err)
	}
	// One point per 10x10 cell, rows first.
	for i, n := range nodes {
		col, row := i%4, i/4
		if int(n.X/10) != col || int(n.Y/10) != row {
			t.Errorf("node %d at (%v, %v), want cell (%d, %d)", n.ID, n.X, n.Y, col, row)
		}
	}
}

func TestPointsDeterministic(t *testing.T) {
	a, _ := Points(Options{Width: 100, Height: 100, Count: 20, GridWidth: 2, GridHeight: 2, Seed: 9})
	b, _ := Points(Options{Width: 100, Height: 100, Count: 20, GridWidth: 2, GridHeight: 2, Seed: 9})
	c, _ := Points(Options{Width: 100, Height: 100, Count: 20, GridWidth: 2, GridHeight: 2, Seed: 10})
	same := true
	for i := range a {
		if a[i].ID != b[i].ID || a[i].X != b[i].X || a[i].Y != b[i].Y {
			t.Fatalf("node %d differs for equal seeds", i)
		}
		if a[i].X != c[i].X {
			same = false
		}
	}
	if same {
		t.Error("different seeds produced identical points")
	}
}

func TestValidate(t *testing.T) {
	bad := []Options{
		{Width: 0, Height: 10, GridWidth: 1, GridHeight: 1},
		{Width: 10, Height: 10, Count: -1, GridWidth: 1, GridHeight: 1},
		{Width: 10, Height: 10, GridWidth: 0, GridHeight: 1},
	}
	for _, o := range bad {
		if err := o.Validate(); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("Validate(%+v) = %v, want %s", o, err, errors.ErrCodeInvalidInput)
		}
	}
}
