// Package generate produces random demo point sets.
//
// Points are stratified over a grid so that dense clusters and empty areas
// are rare: every cell receives floor(count / cells) points, and the rest are
// scattered uniformly over the whole frame. IDs run from 1 to count in
// generation order.
package generate

import (
	"math/rand/v2"

	"github.com/matzehuels/onion/pkg/errors"
	"github.com/matzehuels/onion/pkg/pointset"
)

// Default generation parameters.
const (
	DefaultWidth      = 800.0
	DefaultHeight     = 600.0
	DefaultCount      = 200
	DefaultGridWidth  = 8
	DefaultGridHeight = 6
	DefaultSeed       = uint64(42)
)

// Options controls point generation.
type Options struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Count      int     `json:"count"`
	GridWidth  int     `json:"grid_width"`
	GridHeight int     `json:"grid_height"`
	Seed       uint64  `json:"seed,omitempty"`
}

// SetDefaults fills zero fields with their defaults.
func (o *Options) SetDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Count == 0 {
		o.Count = DefaultCount
	}
	if o.GridWidth == 0 {
		o.GridWidth = DefaultGridWidth
	}
	if o.GridHeight == 0 {
		o.GridHeight = DefaultGridHeight
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
}

// Validate checks that the options describe a non-empty frame and grid.
func (o Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "frame must have positive size, got %gx%g", o.Width, o.Height)
	}
	if o.Count < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "count must not be negative, got %d", o.Count)
	}
	if o.GridWidth <= 0 || o.GridHeight <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "grid must have positive size, got %dx%d", o.GridWidth, o.GridHeight)
	}
	return nil
}

// Points generates opts.Count nodes inside [0, Width) × [0, Height).
// The same options always yield the same nodes.
func Points(opts Options) ([]*pointset.Node, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0xdeadbeef))
	nodes := make([]*pointset.Node, 0, opts.Count)
	add := func(x, y float64) {
		nodes = append(nodes, &pointset.Node{ID: len(nodes) + 1, X: x, Y: y})
	}

	cellW := opts.Width / float64(opts.GridWidth)
	cellH := opts.Height / float64(opts.GridHeight)
	perCell := opts.Count / (opts.GridWidth * opts.GridHeight)
	for i := range opts.GridHeight {
		for j := range opts.GridWidth {
			x0, y0 := cellW*float64(j), cellH*float64(i)
			for range perCell {
				add(x0+rng.Float64()*cellW, y0+rng.Float64()*cellH)
			}
		}
	}
	for len(nodes) < opts.Count {
		add(rng.Float64()*opts.Width, rng.Float64()*opts.Height)
	}
	return nodes, nil
}
