// Package peel extracts successive boundary rings from a point set.
//
// Each layer rebuilds the neighbor graph of the nodes still in play at the
// layer's diameter, traces one ring with the rolling disc, and removes the
// ring's nodes before the next layer. Peeling ends when the schedule runs out
// of diameters, no nodes remain, or a layer finds no ring.
//
//	layers, err := peel.PeelRepeatedly(ctx, set, peel.Diameters(60, 40, 40))
//
// A node is removed by exactly one layer. [Pool] enforces this and is safe to
// share between goroutines peeling disjoint subsets.
package peel

import (
	"cmp"
	"context"
	"io"
	"math"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/onion/pkg/errors"
	"github.com/matzehuels/onion/pkg/hull"
	"github.com/matzehuels/onion/pkg/observability"
	"github.com/matzehuels/onion/pkg/pivot"
	"github.com/matzehuels/onion/pkg/pointset"
)

// Status describes how a layer ended.
type Status int

const (
	// Failed means the layer was aborted by an error. It is the zero value.
	Failed Status = iota
	// RingFound means the layer traced a ring, closed or open.
	RingFound
	// NoFurtherLayer means no node of the layer admits a seed disc.
	NoFurtherLayer
)

func (s Status) String() string {
	switch s {
	case Failed:
		return "failed"
	case RingFound:
		return "ring"
	case NoFurtherLayer:
		return "no further layer"
	}
	return "unknown"
}

// Layer is the outcome of peeling one ring.
type Layer struct {
	Index    int
	Diameter float64
	Status   Status

	// Ring is nil when Status is NoFurtherLayer.
	Ring *pivot.Ring

	// OnRing and Remaining partition the layer's input ids, in input order.
	OnRing    []int
	Remaining []int

	// Hull is set only with WithHull and a found ring.
	Hull []hull.Segment
}

// Closed reports whether the layer produced a closed ring.
func (l Layer) Closed() bool { return l.Ring != nil && l.Ring.Closed() }

// Option configures Peel and PeelRepeatedly.
type Option func(*config)

type config struct {
	anchor    int
	hasAnchor bool
	hull      bool
	logger    *log.Logger
	hooks     observability.PeelHooks
}

// WithAnchor starts the first ring at the node with the given id instead of
// the leftmost node that admits a seed.
func WithAnchor(id int) Option {
	return func(c *config) { c.anchor, c.hasAnchor = id, true }
}

// WithHull annotates each found layer with the convex hull of its ring nodes.
func WithHull() Option {
	return func(c *config) { c.hull = true }
}

// WithLogger sets the logger for per-layer debug output.
func WithLogger(l *log.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithHooks overrides the globally registered peel hooks.
func WithHooks(h observability.PeelHooks) Option {
	return func(c *config) { c.hooks = h }
}

func newConfig(opts []Option) *config {
	c := &config{}
	for _, o := range opts {
		o(c)
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	if c.hooks == nil {
		c.hooks = observability.Peel()
	}
	return c
}

// Peel rebuilds the neighbor graph of set at diameter and traces one ring.
//
// Without WithAnchor, candidate anchors are tried in (x, y, id) order, so the
// first ring starts at the leftmost node that admits a seed and follows the
// outer boundary. A layer without any seed is reported with Status
// NoFurtherLayer and every id in Remaining; that is not an error.
func Peel(ctx context.Context, set *pointset.Set, diameter float64, opts ...Option) (Layer, error) {
	return peelLayer(ctx, set, diameter, 0, newConfig(opts))
}

func peelLayer(ctx context.Context, set *pointset.Set, diameter float64, index int, cfg *config) (layer Layer, err error) {
	failed := Layer{Index: index, Diameter: diameter, Status: Failed}
	if !(diameter > 0) || math.IsInf(diameter, 0) {
		return failed, errors.New(errors.ErrCodeInvalidInput, "diameter must be positive and finite, got %g", diameter)
	}

	start := time.Now()
	cfg.hooks.OnLayerStart(ctx, index, diameter, set.Len())
	defer func() {
		edges, closed := 0, false
		if layer.Ring != nil {
			edges, closed = layer.Ring.Len(), layer.Ring.Closed()
		}
		cfg.hooks.OnLayerComplete(ctx, index, diameter, edges, closed, time.Since(start), err)
	}()

	if err := set.Rebuild(diameter); err != nil {
		return failed, err
	}

	anchors, err := anchorOrder(set, cfg)
	if err != nil {
		return failed, err
	}

	layer = Layer{Index: index, Diameter: diameter, Status: NoFurtherLayer}
	for _, anchor := range anchors {
		ring, ok, err := pivot.Trace(set, anchor, diameter)
		if err != nil {
			return failed, err
		}
		if ok {
			layer.Status = RingFound
			layer.Ring = &ring
			break
		}
	}

	if layer.Ring == nil {
		layer.Remaining = set.IDs()
		cfg.logger.Debug("no further layer", "index", index, "diameter", diameter, "nodes", set.Len())
		return layer, nil
	}

	var onRing []*pointset.Node
	for _, n := range set.Nodes() {
		if layer.Ring.Contains(n.ID) {
			layer.OnRing = append(layer.OnRing, n.ID)
			onRing = append(onRing, n)
		} else {
			layer.Remaining = append(layer.Remaining, n.ID)
		}
	}
	if cfg.hull {
		layer.Hull = hull.Of(pointset.Positions(onRing))
	}

	cfg.logger.Debug("peeled layer",
		"index", index,
		"diameter", diameter,
		"anchor", layer.Ring.Anchor(),
		"edges", layer.Ring.Len(),
		"closed", layer.Ring.Closed(),
		"remaining", len(layer.Remaining))
	return layer, nil
}

// anchorOrder returns the nodes to try as seed anchors.
func anchorOrder(set *pointset.Set, cfg *config) ([]*pointset.Node, error) {
	if cfg.hasAnchor {
		n, ok := set.Node(cfg.anchor)
		if !ok {
			return nil, errors.New(errors.ErrCodeNotFound, "anchor node %d is not in the point set", cfg.anchor)
		}
		return []*pointset.Node{n}, nil
	}
	return Anchors(set), nil
}

// Anchors returns the nodes of set in the order they are tried as seed
// anchors: by x, then y, then id.
func Anchors(set *pointset.Set) []*pointset.Node {
	nodes := slices.Clone(set.Nodes())
	slices.SortStableFunc(nodes, func(a, b *pointset.Node) int {
		return cmp.Or(cmp.Compare(a.X, b.X), cmp.Compare(a.Y, b.Y), cmp.Compare(a.ID, b.ID))
	})
	return nodes
}

// PeelRepeatedly peels layers until schedule supplies no diameter, no nodes
// remain, or a layer finds no ring. The terminating NoFurtherLayer layer, if
// any, is included in the result. WithAnchor applies to the first layer only.
//
// Cancelling ctx stops peeling between layers; the layers peeled so far are
// returned with the context error.
func PeelRepeatedly(ctx context.Context, set *pointset.Set, schedule Schedule, opts ...Option) ([]Layer, error) {
	cfg := newConfig(opts)
	pool := NewPool(set.IDs())
	current := set

	var layers []Layer
	for index := 0; current.Len() > 0; index++ {
		if err := ctx.Err(); err != nil {
			return layers, err
		}
		var prev *Layer
		if len(layers) > 0 {
			prev = &layers[len(layers)-1]
		}
		diameter, ok := schedule.Next(index, prev)
		if !ok {
			break
		}

		layer, err := peelLayer(ctx, current, diameter, index, cfg)
		if err != nil {
			return layers, err
		}
		layers = append(layers, layer)
		if layer.Status == NoFurtherLayer {
			break
		}
		if err := pool.Claim(index, layer.OnRing); err != nil {
			return layers, err
		}

		cfg.hasAnchor = false
		current = current.Without(layer.Ring.NodeIDs())
	}
	return layers, nil
}
