package pipeline

import (
	"context"

	mapset "github.com/deckarep/golang-set/v2"

	onionio "github.com/matzehuels/onion/pkg/io"
	"github.com/matzehuels/onion/pkg/peel"
)

// Peel peels doc with the schedule and options in opts.
// opts must have been validated.
func Peel(ctx context.Context, doc onionio.Document, opts Options) (onionio.Layers, error) {
	set, err := doc.PointSet()
	if err != nil {
		return onionio.Layers{}, err
	}
	if len(opts.Exclude) > 0 {
		excluded := mapset.NewThreadUnsafeSet(opts.Exclude...)
		before := set.Len()
		set = set.Without(excluded)
		opts.Logger.Debug("excluded nodes", "requested", excluded.Cardinality(), "removed", before-set.Len())
	}

	peelOpts := []peel.Option{peel.WithLogger(opts.Logger)}
	if opts.Anchor != nil {
		peelOpts = append(peelOpts, peel.WithAnchor(*opts.Anchor))
	}
	if opts.Hull {
		peelOpts = append(peelOpts, peel.WithHull())
	}

	layers, err := peel.PeelRepeatedly(ctx, set, peel.Reuse(opts.Diameters, opts.MaxLayers), peelOpts...)
	if err != nil {
		return onionio.Layers{}, err
	}
	return onionio.FromPeel(layers), nil
}
