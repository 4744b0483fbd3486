package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/onion/pkg/cache"
	onionio "github.com/matzehuels/onion/pkg/io"
	"github.com/matzehuels/onion/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the peel → render pipeline on doc with caching.
func (r *Runner) Execute(ctx context.Context, doc onionio.Document, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		RunID:   uuid.NewString(),
		DocHash: DocumentHash(doc),
	}
	logger := opts.Logger.With("run", result.RunID[:8])
	opts.Logger = logger
	result.Stats.NodeCount = len(doc.Nodes)

	// Stage 1: Peel
	peelStart := time.Now()
	layers, peelHit, err := r.PeelWithCacheInfo(ctx, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("peel: %w", err)
	}
	result.Layers = layers
	result.Stats.PeelTime = time.Since(peelStart)
	result.Stats.LayerCount = len(layers.Layers)
	result.CacheInfo.PeelHit = peelHit

	logger.Info("peeled layers",
		"nodes", result.Stats.NodeCount,
		"layers", result.Stats.LayerCount,
		"cached", peelHit,
		"duration", result.Stats.PeelTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, doc, layers, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// PeelWithCacheInfo peels doc with caching and returns cache hit info.
func (r *Runner) PeelWithCacheInfo(ctx context.Context, doc onionio.Document, opts Options) (onionio.Layers, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForPeel(); err != nil {
		return onionio.Layers{}, false, err
	}

	cacheKey := r.Keyer.PeelKey(DocumentHash(doc), opts.PeelKeyOpts())
	hooks := observability.Cache()

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			layers, err := onionio.ReadLayersJSON(bytes.NewReader(data))
			if err == nil {
				hooks.OnCacheHit(ctx, "peel")
				return layers, true, nil
			}
			// undecodable entry, recompute
		} else if err != nil {
			opts.Logger.Warn("cache read failed", "err", err)
		}
		hooks.OnCacheMiss(ctx, "peel")
	}

	pipeHooks := observability.Pipeline()
	pipeHooks.OnPeelStart(ctx, len(doc.Nodes))
	start := time.Now()
	layers, err := Peel(ctx, doc, opts)
	pipeHooks.OnPeelComplete(ctx, len(layers.Layers), time.Since(start), err)
	if err != nil {
		return onionio.Layers{}, false, err
	}

	var buf bytes.Buffer
	if err := onionio.WriteLayersJSON(layers, &buf); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, buf.Bytes(), cache.PeelTTL); err != nil {
			opts.Logger.Warn("cache write failed", "err", err)
		} else {
			hooks.OnCacheSet(ctx, "peel", buf.Len())
		}
	}

	return layers, false, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, doc onionio.Document, layers onionio.Layers, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	// Artifacts depend on the document geometry as well as the layers.
	layersData, err := json.Marshal(struct {
		Doc    string         `json:"doc"`
		Layers onionio.Layers `json:"layers"`
	}{DocumentHash(doc), layers})
	if err != nil {
		return nil, false, fmt.Errorf("serialize layers for cache key: %w", err)
	}
	keyHash := cache.Hash(layersData)
	hooks := observability.Cache()

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(keyHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			break
		}
		artifacts[format] = data
	}
	if len(artifacts) == len(opts.Formats) {
		hooks.OnCacheHit(ctx, "artifact")
		return artifacts, true, nil
	}
	hooks.OnCacheMiss(ctx, "artifact")

	pipeHooks := observability.Pipeline()
	pipeHooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(ctx, doc, layers, opts)
	pipeHooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(keyHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.ArtifactTTL); err == nil {
			hooks.OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// DocumentHash returns the content hash of doc. Documents that differ only
// in formatting hash equally.
func DocumentHash(doc onionio.Document) string {
	data, _ := json.Marshal(doc)
	return cache.Hash(data)
}
