// Package pipeline runs the load → peel → render pipeline shared by the CLI
// and the HTTP server.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read a point set document from a file or request body
//  2. Peel: peel boundary layers with a diameter schedule
//  3. Render: produce SVG, PNG, PDF, DOT or JSON output
//
// Each stage can be run on its own. The [Runner] adds caching: peel results
// are keyed by the content hash of the document and the peel options, and
// artifacts by the hash of the layers and the render options.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Diameters: []float64{60, 40},
//	    Formats:   []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, doc, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"math"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/onion/pkg/cache"
	"github.com/matzehuels/onion/pkg/errors"
	onionio "github.com/matzehuels/onion/pkg/io"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultDiameter is the disc diameter used when none is given.
	DefaultDiameter = 60.0

	// DefaultMaxLayers is the number of layers peeled when MaxLayers is zero.
	DefaultMaxLayers = 2

	// DefaultPNGScale is the PNG rasterization scale.
	DefaultPNGScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Peel options
	Diameters []float64 `json:"diameters,omitempty"`
	MaxLayers int       `json:"max_layers,omitempty"` // 0 = DefaultMaxLayers, negative = until no ring is found
	Anchor    *int      `json:"anchor,omitempty"`     // first-layer anchor id, nil = automatic
	Exclude   []int     `json:"exclude,omitempty"`    // node ids removed before peeling
	Hull      bool      `json:"hull,omitempty"`
	Refresh   bool      `json:"refresh,omitempty"`

	// Render options
	Formats   []string `json:"formats,omitempty"`
	Neighbors bool     `json:"neighbors,omitempty"`
	Labels    bool     `json:"labels,omitempty"`
	Scale     float64  `json:"scale,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run in logs and API responses.
	RunID string

	// DocHash is the content hash of the input document.
	DocHash string

	// Layers holds the peeled layers in stored form.
	Layers onionio.Layers

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	LayerCount int
	PeelTime   time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	PeelHit   bool `json:"peel_hit"`   // Whether the layers came from cache
	RenderHit bool `json:"render_hit"` // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: svg, png, pdf, dot, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateDiameters checks that every diameter is positive and finite.
func ValidateDiameters(ds []float64) error {
	for i, d := range ds {
		if !(d > 0) || math.IsInf(d, 0) {
			return errors.New(errors.ErrCodeInvalidInput, "diameter %d must be positive, got %g", i+1, d)
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForPeel(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetPeelDefaults sets default values for peeling.
func (o *Options) SetPeelDefaults() {
	if len(o.Diameters) == 0 {
		o.Diameters = []float64{DefaultDiameter}
	}
	if o.MaxLayers == 0 {
		o.MaxLayers = max(DefaultMaxLayers, len(o.Diameters))
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForPeel validates and sets defaults for peeling.
func (o *Options) ValidateForPeel() error {
	o.SetPeelDefaults()
	if err := ValidateDiameters(o.Diameters); err != nil {
		return err
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %g", o.Scale)
	}
	return ValidateFormats(o.Formats)
}

// PeelKeyOpts returns cache key options for peeling.
func (o *Options) PeelKeyOpts() cache.PeelKeyOpts {
	exclude := slices.Clone(o.Exclude)
	slices.Sort(exclude)
	return cache.PeelKeyOpts{
		Diameters: o.Diameters,
		MaxLayers: o.MaxLayers,
		Anchor:    o.Anchor,
		Exclude:   slices.Compact(exclude),
		Hull:      o.Hull,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:    format,
		Neighbors: o.Neighbors,
		Hulls:     o.Hull,
		Labels:    o.Labels,
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}
