package cache

// Keyer derives cache keys. Implementations must be deterministic.
type Keyer interface {
	// PeelKey returns the key of the layers computed for a point set.
	PeelKey(setHash string, opts PeelKeyOpts) string

	// ArtifactKey returns the key of a rendered artifact of a peel result.
	ArtifactKey(layersHash string, opts ArtifactKeyOpts) string
}

// PeelKeyOpts lists every option that changes the peeled layers.
type PeelKeyOpts struct {
	Diameters []float64 `json:"diameters"`
	MaxLayers int       `json:"max_layers"`
	Anchor    *int      `json:"anchor,omitempty"`
	Exclude   []int     `json:"exclude,omitempty"`
	Hull      bool      `json:"hull"`
}

// ArtifactKeyOpts lists every option that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format    string  `json:"format"`
	Neighbors bool    `json:"neighbors"`
	Hulls     bool    `json:"hulls"`
	Labels    bool    `json:"labels"`
	Scale     float64 `json:"scale,omitempty"`
}

// DefaultKeyer hashes key options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// PeelKey implements Keyer.
func (DefaultKeyer) PeelKey(setHash string, opts PeelKeyOpts) string {
	return hashKey("peel", setHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layersHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layersHash, opts)
}
