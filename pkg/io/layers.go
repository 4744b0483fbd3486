package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/onion/pkg/errors"
	"github.com/matzehuels/onion/pkg/hull"
	"github.com/matzehuels/onion/pkg/peel"
	"github.com/matzehuels/onion/pkg/pivot"
)

// Layers is a stored peeling result.
type Layers struct {
	Layers []Layer `json:"layers"`
}

// Layer is one stored peel layer.
type Layer struct {
	Index     int          `json:"index"`
	Diameter  float64      `json:"diameter"`
	Status    string       `json:"status"`
	Closed    bool         `json:"closed"`
	Anchor    *int         `json:"anchor,omitempty"` // nil without a ring
	Edges     []pivot.Edge `json:"edges"`
	OnRing    []int        `json:"on_ring"`
	Remaining []int        `json:"remaining"`
	Hull      []Segment    `json:"hull,omitempty"`
}

// Found reports whether the layer holds a ring.
func (l Layer) Found() bool { return l.Status == peel.RingFound.String() }

// XY is a stored coordinate.
type XY struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Segment is a stored hull edge.
type Segment struct {
	From XY `json:"from"`
	To   XY `json:"to"`
}

// FromPeel converts peel results into their stored form.
func FromPeel(layers []peel.Layer) Layers {
	out := Layers{Layers: make([]Layer, len(layers))}
	for i, l := range layers {
		rec := Layer{
			Index:     l.Index,
			Diameter:  l.Diameter,
			Status:    l.Status.String(),
			Edges:     []pivot.Edge{},
			OnRing:    nonNil(l.OnRing),
			Remaining: nonNil(l.Remaining),
			Hull:      segments(l.Hull),
		}
		if l.Ring != nil {
			rec.Closed = l.Ring.Closed()
			anchor := l.Ring.Anchor()
			rec.Anchor = &anchor
			if edges := l.Ring.Edges(); len(edges) > 0 {
				rec.Edges = edges
			}
		}
		out.Layers[i] = rec
	}
	return out
}

func nonNil(ids []int) []int {
	if ids == nil {
		return []int{}
	}
	return ids
}

func segments(segs []hull.Segment) []Segment {
	if len(segs) == 0 {
		return nil
	}
	out := make([]Segment, len(segs))
	for i, s := range segs {
		out[i] = Segment{From: XY{s.From.X, s.From.Y}, To: XY{s.To.X, s.To.Y}}
	}
	return out
}

// ReadLayersJSON decodes a layers document from r.
func ReadLayersJSON(r io.Reader) (Layers, error) {
	var out Layers
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return Layers{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode layers")
	}
	for i, l := range out.Layers {
		if l.Index != i {
			return Layers{}, errors.New(errors.ErrCodeInvalidFormat, "layer %d has index %d", i, l.Index)
		}
	}
	return out, nil
}

// ImportLayersJSON reads a layers document from the file at path.
func ImportLayersJSON(path string) (Layers, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Layers{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return Layers{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadLayersJSON(f)
}

// WriteLayersJSON encodes layers as indented JSON to w.
func WriteLayersJSON(layers Layers, w io.Writer) error {
	return encode(layers, w)
}

// ExportLayersJSON writes layers to a JSON file at path.
func ExportLayersJSON(layers Layers, path string) error {
	return exportFile(path, func(w io.Writer) error { return WriteLayersJSON(layers, w) })
}
