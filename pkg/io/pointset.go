package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/onion/pkg/errors"
	"github.com/matzehuels/onion/pkg/pointset"
)

// Document is a stored point set.
type Document struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Range  float64 `json:"range"`
	Nodes  []Point `json:"nodes"`
}

// Point is a stored node.
type Point struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	ID int     `json:"id"`
}

// NewDocument captures nodes into a document.
func NewDocument(width, height, rng float64, nodes []*pointset.Node) Document {
	doc := Document{Width: width, Height: height, Range: rng, Nodes: make([]Point, len(nodes))}
	for i, n := range nodes {
		doc.Nodes[i] = Point{X: n.X, Y: n.Y, ID: n.ID}
	}
	return doc
}

// PointSet creates a fresh node set from the document. The neighbor graph is
// not built.
func (d Document) PointSet() (*pointset.Set, error) {
	nodes := make([]*pointset.Node, len(d.Nodes))
	for i, p := range d.Nodes {
		nodes[i] = &pointset.Node{ID: p.ID, X: p.X, Y: p.Y}
	}
	return pointset.New(nodes)
}

// Validate checks the frame and range and that node ids are unique.
func (d Document) Validate() error {
	if d.Width < 0 || d.Height < 0 {
		return errors.New(errors.ErrCodeInvalidFormat, "negative frame size %gx%g", d.Width, d.Height)
	}
	if d.Range < 0 {
		return errors.New(errors.ErrCodeInvalidFormat, "negative range %g", d.Range)
	}
	seen := make(map[int]struct{}, len(d.Nodes))
	for _, p := range d.Nodes {
		if _, dup := seen[p.ID]; dup {
			return errors.New(errors.ErrCodeInvalidFormat, "duplicate node id %d", p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}

// ReadJSON decodes and validates a point set document from r.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode point set")
	}
	if err := doc.Validate(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// ImportJSON reads a point set document from the file at path.
func ImportJSON(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// WriteJSON encodes doc as indented JSON to w.
func WriteJSON(doc Document, w io.Writer) error {
	return encode(doc, w)
}

// ExportJSON writes doc to a JSON file at path.
func ExportJSON(doc Document, path string) error {
	return exportFile(path, func(w io.Writer) error { return WriteJSON(doc, w) })
}

func encode(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func exportFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
