// Package store persists point set documents for the HTTP API.
//
// Two backends implement [Store]:
//   - [MemoryStore]: in-process, for development and tests
//   - [MongoStore]: MongoDB, for deployments with more than one instance
//
// Stored point sets are immutable. Updating a set means storing a new one.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/onion/pkg/errors"
	"github.com/matzehuels/onion/pkg/io"
)

// PointSet is a stored point set document.
type PointSet struct {
	ID        string      `json:"id" bson:"_id"`
	Name      string      `json:"name,omitempty" bson:"name,omitempty"`
	Hash      string      `json:"hash" bson:"hash"`
	NodeCount int         `json:"node_count" bson:"node_count"`
	Document  io.Document `json:"document" bson:"document"`
	CreatedAt time.Time   `json:"created_at" bson:"created_at"`
}

// New wraps doc in a PointSet with a fresh ID.
func New(name string, doc io.Document, hash string) *PointSet {
	return &PointSet{
		ID:        uuid.NewString(),
		Name:      name,
		Hash:      hash,
		NodeCount: len(doc.Nodes),
		Document:  doc,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
}

// Summary is a PointSet without its nodes, as returned by List.
type Summary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	Hash      string    `json:"hash"`
	NodeCount int       `json:"node_count"`
	CreatedAt time.Time `json:"created_at"`
}

// Summary returns the listing form of p.
func (p *PointSet) Summary() Summary {
	return Summary{ID: p.ID, Name: p.Name, Hash: p.Hash, NodeCount: p.NodeCount, CreatedAt: p.CreatedAt}
}

// Store is the interface for point set storage backends.
type Store interface {
	// Get returns the point set with the given ID, or a NOT_FOUND error.
	Get(ctx context.Context, id string) (*PointSet, error)

	// Put stores p, replacing any set with the same ID.
	Put(ctx context.Context, p *PointSet) error

	// List returns summaries of every stored set, newest first.
	List(ctx context.Context) ([]Summary, error)

	// Delete removes the set with the given ID, or returns a NOT_FOUND error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "point set %s not found", id)
}

// prepare validates p and returns a copy with NodeCount filled in.
func prepare(p *PointSet) (*PointSet, error) {
	if p == nil || p.ID == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "point set without id")
	}
	if err := p.Document.Validate(); err != nil {
		return nil, err
	}
	c := clone(p)
	c.NodeCount = len(c.Document.Nodes)
	return c, nil
}
