package peel

import (
	"sync"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/matzehuels/onion/pkg/errors"
)

// Pool tracks which nodes are still available to rings. Each id moves from
// the pool to exactly one layer. A Pool is safe for concurrent use.
type Pool struct {
	mu        sync.Mutex
	available mapset.Set[int]
	owner     map[int]int
}

// NewPool creates a pool holding ids.
func NewPool(ids []int) *Pool {
	return &Pool{
		available: mapset.NewThreadUnsafeSet(ids...),
		owner:     make(map[int]int, len(ids)),
	}
}

// Claim assigns ids to layer. Either every id is claimed or none is; an id
// that is unknown or already owned yields an INVARIANT_VIOLATION error.
func (p *Pool) Claim(layer int, ids []int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return errors.Invariant("node %d listed twice in one claim", id)
		}
		seen[id] = true
		if owner, taken := p.owner[id]; taken {
			return errors.Invariant("node %d already claimed by layer %d", id, owner)
		}
		if !p.available.Contains(id) {
			return errors.Invariant("node %d is not in the pool", id)
		}
	}
	for _, id := range ids {
		p.available.Remove(id)
		p.owner[id] = layer
	}
	return nil
}

// Owner returns the layer that claimed id.
func (p *Pool) Owner(id int) (layer int, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	layer, ok = p.owner[id]
	return layer, ok
}

// Available returns the number of unclaimed ids.
func (p *Pool) Available() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.available.Cardinality()
}
