package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
)

// MemoryStore keeps point sets in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	sets map[string]*PointSet
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sets: make(map[string]*PointSet)}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*PointSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.sets[id]
	if !ok {
		return nil, notFound(id)
	}
	return clone(p), nil
}

func (s *MemoryStore) Put(_ context.Context, p *PointSet) error {
	p, err := prepare(p)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets[p.ID] = p
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Summary, 0, len(s.sets))
	for _, p := range s.sets {
		out = append(out, p.Summary())
	}
	slices.SortFunc(out, func(a, b Summary) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sets[id]; !ok {
		return notFound(id)
	}
	delete(s.sets, id)
	return nil
}

func (s *MemoryStore) Close(context.Context) error { return nil }

func clone(p *PointSet) *PointSet {
	c := *p
	c.Document.Nodes = slices.Clone(p.Document.Nodes)
	return &c
}

var _ Store = (*MemoryStore)(nil)
