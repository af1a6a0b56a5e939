package jobs

import (
	"context"
	"sort"
	"sync"
	"time"
)

type InMemoryRepository struct {
	mu       sync.RWMutex
	postings map[string]Posting
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{postings: make(map[string]Posting)}
}

func (r *InMemoryRepository) List(ctx context.Context, activeOnly bool) ([]Posting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []Posting{}
	for _, p := range r.postings {
		if activeOnly && !p.Active {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PostedAt.Equal(out[j].PostedAt) {
			return out[i].PostedAt.After(out[j].PostedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *InMemoryRepository) Get(ctx context.Context, id string) (*Posting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.postings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (r *InMemoryRepository) Create(ctx context.Context, p *Posting) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if p.PostedAt.IsZero() {
		p.PostedAt = now
	}
	p.UpdatedAt = now
	r.postings[p.ID] = *p
	return nil
}

func (r *InMemoryRepository) Update(ctx context.Context, p *Posting) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.postings[p.ID]
	if !ok {
		return ErrNotFound
	}
	p.PostedAt = existing.PostedAt
	p.UpdatedAt = time.Now().UTC()
	r.postings[p.ID] = *p
	return nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.postings[id]; !ok {
		return ErrNotFound
	}
	delete(r.postings, id)
	return nil
}
