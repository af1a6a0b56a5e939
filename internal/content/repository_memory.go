package content

import (
	"context"
	"sync"
	"time"
)

type InMemoryRepository struct {
	mu   sync.RWMutex
	docs map[string]Document
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{docs: make(map[string]Document)}
}

func (r *InMemoryRepository) Get(ctx context.Context, name string) (*Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.docs[name]
	if !ok {
		return nil, ErrNotFound
	}
	return &doc, nil
}

func (r *InMemoryRepository) Put(ctx context.Context, doc *Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc.UpdatedAt = time.Now().UTC()
	r.docs[doc.Name] = *doc
	return nil
}
