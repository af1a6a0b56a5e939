package jobs

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("job posting not found")

// Repository lists postings newest first.
type Repository interface {
	List(ctx context.Context, activeOnly bool) ([]Posting, error)
	Get(ctx context.Context, id string) (*Posting, error)
	Create(ctx context.Context, p *Posting) error
	Update(ctx context.Context, p *Posting) error
	Delete(ctx context.Context, id string) error
}
