package content

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("content not found")

// Repository stores CMS documents by name.
type Repository interface {
	Get(ctx context.Context, name string) (*Document, error)
	Put(ctx context.Context, doc *Document) error
}
