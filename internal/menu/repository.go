package menu

import (
	"context"
	"errors"
)

var (
	ErrDishNotFound     = errors.New("dish not found")
	ErrDishExists       = errors.New("dish already exists")
	ErrCategoryNotFound = errors.New("category not found")
	ErrStorageDisabled  = errors.New("object storage is not configured")
)

// Repository defines all storage operations for the menu.
// ListDishes returns dishes in menu order; that order is what the
// customer sees after filtering.
type Repository interface {
	ListDishes(ctx context.Context) ([]Dish, error)
	GetDish(ctx context.Context, id string) (*Dish, error)
	CreateDish(ctx context.Context, dish *Dish) error
	UpdateDish(ctx context.Context, dish *Dish) error
	DeleteDish(ctx context.Context, id string) error
	SetDishImage(ctx context.Context, id string, imageURL string) error

	ListCategories(ctx context.Context) ([]Category, error)
	UpsertCategory(ctx context.Context, category *Category) error
}
