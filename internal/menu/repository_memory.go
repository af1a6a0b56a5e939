package menu

import (
	"context"
	"sort"
	"sync"
	"time"
)

// InMemoryRepository keeps the menu in process memory. Used by tests and
// by the seed command's dry run.
type InMemoryRepository struct {
	mu         sync.RWMutex
	dishes     []Dish
	categories map[string]Category
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		categories: make(map[string]Category),
	}
}

func (r *InMemoryRepository) ListDishes(ctx context.Context) ([]Dish, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Dish, len(r.dishes))
	copy(out, r.dishes)
	return out, nil
}

func (r *InMemoryRepository) GetDish(ctx context.Context, id string) (*Dish, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.index(id); i >= 0 {
		d := r.dishes[i]
		return &d, nil
	}
	return nil, ErrDishNotFound
}

func (r *InMemoryRepository) CreateDish(ctx context.Context, dish *Dish) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.index(dish.ID) >= 0 {
		return ErrDishExists
	}
	if _, ok := r.categories[dish.CategoryID]; !ok {
		return ErrCategoryNotFound
	}

	dish.UpdatedAt = time.Now().UTC()
	r.dishes = append(r.dishes, *dish)
	return nil
}

func (r *InMemoryRepository) UpdateDish(ctx context.Context, dish *Dish) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(dish.ID)
	if i < 0 {
		return ErrDishNotFound
	}
	if _, ok := r.categories[dish.CategoryID]; !ok {
		return ErrCategoryNotFound
	}

	dish.UpdatedAt = time.Now().UTC()
	r.dishes[i] = *dish
	return nil
}

func (r *InMemoryRepository) DeleteDish(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(id)
	if i < 0 {
		return ErrDishNotFound
	}
	r.dishes = append(r.dishes[:i:i], r.dishes[i+1:]...)
	return nil
}

func (r *InMemoryRepository) SetDishImage(ctx context.Context, id string, imageURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(id)
	if i < 0 {
		return ErrDishNotFound
	}
	r.dishes[i].ImageURL = imageURL
	return nil
}

func (r *InMemoryRepository) ListCategories(ctx context.Context) ([]Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, c)
	}
	sortCategories(out)
	return out, nil
}

func (r *InMemoryRepository) UpsertCategory(ctx context.Context, category *Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.categories[category.ID] = *category
	return nil
}

func (r *InMemoryRepository) index(id string) int {
	for i, d := range r.dishes {
		if d.ID == id {
			return i
		}
	}
	return -1
}

func sortCategories(cs []Category) {
	sort.SliceStable(cs, func(i, j int) bool {
		if cs[i].SortOrder != cs[j].SortOrder {
			return cs[i].SortOrder < cs[j].SortOrder
		}
		return cs[i].ID < cs[j].ID
	})
}
