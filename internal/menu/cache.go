package menu

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	dishesCacheKey     = "menu:dishes"
	categoriesCacheKey = "menu:categories"
)

// CachedRepository is a read-through Redis cache in front of another
// Repository. It caches the stored records only; filtering always runs on
// the fresh list. Every write drops both keys.
//
// Redis errors never fail a request: reads fall through to the backing
// repository and are logged.
type CachedRepository struct {
	Repository
	rdb *redis.Client
	ttl time.Duration
}

func NewCachedRepository(next Repository, rdb *redis.Client, ttl time.Duration) *CachedRepository {
	return &CachedRepository{Repository: next, rdb: rdb, ttl: ttl}
}

func (c *CachedRepository) ListDishes(ctx context.Context) ([]Dish, error) {
	var dishes []Dish
	if c.get(ctx, dishesCacheKey, &dishes) {
		return dishes, nil
	}

	dishes, err := c.Repository.ListDishes(ctx)
	if err != nil {
		return nil, err
	}
	c.set(ctx, dishesCacheKey, dishes)
	return dishes, nil
}

func (c *CachedRepository) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if c.get(ctx, categoriesCacheKey, &categories) {
		return categories, nil
	}

	categories, err := c.Repository.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	c.set(ctx, categoriesCacheKey, categories)
	return categories, nil
}

func (c *CachedRepository) CreateDish(ctx context.Context, dish *Dish) error {
	return c.invalidateAfter(ctx, c.Repository.CreateDish(ctx, dish))
}

func (c *CachedRepository) UpdateDish(ctx context.Context, dish *Dish) error {
	return c.invalidateAfter(ctx, c.Repository.UpdateDish(ctx, dish))
}

func (c *CachedRepository) DeleteDish(ctx context.Context, id string) error {
	return c.invalidateAfter(ctx, c.Repository.DeleteDish(ctx, id))
}

func (c *CachedRepository) SetDishImage(ctx context.Context, id string, imageURL string) error {
	return c.invalidateAfter(ctx, c.Repository.SetDishImage(ctx, id, imageURL))
}

func (c *CachedRepository) UpsertCategory(ctx context.Context, category *Category) error {
	return c.invalidateAfter(ctx, c.Repository.UpsertCategory(ctx, category))
}

// Invalidate drops every cached menu key.
func (c *CachedRepository) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, dishesCacheKey, categoriesCacheKey).Err()
}

func (c *CachedRepository) invalidateAfter(ctx context.Context, err error) error {
	if err != nil {
		return err
	}
	if derr := c.Invalidate(ctx); derr != nil {
		log.Printf("[MENU] cache invalidation failed: %v", derr)
	}
	return nil
}

func (c *CachedRepository) get(ctx context.Context, key string, dst any) bool {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("[MENU] cache read %s failed: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		log.Printf("[MENU] cache entry %s unreadable: %v", key, err)
		return false
	}
	return true
}

func (c *CachedRepository) set(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		log.Printf("[MENU] cache write %s failed: %v", key, err)
	}
}
