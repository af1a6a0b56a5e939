package menu

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// unreachableRedis points at a port nothing listens on.
func unreachableRedis(t *testing.T) *redis.Client {
	t.Helper()

	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { rdb.Close() })
	return rdb
}

func TestCachedRepository_FallsThroughWhenRedisIsDown(t *testing.T) {
	ctx := context.Background()
	cached := NewCachedRepository(seededRepo(t), unreachableRedis(t), time.Minute)

	dishes, err := cached.ListDishes(ctx)
	if err != nil {
		t.Fatalf("expected fallthrough, got %v", err)
	}
	if len(dishes) != len(SampleDishes()) {
		t.Fatalf("expected %d dishes, got %d", len(SampleDishes()), len(dishes))
	}

	categories, err := cached.ListCategories(ctx)
	if err != nil || len(categories) != 4 {
		t.Fatalf("unexpected categories %v (%v)", categories, err)
	}
}

func TestCachedRepository_WritesSucceedWithoutRedis(t *testing.T) {
	ctx := context.Background()
	cached := NewCachedRepository(seededRepo(t), unreachableRedis(t), time.Minute)

	if err := cached.DeleteDish(ctx, "edamame"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := cached.DeleteDish(ctx, "edamame"); err != ErrDishNotFound {
		t.Fatalf("expected ErrDishNotFound from backing store, got %v", err)
	}

	// GetDish is not cached and goes straight to the backing store
	if _, err := cached.GetDish(ctx, "edamame"); err != ErrDishNotFound {
		t.Fatalf("expected ErrDishNotFound, got %v", err)
	}
}

func TestCachedRepository_Integration(t *testing.T) {
	addr := "localhost:6379"
	rdb := redis.NewClient(&redis.Options{Addr: addr, DialTimeout: 100 * time.Millisecond})
	defer rdb.Close()

	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		t.Skip("redis not available, skipping integration test")
	}

	cached := NewCachedRepository(seededRepo(t), rdb, time.Minute)
	_ = cached.Invalidate(ctx)

	if _, err := cached.ListDishes(ctx); err != nil {
		t.Fatal(err)
	}
	if n, _ := rdb.Exists(ctx, dishesCacheKey).Result(); n != 1 {
		t.Fatalf("expected %s to be cached", dishesCacheKey)
	}

	if err := cached.SetDishImage(ctx, "edamame", "https://cdn.test/e.png"); err != nil {
		t.Fatal(err)
	}
	if n, _ := rdb.Exists(ctx, dishesCacheKey).Result(); n != 0 {
		t.Fatalf("expected %s to be invalidated", dishesCacheKey)
	}
}
