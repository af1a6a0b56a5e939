package analytics

import (
	"context"
	"sort"
	"sync"
	"time"
)

type InMemoryRepository struct {
	mu       sync.RWMutex
	events   []Event
	exported map[string]string
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{exported: make(map[string]string)}
}

func (r *InMemoryRepository) InsertEvents(ctx context.Context, events []Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, events...)
	return nil
}

func (r *InMemoryRepository) ListEvents(ctx context.Context, from, to time.Time) ([]Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []Event{}
	for _, e := range r.events {
		if !e.OccurredAt.Before(from) && e.OccurredAt.Before(to) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OccurredAt.Before(out[j].OccurredAt) })
	return out, nil
}

func (r *InMemoryRepository) PendingExportDays(ctx context.Context, before time.Time) ([]time.Time, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]time.Time)
	for _, e := range r.events {
		if !e.OccurredAt.Before(before) {
			continue
		}
		day := startOfDay(e.OccurredAt)
		key := day.Format(dayLayout)
		if _, done := r.exported[key]; done {
			continue
		}
		seen[key] = day
	}

	days := make([]time.Time, 0, len(seen))
	for _, d := range seen {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days, nil
}

func (r *InMemoryRepository) MarkExported(ctx context.Context, day time.Time, objectKey string, count int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.exported[day.Format(dayLayout)] = objectKey
	return nil
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
