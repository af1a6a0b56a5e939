package analytics

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lucsky/cuid"
)

var (
	ErrInvalidBatch = errors.New("invalid analytics batch")
	ErrInvalidRange = errors.New("invalid date range")
)

// maxClockSkew bounds how far in the future a client timestamp may be.
const maxClockSkew = 5 * time.Minute

var validate = validator.New()

type Service struct {
	repo      Repository
	publisher Publisher
	now       func() time.Time
}

func NewService(repo Repository, publisher Publisher) *Service {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &Service{repo: repo, publisher: publisher, now: time.Now}
}

// Ingest stores a batch and forwards it to the publisher. Publishing
// failures are logged and do not reject the batch.
func (s *Service) Ingest(ctx context.Context, batch *Batch) (int, error) {
	if len(batch.Events) > MaxBatchEvents {
		return 0, fmt.Errorf("%w: at most %d events per batch", ErrInvalidBatch, MaxBatchEvents)
	}
	if err := validate.Struct(batch); err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidBatch, err)
	}

	received := s.now().UTC()
	for i := range batch.Events {
		e := &batch.Events[i]
		if e.ID == "" {
			e.ID = cuid.New()
		}
		if e.OccurredAt.IsZero() || e.OccurredAt.After(received.Add(maxClockSkew)) {
			e.OccurredAt = received
		}
		e.OccurredAt = e.OccurredAt.UTC()
	}

	if err := s.repo.InsertEvents(ctx, batch.Events); err != nil {
		return 0, err
	}

	if err := s.publisher.Publish(ctx, batch.Events); err != nil {
		log.Printf("[ANALYTICS] publish failed (%d events): %v", len(batch.Events), err)
	}

	return len(batch.Events), nil
}

// Summary aggregates events between two UTC calendar days, both inclusive.
func (s *Service) Summary(ctx context.Context, from, to time.Time) (*Summary, error) {
	from, to = startOfDay(from), startOfDay(to)
	if to.Before(from) {
		return nil, fmt.Errorf("%w: from is after to", ErrInvalidRange)
	}
	if to.Sub(from) > 366*24*time.Hour {
		return nil, fmt.Errorf("%w: range exceeds one year", ErrInvalidRange)
	}

	events, err := s.repo.ListEvents(ctx, from, to.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	summary := Summarize(events)
	summary.From = from.Format(dayLayout)
	summary.To = to.Format(dayLayout)
	return &summary, nil
}

// DefaultRange is the last seven days including today.
func (s *Service) DefaultRange() (from, to time.Time) {
	to = startOfDay(s.now())
	return to.AddDate(0, 0, -6), to
}
