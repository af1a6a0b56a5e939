package analytics

import (
	"context"
	"time"
)

// Repository stores raw events and tracks which days were exported.
// Time ranges are half-open: [from, to).
type Repository interface {
	InsertEvents(ctx context.Context, events []Event) error
	ListEvents(ctx context.Context, from, to time.Time) ([]Event, error)

	// PendingExportDays returns UTC days before the given instant that have
	// events and no export record, oldest first.
	PendingExportDays(ctx context.Context, before time.Time) ([]time.Time, error)
	MarkExported(ctx context.Context, day time.Time, objectKey string, count int) error
}
