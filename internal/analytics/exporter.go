package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

// ObjectStore is where daily exports are written.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// Exporter writes finished days of events to object storage as JSON Lines.
type Exporter struct {
	repo  Repository
	store ObjectStore
	now   func() time.Time
}

func NewExporter(repo Repository, store ObjectStore) *Exporter {
	return &Exporter{repo: repo, store: store, now: time.Now}
}

// ExportKey is analytics/YYYY/MM/DD.jsonl for the UTC day.
func ExportKey(day time.Time) string {
	return "analytics/" + startOfDay(day).Format("2006/01/02") + ".jsonl"
}

// ExportDay writes every event of day and records the export.
func (x *Exporter) ExportDay(ctx context.Context, day time.Time) (string, int, error) {
	day = startOfDay(day)

	events, err := x.repo.ListEvents(ctx, day, day.AddDate(0, 0, 1))
	if err != nil {
		return "", 0, err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, e := range events {
		if err := enc.Encode(e); err != nil {
			return "", 0, fmt.Errorf("encode event %s: %w", e.ID, err)
		}
	}

	key := ExportKey(day)
	if _, err := x.store.Put(ctx, key, buf.Bytes(), "application/x-ndjson"); err != nil {
		return "", 0, fmt.Errorf("upload %s: %w", key, err)
	}

	if err := x.repo.MarkExported(ctx, day, key, len(events)); err != nil {
		return "", 0, err
	}

	log.Printf("[ANALYTICS] exported %s (%d events)", key, len(events))
	return key, len(events), nil
}

// ExportPending exports every finished day that has events and no export
// yet. Today is never exported.
func (x *Exporter) ExportPending(ctx context.Context) (int, error) {
	days, err := x.repo.PendingExportDays(ctx, startOfDay(x.now()))
	if err != nil {
		return 0, err
	}

	exported := 0
	for _, day := range days {
		if err := ctx.Err(); err != nil {
			return exported, err
		}
		if _, _, err := x.ExportDay(ctx, day); err != nil {
			return exported, err
		}
		exported++
	}
	return exported, nil
}
