package analytics

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"portsanantonio/internal/storage"
)

func TestExportKey(t *testing.T) {
	if got := ExportKey(time.Date(2024, 3, 7, 18, 0, 0, 0, time.UTC)); got != "analytics/2024/03/07.jsonl" {
		t.Fatalf("unexpected key %s", got)
	}
}

func TestExportPending(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()
	_ = repo.InsertEvents(ctx, []Event{
		{ID: "a", VisitorID: "v", SessionID: "s", Type: EventPageView, OccurredAt: at(1, 9)},
		{ID: "b", VisitorID: "v", SessionID: "s", Type: EventDishView, DishID: "edamame", OccurredAt: at(1, 10)},
		{ID: "c", VisitorID: "v", SessionID: "s", Type: EventPageView, OccurredAt: at(3, 9)},
		{ID: "d", VisitorID: "v", SessionID: "s", Type: EventPageView, OccurredAt: at(4, 9)},
	})

	store := storage.NewMemoryStore("mem://exports")
	x := NewExporter(repo, store)
	x.now = func() time.Time { return at(4, 12) }

	n, err := x.ExportPending(ctx)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 finished days exported, got %d", n)
	}

	obj, ok := store.Get("analytics/2024/05/01.jsonl")
	if !ok {
		t.Fatalf("missing export, have %v", store.Keys())
	}
	if obj.ContentType != "application/x-ndjson" {
		t.Errorf("unexpected content type %s", obj.ContentType)
	}

	var lines []Event
	sc := bufio.NewScanner(bytes.NewReader(obj.Data))
	for sc.Scan() {
		var e Event
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			t.Fatalf("bad line %q: %v", sc.Text(), err)
		}
		lines = append(lines, e)
	}
	if len(lines) != 2 || lines[0].ID != "a" || lines[1].DishID != "edamame" {
		t.Fatalf("unexpected export content %+v", lines)
	}

	if _, ok := store.Get("analytics/2024/05/04.jsonl"); ok {
		t.Error("today must not be exported")
	}

	// a second run finds nothing new
	n, err = x.ExportPending(ctx)
	if err != nil || n != 0 {
		t.Fatalf("expected no pending days, got %d (%v)", n, err)
	}
}
