package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// InsertEvents bulk-loads a batch with COPY.
func (r *PostgresRepository) InsertEvents(ctx context.Context, events []Event) error {
	rows := make([][]any, 0, len(events))
	for _, e := range events {
		meta := e.Metadata
		if meta == nil {
			meta = map[string]string{}
		}
		metaJSON, err := json.Marshal(meta)
		if err != nil {
			return err
		}

		rows = append(rows, []any{
			e.ID,
			e.VisitorID,
			e.SessionID,
			e.Type,
			e.Path,
			e.DishID,
			e.Query,
			metaJSON,
			e.OccurredAt,
		})
	}

	_, err := r.db.CopyFrom(
		ctx,
		pgx.Identifier{"analytics_events"},
		[]string{
			"id", "visitor_id", "session_id", "type", "path",
			"dish_id", "query", "metadata", "occurred_at",
		},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("copy analytics events: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListEvents(ctx context.Context, from, to time.Time) ([]Event, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, visitor_id, session_id, type, path, dish_id, query, metadata, occurred_at
		FROM analytics_events
		WHERE occurred_at >= $1 AND occurred_at < $2
		ORDER BY occurred_at, id
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("list analytics events: %w", err)
	}
	defer rows.Close()

	events := []Event{}
	for rows.Next() {
		var (
			e    Event
			meta []byte
		)
		if err := rows.Scan(
			&e.ID, &e.VisitorID, &e.SessionID, &e.Type, &e.Path,
			&e.DishID, &e.Query, &meta, &e.OccurredAt,
		); err != nil {
			return nil, err
		}
		if len(meta) > 0 {
			if err := json.Unmarshal(meta, &e.Metadata); err != nil {
				return nil, fmt.Errorf("decode metadata of %s: %w", e.ID, err)
			}
		}
		e.OccurredAt = e.OccurredAt.UTC()
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *PostgresRepository) PendingExportDays(ctx context.Context, before time.Time) ([]time.Time, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT (e.occurred_at AT TIME ZONE 'UTC')::date AS day
		FROM analytics_events e
		WHERE e.occurred_at < $1
		  AND NOT EXISTS (
			SELECT 1 FROM analytics_exports x
			WHERE x.day = (e.occurred_at AT TIME ZONE 'UTC')::date
		  )
		ORDER BY day
	`, before)
	if err != nil {
		return nil, fmt.Errorf("pending export days: %w", err)
	}
	defer rows.Close()

	var days []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		days = append(days, startOfDay(d))
	}
	return days, rows.Err()
}

func (r *PostgresRepository) MarkExported(ctx context.Context, day time.Time, objectKey string, count int) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO analytics_exports (day, object_key, event_count)
		VALUES ($1, $2, $3)
		ON CONFLICT (day)
		DO UPDATE SET object_key = EXCLUDED.object_key,
		              event_count = EXCLUDED.event_count,
		              exported_at = now()
	`, startOfDay(day), objectKey, count)
	return err
}
