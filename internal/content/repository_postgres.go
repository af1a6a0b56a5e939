package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository keeps documents as JSONB rows in site_content.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, name string) (*Document, error) {
	doc := &Document{Name: name}

	err := r.db.QueryRow(ctx, `
		SELECT doc, updated_by, updated_at
		FROM site_content
		WHERE name = $1
	`, name).Scan(&doc.Body, &doc.UpdatedBy, &doc.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	return doc, nil
}

func (r *PostgresRepository) Put(ctx context.Context, doc *Document) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO site_content (name, doc, updated_by, updated_at)
		VALUES ($1, $2::jsonb, $3, now())
		ON CONFLICT (name)
		DO UPDATE SET doc = EXCLUDED.doc,
		              updated_by = EXCLUDED.updated_by,
		              updated_at = now()
		RETURNING updated_at
	`, doc.Name, string(doc.Body), doc.UpdatedBy).Scan(&doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save %s: %w", doc.Name, err)
	}
	return nil
}
