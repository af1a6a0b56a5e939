package jobs

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const postingColumns = `
	id, title, department, location, employment_type, description,
	requirements, salary_range, active, posted_at, updated_at
`

func scanPosting(row pgx.Row) (*Posting, error) {
	var p Posting
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Department,
		&p.Location,
		&p.EmploymentType,
		&p.Description,
		&p.Requirements,
		&p.SalaryRange,
		&p.Active,
		&p.PostedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// --------------------------------------------------
// List
// --------------------------------------------------
func (r *PostgresRepository) List(ctx context.Context, activeOnly bool) ([]Posting, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+postingColumns+`
		FROM job_postings
		WHERE ($1 = false OR active = true)
		ORDER BY posted_at DESC, id
	`, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list postings: %w", err)
	}
	defer rows.Close()

	postings := []Posting{}
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, err
		}
		postings = append(postings, *p)
	}
	return postings, rows.Err()
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*Posting, error) {
	p, err := scanPosting(r.db.QueryRow(ctx, `
		SELECT `+postingColumns+`
		FROM job_postings
		WHERE id = $1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

// --------------------------------------------------
// Create
// --------------------------------------------------
func (r *PostgresRepository) Create(ctx context.Context, p *Posting) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO job_postings (
			id,
			title,
			department,
			location,
			employment_type,
			description,
			requirements,
			salary_range,
			active
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING posted_at, updated_at
	`,
		p.ID,
		p.Title,
		p.Department,
		p.Location,
		p.EmploymentType,
		p.Description,
		p.Requirements,
		p.SalaryRange,
		p.Active,
	).Scan(
		&p.PostedAt,
		&p.UpdatedAt,
	)
}

// --------------------------------------------------
// Update
// --------------------------------------------------
func (r *PostgresRepository) Update(ctx context.Context, p *Posting) error {
	err := r.db.QueryRow(ctx, `
		UPDATE job_postings
		SET title = $2,
		    department = $3,
		    location = $4,
		    employment_type = $5,
		    description = $6,
		    requirements = $7,
		    salary_range = $8,
		    active = $9,
		    updated_at = now()
		WHERE id = $1
		RETURNING posted_at, updated_at
	`,
		p.ID,
		p.Title,
		p.Department,
		p.Location,
		p.EmploymentType,
		p.Description,
		p.Requirements,
		p.SalaryRange,
		p.Active,
	).Scan(
		&p.PostedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM job_postings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete posting: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
