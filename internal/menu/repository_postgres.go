package menu

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const dishColumns = `
	id,
	category_id,
	name,
	short_desc,
	full_desc,
	price::float8,
	variants,
	diet_tags,
	allergens,
	available,
	image_url,
	updated_at
`

// --------------------------------------------------
// LIST DISHES (MENU ORDER)
// --------------------------------------------------
func (r *PostgresRepository) ListDishes(ctx context.Context) ([]Dish, error) {
	rows, err := r.db.Query(ctx, `SELECT `+dishColumns+` FROM dishes ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dishes := []Dish{}
	for rows.Next() {
		d, err := scanDish(rows)
		if err != nil {
			return nil, err
		}
		dishes = append(dishes, *d)
	}

	return dishes, rows.Err()
}

func (r *PostgresRepository) GetDish(ctx context.Context, id string) (*Dish, error) {
	row := r.db.QueryRow(ctx, `SELECT `+dishColumns+` FROM dishes WHERE id = $1`, id)

	d, err := scanDish(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrDishNotFound
	}
	return d, err
}

// --------------------------------------------------
// CREATE / UPDATE / DELETE
// --------------------------------------------------
func (r *PostgresRepository) CreateDish(ctx context.Context, dish *Dish) error {
	normalize(dish)

	variants, err := json.Marshal(dish.Variants)
	if err != nil {
		return err
	}

	err = r.db.QueryRow(ctx, `
		INSERT INTO dishes (
			id, category_id, name, short_desc, full_desc, price,
			variants, diet_tags, allergens, available, image_url
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING updated_at
	`,
		dish.ID,
		dish.CategoryID,
		dish.Name,
		dish.ShortDesc,
		dish.FullDesc,
		dish.Price,
		variants,
		dish.DietTags,
		dish.Allergens,
		dish.Available,
		dish.ImageURL,
	).Scan(&dish.UpdatedAt)

	return mapWriteErr(err)
}

func (r *PostgresRepository) UpdateDish(ctx context.Context, dish *Dish) error {
	normalize(dish)

	variants, err := json.Marshal(dish.Variants)
	if err != nil {
		return err
	}

	err = r.db.QueryRow(ctx, `
		UPDATE dishes
		SET category_id = $2,
		    name = $3,
		    short_desc = $4,
		    full_desc = $5,
		    price = $6,
		    variants = $7,
		    diet_tags = $8,
		    allergens = $9,
		    available = $10,
		    updated_at = now()
		WHERE id = $1
		RETURNING image_url, updated_at
	`,
		dish.ID,
		dish.CategoryID,
		dish.Name,
		dish.ShortDesc,
		dish.FullDesc,
		dish.Price,
		variants,
		dish.DietTags,
		dish.Allergens,
		dish.Available,
	).Scan(&dish.ImageURL, &dish.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrDishNotFound
	}
	return mapWriteErr(err)
}

func (r *PostgresRepository) DeleteDish(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM dishes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrDishNotFound
	}
	return nil
}

func (r *PostgresRepository) SetDishImage(ctx context.Context, id string, imageURL string) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE dishes
		SET image_url = $1,
		    updated_at = now()
		WHERE id = $2
	`, imageURL, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrDishNotFound
	}
	return nil
}

// BulkCreateDishes loads many dishes in one COPY. Used by the seed command.
func (r *PostgresRepository) BulkCreateDishes(ctx context.Context, dishes []Dish) error {
	rows := make([][]any, 0, len(dishes))
	for i := range dishes {
		d := dishes[i]
		normalize(&d)

		variants, err := json.Marshal(d.Variants)
		if err != nil {
			return err
		}
		rows = append(rows, []any{
			d.ID, d.CategoryID, d.Name, d.ShortDesc, d.FullDesc, d.Price,
			variants, d.DietTags, d.Allergens, d.Available, d.ImageURL,
		})
	}

	_, err := r.db.CopyFrom(
		ctx,
		pgx.Identifier{"dishes"},
		[]string{
			"id", "category_id", "name", "short_desc", "full_desc", "price",
			"variants", "diet_tags", "allergens", "available", "image_url",
		},
		pgx.CopyFromRows(rows),
	)
	return mapWriteErr(err)
}

// --------------------------------------------------
// CATEGORIES
// --------------------------------------------------
func (r *PostgresRepository) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, sort_order
		FROM categories
		ORDER BY sort_order, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []Category{}
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.SortOrder); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

func (r *PostgresRepository) UpsertCategory(ctx context.Context, c *Category) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO categories (id, name, sort_order)
		VALUES ($1, $2, $3)
		ON CONFLICT (id)
		DO UPDATE SET
			name = EXCLUDED.name,
			sort_order = EXCLUDED.sort_order
	`, c.ID, c.Name, c.SortOrder)
	return err
}

func scanDish(row pgx.Row) (*Dish, error) {
	var (
		d        Dish
		variants []byte
	)

	if err := row.Scan(
		&d.ID,
		&d.CategoryID,
		&d.Name,
		&d.ShortDesc,
		&d.FullDesc,
		&d.Price,
		&variants,
		&d.DietTags,
		&d.Allergens,
		&d.Available,
		&d.ImageURL,
		&d.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if len(variants) > 0 {
		if err := json.Unmarshal(variants, &d.Variants); err != nil {
			return nil, err
		}
	}

	return &d, nil
}

// mapWriteErr turns constraint violations into menu errors.
func mapWriteErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return ErrDishExists
		case "23503":
			return ErrCategoryNotFound
		}
	}
	return err
}

// normalize replaces nil slices so NOT NULL array columns accept them.
func normalize(d *Dish) {
	if d.Variants == nil {
		d.Variants = []Variant{}
	}
	if d.DietTags == nil {
		d.DietTags = []string{}
	}
	if d.Allergens == nil {
		d.Allergens = []string{}
	}
}
