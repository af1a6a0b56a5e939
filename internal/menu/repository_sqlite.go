package menu

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// SQLiteRepository stores the menu in a local SQLite file. Array and
// variant columns hold JSON text.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const sqliteDishColumns = `id, category_id, name, short_desc, full_desc, price, variants, diet_tags, allergens, available, image_url, updated_at`

func (r *SQLiteRepository) ListDishes(ctx context.Context) ([]Dish, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+sqliteDishColumns+` FROM dishes ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to list dishes: %w", err)
	}
	defer rows.Close()

	dishes := []Dish{}
	for rows.Next() {
		d, err := scanSQLiteDish(rows)
		if err != nil {
			return nil, err
		}
		dishes = append(dishes, *d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dish rows: %w", err)
	}
	return dishes, nil
}

func (r *SQLiteRepository) GetDish(ctx context.Context, id string) (*Dish, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+sqliteDishColumns+` FROM dishes WHERE id = ?`, id)

	d, err := scanSQLiteDish(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDishNotFound
	}
	return d, err
}

func (r *SQLiteRepository) CreateDish(ctx context.Context, dish *Dish) error {
	if err := r.requireCategory(ctx, dish.CategoryID); err != nil {
		return err
	}

	cols, err := encodeSQLiteDish(dish)
	if err != nil {
		return err
	}

	dish.UpdatedAt = time.Now().UTC()
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO dishes (
			id, position, category_id, name, short_desc, full_desc, price,
			variants, diet_tags, allergens, available, image_url, updated_at
		)
		VALUES (?, (SELECT COALESCE(MAX(position), 0) + 1 FROM dishes), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		dish.ID, dish.CategoryID, dish.Name, dish.ShortDesc, dish.FullDesc, dish.Price,
		cols.variants, cols.dietTags, cols.allergens, dish.Available, dish.ImageURL,
		dish.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrDishExists
	}
	return err
}

func (r *SQLiteRepository) UpdateDish(ctx context.Context, dish *Dish) error {
	if err := r.requireCategory(ctx, dish.CategoryID); err != nil {
		return err
	}

	cols, err := encodeSQLiteDish(dish)
	if err != nil {
		return err
	}

	dish.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		UPDATE dishes
		SET category_id = ?, name = ?, short_desc = ?, full_desc = ?, price = ?,
		    variants = ?, diet_tags = ?, allergens = ?, available = ?, updated_at = ?
		WHERE id = ?
	`,
		dish.CategoryID, dish.Name, dish.ShortDesc, dish.FullDesc, dish.Price,
		cols.variants, cols.dietTags, cols.allergens, dish.Available,
		dish.UpdatedAt.Format(time.RFC3339Nano), dish.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update dish: %w", err)
	}
	if err := expectOne(res); err != nil {
		return err
	}

	return r.db.QueryRowContext(ctx, `SELECT image_url FROM dishes WHERE id = ?`, dish.ID).Scan(&dish.ImageURL)
}

func (r *SQLiteRepository) DeleteDish(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM dishes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete dish: %w", err)
	}
	return expectOne(res)
}

func (r *SQLiteRepository) SetDishImage(ctx context.Context, id string, imageURL string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE dishes SET image_url = ?, updated_at = strftime('%Y-%m-%dT%H:%M:%fZ','now') WHERE id = ?
	`, imageURL, id)
	if err != nil {
		return fmt.Errorf("failed to set dish image: %w", err)
	}
	return expectOne(res)
}

func (r *SQLiteRepository) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, sort_order FROM categories ORDER BY sort_order, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []Category{}
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *SQLiteRepository) UpsertCategory(ctx context.Context, c *Category) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, sort_order) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, sort_order = excluded.sort_order
	`, c.ID, c.Name, c.SortOrder)
	if err != nil {
		return fmt.Errorf("failed to upsert category: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) requireCategory(ctx context.Context, id string) error {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM categories WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrCategoryNotFound
	}
	return err
}

type sqliteJSONColumns struct {
	variants, dietTags, allergens string
}

func encodeSQLiteDish(d *Dish) (sqliteJSONColumns, error) {
	normalize(d)

	var cols sqliteJSONColumns
	for dst, src := range map[*string]any{
		&cols.variants:  d.Variants,
		&cols.dietTags:  d.DietTags,
		&cols.allergens: d.Allergens,
	} {
		b, err := json.Marshal(src)
		if err != nil {
			return cols, err
		}
		*dst = string(b)
	}
	return cols, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteDish(row rowScanner) (*Dish, error) {
	var (
		d                             Dish
		price                         sql.NullFloat64
		variants, dietTags, allergens string
		updatedAt                     string
	)

	if err := row.Scan(
		&d.ID, &d.CategoryID, &d.Name, &d.ShortDesc, &d.FullDesc, &price,
		&variants, &dietTags, &allergens, &d.Available, &d.ImageURL, &updatedAt,
	); err != nil {
		return nil, err
	}

	if price.Valid {
		d.Price = &price.Float64
	}
	if err := json.Unmarshal([]byte(variants), &d.Variants); err != nil {
		return nil, fmt.Errorf("decode variants of %s: %w", d.ID, err)
	}
	if err := json.Unmarshal([]byte(dietTags), &d.DietTags); err != nil {
		return nil, fmt.Errorf("decode diet tags of %s: %w", d.ID, err)
	}
	if err := json.Unmarshal([]byte(allergens), &d.Allergens); err != nil {
		return nil, fmt.Errorf("decode allergens of %s: %w", d.ID, err)
	}
	if t, err := time.Parse(time.RFC3339Nano, updatedAt); err == nil {
		d.UpdatedAt = t
	}

	return &d, nil
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrDishNotFound
	}
	return nil
}
