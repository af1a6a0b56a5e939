package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS categories (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    sort_order INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS dishes (
    id          TEXT PRIMARY KEY,
    position    INTEGER NOT NULL,
    category_id TEXT NOT NULL REFERENCES categories(id),
    name        TEXT NOT NULL,
    short_desc  TEXT NOT NULL DEFAULT '',
    full_desc   TEXT NOT NULL DEFAULT '',
    price       REAL,
    variants    TEXT NOT NULL DEFAULT '[]',
    diet_tags   TEXT NOT NULL DEFAULT '[]',
    allergens   TEXT NOT NULL DEFAULT '[]',
    available   INTEGER NOT NULL DEFAULT 1 CHECK(available IN (0,1)),
    image_url   TEXT NOT NULL DEFAULT '',
    updated_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
);

CREATE INDEX IF NOT EXISTS idx_dishes_category ON dishes(category_id);
CREATE INDEX IF NOT EXISTS idx_dishes_position ON dishes(position);
`

// OpenSQLite opens or creates the local SQLite menu store and initializes
// its schema. Used when DISH_STORE=sqlite.
func OpenSQLite(path string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := conn.Exec(sqliteSchema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return conn, nil
}
