package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ConnectPostgres opens a pool against dsn, pings it and makes sure the
// schema exists.
func ConnectPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, errors.New("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres connection failed: %w", err)
	}

	log.Println("[DB] connected to PostgreSQL")

	if err := initSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return pool, nil
}

// initSchema creates every table the service needs. Statements are
// idempotent so it runs on each start.
func initSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	log.Println("[DB] schema initialized")
	return nil
}

var schema = []string{
	// -------------------------------
	// STAFF
	// -------------------------------
	`CREATE TABLE IF NOT EXISTS staff_users (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) UNIQUE NOT NULL,
		password VARCHAR(255) NOT NULL,
		role VARCHAR(50) NOT NULL DEFAULT 'EDITOR',
		created_at TIMESTAMPTZ DEFAULT now()
	)`,

	// -------------------------------
	// MENU
	// -------------------------------
	`CREATE TABLE IF NOT EXISTS categories (
		id VARCHAR(100) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		sort_order INT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS dishes (
		id VARCHAR(100) PRIMARY KEY,
		category_id VARCHAR(100) NOT NULL REFERENCES categories(id),
		name VARCHAR(255) NOT NULL,
		short_desc TEXT NOT NULL DEFAULT '',
		full_desc TEXT NOT NULL DEFAULT '',
		price NUMERIC(10,2) NULL,
		variants JSONB NOT NULL DEFAULT '[]',
		diet_tags TEXT[] NOT NULL DEFAULT '{}',
		allergens TEXT[] NOT NULL DEFAULT '{}',
		available BOOLEAN NOT NULL DEFAULT true,
		image_url VARCHAR(500) NOT NULL DEFAULT '',
		position SERIAL,
		created_at TIMESTAMPTZ DEFAULT now(),
		updated_at TIMESTAMPTZ DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_dishes_category ON dishes(category_id)`,

	// -------------------------------
	// CMS CONTENT
	// -------------------------------
	`CREATE TABLE IF NOT EXISTS site_content (
		name VARCHAR(100) PRIMARY KEY,
		doc JSONB NOT NULL,
		updated_by VARCHAR(255) NOT NULL DEFAULT '',
		updated_at TIMESTAMPTZ DEFAULT now()
	)`,

	// -------------------------------
	// JOBS
	// -------------------------------
	`CREATE TABLE IF NOT EXISTS job_postings (
		id UUID PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		department VARCHAR(255) NOT NULL,
		location VARCHAR(255) NOT NULL,
		employment_type VARCHAR(50) NOT NULL,
		description TEXT NOT NULL,
		requirements TEXT[] NOT NULL DEFAULT '{}',
		salary_range VARCHAR(100) NOT NULL DEFAULT '',
		active BOOLEAN NOT NULL DEFAULT true,
		posted_at TIMESTAMPTZ DEFAULT now(),
		updated_at TIMESTAMPTZ DEFAULT now()
	)`,

	// -------------------------------
	// ANALYTICS
	// -------------------------------
	`CREATE TABLE IF NOT EXISTS analytics_events (
		id VARCHAR(64) PRIMARY KEY,
		visitor_id VARCHAR(128) NOT NULL,
		session_id VARCHAR(128) NOT NULL,
		type VARCHAR(50) NOT NULL,
		path VARCHAR(500) NOT NULL DEFAULT '',
		dish_id VARCHAR(100) NOT NULL DEFAULT '',
		query VARCHAR(255) NOT NULL DEFAULT '',
		metadata JSONB NOT NULL DEFAULT '{}',
		occurred_at TIMESTAMPTZ NOT NULL,
		received_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_analytics_events_occurred ON analytics_events(occurred_at)`,
	`CREATE TABLE IF NOT EXISTS analytics_exports (
		day DATE PRIMARY KEY,
		object_key VARCHAR(500) NOT NULL,
		event_count INT NOT NULL,
		exported_at TIMESTAMPTZ DEFAULT now()
	)`,
}
