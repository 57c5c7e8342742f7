// Package db provides PostgreSQL access to the recruitment records the
// dashboards report on.
package db

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// Options tunes the connection pool and per-query behaviour.
type Options struct {
	MaxConns     int32
	QueryTimeout time.Duration
	// TimeZone is the IANA zone used to cut timestamps into calendar days.
	TimeZone string
}

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool         *pgxpool.Pool
	queryTimeout time.Duration
	timeZone     string
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string, opts Options) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}
	if opts.MaxConns > 0 {
		cfg.MaxConns = opts.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return newDB(pool, opts), nil
}

func newDB(pool *pgxpool.Pool, opts Options) *DB {
	tz := opts.TimeZone
	if tz == "" || tz == "Local" {
		tz = "UTC"
	}
	return &DB{pool: pool, queryTimeout: opts.QueryTimeout, timeZone: tz}
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Ping checks that the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	if err := db.pool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// Migrate creates the tables and indexes the dashboards read from. It is
// idempotent.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// withTimeout bounds a single query when a query timeout is configured.
func (db *DB) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if db.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, db.queryTimeout)
}
