// Package storage opens the configured relational backend and exposes it as a db.Store.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db"
	"github.com/gokatarajesh/trivia-api/internal/db/migrations"
	"github.com/gokatarajesh/trivia-api/internal/db/postgres"
	"github.com/gokatarajesh/trivia-api/internal/db/sqlite"
)

// DB bundles the query store with the *sql.DB used for migrations.
type DB struct {
	Store  db.Store
	SQL    *sql.DB
	Driver db.Driver

	pool *pgxpool.Pool
}

// Open connects to the backend selected by cfg.Store.Driver and, when
// STORE_AUTO_MIGRATE is set, applies pending migrations.
func Open(ctx context.Context, cfg *config.App, logger zerolog.Logger) (*DB, error) {
	var (
		d   *DB
		err error
	)
	switch db.Driver(cfg.Store.Driver) {
	case db.DriverPostgres:
		d, err = openPostgres(ctx, cfg.Postgres)
	case db.DriverSQLite:
		d, err = openSQLite(ctx, cfg.Store.SQLiteDSN)
	default:
		return nil, fmt.Errorf("storage: unsupported driver %q", cfg.Store.Driver)
	}
	if err != nil {
		return nil, err
	}
	logger.Info().Str("driver", string(d.Driver)).Msg("store connected")

	if cfg.Store.AutoMigrate {
		if err := migrations.Up(ctx, d.SQL, d.Driver, logger); err != nil {
			_ = d.Close()
			return nil, err
		}
	}
	return d, nil
}

func openPostgres(ctx context.Context, cfg config.Postgres) (*DB, error) {
	pool, err := pgxpool.New(ctx, cfg.ConnString())
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &DB{
		Store:  postgres.New(pool),
		SQL:    stdlib.OpenDBFromPool(pool),
		Driver: db.DriverPostgres,
		pool:   pool,
	}, nil
}

func openSQLite(ctx context.Context, dsn string) (*DB, error) {
	conn, err := sqlite.Open(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &DB{
		Store:  sqlite.New(conn),
		SQL:    conn,
		Driver: db.DriverSQLite,
	}, nil
}

// Ping checks the store is reachable.
func (d *DB) Ping(ctx context.Context) error {
	return d.Store.Ping(ctx)
}

// Close releases the *sql.DB and, for Postgres, the underlying pool.
func (d *DB) Close() error {
	if d == nil {
		return nil
	}
	var err error
	if d.SQL != nil {
		err = d.SQL.Close()
	}
	if d.pool != nil {
		d.pool.Close()
	}
	return err
}
