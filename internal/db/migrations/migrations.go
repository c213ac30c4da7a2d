// Package migrations embeds the goose SQL migrations for every supported dialect.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/db"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

// NewProvider builds a goose provider over the migrations for driver.
func NewProvider(conn *sql.DB, driver db.Driver) (*goose.Provider, error) {
	var dialect goose.Dialect
	switch driver {
	case db.DriverPostgres:
		dialect = goose.DialectPostgres
	case db.DriverSQLite:
		dialect = goose.DialectSQLite3
	default:
		return nil, fmt.Errorf("migrations: unsupported driver %q", driver)
	}

	fsys, err := fs.Sub(files, string(driver))
	if err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return goose.NewProvider(dialect, conn, fsys)
}

// Up applies all pending migrations and logs each applied version.
func Up(ctx context.Context, conn *sql.DB, driver db.Driver, logger zerolog.Logger) error {
	provider, err := NewProvider(conn, driver)
	if err != nil {
		return err
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("migrations up: %w", err)
	}
	for _, res := range results {
		logger.Info().
			Int64("version", res.Source.Version).
			Str("file", res.Source.Path).
			Dur("took", res.Duration).
			Msg("migration applied")
	}
	return nil
}

// Down rolls back the most recent migration.
func Down(ctx context.Context, conn *sql.DB, driver db.Driver, logger zerolog.Logger) error {
	provider, err := NewProvider(conn, driver)
	if err != nil {
		return err
	}
	res, err := provider.Down(ctx)
	if err != nil {
		return fmt.Errorf("migrations down: %w", err)
	}
	logger.Info().
		Int64("version", res.Source.Version).
		Str("file", res.Source.Path).
		Msg("migration rolled back")
	return nil
}

// Status reports every known migration and whether it has been applied.
func Status(ctx context.Context, conn *sql.DB, driver db.Driver) ([]*goose.MigrationStatus, error) {
	provider, err := NewProvider(conn, driver)
	if err != nil {
		return nil, err
	}
	return provider.Status(ctx)
}
