// Package testutil provides SQLite-backed fixtures shared by package tests.
package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/db"
	"github.com/gokatarajesh/trivia-api/internal/db/migrations"
	"github.com/gokatarajesh/trivia-api/internal/db/sqlite"
	"github.com/gokatarajesh/trivia-api/internal/seed"
)

// NewStore returns a migrated, empty in-memory store closed at test cleanup.
func NewStore(t *testing.T) *sqlite.Store {
	t.Helper()
	ctx := context.Background()

	conn, err := sqlite.Open(ctx, "file:"+uuid.NewString()+"?mode=memory")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := migrations.Up(ctx, conn, db.DriverSQLite, zerolog.Nop()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return sqlite.New(conn)
}

// NewSeededStore returns a store holding the embedded default dataset:
// six categories (ids 1..6: Science, Art, Geography, History, Entertainment, Sports)
// and twenty questions with ids 1..20.
func NewSeededStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store := NewStore(t)

	ds, err := seed.Default()
	if err != nil {
		t.Fatalf("load seed: %v", err)
	}
	if _, err := seed.Apply(context.Background(), store, ds, false, zerolog.Nop()); err != nil {
		t.Fatalf("apply seed: %v", err)
	}
	return store
}
