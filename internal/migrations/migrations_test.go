package migrations_test

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/playperu/ouruniverse/internal/database"
	"github.com/playperu/ouruniverse/internal/migrations"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestMigrations(t *testing.T) {
	db := openDB(t)

	n, err := migrations.Run(context.Background(), discard, db)
	if err != nil {
		t.Fatalf("running migrations: %v", err)
	}
	if n != 1 {
		t.Errorf("applied = %d, want 1", n)
	}

	var name string
	err = db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name=?", "documents",
	).Scan(&name)
	if err != nil {
		t.Errorf("table documents not found: %v", err)
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	db := openDB(t)

	if _, err := migrations.Run(context.Background(), discard, db); err != nil {
		t.Fatalf("first run: %v", err)
	}
	n, err := migrations.Run(context.Background(), discard, db)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if n != 0 {
		t.Errorf("second run applied %d migrations", n)
	}
}
