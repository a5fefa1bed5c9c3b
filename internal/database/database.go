package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/tursodatabase/go-libsql"
)

// Open creates a SQLite connection via libSQL for the content store.
// File databases get WAL journaling and a 5 s busy timeout. An in-memory
// database (":memory:") is pinned to a single connection, since every new
// connection would otherwise see its own empty database.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("libsql", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	pragmas := []string{"PRAGMA busy_timeout=5000"}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
		db.SetConnMaxLifetime(0)
	} else {
		pragmas = append(pragmas, "PRAGMA journal_mode=WAL")
	}

	// libSQL rejects Exec for PRAGMAs that return rows; drain them instead.
	for _, p := range pragmas {
		rows, err := db.QueryContext(ctx, p)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("executing %s: %w", p, err)
		}
		rows.Close()
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}
