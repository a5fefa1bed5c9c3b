// Package migrations owns the schema of the content store.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var fs embed.FS

// Run applies all pending migrations against db and logs each applied one.
// It returns how many were applied.
func Run(ctx context.Context, logger *slog.Logger, db *sql.DB) (int, error) {
	p, err := goose.NewProvider(goose.DialectSQLite3, db, fs)
	if err != nil {
		return 0, fmt.Errorf("creating migration provider: %w", err)
	}

	results, err := p.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("running migrations: %w", err)
	}
	for _, r := range results {
		logger.Info("applied migration", "version", r.Source.Version, "duration_ms", r.Duration.Milliseconds())
	}
	return len(results), nil
}
