package content

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
)

// DocStore keeps resources as JSONB documents in the documents table
// created by the migrations package.
type DocStore struct {
	db *sql.DB
}

func NewDocStore(db *sql.DB) *DocStore {
	return &DocStore{db: db}
}

func (s *DocStore) Fetch(ctx context.Context, name string) ([]byte, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT json(data) FROM documents WHERE name = ?`, name,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", name, err)
	}
	return []byte(data), nil
}

// Put stores data under name, replacing any previous document.
func (s *DocStore) Put(ctx context.Context, name string, data []byte) error {
	if !json.Valid(data) {
		return fmt.Errorf("%s: %w", name, ErrMalformed)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (name, data) VALUES (?, jsonb(?))
		 ON CONFLICT(name) DO UPDATE SET data = excluded.data`,
		name, string(data),
	)
	if err != nil {
		return fmt.Errorf("storing %s: %w", name, err)
	}
	return nil
}

func (s *DocStore) Names(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM documents ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

func (s *DocStore) Check(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Seed copies every *.json file of fsys that is not stored yet.
// Existing documents are left untouched, so seeding is idempotent.
func (s *DocStore) Seed(ctx context.Context, logger *slog.Logger, fsys fs.FS) error {
	files, err := fs.Glob(fsys, "*.json")
	if err != nil {
		return err
	}

	existing, err := s.Names(ctx)
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, n := range existing {
		have[n] = true
	}

	for _, f := range files {
		name := path.Base(f)
		if have[name] {
			continue
		}
		data, err := fs.ReadFile(fsys, f)
		if err != nil {
			return fmt.Errorf("reading %s: %w", f, err)
		}
		if err := s.Put(ctx, name, data); err != nil {
			return err
		}
		logger.Info("seeded content document", "name", name)
	}
	return nil
}
