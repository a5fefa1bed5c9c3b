package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
)

// FSSource serves resources from a file system, such as Defaults() or
// os.DirFS(dir).
type FSSource struct {
	fsys fs.FS
}

func NewFSSource(fsys fs.FS) *FSSource {
	return &FSSource{fsys: fsys}
}

func (s *FSSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(s.fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, nil
}

// Check implements the health checker contract by reading the quiz.
func (s *FSSource) Check(ctx context.Context) error {
	_, err := s.Fetch(ctx, Quiz)
	return err
}
