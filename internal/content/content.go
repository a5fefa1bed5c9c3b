// Package content defines the static data the journey renders (timeline,
// quiz, moodboard) and the sources it can be fetched from.
package content

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
)

// Resource names, as they appear under data/.
const (
	Timeline  = "timeline.json"
	Quiz      = "quiz.json"
	Moodboard = "moodboard.json"
)

var (
	ErrNotFound  = errors.New("content not found")
	ErrMalformed = errors.New("malformed content")
)

type TimelineEntry struct {
	Title       string `json:"title,omitempty"`
	Date        string `json:"date,omitempty"`
	Description string `json:"description,omitempty"`
}

type MoodboardItem struct {
	Image       string `json:"image,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

type Question struct {
	Text         string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
}

type quizDoc struct {
	Questions *[]Question `json:"questions"`
}

// Source returns the raw bytes of a named resource.
type Source interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, name string) ([]byte, error)

func (f SourceFunc) Fetch(ctx context.Context, name string) ([]byte, error) { return f(ctx, name) }

// LoadQuestions fetches and decodes the quiz resource. A payload without a
// questions array is malformed.
func LoadQuestions(ctx context.Context, src Source) ([]Question, error) {
	data, err := src.Fetch(ctx, Quiz)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", Quiz, err)
	}
	var doc quizDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding %s: %w: %v", Quiz, ErrMalformed, err)
	}
	if doc.Questions == nil {
		return nil, fmt.Errorf("%s must contain { questions: [] }: %w", Quiz, ErrMalformed)
	}
	return *doc.Questions, nil
}

//go:embed data/*.json
var embedded embed.FS

// Defaults returns the data files bundled with the binary.
func Defaults() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err)
	}
	return sub
}
