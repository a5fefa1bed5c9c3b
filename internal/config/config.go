package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/playperu/ouruniverse/internal/journey"
)

// Content sources.
const (
	SourceEmbedded = "embedded"
	SourceDir      = "dir"
	SourceSQLite   = "sqlite"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`

	ContentSource string `env:"CONTENT_SOURCE" envDefault:"embedded"`
	ContentDir    string `env:"CONTENT_DIR" envDefault:"data"`
	DBPath        string `env:"DB_PATH" envDefault:"data/ouruniverse.db"`
	AssetsDir     string `env:"ASSETS_DIR" envDefault:"assets"`
	PublicURL     string `env:"PUBLIC_URL" envDefault:"http://localhost:8080/"`

	LoginUsername  string        `env:"LOGIN_USERNAME" envDefault:"rania"`
	LoginPassword  string        `env:"LOGIN_PASSWORD" envDefault:"25525"`
	SessionTimeout time.Duration `env:"SESSION_TIMEOUT" envDefault:"2h"`

	Pacing PacingConfig
}

// PacingConfig overrides the journey's timing. Zero values keep the
// defaults.
type PacingConfig struct {
	RoseTarget            int           `env:"ROSE_TARGET"`
	SpawnInterval         time.Duration `env:"SPAWN_INTERVAL"`
	CollectionFinishDelay time.Duration `env:"COLLECTION_FINISH_DELAY"`
	AnswerDelay           time.Duration `env:"ANSWER_DELAY"`
	SummaryDelay          time.Duration `env:"SUMMARY_DELAY"`
	QuizSkipDelay         time.Duration `env:"QUIZ_SKIP_DELAY"`
	ConfettiPieces        int           `env:"CONFETTI_PIECES"`
	ConfettiLifetime      time.Duration `env:"CONFETTI_LIFETIME"`
	RoseFallMin           time.Duration `env:"ROSE_FALL_MIN"`
	RoseFallSpread        time.Duration `env:"ROSE_FALL_SPREAD"`
	PopLifetime           time.Duration `env:"POP_LIFETIME"`
}

func (p PacingConfig) Journey() journey.Pacing {
	d := journey.DefaultPacing()
	if p.RoseTarget > 0 {
		d.RoseTarget = p.RoseTarget
	}
	if p.SpawnInterval > 0 {
		d.SpawnInterval = p.SpawnInterval
	}
	if p.CollectionFinishDelay > 0 {
		d.CollectionFinishDelay = p.CollectionFinishDelay
	}
	if p.AnswerDelay > 0 {
		d.AnswerDelay = p.AnswerDelay
	}
	if p.SummaryDelay > 0 {
		d.SummaryDelay = p.SummaryDelay
	}
	if p.QuizSkipDelay > 0 {
		d.QuizSkipDelay = p.QuizSkipDelay
	}
	if p.ConfettiPieces > 0 {
		d.ConfettiPieces = p.ConfettiPieces
	}
	if p.ConfettiLifetime > 0 {
		d.ConfettiLifetime = p.ConfettiLifetime
	}
	if p.RoseFallMin > 0 {
		d.RoseFallMin = p.RoseFallMin
	}
	if p.RoseFallSpread > 0 {
		d.RoseFallSpread = p.RoseFallSpread
	}
	if p.PopLifetime > 0 {
		d.PopLifetime = p.PopLifetime
	}
	return d
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	switch cfg.ContentSource {
	case SourceEmbedded, SourceDir, SourceSQLite:
	default:
		return nil, fmt.Errorf("CONTENT_SOURCE %q: want %s, %s or %s",
			cfg.ContentSource, SourceEmbedded, SourceDir, SourceSQLite)
	}
	if cfg.SessionTimeout <= 0 {
		return nil, fmt.Errorf("SESSION_TIMEOUT %s: must be positive", cfg.SessionTimeout)
	}
	if strings.TrimSpace(cfg.LoginUsername) == "" || cfg.LoginPassword == "" {
		return nil, errors.New("LOGIN_USERNAME and LOGIN_PASSWORD must be set")
	}
	return &cfg, nil
}
