package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/playperu/ouruniverse/internal/config"
	"github.com/playperu/ouruniverse/internal/content"
	"github.com/playperu/ouruniverse/internal/database"
	"github.com/playperu/ouruniverse/internal/handler/health"
	"github.com/playperu/ouruniverse/internal/journey"
	"github.com/playperu/ouruniverse/internal/migrations"
	"github.com/playperu/ouruniverse/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- Content ---
	checks := map[string]health.Checker{}
	var src interface {
		content.Source
		health.Checker
	}
	switch cfg.ContentSource {
	case config.SourceDir:
		src = content.NewFSSource(os.DirFS(cfg.ContentDir))
		logger.Info("serving content from directory", "dir", cfg.ContentDir)
	case config.SourceSQLite:
		db, err := openStore(ctx, logger, cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()
		checks["sqlite"] = dbChecker{db}
		src = content.NewDocStore(db)
	default:
		src = content.NewFSSource(content.Defaults())
		logger.Info("serving embedded content")
	}
	checks["content"] = src

	creds, err := journey.NewCredentials(cfg.LoginUsername, cfg.LoginPassword)
	if err != nil {
		return fmt.Errorf("hashing login password: %w", err)
	}

	// --- HTTP Server ---
	srv := server.New(server.Options{
		Addr:           cfg.HTTPAddr,
		Logger:         logger,
		Content:        src,
		Credentials:    creds,
		Pacing:         cfg.Pacing.Journey(),
		SessionTimeout: cfg.SessionTimeout,
		AssetsDir:      cfg.AssetsDir,
		PublicURL:      cfg.PublicURL,
		Checks:         checks,
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		return srv.RunSessions(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}

// openStore opens the content database, migrates it and seeds it with the
// bundled documents it does not have yet.
func openStore(ctx context.Context, logger *slog.Logger, path string) (*sql.DB, error) {
	db, err := database.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("connecting to sqlite: %w", err)
	}
	if _, err := migrations.Run(ctx, logger, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	if err := content.NewDocStore(db).Seed(ctx, logger, content.Defaults()); err != nil {
		db.Close()
		return nil, fmt.Errorf("seeding content: %w", err)
	}
	logger.Info("connected to sqlite", "path", path)
	return db, nil
}

// dbChecker adapts *sql.DB to health.Checker.
type dbChecker struct{ db *sql.DB }

func (d dbChecker) Check(ctx context.Context) error { return d.db.PingContext(ctx) }
