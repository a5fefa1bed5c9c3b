package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/playperu/ouruniverse/internal/content"
	"github.com/playperu/ouruniverse/internal/handler/health"
	"github.com/playperu/ouruniverse/internal/journey"
)

type Options struct {
	Addr           string
	Logger         *slog.Logger
	Content        content.Source
	Credentials    journey.Credentials
	Pacing         journey.Pacing
	SessionTimeout time.Duration
	AssetsDir      string
	PublicURL      string
	Checks         map[string]health.Checker
}

type Server struct {
	srv      *http.Server
	logger   *slog.Logger
	sessions *Sessions
}

func New(opts Options) *Server {
	handler, sessions := newHandler(opts)

	return &Server{
		srv: &http.Server{
			Addr:              opts.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		logger:   opts.Logger,
		sessions: sessions,
	}
}

func newHandler(opts Options) (http.Handler, *Sessions) {
	broker := NewBroker()
	deps := visitorDeps{
		broker: broker,
		logger: opts.Logger,
		opts: journey.Options{
			Content:     opts.Content,
			Credentials: opts.Credentials,
			Pacing:      opts.Pacing,
		},
	}
	sessions := NewSessions(opts.Logger, broker, opts.SessionTimeout, func(id string) (*visitor, error) {
		return newVisitor(id, deps)
	})

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(newStructuredLogger(opts.Logger))
	r.Use(middleware.Recoverer)

	addRoutes(r, opts, sessions, broker)
	return r, sessions
}

func (s *Server) Run(_ context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.srv.Addr, err)
	}

	err = s.srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// RunSessions expires idle journeys until ctx is done.
func (s *Server) RunSessions(ctx context.Context) error {
	return s.sessions.Run(ctx)
}

func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.srv.Shutdown(ctx)
}

func newStructuredLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				level := slog.LevelInfo
				if ww.Status() >= http.StatusInternalServerError {
					level = slog.LevelError
				}
				logger.Log(r.Context(), level, "http request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration_ms", time.Since(start).Milliseconds(),
					"request_id", middleware.GetReqID(r.Context()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
