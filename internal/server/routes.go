package server

import (
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/playperu/ouruniverse/internal/handler/health"
	"github.com/playperu/ouruniverse/internal/journey"
	"github.com/playperu/ouruniverse/internal/web"
)

func addRoutes(r chi.Router, opts Options, sessions *Sessions, broker *Broker) {
	logger := opts.Logger

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Our Universe API", "/openapi.json", "/docs"))
	r.Mount("/healthz", health.NewHandler(logger, opts.Checks).Routes())
	r.Get("/qr.png", handleQR(logger, opts.PublicURL))
	r.Handle("/static/*", handleStatic(web.Static()))

	if opts.AssetsDir != "" {
		if info, err := os.Stat(opts.AssetsDir); err == nil && info.IsDir() {
			logger.Info("serving assets", "dir", opts.AssetsDir)
			r.Get("/assets/*", handleAssets(opts.AssetsDir))
		} else {
			logger.Warn("assets dir not found, images and music disabled", "dir", opts.AssetsDir)
		}
	}

	r.Get("/", handlePage(sessions, opts.SessionTimeout))

	// Visitor routes, resolved from the session cookie.
	r.Route("/api", func(r chi.Router) {
		r.Use(visitorMiddleware(sessions))
		r.Get("/state", handleState())
		r.Get("/events", handleEvents(broker))
		r.Post("/login", handleLogin())
		r.Post("/love", handleLove())

		r.Route("/journey", func(r chi.Router) {
			r.Post("/begin", handleStep((*journey.Journey).BeginJourney))
			r.Post("/continue", handleStep((*journey.Journey).ContinueToGame))
			r.Post("/final", handleStep((*journey.Journey).RevealFinalMessage))
			r.Post("/back", handleStep((*journey.Journey).Back))
		})

		r.Route("/game", func(r chi.Router) {
			r.Post("/start", handleGameStart())
			r.Post("/tap", handleTap())
			r.Post("/answer", handleAnswer())
			r.Post("/land", handleLand())
			r.Get("/ws", handleGameSocket(logger))
		})
	})
}
