package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phrazzld/vyasa-api/internal/api"
	apiMiddleware "github.com/phrazzld/vyasa-api/internal/api/middleware"
	"github.com/phrazzld/vyasa-api/internal/api/shared"
	"github.com/phrazzld/vyasa-api/internal/config"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(corsOptions(app.config.Server)))
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	contentHandler := api.NewContentHandler(
		app.contentService,
		app.config.Server.MaxUploadBytes,
		app.logger,
	)

	r.Get("/", contentHandler.Root)

	r.Route("/api", func(r chi.Router) {
		r.Post("/generate-notes", contentHandler.GenerateNotes)
		r.Post("/analyze-document", contentHandler.AnalyzeDocument)
		r.Post("/generate-questions", contentHandler.GenerateQuestions)
		r.Post("/generate-roadmap", contentHandler.GenerateRoadmap)
		r.Post("/generate-visual", contentHandler.GenerateVisual)
	})

	r.Get("/health", app.healthHandler)

	return r
}

// corsOptions allows any origin in development and only the configured
// origins in production.
func corsOptions(cfg config.ServerConfig) cors.Options {
	opts := cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Requested-With"},
		ExposedHeaders: []string{shared.TraceIDHeader},
		MaxAge:         300,
	}
	if cfg.IsProduction() {
		opts.AllowedOrigins = cfg.AllowedOrigins
	} else {
		opts.AllowedOrigins = []string{"*"}
	}
	return opts
}
