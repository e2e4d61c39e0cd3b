package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/vyasa-api/internal/api"
	"github.com/phrazzld/vyasa-api/internal/config"
	"github.com/phrazzld/vyasa-api/internal/content"
	"github.com/phrazzld/vyasa-api/internal/generation"
	"github.com/phrazzld/vyasa-api/internal/platform/gemini"
	"github.com/phrazzld/vyasa-api/internal/platform/youtube"
	"github.com/phrazzld/vyasa-api/internal/source"
)

// application holds all the shared application dependencies.
type application struct {
	config *config.Config
	logger *slog.Logger

	generator      generation.Generator
	contentService api.ContentService
}

// newApplication creates a new application instance with all dependencies initialized.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	backend, err := gemini.New(ctx, logger, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini backend: %w", err)
	}

	return newApplicationWithBackend(cfg, logger, backend)
}

// newApplicationWithBackend wires everything above the generation backend.
func newApplicationWithBackend(
	cfg *config.Config,
	logger *slog.Logger,
	backend generation.Backend,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	platform, err := youtube.NewClient(cfg.Sources, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize YouTube client: %w", err)
	}

	normalizer := source.NewNormalizer(platform, cfg.Sources.MaxDocumentBytes, logger)

	app.generator = generation.NewClient(backend, cfg.LLM.RequestTimeout(), logger)
	if err := backend.Ready(); err != nil {
		logger.Warn("content generation unavailable until configured", "reason", err)
	}

	app.contentService, err = content.NewService(normalizer, app.generator, cfg.LLM, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create content service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// healthHandler reports liveness. It never touches the generation backend.
func (app *application) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		app.logger.Error("Failed to write health check response", "error", err)
	}
}
