// Package main implements the entry point for the Vyasa API server, which
// turns YouTube videos, uploaded documents and topics into study notes,
// question banks, learning roadmaps and visual aids.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
)

// main loads configuration, sets up logging, wires the application and
// serves HTTP until SIGINT or SIGTERM.
func main() {
	ctx := context.Background()

	app, err := initializeApp(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		app.logger.Error("Application exited with error", "error", err)
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration and sets up application components.
func initializeApp(ctx context.Context) (*application, error) {
	cfg, err := loadAppConfig()
	if err != nil {
		return nil, err
	}

	l, err := setupAppLogger(cfg)
	if err != nil {
		return nil, err
	}

	app, err := newApplication(ctx, cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}

	slog.Info("Vyasa API initialized", "port", cfg.Server.Port, "mode", cfg.Server.Mode)
	return app, nil
}
