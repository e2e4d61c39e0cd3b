package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/vyasa-api/internal/config"
)

// loadAppConfig loads the application configuration from environment variables or config file.
// Returns the loaded config and any loading error.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"mode", cfg.Server.Mode)

	slog.Debug("LLM configuration",
		"api_key_present", cfg.LLM.GeminiAPIKey != "",
		"text_model", cfg.LLM.TextModel,
		"analysis_model", cfg.LLM.AnalysisModel,
		"image_models", cfg.LLM.ImageModels)

	return cfg, nil
}
