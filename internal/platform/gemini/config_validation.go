package gemini

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/vyasa-api/internal/config"
	"github.com/phrazzld/vyasa-api/internal/generation"
)

// validateConfig checks the settings the backend needs before any call is
// made. A missing API key is not an error here: it is reported per call by
// Ready so the process can still start and serve health checks.
//
// Parameters:
//   - ctx: Context for logging
//   - logger: Logger for recording validation results
//   - cfg: The LLM configuration to validate
//
// Returns:
//   - An error wrapping generation.ErrInvalidConfig if validation fails
func validateConfig(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) error {
	if cfg.TextModel == "" {
		logger.ErrorContext(ctx, "missing text model", "error", "TextModel is empty")
		return fmt.Errorf("%w: text model cannot be empty", generation.ErrInvalidConfig)
	}

	if len(cfg.ImageModels) == 0 {
		logger.ErrorContext(ctx, "missing image models", "error", "ImageModels is empty")
		return fmt.Errorf("%w: at least one image model is required", generation.ErrInvalidConfig)
	}

	if cfg.GeminiAPIKey == "" {
		logger.WarnContext(ctx, "Gemini API key is not set; generation requests will fail until it is configured")
	}

	if cfg.TimeoutSeconds <= 0 {
		logger.WarnContext(ctx, "request timeout is not positive, calls are bounded only by the caller",
			"value", cfg.TimeoutSeconds)
	}

	return nil
}
