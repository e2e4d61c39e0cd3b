package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/vyasa-api/internal/config"
	"github.com/phrazzld/vyasa-api/internal/generation"
	"github.com/phrazzld/vyasa-api/internal/redact"
	"google.golang.org/genai"
)

// ErrMissingAPIKey is wrapped by Ready when no credential is configured.
var ErrMissingAPIKey = errors.New("gemini API key is not set")

// modelsAPI is the subset of *genai.Models the backend calls.
type modelsAPI interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content,
		config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	GenerateImages(ctx context.Context, model, prompt string,
		config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
}

// Backend implements generation.Backend using the genai SDK.
type Backend struct {
	models modelsAPI
	logger *slog.Logger
}

// New creates a Backend from the LLM configuration.
//
// Parameters:
//   - ctx: Context for client construction
//   - logger: A structured logger for operation logging
//   - cfg: LLM configuration containing the API key, base URL and models
//
// Returns:
//   - A Backend, possibly without a client when the API key is missing
//   - An error if the configuration is invalid or the client cannot be built
func New(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Backend, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	logger = logger.With("component", "gemini_backend")

	if err := validateConfig(ctx, logger, cfg); err != nil {
		return nil, err
	}

	b := &Backend{logger: logger}
	if cfg.GeminiAPIKey == "" {
		return b, nil
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %s", generation.ErrInvalidConfig, redact.Error(err))
	}
	b.models = client.Models

	logger.InfoContext(ctx, "Gemini backend initialised",
		"text_model", cfg.TextModel,
		"image_models", cfg.ImageModels)
	return b, nil
}

// newWithModels wires a Backend directly to a models implementation.
func newWithModels(models modelsAPI, logger *slog.Logger) *Backend {
	return &Backend{models: models, logger: logger.With("component", "gemini_backend")}
}

// Ready implements generation.Backend.
func (b *Backend) Ready() error {
	if b == nil || b.models == nil {
		return fmt.Errorf("%w: %w", generation.ErrInvalidConfig, ErrMissingAPIKey)
	}
	return nil
}

// Send implements generation.Backend.
func (b *Backend) Send(ctx context.Context, req generation.Request) (*generation.Response, error) {
	if err := b.Ready(); err != nil {
		return nil, err
	}

	if req.Shape == generation.ShapeImages {
		return b.sendImages(ctx, req)
	}
	return b.sendContent(ctx, req)
}

func (b *Backend) sendContent(ctx context.Context, req generation.Request) (*generation.Response, error) {
	contents := genai.Text(req.PromptText)
	resp, err := b.models.GenerateContent(ctx, req.Model, contents, contentConfig(req))
	if err != nil {
		return nil, fmt.Errorf("generate content with %s: %w", req.Model, err)
	}

	out := fromContentResponse(resp)
	if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		b.logger.WarnContext(ctx, "prompt blocked by provider",
			"model", req.Model,
			"block_reason", string(resp.PromptFeedback.BlockReason))
	}
	return out, nil
}

func (b *Backend) sendImages(ctx context.Context, req generation.Request) (*generation.Response, error) {
	resp, err := b.models.GenerateImages(ctx, req.Model, req.PromptText, imagesConfig(req))
	if err != nil {
		return nil, fmt.Errorf("generate images with %s: %w", req.Model, err)
	}

	out, filtered := fromImagesResponse(resp)
	for _, reason := range filtered {
		b.logger.WarnContext(ctx, "image filtered by provider", "model", req.Model, "reason", reason)
	}
	return out, nil
}
