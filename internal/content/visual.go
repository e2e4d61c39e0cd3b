package content

import (
	"context"
	"fmt"
	"strings"

	"github.com/phrazzld/vyasa-api/internal/generation"
)

// FallbackSummary describes a visual that could only be produced as text.
const FallbackSummary = "Educational content generated as text (image generation not supported)"

// Visual is the outcome of GenerateVisual: an image, or text when no tier
// produced one.
type Visual struct {
	Result generation.Result
	// Tier is the 1-based tier that produced Result.
	Tier     int
	Model    string
	IsText   bool
	Attempts []generation.AttemptOutcome
}

type visualTier struct {
	template string
	build    func(prompt, model string) generation.Request
}

// Tiers pair positionally with config.LLMConfig.ImageModels: a Gemini model
// asked for image output, an Imagen model, then a text model.
var visualTiers = []visualTier{
	{promptVisualImage, func(prompt, model string) generation.Request {
		return generation.Request{
			PromptText:  prompt,
			Model:       model,
			Sampling:    generation.Sampling(0.4, 1, 32, 4096),
			Safety:      generation.RelaxedSafety(),
			ExpectImage: true,
		}
	}},
	{promptVisualImagen, func(prompt, model string) generation.Request {
		return generation.Request{
			PromptText: prompt,
			Model:      model,
			Shape:      generation.ShapeImages,
		}
	}},
	{promptVisualText, func(prompt, model string) generation.Request {
		return generation.Request{PromptText: prompt, Model: model}
	}},
}

// visualRequests builds one request per configured image model.
func (s *Service) visualRequests(notes string) ([]generation.Request, error) {
	models := s.models.ImageModels
	if len(models) > len(visualTiers) {
		models = models[:len(visualTiers)]
	}

	data := visualData{Notes: notes}
	requests := make([]generation.Request, 0, len(models))
	for i, model := range models {
		tier := visualTiers[i]
		prompt, err := render(tier.template, data)
		if err != nil {
			return nil, err
		}
		requests = append(requests, tier.build(prompt, model))
	}
	return requests, nil
}

// GenerateVisual produces a diagram for the given notes, trying each
// configured image tier in order and falling back to the final tier's text.
func (s *Service) GenerateVisual(ctx context.Context, notes string) (*Visual, error) {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return nil, fmt.Errorf("%w: notes content is required", ErrEmptyInput)
	}

	tiers, err := s.visualRequests(notes)
	if err != nil {
		return nil, err
	}

	chain := generation.NewChain(s.generator, generation.KindImage, s.logger)
	res, err := chain.Run(ctx, tiers)
	if err != nil {
		return nil, err
	}

	return &Visual{
		Result:   res.Result,
		Tier:     res.SucceededAtTier,
		Model:    tiers[res.SucceededAtTier-1].Model,
		IsText:   res.IsFallbackText(),
		Attempts: res.Attempts,
	}, nil
}
