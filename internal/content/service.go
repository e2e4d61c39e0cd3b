package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/vyasa-api/internal/config"
	"github.com/phrazzld/vyasa-api/internal/generation"
	"github.com/phrazzld/vyasa-api/internal/source"
)

// SourceNormalizer converts uploaded documents and video references to text.
// *source.Normalizer implements it.
type SourceNormalizer interface {
	NormalizeDocument(ctx context.Context, doc source.Document) (*source.ExtractedText, error)
	NormalizeVideoReference(ctx context.Context, url string) (*source.ExtractedText, error)
}

// Service produces notes, analyses, question banks, roadmaps and visuals.
type Service struct {
	normalizer SourceNormalizer
	generator  generation.Generator
	models     config.LLMConfig
	logger     *slog.Logger
}

// NewService creates a Service.
//
// Parameters:
//   - normalizer: Extracts text from documents and video references
//   - generator: Performs individual generation calls
//   - models: The model names used for each operation
//   - logger: A structured logger for operation logging
//
// Returns:
//   - A Service, or an error if a dependency is missing
func NewService(
	normalizer SourceNormalizer,
	generator generation.Generator,
	models config.LLMConfig,
	logger *slog.Logger,
) (*Service, error) {
	if normalizer == nil {
		return nil, errors.New("normalizer cannot be nil")
	}
	if generator == nil {
		return nil, errors.New("generator cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Service{
		normalizer: normalizer,
		generator:  generator,
		models:     models,
		logger:     logger.With("component", "content_service"),
	}, nil
}

// Notes are Markdown study notes for one video.
type Notes struct {
	Markdown            string
	VideoID             string
	TranscriptAvailable bool
	MetadataOnly        bool
	Warnings            []string
}

// DocumentAnalysis is a Markdown summary of an uploaded document.
type DocumentAnalysis struct {
	Summary  string
	FileName string
	Warnings []string
}

// QuestionBank is a Markdown list of exam questions for a document.
type QuestionBank struct {
	Questions string
	FileName  string
	Warnings  []string
}

// documentSampling is used for notes and document analysis.
func documentSampling() generation.SamplingConfig {
	return generation.Sampling(0.2, 0.95, 40, 4096)
}

// questionSampling trades determinism for variety.
func questionSampling() generation.SamplingConfig {
	return generation.Sampling(0.7, 0.95, 40, 4096)
}

// GenerateNotes builds study notes for a video reference. An unrecognized
// reference fails before any generation; a video without a transcript is
// summarized from its metadata.
func (s *Service) GenerateNotes(ctx context.Context, videoURL string) (*Notes, error) {
	videoURL = strings.TrimSpace(videoURL)
	if videoURL == "" {
		return nil, fmt.Errorf("%w: video URL is required", ErrEmptyInput)
	}

	extracted, err := s.normalizer.NormalizeVideoReference(ctx, videoURL)
	if err != nil {
		return nil, err
	}

	framing := sourceTranscript
	if !extracted.TranscriptAvailable {
		framing = sourceMetadata
	}
	prompt, err := render(promptNotes, notesData{
		Source:  framing,
		VideoID: extracted.VideoID,
		URL:     videoURL,
		Content: extracted.Text,
	})
	if err != nil {
		return nil, err
	}

	text, err := s.generateText(ctx, generation.Request{
		PromptText: prompt,
		Model:      s.models.TextModel,
		Sampling:   documentSampling(),
		Safety:     generation.StrictSafety(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "generated video notes",
		"video_id", extracted.VideoID,
		"transcript_available", extracted.TranscriptAvailable,
		"notes_length", len(text))

	return &Notes{
		Markdown:            text,
		VideoID:             extracted.VideoID,
		TranscriptAvailable: extracted.TranscriptAvailable,
		MetadataOnly:        extracted.MetadataOnly,
		Warnings:            extracted.Warnings,
	}, nil
}

// AnalyzeDocument summarizes an uploaded document.
func (s *Service) AnalyzeDocument(ctx context.Context, doc source.Document) (*DocumentAnalysis, error) {
	extracted, prompt, err := s.documentPrompt(ctx, doc, promptAnalysis)
	if err != nil {
		return nil, err
	}

	text, err := s.generateText(ctx, generation.Request{
		PromptText: prompt,
		Model:      s.models.AnalysisModel,
		Sampling:   documentSampling(),
		Safety:     generation.StrictSafety(),
	})
	if err != nil {
		return nil, err
	}

	return &DocumentAnalysis{Summary: text, FileName: doc.FileName, Warnings: extracted.Warnings}, nil
}

// GenerateQuestionBank writes exam questions for an uploaded document.
func (s *Service) GenerateQuestionBank(ctx context.Context, doc source.Document) (*QuestionBank, error) {
	extracted, prompt, err := s.documentPrompt(ctx, doc, promptQuestions)
	if err != nil {
		return nil, err
	}

	text, err := s.generateText(ctx, generation.Request{
		PromptText: prompt,
		Model:      s.models.TextModel,
		Sampling:   questionSampling(),
		Safety:     generation.StrictSafety(),
	})
	if err != nil {
		return nil, err
	}

	return &QuestionBank{Questions: text, FileName: doc.FileName, Warnings: extracted.Warnings}, nil
}

// documentPrompt extracts the document and renders the named prompt over
// its text. Any extraction failure is returned before a prompt exists.
func (s *Service) documentPrompt(
	ctx context.Context,
	doc source.Document,
	name string,
) (*source.ExtractedText, string, error) {
	extracted, err := s.normalizer.NormalizeDocument(ctx, doc)
	if err != nil {
		return nil, "", err
	}
	if strings.TrimSpace(extracted.Text) == "" {
		return nil, "", &source.ExtractionError{
			Kind:      source.KindExtractionFailed,
			MediaType: doc.MediaType,
			Detail:    "document contains no extractable text",
		}
	}

	prompt, err := render(name, documentData{FileName: doc.FileName, Content: extracted.Text})
	if err != nil {
		return nil, "", err
	}
	return extracted, prompt, nil
}

// generateText performs one generation and requires a text answer.
func (s *Service) generateText(ctx context.Context, req generation.Request) (string, error) {
	result, err := s.generator.Generate(ctx, req)
	if err != nil {
		return "", err
	}
	if result.Kind != generation.KindText {
		s.logger.WarnContext(ctx, "generation produced no text",
			"model", req.Model,
			"result", result.String())
		return "", fmt.Errorf("%w: %s returned %s", ErrNoContent, req.Model, result.Kind)
	}
	return result.Text, nil
}
