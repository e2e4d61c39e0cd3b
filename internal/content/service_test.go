package content_test

import (
	"context"
	"testing"

	"github.com/phrazzld/vyasa-api/internal/config"
	"github.com/phrazzld/vyasa-api/internal/content"
	"github.com/phrazzld/vyasa-api/internal/generation"
	"github.com/phrazzld/vyasa-api/internal/mocks"
	"github.com/phrazzld/vyasa-api/internal/platform/logger"
	"github.com/phrazzld/vyasa-api/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testModels() config.LLMConfig {
	return config.LLMConfig{
		TextModel:     "text-model",
		AnalysisModel: "analysis-model",
		ImageModels:   []string{"image-model", "imagen-model", "fallback-model"},
	}
}

func newService(t *testing.T, norm content.SourceNormalizer, gen generation.Generator) *content.Service {
	t.Helper()
	log, _ := logger.NewTestLogger(t)
	svc, err := content.NewService(norm, gen, testModels(), log)
	require.NoError(t, err)
	return svc
}

func pdfDocument() source.Document {
	return source.Document{Bytes: []byte("%PDF-1.4"), MediaType: source.MediaTypePDF, FileName: "lecture.pdf"}
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	t.Parallel()

	log, _ := logger.NewTestLogger(t)
	norm := &mocks.MockNormalizer{}
	gen := &mocks.MockGenerator{}

	_, err := content.NewService(nil, gen, testModels(), log)
	assert.Error(t, err)
	_, err = content.NewService(norm, nil, testModels(), log)
	assert.Error(t, err)
	_, err = content.NewService(norm, gen, testModels(), nil)
	assert.Error(t, err)
}

func TestGenerateNotesWithTranscript(t *testing.T) {
	t.Parallel()

	norm := &mocks.MockNormalizer{Extracted: &source.ExtractedText{
		Text:                "today we cover recursion",
		TranscriptAvailable: true,
		VideoID:             "dQw4w9WgXcQ",
	}}
	gen := mocks.NewMockGeneratorWithText("# Recursion")
	svc := newService(t, norm, gen)

	notes, err := svc.GenerateNotes(context.Background(), " https://youtu.be/dQw4w9WgXcQ ")

	require.NoError(t, err)
	assert.Equal(t, "# Recursion", notes.Markdown)
	assert.Equal(t, "dQw4w9WgXcQ", notes.VideoID)
	assert.True(t, notes.TranscriptAvailable)
	assert.Equal(t, []string{"https://youtu.be/dQw4w9WgXcQ"}, norm.Calls.URLs)

	calls := gen.Calls()
	require.Len(t, calls, 1)
	req := calls[0]
	assert.Equal(t, "text-model", req.Model)
	assert.Contains(t, req.PromptText, "from this YouTube video TRANSCRIPT:")
	assert.Contains(t, req.PromptText, "VIDEO ID: dQw4w9WgXcQ")
	assert.Contains(t, req.PromptText, "today we cover recursion")
	assert.Equal(t, generation.Sampling(0.2, 0.95, 40, 4096), req.Sampling)
	assert.Equal(t, generation.StrictSafety(), req.Safety)
}

func TestGenerateNotesFromMetadata(t *testing.T) {
	t.Parallel()

	norm := &mocks.MockNormalizer{Extracted: &source.ExtractedText{
		Text:         "Title: Sorting\n\nDescription: No description available.",
		MetadataOnly: true,
		VideoID:      "dQw4w9WgXcQ",
	}}
	gen := mocks.NewMockGeneratorWithText("notes")
	svc := newService(t, norm, gen)

	notes, err := svc.GenerateNotes(context.Background(), "https://youtu.be/dQw4w9WgXcQ")

	require.NoError(t, err)
	assert.True(t, notes.MetadataOnly)
	assert.Contains(t, gen.Calls()[0].PromptText, "VIDEO METADATA (NO TRANSCRIPT AVAILABLE)")
}

func TestGenerateNotesInvalidReferenceSkipsGeneration(t *testing.T) {
	t.Parallel()

	norm := &mocks.MockNormalizer{Err: &source.ExtractionError{Kind: source.KindInvalidReference}}
	gen := mocks.NewMockGeneratorWithText("unused")
	svc := newService(t, norm, gen)

	_, err := svc.GenerateNotes(context.Background(), "https://example.com/video")

	assert.ErrorIs(t, err, source.ErrInvalidReference)
	assert.Zero(t, gen.GenerateCalls.Count)
}

func TestGenerateNotesEmptyURL(t *testing.T) {
	t.Parallel()

	norm := &mocks.MockNormalizer{}
	svc := newService(t, norm, &mocks.MockGenerator{})

	_, err := svc.GenerateNotes(context.Background(), "  ")

	assert.ErrorIs(t, err, content.ErrEmptyInput)
	assert.Empty(t, norm.Calls.URLs)
}

func TestAnalyzeDocument(t *testing.T) {
	t.Parallel()

	norm := &mocks.MockNormalizer{Extracted: &source.ExtractedText{
		Text:     "Chapter 1: Graphs",
		Warnings: []string{"page 3: unreadable"},
	}}
	gen := mocks.NewMockGeneratorWithText("## Summary")
	svc := newService(t, norm, gen)

	analysis, err := svc.AnalyzeDocument(context.Background(), pdfDocument())

	require.NoError(t, err)
	assert.Equal(t, "## Summary", analysis.Summary)
	assert.Equal(t, "lecture.pdf", analysis.FileName)
	assert.Equal(t, []string{"page 3: unreadable"}, analysis.Warnings)

	req := gen.Calls()[0]
	assert.Equal(t, "analysis-model", req.Model)
	assert.Contains(t, req.PromptText, "DOCUMENT NAME: lecture.pdf")
	assert.Contains(t, req.PromptText, "Chapter 1: Graphs")
	assert.Equal(t, float32(0.2), *req.Sampling.Temperature)
}

func TestGenerateQuestionBank(t *testing.T) {
	t.Parallel()

	norm := mocks.NewMockNormalizerWithText("Chapter 1: Graphs")
	gen := mocks.NewMockGeneratorWithText("# 2 Mark Questions")
	svc := newService(t, norm, gen)

	bank, err := svc.GenerateQuestionBank(context.Background(), pdfDocument())

	require.NoError(t, err)
	assert.Equal(t, "# 2 Mark Questions", bank.Questions)
	req := gen.Calls()[0]
	assert.Equal(t, "text-model", req.Model)
	assert.Equal(t, float32(0.7), *req.Sampling.Temperature)
	assert.Contains(t, req.PromptText, "Exclude multiple-choice questions")
}

func TestDocumentOperationsShortCircuitOnExtractionErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		extracted *source.ExtractedText
		err       error
		wantIs    error
	}{
		{
			name:   "unsupported type",
			err:    &source.ExtractionError{Kind: source.KindUnsupportedType, MediaType: "image/png"},
			wantIs: source.ErrUnsupportedType,
		},
		{
			name:   "extraction failed",
			err:    &source.ExtractionError{Kind: source.KindExtractionFailed, Detail: "corrupt"},
			wantIs: source.ErrExtractionFailed,
		},
		{
			name:      "no text",
			extracted: &source.ExtractedText{Text: " \n "},
			wantIs:    source.ErrExtractionFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			norm := &mocks.MockNormalizer{Extracted: tt.extracted, Err: tt.err}
			gen := mocks.NewMockGeneratorWithText("unused")
			svc := newService(t, norm, gen)

			_, err := svc.AnalyzeDocument(context.Background(), pdfDocument())
			assert.ErrorIs(t, err, tt.wantIs)

			_, err = svc.GenerateQuestionBank(context.Background(), pdfDocument())
			assert.ErrorIs(t, err, tt.wantIs)

			assert.Zero(t, gen.GenerateCalls.Count)
		})
	}
}

func TestSingleCallErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		gen   *mocks.MockGenerator
		check func(t *testing.T, err error)
	}{
		{
			name: "empty result",
			gen:  &mocks.MockGenerator{Result: generation.EmptyResult()},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, content.ErrNoContent)
			},
		},
		{
			name: "generation failure",
			gen:  mocks.MockGeneratorThatFails(),
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, generation.ErrGenerationFailed)
			},
		},
		{
			name: "misconfigured",
			gen:  mocks.MockGeneratorMisconfigured(),
			check: func(t *testing.T, err error) {
				assert.True(t, generation.IsConfigError(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := newService(t, mocks.NewMockNormalizerWithText("body"), tt.gen)

			_, err := svc.AnalyzeDocument(context.Background(), pdfDocument())

			require.Error(t, err)
			tt.check(t, err)
		})
	}
}
