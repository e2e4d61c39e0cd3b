package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/vyasa-api/internal/source"
)

// MockNormalizer implements content.SourceNormalizer for testing
type MockNormalizer struct {
	NormalizeDocumentFn       func(ctx context.Context, doc source.Document) (*source.ExtractedText, error)
	NormalizeVideoReferenceFn func(ctx context.Context, url string) (*source.ExtractedText, error)

	// Default response values
	Extracted *source.ExtractedText
	Err       error

	Calls struct {
		mu        sync.Mutex
		Documents []source.Document
		URLs      []string
	}
}

// NormalizeDocument implements content.SourceNormalizer
func (m *MockNormalizer) NormalizeDocument(ctx context.Context, doc source.Document) (*source.ExtractedText, error) {
	m.Calls.mu.Lock()
	m.Calls.Documents = append(m.Calls.Documents, doc)
	m.Calls.mu.Unlock()

	if m.NormalizeDocumentFn != nil {
		return m.NormalizeDocumentFn(ctx, doc)
	}
	return m.Extracted, m.Err
}

// NormalizeVideoReference implements content.SourceNormalizer
func (m *MockNormalizer) NormalizeVideoReference(ctx context.Context, url string) (*source.ExtractedText, error) {
	m.Calls.mu.Lock()
	m.Calls.URLs = append(m.Calls.URLs, url)
	m.Calls.mu.Unlock()

	if m.NormalizeVideoReferenceFn != nil {
		return m.NormalizeVideoReferenceFn(ctx, url)
	}
	return m.Extracted, m.Err
}

// NewMockNormalizerWithText creates a MockNormalizer that extracts text
func NewMockNormalizerWithText(text string) *MockNormalizer {
	return &MockNormalizer{Extracted: &source.ExtractedText{Text: text}}
}
