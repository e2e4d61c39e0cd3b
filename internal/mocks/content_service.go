package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/vyasa-api/internal/content"
	"github.com/phrazzld/vyasa-api/internal/source"
)

// MockContentService implements api.ContentService for handler tests.
// Each operation calls its Fn field when set, otherwise it returns the
// matching default value together with Err.
type MockContentService struct {
	GenerateNotesFn        func(ctx context.Context, videoURL string) (*content.Notes, error)
	AnalyzeDocumentFn      func(ctx context.Context, doc source.Document) (*content.DocumentAnalysis, error)
	GenerateQuestionBankFn func(ctx context.Context, doc source.Document) (*content.QuestionBank, error)
	BuildRoadmapFn         func(ctx context.Context, topic string) (*content.Roadmap, error)
	GenerateVisualFn       func(ctx context.Context, notes string) (*content.Visual, error)

	Notes    *content.Notes
	Analysis *content.DocumentAnalysis
	Bank     *content.QuestionBank
	Roadmap  *content.Roadmap
	Visual   *content.Visual
	Err      error

	Calls struct {
		mu        sync.Mutex
		VideoURLs []string
		Documents []source.Document
		Topics    []string
		Notes     []string
	}
}

func (m *MockContentService) record(fn func()) {
	m.Calls.mu.Lock()
	defer m.Calls.mu.Unlock()
	fn()
}

// GenerateNotes implements api.ContentService
func (m *MockContentService) GenerateNotes(ctx context.Context, videoURL string) (*content.Notes, error) {
	m.record(func() { m.Calls.VideoURLs = append(m.Calls.VideoURLs, videoURL) })
	if m.GenerateNotesFn != nil {
		return m.GenerateNotesFn(ctx, videoURL)
	}
	return m.Notes, m.Err
}

// AnalyzeDocument implements api.ContentService
func (m *MockContentService) AnalyzeDocument(ctx context.Context, doc source.Document) (*content.DocumentAnalysis, error) {
	m.record(func() { m.Calls.Documents = append(m.Calls.Documents, doc) })
	if m.AnalyzeDocumentFn != nil {
		return m.AnalyzeDocumentFn(ctx, doc)
	}
	return m.Analysis, m.Err
}

// GenerateQuestionBank implements api.ContentService
func (m *MockContentService) GenerateQuestionBank(ctx context.Context, doc source.Document) (*content.QuestionBank, error) {
	m.record(func() { m.Calls.Documents = append(m.Calls.Documents, doc) })
	if m.GenerateQuestionBankFn != nil {
		return m.GenerateQuestionBankFn(ctx, doc)
	}
	return m.Bank, m.Err
}

// BuildRoadmap implements api.ContentService
func (m *MockContentService) BuildRoadmap(ctx context.Context, topic string) (*content.Roadmap, error) {
	m.record(func() { m.Calls.Topics = append(m.Calls.Topics, topic) })
	if m.BuildRoadmapFn != nil {
		return m.BuildRoadmapFn(ctx, topic)
	}
	return m.Roadmap, m.Err
}

// GenerateVisual implements api.ContentService
func (m *MockContentService) GenerateVisual(ctx context.Context, notes string) (*content.Visual, error) {
	m.record(func() { m.Calls.Notes = append(m.Calls.Notes, notes) })
	if m.GenerateVisualFn != nil {
		return m.GenerateVisualFn(ctx, notes)
	}
	return m.Visual, m.Err
}

// DocumentCalls returns a copy of the documents passed to the service.
func (m *MockContentService) DocumentCalls() []source.Document {
	m.Calls.mu.Lock()
	defer m.Calls.mu.Unlock()
	return append([]source.Document(nil), m.Calls.Documents...)
}

// CallCount returns the number of service calls of any kind.
func (m *MockContentService) CallCount() int {
	m.Calls.mu.Lock()
	defer m.Calls.mu.Unlock()
	return len(m.Calls.VideoURLs) + len(m.Calls.Documents) + len(m.Calls.Topics) + len(m.Calls.Notes)
}
