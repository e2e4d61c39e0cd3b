package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/vyasa-api/internal/generation"
)

// MockBackend implements generation.Backend for testing
type MockBackend struct {
	ReadyFn func() error
	SendFn  func(ctx context.Context, req generation.Request) (*generation.Response, error)

	// Default values used when the function fields are nil
	ReadyErr error
	Response *generation.Response
	Err      error

	SendCalls struct {
		mu       sync.Mutex
		Count    int
		Requests []generation.Request
	}
}

// Ready implements generation.Backend
func (m *MockBackend) Ready() error {
	if m.ReadyFn != nil {
		return m.ReadyFn()
	}
	return m.ReadyErr
}

// Send implements generation.Backend
func (m *MockBackend) Send(ctx context.Context, req generation.Request) (*generation.Response, error) {
	m.SendCalls.mu.Lock()
	m.SendCalls.Count++
	m.SendCalls.Requests = append(m.SendCalls.Requests, req)
	m.SendCalls.mu.Unlock()

	if m.SendFn != nil {
		return m.SendFn(ctx, req)
	}
	return m.Response, m.Err
}

// Sent returns how many times Send was called.
func (m *MockBackend) Sent() int {
	m.SendCalls.mu.Lock()
	defer m.SendCalls.mu.Unlock()
	return m.SendCalls.Count
}

// NewMockBackendWithText creates a MockBackend whose responses carry text
// in the first candidate.
func NewMockBackendWithText(text string) *MockBackend {
	return &MockBackend{
		Response: &generation.Response{
			Candidates: []generation.Candidate{{Parts: []generation.Part{{Text: text}}}},
		},
	}
}
