package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/vyasa-api/internal/generation"
)

// Step is one scripted answer of a MockGenerator.
type Step struct {
	Result generation.Result
	Err    error
}

// MockGenerator implements generation.Generator for testing
type MockGenerator struct {
	// GenerateFn allows test cases to mock the Generate behavior
	GenerateFn func(ctx context.Context, req generation.Request) (generation.Result, error)

	// Steps are returned one per call, in order, when GenerateFn is nil.
	// Once exhausted the default values below are used.
	Steps []Step

	// Default response values
	Result generation.Result
	Err    error

	// Call tracking for verification
	GenerateCalls struct {
		// mu protects the call tracking state for concurrent test cases
		mu sync.Mutex

		// Count tracks how many times Generate was called
		Count int

		// Requests contains all requests passed to Generate calls
		Requests []generation.Request

		// Contexts contains all contexts passed to Generate calls
		Contexts []context.Context
	}
}

// Generate implements the generation.Generator interface
func (m *MockGenerator) Generate(ctx context.Context, req generation.Request) (generation.Result, error) {
	m.GenerateCalls.mu.Lock()
	call := m.GenerateCalls.Count
	m.GenerateCalls.Count++
	m.GenerateCalls.Requests = append(m.GenerateCalls.Requests, req)
	m.GenerateCalls.Contexts = append(m.GenerateCalls.Contexts, ctx)
	m.GenerateCalls.mu.Unlock()

	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, req)
	}
	if call < len(m.Steps) {
		return m.Steps[call].Result, m.Steps[call].Err
	}
	return m.Result, m.Err
}

// Calls returns a copy of the requests seen so far.
func (m *MockGenerator) Calls() []generation.Request {
	m.GenerateCalls.mu.Lock()
	defer m.GenerateCalls.mu.Unlock()
	return append([]generation.Request(nil), m.GenerateCalls.Requests...)
}

// Reset resets the call tracking state
func (m *MockGenerator) Reset() {
	m.GenerateCalls.mu.Lock()
	defer m.GenerateCalls.mu.Unlock()

	m.GenerateCalls.Count = 0
	m.GenerateCalls.Requests = nil
	m.GenerateCalls.Contexts = nil
}

// NewMockGeneratorWithText creates a MockGenerator that always returns text
func NewMockGeneratorWithText(text string) *MockGenerator {
	return &MockGenerator{Result: generation.TextResult(text)}
}

// NewMockGeneratorWithError creates a MockGenerator that returns the specified error
func NewMockGeneratorWithError(err error) *MockGenerator {
	return &MockGenerator{Err: err}
}

// NewScriptedGenerator creates a MockGenerator that answers with steps in order
func NewScriptedGenerator(steps ...Step) *MockGenerator {
	return &MockGenerator{Steps: steps}
}

// MockGeneratorThatFails creates a MockGenerator that simulates a generation failure
func MockGeneratorThatFails() *MockGenerator {
	return &MockGenerator{
		Err: &generation.GenerationError{Model: "mock-model", Detail: "upstream unavailable"},
	}
}

// MockGeneratorWithContentBlocked creates a MockGenerator that simulates content being blocked
func MockGeneratorWithContentBlocked() *MockGenerator {
	return &MockGenerator{
		Err: &generation.GenerationError{
			Model:  "mock-model",
			Detail: "prompt blocked: SAFETY",
			Err:    generation.ErrContentBlocked,
		},
	}
}

// MockGeneratorMisconfigured creates a MockGenerator that reports a missing credential
func MockGeneratorMisconfigured() *MockGenerator {
	return &MockGenerator{Err: generation.ErrInvalidConfig}
}
