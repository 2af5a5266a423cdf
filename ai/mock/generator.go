package mock

import (
	"context"
	"sync"
)

// MockGenerator is a test double for ai.Generator.
// It allows custom behavior injection via function fields.
// Safe for concurrent use.
type MockGenerator struct {
	// GenerateTextFunc is called by GenerateText if set.
	// If nil, the generator echoes a fixed canned answer.
	GenerateTextFunc func(ctx context.Context, prompt string) (string, error)

	mu        sync.Mutex
	callCount int
	prompts   []string
}

// NewMockGenerator creates a mock generator with default canned behavior.
// Note: Returns concrete type to allow test assertions via GetMockGenerator().
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// GenerateText returns the injected completion, or a canned answer if none is set.
// Every prompt is recorded for later assertions via Prompts().
func (m *MockGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.callCount++
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.GenerateTextFunc != nil {
		return m.GenerateTextFunc(ctx, prompt)
	}

	return "mock completion", nil
}

// CallCount returns the number of times GenerateText was called.
func (m *MockGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Prompts returns every prompt passed to GenerateText, in call order.
func (m *MockGenerator) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// Reset clears recorded prompts, the call count, and injected behavior.
func (m *MockGenerator) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.prompts = nil
	m.GenerateTextFunc = nil
}
