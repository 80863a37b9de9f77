package llm

import (
	"context"
	"encoding/json"
	"sync"
)

const mockModel = "mock"

// MockResponse scripts one answer of the mock provider. Leaving both
// Content and Err empty scripts a completion that produced nothing.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider replays scripted answers in order and keeps every request
// it was handed. It backs the "mock" provider setting as well as tests.
type MockProvider struct {
	mu       sync.Mutex
	script   []MockResponse
	fallback json.RawMessage

	// Calls holds the requests seen so far, oldest first.
	Calls []Request
}

func NewMockProvider(script ...MockResponse) *MockProvider {
	return &MockProvider{script: script}
}

// SetFallback makes the provider answer with content forever once the
// script runs out. A nil content restores the unavailable behaviour.
func (m *MockProvider) SetFallback(content json.RawMessage) {
	m.mu.Lock()
	m.fallback = content
	m.mu.Unlock()
}

// Enqueue appends answers to the end of the script.
func (m *MockProvider) Enqueue(answers ...MockResponse) {
	m.mu.Lock()
	m.script = append(m.script, answers...)
	m.mu.Unlock()
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	answer, ok := m.pop()
	if !ok {
		return nil, &ErrProviderUnavailable{}
	}
	if answer.Err != nil {
		return nil, answer.Err
	}
	return &Response{
		Content:    answer.Content,
		Usage:      answer.Usage,
		Model:      mockModel,
		StopReason: "end",
	}, nil
}

// pop takes the next scripted answer, falling back when the script is
// exhausted. Callers hold m.mu.
func (m *MockProvider) pop() (MockResponse, bool) {
	if len(m.script) > 0 {
		next := m.script[0]
		m.script = m.script[1:]
		return next, true
	}
	if m.fallback != nil {
		return MockResponse{Content: m.fallback}, true
	}
	return MockResponse{}, false
}

func (m *MockProvider) ModelID() string { return mockModel }

// CallCount reports how many times Generate ran.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
