// Package testutil provides shared test doubles and audio fixtures.
package testutil

import (
	"context"
	"sync"

	"ecohspeech/internal/app/api"
)

// MockRecognizer is a configurable api.Recognizer double.
type MockRecognizer struct {
	mu sync.Mutex

	// Response and Err are returned for every call unless Hook is set.
	Response string
	Err      error
	// Hook, when set, decides the outcome per request.
	Hook func(req api.RecognizeRequest) (string, error)

	Calls []api.RecognizeRequest
}

func NewMockRecognizer() *MockRecognizer {
	return &MockRecognizer{Response: "this is a mock transcription result"}
}

func (m *MockRecognizer) Recognize(_ context.Context, req api.RecognizeRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	if m.Hook != nil {
		return m.Hook(req)
	}
	return m.Response, m.Err
}

// CallCount returns how many times Recognize was invoked.
func (m *MockRecognizer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
