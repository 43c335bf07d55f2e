package providers

import (
	"context"
	"sync/atomic"
	"time"
)

const MockName = "mock"

// MockProvider is a Provider for testing.
type MockProvider struct {
	// Configurable behavior
	Latency time.Duration
	Err     error
	Result  *LookupResult

	// State
	fetchCount atomic.Int64
}

// NewMockProvider creates a mock returning the given text with a canonical
// reference equal to the requested one.
func NewMockProvider(text string) *MockProvider {
	return &MockProvider{
		Result: &LookupResult{
			Version:         VersionESV,
			Text:            text,
			TranslationName: "Mock Translation",
		},
	}
}

// Name returns the provider identifier.
func (m *MockProvider) Name() string {
	return MockName
}

// Fetch returns the configured result or error, recording the call.
func (m *MockProvider) Fetch(ctx context.Context, reference string, opts LookupOptions) (*LookupResult, error) {
	m.fetchCount.Add(1)

	if m.Latency > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(m.Latency):
		}
	}

	if m.Err != nil {
		return nil, m.Err
	}

	result := *m.Result
	result.Reference = reference
	if result.Canonical == "" {
		result.Canonical = reference
	}
	return &result, nil
}

// FetchCount reports how many times Fetch was called.
func (m *MockProvider) FetchCount() int64 {
	return m.fetchCount.Load()
}

// Verify interface
var _ Provider = (*MockProvider)(nil)
