package mock

import "github.com/quantabase/fingraph/ai"

// MockProvider implements ai.Provider for testing.
type MockProvider struct {
	MockEmbedder *MockEmbedder
}

var _ ai.Provider = (*MockProvider)(nil)

// NewMockProvider creates a provider with a default mock embedder.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		MockEmbedder: NewMockEmbedder(),
	}
}

// Embedder returns the mock embedding service.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.MockEmbedder
}

// Close is a no-op.
func (p *MockProvider) Close() error {
	return nil
}
