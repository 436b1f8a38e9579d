package mock

import "github.com/arxade/arxade/ai"

// Provider bundles a mock embedder and generator behind ai.Provider.
type Provider struct {
	MockEmbedder  *Embedder
	MockGenerator *Generator
}

// NewProvider creates a provider with fresh default mocks.
func NewProvider() *Provider {
	return &Provider{
		MockEmbedder:  NewEmbedder(),
		MockGenerator: NewGenerator(),
	}
}

// Embedder returns the mock embedder.
func (p *Provider) Embedder() ai.Embedder {
	return p.MockEmbedder
}

// Generator returns the mock generator.
func (p *Provider) Generator() ai.Generator {
	return p.MockGenerator
}

// Close is a no-op.
func (p *Provider) Close() error {
	return nil
}
