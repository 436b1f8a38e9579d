// Copyright 2025 arXade Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package gemini

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/tmc/langchaingo/llms/googleai"
	"google.golang.org/api/option"

	"github.com/arxade/arxade/ai"
)

// Provider implements ai.Provider backed by the Google Gemini APIs. A single
// genai client serves both embedding task types; generation goes through a
// separate langchaingo model handle.
type Provider struct {
	client    *genai.Client
	embedder  *Embedder
	generator *Generator
}

// NewProvider creates a Gemini-backed provider from the given configuration.
// It validates the configuration but does not call the remote service, so an
// invalid API key surfaces on first use rather than here.
func NewProvider(ctx context.Context, cfg *ai.Config) (ai.Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.APIKey),
		googleai.WithDefaultModel(cfg.GenerationModel),
	)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to create generation model: %w", err)
	}

	docModel := client.EmbeddingModel(cfg.EmbeddingModel)
	docModel.TaskType = genai.TaskTypeRetrievalDocument

	queryModel := client.EmbeddingModel(cfg.EmbeddingModel)
	queryModel.TaskType = genai.TaskTypeRetrievalQuery

	return &Provider{
		client:    client,
		embedder:  &Embedder{docModel: docModel, queryModel: queryModel},
		generator: &Generator{llm: llm},
	}, nil
}

// Embedder returns the embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// Generator returns the text generation service.
func (p *Provider) Generator() ai.Generator {
	return p.generator
}

// Close releases the underlying client connection.
func (p *Provider) Close() error {
	return p.client.Close()
}
