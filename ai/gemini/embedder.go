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
	"strings"

	"github.com/google/generative-ai-go/genai"

	"github.com/arxade/arxade/ai"
)

// Embedder implements ai.Embedder using the Gemini embedding API. Documents
// and queries use the same model with different task types, which produces
// asymmetric representations tuned for retrieval.
type Embedder struct {
	docModel   *genai.EmbeddingModel
	queryModel *genai.EmbeddingModel
}

// EmbedDocuments generates retrieval-document embeddings for a batch of
// texts in a single API request.
func (e *Embedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, ai.ErrEmptyBatch
	}

	batch := e.docModel.NewBatch()
	for _, text := range texts {
		batch = batch.AddContent(genai.Text(text))
	}

	res, err := e.docModel.BatchEmbedContents(ctx, batch)
	if err != nil {
		return nil, wrapEmbedError(err)
	}

	vectors := make([][]float32, len(res.Embeddings))
	for i, emb := range res.Embeddings {
		vectors[i] = emb.Values
	}
	return vectors, nil
}

// EmbedQuery generates a retrieval-query embedding for a single search query.
func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	res, err := e.queryModel.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, wrapEmbedError(err)
	}
	return res.Embedding.Values, nil
}

// wrapEmbedError maps credential rejections onto ai.ErrInvalidCredential so
// callers can distinguish fatal auth failures from transient ones.
func wrapEmbedError(err error) error {
	msg := err.Error()
	if strings.Contains(msg, "API key not valid") || strings.Contains(msg, "API_KEY_INVALID") {
		return fmt.Errorf("%w: %s", ai.ErrInvalidCredential, msg)
	}
	return fmt.Errorf("failed to generate embedding: %w", err)
}
