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


package mock

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/arxade/arxade/ai"
)

// Dimension is the vector dimensionality of mock embeddings, matching the
// production embedding model.
const Dimension = 768

// Embedder is a deterministic test double for ai.Embedder. The same text
// always produces the same vector, and different texts almost always produce
// different vectors, so ordering assertions in tests are stable.
//
// Behavior can be overridden per test via the function fields.
type Embedder struct {
	// EmbedDocumentsFunc, if set, replaces the default batch behavior.
	EmbedDocumentsFunc func(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedQueryFunc, if set, replaces the default query behavior.
	EmbedQueryFunc func(ctx context.Context, text string) ([]float32, error)

	mu         sync.Mutex
	docCalls   int
	queryCalls int
}

// NewEmbedder creates a mock embedder with the default deterministic
// behavior.
func NewEmbedder() *Embedder {
	return &Embedder{}
}

// EmbedDocuments returns one deterministic vector per input text.
func (e *Embedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	e.mu.Lock()
	e.docCalls++
	e.mu.Unlock()

	if e.EmbedDocumentsFunc != nil {
		return e.EmbedDocumentsFunc(ctx, texts)
	}
	if len(texts) == 0 {
		return nil, ai.ErrEmptyBatch
	}

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = deterministicVector(text)
	}
	return vectors, nil
}

// EmbedQuery returns a deterministic vector for the query text. The vector
// differs from the document-mode vector of the same text, mirroring the
// asymmetry of the production model.
func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	e.mu.Lock()
	e.queryCalls++
	e.mu.Unlock()

	if e.EmbedQueryFunc != nil {
		return e.EmbedQueryFunc(ctx, text)
	}
	return deterministicVector("query:" + text), nil
}

// DocumentCalls reports how many times EmbedDocuments was invoked.
func (e *Embedder) DocumentCalls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.docCalls
}

// QueryCalls reports how many times EmbedQuery was invoked.
func (e *Embedder) QueryCalls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.queryCalls
}

// deterministicVector derives a Dimension-length vector in [-1, 1] from the
// FNV hash of the text. A cheap xorshift keeps successive components
// decorrelated.
func deterministicVector(text string) []float32 {
	h := fnv.New64a()
	h.Write([]byte(text))
	state := h.Sum64()
	if state == 0 {
		state = 0x9e3779b97f4a7c15
	}

	vec := make([]float32, Dimension)
	for i := range vec {
		state ^= state << 13
		state ^= state >> 7
		state ^= state << 17
		vec[i] = float32(int64(state%2001)-1000) / 1000
	}
	return vec
}
