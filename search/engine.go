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


package search

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/arxade/arxade/ai"
	"github.com/arxade/arxade/core"
	"github.com/arxade/arxade/storage"
)

// maxCandidates caps the ANN search breadth regardless of the requested
// result count.
const maxCandidates = 500

// Engine answers semantic paper queries. Each search embeds the query in
// retrieval-query mode, quantizes it exactly the way stored documents were
// quantized, runs an ANN search against the index and projects the raw hits
// into caller-facing results.
type Engine struct {
	index    storage.PaperIndex
	embedder ai.Embedder
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// NewEngine creates a retrieval engine over the given index and embedder.
func NewEngine(index storage.PaperIndex, embedder ai.Embedder, opts ...Option) (*Engine, error) {
	if index == nil {
		return nil, ErrIndexRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	e := &Engine{
		index:    index,
		embedder: embedder,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Search executes one retrieval request. The query is validated and its
// limit defaulted before any remote call is made; the index is pinged first
// so an unreachable backend surfaces as ErrIndexUnavailable rather than a
// wasted embedding call.
func (e *Engine) Search(ctx context.Context, query core.SearchQuery) ([]core.PaperResult, error) {
	query.ApplyDefaults()
	if err := core.ValidateSearchQuery(&query); err != nil {
		return nil, err
	}

	start := time.Now()
	e.logger.Info("search request",
		slog.String("query", query.Query),
		slog.Int("limit", query.Limit))

	if err := e.index.Ping(ctx); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrIndexUnavailable, err)
	}

	vector, err := e.embedder.EmbedQuery(ctx, query.Query)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrQueryEmbedding, err)
	}
	queryVector := core.QuantizeEmbedding(vector)

	numCandidates := numCandidatesFor(query.Limit)
	hits, err := e.index.Search(ctx, queryVector, numCandidates, query.Limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSearchFailed, err)
	}

	results := make([]core.PaperResult, len(hits))
	for i, hit := range hits {
		results[i] = core.ResultFromHit(hit)
	}

	e.logger.Info("search completed",
		slog.Int("results", len(results)),
		slog.Duration("elapsed", time.Since(start).Round(time.Millisecond)))

	return results, nil
}

// numCandidatesFor sizes the candidate pool for a result limit: ten
// candidates per requested result, capped at maxCandidates.
func numCandidatesFor(limit int) int {
	n := limit * 10
	if n > maxCandidates {
		return maxCandidates
	}
	return n
}
