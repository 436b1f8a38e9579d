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


package ingestion

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/arxade/arxade/ai"
	"github.com/arxade/arxade/core"
	"github.com/arxade/arxade/storage"
)

const (
	defaultBatchSize         = 100
	defaultRequestsPerMinute = 1500
	defaultBackoffDelay      = 5 * time.Second
	defaultReportInterval    = 100

	// Lines longer than this abort the run. Abstracts are a few KB;
	// anything near this size is a corrupt input.
	maxLineSize = 4 * 1024 * 1024
)

// Stats summarizes one pipeline run.
type Stats struct {
	// LinesRead is the number of input lines consumed, including skipped
	// ones and the resume offset.
	LinesRead uint64

	// Skipped counts malformed lines and records with no embeddable text.
	Skipped uint64

	// Embedded counts records written to the output with an embedding.
	Embedded uint64

	// Dropped counts records lost to failed or mismatched batches.
	Dropped uint64

	// Requests counts embedding API calls charged against the quota.
	Requests uint64
}

// Pipeline reads paper records as JSONL, embeds them in batches under a
// rate quota, quantizes the vectors to int8 and writes enriched JSONL.
type Pipeline struct {
	embedder ai.Embedder

	batchSize         int
	startOffset       uint64
	itemLimit         uint64
	requestsPerMinute int
	backoffDelay      time.Duration
	reportInterval    int

	checkpoints    storage.CheckpointRepository
	checkpointName string

	progress io.Writer
	logger   *slog.Logger
	now      func() time.Time
	sleep    func(time.Duration)
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithBatchSize sets how many records are embedded per API request.
func WithBatchSize(n int) Option {
	return func(p *Pipeline) { p.batchSize = n }
}

// WithStartOffset skips the first n input lines. Used to resume an
// interrupted run.
func WithStartOffset(n uint64) Option {
	return func(p *Pipeline) { p.startOffset = n }
}

// WithItemLimit stops the run after n records have been embedded.
// Zero means unlimited.
func WithItemLimit(n uint64) Option {
	return func(p *Pipeline) { p.itemLimit = n }
}

// WithRequestsPerMinute sets the embedding API quota.
func WithRequestsPerMinute(n int) Option {
	return func(p *Pipeline) { p.requestsPerMinute = n }
}

// WithBackoffDelay sets the pause after a failed batch.
func WithBackoffDelay(d time.Duration) Option {
	return func(p *Pipeline) { p.backoffDelay = d }
}

// WithReportInterval sets how often progress is reported (number of records).
func WithReportInterval(n int) Option {
	return func(p *Pipeline) { p.reportInterval = n }
}

// WithCheckpoints enables checkpoint persistence under the given pipeline
// name. A checkpoint is saved after every successful batch.
func WithCheckpoints(repo storage.CheckpointRepository, name string) Option {
	return func(p *Pipeline) {
		p.checkpoints = repo
		p.checkpointName = name
	}
}

// WithProgressWriter sets where progress output is written
// (typically os.Stderr).
func WithProgressWriter(w io.Writer) Option {
	return func(p *Pipeline) { p.progress = w }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = logger }
}

// withClock overrides time for tests.
func withClock(now func() time.Time, sleep func(time.Duration)) Option {
	return func(p *Pipeline) {
		p.now = now
		p.sleep = sleep
	}
}

// NewPipeline creates a pipeline around the given embedder.
func NewPipeline(embedder ai.Embedder, opts ...Option) (*Pipeline, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	p := &Pipeline{
		embedder:          embedder,
		batchSize:         defaultBatchSize,
		requestsPerMinute: defaultRequestsPerMinute,
		backoffDelay:      defaultBackoffDelay,
		reportInterval:    defaultReportInterval,
		progress:          io.Discard,
		logger:            slog.Default(),
		now:               time.Now,
		sleep:             time.Sleep,
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.batchSize <= 0 {
		return nil, ErrInvalidBatchSize
	}
	if p.requestsPerMinute <= 0 {
		return nil, ErrInvalidRateLimit
	}
	return p, nil
}

// Run consumes JSONL paper records from r and writes each record back to w
// with an embedding_int8 field appended. Records flow through in input
// order; records belonging to a failed batch are dropped, not retried.
//
// The run aborts on context cancellation, on output write failures, and on
// a rejected API credential. All other batch errors are logged and skipped.
func (p *Pipeline) Run(ctx context.Context, r io.Reader, w io.Writer) (Stats, error) {
	var stats Stats

	window := newRateWindow(p.requestsPerMinute, p.now, p.sleep, p.logger)
	tracker := NewProgressTracker(p.progress, p.reportInterval)
	tracker.Start()

	out := bufio.NewWriter(w)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	p.logger.Info("starting embedding generation",
		slog.Int("batch_size", p.batchSize),
		slog.Uint64("start_offset", p.startOffset),
		slog.Uint64("item_limit", p.itemLimit))

	var (
		batchTexts []string
		batchItems []map[string]any
	)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		stats.LinesRead++
		if stats.LinesRead <= p.startOffset {
			continue
		}
		if p.limitReached(stats.Embedded) {
			p.logger.Info("reached processing limit", slog.Uint64("limit", p.itemLimit))
			break
		}

		var item map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &item); err != nil {
			p.logger.Warn("skipping malformed line",
				slog.Uint64("line", stats.LinesRead),
				slog.String("error", err.Error()))
			stats.Skipped++
			continue
		}

		text := embeddingText(item)
		if text == "" {
			stats.Skipped++
			continue
		}

		batchTexts = append(batchTexts, text)
		batchItems = append(batchItems, item)

		if len(batchTexts) >= p.batchSize {
			if err := p.flush(ctx, batchTexts, batchItems, out, window, tracker, &stats); err != nil {
				return stats, err
			}
			batchTexts = batchTexts[:0]
			batchItems = batchItems[:0]
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("failed to read input: %w", err)
	}

	if len(batchTexts) > 0 && !p.limitReached(stats.Embedded) {
		if err := p.flush(ctx, batchTexts, batchItems, out, window, tracker, &stats); err != nil {
			return stats, err
		}
	}

	if err := out.Flush(); err != nil {
		return stats, fmt.Errorf("failed to flush output: %w", err)
	}

	tracker.Finish()
	p.logger.Info("embedding generation complete",
		slog.Uint64("embedded", stats.Embedded),
		slog.Uint64("skipped", stats.Skipped),
		slog.Uint64("dropped", stats.Dropped),
		slog.Duration("elapsed", tracker.Elapsed().Round(time.Second)))

	return stats, nil
}

func (p *Pipeline) limitReached(embedded uint64) bool {
	return p.itemLimit > 0 && embedded >= p.itemLimit
}

// flush embeds one batch and writes the enriched records. A batch whose
// embedding count does not match its input count is dropped whole: with no
// way to tell which vector belongs to which record, a partial write could
// mislabel papers.
func (p *Pipeline) flush(
	ctx context.Context,
	texts []string,
	items []map[string]any,
	out *bufio.Writer,
	window *rateWindow,
	tracker *ProgressTracker,
	stats *Stats,
) error {
	window.Wait()

	vectors, err := p.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		if errors.Is(err, ai.ErrInvalidCredential) {
			return fmt.Errorf("aborting run: %w", err)
		}
		window.Record()
		stats.Requests++
		stats.Dropped += uint64(len(items))
		p.logger.Error("batch embedding failed, backing off",
			slog.Int("batch_size", len(texts)),
			slog.String("error", err.Error()))
		p.sleep(p.backoffDelay)
		return nil
	}

	if len(vectors) != len(texts) {
		stats.Dropped += uint64(len(items))
		p.logger.Warn("embedding count mismatch, dropping batch",
			slog.Int("expected", len(texts)),
			slog.Int("got", len(vectors)))
		return nil
	}

	window.Record()
	stats.Requests++

	for i, item := range items {
		if p.limitReached(stats.Embedded) {
			return nil
		}

		item["embedding_int8"] = core.QuantizeEmbedding(vectors[i])

		line, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("failed to encode record: %w", err)
		}
		if _, err := out.Write(append(line, '\n')); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}

		stats.Embedded++
		tracker.Increment(1)
	}

	if err := out.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}

	if p.checkpoints != nil {
		checkpoint := &core.Checkpoint{
			InputOffset: stats.LinesRead,
			Embedded:    stats.Embedded,
		}
		if err := p.checkpoints.SaveCheckpoint(ctx, p.checkpointName, checkpoint); err != nil {
			p.logger.Warn("failed to save checkpoint", slog.String("error", err.Error()))
		}
	}

	return nil
}

// embeddingText builds the text submitted for embedding: title, authors and
// abstract concatenated with single spaces. Missing fields contribute
// nothing; a record with no text at all is not embeddable.
func embeddingText(item map[string]any) string {
	title, _ := item["title"].(string)
	authors, _ := item["authors"].(string)
	abstract, _ := item["abstract"].(string)

	return strings.TrimSpace(title + " " + authors + " " + abstract)
}
