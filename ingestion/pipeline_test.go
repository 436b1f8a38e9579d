package ingestion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arxade/arxade/ai"
	"github.com/arxade/arxade/ai/mock"
	"github.com/arxade/arxade/core"
	"github.com/arxade/arxade/storage/badger"
)

func inputLines(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, `{"id":"2301.%05d","title":"Paper %d","authors":"A. Author","abstract":"About topic %d.","categories":"cs.lg"}`+"\n", i, i, i)
	}
	return b.String()
}

func decodeOutput(t *testing.T, out *bytes.Buffer) []map[string]any {
	t.Helper()

	var records []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if line == "" {
			continue
		}
		var item map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &item))
		records = append(records, item)
	}
	return records
}

func noSleep(time.Duration) {}

func TestPipeline_Run(t *testing.T) {
	p, err := NewPipeline(mock.NewEmbedder(),
		WithBatchSize(4),
		withClock(time.Now, noSleep),
	)
	require.NoError(t, err)

	var out bytes.Buffer
	stats, err := p.Run(context.Background(), strings.NewReader(inputLines(10)), &out)
	require.NoError(t, err)

	assert.Equal(t, uint64(10), stats.LinesRead)
	assert.Equal(t, uint64(10), stats.Embedded)
	assert.Equal(t, uint64(0), stats.Dropped)
	assert.Equal(t, uint64(3), stats.Requests) // 4 + 4 + 2

	records := decodeOutput(t, &out)
	require.Len(t, records, 10)

	t.Run("preserves input order and fields", func(t *testing.T) {
		assert.Equal(t, "2301.00000", records[0]["id"])
		assert.Equal(t, "Paper 0", records[0]["title"])
		assert.Equal(t, "cs.lg", records[0]["categories"])
		assert.Equal(t, "2301.00009", records[9]["id"])
	})

	t.Run("appends quantized embedding", func(t *testing.T) {
		emb, ok := records[0]["embedding_int8"].([]any)
		require.True(t, ok)
		assert.Len(t, emb, mock.Dimension)

		for _, v := range emb {
			n := v.(float64)
			assert.GreaterOrEqual(t, n, float64(-127))
			assert.LessOrEqual(t, n, float64(127))
			assert.Equal(t, n, float64(int(n)))
		}
	})
}

func TestPipeline_QuantizationMatchesQueryPath(t *testing.T) {
	embedder := mock.NewEmbedder()
	p, err := NewPipeline(embedder, withClock(time.Now, noSleep))
	require.NoError(t, err)

	var out bytes.Buffer
	_, err = p.Run(context.Background(), strings.NewReader(inputLines(1)), &out)
	require.NoError(t, err)

	vectors, err := embedder.EmbedDocuments(context.Background(),
		[]string{"Paper 0 A. Author About topic 0."})
	require.NoError(t, err)
	want := core.QuantizeEmbedding(vectors[0])

	records := decodeOutput(t, &out)
	emb := records[0]["embedding_int8"].([]any)
	require.Len(t, emb, len(want))
	for i, v := range emb {
		assert.Equal(t, float64(want[i]), v.(float64))
	}
}

func TestPipeline_SkipsMalformedAndEmptyLines(t *testing.T) {
	input := `{"id":"a","title":"Valid","authors":"X","abstract":"Y"}
not json at all
{"id":"b","title":"","authors":"","abstract":"  "}
{"id":"c","title":"Also valid","authors":"X","abstract":"Z"}
`

	p, err := NewPipeline(mock.NewEmbedder(), withClock(time.Now, noSleep))
	require.NoError(t, err)

	var out bytes.Buffer
	stats, err := p.Run(context.Background(), strings.NewReader(input), &out)
	require.NoError(t, err)

	assert.Equal(t, uint64(4), stats.LinesRead)
	assert.Equal(t, uint64(2), stats.Skipped)
	assert.Equal(t, uint64(2), stats.Embedded)

	records := decodeOutput(t, &out)
	require.Len(t, records, 2)
	assert.Equal(t, "a", records[0]["id"])
	assert.Equal(t, "c", records[1]["id"])
}

func TestPipeline_StartOffset(t *testing.T) {
	p, err := NewPipeline(mock.NewEmbedder(),
		WithStartOffset(7),
		withClock(time.Now, noSleep),
	)
	require.NoError(t, err)

	var out bytes.Buffer
	stats, err := p.Run(context.Background(), strings.NewReader(inputLines(10)), &out)
	require.NoError(t, err)

	assert.Equal(t, uint64(3), stats.Embedded)

	records := decodeOutput(t, &out)
	require.Len(t, records, 3)
	assert.Equal(t, "2301.00007", records[0]["id"])
}

func TestPipeline_ItemLimit(t *testing.T) {
	p, err := NewPipeline(mock.NewEmbedder(),
		WithBatchSize(4),
		WithItemLimit(6),
		withClock(time.Now, noSleep),
	)
	require.NoError(t, err)

	var out bytes.Buffer
	stats, err := p.Run(context.Background(), strings.NewReader(inputLines(20)), &out)
	require.NoError(t, err)

	assert.Equal(t, uint64(6), stats.Embedded)
	assert.Len(t, decodeOutput(t, &out), 6)
}

func TestPipeline_DropsMismatchedBatch(t *testing.T) {
	embedder := mock.NewEmbedder()
	calls := 0
	embedder.EmbedDocumentsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		calls++
		vectors := make([][]float32, len(texts))
		for i := range vectors {
			vectors[i] = make([]float32, 8)
		}
		if calls == 1 {
			return vectors[:len(vectors)-1], nil // one short
		}
		return vectors, nil
	}

	p, err := NewPipeline(embedder,
		WithBatchSize(5),
		withClock(time.Now, noSleep),
	)
	require.NoError(t, err)

	var out bytes.Buffer
	stats, err := p.Run(context.Background(), strings.NewReader(inputLines(10)), &out)
	require.NoError(t, err)

	assert.Equal(t, uint64(5), stats.Dropped)
	assert.Equal(t, uint64(5), stats.Embedded)

	records := decodeOutput(t, &out)
	require.Len(t, records, 5)
	assert.Equal(t, "2301.00005", records[0]["id"])
}

func TestPipeline_ContinuesAfterBatchError(t *testing.T) {
	embedder := mock.NewEmbedder()
	calls := 0
	inner := mock.NewEmbedder()
	embedder.EmbedDocumentsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("transient upstream failure")
		}
		return inner.EmbedDocuments(ctx, texts)
	}

	var slept []time.Duration
	p, err := NewPipeline(embedder,
		WithBatchSize(5),
		WithBackoffDelay(5*time.Second),
		withClock(time.Now, func(d time.Duration) { slept = append(slept, d) }),
	)
	require.NoError(t, err)

	var out bytes.Buffer
	stats, err := p.Run(context.Background(), strings.NewReader(inputLines(10)), &out)
	require.NoError(t, err)

	assert.Equal(t, uint64(5), stats.Dropped)
	assert.Equal(t, uint64(5), stats.Embedded)
	assert.Contains(t, slept, 5*time.Second)
}

func TestPipeline_AbortsOnInvalidCredential(t *testing.T) {
	embedder := mock.NewEmbedder()
	embedder.EmbedDocumentsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, fmt.Errorf("%w: rejected", ai.ErrInvalidCredential)
	}

	p, err := NewPipeline(embedder, WithBatchSize(2), withClock(time.Now, noSleep))
	require.NoError(t, err)

	var out bytes.Buffer
	_, err = p.Run(context.Background(), strings.NewReader(inputLines(10)), &out)
	assert.ErrorIs(t, err, ai.ErrInvalidCredential)
	assert.Empty(t, out.String())
}

func TestPipeline_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p, err := NewPipeline(mock.NewEmbedder(), withClock(time.Now, noSleep))
	require.NoError(t, err)

	var out bytes.Buffer
	_, err = p.Run(ctx, strings.NewReader(inputLines(3)), &out)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPipeline_SavesCheckpoints(t *testing.T) {
	backend, err := badger.OpenBackend("", true)
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })
	repo := badger.NewCheckpointRepository(backend)

	p, err := NewPipeline(mock.NewEmbedder(),
		WithBatchSize(4),
		WithCheckpoints(repo, "embed"),
		withClock(time.Now, noSleep),
	)
	require.NoError(t, err)

	var out bytes.Buffer
	stats, err := p.Run(context.Background(), strings.NewReader(inputLines(10)), &out)
	require.NoError(t, err)

	checkpoint, err := repo.LoadCheckpoint(context.Background(), "embed")
	require.NoError(t, err)
	require.NotNil(t, checkpoint)

	assert.Equal(t, stats.LinesRead, checkpoint.InputOffset)
	assert.Equal(t, stats.Embedded, checkpoint.Embedded)
}

func TestNewPipeline_Validation(t *testing.T) {
	t.Run("nil embedder", func(t *testing.T) {
		_, err := NewPipeline(nil)
		assert.ErrorIs(t, err, ErrEmbedderRequired)
	})

	t.Run("invalid batch size", func(t *testing.T) {
		_, err := NewPipeline(mock.NewEmbedder(), WithBatchSize(0))
		assert.ErrorIs(t, err, ErrInvalidBatchSize)
	})

	t.Run("invalid rate limit", func(t *testing.T) {
		_, err := NewPipeline(mock.NewEmbedder(), WithRequestsPerMinute(-1))
		assert.ErrorIs(t, err, ErrInvalidRateLimit)
	})
}
