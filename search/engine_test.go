package search

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arxade/arxade/ai/mock"
	"github.com/arxade/arxade/core"
)

// stubIndex is an in-memory storage.PaperIndex capturing search arguments.
type stubIndex struct {
	hits []core.PaperHit

	pingErr   error
	searchErr error

	lastVector        []int8
	lastNumCandidates int
	lastLimit         int
}

func (s *stubIndex) Ping(ctx context.Context) error {
	return s.pingErr
}

func (s *stubIndex) Search(ctx context.Context, queryVector []int8, numCandidates, limit int) ([]core.PaperHit, error) {
	s.lastVector = queryVector
	s.lastNumCandidates = numCandidates
	s.lastLimit = limit
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	return s.hits, nil
}

func (s *stubIndex) Close(ctx context.Context) error {
	return nil
}

func TestEngine_Search(t *testing.T) {
	index := &stubIndex{
		hits: []core.PaperHit{
			{
				ID:         "2301.00001",
				Title:      "Attention Survey",
				Abstract:   "A survey.",
				Authors:    "B. Author",
				Categories: core.Categories{"cs.ro", "cs.lg"},
				UpdateDate: "2023-01-15",
				Score:      0.92,
			},
			{
				ID:         "2301.00002",
				Title:      "Robotics Only",
				Categories: core.Categories{"math.OC"},
				Score:      0.87,
			},
		},
	}

	engine, err := NewEngine(index, mock.NewEmbedder())
	require.NoError(t, err)

	results, err := engine.Search(context.Background(), core.SearchQuery{Query: "attention", Limit: 20})
	require.NoError(t, err)
	require.Len(t, results, 2)

	t.Run("passes quantized query vector", func(t *testing.T) {
		assert.Len(t, index.lastVector, mock.Dimension)
		assert.Equal(t, 200, index.lastNumCandidates)
		assert.Equal(t, 20, index.lastLimit)
	})

	t.Run("preserves index order", func(t *testing.T) {
		assert.Equal(t, "2301.00001", results[0].ID)
		assert.Equal(t, "2301.00002", results[1].ID)
	})

	t.Run("projects hit fields", func(t *testing.T) {
		r := results[0]
		assert.Equal(t, "cs.lg", r.PrimaryCategory)
		assert.Equal(t, []string{"cs.ro", "cs.lg"}, r.Categories)
		assert.Equal(t, "2301.00001", r.ArxivID)
		assert.Equal(t, "https://arxiv.org/pdf/2301.00001.pdf", r.PDFURL)
		assert.Equal(t, "2023-01-15", r.Date)
		assert.Equal(t, 0.92, r.Score)
	})

	t.Run("falls back to first own category", func(t *testing.T) {
		assert.Equal(t, "math.OC", results[1].PrimaryCategory)
	})
}

func TestEngine_Search_CandidateCap(t *testing.T) {
	index := &stubIndex{}
	engine, err := NewEngine(index, mock.NewEmbedder())
	require.NoError(t, err)

	_, err = engine.Search(context.Background(), core.SearchQuery{Query: "q", Limit: 100})
	require.NoError(t, err)

	assert.Equal(t, 500, index.lastNumCandidates)
	assert.Equal(t, 100, index.lastLimit)
}

func TestEngine_Search_DefaultLimit(t *testing.T) {
	index := &stubIndex{}
	engine, err := NewEngine(index, mock.NewEmbedder())
	require.NoError(t, err)

	_, err = engine.Search(context.Background(), core.SearchQuery{Query: "q"})
	require.NoError(t, err)

	assert.Equal(t, core.DefaultResultLimit, index.lastLimit)
}

func TestEngine_Search_InvalidQuery(t *testing.T) {
	index := &stubIndex{}
	engine, err := NewEngine(index, mock.NewEmbedder())
	require.NoError(t, err)

	t.Run("empty", func(t *testing.T) {
		_, err := engine.Search(context.Background(), core.SearchQuery{Query: "   "})
		assert.ErrorIs(t, err, core.ErrInvalidQuery)
	})

	t.Run("too long", func(t *testing.T) {
		_, err := engine.Search(context.Background(), core.SearchQuery{
			Query: strings.Repeat("x", core.MaxQueryLength+1),
		})
		assert.ErrorIs(t, err, core.ErrQueryTooLong)
	})

	t.Run("limit out of range", func(t *testing.T) {
		_, err := engine.Search(context.Background(), core.SearchQuery{Query: "q", Limit: 101})
		assert.ErrorIs(t, err, core.ErrLimitOutOfRange)
	})

	t.Run("no remote calls made", func(t *testing.T) {
		assert.Nil(t, index.lastVector)
	})
}

func TestEngine_Search_IndexUnavailable(t *testing.T) {
	index := &stubIndex{pingErr: errors.New("connection refused")}
	engine, err := NewEngine(index, mock.NewEmbedder())
	require.NoError(t, err)

	_, err = engine.Search(context.Background(), core.SearchQuery{Query: "q"})
	assert.ErrorIs(t, err, ErrIndexUnavailable)
}

func TestEngine_Search_EmbeddingFailure(t *testing.T) {
	embedder := mock.NewEmbedder()
	embedder.EmbedQueryFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("upstream failure")
	}

	engine, err := NewEngine(&stubIndex{}, embedder)
	require.NoError(t, err)

	_, err = engine.Search(context.Background(), core.SearchQuery{Query: "q"})
	assert.ErrorIs(t, err, ErrQueryEmbedding)
}

func TestEngine_Search_SearchFailure(t *testing.T) {
	index := &stubIndex{searchErr: errors.New("aggregation failed")}
	engine, err := NewEngine(index, mock.NewEmbedder())
	require.NoError(t, err)

	_, err = engine.Search(context.Background(), core.SearchQuery{Query: "q"})
	assert.ErrorIs(t, err, ErrSearchFailed)
}

func TestNewEngine_Validation(t *testing.T) {
	t.Run("nil index", func(t *testing.T) {
		_, err := NewEngine(nil, mock.NewEmbedder())
		assert.ErrorIs(t, err, ErrIndexRequired)
	})

	t.Run("nil embedder", func(t *testing.T) {
		_, err := NewEngine(&stubIndex{}, nil)
		assert.ErrorIs(t, err, ErrEmbedderRequired)
	})
}
