package mock

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedder_Deterministic(t *testing.T) {
	e := NewEmbedder()
	ctx := context.Background()

	a, err := e.EmbedDocuments(ctx, []string{"neural networks"})
	require.NoError(t, err)
	b, err := e.EmbedDocuments(ctx, []string{"neural networks"})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a[0], Dimension)
}

func TestEmbedder_DistinctTexts(t *testing.T) {
	e := NewEmbedder()

	vecs, err := e.EmbedDocuments(context.Background(), []string{"alpha", "beta"})
	require.NoError(t, err)
	require.Len(t, vecs, 2)

	assert.NotEqual(t, vecs[0], vecs[1])
}

func TestEmbedder_QueryDiffersFromDocument(t *testing.T) {
	e := NewEmbedder()
	ctx := context.Background()

	doc, err := e.EmbedDocuments(ctx, []string{"transformers"})
	require.NoError(t, err)
	query, err := e.EmbedQuery(ctx, "transformers")
	require.NoError(t, err)

	assert.NotEqual(t, doc[0], query)
}

func TestEmbedder_ValuesInRange(t *testing.T) {
	e := NewEmbedder()

	vec, err := e.EmbedQuery(context.Background(), "range check")
	require.NoError(t, err)

	for _, v := range vec {
		assert.GreaterOrEqual(t, v, float32(-1))
		assert.LessOrEqual(t, v, float32(1))
	}
}

func TestEmbedder_Override(t *testing.T) {
	wantErr := errors.New("boom")
	e := NewEmbedder()
	e.EmbedDocumentsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, wantErr
	}

	_, err := e.EmbedDocuments(context.Background(), []string{"x"})
	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, 1, e.DocumentCalls())
}
