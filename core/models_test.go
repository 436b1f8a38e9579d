package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestNormalizeCategories(t *testing.T) {
	t.Run("scalar wraps to one-element collection", func(t *testing.T) {
		assert.Equal(t, Categories{"cs.lg"}, NormalizeCategories("cs.lg"))
	})

	t.Run("idempotent on already-normalized collection", func(t *testing.T) {
		cats := Categories{"cs.ro", "cs.lg"}
		assert.Equal(t, cats, NormalizeCategories(cats))
	})

	t.Run("string slice", func(t *testing.T) {
		assert.Equal(t, Categories{"math.ST"}, NormalizeCategories([]string{"math.ST"}))
	})

	t.Run("empty string yields nil", func(t *testing.T) {
		assert.Nil(t, NormalizeCategories(""))
	})

	t.Run("nil yields nil", func(t *testing.T) {
		assert.Nil(t, NormalizeCategories(nil))
	})
}

func TestPrimaryCategory(t *testing.T) {
	t.Run("earlier priority wins regardless of storage order", func(t *testing.T) {
		assert.Equal(t, "cs.lg", PrimaryCategory(Categories{"cs.ro", "cs.lg"}))
	})

	t.Run("falls back to first own category", func(t *testing.T) {
		assert.Equal(t, "math.ST", PrimaryCategory(Categories{"math.ST"}))
	})

	t.Run("single priority category", func(t *testing.T) {
		assert.Equal(t, "cs.lg", PrimaryCategory(Categories{"cs.lg"}))
	})

	t.Run("empty collection", func(t *testing.T) {
		assert.Equal(t, "", PrimaryCategory(nil))
	})
}

func TestPDFURL(t *testing.T) {
	assert.Equal(t, "https://arxiv.org/pdf/1234.5678.pdf", PDFURL("1234.5678"))
}

func TestCategories_UnmarshalJSON(t *testing.T) {
	t.Run("scalar", func(t *testing.T) {
		var c Categories
		require.NoError(t, json.Unmarshal([]byte(`"cs.lg"`), &c))
		assert.Equal(t, Categories{"cs.lg"}, c)
	})

	t.Run("array", func(t *testing.T) {
		var c Categories
		require.NoError(t, json.Unmarshal([]byte(`["cs.ro","cs.lg"]`), &c))
		assert.Equal(t, Categories{"cs.ro", "cs.lg"}, c)
	})

	t.Run("number rejected", func(t *testing.T) {
		var c Categories
		assert.Error(t, json.Unmarshal([]byte(`42`), &c))
	})
}

func TestCategories_UnmarshalBSONValue(t *testing.T) {
	type doc struct {
		Categories Categories `bson:"categories"`
	}

	t.Run("scalar", func(t *testing.T) {
		raw, err := bson.Marshal(bson.M{"categories": "cs.cv"})
		require.NoError(t, err)

		var d doc
		require.NoError(t, bson.Unmarshal(raw, &d))
		assert.Equal(t, Categories{"cs.cv"}, d.Categories)
	})

	t.Run("array", func(t *testing.T) {
		raw, err := bson.Marshal(bson.M{"categories": []string{"cs.cv", "cs.lg"}})
		require.NoError(t, err)

		var d doc
		require.NoError(t, bson.Unmarshal(raw, &d))
		assert.Equal(t, Categories{"cs.cv", "cs.lg"}, d.Categories)
	})
}

func TestResultFromHit(t *testing.T) {
	hit := PaperHit{
		ID:         "1234.5678",
		Title:      "A",
		Abstract:   "B",
		Authors:    "C",
		Categories: Categories{"cs.ro", "cs.lg"},
		UpdateDate: "2024-01-15",
		Score:      0.92,
	}

	result := ResultFromHit(hit)

	assert.Equal(t, "1234.5678", result.ID)
	assert.Equal(t, "1234.5678", result.ArxivID)
	assert.Equal(t, "https://arxiv.org/pdf/1234.5678.pdf", result.PDFURL)
	assert.Equal(t, "2024-01-15", result.Date)
	assert.Equal(t, "cs.lg", result.PrimaryCategory)
	assert.Equal(t, []string{"cs.ro", "cs.lg"}, result.Categories)
	assert.Equal(t, 0.92, result.Score)
}

func TestPaperRecord_JSONRoundTrip(t *testing.T) {
	line := []byte(`{"id":"1234.5678","title":"A","abstract":"B","authors":"C","categories":"cs.lg","update_date":"2007-05-23"}`)

	var record PaperRecord
	require.NoError(t, json.Unmarshal(line, &record))
	assert.Equal(t, Categories{"cs.lg"}, record.Categories)
	assert.Nil(t, record.EmbeddingInt8)

	record.EmbeddingInt8 = []int8{127, -127, 0}
	out, err := json.Marshal(record)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"embedding_int8":[127,-127,0]`)
}
