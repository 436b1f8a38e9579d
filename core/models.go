package core

import (
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// PriorityCategories is the fixed precedence order used to pick a paper's
// primary category. Earlier entries win over later ones regardless of the
// order categories are stored in.
var PriorityCategories = []string{"cs.cv", "cs.lg", "cs.cl", "cs.ai", "cs.ne", "cs.ro"}

// Categories is an ordered collection of arXiv category codes. The upstream
// corpus stores categories either as a bare string or as an array; this type
// decodes both forms, wrapping a scalar into a one-element collection.
type Categories []string

// UnmarshalJSON accepts either a JSON string or an array of strings.
func (c *Categories) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*c = Categories{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("categories must be a string or an array of strings: %w", err)
	}
	*c = Categories(many)
	return nil
}

// UnmarshalBSONValue accepts either a BSON string or an array of strings.
func (c *Categories) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}

	switch t {
	case bsontype.String:
		*c = Categories{rv.StringValue()}
		return nil
	case bsontype.Array:
		var many []string
		if err := rv.Unmarshal(&many); err != nil {
			return fmt.Errorf("decoding categories array: %w", err)
		}
		*c = Categories(many)
		return nil
	case bsontype.Null:
		*c = nil
		return nil
	default:
		return fmt.Errorf("categories must be a string or an array, got %s", t)
	}
}

// NormalizeCategories converts the supported storage shapes of the categories
// field into an ordered collection. A bare scalar becomes a one-element
// collection; an already-normalized collection is returned unchanged.
func NormalizeCategories(v any) Categories {
	switch cats := v.(type) {
	case nil:
		return nil
	case string:
		if cats == "" {
			return nil
		}
		return Categories{cats}
	case Categories:
		return cats
	case []string:
		return Categories(cats)
	case []any:
		out := make(Categories, 0, len(cats))
		for _, item := range cats {
			out = append(out, fmt.Sprint(item))
		}
		return out
	default:
		return Categories{fmt.Sprint(cats)}
	}
}

// PrimaryCategory selects the display category for a paper: the first entry
// of PriorityCategories present anywhere in the paper's categories, or the
// paper's own first category when none of the priorities match.
func PrimaryCategory(cats Categories) string {
	for _, priority := range PriorityCategories {
		for _, cat := range cats {
			if cat == priority {
				return priority
			}
		}
	}
	if len(cats) > 0 {
		return cats[0]
	}
	return ""
}

// PDFURL derives the canonical arXiv PDF location for a paper identifier.
func PDFURL(id string) string {
	return "https://arxiv.org/pdf/" + id + ".pdf"
}

// PaperRecord is one arXiv paper as stored in the corpus and in the vector
// index. EmbeddingInt8 is present only after the paper has passed through the
// ingestion pipeline; it is the sole field the similarity index operates on.
type PaperRecord struct {
	ID            string     `json:"id" bson:"id"`
	Title         string     `json:"title" bson:"title"`
	Abstract      string     `json:"abstract" bson:"abstract"`
	Authors       string     `json:"authors" bson:"authors"`
	Categories    Categories `json:"categories" bson:"categories"`
	UpdateDate    string     `json:"update_date" bson:"update_date"`
	EmbeddingInt8 []int8     `json:"embedding_int8,omitempty" bson:"embedding_int8,omitempty"`
}

// PaperHit is a paper returned by the vector index together with the raw
// similarity score the index assigned to it.
type PaperHit struct {
	ID         string     `bson:"id"`
	Title      string     `bson:"title"`
	Abstract   string     `bson:"abstract"`
	Authors    string     `bson:"authors"`
	Categories Categories `bson:"categories"`
	UpdateDate string     `bson:"update_date"`
	Score      float64    `bson:"score"`
}

// PaperResult is the projection of a search hit returned to callers.
type PaperResult struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Abstract        string   `json:"abstract"`
	Authors         string   `json:"authors"`
	Date            string   `json:"date"`
	Categories      []string `json:"categories"`
	PrimaryCategory string   `json:"primary_category"`
	ArxivID         string   `json:"arxiv_id"`
	PDFURL          string   `json:"pdf_url"`
	Score           float64  `json:"score"`
}

// ResultFromHit projects an index hit into the caller-facing result shape,
// normalizing categories and deriving the primary category and PDF URL.
func ResultFromHit(hit PaperHit) PaperResult {
	cats := NormalizeCategories(hit.Categories)
	return PaperResult{
		ID:              hit.ID,
		Title:           hit.Title,
		Abstract:        hit.Abstract,
		Authors:         hit.Authors,
		Date:            hit.UpdateDate,
		Categories:      cats,
		PrimaryCategory: PrimaryCategory(cats),
		ArxivID:         hit.ID,
		PDFURL:          PDFURL(hit.ID),
		Score:           hit.Score,
	}
}

// SearchQuery is one retrieval request. Transient, never persisted.
type SearchQuery struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

// Checkpoint records ingestion progress so an interrupted run can resume.
// InputOffset is the number of input lines fully consumed; Embedded is the
// cumulative count of records written with embeddings.
type Checkpoint struct {
	InputOffset uint64
	Embedded    uint64
	UpdatedAt   time.Time
}
