package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity
// search. Embedding backends may produce asymmetric representations for
// documents and queries, so the two modes are separate methods; callers must
// not collapse them into one.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedDocuments generates document-mode embeddings for a batch of texts.
	// The returned slice contains one vector per input text, in the same
	// order, all of the model's native dimensionality.
	// Returns an error if the embedding generation fails.
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedQuery generates a query-mode embedding for a single search query.
	// Returns an error if the embedding generation fails.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// SummaryPaper is the slice of a paper a caller supplies as context for
// summary generation.
type SummaryPaper struct {
	Title    string `json:"title"`
	Abstract string `json:"abstract"`
}

// Generator produces natural-language text about research topics.
// Implementations must be thread-safe for concurrent use.
type Generator interface {
	// Summarize produces a short summary of a topic, optionally grounded in
	// the supplied papers.
	Summarize(ctx context.Context, topic string, papers []SummaryPaper) (string, error)

	// Analyze produces a long-form research analysis of a topic from the
	// supplied papers context and caller instructions.
	Analyze(ctx context.Context, topic, papersContext, instructions string) (string, error)
}

// Provider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages Embedder and
// Generator instances sharing configuration and the underlying client.
type Provider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Generator returns the text generation service.
	Generator() Generator

	// Close releases resources held by the provider and its services.
	Close() error
}
