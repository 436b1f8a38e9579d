package search

import "errors"

var (
	// ErrIndexRequired indicates an engine was constructed without an index.
	ErrIndexRequired = errors.New("paper index is required")

	// ErrEmbedderRequired indicates an engine was constructed without an
	// embedder.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrIndexUnavailable indicates the vector index cannot be reached.
	ErrIndexUnavailable = errors.New("vector index unavailable")

	// ErrQueryEmbedding indicates the query could not be embedded.
	ErrQueryEmbedding = errors.New("failed to embed query")

	// ErrSearchFailed indicates the ANN search itself failed.
	ErrSearchFailed = errors.New("vector search failed")
)
