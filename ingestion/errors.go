package ingestion

import "errors"

var (
	// ErrEmbedderRequired indicates a pipeline was constructed without an
	// embedder.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrInvalidBatchSize indicates a non-positive batch size.
	ErrInvalidBatchSize = errors.New("batch size must be greater than 0")

	// ErrInvalidRateLimit indicates a non-positive requests-per-minute quota.
	ErrInvalidRateLimit = errors.New("requests per minute must be greater than 0")
)
