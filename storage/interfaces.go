package storage

import (
	"context"

	"github.com/arxade/arxade/core"
)

// PaperIndex provides approximate nearest neighbor search over quantized
// paper embeddings. Implementations must be thread-safe and support
// concurrent access.
type PaperIndex interface {
	// Ping verifies the index is reachable. Returns an error when the
	// backend cannot be contacted.
	Ping(ctx context.Context) error

	// Search runs an ANN query with the given quantized query vector.
	// numCandidates bounds the breadth of the approximate search; limit
	// bounds the result count. Results are ordered by similarity score,
	// highest first.
	Search(ctx context.Context, queryVector []int8, numCandidates, limit int) ([]core.PaperHit, error)

	// Close releases the connection to the backend.
	Close(ctx context.Context) error
}

// CheckpointRepository persists ingestion progress so interrupted runs can
// resume. Checkpoints are keyed by pipeline name.
type CheckpointRepository interface {
	// SaveCheckpoint persists a checkpoint for a pipeline, stamping
	// UpdatedAt.
	SaveCheckpoint(ctx context.Context, pipeline string, checkpoint *core.Checkpoint) error

	// LoadCheckpoint retrieves the checkpoint for a pipeline.
	// Returns nil, nil if no checkpoint exists.
	LoadCheckpoint(ctx context.Context, pipeline string) (*core.Checkpoint, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
