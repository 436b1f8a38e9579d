package ai

import "errors"

var (
	// ErrInvalidCredential indicates the external service rejected the API
	// key. This is fatal: callers must abort rather than retry.
	ErrInvalidCredential = errors.New("invalid API credential")

	// ErrEmptyBatch indicates an embedding call was made with no texts.
	ErrEmptyBatch = errors.New("no texts to embed")
)
