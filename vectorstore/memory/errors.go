package memory

import "errors"

var (
	// ErrEmbedderRequired is returned when a store is constructed without an embedder.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrEmbeddingCountMismatch is returned when the embedder yields a
	// different number of vectors than texts submitted.
	ErrEmbeddingCountMismatch = errors.New("embedding count does not match document count")
)
