package db

import "errors"

// Domain-level database error sentinels.
var (
	// Corpus errors
	ErrEmptyEmbedding     = errors.New("embedding is empty")
	ErrEmbeddingDimension = errors.New("embedding dimension does not match the stored corpus")
)
