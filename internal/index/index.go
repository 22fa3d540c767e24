// Package index defines the nearest-neighbour capability over the
// reference corpus. Backends live in subpackages.
package index

import (
	"context"

	"profanity/internal/models"
)

// Querier returns the topK nearest corpus entries for text, best first.
type Querier interface {
	Query(ctx context.Context, text string, topK int) ([]models.CorpusMatch, error)
}

// Upserter writes corpus entries, replacing entries with the same ID.
type Upserter interface {
	Upsert(ctx context.Context, entries []models.CorpusEntry) error
}

// Pinger reports whether the backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Index is the full backend contract.
type Index interface {
	Querier
	Upserter
	Pinger
}
