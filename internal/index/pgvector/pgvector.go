// Package pgvector serves the reference corpus from Postgres with the
// pgvector extension, embedding text client side.
package pgvector

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/embeddings"

	"profanity/internal/db"
	"profanity/internal/models"
)

// Store is the slice of *db.DB the index needs.
type Store interface {
	UpsertCorpusEntries(ctx context.Context, rows []db.CorpusRow) error
	NearestCorpusEntries(ctx context.Context, vec []float32, limit int) ([]models.CorpusMatch, error)
	Ping(ctx context.Context) error
}

// Index implements index.Index over a Store and an Embedder.
type Index struct {
	store    Store
	embedder embeddings.Embedder
}

// New creates an index.
func New(store Store, embedder embeddings.Embedder) *Index {
	return &Index{store: store, embedder: embedder}
}

// Query embeds text and returns the topK nearest corpus entries.
// Empty text has no match.
func (i *Index) Query(ctx context.Context, text string, topK int) ([]models.CorpusMatch, error) {
	if text == "" {
		return nil, nil
	}
	if topK <= 0 {
		topK = 1
	}
	vec, err := i.embedder.EmbedQuery(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	return i.store.NearestCorpusEntries(ctx, vec, topK)
}

// Upsert embeds the batch in one call and stores it.
func (i *Index) Upsert(ctx context.Context, entries []models.CorpusEntry) error {
	if len(entries) == 0 {
		return nil
	}
	texts := make([]string, len(entries))
	for n, e := range entries {
		texts[n] = e.Text
	}
	vecs, err := i.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed %d entries: %w", len(entries), err)
	}
	if len(vecs) != len(entries) {
		return fmt.Errorf("embed %d entries: got %d vectors", len(entries), len(vecs))
	}

	rows := make([]db.CorpusRow, len(entries))
	for n, e := range entries {
		rows[n] = db.CorpusRow{Entry: e, Embedding: vecs[n]}
	}
	return i.store.UpsertCorpusEntries(ctx, rows)
}

// Ping checks the database.
func (i *Index) Ping(ctx context.Context) error {
	return i.store.Ping(ctx)
}
