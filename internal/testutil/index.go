package testutil

import (
	"context"
	"sync"

	"profanity/internal/models"
)

// StaticIndex is an in-memory index.Index for tests. Queries are answered
// from Matches keyed by the exact query text; unknown text gets Default.
type StaticIndex struct {
	Matches map[string]models.CorpusMatch
	Default *models.CorpusMatch

	// Errors fails queries for the given text.
	Errors map[string]error
	// Block makes queries for the given text wait for context cancellation.
	Block map[string]bool

	PingErr   error
	UpsertErr error

	mu      sync.Mutex
	queries []string
	upserts [][]models.CorpusEntry
}

// NewStaticIndex creates an index answering with the given text -> (match text, score) pairs.
func NewStaticIndex(scores map[string]Hit) *StaticIndex {
	idx := &StaticIndex{Matches: make(map[string]models.CorpusMatch, len(scores))}
	for text, hit := range scores {
		idx.Matches[text] = models.CorpusMatch{ID: text, Text: hit.Text, Score: hit.Score}
	}
	return idx
}

// Hit is a shorthand for a canned match.
type Hit struct {
	Text  string
	Score float64
}

// Query implements index.Querier.
func (s *StaticIndex) Query(ctx context.Context, text string, topK int) ([]models.CorpusMatch, error) {
	s.mu.Lock()
	s.queries = append(s.queries, text)
	s.mu.Unlock()

	if s.Block[text] {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if err := s.Errors[text]; err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if m, ok := s.Matches[text]; ok {
		return []models.CorpusMatch{m}, nil
	}
	if s.Default != nil {
		return []models.CorpusMatch{*s.Default}, nil
	}
	return nil, nil
}

// Upsert implements index.Upserter and records every batch.
func (s *StaticIndex) Upsert(ctx context.Context, entries []models.CorpusEntry) error {
	if s.UpsertErr != nil {
		return s.UpsertErr
	}
	batch := append([]models.CorpusEntry(nil), entries...)
	s.mu.Lock()
	s.upserts = append(s.upserts, batch)
	s.mu.Unlock()
	return nil
}

// Ping implements index.Pinger.
func (s *StaticIndex) Ping(ctx context.Context) error {
	return s.PingErr
}

// Queries returns every query text seen so far, in arrival order.
func (s *StaticIndex) Queries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.queries...)
}

// Upserts returns every upserted batch.
func (s *StaticIndex) Upserts() [][]models.CorpusEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]models.CorpusEntry(nil), s.upserts...)
}
