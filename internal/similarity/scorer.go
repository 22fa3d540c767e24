// Package similarity scores a single text unit against the reference corpus.
package similarity

import (
	"context"
	"errors"
	"fmt"
	"math"

	"profanity/internal/index"
	"profanity/internal/models"
)

var (
	// ErrScoringService wraps every failure of the underlying index. It must
	// never be read as "no match".
	ErrScoringService = errors.New("scoring service failure")

	// ErrMalformedMatch marks a match whose score is not in [0,1].
	ErrMalformedMatch = errors.New("malformed match")
)

// Scorer is a thin adapter over an index.Querier asking for the single best match.
type Scorer struct {
	index index.Querier
}

// NewScorer creates a scorer backed by q.
func NewScorer(q index.Querier) *Scorer {
	return &Scorer{index: q}
}

// Score returns the best corpus match for unit. It returns (nil, nil) for
// empty units and when the corpus has no match.
func (s *Scorer) Score(ctx context.Context, unit models.TextUnit) (*models.ScoredUnit, error) {
	if unit.Content == "" {
		return nil, nil
	}

	matches, err := s.index.Query(ctx, unit.Content, 1)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScoringService, err)
	}
	if len(matches) == 0 {
		return nil, nil
	}

	best := matches[0]
	if math.IsNaN(best.Score) || best.Score < 0 || best.Score > 1 {
		return nil, fmt.Errorf("%w: %w: score %v for entry %q", ErrScoringService, ErrMalformedMatch, best.Score, best.ID)
	}

	return &models.ScoredUnit{
		Unit:      unit,
		MatchText: best.Text,
		Score:     best.Score,
	}, nil
}
