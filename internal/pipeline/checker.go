package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"profanity/internal/chunker"
	"profanity/internal/filter"
	"profanity/internal/metrics"
	"profanity/internal/models"
)

// UnitScorer scores one unit. A nil result with a nil error means the
// corpus had nothing to say about the unit.
type UnitScorer interface {
	Score(ctx context.Context, unit models.TextUnit) (*models.ScoredUnit, error)
}

// Checker runs profanity checks. It holds no per-request state and is safe
// for concurrent use.
type Checker struct {
	scorer   UnitScorer
	filter   *filter.WordFilter
	semantic *chunker.SemanticChunker
	opts     Options
	logger   *slog.Logger
}

// New creates a Checker. A nil logger falls back to slog.Default().
func New(scorer UnitScorer, opts Options, logger *slog.Logger) *Checker {
	if logger == nil {
		logger = slog.Default()
	}
	opts.AllowedWords = append([]string(nil), opts.AllowedWords...)
	return &Checker{
		scorer:   scorer,
		filter:   filter.New(opts.AllowedWords),
		semantic: chunker.NewSemanticChunker(opts.Chunking),
		opts:     opts,
		logger:   logger,
	}
}

// AllowedWords returns the number of distinct allow-listed words the filter drops.
func (c *Checker) AllowedWords() int {
	return c.filter.Len()
}

// Check filters text, scores every token and semantic chunk concurrently and
// reduces the results. Any lookup failure cancels the remaining lookups and
// fails the whole check; no partial verdict is returned.
func (c *Checker) Check(ctx context.Context, text string) (models.Verdict, error) {
	units := c.Units(text)

	scored, err := c.scoreAll(ctx, units)
	if err != nil {
		metrics.RecordCheck(metrics.OutcomeError)
		return models.Verdict{}, err
	}

	verdict := Reduce(scored, c.opts.Thresholds)
	if verdict.IsProfane {
		metrics.RecordCheck(metrics.OutcomeProfane)
	} else {
		metrics.RecordCheck(metrics.OutcomeClean)
	}
	c.logger.DebugContext(ctx, "profanity check finished",
		"units", len(units),
		"profane", verdict.IsProfane,
		"score", verdict.Score,
	)
	return verdict, nil
}

// Units returns the comparison units for text: tokens in order, then
// semantic chunks in order. Empty tokens are dropped.
func (c *Checker) Units(text string) []models.TextUnit {
	filtered := c.filter.Apply(text)

	tokens := chunker.Tokenize(filtered)
	chunks := c.semantic.Split(filtered)

	units := make([]models.TextUnit, 0, len(tokens)+len(chunks))
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		units = append(units, models.TextUnit{Content: tok, Kind: models.KindToken})
	}
	for _, ch := range chunks {
		units = append(units, models.TextUnit{Content: ch, Kind: models.KindSemantic})
	}
	return units
}

// scoreAll fans out one lookup per unit and joins on all of them. Results
// are stored by unit position so the reduce step sees a fixed order no
// matter how lookups complete.
func (c *Checker) scoreAll(ctx context.Context, units []models.TextUnit) ([]*models.ScoredUnit, error) {
	results := make([]*models.ScoredUnit, len(units))

	g, gctx := errgroup.WithContext(ctx)
	if c.opts.Concurrency > 0 {
		g.SetLimit(c.opts.Concurrency)
	}

	for i, unit := range units {
		g.Go(func() error {
			uctx := gctx
			if c.opts.UnitTimeout > 0 {
				var cancel context.CancelFunc
				uctx, cancel = context.WithTimeout(gctx, c.opts.UnitTimeout)
				defer cancel()
			}

			start := time.Now()
			su, err := c.scorer.Score(uctx, unit)
			metrics.ObserveScoring(unit.Kind.String(), time.Since(start), err)
			if err != nil {
				// Lookups cancelled because a sibling failed are not logged again.
				if gctx.Err() == nil {
					c.logger.ErrorContext(ctx, "unit scoring failed",
						"kind", unit.Kind.String(),
						"unit", i,
						"units", len(units),
						"error", err,
					)
				}
				return fmt.Errorf("score %s unit %d: %w", unit.Kind, i, err)
			}
			results[i] = su
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
