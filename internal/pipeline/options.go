// Package pipeline runs a profanity check: filter, chunk, score every unit
// concurrently and reduce the scores to a single verdict.
package pipeline

import (
	"time"

	"profanity/internal/chunker"
	"profanity/internal/models"
)

const (
	DefaultTokenThreshold    = 0.90
	DefaultSemanticThreshold = 0.86
	DefaultConcurrency       = 16
	DefaultUnitTimeout       = 5 * time.Second
)

// Thresholds are exclusive lower bounds: a unit is flagged when its score is
// strictly greater than the threshold for its kind.
type Thresholds struct {
	Token    float64
	Semantic float64
}

// DefaultThresholds returns 0.90 for tokens and 0.86 for semantic chunks.
func DefaultThresholds() Thresholds {
	return Thresholds{Token: DefaultTokenThreshold, Semantic: DefaultSemanticThreshold}
}

// For returns the threshold for kind.
func (t Thresholds) For(kind models.UnitKind) float64 {
	if kind == models.KindSemantic {
		return t.Semantic
	}
	return t.Token
}

// Options configure a Checker. They are copied on construction.
type Options struct {
	Chunking     chunker.Config
	Thresholds   Thresholds
	AllowedWords []string

	// Concurrency caps in-flight lookups per check; <= 0 means unlimited.
	Concurrency int
	// UnitTimeout bounds each lookup; 0 disables the per-unit deadline.
	UnitTimeout time.Duration
}

// DefaultOptions returns the stock configuration.
func DefaultOptions() Options {
	return Options{
		Chunking:    chunker.DefaultConfig(),
		Thresholds:  DefaultThresholds(),
		Concurrency: DefaultConcurrency,
		UnitTimeout: DefaultUnitTimeout,
	}
}
