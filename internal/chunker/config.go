// Package chunker turns text into comparison units: single tokens and
// overlapping multi-word windows.
package chunker

import (
	"errors"
	"fmt"
)

const (
	DefaultChunkSize    = 30
	DefaultChunkOverlap = 10
)

// DefaultSeparators splits on spaces only, so windows never cut a word.
var DefaultSeparators = []string{" "}

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid chunker config")

// Config bounds the semantic windows. Sizes are measured in runes.
type Config struct {
	ChunkSize    int
	ChunkOverlap int
	Separators   []string
}

// DefaultConfig returns the 30/10 space-separated configuration.
func DefaultConfig() Config {
	return Config{
		ChunkSize:    DefaultChunkSize,
		ChunkOverlap: DefaultChunkOverlap,
		Separators:   append([]string(nil), DefaultSeparators...),
	}
}

// Validate checks that windows can make progress.
func (c Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk size must be positive, got %d", ErrInvalidConfig, c.ChunkSize)
	}
	if c.ChunkOverlap < 0 {
		return fmt.Errorf("%w: chunk overlap must not be negative, got %d", ErrInvalidConfig, c.ChunkOverlap)
	}
	if c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("%w: chunk overlap %d must be smaller than chunk size %d", ErrInvalidConfig, c.ChunkOverlap, c.ChunkSize)
	}
	return nil
}
