package chunker

import (
	"strings"

	"github.com/tmc/langchaingo/textsplitter"
)

// SemanticChunker produces overlapping windows of roughly ChunkSize runes
// using a recursive character splitter: the first separator present in the
// text wins, and pieces that are still too long are split again with the
// remaining separators. Each new window starts with up to ChunkOverlap runes
// carried over from the previous one.
//
// The chunker is stateless and safe for concurrent use.
type SemanticChunker struct {
	splitter textsplitter.RecursiveCharacter
}

// NewSemanticChunker returns a chunker for cfg. Invalid sizes are clamped
// rather than rejected; use Config.Validate to surface them.
func NewSemanticChunker(cfg Config) *SemanticChunker {
	cfg = clamp(cfg)
	return &SemanticChunker{
		splitter: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(cfg.ChunkSize),
			textsplitter.WithChunkOverlap(cfg.ChunkOverlap),
			textsplitter.WithSeparators(cfg.Separators),
		),
	}
}

func clamp(cfg Config) Config {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	if cfg.ChunkOverlap < 0 {
		cfg.ChunkOverlap = 0
	}
	if cfg.ChunkOverlap >= cfg.ChunkSize {
		cfg.ChunkOverlap = cfg.ChunkSize - 1
	}
	if len(cfg.Separators) == 0 {
		cfg.Separators = DefaultSeparators
	}
	cfg.Separators = append([]string(nil), cfg.Separators...)
	return cfg
}

// Split returns the windows for text. Single words (and empty text) yield
// no windows: they are already covered by Tokenize.
func (s *SemanticChunker) Split(text string) []string {
	if len(strings.Fields(text)) <= 1 {
		return nil
	}
	chunks, err := s.splitter.SplitText(text)
	if err != nil {
		return nil
	}

	// runs of separators leave blank pieces behind
	out := chunks[:0]
	for _, c := range chunks {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
