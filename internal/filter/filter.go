// Package filter removes allow-listed words from text before it is scored.
package filter

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// WordFilter drops whitespace-delimited tokens whose lowercase form is allow-listed.
// It is immutable and safe for concurrent use.
type WordFilter struct {
	allowed map[string]struct{}
}

// New builds a filter from allow-listed words. Words are lowercased on the way in.
func New(words []string) *WordFilter {
	allowed := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		allowed[lower(w)] = struct{}{}
	}
	return &WordFilter{allowed: allowed}
}

// Apply splits text on whitespace, drops allow-listed tokens and rejoins
// the remainder with single spaces.
func (f *WordFilter) Apply(text string) string {
	tokens := strings.Fields(text)
	if len(f.allowed) == 0 {
		return strings.Join(tokens, " ")
	}

	kept := tokens[:0]
	for _, tok := range tokens {
		if _, ok := f.allowed[lower(tok)]; ok {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

// Len returns the number of allow-listed words.
func (f *WordFilter) Len() int {
	return len(f.allowed)
}

// lower creates a Caser per call; Casers keep state and must not be shared.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}
