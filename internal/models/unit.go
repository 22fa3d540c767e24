package models

// UnitKind identifies which chunking strategy produced a TextUnit.
type UnitKind int

// Unit kinds.
const (
	KindToken UnitKind = iota
	KindSemantic
)

// String returns the label used in logs and metrics.
func (k UnitKind) String() string {
	switch k {
	case KindToken:
		return "token"
	case KindSemantic:
		return "semantic"
	default:
		return "unknown"
	}
}

// TextUnit is one piece of input text compared against the reference corpus.
type TextUnit struct {
	Content string
	Kind    UnitKind
}

// ScoredUnit is a TextUnit paired with its best corpus match.
// MatchText is the stored corpus text, not the unit's own content.
type ScoredUnit struct {
	Unit      TextUnit
	MatchText string
	Score     float64
}

// FlaggedEntry is a match whose score crossed its kind's threshold.
// Entries compare by value so duplicates collapse in a set.
type FlaggedEntry struct {
	Text  string
	Score float64
}
