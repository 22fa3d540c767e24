package pipeline

import (
	"sort"

	"profanity/internal/metrics"
	"profanity/internal/models"
)

// flaggedSet keeps distinct entries in insertion order.
type flaggedSet struct {
	seen    map[models.FlaggedEntry]struct{}
	entries []models.FlaggedEntry
}

func newFlaggedSet() *flaggedSet {
	return &flaggedSet{seen: make(map[models.FlaggedEntry]struct{})}
}

func (s *flaggedSet) add(e models.FlaggedEntry) {
	if _, ok := s.seen[e]; ok {
		return
	}
	s.seen[e] = struct{}{}
	s.entries = append(s.entries, e)
}

// sorted returns entries by descending score; ties keep insertion order.
func (s *flaggedSet) sorted() []models.FlaggedEntry {
	out := append([]models.FlaggedEntry(nil), s.entries...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// Reduce turns scored units into a verdict. Nil entries (units with no
// match) are ignored. The result depends only on the order of scored, which
// callers fix before reducing.
//
// When something is flagged the verdict carries the highest flagged score
// and its matched corpus text. Otherwise the score is the best token-level
// score seen, or 0.
func Reduce(scored []*models.ScoredUnit, th Thresholds) models.Verdict {
	flagged := newFlaggedSet()
	var bestToken float64

	for _, su := range scored {
		if su == nil {
			continue
		}
		if su.Unit.Kind == models.KindToken && su.Score > bestToken {
			bestToken = su.Score
		}
		if su.Score > th.For(su.Unit.Kind) {
			metrics.RecordFlagged(su.Unit.Kind.String())
			flagged.add(models.FlaggedEntry{Text: su.MatchText, Score: su.Score})
		}
	}

	if len(flagged.entries) > 0 {
		top := flagged.sorted()[0]
		return models.Verdict{IsProfane: true, Score: top.Score, Text: top.Text}
	}
	return models.Verdict{IsProfane: false, Score: bestToken}
}
