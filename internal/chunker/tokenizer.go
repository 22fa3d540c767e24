package chunker

import "regexp"

var whitespaceRun = regexp.MustCompile(`\s+`)

// Tokenize splits text on whitespace runs. A single word yields a one
// element slice and empty text yields [""]; leading or trailing whitespace
// produces empty tokens, which callers skip before scoring.
func Tokenize(text string) []string {
	return whitespaceRun.Split(text, -1)
}
