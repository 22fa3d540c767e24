package corpus

import (
	"github.com/minio/highwayhash"
	"golang.org/x/text/cases"
)

var hashKey = []byte("profanity-corpus-dedupe-key-0001")

// textHash fingerprints text case-insensitively for duplicate detection.
func textHash(text string) (uint64, error) {
	h, err := highwayhash.New64(hashKey)
	if err != nil {
		return 0, err
	}
	if _, err := h.Write([]byte(cases.Fold().String(text))); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}

// dedupe tracks the fingerprints seen during one run.
type dedupe map[uint64]struct{}

// seen records text and reports whether it was already recorded.
func (d dedupe) seen(text string) (bool, error) {
	sum, err := textHash(text)
	if err != nil {
		return false, err
	}
	if _, ok := d[sum]; ok {
		return true, nil
	}
	d[sum] = struct{}{}
	return false, nil
}
