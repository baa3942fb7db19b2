package naive

import "github.com/dspanner/idag/mapping"

// SpannerEnumerator is the common interface the three naive baselines (and,
// conceptually, the indexed dag.IndexedDag) implement: a one-time
// Preprocess step, then a fresh MappingIterator per enumeration.
type SpannerEnumerator interface {
	// Preprocess performs the one-time setup (text decoding, plus regex
	// compilation or adjacency inversion where the baseline needs it).
	Preprocess() error

	// Iter returns a fresh iterator over this enumerator's matches.
	Iter() MappingIterator
}

// MappingIterator yields successive Mapping values until exhausted.
type MappingIterator interface {
	// Next returns the next Mapping, or ok=false once exhausted.
	Next() (mapping.Mapping, bool)
}

// charOffsets returns text decoded into runes plus the codepoint-index ->
// byte-offset table (mirrors dag.charOffsets; each baseline needs its own
// copy since it runs independently of IndexedDag).
func charOffsets(text string) ([]rune, []int) {
	runes := make([]rune, 0, len(text))
	offsets := make([]int, 0, len(text)+1)
	for i, r := range text {
		offsets = append(offsets, i)
		runes = append(runes, r)
	}
	offsets = append(offsets, len(text))
	return runes, offsets
}
