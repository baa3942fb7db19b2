package naive

import (
	"fmt"
	"regexp"

	"github.com/dspanner/idag/mapping"
)

// Cubic is the cubic-delay baseline: for every substring of the text, it
// asks a library regex engine (the standard regexp package) whether the
// whole substring matches, and reports its range as a whole-match span.
// pattern is anchored with ^...$ internally.
type Cubic struct {
	pattern string
	text    string

	re    *regexp.Regexp
	runes []rune
	off   []int
}

var _ SpannerEnumerator = (*Cubic)(nil)

// NewCubic builds a Cubic enumerator for the given (unanchored) regex
// pattern over text.
func NewCubic(pattern, text string) *Cubic {
	return &Cubic{pattern: pattern, text: text}
}

// Preprocess compiles the anchored pattern and decodes text. Returns the
// regexp package's compile error, if any.
func (c *Cubic) Preprocess() error {
	re, err := regexp.Compile(fmt.Sprintf("^(?:%s)$", c.pattern))
	if err != nil {
		return fmt.Errorf("naive: compiling cubic pattern: %w", err)
	}
	c.re = re
	c.runes, c.off = charOffsets(c.text)
	return nil
}

// Iter returns a fresh MappingIterator.
func (c *Cubic) Iter() MappingIterator {
	return &cubicIter{c: c, start: 0, end: 0}
}

type cubicIter struct {
	c          *Cubic
	start, end int
}

// Next implements MappingIterator: advance end across the text for the
// current start, testing every substring, then advance start. The empty
// substring [start,start) is tested first for each start, so nullable
// patterns report their zero-length matches just as Quadratic does. Starts
// range over the positions before the end of the text only: the empty
// substring at the very end of the text is not tested.
func (it *cubicIter) Next() (mapping.Mapping, bool) {
	c := it.c
	n := len(c.runes)

	for it.start < n {
		for it.end <= n {
			sub := c.text[c.off[it.start]:c.off[it.end]]
			currEnd := it.end
			it.end++
			if c.re.MatchString(sub) {
				return c.wholeMatch(it.start, currEnd), true
			}
		}
		it.start++
		it.end = it.start
	}

	return mapping.Mapping{}, false
}

func (c *Cubic) wholeMatch(startRune, endRune int) mapping.Mapping {
	v := mapping.DefaultVariable()
	return mapping.FromMarkers(c.text, []mapping.Assignment{
		{Marker: mapping.Open(v), Pos: c.off[startRune]},
		{Marker: mapping.Close(v), Pos: c.off[endRune]},
	})
}
