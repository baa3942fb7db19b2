package naive

import (
	"github.com/dspanner/idag/automaton"
	"github.com/dspanner/idag/mapping"
)

// Quadratic is the quadratic-delay baseline: for every start position i,
// it simulates nfa forward over the remaining text and reports every end
// position at which a final state is live. It tracks only the whole-match
// span, not named captures — a sanity check on match boundaries, not a
// full oracle.
type Quadratic struct {
	nfa   automaton.NFA
	text  string
	runes []rune
	off   []int
}

var _ SpannerEnumerator = (*Quadratic)(nil)

// NewQuadratic builds a Quadratic enumerator over nfa and text.
func NewQuadratic(nfa automaton.NFA, text string) *Quadratic {
	return &Quadratic{nfa: nfa, text: text}
}

// Preprocess decodes text into runes and byte offsets; it does no
// automaton analysis.
func (q *Quadratic) Preprocess() error {
	q.runes, q.off = charOffsets(q.text)
	return nil
}

// Iter returns a fresh MappingIterator.
func (q *Quadratic) Iter() MappingIterator {
	return &quadraticIter{q: q, start: 0, end: 0, states: q.initialStates()}
}

func (q *Quadratic) initialStates() []bool {
	states := make([]bool, q.nfa.NumStates())
	states[q.nfa.Initial()] = true
	return states
}

type quadraticIter struct {
	q          *Quadratic
	start, end int
	states     []bool
	done       bool // current start's simulation has reached text end or died
}

// Next implements MappingIterator with a nested start/end cursor loop:
// advance end one codepoint at a time, stepping the live-state vector, and
// emit [start,end) whenever a final state is live.
// The match check must run both before AND after the last codepoint is
// consumed, so done is tracked separately from the step itself rather than
// folded into the loop condition.
func (it *quadraticIter) Next() (mapping.Mapping, bool) {
	q := it.q
	n := len(q.runes)

	for it.start < n {
		if it.done {
			it.start++
			it.end = it.start
			it.states = q.initialStates()
			it.done = false
			continue
		}

		isMatch := isFinal(q.nfa, it.states)
		currEnd := it.end

		if it.end == n || !anyTrue(it.states) {
			it.done = true
		} else {
			adj := q.nfa.AdjForChar(q.runes[it.end])
			next := make([]bool, q.nfa.NumStates())
			for s, ok := range it.states {
				if !ok {
					continue
				}
				for _, t := range adj[s] {
					next[t] = true
				}
			}
			it.states = next
			it.end++
		}

		if isMatch {
			return q.wholeMatch(it.start, currEnd), true
		}
	}

	return mapping.Mapping{}, false
}

func isFinal(nfa automaton.NFA, states []bool) bool {
	for s, ok := range states {
		if ok && nfa.Finals().Test(uint(s)) {
			return true
		}
	}
	return false
}

func anyTrue(bs []bool) bool {
	for _, b := range bs {
		if b {
			return true
		}
	}
	return false
}

func (q *Quadratic) wholeMatch(startRune, endRune int) mapping.Mapping {
	v := mapping.DefaultVariable()
	return mapping.FromMarkers(q.text, []mapping.Assignment{
		{Marker: mapping.Open(v), Pos: q.off[startRune]},
		{Marker: mapping.Close(v), Pos: q.off[endRune]},
	})
}
