package dag

import (
	"errors"

	"github.com/dspanner/idag/automaton"
	"github.com/dspanner/idag/jumpindex"
)

// IndexedDag owns the automaton, the text, the UTF-8 byte-offset table, and
// the jump index for the lifetime of an enumeration. Enumerators borrow
// from it; apart from the jump index's matrix-usage counters (advanced by
// every Jump, reported by GetStatistics), none of this state is mutated
// once Compile returns.
type IndexedDag struct {
	nfa         automaton.NFA
	text        string
	runes       []rune
	charOffsets []int

	idx          *jumpindex.Index
	disconnected bool
}

// Compile builds the index for nfa over text. Construction only returns an
// error for a malformed automaton/options pair; a text with no accepting
// run is not an error — it produces an IndexedDag whose Iter never yields
// a Mapping.
func Compile(nfa automaton.NFA, text string, opts ...Option) (*IndexedDag, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	runes, offsets := charOffsets(text)

	idx, err := jumpindex.Build(nfa, runes, o.Trim, o.JumpDistance)
	if err != nil {
		if errors.Is(err, jumpindex.ErrDisconnected) {
			return &IndexedDag{
				nfa: nfa, text: text, runes: runes, charOffsets: offsets,
				disconnected: true,
			}, nil
		}
		return nil, err
	}

	return &IndexedDag{nfa: nfa, text: text, runes: runes, charOffsets: offsets, idx: idx}, nil
}

// charOffsets returns text decoded into runes, plus the byte-offset table
// the Mapping realignment step indexes into: offsets[i] is the byte offset
// of the i-th codepoint, and offsets[n] is len(text).
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

// Iter returns a fresh Enumerator over this IndexedDag's matches. Multiple
// Enumerators may be created and driven independently; none mutate the
// IndexedDag beyond the matrix-usage counters behind GetStatistics.
func (d *IndexedDag) Iter() *Enumerator {
	if d.disconnected {
		return &Enumerator{dag: d, done: true}
	}

	start := d.idx.Finals().Clone()
	start.InPlaceIntersection(d.nfa.Finals())

	return &Enumerator{
		dag:   d,
		stack: []frame{{level: d.idx.LastLevel(), gamma: start}},
	}
}

// GetStatistics reports the underlying jump index's size/usage summary.
// A disconnected IndexedDag reports the zero value.
func (d *IndexedDag) GetStatistics() jumpindex.Statistics {
	if d.idx == nil {
		return jumpindex.Statistics{}
	}
	return d.idx.GetStatistics()
}

// GetMemoryUsage estimates the bytes retained by the underlying jump index
// and LevelSet. A disconnected IndexedDag reports 0.
func (d *IndexedDag) GetMemoryUsage() int {
	if d.idx == nil {
		return 0
	}
	return d.idx.GetMemoryUsage()
}

// Disconnected reports whether no state survives to witness any accepting
// run of the automaton on the text; if true, Iter always yields nothing.
func (d *IndexedDag) Disconnected() bool { return d.disconnected }
