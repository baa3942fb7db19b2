package dag

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/dspanner/idag/mapping"
)

// frame is one entry of the Enumerator's backward-walk stack: the
// recorded level to resume from, the live states there, and the partial
// mapping assembled so far.
type frame struct {
	level   int
	gamma   *bitset.BitSet
	mapping []mapping.Assignment
}

// Enumerator is the stack-driven backward walk over an IndexedDag that
// yields every distinct Mapping. It borrows from its IndexedDag and must
// not be used after the IndexedDag is discarded.
type Enumerator struct {
	dag   *IndexedDag
	stack []frame
	done  bool

	curr        *nextLevelIterator
	currLevel   int
	currMapping []mapping.Assignment
}

// Next advances the enumeration and returns the next distinct Mapping, or
// ok=false once every accepting run has been enumerated.
func (e *Enumerator) Next() (mapping.Mapping, bool) {
	if e.done {
		return mapping.Mapping{}, false
	}

	for {
		if e.curr != nil {
			if m, ok := e.drainCurrent(); ok {
				return m, true
			}
		}

		if len(e.stack) == 0 {
			e.done = true
			return mapping.Mapping{}, false
		}

		top := e.stack[len(e.stack)-1]
		e.stack = e.stack[:len(e.stack)-1]
		e.currLevel = top.level
		e.currMapping = top.mapping
		e.curr = newNextLevelIterator(e.dag.nfa, top.gamma)
	}
}

// drainCurrent consumes e.curr until it is exhausted, emitting the first
// complete Mapping it finds (pushing every intermediate jump target onto
// e.stack along the way), or returns ok=false once e.curr has nothing left
// to offer this round.
func (e *Enumerator) drainCurrent() (mapping.Mapping, bool) {
	for {
		markers, gamma2, ok := e.curr.next()
		if !ok {
			return mapping.Mapping{}, false
		}
		if gamma2.None() {
			continue
		}

		extended := make([]mapping.Assignment, len(e.currMapping), len(e.currMapping)+len(markers))
		copy(extended, e.currMapping)
		for _, m := range markers {
			extended = append(extended, mapping.Assignment{Marker: m, Pos: e.currLevel})
		}

		if e.currLevel == 0 && gamma2.Test(uint(e.dag.nfa.Initial())) {
			return e.finalize(extended), true
		}

		jumpLevel, jumpGamma, jok := e.dag.idx.Jump(e.currLevel, gamma2)
		if jok && !jumpGamma.None() {
			e.stack = append(e.stack, frame{level: jumpLevel, gamma: jumpGamma, mapping: extended})
		}
	}
}

// finalize realigns marker positions through charOffsets (codepoint index
// -> byte offset) and assembles the resulting Mapping.
func (e *Enumerator) finalize(assigns []mapping.Assignment) mapping.Mapping {
	aligned := make([]mapping.Assignment, len(assigns))
	for i, a := range assigns {
		aligned[i] = mapping.Assignment{Marker: a.Marker, Pos: e.dag.charOffsets[a.Pos]}
	}
	return mapping.FromMarkers(e.dag.text, aligned)
}
