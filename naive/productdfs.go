package naive

import (
	"fmt"
	"strings"

	"github.com/dspanner/idag/automaton"
	"github.com/dspanner/idag/mapping"
)

// fwdAssignEdge is one forward, single-hop assignment transition,
// reconstructed from automaton.NFA.RevAssignations() (the NFA contract
// only exposes the reverse direction plus the transitive forward closure;
// a direct DFS needs to take assignment transitions one at a time so it
// can record each Marker at the position it fires).
type fwdAssignEdge struct {
	marker mapping.Marker
	target int
}

// ProductDFS is the product-automaton oracle: a direct DFS over
// (text position, automaton state) pairs that takes consuming transitions
// on read characters and assignment transitions at no cost to position,
// recording every Marker taken along the way. Independent of
// bitmatrix/levelset/jumpindex — a correct but exponential-delay reference
// implementation.
type ProductDFS struct {
	nfa   automaton.NFA
	text  string
	runes []rune
	off   []int
	fwd   [][]fwdAssignEdge
}

var _ SpannerEnumerator = (*ProductDFS)(nil)

// NewProductDFS builds a ProductDFS enumerator over nfa and text.
func NewProductDFS(nfa automaton.NFA, text string) *ProductDFS {
	return &ProductDFS{nfa: nfa, text: text}
}

// Preprocess decodes text and inverts RevAssignations into a forward,
// single-hop assignment adjacency.
func (p *ProductDFS) Preprocess() error {
	p.runes, p.off = charOffsets(p.text)

	rev := p.nfa.RevAssignations()
	fwd := make([][]fwdAssignEdge, p.nfa.NumStates())
	for target, edges := range rev {
		for _, e := range edges {
			fwd[e.Source] = append(fwd[e.Source], fwdAssignEdge{marker: e.Marker, target: target})
		}
	}
	p.fwd = fwd
	return nil
}

// Iter returns a fresh MappingIterator.
func (p *ProductDFS) Iter() MappingIterator {
	return &productDFSIter{
		p:     p,
		stack: []dfsFrame{{state: p.nfa.Initial(), pos: 0}},
		seen:  map[string]bool{},
	}
}

// dfsFrame is one node of the DFS stack: the current automaton state, the
// current codepoint position, and the assignment run recorded so far.
type dfsFrame struct {
	state   int
	pos     int
	assigns []mapping.Assignment
}

type productDFSIter struct {
	p     *ProductDFS
	stack []dfsFrame
	seen  map[string]bool
}

// Next implements MappingIterator: pop a frame, push every consuming and
// assignment successor, and emit a Mapping
// whenever a final state is reached exactly at text end, deduplicating
// across DFS paths that reconstruct an identical Mapping.
func (it *productDFSIter) Next() (mapping.Mapping, bool) {
	n := len(it.p.runes)

	for len(it.stack) > 0 {
		f := it.stack[len(it.stack)-1]
		it.stack = it.stack[:len(it.stack)-1]

		atEnd := f.pos == n

		if !atEnd {
			ch := it.p.runes[f.pos]
			for _, t := range it.p.nfa.AdjForChar(ch)[f.state] {
				it.stack = append(it.stack, dfsFrame{state: t, pos: f.pos + 1, assigns: f.assigns})
			}
		}

		for _, e := range it.p.fwd[f.state] {
			extended := append(append([]mapping.Assignment(nil), f.assigns...),
				mapping.Assignment{Marker: e.marker, Pos: it.p.off[f.pos]})
			it.stack = append(it.stack, dfsFrame{state: e.target, pos: f.pos, assigns: extended})
		}

		if atEnd && it.p.nfa.Finals().Test(uint(f.state)) {
			m := mapping.FromMarkers(it.p.text, f.assigns)
			key := mappingKey(m)
			if !it.seen[key] {
				it.seen[key] = true
				return m, true
			}
		}
	}

	return mapping.Mapping{}, false
}

// mappingKey builds a dedup key from a Mapping's (variable, span) pairs,
// independent of the substrings they happen to contain.
func mappingKey(m mapping.Mapping) string {
	var sb strings.Builder
	for _, v := range m.Variables() {
		s, _ := m.Get(v)
		fmt.Fprintf(&sb, "%d:%d-%d;", v.ID, s.Start, s.End)
	}
	return sb.String()
}
