package dag

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/dspanner/idag/automaton"
	"github.com/dspanner/idag/mapping"
)

// nextLevelIterator enumerates, for a fixed set of live states gamma at one
// text level, every distinct pair (S, gamma') where S is a set of markers
// simultaneously assignable on entry to gamma and gamma' is the state set
// reached by following exactly the markers in S and no marker outside S.
type nextLevelIterator struct {
	nfa automaton.NFA

	// expectedMarkers are the markers reachable backward from gamma via
	// assignment edges, in BFS discovery order.
	expectedMarkers []mapping.Marker
	gamma           *bitset.BitSet

	stack      []nlFrame
	done       bool
	almostDone bool
}

// nlFrame is one node of the include/exclude decision tree over
// expectedMarkers: sp is the set of marker ids decided "included" so far,
// sm the set decided "excluded", markers the ordered S so far (mirrors
// the ids in sp).
type nlFrame struct {
	sp, sm  *bitset.BitSet
	markers []mapping.Marker
}

// newNextLevelIterator computes expectedMarkers by a BFS over the reverse
// assignment adjacency starting at gamma's states, collecting every marker
// encountered and every predecessor state reached, then returns an
// iterator ready to enumerate over it.
func newNextLevelIterator(nfa automaton.NFA, gamma *bitset.BitSet) *nextLevelIterator {
	adj := nfa.RevAssignations()

	seen := make(map[int]bool)
	var expected []mapping.Marker

	discovered := gamma.Clone()
	queue := aliveStates(gamma)

	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for _, e := range adj[s] {
			id := e.Marker.ID()
			if !seen[id] {
				seen[id] = true
				expected = append(expected, e.Marker)
			}
			if !discovered.Test(uint(e.Source)) {
				discovered.Set(uint(e.Source))
				queue = append(queue, e.Source)
			}
		}
	}

	return &nextLevelIterator{
		nfa:             nfa,
		expectedMarkers: expected,
		gamma:           gamma.Clone(),
		stack:           []nlFrame{{sp: bitset.New(0), sm: bitset.New(0)}},
	}
}

func aliveStates(bs *bitset.BitSet) []int {
	states := make([]int, 0, bs.Count())
	for v, ok := bs.NextSet(0); ok; v, ok = bs.NextSet(v + 1) {
		states = append(states, int(v))
	}
	return states
}

// next yields the next (S, gamma') pair, or ok=false once exhausted. The
// no-marker and single-marker cases short-circuit; anything else runs the
// include/exclude DFS.
func (it *nextLevelIterator) next() (markers []mapping.Marker, gamma2 *bitset.BitSet, ok bool) {
	if it.done {
		return nil, nil, false
	}

	if it.almostDone || len(it.expectedMarkers) == 0 {
		it.done = true
		return nil, it.gamma.Clone(), true
	}

	if len(it.expectedMarkers) == 1 {
		marker := it.expectedMarkers[0]
		adj := it.nfa.RevAssignations()
		next := bitset.New(0)
		for s, has := it.gamma.NextSet(0); has; s, has = it.gamma.NextSet(s + 1) {
			for _, e := range adj[s] {
				next.Set(uint(e.Source))
			}
		}
		it.almostDone = true
		return []mapping.Marker{marker}, next, true
	}

	for len(it.stack) > 0 {
		top := it.stack[len(it.stack)-1]
		it.stack = it.stack[:len(it.stack)-1]
		sp, sm, curMarkers := top.sp, top.sm, top.markers

		resolved := it.followSpSm(sp, sm)
		if resolved.None() {
			continue
		}

		for sp.Count()+sm.Count() < uint(len(it.expectedMarkers)) {
			depth := int(sp.Count() + sm.Count())
			nextMarker := it.expectedMarkers[depth]
			nextID := uint(nextMarker.ID())

			sp.Set(nextID)
			candidate := it.followSpSm(sp, sm)

			if !candidate.None() {
				// Feasible with nextMarker included: push the exclude
				// branch for later, keep exploring the include branch.
				branchSp := sp.Clone()
				branchSm := sm.Clone()
				branchSm.Set(nextID)
				branchSp.Clear(nextID)
				branchMarkers := append([]mapping.Marker(nil), curMarkers...)
				it.stack = append(it.stack, nlFrame{sp: branchSp, sm: branchSm, markers: branchMarkers})

				curMarkers = append(curMarkers, nextMarker)
				resolved = candidate
			} else {
				// Infeasible with nextMarker included: the exclude branch
				// is the only option.
				sp.Clear(nextID)
				sm.Set(nextID)
				resolved = nil
			}
		}

		if resolved == nil {
			resolved = it.followSpSm(sp, sm)
		}

		return curMarkers, resolved, true
	}

	it.done = true
	return nil, nil, false
}

// pathEntry tracks, for one vertex reached while walking assignment edges
// backward from gamma, the set of S⁺ markers accumulated so far, or
// ambiguous=true once two incomparable marker sets converge on it.
type pathEntry struct {
	markers   *bitset.BitSet
	ambiguous bool
}

// followSpSm computes, from each vertex in it.gamma, the set of backward
// assignment walks that take every marker in sp and skip every marker in
// sm, and returns the vertices reached by a walk that used exactly the
// markers in sp, unambiguously. An ambiguous vertex does not propagate
// further: its own walks are undefined, so nothing they would produce
// downstream can be trusted either.
func (it *nextLevelIterator) followSpSm(sp, sm *bitset.BitSet) *bitset.BitSet {
	adj := it.nfa.RevAssignations()
	pathSet := make(map[int]*pathEntry)

	var queue []int
	for s, has := it.gamma.NextSet(0); has; s, has = it.gamma.NextSet(s + 1) {
		id := int(s)
		pathSet[id] = &pathEntry{markers: bitset.New(0)}
		queue = append(queue, id)
	}

	for len(queue) > 0 {
		source := queue[0]
		queue = queue[1:]

		cur := pathSet[source]
		if cur.ambiguous {
			continue
		}

		for _, e := range adj[source] {
			markerID := e.Marker.ID()
			if sm.Test(uint(markerID)) {
				continue
			}

			if _, known := pathSet[e.Source]; !known {
				queue = append(queue, e.Source)
			}

			candidate := cur.markers.Clone()
			if sp.Test(uint(markerID)) {
				candidate.Set(uint(markerID))
			}

			existing, known := pathSet[e.Source]
			switch {
			case !known:
				pathSet[e.Source] = &pathEntry{markers: candidate}
			case existing.ambiguous:
				// stays ambiguous
			case areIncomparable(candidate, existing.markers):
				existing.ambiguous = true
				existing.markers = nil
			default:
				existing.markers = candidate
			}
		}
	}

	result := bitset.New(0)
	for vertex, pe := range pathSet {
		if pe.ambiguous {
			continue
		}
		if pe.markers.Count() == sp.Count() {
			result.Set(uint(vertex))
		}
	}
	return result
}

// areIncomparable reports whether neither a nor b is a subset of the
// other.
func areIncomparable(a, b *bitset.BitSet) bool {
	return !isSubsetOf(a, b) && !isSubsetOf(b, a)
}

func isSubsetOf(a, b *bitset.BitSet) bool {
	for i, has := a.NextSet(0); has; i, has = a.NextSet(i + 1) {
		if !b.Test(i) {
			return false
		}
	}
	return true
}
