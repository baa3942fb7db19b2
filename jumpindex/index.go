package jumpindex

import (
	"fmt"
	"sort"

	"github.com/bits-and-blooms/bitset"

	"github.com/dspanner/idag/automaton"
	"github.com/dspanner/idag/bitmatrix"
	"github.com/dspanner/idag/levelset"
)

// reachEntry pairs a stored reach matrix with a usage counter, so
// Statistics can report how many of the precomputed matrices a given
// enumeration actually touched.
type reachEntry struct {
	matrix *bitmatrix.Matrix
	used   int
}

// recLevel is one recorded landing level: its jl vector (one entry per
// compact index alive at pos) and the reach matrices from pos back to
// earlier recorded levels, keyed by the earlier level's physical position.
type recLevel struct {
	pos    int
	jl     []int
	rlevel []int
	reach  map[int]*reachEntry
}

// Index is the layered jump index for a fixed (automaton, text) pair: the
// compressed set of "landing" levels and the matrices that carry a set of
// live states backward between them in a bounded number of matrix
// multiplications per hop, regardless of how many physical text positions
// separate the two levels.
//
// Every jumpable level (one whose live set meets jumpVertices) is recorded,
// plus level 0 and the final level; levels in between are collapsed into
// the running carry matrix. jumpDistance never changes which levels are
// recorded — it thins which reach matrices a recorded level stores toward
// its more distant ancestors. The matrix toward the immediately preceding
// recorded level is always kept, so Jump can fall back to walking recorded
// levels one hop at a time when a thinned matrix is missing; the output set
// is therefore identical for every jumpDistance, only the per-result delay
// and the preprocessing cost move.
type Index struct {
	ls           *levelset.LevelSet
	jumpVertices *bitset.BitSet
	numVertices  int
	jumpDistance int

	lastLevel    int
	disconnected bool

	levels   []*recLevel
	posIndex map[int]int

	lastJL          []int
	lastRecordedPos int
	carry           *bitmatrix.Matrix
}

// Build runs the forward, trimming, and reach-matrix passes over nfa and
// text, producing a ready-to-query Index. Returns ErrDisconnected if some prefix of text
// admits no live state (ErrDisconnected also covers the degenerate case
// where trimming empties every remaining level).
func Build(nfa automaton.NFA, text []rune, strategy TrimStrategy, jumpDistance int) (*Index, error) {
	if jumpDistance < 1 {
		jumpDistance = 1
	}
	n := len(text)
	numVertices := nfa.NumStates()

	idx := &Index{
		ls:           levelset.New(n+1, numVertices),
		jumpVertices: nfa.JumpStates(),
		numVertices:  numVertices,
		jumpDistance: jumpDistance,
		posIndex:     map[int]int{},
	}

	idx.ls.Register(0, nfa.Initial())
	idx.extendLevel(0, nfa.ClosureForAssignations())
	idx.lastLevel = 0

	// Pass A: forward, character-consuming.
	for level := 1; level <= n; level++ {
		if !idx.initNextLevel(level, nfa.AdjForChar(text[level-1]), nfa.ClosureForAssignations()) {
			break
		}
	}

	// Pass B: backward trim.
	switch strategy {
	case TrimFull:
		idx.trimLastLevel(nfa.Finals(), nfa.ClosureForAssignations())
		for level := idx.lastLevel; level >= 1; level-- {
			idx.trimLevel(level, nfa.AdjForChar(text[level-1]), nfa.ClosureForAssignations())
		}
	case TrimPartial:
		idx.trimLastLevel(nfa.Finals(), nfa.ClosureForAssignations())
	case TrimNone:
	}

	if idx.lastLevel < n || idx.ls.GetLevel(idx.lastLevel).None() {
		return nil, ErrDisconnected
	}

	// Pass C: forward, reach-matrix construction. Level 0 is initialized
	// here rather than before Pass A so its jl vector matches the trimmed
	// live set.
	jl0 := make([]int, idx.ls.GetLevel(0).Count())
	idx.levels = append(idx.levels, &recLevel{pos: 0, jl: jl0, reach: map[int]*reachEntry{}})
	idx.posIndex[0] = 0
	idx.lastJL = jl0
	idx.lastRecordedPos = 0

	for level := 1; level <= n; level++ {
		idx.initReach(level, nfa.AdjForChar(text[level-1]), nfa.ClosureForAssignations())
	}

	return idx, nil
}

func (idx *Index) extendLevel(level int, closureAdj [][]int) {
	base := idx.ls.GetLevel(level).Clone()
	for s, ok := base.NextSet(0); ok; s, ok = base.NextSet(s + 1) {
		for _, t := range closureAdj[s] {
			idx.ls.Register(level, t)
		}
	}
}

func (idx *Index) initNextLevel(level int, adjForChar [][]int, closureAdj [][]int) bool {
	prev := idx.ls.GetLevel(level - 1)
	for s, ok := prev.NextSet(0); ok; s, ok = prev.NextSet(s + 1) {
		for _, t := range adjForChar[int(s)] {
			idx.ls.Register(level, t)
		}
	}
	if idx.ls.GetLevel(level).None() {
		return false
	}
	idx.extendLevel(level, closureAdj)
	idx.lastLevel = level
	return true
}

func (idx *Index) trimLastLevel(finals *bitset.BitSet, closureAdj [][]int) {
	keep := finals.Clone()
	for s := 0; s < idx.numVertices; s++ {
		for _, t := range closureAdj[s] {
			if keep.Test(uint(t)) {
				keep.Set(uint(s))
			}
		}
	}
	idx.ls.KeepOnly(idx.lastLevel, keep)
}

func (idx *Index) trimLevel(level int, adjForChar [][]int, closureAdj [][]int) {
	curr := idx.ls.GetLevel(level)
	prev := idx.ls.GetLevel(level - 1)

	keep := bitset.New(uint(idx.numVertices))
	for p, ok := prev.NextSet(0); ok; p, ok = prev.NextSet(p + 1) {
		for _, t := range adjForChar[int(p)] {
			if curr.Test(uint(t)) {
				keep.Set(p)
				break
			}
		}
	}
	for s := 0; s < idx.numVertices; s++ {
		for _, t := range closureAdj[s] {
			if keep.Test(uint(t)) {
				keep.Set(uint(s))
			}
		}
	}
	idx.ls.KeepOnly(level-1, keep)
}

func aliveIDs(bs *bitset.BitSet) []int {
	ids := make([]int, 0, bs.Count())
	for v, ok := bs.NextSet(0); ok; v, ok = bs.NextSet(v + 1) {
		ids = append(ids, int(v))
	}
	return ids
}

func distinctSorted(vals []int) []int {
	seen := make(map[int]bool, len(vals))
	out := make([]int, 0, len(vals))
	for _, v := range vals {
		if v == -1 || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

func (idx *Index) isJumpable(level int) bool {
	curr := idx.ls.GetLevel(level).Clone()
	curr.InPlaceIntersection(idx.jumpVertices)
	return !curr.None()
}

// initReach is Pass C's single-step update: compute jl for level from
// level-1's jl, extend the running reach matrix, and, if level becomes a
// recorded landing level, snapshot jl/rlevel/reach for it.
func (idx *Index) initReach(level int, adjForChar [][]int, closureAdj [][]int) {
	currIDs := aliveIDs(idx.ls.GetLevel(level))
	prevIDs := aliveIDs(idx.ls.GetLevel(level - 1))

	tToI := make(map[int]int, len(currIDs))
	for i, t := range currIDs {
		tToI[t] = i
	}

	// States at level-1 that received an assignment transition from a live
	// state there: a marker can fire at level-1 itself, so any successor
	// inherits level-1 as its landing level. A nonempty set implies level-1
	// met jumpVertices and was recorded.
	nonjumpPrev := bitset.New(uint(idx.numVertices))
	for _, s := range prevIDs {
		for _, t := range closureAdj[s] {
			nonjumpPrev.Set(uint(t))
		}
	}

	landedLast := idx.lastRecordedPos == level-1
	lastRecorded := idx.levels[idx.posIndex[idx.lastRecordedPos]]

	// -1 marks a vertex with no consuming predecessor (it enters the level
	// through an assignment transition only); Jump skips such entries.
	newJL := make([]int, len(currIDs))
	for i := range newJL {
		newJL[i] = -1
	}

	reachT, _ := bitmatrix.New(len(currIDs), len(prevIDs)) // rows = curr compact idx, cols = prev compact idx

	for si, s := range prevIDs {
		candidate := idx.lastJL[si]
		if nonjumpPrev.Test(uint(s)) {
			candidate = level - 1
		}
		for _, t := range adjForChar[s] {
			ti, ok := tToI[t]
			if !ok {
				continue
			}
			reachT.Insert(ti, si)
			if candidate > newJL[ti] {
				newJL[ti] = candidate
			}
		}
	}

	var newReach *bitmatrix.Matrix
	if landedLast {
		newReach = reachT.Transpose() // rows = lastRecorded (== prev) idx, cols = curr idx
	} else {
		newReach = idx.carry.Product(reachT) // rows = lastRecorded idx, cols = curr idx
	}

	if level < idx.lastLevel && !idx.isJumpable(level) {
		idx.carry = newReach
		idx.lastJL = newJL
		return
	}

	// Always store the matrix toward the previous recorded level; store
	// matrices toward the other landing levels unless jumpDistance thins
	// them out. A thinned ancestor is still reachable through the
	// per-hop fallback in Jump.
	reach := map[int]*reachEntry{idx.lastRecordedPos: {matrix: newReach}}
	if full := distinctSorted(newJL); len(full) > 0 {
		nearest := full[len(full)-1]
		for _, p := range full {
			if p == idx.lastRecordedPos {
				continue
			}
			if p != nearest && p%idx.jumpDistance != 0 {
				continue
			}
			src, ok := lastRecorded.reach[p]
			if !ok {
				continue
			}
			reach[p] = &reachEntry{matrix: src.matrix.Product(newReach.Transpose())}
		}
	}

	rlevel := make([]int, 0, len(reach))
	for p := range reach {
		rlevel = append(rlevel, p)
	}
	sort.Ints(rlevel)

	rl := &recLevel{pos: level, jl: newJL, rlevel: rlevel, reach: reach}
	idx.levels = append(idx.levels, rl)
	idx.posIndex[level] = len(idx.levels) - 1
	idx.lastRecordedPos = level
	idx.carry = nil
	idx.lastJL = newJL
}

// Jump is the backward-walk operation: given the live states
// Γ at recorded level levelPos, returns the nearest landing level ℓ* < levelPos
// reachable from Γ without crossing an intervening landing level, and the
// live states Γ' at ℓ*. ok is false when there is nowhere to jump: Γ is
// empty, no state in Γ has a landing level, or the nearest landing level is
// levelPos itself (only possible at level 0). Jump panics if levelPos was
// never recorded — a caller bug, not recoverable input.
func (idx *Index) Jump(levelPos int, gamma *bitset.BitSet) (newLevel int, newGamma *bitset.BitSet, ok bool) {
	i, known := idx.posIndex[levelPos]
	if !known {
		panic(fmt.Sprintf("jumpindex: Jump called on non-recorded level %d", levelPos))
	}
	rl := idx.levels[i]

	gi := idx.ls.VerticesToIndices(levelPos, gamma)
	if gi.None() {
		return levelPos, gamma, false
	}

	target := -1
	for bi, set := gi.NextSet(0); set; bi, set = gi.NextSet(bi + 1) {
		if j := rl.jl[bi]; j > target {
			target = j
		}
	}
	if target < 0 || target == levelPos {
		return levelPos, gamma, false
	}

	// Walk down through recorded levels. The exact matrix toward target may
	// have been thinned by jumpDistance, so take the nearest stored ancestor
	// at or above it; the previous recorded level is always stored, which
	// guarantees progress and an eventual exact landing.
	curPos := levelPos
	curRL := rl
	curCompact := gi
	for curPos > target {
		bestKey := -1
		var best *reachEntry
		for k, e := range curRL.reach {
			if k >= target && (bestKey == -1 || k < bestKey) {
				bestKey = k
				best = e
			}
		}
		if best == nil {
			panic(fmt.Sprintf("jumpindex: no reach matrix from level %d toward %d", curPos, target))
		}
		best.used++
		curCompact = best.matrix.ColMul(curCompact)
		curPos = bestKey
		curRL = idx.levels[idx.posIndex[curPos]]
	}

	return curPos, idx.ls.IndicesToVertices(curPos, curCompact), true
}

// Finals returns the set of states alive at the last text level (always a
// recorded level once Build succeeds).
func (idx *Index) Finals() *bitset.BitSet { return idx.ls.GetLevel(idx.lastLevel) }

// LastLevel returns the final text position (len(text)).
func (idx *Index) LastLevel() int { return idx.lastLevel }

// IsRecorded reports whether level is a recorded landing level (and
// therefore a valid argument to Jump).
func (idx *Index) IsRecorded(level int) bool {
	_, ok := idx.posIndex[level]
	return ok
}

// AliveAt returns the states alive at level (any physical level, recorded
// or not).
func (idx *Index) AliveAt(level int) *bitset.BitSet { return idx.ls.GetLevel(level) }

// Statistics summarizes the built index, for diagnostics and tuning
// jumpDistance.
type Statistics struct {
	NumLevels         int
	NumRecordedLevels int
	NumMatrices       int
	UsedMatrices      int
	MaxMatrixHeight   int
	MaxMatrixWidth    int
	AvgMatrixArea     float64
	AvgMatrixDensity  float64
	MaxRlevelWidth    int
	AvgRlevelWidth    float64
}

// GetStatistics computes a Statistics snapshot. Matrix usage counters
// reflect every Jump call made on this Index so far.
func (idx *Index) GetStatistics() Statistics {
	var s Statistics
	s.NumLevels = idx.lastLevel + 1
	s.NumRecordedLevels = len(idx.levels)

	var totalArea, totalDensity float64
	var totalRlevel int
	for _, rl := range idx.levels {
		if w := len(rl.rlevel); w > s.MaxRlevelWidth {
			s.MaxRlevelWidth = w
		}
		totalRlevel += len(rl.rlevel)

		for _, e := range rl.reach {
			s.NumMatrices++
			if e.used > 0 {
				s.UsedMatrices++
			}
			if e.matrix.Height() > s.MaxMatrixHeight {
				s.MaxMatrixHeight = e.matrix.Height()
			}
			if e.matrix.Width() > s.MaxMatrixWidth {
				s.MaxMatrixWidth = e.matrix.Width()
			}
			totalArea += float64(e.matrix.Height() * e.matrix.Width())
			totalDensity += e.matrix.Density()
		}
	}
	if s.NumMatrices > 0 {
		s.AvgMatrixArea = totalArea / float64(s.NumMatrices)
		s.AvgMatrixDensity = totalDensity / float64(s.NumMatrices)
	}
	if s.NumRecordedLevels > 0 {
		s.AvgRlevelWidth = float64(totalRlevel) / float64(s.NumRecordedLevels)
	}
	return s
}

// GetMemoryUsage estimates total bytes retained by the index: the
// underlying LevelSet bitmaps plus every stored reach matrix and jl/rlevel
// bookkeeping slice.
func (idx *Index) GetMemoryUsage() int {
	total := idx.ls.MemoryUsage()
	for _, rl := range idx.levels {
		total += len(rl.jl) * 8
		total += len(rl.rlevel) * 8
		for _, e := range rl.reach {
			total += e.matrix.MemoryUsage()
		}
	}
	return total
}
