package levelset

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// LevelSet holds L = numLevels bitmaps of width numVertices, one per text
// position ("level"), recording which automaton states survive there.
type LevelSet struct {
	numVertices int
	levels      []*bitset.BitSet
}

// New creates a LevelSet with numLevels empty levels, each a bitmap over
// [0, numVertices).
func New(numLevels, numVertices int) *LevelSet {
	levels := make([]*bitset.BitSet, numLevels)
	for i := range levels {
		levels[i] = bitset.New(uint(numVertices))
	}
	return &LevelSet{numVertices: numVertices, levels: levels}
}

func (ls *LevelSet) checkLevel(method string, level int) {
	if level < 0 || level >= len(ls.levels) {
		panic(fmt.Sprintf("levelset.%s: level %d out of range [0,%d)", method, level, len(ls.levels)))
	}
}

// Register marks state q alive at level.
func (ls *LevelSet) Register(level, q int) {
	ls.checkLevel("Register", level)
	ls.levels[level].Set(uint(q))
}

// GetLevel returns the bitmap for level. Callers must not mutate the
// returned bitset directly; use KeepOnly or Register.
func (ls *LevelSet) GetLevel(level int) *bitset.BitSet {
	ls.checkLevel("GetLevel", level)
	return ls.levels[level]
}

// KeepOnly intersects level's bitmap with mask in place (used by the jump
// index's backward trimming pass).
func (ls *LevelSet) KeepOnly(level int, mask *bitset.BitSet) {
	ls.checkLevel("KeepOnly", level)
	ls.levels[level].InPlaceIntersection(mask)
}

// VerticesToIndices maps a set of NFA state ids (vertices, restricted to
// those alive at level) to their compact 0-based indices within
// GetLevel(level) — index i corresponds to the i-th set bit of the level,
// in ascending order. State ids in vertices that are not alive at level
// are ignored. Runs in O(numVertices).
func (ls *LevelSet) VerticesToIndices(level int, vertices *bitset.BitSet) *bitset.BitSet {
	ls.checkLevel("VerticesToIndices", level)
	live := ls.levels[level]

	result := bitset.New(live.Count())
	idx := uint(0)
	for v, ok := live.NextSet(0); ok; v, ok = live.NextSet(v + 1) {
		if vertices.Test(v) {
			result.Set(idx)
		}
		idx++
	}
	return result
}

// IndicesToVertices is the inverse of VerticesToIndices: maps compact
// indices within GetLevel(level) back to NFA state ids. Indices beyond the
// level's alive count are ignored.
func (ls *LevelSet) IndicesToVertices(level int, indices *bitset.BitSet) *bitset.BitSet {
	ls.checkLevel("IndicesToVertices", level)
	live := ls.levels[level]

	result := bitset.New(uint(ls.numVertices))
	idx := uint(0)
	for v, ok := live.NextSet(0); ok; v, ok = live.NextSet(v + 1) {
		if indices.Test(idx) {
			result.Set(v)
		}
		idx++
	}
	return result
}

// NumLevels returns the number of levels this LevelSet was constructed
// with.
func (ls *LevelSet) NumLevels() int { return len(ls.levels) }

// MemoryUsage returns an estimate of the bytes backing all level bitmaps.
func (ls *LevelSet) MemoryUsage() int {
	words := (ls.numVertices + 63) / 64
	return len(ls.levels) * words * 8
}
