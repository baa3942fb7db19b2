package dag

import (
	"testing"

	"github.com/bits-and-blooms/bitset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dspanner/idag/automaton"
	"github.com/dspanner/idag/mapping"
)

// buildDiamond builds q0 --Open(x)--> q1, q0 --Open(y)--> q2: two distinct
// assignment walks from the same predecessor q0 converge nowhere directly,
// but q1 and q2 share q0 as a common backward target, letting
// followSpSm's ambiguity rule be exercised from gamma={q1,q2}: two
// incomparable marker sets converging on one vertex make it invalid.
func buildDiamond(t *testing.T) (*automaton.VNFA, mapping.Marker, mapping.Marker) {
	t.Helper()
	x := mapping.NewVariable(0, "x")
	y := mapping.NewVariable(1, "y")
	b := automaton.NewBuilder(3, 2)
	b.SetInitial(0)
	b.SetFinal(0)
	b.AddAssign(0, mapping.Open(x), 1)
	b.AddAssign(0, mapping.Open(y), 2)
	nfa, err := b.Build()
	require.NoError(t, err)
	return nfa, mapping.Open(x), mapping.Open(y)
}

func TestFollowSpSm_AmbiguousVertexDropped(t *testing.T) {
	nfa, mx, my := buildDiamond(t)

	gamma := bitset.New(3)
	gamma.Set(1)
	gamma.Set(2)

	it := newNextLevelIterator(nfa, gamma)

	sp := bitset.New(0)
	sp.Set(uint(mx.ID()))
	sp.Set(uint(my.ID()))
	sm := bitset.New(0)

	result := it.followSpSm(sp, sm)

	// q0 is reached from both q1 (via Open(x)) and q2 (via Open(y)); the
	// two walks accumulate {x} and {y}, which are incomparable, so q0 must
	// not appear in the result even though it is backward-reachable.
	assert.False(t, result.Test(0), "ambiguous vertex q0 must be dropped")
}

func TestFollowSpSm_SingleWalkIsValid(t *testing.T) {
	nfa, mx, _ := buildDiamond(t)

	gamma := bitset.New(3)
	gamma.Set(1)

	it := newNextLevelIterator(nfa, gamma)

	sp := bitset.New(0)
	sp.Set(uint(mx.ID()))
	sm := bitset.New(0)

	result := it.followSpSm(sp, sm)
	assert.True(t, result.Test(0), "q0 reached by a single unambiguous walk must be valid")
}

func TestAreIncomparable(t *testing.T) {
	a := bitset.New(0)
	a.Set(1)
	b := bitset.New(0)
	b.Set(2)
	assert.True(t, areIncomparable(a, b))

	c := bitset.New(0)
	c.Set(1)
	c.Set(2)
	assert.False(t, areIncomparable(a, c), "a is a subset of c")
}
