package naive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dspanner/idag/automaton"
	"github.com/dspanner/idag/mapping"
	"github.com/dspanner/idag/naive"
)

// buildPlainA builds a marker-free acceptor for the single char 'a' with no
// self-loops: state1 has no outgoing edges, so a run dies immediately past
// the match. Quadratic supplies its
// own "try every start position" outer loop, so the automaton itself must
// not also encode an unanchored search or every start would match at every
// later position too.
func buildPlainA(t *testing.T) *automaton.VNFA {
	t.Helper()
	b := automaton.NewBuilder(2, 0)
	b.SetInitial(0)
	b.SetFinal(1)
	b.AddTransition(0, automaton.Char('a'), 1)
	nfa, err := b.Build()
	require.NoError(t, err)
	return nfa
}

func drainQuadratic(t *testing.T, it naive.MappingIterator) []mapping.Mapping {
	t.Helper()
	var out []mapping.Mapping
	for {
		m, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, m)
	}
}

func TestQuadratic_RepeatedMatch(t *testing.T) {
	nfa := buildPlainA(t)
	q := naive.NewQuadratic(nfa, "aaa")
	require.NoError(t, q.Preprocess())

	results := drainQuadratic(t, q.Iter())
	require.Len(t, results, 3)

	v := mapping.DefaultVariable()
	var spans []mapping.Span
	for _, m := range results {
		s, ok := m.Get(v)
		require.True(t, ok)
		spans = append(spans, s)
	}
	assert.ElementsMatch(t, []mapping.Span{{Start: 0, End: 1}, {Start: 1, End: 2}, {Start: 2, End: 3}}, spans)
}

func TestCubic_RepeatedMatch(t *testing.T) {
	c := naive.NewCubic("a", "aaa")
	require.NoError(t, c.Preprocess())

	results := drainQuadratic(t, c.Iter())
	require.Len(t, results, 3)

	v := mapping.DefaultVariable()
	var spans []mapping.Span
	for _, m := range results {
		s, ok := m.Get(v)
		require.True(t, ok)
		spans = append(spans, s)
	}
	assert.ElementsMatch(t, []mapping.Span{{Start: 0, End: 1}, {Start: 1, End: 2}, {Start: 2, End: 3}}, spans)
}

func TestCubic_NullablePattern(t *testing.T) {
	c := naive.NewCubic("a*", "ab")
	require.NoError(t, c.Preprocess())

	results := drainQuadratic(t, c.Iter())
	require.Len(t, results, 3)

	v := mapping.DefaultVariable()
	var spans []mapping.Span
	for _, m := range results {
		s, ok := m.Get(v)
		require.True(t, ok)
		spans = append(spans, s)
	}
	// "a*" matches the empty substring at every start position, plus the
	// single 'a'.
	assert.ElementsMatch(t, []mapping.Span{{Start: 0, End: 0}, {Start: 0, End: 1}, {Start: 1, End: 1}}, spans)
}

func TestCubic_BadPattern(t *testing.T) {
	c := naive.NewCubic("(unterminated", "aaa")
	assert.Error(t, c.Preprocess())
}

// buildAB builds an anchored two-variable automaton for "(?P<x>a)(?P<y>b)",
// matching the dag package's fixture of the same shape.
func buildAB(t *testing.T) (*automaton.VNFA, mapping.Variable, mapping.Variable) {
	t.Helper()
	x := mapping.NewVariable(0, "x")
	y := mapping.NewVariable(1, "y")
	b := automaton.NewBuilder(7, 2)
	b.SetInitial(0)
	b.SetFinal(6)
	b.AddAssign(0, mapping.Open(x), 1)
	b.AddTransition(1, automaton.Char('a'), 2)
	b.AddAssign(2, mapping.Close(x), 3)
	b.AddAssign(3, mapping.Open(y), 4)
	b.AddTransition(4, automaton.Char('b'), 5)
	b.AddAssign(5, mapping.Close(y), 6)
	nfa, err := b.Build()
	require.NoError(t, err)
	return nfa, x, y
}

func TestProductDFS_NamedCaptures(t *testing.T) {
	nfa, x, y := buildAB(t)
	p := naive.NewProductDFS(nfa, "ab")
	require.NoError(t, p.Preprocess())

	results := drainQuadratic(t, p.Iter())
	require.Len(t, results, 1)

	sx, ok := results[0].Get(x)
	require.True(t, ok)
	assert.Equal(t, mapping.Span{Start: 0, End: 1}, sx)

	sy, ok := results[0].Get(y)
	require.True(t, ok)
	assert.Equal(t, mapping.Span{Start: 1, End: 2}, sy)
}

func TestProductDFS_NoAcceptingRun(t *testing.T) {
	nfa, _, _ := buildAB(t)
	p := naive.NewProductDFS(nfa, "xy")
	require.NoError(t, p.Preprocess())

	results := drainQuadratic(t, p.Iter())
	assert.Empty(t, results)
}
