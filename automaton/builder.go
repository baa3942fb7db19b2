package automaton

import (
	"errors"
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/dspanner/idag/mapping"
)

// ErrStateOutOfRange is returned when a state id outside [0, numStates) is
// referenced while building an NFA.
var ErrStateOutOfRange = errors.New("automaton: state id out of range")

// ErrNoInitialState is returned by Build when SetInitial was never called.
var ErrNoInitialState = errors.New("automaton: no initial state set")

// CharPred is a character predicate labeling a consuming transition: a
// single char, a character class, or a wildcard.
type CharPred func(rune) bool

// Char matches exactly the rune c.
func Char(c rune) CharPred {
	return func(r rune) bool { return r == c }
}

// AnyOf matches any rune present in set.
func AnyOf(set string) CharPred {
	members := make(map[rune]struct{}, len(set))
	for _, r := range set {
		members[r] = struct{}{}
	}
	return func(r rune) bool {
		_, ok := members[r]
		return ok
	}
}

// NotIn matches any rune absent from set (a negated character class).
func NotIn(set string) CharPred {
	members := make(map[rune]struct{}, len(set))
	for _, r := range set {
		members[r] = struct{}{}
	}
	return func(r rune) bool {
		_, ok := members[r]
		return !ok
	}
}

// Wildcard matches any rune, including newline (the dot-matches-all case).
func Wildcard() CharPred {
	return func(rune) bool { return true }
}

type charTrans struct {
	from int
	pred CharPred
	to   int
}

type assignTrans struct {
	from   int
	marker mapping.Marker
	to     int
}

// Builder assembles a concrete variable-NFA state by state. It is not a
// regex compiler: callers add states and transitions directly.
type Builder struct {
	numStates int
	numVars   int
	initial   int
	haveInit  bool
	finals    *bitset.BitSet
	chars     []charTrans
	assigns   []assignTrans
}

// NewBuilder creates a Builder for an automaton with numStates states
// ([0, numStates)) and numVars named capture groups ([0, numVars)).
func NewBuilder(numStates, numVars int) *Builder {
	return &Builder{
		numStates: numStates,
		numVars:   numVars,
		finals:    bitset.New(uint(numStates)),
	}
}

func (b *Builder) checkState(q int) {
	if q < 0 || q >= b.numStates {
		panic(fmt.Errorf("%w: %d (numStates=%d)", ErrStateOutOfRange, q, b.numStates))
	}
}

// SetInitial marks q as the start state q0.
func (b *Builder) SetInitial(q int) *Builder {
	b.checkState(q)
	b.initial = q
	b.haveInit = true
	return b
}

// SetFinal marks q as accepting.
func (b *Builder) SetFinal(q int) *Builder {
	b.checkState(q)
	b.finals.Set(uint(q))
	return b
}

// AddTransition adds a consuming transition from -> to, labeled by pred.
func (b *Builder) AddTransition(from int, pred CharPred, to int) *Builder {
	b.checkState(from)
	b.checkState(to)
	b.chars = append(b.chars, charTrans{from: from, pred: pred, to: to})
	return b
}

// AddAssign adds a non-consuming assignment transition from -> to, labeled
// by marker.
func (b *Builder) AddAssign(from int, marker mapping.Marker, to int) *Builder {
	b.checkState(from)
	b.checkState(to)
	b.assigns = append(b.assigns, assignTrans{from: from, marker: marker, to: to})
	return b
}

// Build finalizes the automaton, computing its derived adjacencies: the
// assignment closure, the reverse assignment edges, and the jump states.
func (b *Builder) Build() (*VNFA, error) {
	if !b.haveInit {
		return nil, ErrNoInitialState
	}

	raw := make([][]int, b.numStates)
	rev := make([][]RevAssignEdge, b.numStates)
	jumpStates := bitset.New(uint(b.numStates))

	for _, a := range b.assigns {
		raw[a.from] = append(raw[a.from], a.to)
		rev[a.to] = append(rev[a.to], RevAssignEdge{Marker: a.marker, Source: a.from})
		jumpStates.Set(uint(a.to))
	}

	closure := make([][]int, b.numStates)
	for s := 0; s < b.numStates; s++ {
		closure[s] = transitiveClosure(s, raw)
	}

	return &VNFA{
		numStates:  b.numStates,
		numVars:    b.numVars,
		initial:    b.initial,
		finals:     b.finals.Clone(),
		jumpStates: jumpStates,
		closure:    closure,
		rev:        rev,
		chars:      append([]charTrans(nil), b.chars...),
		charCache:  make(map[rune][][]int),
	}, nil
}

// transitiveClosure performs a BFS over raw (one-hop adjacency) from s and
// returns every state reachable by one or more hops, deduplicated, in BFS
// discovery order (not sorted). The automaton may be cyclic, so visited-tracking is
// required to terminate.
func transitiveClosure(s int, raw [][]int) []int {
	visited := make(map[int]bool)
	queue := []int{s}
	var order []int

	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, v := range raw[u] {
			if !visited[v] {
				visited[v] = true
				order = append(order, v)
				queue = append(queue, v)
			}
		}
	}

	return order
}

// VNFA is a concrete, immutable variable-NFA built by Builder.
type VNFA struct {
	numStates  int
	numVars    int
	initial    int
	finals     *bitset.BitSet
	jumpStates *bitset.BitSet
	closure    [][]int
	rev        [][]RevAssignEdge
	chars      []charTrans
	charCache  map[rune][][]int
}

var _ NFA = (*VNFA)(nil)

// Initial implements NFA.
func (v *VNFA) Initial() int { return v.initial }

// NumStates implements NFA.
func (v *VNFA) NumStates() int { return v.numStates }

// NumVars implements NFA.
func (v *VNFA) NumVars() int { return v.numVars }

// Finals implements NFA.
func (v *VNFA) Finals() *bitset.BitSet { return v.finals }

// JumpStates implements NFA.
func (v *VNFA) JumpStates() *bitset.BitSet { return v.jumpStates }

// ClosureForAssignations implements NFA.
func (v *VNFA) ClosureForAssignations() [][]int { return v.closure }

// RevAssignations implements NFA.
func (v *VNFA) RevAssignations() [][]RevAssignEdge { return v.rev }

// AdjForChar implements NFA. Results are memoized per rune since the
// consuming transitions are static once built.
func (v *VNFA) AdjForChar(ch rune) [][]int {
	if cached, ok := v.charCache[ch]; ok {
		return cached
	}
	adj := make([][]int, v.numStates)
	for _, t := range v.chars {
		if t.pred(ch) {
			adj[t.from] = append(adj[t.from], t.to)
		}
	}
	v.charCache[ch] = adj
	return adj
}
