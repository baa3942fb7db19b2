package automaton

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/dspanner/idag/mapping"
)

// RevAssignEdge is one reverse assignment-transition edge: from Target,
// following Marker backward, lands on Source.
type RevAssignEdge struct {
	Marker mapping.Marker
	Source int
}

// NFA is the variable-NFA contract consumed by the indexing core.
// States are integer ids in [0, NumStates()). Implementations must be
// immutable once returned to the core: the IndexedDag holds an NFA for its
// entire lifetime and never mutates it.
type NFA interface {
	// Initial returns q0, the start state.
	Initial() int

	// NumStates returns m, the number of states (Q = {0, ..., m-1}).
	NumStates() int

	// NumVars returns k, the number of named capture groups.
	NumVars() int

	// Finals returns F, the accepting states, as a bitmap over [0, NumStates()).
	Finals() *bitset.BitSet

	// JumpStates returns the set of states that are the target of at least
	// one assignment transition — the "jumpable" vertices.
	JumpStates() *bitset.BitSet

	// AdjForChar returns, for every source state, the list of consuming
	// successors reachable by reading ch. adj[s] may be nil.
	AdjForChar(ch rune) [][]int

	// ClosureForAssignations returns, for every source state, the forward
	// transitive closure over assignment transitions.
	ClosureForAssignations() [][]int

	// RevAssignations returns, for every target state, the list of
	// (Marker, source) reverse assignment edges landing on it.
	RevAssignations() [][]RevAssignEdge
}
