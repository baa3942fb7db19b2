package jumpindex

import "errors"

// ErrDisconnected is returned by Build when the automaton has no surviving
// state at some prefix of the text: no mapping can ever be completed and
// the index is unusable for enumeration.
var ErrDisconnected = errors.New("jumpindex: automaton disconnected from text, no reachable final state")

// TrimStrategy controls how aggressively Build prunes states that cannot
// reach a final state.
type TrimStrategy int

const (
	// TrimFull intersects every level with the backward-reachable-from-final
	// set, level by level. Produces the smallest index, costs an extra
	// backward sweep during Build.
	TrimFull TrimStrategy = iota
	// TrimPartial only restricts the last level to F (and its
	// assignment-closure preimage); earlier levels keep states that are
	// dead ends. Cheaper to build, slightly larger index.
	TrimPartial
	// TrimNone skips trimming entirely.
	TrimNone
)

func (s TrimStrategy) String() string {
	switch s {
	case TrimFull:
		return "full"
	case TrimPartial:
		return "partial"
	case TrimNone:
		return "none"
	default:
		return "unknown"
	}
}
