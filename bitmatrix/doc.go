// Package bitmatrix implements the dense boolean matrices the jump index
// uses to encode level-to-level reachability.
//
// What & why:
//
//	A Matrix of shape h×w packs its rows into []uint64 words, one word per
//	64 columns. Matrices whose total area (h*w) fits in a single machine
//	word are packed tightly into one inline uint64 instead of a heap slice,
//	eliminating allocator traffic for the overwhelmingly common case: a
//	typical regex automaton has well under 64 states, and most jump-index
//	levels are far narrower still.
//
// Product treats its right-hand operand as already transposed — callers
// must honor this, matching the jump index's own reach-matrix composition.
package bitmatrix
