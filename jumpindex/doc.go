// Package jumpindex implements the layered jump index: the per-level
// "nearest landing level" function jl, the compressed reach matrices
// between landing levels, and the Jump operation that walks backward
// through them in time independent of the number of physical levels
// skipped.
//
// Build proceeds in three passes: a forward character-consuming pass that
// registers which automaton states survive at each text position, a
// backward trimming pass (per TrimStrategy) that discards states not on
// any accepting run, and a forward pass that computes jl and the reach
// matrices between recorded levels.
package jumpindex
