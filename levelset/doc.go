// Package levelset implements the two-dimensional bitmap that records which
// automaton states are alive at each text position, plus the conversions
// between automaton-state ids and the compact per-level indices the reach
// matrices are addressed by.
package levelset
