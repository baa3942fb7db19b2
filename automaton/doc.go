// Package automaton defines the variable-NFA contract the core indexing
// machinery consumes: integer state ids, consuming transitions labeled by
// a character predicate, and non-consuming "assignment" transitions
// labeled by a mapping.Marker.
//
// Compiling a regular expression (with named capture groups) down to such
// an automaton — Glushkov construction, HIR parsing, character-class
// matching — is left to an external front-end. What this package does
// provide is Builder, a small hand-assembly surface for constructing
// concrete variable-NFAs state-by-state and transition-by-transition, so
// the indexing core can be built, tested, and demonstrated without a
// regex front-end.
package automaton
