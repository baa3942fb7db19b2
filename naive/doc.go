// Package naive implements three baseline spanner enumerators that serve
// as equivalence-testing oracles for the indexed algorithm: Quadratic (NFA
// simulation over every start position), Cubic (a library regex engine
// applied to every substring), and ProductDFS (a direct DFS over
// (text position, state) pairs, independent of the dag/jumpindex
// machinery). All three implement SpannerEnumerator, the common
// preprocess-then-iterate interface.
//
// Quadratic and Cubic track only whole-match spans, not named captures;
// ProductDFS is the one baseline that reconstructs full Mapping values.
package naive
