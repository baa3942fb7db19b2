// Package dag implements the IndexedDag — the product of a variable-NFA
// and a fixed text, built on top of jumpindex — and the backward
// stack-driven Enumerator that walks it to emit every distinct Mapping a
// run of the automaton witnesses. After polynomial preprocessing, each
// result is produced in time bounded by the automaton size alone,
// independent of the text length.
//
// Compile owns the automaton, the text, the UTF-8 byte-offset table, and
// the jumpindex.Index for the lifetime of an enumeration; Iter's Enumerator
// and its inner nextLevelIterator borrow from it and must not outlive it.
package dag
