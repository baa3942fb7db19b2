// Package mapping defines the output vocabulary of the enumerator: named
// capture Variables, the Open/Close Markers that label assignment
// transitions in a variable-NFA, and the Mapping (document spanner) that
// associates each Variable with a half-open byte span of the input text.
package mapping
