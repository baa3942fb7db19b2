package mapping

import (
	"fmt"
	"sort"
	"strings"
)

// Span is a half-open byte range [Start, End) into a Mapping's text.
type Span struct {
	Start int
	End   int
}

// Assignment pairs a Marker with the byte position it was produced at.
type Assignment struct {
	Marker Marker
	Pos    int
}

// Mapping assigns each Variable in a run to a half-open byte Span of Text.
// The zero value is not useful; build with FromMarkers.
type Mapping struct {
	Text  string
	spans map[int]Span
	vars  map[int]Variable
}

// pendingSpan tracks the open/close endpoints seen so far for one variable.
type pendingSpan struct {
	open     *int
	close    *int
	variable Variable
}

// FromMarkers assembles a Mapping by pairing each Open(v) with the
// following Close(v) for the same v. assigns need not be ordered by
// position. Double-assignment of the same endpoint to the same variable,
// or a Close before its Open, is a programmer error: FromMarkers panics
// rather than returning an error, since neither can arise from valid
// enumerator output.
func FromMarkers(text string, assigns []Assignment) Mapping {
	pending := make(map[int]*pendingSpan, len(assigns))

	for _, a := range assigns {
		v := a.Marker.Variable()
		ps, ok := pending[v.ID]
		if !ok {
			ps = &pendingSpan{variable: v}
			pending[v.ID] = ps
		}

		pos := a.Pos
		if a.Marker.IsOpen() {
			if ps.open != nil {
				panic(fmt.Sprintf("mapping: can't assign %s at position %d, already assigned to %d", a.Marker, pos, *ps.open))
			}
			ps.open = &pos
		} else {
			if ps.close != nil {
				panic(fmt.Sprintf("mapping: can't assign %s at position %d, already assigned to %d", a.Marker, pos, *ps.close))
			}
			ps.close = &pos
		}
	}

	spans := make(map[int]Span, len(pending))
	vars := make(map[int]Variable, len(pending))
	for id, ps := range pending {
		if ps.open == nil || ps.close == nil {
			panic(fmt.Sprintf("mapping: incomplete span for variable %s", ps.variable))
		}
		if *ps.open > *ps.close {
			panic(fmt.Sprintf("mapping: invalid mapping ordering for variable %s: close %d < open %d", ps.variable, *ps.close, *ps.open))
		}
		spans[id] = Span{Start: *ps.open, End: *ps.close}
		vars[id] = ps.variable
	}

	return Mapping{Text: text, spans: spans, vars: vars}
}

// Get returns the span assigned to v, if any.
func (m Mapping) Get(v Variable) (Span, bool) {
	s, ok := m.spans[v.ID]
	return s, ok
}

// Variables returns the variables this mapping assigns, in ID order.
func (m Mapping) Variables() []Variable {
	out := make([]Variable, 0, len(m.vars))
	for _, v := range m.vars {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of variables this mapping assigns.
func (m Mapping) Len() int { return len(m.spans) }

// Equal reports whether m and other assign the same byte spans to the
// same variables. The backing Text is not compared.
func (m Mapping) Equal(other Mapping) bool {
	if len(m.spans) != len(other.spans) {
		return false
	}
	for id, s := range m.spans {
		os, ok := other.spans[id]
		if !ok || os != s {
			return false
		}
	}
	return true
}

// String renders "name: substring" pairs in variable-ID order.
func (m Mapping) String() string {
	vars := m.Variables()
	parts := make([]string, 0, len(vars))
	for _, v := range vars {
		s := m.spans[v.ID]
		parts = append(parts, fmt.Sprintf("%s: %s", v.Name, m.Text[s.Start:s.End]))
	}
	return strings.Join(parts, " ")
}
