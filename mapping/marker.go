package mapping

import "fmt"

// Kind distinguishes the two halves of an assignment transition.
type Kind bool

const (
	// OpenKind marks the start of a capture group's span.
	OpenKind Kind = false
	// CloseKind marks the end of a capture group's span.
	CloseKind Kind = true
)

// Marker labels an assignment (non-consuming) transition of a variable-NFA:
// either Open(v) or Close(v) for some Variable v.
type Marker struct {
	Kind Kind
	Var  Variable
}

// Open builds an Open(v) marker.
func Open(v Variable) Marker { return Marker{Kind: OpenKind, Var: v} }

// Close builds a Close(v) marker.
func Close(v Variable) Marker { return Marker{Kind: CloseKind, Var: v} }

// Variable returns the variable this marker assigns.
func (m Marker) Variable() Variable { return m.Var }

// IsOpen reports whether m opens its variable's span.
func (m Marker) IsOpen() bool { return m.Kind == OpenKind }

// ID returns the dense integer id used for bitset membership: 2*v.ID for
// Open, 2*v.ID+1 for Close.
func (m Marker) ID() int {
	id := 2 * m.Var.ID
	if m.Kind == CloseKind {
		id++
	}
	return id
}

func (m Marker) String() string {
	if m.IsOpen() {
		return fmt.Sprintf("⊢%s", m.Var)
	}
	return fmt.Sprintf("%s⊣", m.Var)
}
