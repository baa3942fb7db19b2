package mapping

import "fmt"

// Variable is a named capture group. Identity is the ID; Name is only for
// display. Two Variables are equal iff their IDs match — callers must not
// compare Variables with == unless they also intend to compare Name.
type Variable struct {
	ID   int
	Name string
}

// NewVariable builds a Variable with the given id and display name.
func NewVariable(id int, name string) Variable {
	return Variable{ID: id, Name: name}
}

// Equal reports whether v and other identify the same capture group.
func (v Variable) Equal(other Variable) bool {
	return v.ID == other.ID
}

// String returns the display name.
func (v Variable) String() string {
	return v.Name
}

// DefaultVariable is the implicit whole-match group ("match") that wraps a
// pattern with no named groups of its own.
func DefaultVariable() Variable {
	return Variable{ID: -1, Name: "match"}
}

func (v Variable) GoString() string {
	return fmt.Sprintf("Variable{ID: %d, Name: %q}", v.ID, v.Name)
}
