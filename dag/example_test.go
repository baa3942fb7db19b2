package dag_test

import (
	"fmt"

	"github.com/dspanner/idag/automaton"
	"github.com/dspanner/idag/dag"
	"github.com/dspanner/idag/mapping"
)

// ExampleCompile indexes a two-capture automaton — the hand-assembled
// equivalent of "(?P<x>a)(?P<y>b)" — over the text "ab" and enumerates
// every match.
func ExampleCompile() {
	x := mapping.NewVariable(0, "x")
	y := mapping.NewVariable(1, "y")

	// 0 ⊢x 1 ─a→ 2 x⊣ 3 ⊢y 4 ─b→ 5 y⊣ 6
	b := automaton.NewBuilder(7, 2)
	b.SetInitial(0)
	b.SetFinal(6)
	b.AddAssign(0, mapping.Open(x), 1)
	b.AddTransition(1, automaton.Char('a'), 2)
	b.AddAssign(2, mapping.Close(x), 3)
	b.AddAssign(3, mapping.Open(y), 4)
	b.AddTransition(4, automaton.Char('b'), 5)
	b.AddAssign(5, mapping.Close(y), 6)
	nfa, err := b.Build()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	d, err := dag.Compile(nfa, "ab")
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	for it := d.Iter(); ; {
		m, ok := it.Next()
		if !ok {
			break
		}
		fmt.Println(m)
	}

	// Output:
	// x: a y: b
}
