package bitmatrix_test

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/dspanner/idag/bitmatrix"
)

// ExampleMatrix_Product composes two reachability relations. Both operands
// share their column space, and the right operand is treated as already
// transposed: result[i][j] is set iff some k has a[i][k] and b[j][k].
func ExampleMatrix_Product() {
	a, _ := bitmatrix.New(2, 3)
	a.Insert(0, 1)
	a.Insert(1, 2)

	b, _ := bitmatrix.New(2, 3)
	b.Insert(0, 1)
	b.Insert(1, 0)

	p := a.Product(b)
	fmt.Print(p)

	// Output:
	// x.
	// ..
}

// ExampleMatrix_ColMul filters the rows of a matrix by a set of columns:
// the result holds every row with at least one set bit among them.
func ExampleMatrix_ColMul() {
	m, _ := bitmatrix.New(3, 2)
	m.Insert(0, 0)
	m.Insert(2, 1)

	gamma := bitset.New(2)
	gamma.Set(1)

	rows := m.ColMul(gamma)
	fmt.Println(rows.Test(0), rows.Test(1), rows.Test(2))

	// Output:
	// false false true
}
