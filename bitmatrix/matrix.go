package bitmatrix

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

const wordBits = 64

// Matrix is a dense h×w boolean matrix, row-major, packed into 64-bit
// words. Matrices small enough to fit entirely in one machine word
// (h*w <= 64) are packed tightly into inlineData instead of allocating
// data.
type Matrix struct {
	h, w   int
	wWords int // words per row, = ceil(w/64)

	inline     bool
	inlineData uint64

	data []uint64 // len == h*wWords when !inline
}

// New creates an h×w Matrix with all bits false. Returns
// ErrInvalidDimensions if h<=0 or w<=0.
func New(h, w int) (*Matrix, error) {
	if h <= 0 || w <= 0 {
		return nil, ErrInvalidDimensions
	}

	m := &Matrix{h: h, w: w, wWords: (w + wordBits - 1) / wordBits}
	if h*w <= wordBits {
		m.inline = true
		return m, nil
	}
	m.data = make([]uint64, h*m.wWords)
	return m, nil
}

// Height returns the number of rows.
func (m *Matrix) Height() int { return m.h }

// Width returns the number of columns.
func (m *Matrix) Width() int { return m.w }

func (m *Matrix) checkBounds(method string, row, col int) {
	if row < 0 || row >= m.h || col < 0 || col >= m.w {
		panic(fmt.Sprintf("bitmatrix.%s(%d,%d): index out of range for %dx%d matrix", method, row, col, m.h, m.w))
	}
}

// Insert sets bit (row, col) to true.
func (m *Matrix) Insert(row, col int) {
	m.checkBounds("Insert", row, col)
	if m.inline {
		m.inlineData |= 1 << uint(row*m.w+col)
		return
	}
	m.data[row*m.wWords+col/wordBits] |= 1 << uint(col%wordBits)
}

// Index reads bit (row, col).
func (m *Matrix) Index(row, col int) bool {
	m.checkBounds("Index", row, col)
	if m.inline {
		return (m.inlineData>>uint(row*m.w+col))&1 != 0
	}
	return m.data[row*m.wWords+col/wordBits]&(1<<uint(col%wordBits)) != 0
}

// word returns the k-th 64-bit word (k in [0, wWords)) of row's bit
// vector, regardless of storage mode. Used by Product.
func (m *Matrix) word(row, k int) uint64 {
	if m.inline {
		if k != 0 {
			return 0
		}
		shifted := m.inlineData >> uint(row*m.w)
		if m.w >= wordBits {
			return shifted
		}
		return shifted & ((1 << uint(m.w)) - 1)
	}
	return m.data[row*m.wWords+k]
}

// Transpose returns a new w×h matrix with result[j][i] = m[i][j].
func (m *Matrix) Transpose() *Matrix {
	result, err := New(m.w, m.h)
	if err != nil {
		panic(err) // m.w, m.h already validated positive by construction
	}
	for i := 0; i < m.h; i++ {
		for j := 0; j < m.w; j++ {
			if m.Index(i, j) {
				result.Insert(j, i)
			}
		}
	}
	return result
}

// Product returns an h×other.h matrix where result[i][j] = 1 iff there is
// a k with m[i][k] && other[j][k] — i.e. other is treated as already
// transposed (its rows are compared against m's rows element-wise, not
// multiplied row-by-column). m.Width() must equal other.Width(); a shape
// mismatch is a programmer error and panics.
func (m *Matrix) Product(other *Matrix) *Matrix {
	if m.w != other.w {
		panic(fmt.Errorf("bitmatrix.Product: %w: %dx%d vs %dx%d", ErrShapeMismatch, m.h, m.w, other.h, other.w))
	}

	result, err := New(m.h, other.h)
	if err != nil {
		panic(err)
	}

	for i := 0; i < m.h; i++ {
		for j := 0; j < other.h; j++ {
			for k := 0; k < m.wWords; k++ {
				if m.word(i, k)&other.word(j, k) != 0 {
					result.Insert(i, j)
					break
				}
			}
		}
	}

	return result
}

// ColMul computes the bitset of rows i such that some column k has
// gamma[k] && m[i][k] true — i.e. it treats gamma (width m.Width()) as a
// column vector and right-multiplies m by it, returning a fresh bitset of
// length m.Height(). Callers replacing a working set reassign their
// binding: gamma = m.ColMul(gamma).
func (m *Matrix) ColMul(gamma *bitset.BitSet) *bitset.BitSet {
	if int(gamma.Len()) != m.w {
		panic(fmt.Errorf("bitmatrix.ColMul: %w: gamma width %d vs matrix width %d", ErrShapeMismatch, gamma.Len(), m.w))
	}

	result := bitset.New(uint(m.h))
	for i := 0; i < m.h; i++ {
		for c, ok := gamma.NextSet(0); ok; c, ok = gamma.NextSet(c + 1) {
			if m.Index(i, int(c)) {
				result.Set(uint(i))
				break
			}
		}
	}
	return result
}

// MemoryUsage returns the heap bytes backing this matrix's storage. Inline
// matrices (h*w <= 64 bits) report 0: their payload lives in the struct
// header, not on the heap.
func (m *Matrix) MemoryUsage() int {
	if m.inline {
		return 0
	}
	return len(m.data) * 8
}

// Density returns the fraction of set bits, for statistics reporting.
func (m *Matrix) Density() float64 {
	total := m.h * m.w
	if total == 0 {
		return 0
	}
	count := 0
	for i := 0; i < m.h; i++ {
		for j := 0; j < m.w; j++ {
			if m.Index(i, j) {
				count++
			}
		}
	}
	return float64(count) / float64(total)
}

func (m *Matrix) String() string {
	out := ""
	for i := 0; i < m.h; i++ {
		for j := 0; j < m.w; j++ {
			if m.Index(i, j) {
				out += "x"
			} else {
				out += "."
			}
		}
		out += "\n"
	}
	return out
}
