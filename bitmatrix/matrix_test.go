package bitmatrix_test

import (
	"testing"

	"github.com/bits-and-blooms/bitset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dspanner/idag/bitmatrix"
)

func TestNew_InvalidDimensions(t *testing.T) {
	_, err := bitmatrix.New(0, 1)
	assert.ErrorIs(t, err, bitmatrix.ErrInvalidDimensions)

	_, err = bitmatrix.New(1, 0)
	assert.ErrorIs(t, err, bitmatrix.ErrInvalidDimensions)
}

func TestInsertIndex_Inline(t *testing.T) {
	m, err := bitmatrix.New(3, 3)
	require.NoError(t, err)

	m.Insert(0, 2)
	m.Insert(2, 0)

	assert.True(t, m.Index(0, 2))
	assert.True(t, m.Index(2, 0))
	assert.False(t, m.Index(1, 1))
	assert.Equal(t, 0, m.MemoryUsage(), "small matrices pack inline, no heap storage")
}

func TestInsertIndex_Heap(t *testing.T) {
	m, err := bitmatrix.New(20, 20)
	require.NoError(t, err)

	m.Insert(19, 19)
	m.Insert(0, 0)

	assert.True(t, m.Index(19, 19))
	assert.True(t, m.Index(0, 0))
	assert.False(t, m.Index(5, 5))
	assert.Greater(t, m.MemoryUsage(), 0)
}

func TestTranspose(t *testing.T) {
	m, err := bitmatrix.New(2, 3)
	require.NoError(t, err)
	m.Insert(0, 1)
	m.Insert(1, 2)

	tr := m.Transpose()
	require.Equal(t, 3, tr.Height())
	require.Equal(t, 2, tr.Width())
	assert.True(t, tr.Index(1, 0))
	assert.True(t, tr.Index(2, 1))
	assert.False(t, tr.Index(0, 0))
}

func TestProduct(t *testing.T) {
	// self: 2x3, other (pre-transposed): 2x3 meaning other has 2 "rows"
	// each representing a column vector of width 3.
	self, err := bitmatrix.New(2, 3)
	require.NoError(t, err)
	self.Insert(0, 0)
	self.Insert(1, 2)

	other, err := bitmatrix.New(2, 3)
	require.NoError(t, err)
	other.Insert(0, 0) // row0 shares col 0 with self row0
	other.Insert(1, 1) // row1 shares nothing with self row1 (col2)

	result := self.Product(other)
	assert.Equal(t, 2, result.Height())
	assert.Equal(t, 2, result.Width())
	assert.True(t, result.Index(0, 0))
	assert.False(t, result.Index(0, 1))
	assert.False(t, result.Index(1, 0))
	assert.False(t, result.Index(1, 1))
}

func TestProduct_ShapeMismatchPanics(t *testing.T) {
	a, _ := bitmatrix.New(2, 3)
	b, _ := bitmatrix.New(2, 4)
	assert.Panics(t, func() {
		a.Product(b)
	})
}

func TestColMul(t *testing.T) {
	m, err := bitmatrix.New(3, 4)
	require.NoError(t, err)
	m.Insert(0, 1)
	m.Insert(1, 3)
	m.Insert(2, 0)

	gamma := bitset.New(4)
	gamma.Set(1)

	result := m.ColMul(gamma)
	assert.True(t, result.Test(0))
	assert.False(t, result.Test(1))
	assert.False(t, result.Test(2))
}

func TestColMul_ShapeMismatchPanics(t *testing.T) {
	m, _ := bitmatrix.New(3, 4)
	gamma := bitset.New(5)
	assert.Panics(t, func() {
		m.ColMul(gamma)
	})
}

func TestDensity(t *testing.T) {
	m, err := bitmatrix.New(2, 2)
	require.NoError(t, err)
	m.Insert(0, 0)
	assert.InDelta(t, 0.25, m.Density(), 1e-9)
}
