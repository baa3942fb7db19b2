package mapping_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dspanner/idag/mapping"
)

func TestFromMarkers_PairsOpenAndClose(t *testing.T) {
	x := mapping.NewVariable(0, "x")
	y := mapping.NewVariable(1, "y")

	assigns := []mapping.Assignment{
		{Marker: mapping.Open(x), Pos: 1},
		{Marker: mapping.Close(x), Pos: 2},
		{Marker: mapping.Open(y), Pos: 3},
		{Marker: mapping.Close(y), Pos: 4},
	}

	m := mapping.FromMarkers("\na,b,c,d\n", assigns)

	sx, ok := m.Get(x)
	require.True(t, ok)
	assert.Equal(t, mapping.Span{Start: 1, End: 2}, sx)

	sy, ok := m.Get(y)
	require.True(t, ok)
	assert.Equal(t, mapping.Span{Start: 3, End: 4}, sy)
}

func TestFromMarkers_OrderIndependent(t *testing.T) {
	x := mapping.NewVariable(0, "x")
	assigns := []mapping.Assignment{
		{Marker: mapping.Close(x), Pos: 5},
		{Marker: mapping.Open(x), Pos: 2},
	}
	m := mapping.FromMarkers("abcdef", assigns)
	s, ok := m.Get(x)
	require.True(t, ok)
	assert.Equal(t, mapping.Span{Start: 2, End: 5}, s)
}

func TestFromMarkers_DuplicateOpenPanics(t *testing.T) {
	x := mapping.NewVariable(0, "x")
	assigns := []mapping.Assignment{
		{Marker: mapping.Open(x), Pos: 0},
		{Marker: mapping.Open(x), Pos: 1},
		{Marker: mapping.Close(x), Pos: 2},
	}
	assert.Panics(t, func() {
		mapping.FromMarkers("abc", assigns)
	})
}

func TestFromMarkers_BadOrderingPanics(t *testing.T) {
	x := mapping.NewVariable(0, "x")
	assigns := []mapping.Assignment{
		{Marker: mapping.Open(x), Pos: 5},
		{Marker: mapping.Close(x), Pos: 2},
	}
	assert.Panics(t, func() {
		mapping.FromMarkers("abcdef", assigns)
	})
}

func TestMapping_Equal(t *testing.T) {
	x := mapping.NewVariable(0, "x")
	a := mapping.FromMarkers("abcdef", []mapping.Assignment{
		{Marker: mapping.Open(x), Pos: 0},
		{Marker: mapping.Close(x), Pos: 3},
	})
	b := mapping.FromMarkers("xyzxyz", []mapping.Assignment{
		{Marker: mapping.Open(x), Pos: 0},
		{Marker: mapping.Close(x), Pos: 3},
	})
	assert.True(t, a.Equal(b), "spans equal across different backing text")

	c := mapping.FromMarkers("abcdef", []mapping.Assignment{
		{Marker: mapping.Open(x), Pos: 0},
		{Marker: mapping.Close(x), Pos: 2},
	})
	assert.False(t, a.Equal(c))
}

func TestMarker_ID(t *testing.T) {
	v := mapping.NewVariable(3, "v")
	assert.Equal(t, 6, mapping.Open(v).ID())
	assert.Equal(t, 7, mapping.Close(v).ID())
}
