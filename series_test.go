package ereader

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSeries(t *testing.T) {

	s, err := NewSeries("x", []float64{1, 2, 3}, nil)
	require.NoError(t, err)
	require.Equal(t, 3, s.Length())
	require.Equal(t, 0, s.CountMissing())
	require.Equal(t, 2.0, s.Mean())

	_, err = NewSeries("x", []float64{1, 2}, []bool{false})
	require.Error(t, err)
}

func TestSeriesMissing(t *testing.T) {

	s, _ := NewSeries("s", []float64{1, math.NaN(), 3}, []bool{false, true, false})
	require.Equal(t, 1, s.CountMissing())
	require.True(t, s.IsMissing(1))
	require.False(t, s.IsMissing(0))
	require.True(t, math.IsNaN(s.Mean()))

	v, miss := s.AsFloat64Slice()
	require.Equal(t, []bool{false, true, false}, miss)
	require.Equal(t, 3.0, v[2])
	require.Equal(t, miss, s.Missing())
	require.Len(t, s.Data(), 3)
}

func TestSeriesAllClose(t *testing.T) {

	a, _ := NewSeries("a", []float64{1, math.NaN(), 3}, []bool{false, true, false})
	b, _ := NewSeries("b", []float64{1, 5, 3.0000001}, []bool{false, true, false})
	c, _ := NewSeries("c", []float64{1, 2, 3}, nil)
	e, _ := NewSeries("e", []float64{1, 2}, nil)

	ok, _ := a.AllClose(b, 1e-6)
	require.True(t, ok)

	ok, ix := a.AllEqual(b)
	require.False(t, ok)
	require.Equal(t, 2, ix)

	ok, ix = a.AllClose(c, 1e-6)
	require.False(t, ok)
	require.Equal(t, 1, ix)

	ok, ix = a.AllClose(e, 1e-6)
	require.False(t, ok)
	require.Equal(t, -1, ix)

	ok, j, i := SeriesArray{a, c}.AllClose([]*Series{b, c}, 1e-6)
	require.True(t, ok)
	require.Equal(t, 0, j)
	require.Equal(t, 0, i)

	ok, _, _ = SeriesArray{a}.AllEqual([]*Series{a, c})
	require.False(t, ok)

	ok, j, i = SeriesArray{a, c}.AllEqual([]*Series{a, e})
	require.False(t, ok)
	require.Equal(t, 1, j)
	require.Equal(t, -1, i)
}

func TestSeriesWrite(t *testing.T) {

	s, _ := NewSeries("GDP", []float64{1, 2}, []bool{true, false})

	var buf bytes.Buffer
	require.NoError(t, s.Write(&buf))
	require.Equal(t, "Name: GDP\n0:\n1:  2.000000\n", buf.String())

	buf.Reset()
	require.NoError(t, s.WriteRange(&buf, 1, 2))
	require.Equal(t, "Name: GDP\n1:  2.000000\n", buf.String())
}
