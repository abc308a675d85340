package ereader

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReshapeColumnMajor(t *testing.T) {

	m, err := reshapeColumnMajor([]float64{1, 2, 3, 4, 5, 6}, 3, 2)
	require.NoError(t, err)
	require.Equal(t, 3, m.Rows())
	require.Equal(t, 2, m.Cols())

	c0, _ := m.Column(0)
	c1, _ := m.Column(1)
	require.Equal(t, []float64{1, 2, 3}, c0)
	require.Equal(t, []float64{4, 5, 6}, c1)

	// Row 0 is (1, 4), not (1, 2).
	require.Equal(t, 1.0, m.at(0, 0))
	require.Equal(t, 4.0, m.at(0, 1))
	require.Equal(t, 3.0, m.at(2, 0))
}

func TestReshapeMissing(t *testing.T) {

	flat := []float64{1.5, 2.5, 3.5, missingSentinel, 5.5, 6.5}
	m, err := reshapeColumnMajor(flat, 3, 2)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		for j := 0; j < 2; j++ {
			k := j*3 + i
			if k == 3 {
				require.True(t, m.IsMissing(i, j))
				require.True(t, math.IsNaN(m.at(i, j)))
				continue
			}
			require.False(t, m.IsMissing(i, j))
			require.Equal(t, flat[k], m.at(i, j))
		}
	}
}

func TestReshapeExactSentinel(t *testing.T) {

	// Only the exact sentinel is missing.
	flat := []float64{-100000.0000001, -99999.9999999, -100000}
	m, err := reshapeColumnMajor(flat, 3, 1)
	require.NoError(t, err)

	require.False(t, m.IsMissing(0, 0))
	require.False(t, m.IsMissing(1, 0))
	require.True(t, m.IsMissing(2, 0))
}

func TestReshapeCopies(t *testing.T) {

	flat := []float64{1, 2}
	m, err := reshapeColumnMajor(flat, 2, 1)
	require.NoError(t, err)

	flat[0] = 99
	require.Equal(t, 1.0, m.at(0, 0))
}

func TestReshapeSizeMismatch(t *testing.T) {

	_, err := reshapeColumnMajor([]float64{1, 2, 3}, 2, 2)
	require.ErrorIs(t, err, ErrInvariant)
	require.NotErrorIs(t, err, ErrFormat)
}

func TestReshapeEmpty(t *testing.T) {

	m, err := reshapeColumnMajor(nil, 0, 3)
	require.NoError(t, err)
	require.Equal(t, 0, m.Rows())
	require.Equal(t, 3, m.Cols())
	require.True(t, math.IsNaN(m.ColumnMean(0)))
}

func TestColumnMean(t *testing.T) {

	m, err := reshapeColumnMajor([]float64{1, 2, 3, missingSentinel, 5, 6}, 3, 2)
	require.NoError(t, err)

	require.Equal(t, 2.0, m.ColumnMean(0))
	require.True(t, math.IsNaN(m.ColumnMean(1)))
}
