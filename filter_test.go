package ereader

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStructuralMask(t *testing.T) {

	tests := []struct {
		name string
		col  []float64
		keep bool
	}{
		{"uniform structural", []float64{-99999, -99999, -99999}, false},
		{"near structural", []float64{-99998.9999, -99998.9999, -99998.9999}, true},
		{"missing and structural", []float64{missingSentinel, -99999, -99999}, true},
		{"ordinary", []float64{1, 2, 3}, true},
		{"mean near sentinel", []float64{-99998, -100000 + 1e-9, -99999}, true},
		{"averages to sentinel", []float64{-99998, -99999, -100000.5, -99998.5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := reshapeColumnMajor(tt.col, len(tt.col), 1)
			require.NoError(t, err)
			require.Equal(t, []bool{tt.keep}, structuralMask(m))
		})
	}
}

func TestStructuralMaskOrder(t *testing.T) {

	flat := []float64{
		1, 2,
		-99999, -99999,
		3, 4,
		-99999, -99999,
	}
	m, err := reshapeColumnMajor(flat, 2, 4)
	require.NoError(t, err)

	keep := structuralMask(m)
	require.Equal(t, []bool{true, false, true, false}, keep)
	require.Equal(t, []int{0, 2}, maskedIndices(keep))
}

func TestMaskedIndicesEmpty(t *testing.T) {
	require.Empty(t, maskedIndices([]bool{false, false}))
	require.Empty(t, maskedIndices(nil))
}
