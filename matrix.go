package ereader

import "math"

// Matrix is an observation by variable matrix of float64 values,
// stored column-major.  Missing values are NaN in the data and true
// in the missing mask.
type Matrix struct {
	nobs    int
	nvar    int
	data    []float64
	missing []bool
}

// reshapeColumnMajor copies a flat column-major buffer into a new
// nobs by nvar Matrix, and replaces every value exactly equal to the
// missing sentinel by a missing marker.  The element order of flat is
// kept, so column j is flat[j*nobs:(j+1)*nobs].
func reshapeColumnMajor(flat []float64, nobs, nvar int) (*Matrix, error) {

	if nobs < 0 || nvar < 0 || len(flat) != nobs*nvar {
		return nil, invariantError("data buffer", "%d values cannot form a %d by %d matrix", len(flat), nobs, nvar)
	}

	m := &Matrix{
		nobs:    nobs,
		nvar:    nvar,
		data:    make([]float64, len(flat)),
		missing: make([]bool, len(flat)),
	}
	copy(m.data, flat)

	for k, x := range m.data {
		if x == missingSentinel {
			m.data[k] = math.NaN()
			m.missing[k] = true
		}
	}

	return m, nil
}

// Rows returns the number of observations.
func (m *Matrix) Rows() int {
	return m.nobs
}

// Cols returns the number of variables.
func (m *Matrix) Cols() int {
	return m.nvar
}

// at returns the value in row i and column j.  Missing values are NaN.
func (m *Matrix) at(i, j int) float64 {
	return m.data[j*m.nobs+i]
}

// IsMissing reports whether the value in row i and column j is missing.
func (m *Matrix) IsMissing(i, j int) bool {
	return m.missing[j*m.nobs+i]
}

// Column returns the values and missing mask of column j.  The slices
// share memory with the matrix.
func (m *Matrix) Column(j int) ([]float64, []bool) {
	return m.data[j*m.nobs : (j+1)*m.nobs], m.missing[j*m.nobs : (j+1)*m.nobs]
}

// ColumnMean returns the arithmetic mean of column j.  Missing values
// propagate, so a column with any missing value has a NaN mean, as
// does a column with no observations.
func (m *Matrix) ColumnMean(j int) float64 {
	col, _ := m.Column(j)
	var s float64
	for _, x := range col {
		s += x
	}
	return s / float64(len(col))
}
