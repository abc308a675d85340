package ereader

// structuralMask returns a keep-mask over the columns of m.  A column
// is structural, and masked out, when its mean is exactly the
// structural sentinel.
//
// Columns holding a mix of missing values and the sentinel have a NaN
// mean and are kept.
func structuralMask(m *Matrix) []bool {

	keep := make([]bool, m.Cols())
	for j := range keep {
		keep[j] = m.ColumnMean(j) != structuralSentinel
	}

	return keep
}

// maskedIndices returns the positions of the true entries of keep, in order.
func maskedIndices(keep []bool) []int {
	var ix []int
	for j, k := range keep {
		if k {
			ix = append(ix, j)
		}
	}
	return ix
}
