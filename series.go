package ereader

import (
	"fmt"
	"io"
	"math"
)

// A Series is a one-dimensional sequence of float64 observations, with
// an optional mask for missing values.  Missing observations hold NaN.
type Series struct {

	// A name describing what is in this series.
	Name string

	// The data.
	data []float64

	// Indicators that data values are missing.  If nil, there are
	// no missing values.
	missing []bool
}

// NewSeries returns a new Series value with the given name and data
// contents.  The data slice parameter is not copied.
func NewSeries(name string, data []float64, missing []bool) (*Series, error) {

	if missing != nil && len(missing) != len(data) {
		return nil, fmt.Errorf("missing mask has length %d, data has length %d", len(missing), len(data))
	}

	ser := Series{
		Name:    name,
		data:    data,
		missing: missing,
	}

	return &ser, nil
}

// Write writes the entire Series to the given writer.
func (ser *Series) Write(w io.Writer) error {
	return ser.WriteRange(w, 0, len(ser.data))
}

// WriteRange writes the given subinterval of the Series to the given writer.
func (ser *Series) WriteRange(w io.Writer, first, last int) error {

	if _, err := fmt.Fprintf(w, "Name: %s\n", ser.Name); err != nil {
		return err
	}

	for j := first; j < last; j++ {
		var err error
		if ser.IsMissing(j) {
			_, err = fmt.Fprintf(w, "%d:\n", j)
		} else {
			_, err = fmt.Fprintf(w, "%d:  %f\n", j, ser.data[j])
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// Data returns the data component of the Series.
func (ser *Series) Data() []float64 {
	return ser.data
}

// Missing returns the array of missing value indicators.
func (ser *Series) Missing() []bool {
	return ser.missing
}

// IsMissing reports whether the value at position i is missing.
func (ser *Series) IsMissing(i int) bool {
	return ser.missing != nil && ser.missing[i]
}

// Length returns the number of elements in a Series.
func (ser *Series) Length() int {
	return len(ser.data)
}

// AllClose returns true, 0 if the Series is within tol of the other
// series.  If the Series have different lengths, AllClose returns
// false, -1.  If the Series have the same length but are not equal,
// AllClose returns false, j, where j is the index of the first
// position where the two series differ.
func (ser *Series) AllClose(other *Series, tol float64) (bool, int) {

	if len(ser.data) != len(other.data) {
		return false, -1
	}

	for i, u := range ser.data {
		if ser.IsMissing(i) != other.IsMissing(i) {
			return false, i
		}
		if !ser.IsMissing(i) && math.Abs(u-other.data[i]) > tol {
			return false, i
		}
	}

	return true, 0
}

// AllEqual is equivalent to AllClose with tol=0.
func (ser *Series) AllEqual(other *Series) (bool, int) {
	return ser.AllClose(other, 0.0)
}

// CountMissing returns the number of missing values in the Series.
func (ser *Series) CountMissing() int {

	m := 0
	for i := range ser.data {
		if ser.IsMissing(i) {
			m++
		}
	}

	return m
}

// Mean returns the arithmetic mean of the Series.  Any missing value
// makes the mean NaN.
func (ser *Series) Mean() float64 {

	var s float64
	for i, v := range ser.data {
		if ser.IsMissing(i) {
			return math.NaN()
		}
		s += v
	}
	return s / float64(len(ser.data))
}

// AsFloat64Slice returns the data of the series and the missing value
// indicators.
func (ser *Series) AsFloat64Slice() ([]float64, []bool) {
	return ser.data, ser.missing
}

// SeriesArray is an array of pointers to Series objects.  It can represent
// a dataset consisting of several variables.
type SeriesArray []*Series

// AllClose returns (true, 0, 0) if all values in corresponding columns
// of the two arrays of Series objects are within the given tolerance.
// Otherwise returns (false, j, i), where j is the index of a column and
// i is the index of a row where the two Series differ.  If the two
// SeriesArray objects have different numbers of columns, returns
// (false, -1, -1).  If column j of the two SeriesArray objects have
// different lengths, returns (false, j, -1).
func (ser SeriesArray) AllClose(other []*Series, tol float64) (bool, int, int) {

	if len(ser) != len(other) {
		return false, -1, -1
	}

	for j := 0; j < len(ser); j++ {
		f, i := ser[j].AllClose(other[j], tol)
		if !f {
			return false, j, i
		}
	}

	return true, 0, 0
}

// AllEqual is equivalent to AllClose with tol = 0.
func (ser SeriesArray) AllEqual(other []*Series) (bool, int, int) {
	return ser.AllClose(other, 0.0)
}
