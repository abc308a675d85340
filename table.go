package ereader

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
)

// A Table holds the data series of a decoded workfile, one float64
// Series per retained variable, in file order.  A Table owns its data
// and does not share memory with the decoder.
type Table struct {

	// The retained variables.
	Columns []*Series

	// The number of observations (rows).
	NumObs int

	// Data frequency of the workfile range (1 annual, 2 semiannual,
	// 4 quarterly, 12 monthly, other values undated or daily).
	Frequency int

	// First observation of the workfile range, usually a year.
	StartObs int

	// Subperiod of the first observation, 1-based.
	StartSubperiod int64

	// Number of variables in the file, including structural ones.
	GlobalVarCount int

	// Number of variables holding series data according to the
	// variable table.
	RealVarCount int
}

// assembleTable joins the retained names and matrix columns into a
// Table.  Column j of the result takes its name and its values from
// the same pre-filter position.
func assembleTable(names []string, m *Matrix, keep []bool) (*Table, error) {

	if len(names) != m.Cols() || len(keep) != m.Cols() {
		return nil, invariantError("table", "%d names and %d mask entries for %d matrix columns",
			len(names), len(keep), m.Cols())
	}

	ix := maskedIndices(keep)

	keptNames := make([]string, 0, len(ix))
	for _, j := range ix {
		keptNames = append(keptNames, names[j])
	}

	cols := make([]*Series, 0, len(ix))
	for _, j := range ix {
		v, miss := m.Column(j)
		s, err := NewSeries(names[j], v, miss)
		if err != nil {
			return nil, invariantError("table", "column %d: %v", j, err)
		}
		cols = append(cols, s)
	}

	if len(keptNames) != len(cols) {
		return nil, invariantError("table", "%d retained names but %d retained columns", len(keptNames), len(cols))
	}

	return &Table{
		Columns: cols,
		NumObs:  m.Rows(),
	}, nil
}

// ColumnNames returns the names of the retained variables.
func (tab *Table) ColumnNames() []string {
	names := make([]string, len(tab.Columns))
	for j, c := range tab.Columns {
		names[j] = c.Name
	}
	return names
}

// RowCount returns the number of observations.
func (tab *Table) RowCount() int {
	return tab.NumObs
}

// Column returns the first column with the given name.
func (tab *Table) Column(name string) (*Series, bool) {
	for _, c := range tab.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Periods returns a label for each observation, derived from the
// workfile range.  Annual data are labeled by year ("1990"),
// semiannual, quarterly and monthly data by year and subperiod
// ("1990S1", "1990Q1", "1990M01").  Other frequencies are labeled by
// 1-based observation number.
func (tab *Table) Periods() []string {

	labels := make([]string, tab.NumObs)

	sub := tab.StartSubperiod - 1
	if sub < 0 {
		sub = 0
	}

	for i := range labels {
		switch tab.Frequency {
		case 1:
			labels[i] = fmt.Sprintf("%d", tab.StartObs+i)
		case 2, 4, 12:
			f := int64(tab.Frequency)
			p := sub + int64(i)
			year := int64(tab.StartObs) + p/f
			switch tab.Frequency {
			case 2:
				labels[i] = fmt.Sprintf("%dS%d", year, p%f+1)
			case 4:
				labels[i] = fmt.Sprintf("%dQ%d", year, p%f+1)
			default:
				labels[i] = fmt.Sprintf("%dM%02d", year, p%f+1)
			}
		default:
			labels[i] = fmt.Sprintf("%d", i+1)
		}
	}

	return labels
}

// Checksum returns a 64 bit xxhash of the column names, missing masks
// and data bits.  Equal tables have equal checksums.
func (tab *Table) Checksum() uint64 {

	h := xxhash.New()
	var b [8]byte

	binary.LittleEndian.PutUint64(b[:], uint64(tab.NumObs))
	h.Write(b[:])

	for _, c := range tab.Columns {
		h.WriteString(c.Name)
		h.Write([]byte{0})

		v, _ := c.AsFloat64Slice()
		for i, x := range v {
			if c.IsMissing(i) {
				h.Write([]byte{1})
				continue
			}
			h.Write([]byte{0})
			binary.LittleEndian.PutUint64(b[:], math.Float64bits(x))
			h.Write(b[:])
		}
	}

	return h.Sum64()
}
