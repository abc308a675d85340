package ereader

import (
	"io"
)

// WF1Reader reads an EViews workfile in chunks of consecutive
// observations.  It satisfies the Statfilereader interface.
//
// The workfile is decoded in full when the reader is created, wf1 data
// is stored variable by variable so rows cannot be streamed.
type WF1Reader struct {

	// The decoded workfile.
	Table *Table

	// The next observation to return.
	pos int
}

// NewWF1Reader decodes the workfile read from r with the default
// configuration and returns a reader positioned at the first
// observation.
func NewWF1Reader(r io.Reader) (*WF1Reader, error) {

	d, err := NewDecoder(DefaultConfig())
	if err != nil {
		return nil, err
	}

	return d.NewReader(r)
}

// NewReader decodes the workfile read from r and returns a reader
// positioned at the first observation.
func (d *Decoder) NewReader(r io.Reader) (*WF1Reader, error) {

	tab, err := d.Decode(r)
	if err != nil {
		return nil, err
	}

	return &WF1Reader{Table: tab}, nil
}

// ColumnNames returns the names of the retained variables.
func (rdr *WF1Reader) ColumnNames() []string {
	return rdr.Table.ColumnNames()
}

// RowCount returns the number of observations in the workfile.
func (rdr *WF1Reader) RowCount() int {
	return rdr.Table.NumObs
}

// Read returns up to rows observations of every retained variable.
// If rows is negative, the remainder of the file is read.  Returns
// (nil, io.EOF) when no observations remain.
//
// The results are backed by memory independent of the reader and of
// earlier calls.
func (rdr *WF1Reader) Read(rows int) ([]*Series, error) {

	n := rdr.Table.NumObs - rdr.pos
	if n <= 0 {
		return nil, io.EOF
	}
	if rows >= 0 && rows < n {
		n = rows
	}

	first, last := rdr.pos, rdr.pos+n

	rslt := make([]*Series, len(rdr.Table.Columns))
	for j, c := range rdr.Table.Columns {
		v, miss := c.AsFloat64Slice()

		vec := make([]float64, n)
		copy(vec, v[first:last])

		var m []bool
		if miss != nil {
			m = make([]bool, n)
			copy(m, miss[first:last])
		}

		s, err := NewSeries(c.Name, vec, m)
		if err != nil {
			return nil, err
		}
		rslt[j] = s
	}

	rdr.pos = last

	return rslt, nil
}
