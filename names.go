package ereader

import (
	"unicode/utf8"

	xencoding "golang.org/x/text/encoding"
)

// decodeNames splits the packed name buffer into one string per
// variable.  Name boundaries come only from the lengths array: the
// buffer holds the names back to back with no padding, whatever its
// capacity.  If dec is non-nil each name is transcoded with it before
// being checked for valid UTF-8.
func decodeNames(buf []byte, lengths []int32, dec *xencoding.Decoder) ([]string, error) {

	names := make([]string, len(lengths))
	off := 0

	for i, n := range lengths {
		if n < 0 {
			return nil, formatError("name lengths", -1, "variable %d has negative name length %d", i, n)
		}
		end := off + int(n)
		if end > len(buf) {
			return nil, boundsError("name table", int64(off), "name %d of length %d overruns buffer of %d bytes",
				i, n, len(buf))
		}

		b := buf[off:end]
		if dec != nil {
			var err error
			b, err = dec.Bytes(b)
			if err != nil {
				return nil, formatError("name table", int64(off), "name %d: %v", i, err)
			}
		}
		if !utf8.Valid(b) {
			return nil, formatError("name table", int64(off), "name %d is not valid UTF-8", i)
		}

		// string() copies, so names do not alias buf.
		names[i] = string(b)
		off = end
	}

	return names, nil
}
