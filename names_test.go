package ereader

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

// pack writes names back to back, the way the header decoder fills the
// name buffer.  The buffer is over-allocated to maxNameBytes per name.
func pack(names []string) ([]byte, []int32) {
	buf := make([]byte, 0, maxNameBytes*len(names)+64)
	lengths := make([]int32, len(names))
	for i, n := range names {
		buf = append(buf, n...)
		lengths[i] = int32(len(n))
	}
	return buf, lengths
}

func TestDecodeNamesRoundTrip(t *testing.T) {

	long := strings.Repeat("L", 40)

	tests := []struct {
		name  string
		names []string
	}{
		{"empty table", []string{}},
		{"single", []string{"GDP"}},
		{"empty name", []string{"A", "", "B"}},
		{"length one", []string{"A", "B", "C"}},
		{"longer than slot", []string{"X", long, "Y", "ZZ"}},
		{"multibyte", []string{"ΔGDP", "taux_d'intérêt", "高雄"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, lengths := pack(tt.names)
			got, err := decodeNames(buf, lengths, nil)
			require.NoError(t, err)
			require.Equal(t, tt.names, got)
		})
	}
}

func TestDecodeNamesNoFixedStride(t *testing.T) {

	// With a 32 byte stride the second name would be read from offset
	// 32 and come out empty.
	buf, lengths := pack([]string{"A", "BB", "CCC"})
	require.Equal(t, 6, len(buf))
	require.GreaterOrEqual(t, cap(buf), 3*maxNameBytes)

	got, err := decodeNames(buf, lengths, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"A", "BB", "CCC"}, got)
}

func TestDecodeNamesCopies(t *testing.T) {

	buf, lengths := pack([]string{"AB", "CD"})
	got, err := decodeNames(buf, lengths, nil)
	require.NoError(t, err)

	buf[0] = 'Z'
	buf[3] = 'Z'
	require.Equal(t, []string{"AB", "CD"}, got)
}

func TestDecodeNamesOverrun(t *testing.T) {

	buf, _ := pack([]string{"A", "BB"})
	_, err := decodeNames(buf, []int32{1, 5}, nil)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrBounds))
	require.True(t, errors.Is(err, ErrFormat))

	kind, ok := errorKind(err)
	require.True(t, ok)
	require.Equal(t, BoundsError, kind)
}

func TestDecodeNamesNegativeLength(t *testing.T) {

	_, err := decodeNames([]byte("AB"), []int32{1, -1}, nil)
	require.ErrorIs(t, err, ErrFormat)
	require.False(t, errors.Is(err, ErrBounds))
}

func TestDecodeNamesInvalidUTF8(t *testing.T) {

	buf := []byte{'P', 'R', 'I', 'X', 0xe9}
	_, err := decodeNames(buf, []int32{5}, nil)
	require.ErrorIs(t, err, ErrFormat)
	require.Contains(t, err.Error(), "not valid UTF-8")
}

func TestDecodeNamesTranscode(t *testing.T) {

	buf := []byte{'P', 'R', 'I', 'X', 0xe9, 'Q'}
	got, err := decodeNames(buf, []int32{5, 1}, charmap.Windows1252.NewDecoder())
	require.NoError(t, err)
	require.Equal(t, []string{"PRIXé", "Q"}, got)
}
