package ereader

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/require"

	"github.com/scortino/ereader/internal/wf1test"
)

func gzipBytes(t *testing.T, b []byte) []byte {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write(b)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func zstdBytes(t *testing.T, b []byte) []byte {
	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	defer enc.Close()
	return enc.EncodeAll(b, nil)
}

func lz4Bytes(t *testing.T, b []byte) []byte {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	_, err := w.Write(b)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestDecodeCompressed(t *testing.T) {

	img := wf1test.Random(21, 5, 40, true).Bytes()

	d := newTestDecoder(t, DefaultConfig())
	want, err := d.DecodeBytes(img)
	require.NoError(t, err)

	tests := []struct {
		name string
		data []byte
	}{
		{"gzip", gzipBytes(t, img)},
		{"zstd", zstdBytes(t, img)},
		{"lz4", lz4Bytes(t, img)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tab, err := d.DecodeBytes(tt.data)
			require.NoError(t, err)
			require.Equal(t, want.ColumnNames(), tab.ColumnNames())
			require.Equal(t, want.Checksum(), tab.Checksum())
		})
	}
}

func TestDecodeCompressedDisabled(t *testing.T) {

	cfg := DefaultConfig()
	cfg.Decompress = false

	img := wf1test.New(1).Series("A", 1).Bytes()
	_, err := newTestDecoder(t, cfg).DecodeBytes(gzipBytes(t, img))
	require.ErrorIs(t, err, ErrFormat)
}

func TestDecodeCorruptCompressed(t *testing.T) {

	data := gzipBytes(t, wf1test.New(1).Series("A", 1).Bytes())
	data = data[:len(data)/2]

	_, err := newTestDecoder(t, DefaultConfig()).DecodeBytes(data)
	require.ErrorIs(t, err, ErrFormat)

	var de *DecodeError
	require.ErrorAs(t, err, &de)
	require.Equal(t, "compression", de.Field)
}

func TestDecompressLimit(t *testing.T) {

	img := wf1test.Random(2, 4, 100, false).Bytes()

	_, err := decompress(gzipBytes(t, img), int64(len(img)-1))
	require.Error(t, err)

	out, err := decompress(gzipBytes(t, img), int64(len(img)))
	require.NoError(t, err)
	require.Equal(t, img, out)
}

func TestDecodeCompressedFile(t *testing.T) {

	dir := t.TempDir()
	img := wf1test.New(2).Series("A", 1, 2).Bytes()

	for name, data := range map[string][]byte{
		"a.wf1.gz":  gzipBytes(t, img),
		"a.wf1.zst": zstdBytes(t, img),
		"a.wf1.lz4": lz4Bytes(t, img),
	} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, data, 0644))
		tab, err := ReadFile(path)
		require.NoError(t, err, name)
		require.Equal(t, []string{"A"}, tab.ColumnNames())
	}
}

func TestHasWorkfileExt(t *testing.T) {

	for _, p := range []string{"a.wf1", "dir/B.WF1", "a.wf1.gz", "a.wf1.zst", "a.wf1.lz4"} {
		require.True(t, hasWorkfileExt(p), p)
	}
	for _, p := range []string{"a.csv", "a.gz", "a.wf1.bz2", "wf1", "a.wf2"} {
		require.False(t, hasWorkfileExt(p), p)
	}
}
