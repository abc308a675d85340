package ereader

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// compressedSuffixes are the extensions allowed after .wf1.
var compressedSuffixes = []string{"", ".gz", ".zst", ".lz4"}

// hasWorkfileExt reports whether path names a (possibly compressed)
// workfile.
func hasWorkfileExt(path string) bool {
	base := strings.ToLower(filepath.Base(path))
	for _, s := range compressedSuffixes {
		if strings.HasSuffix(base, ".wf1"+s) {
			return true
		}
	}
	return false
}

// decompress returns the workfile image held in raw, undoing gzip,
// zstd or lz4 frame compression if the magic bytes show one of them.
// Uncompressed data is returned as is.
func decompress(raw []byte, limit int64) ([]byte, error) {

	var r io.Reader
	switch {
	case bytes.HasPrefix(raw, gzipMagic):
		gz, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer gz.Close()
		r = gz
	case bytes.HasPrefix(raw, zstdMagic):
		zr, err := zstd.NewReader(bytes.NewReader(raw), zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		defer zr.Close()
		r = zr
	case bytes.HasPrefix(raw, lz4Magic):
		r = lz4.NewReader(bytes.NewReader(raw))
	default:
		return raw, nil
	}

	if limit > 0 {
		r = io.LimitReader(r, limit+1)
	}
	img, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if limit > 0 && int64(len(img)) > limit {
		return nil, fmt.Errorf("decompressed workfile exceeds %d bytes", limit)
	}

	return img, nil
}
