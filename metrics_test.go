package ereader

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/scortino/ereader/internal/wf1test"
)

func TestMetrics(t *testing.T) {

	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	d := newTestDecoder(t, DefaultConfig(), WithMetrics(m))

	img := wf1test.New(4).
		Series("A", 1, 2, 3, 4).
		Series("RESID", 0, 0, 0, 0).
		Series("B", 5, 6, 7, 8).
		Bytes()

	_, err := d.DecodeBytes(img)
	require.NoError(t, err)
	_, err = d.DecodeBytes([]byte("junk"))
	require.Error(t, err)
	_, err = d.DecodeFile("/does/not/exist.wf1")
	require.Error(t, err)
	_, err = d.DecodeBytes(wf1test.New(2).Add(wf1test.Var{Name: "A", DataPos: 1 << 20}).Bytes())
	require.Error(t, err)

	require.Equal(t, 1.0, testutil.ToFloat64(m.FilesDecoded))
	require.Equal(t, 1.0, testutil.ToFloat64(m.ColumnsDropped))
	require.Equal(t, 8.0, testutil.ToFloat64(m.ObservationsDecoded))
	require.Equal(t, 1.0, testutil.ToFloat64(m.DecodeErrors.WithLabelValues("format")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.DecodeErrors.WithLabelValues("open")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.DecodeErrors.WithLabelValues("bounds")))
	require.Equal(t, 1, testutil.CollectAndCount(m.DecodeDuration, "ereader_decode_duration_seconds"))
}

func TestMetricsNil(t *testing.T) {

	var m *Metrics
	require.NotPanics(t, func() { m.observe(nil, ErrFormat, 0) })
}
