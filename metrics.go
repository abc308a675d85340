package ereader

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus metrics updated by a Decoder.
type Metrics struct {
	FilesDecoded        prometheus.Counter
	DecodeErrors        *prometheus.CounterVec
	ColumnsDropped      prometheus.Counter
	ObservationsDecoded prometheus.Counter
	DecodeDuration      prometheus.Histogram
}

// NewMetrics creates and registers all metrics with the provided registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	filesDecoded := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ereader_files_decoded_total",
		Help: "Total workfiles decoded successfully",
	})

	decodeErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ereader_decode_errors_total",
		Help: "Total failed decodes by error kind",
	}, []string{"kind"})

	columnsDropped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ereader_columns_dropped_total",
		Help: "Total structural columns dropped from decoded tables",
	})

	observations := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ereader_observations_decoded_total",
		Help: "Total observations (rows times retained columns) decoded",
	})

	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "ereader_decode_duration_seconds",
		Help:    "Time spent decoding a workfile",
		Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
	})

	reg.MustRegister(filesDecoded, decodeErrors, columnsDropped, observations, duration)

	return &Metrics{
		FilesDecoded:        filesDecoded,
		DecodeErrors:        decodeErrors,
		ColumnsDropped:      columnsDropped,
		ObservationsDecoded: observations,
		DecodeDuration:      duration,
	}
}

func (m *Metrics) observe(tab *Table, err error, seconds float64) {
	if m == nil {
		return
	}
	m.DecodeDuration.Observe(seconds)
	if err != nil {
		kind := "other"
		if k, ok := errorKind(err); ok {
			kind = k.String()
		}
		m.DecodeErrors.WithLabelValues(kind).Inc()
		return
	}
	m.FilesDecoded.Inc()
	m.ColumnsDropped.Add(float64(tab.GlobalVarCount - len(tab.Columns)))
	m.ObservationsDecoded.Add(float64(tab.NumObs * len(tab.Columns)))
}
