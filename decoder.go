package ereader

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	xencoding "golang.org/x/text/encoding"
)

// A Decoder turns EViews workfiles into Tables.  A Decoder is safe for
// concurrent use; every call works on its own buffers.
type Decoder struct {
	cfg     Config
	enc     xencoding.Encoding
	logger  log.Logger
	metrics *Metrics
	pool    *bufferPool
}

// An Option configures a Decoder.
type Option func(*Decoder)

// WithLogger sets the logger used for warnings and debug output.  The
// default discards everything.
func WithLogger(logger log.Logger) Option {
	return func(d *Decoder) {
		d.logger = logger
	}
}

// WithMetrics makes the Decoder record its activity in m.
func WithMetrics(m *Metrics) Option {
	return func(d *Decoder) {
		d.metrics = m
	}
}

// NewDecoder returns a Decoder using the given configuration.
func NewDecoder(cfg Config, opts ...Option) (*Decoder, error) {

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	enc, err := cfg.nameEncoding()
	if err != nil {
		return nil, err
	}

	d := &Decoder{
		cfg:    cfg,
		enc:    enc,
		logger: log.NewNopLogger(),
		pool:   newBufferPool(),
	}
	for _, opt := range opts {
		opt(d)
	}

	return d, nil
}

// ReadFile decodes the workfile at path using the default
// configuration.
func ReadFile(path string) (*Table, error) {
	d, err := NewDecoder(DefaultConfig())
	if err != nil {
		return nil, err
	}
	return d.DecodeFile(path)
}

// DecodeFile reads and decodes the workfile at path.
func (d *Decoder) DecodeFile(path string) (*Table, error) {

	if d.cfg.CheckExtension && !hasWorkfileExt(path) {
		err := openError(path, fmt.Errorf("file name does not end in .wf1"))
		d.metrics.observe(nil, err, 0)
		return nil, err
	}

	img, err := os.ReadFile(path)
	if err != nil {
		err = openError(path, err)
		d.metrics.observe(nil, err, 0)
		return nil, err
	}

	tab, err := d.DecodeBytes(img)
	if err != nil {
		level.Debug(d.logger).Log("msg", "decode failed", "path", path, "err", err)
		return nil, err
	}
	return tab, nil
}

// Decode reads r to the end and decodes its contents.
func (d *Decoder) Decode(r io.Reader) (*Table, error) {

	img, err := io.ReadAll(r)
	if err != nil {
		err = openError("reader", err)
		d.metrics.observe(nil, err, 0)
		return nil, err
	}

	return d.DecodeBytes(img)
}

// DecodeBytes decodes a workfile held in memory.  The returned Table
// does not retain img.
func (d *Decoder) DecodeBytes(img []byte) (*Table, error) {

	start := time.Now()
	tab, err := d.decode(img)
	d.metrics.observe(tab, err, time.Since(start).Seconds())

	return tab, err
}

func (d *Decoder) decode(raw []byte) (*Table, error) {

	img := raw
	if d.cfg.Decompress {
		var err error
		var limit int64
		if d.cfg.MaxCells > 0 {
			// Data plus generous room for the header and variable table.
			limit = 8*d.cfg.MaxCells + 1<<26
		}
		img, err = decompress(raw, limit)
		if err != nil {
			return nil, formatError("compression", 0, "%v", err)
		}
	}

	res, err := d.decodeHeader(img)
	if err != nil {
		return nil, err
	}
	defer res.buffers.release()

	var nd *xencoding.Decoder
	if d.enc != nil {
		nd = d.enc.NewDecoder()
	}
	names, err := decodeNames(res.buffers.names, res.buffers.lengths, nd)
	if err != nil {
		return nil, err
	}

	m, err := reshapeColumnMajor(res.buffers.data, int(res.obsCount), int(res.globalVarCount))
	if err != nil {
		return nil, err
	}

	keep := structuralMask(m)

	tab, err := assembleTable(names, m, keep)
	if err != nil {
		return nil, err
	}

	tab.Frequency = int(res.header.DataFreq)
	tab.StartObs = int(res.header.StartObs)
	tab.StartSubperiod = res.header.StartSubp
	tab.GlobalVarCount = int(res.globalVarCount)
	tab.RealVarCount = int(res.realVarCount)

	level.Debug(d.logger).Log("msg", "decoded workfile", "variables", tab.GlobalVarCount,
		"series", tab.RealVarCount, "columns", len(tab.Columns), "observations", tab.NumObs)

	return tab, nil
}
