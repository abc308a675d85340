package ereader

// Decode the header and variable table of an EViews workfile.
//
// There is no official documentation of the wf1 format.  The layout
// below follows earlier reverse-engineering efforts; all integers and
// floats are little endian and the structures are packed.

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"github.com/go-kit/log/level"
)

const (
	wf1Magic = "New MicroTSP Workfile"

	// Size of fileHeader on disk.
	headerLength = 146

	// The variable table starts this many bytes past HeaderSize.
	varTableOffset = 26

	// Size of variableRecord on disk.
	varRecordLength = 70

	// Size of dataBlock on disk.
	dataBlockLength = 22

	// Object code of a numeric series.
	seriesObjectCode = 44

	// EViews writes NA as this value.
	eviewsNA = 1e-37

	// Marks a missing observation in the raw data buffer.
	missingSentinel = -100000

	// Fills every cell of a structural variable in the raw data buffer.
	structuralSentinel = -99999

	numObsOffset        = 140
	numVarPlusOneOffset = 114
	headerSizeOffset    = 80
	dataPosOffset       = 14
)

// fileHeader is the fixed-size header at the start of a workfile.
type fileHeader struct {
	_ [80]byte

	// Size of the header
	HeaderSize int64

	_ [26]byte

	// Number of variables + 1
	NumVarPlusOne int32

	// Date of last modification or zero
	LastMod int32

	_ [2]byte

	// Data frequency (e.g. 1 yearly, 4 quarterly)
	DataFreq int16

	_ [2]byte

	// Starting observation (usually a year)
	StartObs int32

	// Starting subperiod
	StartSubp int64

	// Total number of observations
	NumObs int32

	_ [2]byte
}

// variableRecord describes one variable in the variable table.
type variableRecord struct {
	_ [6]byte

	// Size of data record
	RecSize int32

	// Size of data block
	BlockSize int32

	// Stream position of the dataBlock
	DataPos int64

	// NUL padded name
	VarName [32]byte

	// Position of history information, or zero
	PtrToHist int64

	// Object type, seriesObjectCode for numeric series
	ObjNat int16

	_ [6]byte
}

// dataBlock precedes the observations of a series.
type dataBlock struct {
	NumObs   int32
	StartObs int32
	_        [8]byte
	EndObs   int32
	_        [2]byte
}

// decodeResult is the output of a successful header decode.  The
// failure case is represented by a non-nil error and a nil result,
// in which case no buffers exist.
type decodeResult struct {
	globalVarCount int32
	realVarCount   int32
	obsCount       int32
	header         fileHeader
	buffers        *rawBuffers
}

// Returns everything before the first null byte.
func partition(b []byte) []byte {
	for i, v := range b {
		if v == 0 {
			return b[0:i]
		}
	}
	return b
}

// isStructural reports whether a variable carries bookkeeping data
// rather than a series of observations.
func isStructural(objNat int16, name []byte) bool {
	if objNat != seriesObjectCode {
		return true
	}
	s := string(name)
	return s == "RESID" || strings.HasPrefix(s, "SERIES")
}

func readHeader(img []byte) (fileHeader, error) {

	var hdr fileHeader

	if len(img) < len(wf1Magic) || string(img[0:len(wf1Magic)]) != wf1Magic {
		return hdr, formatError("magic", 0, "not an EViews workfile")
	}
	if len(img) < headerLength {
		return hdr, formatError("header", 0, "file has %d bytes, header needs %d", len(img), headerLength)
	}

	if err := binary.Read(bytes.NewReader(img[0:headerLength]), binary.LittleEndian, &hdr); err != nil {
		return hdr, formatError("header", 0, "%v", err)
	}

	if hdr.NumVarPlusOne < 1 {
		return hdr, formatError("NumVarPlusOne", numVarPlusOneOffset, "invalid variable count %d", hdr.NumVarPlusOne-1)
	}
	if hdr.NumObs < 0 {
		return hdr, formatError("NumObs", numObsOffset, "invalid observation count %d", hdr.NumObs)
	}
	if hdr.HeaderSize < 0 || hdr.HeaderSize > int64(len(img))-varTableOffset {
		return hdr, formatError("HeaderSize", headerSizeOffset, "header size %d outside file of %d bytes", hdr.HeaderSize, len(img))
	}

	return hdr, nil
}

func readVariables(img []byte, hdr fileHeader) ([]variableRecord, error) {

	nvar := int64(hdr.NumVarPlusOne - 1)
	start := hdr.HeaderSize + varTableOffset
	if start+nvar*varRecordLength > int64(len(img)) {
		return nil, formatError("variable table", start, "%d records need %d bytes, file has %d",
			nvar, nvar*varRecordLength, int64(len(img))-start)
	}

	recs := make([]variableRecord, nvar)
	if nvar == 0 {
		return recs, nil
	}
	r := bytes.NewReader(img[start : start+nvar*varRecordLength])
	if err := binary.Read(r, binary.LittleEndian, recs); err != nil {
		return nil, formatError("variable table", start, "%v", err)
	}

	return recs, nil
}

// decodeHeader parses the workfile image and fills a fresh set of raw
// buffers.  Buffers are only handed out once the header and the
// variable table are known to be consistent; if a later step fails
// they are released before returning.
func (d *Decoder) decodeHeader(img []byte) (*decodeResult, error) {

	hdr, err := readHeader(img)
	if err != nil {
		return nil, err
	}

	recs, err := readVariables(img, hdr)
	if err != nil {
		return nil, err
	}

	nvar := len(recs)
	nobs := int(hdr.NumObs)
	if cells := int64(nvar) * int64(nobs); d.cfg.MaxCells > 0 && cells > d.cfg.MaxCells {
		return nil, formatError("NumObs", numObsOffset, "%d variables by %d observations exceeds the limit of %d cells",
			nvar, nobs, d.cfg.MaxCells)
	}

	res := &decodeResult{
		globalVarCount: int32(nvar),
		realVarCount:   int32(nvar),
		obsCount:       hdr.NumObs,
		header:         hdr,
		buffers:        d.pool.get(nvar, nobs),
	}

	if err := d.fillBuffers(img, hdr, recs, res); err != nil {
		res.buffers.release()
		return nil, err
	}

	return res, nil
}

func (d *Decoder) fillBuffers(img []byte, hdr fileHeader, recs []variableRecord, res *decodeResult) error {

	buf := res.buffers
	nobs := int(hdr.NumObs)
	warned := false

	for i := range recs {
		vr := &recs[i]
		name := partition(vr.VarName[:])
		buf.lengths[i] = int32(len(name))
		buf.names = append(buf.names, name...)

		col := buf.data[i*nobs : (i+1)*nobs]

		if isStructural(vr.ObjNat, name) {
			res.realVarCount--
			for j := range col {
				col[j] = structuralSentinel
			}
			level.Debug(d.logger).Log("msg", "skipping structural variable", "name", string(name), "objnat", vr.ObjNat)
			continue
		}

		recOffset := hdr.HeaderSize + varTableOffset + int64(i)*varRecordLength
		if vr.DataPos < 0 || vr.DataPos > int64(len(img))-dataBlockLength {
			return boundsError("DataPos", recOffset+dataPosOffset, "variable %q data block at %d outside file of %d bytes",
				name, vr.DataPos, len(img))
		}

		var db dataBlock
		if err := binary.Read(bytes.NewReader(img[vr.DataPos:vr.DataPos+dataBlockLength]), binary.LittleEndian, &db); err != nil {
			return formatError("data block", vr.DataPos, "%v", err)
		}

		if db.NumObs != hdr.NumObs {
			if d.cfg.StrictObsCount {
				return formatError("data block NumObs", vr.DataPos, "variable %q has %d observations, header declares %d",
					name, db.NumObs, hdr.NumObs)
			}
			if !warned {
				level.Warn(d.logger).Log("msg", "inconsistent number of observations, the resulting table may contain errors",
					"variable", string(name), "block_obs", db.NumObs, "header_obs", hdr.NumObs)
				warned = true
			}
		}

		pos := vr.DataPos + dataBlockLength
		if int64(nobs)*8 > int64(len(img))-pos {
			return boundsError(fmt.Sprintf("data for %s", name), pos, "%d observations need %d bytes, file has %d",
				nobs, nobs*8, int64(len(img))-pos)
		}

		for j := range col {
			x := math.Float64frombits(binary.LittleEndian.Uint64(img[pos : pos+8]))
			if x == eviewsNA || math.IsNaN(x) {
				x = missingSentinel
			}
			col[j] = x
			pos += 8
		}
	}

	return nil
}
