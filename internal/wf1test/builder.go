// Package wf1test builds EViews workfile images for tests.
package wf1test

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/rand"
	"os"
)

// Byte offsets of header and record fields, for tests that corrupt an
// image after building it.
const (
	OffsetHeaderSize    = 80
	OffsetNumVarPlusOne = 114
	OffsetLastMod       = 118
	OffsetDataFreq      = 124
	OffsetStartObs      = 128
	OffsetStartSubp     = 132
	OffsetNumObs        = 140

	HeaderLength    = 146
	VarTableOffset  = 26
	VarRecordLength = 70
	DataBlockLength = 22

	RecordOffsetDataPos = 14
	RecordOffsetName    = 22
	RecordOffsetObjNat  = 62

	// SeriesObjNat is the object code of a numeric series.
	SeriesObjNat = 44
)

// NA is the value EViews stores for a missing observation.
const NA = 1e-37

// Magic starts every workfile.
const Magic = "New MicroTSP Workfile"

// A Var describes one variable of a workfile.
type Var struct {

	// Name of the variable, written NUL padded into 32 bytes.
	Name string

	// If not nil, written as the name instead of Name.  At most 32
	// bytes are used.
	RawName []byte

	// Object code, SeriesObjNat if zero.
	ObjNat int16

	// Observations.  Missing trailing values are written as zero.
	Values []float64

	// If non-nil, the observation count written in the data block
	// instead of the header count.
	BlockObs *int32

	// If non-zero, the DataPos written in the variable record instead
	// of the actual data block position.
	DataPos int64

	// If true, no data block is written and DataPos is zero.
	NoData bool
}

// A Builder assembles a workfile image.
type Builder struct {
	NumObs    int32
	Frequency int16
	StartObs  int32
	StartSubp int64

	// Extra bytes between the fixed header and the variable table.
	HeaderPadding int

	Vars []Var
}

// New returns a Builder for nobs observations of annual data starting
// in 2000.
func New(nobs int32) *Builder {
	return &Builder{
		NumObs:    nobs,
		Frequency: 1,
		StartObs:  2000,
		StartSubp: 1,
	}
}

// Series adds a numeric series.
func (b *Builder) Series(name string, values ...float64) *Builder {
	b.Vars = append(b.Vars, Var{Name: name, Values: values})
	return b
}

// Object adds a non-series object with the given object code.
func (b *Builder) Object(name string, objNat int16) *Builder {
	b.Vars = append(b.Vars, Var{Name: name, ObjNat: objNat, NoData: true})
	return b
}

// Add adds an arbitrary variable.
func (b *Builder) Add(v Var) *Builder {
	b.Vars = append(b.Vars, v)
	return b
}

// VarRecordStart returns the offset of variable record i in the image.
func (b *Builder) VarRecordStart(i int) int {
	return b.headerSize() + VarTableOffset + i*VarRecordLength
}

func (b *Builder) headerSize() int {
	return HeaderLength + b.HeaderPadding
}

// Bytes returns the workfile image.
func (b *Builder) Bytes() []byte {

	le := binary.LittleEndian
	nvar := len(b.Vars)
	hs := b.headerSize()
	dataStart := hs + VarTableOffset + nvar*VarRecordLength

	// Data blocks are laid out in variable order after the table.
	pos := make([]int, nvar)
	end := dataStart
	for i, v := range b.Vars {
		if v.NoData {
			continue
		}
		pos[i] = end
		end += DataBlockLength + 8*int(b.NumObs)
	}

	img := make([]byte, end)

	copy(img, Magic)
	le.PutUint64(img[OffsetHeaderSize:], uint64(hs))
	le.PutUint32(img[OffsetNumVarPlusOne:], uint32(nvar+1))
	le.PutUint16(img[OffsetDataFreq:], uint16(b.Frequency))
	le.PutUint32(img[OffsetStartObs:], uint32(b.StartObs))
	le.PutUint64(img[OffsetStartSubp:], uint64(b.StartSubp))
	le.PutUint32(img[OffsetNumObs:], uint32(b.NumObs))

	for i, v := range b.Vars {
		rec := img[b.VarRecordStart(i):]

		name := v.RawName
		if name == nil {
			name = []byte(v.Name)
		}
		if len(name) > 32 {
			name = name[:32]
		}
		copy(rec[RecordOffsetName:RecordOffsetName+32], name)

		objNat := v.ObjNat
		if objNat == 0 {
			objNat = SeriesObjNat
		}
		le.PutUint16(rec[RecordOffsetObjNat:], uint16(objNat))

		dp := int64(pos[i])
		if v.DataPos != 0 {
			dp = v.DataPos
		}
		le.PutUint64(rec[RecordOffsetDataPos:], uint64(dp))

		if v.NoData {
			continue
		}

		blk := img[pos[i]:]
		obs := b.NumObs
		if v.BlockObs != nil {
			obs = *v.BlockObs
		}
		le.PutUint32(blk[0:], uint32(obs))
		le.PutUint32(blk[4:], uint32(b.StartObs))
		le.PutUint32(blk[16:], uint32(b.StartObs+b.NumObs-1))

		for j := 0; j < int(b.NumObs); j++ {
			var x float64
			if j < len(v.Values) {
				x = v.Values[j]
			}
			le.PutUint64(blk[DataBlockLength+8*j:], math.Float64bits(x))
		}
	}

	return img
}

// WriteFile writes the workfile image to path.
func (b *Builder) WriteFile(path string) error {
	return os.WriteFile(path, b.Bytes(), 0644)
}

// Random returns a Builder for nvar series of nobs observations drawn
// from a seeded generator.  About one value in ten is NA.  If
// structural is true a RESID series and a non-series object are
// appended.
func Random(seed int64, nvar int, nobs int32, structural bool) *Builder {

	r := rand.New(rand.NewSource(seed))
	b := New(nobs)

	for j := 0; j < nvar; j++ {
		vals := make([]float64, nobs)
		for i := range vals {
			if r.Float64() < 0.1 {
				vals[i] = NA
			} else {
				vals[i] = math.Round(1000*r.NormFloat64()) / 1000
			}
		}
		b.Series(fmt.Sprintf("X%d", j+1), vals...)
	}

	if structural {
		resid := make([]float64, nobs)
		b.Series("RESID", resid...)
		b.Object("C", 43)
	}

	return b
}
