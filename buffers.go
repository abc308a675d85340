package ereader

import (
	"sync"
	"sync/atomic"
)

// maxNameBytes is the per-variable allocation bound for the packed
// name buffer.  It bounds the buffer capacity only, names are located
// through the lengths array.
const maxNameBytes = 32

// bufferPool recycles the raw buffers produced by the header decoder.
// It is safe for concurrent use.
type bufferPool struct {
	names   sync.Pool
	lengths sync.Pool
	data    sync.Pool

	gets atomic.Int64
	puts atomic.Int64
}

func newBufferPool() *bufferPool {
	return &bufferPool{
		names:   sync.Pool{New: func() any { return &[]byte{} }},
		lengths: sync.Pool{New: func() any { return &[]int32{} }},
		data:    sync.Pool{New: func() any { return &[]float64{} }},
	}
}

// rawBuffers holds the three buffers of a successful header decode.
// A rawBuffers value has a single owner, the decode call that created
// it, and is released exactly once when that call returns.
type rawBuffers struct {

	// Packed variable names, no padding between names.  The capacity
	// is maxNameBytes per variable, the length is the sum of lengths.
	names []byte

	// Byte length of each name in names.
	lengths []int32

	// obsCount*globalVarCount values, column-major.
	data []float64

	pool     *bufferPool
	namesP   *[]byte
	lengthsP *[]int32
	dataP    *[]float64
	released bool
}

// get returns buffers sized for nvar variables and nobs observations.
func (p *bufferPool) get(nvar, nobs int) *rawBuffers {
	p.gets.Add(1)

	np, _ := p.names.Get().(*[]byte)
	if cap(*np) < maxNameBytes*nvar {
		*np = make([]byte, 0, maxNameBytes*nvar)
	}
	*np = (*np)[:0]

	lp, _ := p.lengths.Get().(*[]int32)
	if cap(*lp) < nvar {
		*lp = make([]int32, nvar)
	}
	*lp = (*lp)[:nvar]

	dp, _ := p.data.Get().(*[]float64)
	if cap(*dp) < nvar*nobs {
		*dp = make([]float64, nvar*nobs)
	}
	*dp = (*dp)[:nvar*nobs]

	return &rawBuffers{
		names:    *np,
		lengths:  *lp,
		data:     *dp,
		pool:     p,
		namesP:   np,
		lengthsP: lp,
		dataP:    dp,
	}
}

// release hands the buffers back to the pool.  The fields are cleared
// so that nothing can read the buffers afterwards, and later calls
// are no-ops.
func (b *rawBuffers) release() {
	if b == nil || b.released {
		return
	}
	b.released = true

	// names may have been grown by append.
	*b.namesP = b.names[:0]

	b.pool.names.Put(b.namesP)
	b.pool.lengths.Put(b.lengthsP)
	b.pool.data.Put(b.dataP)
	b.pool.puts.Add(1)

	b.names = nil
	b.lengths = nil
	b.data = nil
	b.namesP = nil
	b.lengthsP = nil
	b.dataP = nil
}

// stats returns the number of buffer sets handed out and returned.
func (p *bufferPool) stats() (gets, puts int64) {
	return p.gets.Load(), p.puts.Load()
}
