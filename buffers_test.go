package ereader

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBufferPoolShapes(t *testing.T) {

	p := newBufferPool()
	b := p.get(3, 4)

	require.Len(t, b.names, 0)
	require.GreaterOrEqual(t, cap(b.names), 3*maxNameBytes)
	require.Len(t, b.lengths, 3)
	require.Len(t, b.data, 12)

	b.release()

	// A smaller request may reuse the buffers, with the new shape.
	c := p.get(1, 2)
	require.Len(t, c.names, 0)
	require.Len(t, c.lengths, 1)
	require.Len(t, c.data, 2)
	c.release()

	gets, puts := p.stats()
	require.Equal(t, int64(2), gets)
	require.Equal(t, int64(2), puts)
}

func TestBufferReleaseOnce(t *testing.T) {

	p := newBufferPool()
	b := p.get(2, 2)

	b.release()
	b.release()

	_, puts := p.stats()
	require.Equal(t, int64(1), puts)
	require.Nil(t, b.names)
	require.Nil(t, b.lengths)
	require.Nil(t, b.data)
}

func TestBufferReleaseNil(t *testing.T) {
	var b *rawBuffers
	require.NotPanics(t, b.release)
}
