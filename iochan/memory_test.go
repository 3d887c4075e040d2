package iochan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_MemoryChannel_WriteRead(t *testing.T) {
	var ch = NewMemoryChannel()

	n, err := ch.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	buf := make([]byte, 16)
	n, err = ch.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(buf[:n]))
}

func Test_MemoryChannel_ReadEmptyReturnsNoBytesNoError(t *testing.T) {
	var ch = NewMemoryChannel()

	buf := make([]byte, 4)
	n, err := ch.Read(buf)
	assert.NoError(t, err)
	assert.Equal(t, 0, n)
}

func Test_MemoryChannel_ReadDrainsInOrder(t *testing.T) {
	var ch = NewMemoryChannel()
	_, _ = ch.Write([]byte("abc"))

	var buf [1]byte
	for _, want := range []byte("abc") {
		n, err := ch.Read(buf[:])
		require.NoError(t, err)
		require.Equal(t, 1, n)
		assert.Equal(t, want, buf[0])
	}

	n, err := ch.Read(buf[:])
	assert.NoError(t, err)
	assert.Equal(t, 0, n)
}

func Test_MemoryChannel_Flush(t *testing.T) {
	var ch = NewMemoryChannel()
	_, _ = ch.Write([]byte("leftover"))

	require.NoError(t, ch.Flush())

	buf := make([]byte, 16)
	n, _ := ch.Read(buf)
	assert.Equal(t, 0, n)
}

func Test_Pipe_CrossWired(t *testing.T) {
	var p = NewPipe()
	aIn, aOut := p.SideA()
	bIn, bOut := p.SideB()

	_, err := aOut.Write([]byte("ping"))
	require.NoError(t, err)

	buf := make([]byte, 16)
	n, err := bIn.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "ping", string(buf[:n]))

	_, err = bOut.Write([]byte("pong"))
	require.NoError(t, err)

	n, err = aIn.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "pong", string(buf[:n]))
}
