package crc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hambyte/libradio/crc"
)

func Test_Buffer_KnownVector(t *testing.T) {
	var got = crc.Buffer(crc.InitVal, []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZ"))
	assert.Equal(t, uint16(0xC452), got)
}

func Test_Update_MatchesBuffer(t *testing.T) {
	var data = []byte("The quick brown fox jumps over the lazy dog")

	var viaBuffer = crc.Buffer(crc.InitVal, data)

	var viaUpdate = crc.InitVal
	for _, c := range data {
		viaUpdate = crc.Update(c, viaUpdate)
	}

	assert.Equal(t, viaBuffer, viaUpdate)
}

func Test_Accumulator_MatchesBuffer(t *testing.T) {
	var data = []byte("NOCALL>TLM100,TEST*:>Test 00001")

	var acc = crc.NewAccumulator()
	_, err := acc.Write(data)
	assert.NoError(t, err)

	assert.Equal(t, crc.Buffer(crc.InitVal, data), acc.Value())
}

func Test_Accumulator_WriteInChunks(t *testing.T) {
	var data = []byte("some arbitrary payload bytes 0123456789")

	var acc = crc.NewAccumulator()
	_, _ = acc.Write(data[:10])
	_, _ = acc.Write(data[10:])

	assert.Equal(t, crc.Buffer(crc.InitVal, data), acc.Value())
}
