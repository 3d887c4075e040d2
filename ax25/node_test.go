package ax25

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func Test_EncodeDecodeNode_RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		callsign := rapid.StringMatching(`[A-Z0-9]{1,6}`).Draw(t, "callsign")
		ssid := uint8(rapid.IntRange(0, 15).Draw(t, "ssid"))
		repeated := rapid.Bool().Draw(t, "repeated")
		last := rapid.Bool().Draw(t, "last")

		n := Node{Callsign: callsign, SSID: ssid, Repeated: repeated}

		var buf [7]byte
		require.NoError(t, EncodeNode(buf[:], n, last))

		got := DecodeNode(buf[:])
		assert.Equal(t, callsign, got.Callsign)
		assert.Equal(t, ssid, got.SSID)
		assert.Equal(t, repeated, got.Repeated)
		assert.Equal(t, last, IsLastAddress(buf[:]))
	})
}

func Test_EncodeNode_RejectsIllegalCallsignChar(t *testing.T) {
	var buf [7]byte
	err := EncodeNode(buf[:], Node{Callsign: "NO*ALL"}, false)
	assert.ErrorIs(t, err, ErrIllegalCallsign)
}

func Test_EncodeNode_LowercaseIsUppercased(t *testing.T) {
	var buf [7]byte
	require.NoError(t, EncodeNode(buf[:], Node{Callsign: "nocall"}, false))
	assert.Equal(t, "NOCALL", DecodeNode(buf[:]).Callsign)
}

func Test_Node_String(t *testing.T) {
	assert.Equal(t, "TEST", Node{Callsign: "TEST"}.String())
	assert.Equal(t, "TEST-5", Node{Callsign: "TEST", SSID: 5}.String())
	assert.Equal(t, "TEST-5*", Node{Callsign: "TEST", SSID: 5, Repeated: true}.String())
}
