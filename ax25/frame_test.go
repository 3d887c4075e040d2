package ax25

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Frame_ClearSetsUIDefaults(t *testing.T) {
	f := NewFrame()
	assert.Equal(t, CtrlUI, f.Ctrl)
	assert.Equal(t, PIDNoLayer3, f.PID)
	assert.Equal(t, uint8(0), f.RepeaterCount)
}

func Test_Frame_AddRepeater_RejectsOverflow(t *testing.T) {
	f := NewFrame()
	for i := 0; i < MaxRepeaters; i++ {
		_, err := f.AddRepeater("TEST", uint8(i))
		require.NoError(t, err)
	}
	_, err := f.AddRepeater("ONEMORE", 0)
	assert.ErrorIs(t, err, ErrIllegalRepeater)
}

func Test_Frame_SetRepeaterFlag_RejectsOutOfRange(t *testing.T) {
	f := NewFrame()
	_, _ = f.AddRepeater("TEST", 0)
	assert.NoError(t, f.SetRepeaterFlag(0, true))
	assert.ErrorIs(t, f.SetRepeaterFlag(1, true), ErrIllegalRepeater)
}

func Test_Frame_SetInfo_TruncatesAtInfoLen(t *testing.T) {
	f := NewFrame()
	oversized := make([]byte, InfoLen+10)
	for i := range oversized {
		oversized[i] = 'x'
	}
	f.SetInfo(oversized)
	assert.Len(t, f.Info, InfoLen)
}

// S2 — Monitor string.
func Test_Frame_String_S2(t *testing.T) {
	f := NewFrame()
	f.SetDst("TLM100", 0)
	f.SetSrc("NOCALL", 0)
	_, _ = f.AddRepeater("TEST", 0)
	require.NoError(t, f.SetRepeaterFlag(0, true))
	f.SetInfo([]byte(">Test 00001: SolarPi APRS"))

	assert.Equal(t, "TLM100>NOCALL,TEST*:>Test 00001: SolarPi APRS", f.String())
}
