package tnc

import (
	"testing"

	"github.com/hambyte/libradio/iochan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// S3/S4-style round trip: a payload sent over a memory channel decodes
// back byte-for-byte.
func Test_Engine_RoundTrip(t *testing.T) {
	ch := iochan.NewMemoryChannel()

	tx := NewEngine(256)
	tx.Bind(ch, ch)
	payload := []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	require.NoError(t, tx.Send(payload))

	rx := NewEngine(256)
	rx.Bind(ch, ch)

	state, err := rx.Poll()
	require.NoError(t, err)
	require.Equal(t, StateEOT, state)

	got, err := rx.Payload()
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func Test_Engine_Payload_WithoutFrameReturnsError(t *testing.T) {
	rx := NewEngine(256)
	_, err := rx.Payload()
	assert.ErrorIs(t, err, ErrNoFrameReceived)
}

func Test_Engine_Poll_WithoutBindReturnsErrNoChannel(t *testing.T) {
	rx := NewEngine(256)
	_, err := rx.Poll()
	assert.ErrorIs(t, err, ErrNoChannel)
}

// A corrupted hex digit in the payload changes the CRC the receiver
// computes over the hex text, so it no longer matches the transmitted CRC
// and the receiver must reject the message rather than hand back garbage.
func Test_Engine_CorruptedPayloadIsRejected(t *testing.T) {
	ch := iochan.NewMemoryChannel()
	tx := NewEngine(256)
	tx.Bind(ch, ch)
	require.NoError(t, tx.Send([]byte("HELLO")))

	buf := make([]byte, 4096)
	n, _ := ch.Read(buf)
	raw := buf[:n]

	// Corrupt the first hex digit between STX and ETX.
	idx := indexOf(raw, STX) + 1
	raw[idx] = flip(raw[idx])

	ch2 := iochan.NewMemoryChannel()
	_, _ = ch2.Write(raw)

	rx := NewEngine(256)
	rx.Bind(ch2, ch2)

	state, err := rx.Poll()
	assert.ErrorIs(t, err, ErrCRCError)
	assert.NotEqual(t, StateEOT, state)
}

func indexOf(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}
	return -1
}

func flip(c byte) byte {
	if c == '0' {
		return '1'
	}
	return '0'
}

// Garbage ahead of a frame must not wedge the state machine. Send flushes
// its own output channel, so the encoded frame is moved onto a second
// channel behind the noise.
func Test_Engine_GarbageBeforeFrameIsTolerated(t *testing.T) {
	ch := iochan.NewMemoryChannel()
	tx := NewEngine(256)
	tx.Bind(ch, ch)
	require.NoError(t, tx.Send([]byte("hi")))

	buf := make([]byte, 4096)
	n, _ := ch.Read(buf)

	ch2 := iochan.NewMemoryChannel()
	_, _ = ch2.Write([]byte("noise before anything starts"))
	_, _ = ch2.Write(buf[:n])

	rx := NewEngine(256)
	rx.Bind(ch2, ch2)

	state, err := rx.Poll()
	require.NoError(t, err)
	require.Equal(t, StateEOT, state)

	got, err := rx.Payload()
	require.NoError(t, err)
	assert.Equal(t, []byte("hi"), got)
}

// Property: any payload that fits the buffer survives a round trip.
func Test_Engine_RoundTrip_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		payload := rapid.SliceOfN(rapid.Byte(), 0, 64).Draw(t, "payload")

		ch := iochan.NewMemoryChannel()
		tx := NewEngine(256)
		tx.Bind(ch, ch)
		if err := tx.Send(payload); err != nil {
			t.Fatalf("Send: %v", err)
		}

		rx := NewEngine(256)
		rx.Bind(ch, ch)
		state, err := rx.Poll()
		if err != nil || state != StateEOT {
			t.Fatalf("Poll: state=%v err=%v", state, err)
		}

		got, err := rx.Payload()
		if err != nil {
			t.Fatalf("Payload: %v", err)
		}
		if string(got) != string(payload) {
			t.Fatalf("mismatch: got %v want %v", got, payload)
		}
	})
}
