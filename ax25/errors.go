package ax25

import "errors"

// Error conditions named in spec.md §7, grouped the way
// original_source/include/radio/ax25.h's eAx25Error enum groups them.
var (
	// Address errors.
	ErrIllegalCallsign = errors.New("ax25: illegal callsign")
	ErrIllegalRepeater = errors.New("ax25: illegal repeater index")

	// Framing errors.
	ErrInvalidFrame    = errors.New("ax25: invalid frame (control or PID)")
	ErrCRCError        = errors.New("ax25: CRC mismatch")
	ErrNoFrameReceived = errors.New("ax25: read before poll reported a frame")
	ErrCRCSelfCheck    = errors.New("ax25: internal CRC self-check failed")

	// Resource errors.
	ErrNoChannel = errors.New("ax25: no channel bound")
)
