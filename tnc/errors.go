package tnc

import "errors"

// Error conditions named in spec.md §7, grouped the way
// original_source/include/radio/tnc.h's eTncError enum groups them.
var (
	ErrCRCError        = errors.New("tnc: CRC mismatch")
	ErrIllegalMessage  = errors.New("tnc: more than four CRC hex digits")
	ErrNoChannel       = errors.New("tnc: no channel bound")
	ErrNoFrameReceived = errors.New("tnc: payload requested before a frame completed")
)
