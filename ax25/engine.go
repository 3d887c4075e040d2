// Package ax25 implements the AX.25 UI-frame link layer: address
// encoding, the frame model, and a byte-stuffed HDLC framing engine that
// sends and receives UI frames over any byte-oriented channel.
package ax25

import (
	"io"

	"github.com/hambyte/libradio/crc"
	"github.com/hambyte/libradio/iochan"
	"github.com/hambyte/libradio/rlog"
)

// HDLC framing constants, per spec.md §6.
const (
	FlagHDLC  byte = 0x7E
	FlagReset byte = 0x7F
	Esc       byte = 0x1B
)

// CorrectCRC is the running CRC value a correctly-received frame (body
// plus its two transmitted CRC bytes) must fold to. It doubles as the
// encoder's internal self-check: see Send.
const CorrectCRC uint16 = 0xF0B8

// Engine is a byte-stuffed HDLC transport for AX.25 UI frames. It is not
// safe for concurrent use; each direction of a duplex link should use its
// own Engine (spec.md §5).
type Engine struct {
	in  io.Reader
	out io.Writer
	log *rlog.Logger

	inSync     bool
	escapeNext bool
	rxBuf      [FrameBufLen]byte
	rxLen      int
	rxCRC      uint16
	frameReady bool

	lastErr error
}

// NewEngine returns an idle Engine. Call Bind before Poll/Send.
func NewEngine() *Engine {
	return &Engine{rxCRC: crc.InitVal}
}

// Bind attaches the byte channel the engine polls from and sends to.
// in and out may be the same underlying duplex channel.
func (e *Engine) Bind(in iochan.ByteSource, out iochan.ByteSink) {
	e.in = in
	e.out = out
}

// SetLogger attaches a diagnostic logger. A nil logger (the default)
// disables logging entirely; the receive pipeline stays silent either way
// per spec.md §7 — only the decision to log is affected.
func (e *Engine) SetLogger(l *rlog.Logger) {
	e.log = l
}

// LastError returns the error latched by the most recent Send or Poll
// failure, for out-of-band diagnostics (spec.md §9).
func (e *Engine) LastError() error {
	return e.lastErr
}

func (e *Engine) setErr(err error) error {
	e.lastErr = err
	return err
}

// Poll drains whatever bytes are currently available from the bound
// input, advancing the receive state machine, and reports whether a
// complete, CRC-valid frame is now waiting to be read. Once a frame is
// ready, further Poll calls are no-ops until Read consumes it
// (spec.md §3's invariant).
func (e *Engine) Poll() (bool, error) {
	if e.in == nil {
		return false, e.setErr(ErrNoChannel)
	}
	if e.frameReady {
		return true, nil
	}

	var b [1]byte
	for {
		n, err := e.in.Read(b[:])
		if n > 0 {
			e.step(b[0])
			if e.frameReady {
				e.log.Debugf("ax25: frame ready, %d bytes", e.rxLen)
				return true, nil
			}
		}
		if err != nil {
			if err == io.EOF {
				return false, nil
			}
			return false, e.setErr(err)
		}
		if n == 0 {
			return false, nil
		}
	}
}

// step advances the receive state machine by one raw (possibly escaped)
// byte, per spec.md §4.D.2.
func (e *Engine) step(c byte) {
	// Outside a frame an escape protects nothing, so a flag straight
	// after a stray Esc still opens a frame.
	if e.escapeNext && !e.inSync && c == FlagHDLC {
		e.escapeNext = false
	}
	if !e.escapeNext {
		switch c {
		case FlagHDLC:
			if e.rxLen >= MinFrameLen && e.rxCRC == CorrectCRC {
				e.frameReady = true
				return
			}
			if e.rxLen > 0 {
				e.log.Debugf("ax25: discarding %d-byte candidate, CRC %04X", e.rxLen, e.rxCRC)
			}
			e.rxCRC = crc.InitVal
			e.rxLen = 0
			e.inSync = true
			return
		case FlagReset:
			e.inSync = false
			return
		case Esc:
			e.escapeNext = true
			return
		}
	}

	if e.inSync {
		if e.rxLen < FrameBufLen {
			e.rxBuf[e.rxLen] = c
			e.rxLen++
			e.rxCRC = crc.Update(c, e.rxCRC)
		} else {
			e.log.Debugf("ax25: buffer overrun, dropping sync")
			e.inSync = false
		}
	}
	e.escapeNext = false
}

// reset restores all receive state to its initial values, so the engine
// can assemble the next frame.
func (e *Engine) reset() {
	e.inSync = false
	e.escapeNext = false
	e.rxLen = 0
	e.rxCRC = crc.InitVal
	e.frameReady = false
}

// Read decodes the frame Poll most recently completed into f, and resets
// the engine to receive the next one. Returns ErrNoFrameReceived if Poll
// has not yet reported a complete frame.
func (e *Engine) Read(f *Frame) error {
	if !e.frameReady {
		return ErrNoFrameReceived
	}

	buf := e.rxBuf[:e.rxLen]
	f.Clear()

	f.Dst = DecodeNode(buf[0:7])
	f.Src = DecodeNode(buf[7:14])

	pos := 14
	last := IsLastAddress(buf[7:14])
	for !last && f.RepeaterCount < MaxRepeaters && pos+7 <= len(buf) {
		f.Repeaters[f.RepeaterCount] = DecodeNode(buf[pos : pos+7])
		f.RepeaterCount++
		last = IsLastAddress(buf[pos : pos+7])
		pos += 7
	}

	if pos+2 > len(buf) {
		e.reset()
		return ErrInvalidFrame
	}

	f.Ctrl = buf[pos]
	pos++
	if f.Ctrl != CtrlUI {
		e.log.Debugf("ax25: invalid control byte %02X", f.Ctrl)
		e.reset()
		return ErrInvalidFrame
	}

	f.PID = buf[pos]
	pos++
	if f.PID != PIDNoLayer3 {
		e.log.Debugf("ax25: invalid PID byte %02X", f.PID)
		e.reset()
		return ErrInvalidFrame
	}

	infoEnd := len(buf) - 2 // trailing CRC bytes
	if infoEnd < pos {
		infoEnd = pos
	}
	f.SetInfo(buf[pos:infoEnd])

	e.reset()
	return nil
}

// Send encodes f and transmits it as a complete HDLC frame: opening
// flag, byte-stuffed addresses/control/PID/info/CRC, closing flag. Send
// is all-or-nothing from the caller's point of view: the first error
// aborts the remainder and is both returned and latched on LastError.
func (e *Engine) Send(f *Frame) error {
	if e.out == nil {
		return e.setErr(ErrNoChannel)
	}

	acc := crc.InitVal

	writeRaw := func(c byte) error {
		_, err := e.out.Write([]byte{c})
		return err
	}
	writeStuffed := func(c byte) error {
		if c == FlagHDLC || c == FlagReset || c == Esc {
			if err := writeRaw(Esc); err != nil {
				return err
			}
		}
		acc = crc.Update(c, acc)
		return writeRaw(c)
	}
	sendNode := func(n Node, last bool) error {
		var tmp [7]byte
		if err := EncodeNode(tmp[:], n, last); err != nil {
			return err
		}
		for _, b := range tmp {
			if err := writeStuffed(b); err != nil {
				return err
			}
		}
		return nil
	}

	if err := writeRaw(FlagHDLC); err != nil {
		return e.setErr(err)
	}

	if err := sendNode(f.Dst, false); err != nil {
		return e.setErr(err)
	}
	if err := sendNode(f.Src, f.RepeaterCount == 0); err != nil {
		return e.setErr(err)
	}
	for i := 0; i < int(f.RepeaterCount); i++ {
		last := i == int(f.RepeaterCount)-1
		if err := sendNode(f.Repeaters[i], last); err != nil {
			return e.setErr(err)
		}
	}

	if err := writeStuffed(f.Ctrl); err != nil {
		return e.setErr(err)
	}
	if err := writeStuffed(f.PID); err != nil {
		return e.setErr(err)
	}
	for _, b := range f.Info {
		if err := writeStuffed(b); err != nil {
			return e.setErr(err)
		}
	}

	// CRC is sent in reverse order, each byte XORed with 0xFF.
	crcLo := byte(acc&0xFF) ^ 0xFF
	crcHi := byte(acc>>8) ^ 0xFF
	if err := writeStuffed(crcLo); err != nil {
		return e.setErr(err)
	}
	if err := writeStuffed(crcHi); err != nil {
		return e.setErr(err)
	}

	if acc != CorrectCRC {
		// Unreachable if the algorithm above is correct; kept as a
		// defensive check per spec.md §9.
		return e.setErr(ErrCRCSelfCheck)
	}

	if err := writeRaw(FlagHDLC); err != nil {
		return e.setErr(err)
	}

	e.lastErr = nil
	return nil
}
