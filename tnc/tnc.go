// Package tnc implements the ASCII-armoured packet transport used
// between a host and a Terminal Node Controller: SOH/STX/ETX/EOT framed,
// hex-encoded payload, CRC-CCITT protected.
package tnc

import (
	"io"

	"github.com/hambyte/libradio/crc"
	"github.com/hambyte/libradio/iochan"
	"github.com/hambyte/libradio/rlog"
)

// Delimiter bytes, per spec.md §6.
const (
	SOH byte = 1
	STX byte = 2
	ETX byte = 3
	EOT byte = 4
)

// State is the last delimiter the receive state machine recognized.
type State int

const (
	StateIdle State = iota
	StateSOHSeen
	StateSTXSeen
	StateETXSeen
	StateEOT
	StateIllegalMsg
)

// Engine is the TNC framing engine for both directions of a duplex link
// (Poll receives, Send transmits); it is not safe for concurrent use
// (spec.md §5).
type Engine struct {
	in  io.Reader
	out io.Writer
	log *rlog.Logger

	state       State
	rxBuf       []byte
	rxLen       int
	nibbleCount int
	msb         byte
	crcRx       uint16
	crcTx       uint16

	lastErr error
}

// NewEngine returns an idle Engine whose receive buffer holds up to
// bufSize decoded payload bytes.
func NewEngine(bufSize int) *Engine {
	return &Engine{rxBuf: make([]byte, bufSize)}
}

// Bind attaches the byte channel the engine polls from and sends to.
func (e *Engine) Bind(in iochan.ByteSource, out iochan.ByteSink) {
	e.in = in
	e.out = out
}

// SetLogger attaches a diagnostic logger; nil disables logging.
func (e *Engine) SetLogger(l *rlog.Logger) {
	e.log = l
}

// LastError returns the error latched by the most recent Poll or Send.
func (e *Engine) LastError() error {
	return e.lastErr
}

func (e *Engine) setErr(err error) error {
	e.lastErr = err
	return err
}

// Poll drains whatever bytes are currently available from the bound
// input, advancing the receive state machine, and returns the resulting
// State. StateEOT means a complete, CRC-valid payload is ready to be read
// with Payload. Calling Poll again after StateEOT starts a fresh round:
// the next SOH begins a new candidate message.
func (e *Engine) Poll() (State, error) {
	if e.in == nil {
		return e.state, e.setErr(ErrNoChannel)
	}
	if e.state == StateEOT {
		e.state = StateIdle
	}

	var b [1]byte
	for {
		n, err := e.in.Read(b[:])
		if n > 0 {
			if stepErr := e.step(b[0]); stepErr != nil {
				e.log.Debugf("tnc: %v", stepErr)
				return e.state, e.setErr(stepErr)
			}
			if e.state == StateEOT {
				e.log.Debugf("tnc: payload ready, %d bytes", e.rxLen)
				return e.state, nil
			}
		}
		if err != nil {
			if err == io.EOF {
				return e.state, nil
			}
			return e.state, e.setErr(err)
		}
		if n == 0 {
			return e.state, nil
		}
	}
}

// step advances the receive state machine by one byte, per spec.md §4.E.2.
func (e *Engine) step(c byte) error {
	switch c {
	case SOH:
		e.crcRx = crc.InitVal
		e.rxLen = 0
		e.state = StateSOHSeen
		return nil

	case STX:
		if e.state == StateSOHSeen {
			e.nibbleCount = 0
			e.state = StateSTXSeen
		} else {
			e.state = StateIdle
		}
		return nil

	case ETX:
		if e.state == StateSTXSeen {
			e.nibbleCount = 0
			e.crcTx = 0
			e.state = StateETXSeen
		} else {
			e.state = StateIdle
		}
		return nil

	case EOT:
		if e.state == StateETXSeen {
			if e.crcRx != e.crcTx {
				e.state = StateIdle
				return ErrCRCError
			}
			e.state = StateEOT
		} else {
			e.state = StateIdle
		}
		return nil

	default:
		if !isHexDigit(c) {
			return nil
		}
		switch e.state {
		case StateSTXSeen:
			e.crcRx = crc.Update(c, e.crcRx)
			if e.nibbleCount%2 == 0 {
				e.msb = htoi(c) << 4
			} else if e.rxLen < len(e.rxBuf) {
				e.rxBuf[e.rxLen] = e.msb | htoi(c)
				e.rxLen++
			}
			e.nibbleCount++
		case StateETXSeen:
			if e.nibbleCount > 12 {
				e.state = StateIllegalMsg
				return ErrIllegalMessage
			}
			e.crcTx += uint16(htoi(c)) << (12 - e.nibbleCount)
			e.nibbleCount += 4
		default:
			// Hex digit seen outside a frame: not an error, just noise.
			e.state = StateIdle
		}
		return nil
	}
}

// Payload returns a copy of the most recently completed message's
// decoded bytes. Returns ErrNoFrameReceived unless Poll last reported
// StateEOT. A copy is returned (rather than the internal buffer) so a
// second Poll can safely begin overwriting engine state while the caller
// still holds the previous payload — see spec.md §9's open question.
func (e *Engine) Payload() ([]byte, error) {
	if e.state != StateEOT {
		return nil, ErrNoFrameReceived
	}
	out := make([]byte, e.rxLen)
	copy(out, e.rxBuf[:e.rxLen])
	return out, nil
}

// Send encodes payload as SOH STX <hex> ETX <hex4 CRC> EOT and writes it
// to the bound output. If the output implements iochan.Flusher, it is
// flushed first (spec.md §4.E.1).
func (e *Engine) Send(payload []byte) error {
	if e.out == nil {
		return e.setErr(ErrNoChannel)
	}
	if f, ok := e.out.(iochan.Flusher); ok {
		_ = f.Flush()
	}

	acc := crc.InitVal
	writeRaw := func(c byte) error {
		_, err := e.out.Write([]byte{c})
		return err
	}
	writeHex := func(c byte) error {
		acc = crc.Update(c, acc)
		return writeRaw(c)
	}

	if err := writeRaw(SOH); err != nil {
		return e.setErr(err)
	}
	if err := writeRaw(STX); err != nil {
		return e.setErr(err)
	}
	for _, b := range payload {
		if err := writeHex(hexDigit(b >> 4)); err != nil {
			return e.setErr(err)
		}
		if err := writeHex(hexDigit(b & 0x0F)); err != nil {
			return e.setErr(err)
		}
	}
	if err := writeRaw(ETX); err != nil {
		return e.setErr(err)
	}
	for shift := 12; shift >= 0; shift -= 4 {
		d := hexDigit(byte(acc>>uint(shift)) & 0x0F)
		if err := writeRaw(d); err != nil {
			return e.setErr(err)
		}
	}
	if err := writeRaw(EOT); err != nil {
		return e.setErr(err)
	}

	e.lastErr = nil
	return nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'F') || (c >= 'a' && c <= 'f')
}

func htoi(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default: // 'a'..'f'
		return c - 'a' + 10
	}
}

func hexDigit(v byte) byte {
	v &= 0x0F
	if v < 10 {
		return '0' + v
	}
	return 'A' + (v - 10)
}
