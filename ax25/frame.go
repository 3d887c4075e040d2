package ax25

import "strings"

const (
	// MaxRepeaters is the most digipeater addresses a frame may carry.
	MaxRepeaters = 8

	// InfoLen is the largest information field this module hands to a
	// caller or accepts from one (spec.md §3: "info_len ≤ 256").
	InfoLen = 256

	// FrameBufLen is the largest raw (unescaped, unflagged) frame body
	// the receive state machine will accumulate: two mandatory addresses
	// plus up to MaxRepeaters more, control, PID, info and the trailing
	// CRC. Mirrors original_source's AX25_FRAME_BUF_LEN.
	FrameBufLen = (CallsignLen + 1) * (2 + MaxRepeaters) + InfoLen + 4

	// MinFrameLen is the shortest a raw frame body can legitimately be:
	// destination + source (no repeaters) + control + PID + 2-byte CRC.
	MinFrameLen = 18

	// CtrlUI is the only control-field value this module handles.
	CtrlUI byte = 0x03

	// PIDNoLayer3 is the only protocol-ID value this module handles.
	PIDNoLayer3 byte = 0xF0
)

// Frame is an AX.25 UI frame: one destination, one source, zero to eight
// repeaters (in order), a control byte, a PID byte, and an information
// field. It is a value-oriented type meant to be reused across
// transmissions — Clear resets it to the UI/no-layer-3 defaults.
type Frame struct {
	Dst           Node
	Src           Node
	Repeaters     [MaxRepeaters]Node
	RepeaterCount uint8
	Ctrl          byte
	PID           byte
	Info          []byte
}

// NewFrame returns an empty frame with Ctrl=CtrlUI and PID=PIDNoLayer3.
func NewFrame() *Frame {
	f := &Frame{}
	f.Clear()
	return f
}

// Clear resets every field to its empty/default value so the frame can
// be reused for the next transmission.
func (f *Frame) Clear() {
	*f = Frame{Ctrl: CtrlUI, PID: PIDNoLayer3}
}

// SetSrc sets the source address.
func (f *Frame) SetSrc(callsign string, ssid uint8) {
	f.Src = Node{Callsign: callsign, SSID: ssid}
}

// SetDst sets the destination address.
func (f *Frame) SetDst(callsign string, ssid uint8) {
	f.Dst = Node{Callsign: callsign, SSID: ssid}
}

// AddRepeater appends a repeater address and returns its index, or
// ErrIllegalRepeater if the frame already has MaxRepeaters.
func (f *Frame) AddRepeater(callsign string, ssid uint8) (int, error) {
	if f.RepeaterCount >= MaxRepeaters {
		return -1, ErrIllegalRepeater
	}
	idx := int(f.RepeaterCount)
	f.Repeaters[idx] = Node{Callsign: callsign, SSID: ssid}
	f.RepeaterCount++
	return idx, nil
}

// SetRepeaterFlag sets the "has-been-repeated" flag of the repeater at
// index, or returns ErrIllegalRepeater if index is out of range.
func (f *Frame) SetRepeaterFlag(index int, flag bool) error {
	if index < 0 || index >= int(f.RepeaterCount) {
		return ErrIllegalRepeater
	}
	f.Repeaters[index].Repeated = flag
	return nil
}

// SetInfo copies info into the frame, truncating to InfoLen bytes if
// longer (matching the source's MIN-against-the-buffer-size behaviour
// rather than erroring on an oversized payload).
func (f *Frame) SetInfo(info []byte) {
	n := len(info)
	if n > InfoLen {
		n = InfoLen
	}
	f.Info = append(f.Info[:0], info[:n]...)
}

// String renders the frame in TNC-2 monitor notation:
// DST[-ssid]>SRC[-ssid][,RPT[-ssid][*]]...:info
func (f *Frame) String() string {
	var sb strings.Builder
	sb.WriteString(f.Dst.String())
	sb.WriteByte('>')
	sb.WriteString(f.Src.String())
	for i := 0; i < int(f.RepeaterCount); i++ {
		sb.WriteByte(',')
		sb.WriteString(f.Repeaters[i].String())
	}
	sb.WriteByte(':')
	sb.Write(f.Info)
	return sb.String()
}
