package iochan

import (
	"fmt"

	"github.com/pkg/term"
)

// SerialChannel binds an engine to a real tty, the way the teacher's
// serial_port_open/serial_port_write (src/serial_port.go) bind Dire Wolf
// to a modem or KISS TNC. It puts the port in raw mode so the framing
// engines see exactly the bytes the far end sent, with no line
// discipline getting in the way.
type SerialChannel struct {
	port *term.Term
}

// OpenSerial opens device at the given baud rate in raw mode. Supported
// baud rates mirror the teacher's switch in serial_port_open; an
// unsupported rate is rejected rather than silently downgraded, since a
// library call failing loudly beats a demo quietly running at the wrong
// speed.
func OpenSerial(device string, baud int) (*SerialChannel, error) {
	port, err := term.Open(device, term.RawMode)
	if err != nil {
		return nil, fmt.Errorf("iochan: open serial %s: %w", device, err)
	}

	switch baud {
	case 0: // leave it alone
	case 1200, 2400, 4800, 9600, 19200, 38400, 57600, 115200:
		if err := port.SetSpeed(baud); err != nil {
			_ = port.Close()
			return nil, fmt.Errorf("iochan: set speed %d on %s: %w", baud, device, err)
		}
	default:
		_ = port.Close()
		return nil, fmt.Errorf("iochan: unsupported baud rate %d", baud)
	}

	return &SerialChannel{port: port}, nil
}

// Read implements ByteSource.
func (s *SerialChannel) Read(p []byte) (int, error) {
	return s.port.Read(p)
}

// Write implements ByteSink.
func (s *SerialChannel) Write(p []byte) (int, error) {
	return s.port.Write(p)
}

// Flush implements Flusher, discarding unread input and unwritten output.
func (s *SerialChannel) Flush() error {
	return s.port.Flush()
}

// Close releases the underlying tty.
func (s *SerialChannel) Close() error {
	return s.port.Close()
}
