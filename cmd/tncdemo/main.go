// Command tncdemo exercises the ASCII-armoured TNC transport: it writes
// a payload, waits for a complete reply (or the CRC-checked echo of its
// own message over a loopback channel), and prints what it got. The Go
// equivalent of original_source's demo/tnc/radio_demo_tnc.c.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hambyte/libradio/iochan"
	"github.com/hambyte/libradio/rconfig"
	"github.com/hambyte/libradio/rlog"
	"github.com/hambyte/libradio/tnc"
	"github.com/spf13/pflag"
)

func main() {
	var (
		device      = pflag.StringP("device", "d", "", "Serial device, e.g. /dev/ttyAMA0 (overrides config file; \"memory\" for a loopback demo)")
		baud        = pflag.IntP("baud", "b", 0, "Serial baud rate (0 = use config file / default)")
		period      = pflag.DurationP("period", "p", 3*time.Second, "How often to send a message")
		bufSize     = pflag.IntP("buffer", "n", 256, "Receive payload buffer size")
		logLevel    = pflag.String("log-level", "", "off|error|warn|info|debug (overrides config file)")
		logFormat   = pflag.String("log-format", "", "terse|verbose (overrides config file)")
		configPaths = pflag.StringArrayP("config", "c", nil, "Extra config file paths to search before the defaults")
		help        = pflag.BoolP("help", "h", false, "Display help text")
	)

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [options]\n\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *help {
		pflag.Usage()
		return
	}

	cfg, err := rconfig.Load(*configPaths...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tncdemo: %v\n", err)
		os.Exit(1)
	}
	if *device != "" {
		cfg.Device = *device
	}
	if *baud != 0 {
		cfg.Baud = *baud
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *logFormat != "" {
		cfg.LogFormat = *logFormat
	}

	log := rlog.New(cfg.Level(), cfg.Format())

	in, out, closeChannel, err := openChannel(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tncdemo: %v\n", err)
		os.Exit(1)
	}
	defer closeChannel()

	engine := tnc.NewEngine(*bufSize)
	engine.SetLogger(log)
	engine.Bind(in, out)

	msg := make([]byte, *bufSize)
	for i := range msg {
		msg[i] = byte(i)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(*period)
	defer ticker.Stop()

	fmt.Printf("tncdemo running on %s (baud=%d). Press Ctrl+C to quit.\n", cfg.Device, cfg.Baud)

	for {
		select {
		case <-sigCh:
			fmt.Println("\ntncdemo closed. Have a nice day!")
			return

		case <-ticker.C:
			if err := engine.Send(msg); err != nil {
				log.Errorf("send: %v", err)
				continue
			}
			fmt.Printf("Send %d bytes\n", len(msg))

		default:
			state, err := engine.Poll()
			if err != nil {
				log.Errorf("poll: %v", err)
				time.Sleep(10 * time.Millisecond)
				continue
			}
			if state != tnc.StateEOT {
				time.Sleep(10 * time.Millisecond)
				continue
			}
			payload, err := engine.Payload()
			if err != nil {
				log.Errorf("payload: %v", err)
				continue
			}
			fmt.Printf("Received %d bytes: % 02X\n", len(payload), payload)
		}
	}
}

func openChannel(cfg rconfig.Config) (iochan.ByteSource, iochan.ByteSink, func(), error) {
	if cfg.Device == "" || cfg.Device == "memory" {
		ch := iochan.NewMemoryChannel()
		return ch, ch, func() {}, nil
	}

	port, err := iochan.OpenSerial(cfg.Device, cfg.Baud)
	if err != nil {
		return nil, nil, nil, err
	}
	return port, port, func() { _ = port.Close() }, nil
}
