// Command ax25demo sends a periodic AX.25 UI frame and prints whatever
// frames it receives, the Go equivalent of original_source's
// demo/aprs/radio_demo_aprs.c.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hambyte/libradio/ax25"
	"github.com/hambyte/libradio/iochan"
	"github.com/hambyte/libradio/rconfig"
	"github.com/hambyte/libradio/rlog"
	"github.com/spf13/pflag"
)

func main() {
	var (
		device      = pflag.StringP("device", "d", "", "Serial device, e.g. /dev/ttyAMA0 (overrides config file; \"memory\" for a loopback demo)")
		baud        = pflag.IntP("baud", "b", 0, "Serial baud rate (0 = use config file / default)")
		period      = pflag.DurationP("period", "p", 3*time.Second, "How often to send a beacon frame")
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
		fmt.Fprintf(os.Stderr, "ax25demo: %v\n", err)
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
		fmt.Fprintf(os.Stderr, "ax25demo: %v\n", err)
		os.Exit(1)
	}
	defer closeChannel()

	engine := ax25.NewEngine()
	engine.SetLogger(log)
	engine.Bind(in, out)

	tx := ax25.NewFrame()
	tx.SetDst(cfg.Local.Callsign, cfg.Local.SSID)
	tx.SetSrc(cfg.Local.Callsign, cfg.Local.SSID)
	for _, hop := range cfg.Path {
		_, _ = tx.AddRepeater(hop.Callsign, hop.SSID)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(*period)
	defer ticker.Stop()

	fmt.Printf("ax25demo running on %s (baud=%d), beacon every %s. Press Ctrl+C to quit.\n", cfg.Device, cfg.Baud, *period)

	var counter uint32
	rx := ax25.NewFrame()

	for {
		select {
		case <-sigCh:
			fmt.Println("\nax25demo closed. Have a nice day!")
			return

		case <-ticker.C:
			counter++
			tx.SetInfo([]byte(fmt.Sprintf(">Test %05d: libradio demo", counter)))
			if err := engine.Send(tx); err != nil {
				log.Errorf("send: %v", err)
				continue
			}
			fmt.Printf("Send Frame: [%s]\n", tx.String())

		default:
			ready, err := engine.Poll()
			if err != nil {
				log.Errorf("poll: %v", err)
				time.Sleep(10 * time.Millisecond)
				continue
			}
			if !ready {
				time.Sleep(10 * time.Millisecond)
				continue
			}
			if err := engine.Read(rx); err != nil {
				log.Errorf("read: %v", err)
				continue
			}
			fmt.Printf("Recv Frame: [%s]\n\n", rx.String())
		}
	}
}

// openChannel binds to a real serial port, or to a self-looped memory
// channel when cfg.Device is "memory" (or empty), so the demo runs
// without any hardware attached.
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
