// Package rconfig loads the YAML configuration shared by the demo
// programs under cmd/: which channel to open, the local station's
// identity, and how chatty the logger should be.
package rconfig

import (
	"fmt"
	"os"

	"github.com/hambyte/libradio/rlog"
	"gopkg.in/yaml.v3"
)

// searchLocations mirrors the station-config lookup order the teacher
// uses for tocalls.yaml in src/deviceid.go: current directory first,
// then a couple of conventional installed locations.
var searchLocations = []string{
	"libradio.yaml",
	"config/libradio.yaml",
	"/etc/libradio/libradio.yaml",
}

// Station describes one local AX.25 address: a callsign and SSID.
type Station struct {
	Callsign string `yaml:"callsign"`
	SSID     uint8  `yaml:"ssid"`
}

// Config is the top-level shape of libradio.yaml.
type Config struct {
	// Device is either a serial device path (e.g. "/dev/ttyUSB0") or
	// "memory" to run the demo over an in-process loopback pipe.
	Device string `yaml:"device"`
	Baud   int    `yaml:"baud"`

	Local Station   `yaml:"local"`
	Path  []Station `yaml:"path"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Default returns the configuration the demos fall back to when no
// config file is found: a memory-loopback channel and a plain NOCALL
// station, logging warnings and above.
func Default() Config {
	return Config{
		Device:    "memory",
		Baud:      9600,
		Local:     Station{Callsign: "NOCALL", SSID: 0},
		LogLevel:  "warn",
		LogFormat: "terse",
	}
}

// Load searches searchLocations (plus any extra paths given first) for a
// YAML config file and unmarshals the first one found. If none exist, it
// returns Default with no error — a missing config file is not a fault.
func Load(extraPaths ...string) (Config, error) {
	cfg := Default()

	locations := append(append([]string{}, extraPaths...), searchLocations...)

	var data []byte
	var found string
	for _, loc := range locations {
		b, err := os.ReadFile(loc)
		if err == nil {
			data = b
			found = loc
			break
		}
	}
	if found == "" {
		return cfg, nil
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("rconfig: parsing %s: %w", found, err)
	}
	return cfg, nil
}

// Level parses LogLevel, defaulting to LevelWarn on an unrecognized or
// empty value.
func (c Config) Level() rlog.Level {
	lvl := rlog.ParseLevel(c.LogLevel)
	if lvl == rlog.LevelOff && c.LogLevel != "off" {
		return rlog.LevelWarn
	}
	return lvl
}

// Format parses LogFormat, defaulting to FormatTerse.
func (c Config) Format() rlog.Format {
	if c.LogFormat == "" {
		return rlog.FormatTerse
	}
	return rlog.ParseFormat(c.LogFormat)
}
