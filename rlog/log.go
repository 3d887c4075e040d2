// Package rlog is a small structured-logging façade for the framing
// engines. It plays the role the teacher's textcolor.go stub plays
// (a level switch gating a print call) but is backed by a real logger
// instead of a do-nothing TODO.
package rlog

import (
	"os"

	"github.com/charmbracelet/log"
)

// Level selects which messages reach the sink. Named after the
// operational knob spec.md §6 calls for: off/error/warn/info/debug.
type Level int

const (
	LevelOff Level = iota
	LevelError
	LevelWarn
	LevelInfo
	LevelDebug
)

// Format selects terse (level + message) or verbose (adds timestamp + caller)
// rendering, the second operational knob from spec.md §6.
type Format int

const (
	FormatTerse Format = iota
	FormatVerbose
)

// Logger wraps a charmbracelet/log.Logger with the level/format knobs
// above. The zero value is usable but logs nothing (Level defaults to
// LevelOff), so engines can hold a *Logger field that is nil-safe to call.
type Logger struct {
	inner *log.Logger
	level Level
}

// New builds a Logger writing to stderr at the given level and format.
func New(level Level, format Format) *Logger {
	opts := log.Options{
		// Level gating is done by this façade; let every message through.
		Level:           log.DebugLevel,
		ReportTimestamp: format == FormatVerbose,
		ReportCaller:    format == FormatVerbose,
	}
	return &Logger{
		inner: log.NewWithOptions(os.Stderr, opts),
		level: level,
	}
}

func (l *Logger) enabled(min Level) bool {
	return l != nil && l.level >= min
}

// Debugf logs a debug-level message. Safe to call on a nil *Logger.
func (l *Logger) Debugf(format string, args ...any) {
	if l.enabled(LevelDebug) {
		l.inner.Debugf(format, args...)
	}
}

// Infof logs an info-level message. Safe to call on a nil *Logger.
func (l *Logger) Infof(format string, args ...any) {
	if l.enabled(LevelInfo) {
		l.inner.Infof(format, args...)
	}
}

// Warnf logs a warn-level message. Safe to call on a nil *Logger.
func (l *Logger) Warnf(format string, args ...any) {
	if l.enabled(LevelWarn) {
		l.inner.Warnf(format, args...)
	}
}

// Errorf logs an error-level message. Safe to call on a nil *Logger.
func (l *Logger) Errorf(format string, args ...any) {
	if l.enabled(LevelError) {
		l.inner.Errorf(format, args...)
	}
}

// ParseLevel converts a name ("off", "error", "warn", "info", "debug")
// into a Level, defaulting to LevelOff for anything unrecognized.
func ParseLevel(name string) Level {
	switch name {
	case "error":
		return LevelError
	case "warn":
		return LevelWarn
	case "info":
		return LevelInfo
	case "debug":
		return LevelDebug
	default:
		return LevelOff
	}
}

// ParseFormat converts a name ("terse", "verbose") into a Format,
// defaulting to FormatTerse for anything unrecognized.
func ParseFormat(name string) Format {
	if name == "verbose" {
		return FormatVerbose
	}
	return FormatTerse
}
