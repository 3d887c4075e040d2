// Package iochan supplies the byte-channel abstraction the framing
// engines are driven from: a non-blocking byte source and a plain byte
// sink, per spec.md §4.F. Both engines only ever need "read whatever is
// currently available, may be nothing" and "write these bytes" — there is
// no internal buffering of multiple outstanding frames on either side.
package iochan

import "io"

// ByteSource is a non-blocking byte reader: Read returning (0, nil) means
// "nothing available right now", not EOF. Any io.Reader that follows this
// convention (MemoryChannel, SerialChannel, a raw non-blocking fd) works
// as the input side of an engine.
type ByteSource = io.Reader

// ByteSink is a plain byte writer. Short/partial writes are the sink's
// problem to retry internally; callers never see one.
type ByteSink = io.Writer

// Flusher is implemented by sinks that can discard pending output before
// a new transmission starts (spec.md §4.E.1: "the output channel is
// flushed to reduce contamination risk"). Sinks that don't need this
// (e.g. an in-memory buffer in a test) simply don't implement it.
type Flusher interface {
	Flush() error
}
