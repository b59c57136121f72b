// Package kryo implements a pull-mode binary decoder over a refillable
// byte window: fixed-width primitives, zig-zag-optional varint32/64
// codecs, a two-mode ASCII/modified-UTF-8 string codec, and byte-order
// aware bulk array reads. Each typed reader documents its own wire
// layout; kryowrite.Writer is the matching encoder.
package kryo

import (
	"io"

	"github.com/wepoiuopijsdfnxcvl/kryo/kerrors"
	"github.com/wepoiuopijsdfnxcvl/kryo/window"
)

// defaultBufferSize is used when a Reader is constructed from a stream
// without an explicit size, matching the original's default for
// stream-backed inputs.
const defaultBufferSize = 4096

// initialCharBufferSize is the starting capacity of the string-decode
// scratch buffer. It doubles on demand and never shrinks.
const initialCharBufferSize = 32

// ByteOrder selects how multi-byte fixed-width primitives are decoded.
// Varints and strings are unaffected by it. The default is BigEndian,
// matching the wire format's default writer.
type ByteOrder int

const (
	BigEndian ByteOrder = iota
	LittleEndian
)

// Reader decodes the kryo wire format from a sliding byte window. A
// Reader is owned exclusively by its caller and is not safe for
// concurrent use.
type Reader struct {
	win   *window.Window
	order ByteOrder

	// chars is the growable UTF-16 code unit scratch buffer used by the
	// string decoder. It is never exposed directly.
	chars []uint16

	// closer is the original source, retained only so Close can release
	// it; win only sees the window.Filler adaptation of it.
	closer io.Closer

	// Verbose, when set, routes a line of trace per decoded primitive to
	// LogCb. Keeping this as a plain callback rather than pulling a
	// logging dependency into the decoder itself lets callers plug in
	// whatever logger they already use.
	Verbose bool
	LogCb   func(format string, args ...any)
}

// NewReader creates a Reader over a fully in-memory buffer. There is no
// refill source: once buf is exhausted, reads fail with
// kerrors.Underflow.
func NewReader(buf []byte) *Reader {
	return &Reader{
		win:   window.New(buf),
		order: BigEndian,
		chars: make([]uint16, initialCharBufferSize),
	}
}

// NewReaderSize creates a Reader backed by r, with an internal buffer of
// the given capacity. A size of 0 uses defaultBufferSize.
func NewReaderSize(r io.Reader, size int) *Reader {
	if size <= 0 {
		size = defaultBufferSize
	}
	rd := &Reader{
		win:   window.NewWithCapacity(size, window.NewReaderFiller(r)),
		order: BigEndian,
		chars: make([]uint16, initialCharBufferSize),
	}
	if c, ok := r.(io.Closer); ok {
		rd.closer = c
	}
	return rd
}

// NewReaderWithFiller creates a Reader backed by a custom Filler
// strategy object rather than an io.Reader, for callers that need
// something other than a bare stream (a rate-limited source, a test
// double that counts fills, etc).
func NewReaderWithFiller(f window.Filler, size int) *Reader {
	if size <= 0 {
		size = defaultBufferSize
	}
	return &Reader{
		win:   window.NewWithCapacity(size, f),
		order: BigEndian,
		chars: make([]uint16, initialCharBufferSize),
	}
}

// Order returns the configured byte order for fixed-width primitives.
func (r *Reader) Order() ByteOrder { return r.order }

// SetOrder sets the byte order for fixed-width primitives. Varints and
// strings are unaffected.
func (r *Reader) SetOrder(o ByteOrder) { r.order = o }

// Bytes returns the portion of the internal buffer currently resident
// between position and limit. The slice aliases the Reader's buffer and
// is only valid until the next read.
func (r *Reader) Bytes() []byte {
	return r.win.Buf[r.win.Position:r.win.Limit]
}

// SetBuffer discards any stream source and rebinds the Reader to a
// fully in-memory buffer, resetting position/limit/capacity/byteOrder
// and zeroing the total-bytes-scrolled counter.
func (r *Reader) SetBuffer(buf []byte) {
	r.closeSource()
	r.win.SetFiller(nil)
	r.win.SetBuffer(buf)
	r.order = BigEndian
}

// SetSource rebinds the refill source to r, forcing the next read to
// refill (limit is reset to 0).
func (r *Reader) SetSource(src io.Reader) {
	r.closeSource()
	if c, ok := src.(io.Closer); ok {
		r.closer = c
	}
	r.win.SetFiller(window.NewReaderFiller(src))
}

// SetPosition sets the logical read cursor within the current window.
// Unsafe to use across refills; intended for in-memory replay.
func (r *Reader) SetPosition(pos int) { r.win.Position = pos }

// SetLimit sets the end of the current window's valid region.
func (r *Reader) SetLimit(limit int) { r.win.Limit = limit }

// Position returns the current read cursor within the window.
func (r *Reader) Position() int { return r.win.Position }

// Limit returns the end of the current window's valid region.
func (r *Reader) Limit() int { return r.win.Limit }

// Capacity returns the physical size of the underlying buffer.
func (r *Reader) Capacity() int { return r.win.Capacity }

// Rewind resets the read cursor to 0, keeping the buffer's contents.
func (r *Reader) Rewind() { r.win.Rewind() }

// TotalBytesRead returns the absolute number of bytes consumed so far.
func (r *Reader) TotalBytesRead() int64 { return r.win.TotalBytesRead() }

func (r *Reader) closeSource() {
	if r.closer != nil {
		_ = r.closer.Close()
		r.closer = nil
	}
}

// Close releases the source stream, if any was provided, swallowing any
// error it returns (matching the original: a close failure on shutdown
// cannot be usefully acted on). Close is idempotent.
func (r *Reader) Close() error {
	r.closeSource()
	return nil
}

func (r *Reader) trace(format string, args ...any) {
	if !r.Verbose {
		return
	}
	if r.LogCb != nil {
		r.LogCb(format, args...)
		return
	}
	// No LogCb configured: fall back to a no-op rather than writing to
	// stderr behind the caller's back.
}

// argError is a small helper shared by the stream-operation entry
// points that must reject a nil destination synchronously.
func argError(op, msg string) error {
	return kerrors.NewArgument(op, msg)
}
