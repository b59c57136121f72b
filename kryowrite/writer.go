// Package kryowrite implements the symmetric encoder for the kryo wire
// format: the "sibling writer" the decoder's spec assumes exists
// externally. It exists so the decoder has a normative byte producer to
// test against and so cmd/kryodump has something to write before it
// reads it back.
package kryowrite

import (
	"encoding/binary"
	"io"
	"math"
	"unicode/utf16"

	"github.com/wepoiuopijsdfnxcvl/kryo/kerrors"
)

// ByteOrder mirrors kryo.ByteOrder without importing the decoder
// package, keeping kryowrite a leaf dependency of kryo rather than a
// circular one.
type ByteOrder int

const (
	BigEndian ByteOrder = iota
	LittleEndian
)

// Writer encodes values in the kryo wire format to an underlying
// io.Writer.
type Writer struct {
	w     io.Writer
	order ByteOrder
}

// New creates a Writer over w, defaulting to big-endian fixed-width
// encoding to match the decoder's default.
func New(w io.Writer) *Writer {
	return &Writer{w: w, order: BigEndian}
}

// SetOrder sets the byte order used for fixed-width primitives. Varints
// and strings are unaffected.
func (w *Writer) SetOrder(o ByteOrder) { w.order = o }

func (w *Writer) byteOrder() binary.ByteOrder {
	if w.order == LittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

func (w *Writer) write(b []byte) error {
	if _, err := w.w.Write(b); err != nil {
		return kerrors.NewIO("write", err)
	}
	return nil
}

// WriteBool writes a single byte: 1 for true, 0 for false.
func (w *Writer) WriteBool(v bool) error {
	if v {
		return w.write([]byte{1})
	}
	return w.write([]byte{0})
}

// WriteI8 writes a signed 8-bit integer.
func (w *Writer) WriteI8(v int8) error { return w.write([]byte{byte(v)}) }

// WriteU8 writes an unsigned 8-bit integer.
func (w *Writer) WriteU8(v uint8) error { return w.write([]byte{v}) }

// WriteI16 writes a signed 16-bit integer in the configured byte order.
func (w *Writer) WriteI16(v int16) error {
	b := make([]byte, 2)
	w.byteOrder().PutUint16(b, uint16(v))
	return w.write(b)
}

// WriteU16 writes an unsigned 16-bit integer in the configured byte
// order.
func (w *Writer) WriteU16(v uint16) error {
	b := make([]byte, 2)
	w.byteOrder().PutUint16(b, v)
	return w.write(b)
}

// WriteChar writes a UTF-16 code unit in the configured byte order.
func (w *Writer) WriteChar(v uint16) error { return w.WriteU16(v) }

// WriteI32 writes a signed 32-bit integer in the configured byte order.
func (w *Writer) WriteI32(v int32) error {
	b := make([]byte, 4)
	w.byteOrder().PutUint32(b, uint32(v))
	return w.write(b)
}

// WriteU32 writes an unsigned 32-bit integer in the configured byte
// order.
func (w *Writer) WriteU32(v uint32) error {
	b := make([]byte, 4)
	w.byteOrder().PutUint32(b, v)
	return w.write(b)
}

// WriteF32 writes an IEEE 754 single-precision float in the configured
// byte order.
func (w *Writer) WriteF32(v float32) error { return w.WriteU32(math.Float32bits(v)) }

// WriteI64 writes a signed 64-bit integer in the configured byte order.
func (w *Writer) WriteI64(v int64) error {
	b := make([]byte, 8)
	w.byteOrder().PutUint64(b, uint64(v))
	return w.write(b)
}

// WriteU64 writes an unsigned 64-bit integer in the configured byte
// order.
func (w *Writer) WriteU64(v uint64) error {
	b := make([]byte, 8)
	w.byteOrder().PutUint64(b, v)
	return w.write(b)
}

// WriteF64 writes an IEEE 754 double-precision float in the configured
// byte order.
func (w *Writer) WriteF64(v float64) error { return w.WriteU64(math.Float64bits(v)) }

// WriteBytes writes raw bytes with no framing.
func (w *Writer) WriteBytes(b []byte) error { return w.write(b) }

// WriteVarint32 writes v as a 1..5 byte varint, zig-zag encoding it
// first unless optimizePositive is set.
func (w *Writer) WriteVarint32(v int32, optimizePositive bool) error {
	var u uint32
	if optimizePositive {
		u = uint32(v)
	} else {
		u = zigzagEncode32(v)
	}
	return w.writeVarintBytes(uint64(u), 5)
}

// WriteVarint64 writes v as a 1..9 byte varint, zig-zag encoding it
// first unless optimizePositive is set. The 9th byte, if needed, has no
// continuation bit: it carries the full remaining 8 bits of the value.
func (w *Writer) WriteVarint64(v int64, optimizePositive bool) error {
	var u uint64
	if optimizePositive {
		u = uint64(v)
	} else {
		u = zigzagEncode64(v)
	}
	return w.writeVarintBytes(u, 9)
}

func (w *Writer) writeVarintBytes(u uint64, maxBytes int) error {
	var out []byte
	for i := 0; i < maxBytes-1; i++ {
		b := byte(u & 0x7F)
		u >>= 7
		if u == 0 {
			out = append(out, b)
			return w.write(out)
		}
		out = append(out, b|0x80)
	}
	// maxBytes-1 continuation bytes emitted and u still has bits left:
	// the final byte carries all remaining bits with no continuation
	// flag. For the 32-bit codec's 5th byte that is at most 4 bits; for
	// the 64-bit codec's 9th byte it is a full 8 bits.
	out = append(out, byte(u))
	return w.write(out)
}

func zigzagEncode32(v int32) uint32 {
	return (uint32(v) << 1) ^ uint32(v>>31)
}

func zigzagEncode64(v int64) uint64 {
	return (uint64(v) << 1) ^ uint64(v>>63)
}

// WriteString writes a string in the kryo two-mode encoding. Use
// WriteNullString for the wire null; WriteString always encodes a
// present value. ASCII mode's terminator-bit scheme needs the marker
// byte plus at least one more byte, so it can only represent strings of
// two or more characters; shorter all-ASCII strings still round-trip
// correctly through the length + modified-UTF-8 path, which is used
// for them instead.
func (w *Writer) WriteString(s string) error {
	if len(s) >= 2 && isASCII(s) {
		return w.writeAsciiString(s)
	}
	return w.writeUTF8String(s)
}

// WriteNullString writes the wire representation of a null string.
func (w *Writer) WriteNullString() error {
	return w.write([]byte{0x80})
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

// writeAsciiString encodes s (len(s) >= 2, all-ASCII) in ASCII mode: the
// bytes are written as-is except the last, which has bit 7 set as the
// terminator.
func (w *Writer) writeAsciiString(s string) error {
	out := make([]byte, len(s))
	copy(out, s)
	out[len(out)-1] |= 0x80
	return w.write(out)
}

func (w *Writer) writeUTF8String(s string) error {
	units := utf16.Encode([]rune(s))
	charCount := len(units) + 1
	if err := w.writeUTF8Count(charCount); err != nil {
		return err
	}
	for _, u := range units {
		if err := w.writeUTF8Char(u); err != nil {
			return err
		}
	}
	return nil
}

// writeUTF8Count mirrors the decoder's readUTF8Count/readUTF8CountSlow
// pair: bit 7 marks length mode on the first byte, bit 6 of that first
// byte is its own continuation flag, and bit 7 of each subsequent byte
// is theirs.
func (w *Writer) writeUTF8Count(charCount int) error {
	b := byte(charCount&0x3F) | 0x80
	charCount >>= 6
	if charCount == 0 {
		return w.write([]byte{b})
	}
	out := []byte{b | 0x40}
	for {
		b = byte(charCount & 0x7F)
		charCount >>= 7
		if charCount == 0 {
			out = append(out, b)
			break
		}
		out = append(out, b|0x80)
	}
	return w.write(out)
}

func (w *Writer) writeUTF8Char(r uint16) error {
	switch {
	case r < 0x80:
		return w.write([]byte{byte(r)})
	case r < 0x800:
		return w.write([]byte{
			byte(0xC0 | r>>6),
			byte(0x80 | r&0x3F),
		})
	default:
		return w.write([]byte{
			byte(0xE0 | r>>12),
			byte(0x80 | (r>>6)&0x3F),
			byte(0x80 | r&0x3F),
		})
	}
}
