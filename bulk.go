package kryo

import (
	"encoding/binary"
	"math"
)

// nativeLittleEndian records the host's native byte order, computed once
// without unsafe: encoding/binary.NativeEndian decodes a known byte
// pattern and the result tells us which way the host actually runs.
var nativeLittleEndian = binary.NativeEndian.Uint16([]byte{1, 0}) == 1

// isNativeOrder reports whether the Reader's configured byte order
// matches the host's native order, the condition bulk array reads use
// to decide whether a direct typed pass over the buffer is safe.
func (r *Reader) isNativeOrder() bool {
	return (r.order == LittleEndian) == nativeLittleEndian
}

// Bulk array readers: when the whole array fits in one window load and
// the configured byte order matches the host's native order, decode it
// with a single Require and a tight per-element pass over the resident
// buffer. Otherwise -- the array is larger than the window's capacity,
// or a byte swap is needed per element -- fall back to the scalar
// reader element by element, which refills the window transparently as
// it goes.

// ReadBools reads n one-byte booleans (1 is true, anything else false).
func (r *Reader) ReadBools(n int) ([]bool, error) {
	if n < 0 {
		return nil, argError("ReadBools", "length must be non-negative")
	}
	raw, err := r.ReadBytes(n)
	if err != nil {
		return nil, err
	}
	out := make([]bool, n)
	for i, b := range raw {
		out[i] = b == 1
	}
	r.trace("ReadBools(%d) done", n)
	return out, nil
}

// ReadI8s reads n signed 8-bit integers.
func (r *Reader) ReadI8s(n int) ([]int8, error) {
	if n < 0 {
		return nil, argError("ReadI8s", "length must be non-negative")
	}
	raw, err := r.ReadBytes(n)
	if err != nil {
		return nil, err
	}
	out := make([]int8, n)
	for i, b := range raw {
		out[i] = int8(b)
	}
	r.trace("ReadI8s(%d) done", n)
	return out, nil
}

// ReadI16s reads n signed 16-bit integers in the configured byte order.
func (r *Reader) ReadI16s(n int) ([]int16, error) {
	if n < 0 {
		return nil, argError("ReadI16s", "length must be non-negative")
	}
	out := make([]int16, n)
	const width = 2
	if n*width <= r.win.Capacity && r.isNativeOrder() {
		if _, err := r.win.Require(n * width); err != nil {
			return nil, err
		}
		order := r.byteOrder()
		buf := r.win.Buf
		pos := r.win.Position
		for i := range out {
			out[i] = int16(order.Uint16(buf[pos : pos+width]))
			pos += width
		}
		r.win.Position = pos
		r.trace("ReadI16s(%d) done (fast path)", n)
		return out, nil
	}
	for i := range out {
		v, err := r.ReadI16()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// ReadU16s reads n unsigned 16-bit integers in the configured byte
// order.
func (r *Reader) ReadU16s(n int) ([]uint16, error) {
	if n < 0 {
		return nil, argError("ReadU16s", "length must be non-negative")
	}
	out := make([]uint16, n)
	const width = 2
	if n*width <= r.win.Capacity && r.isNativeOrder() {
		if _, err := r.win.Require(n * width); err != nil {
			return nil, err
		}
		order := r.byteOrder()
		buf := r.win.Buf
		pos := r.win.Position
		for i := range out {
			out[i] = order.Uint16(buf[pos : pos+width])
			pos += width
		}
		r.win.Position = pos
		r.trace("ReadU16s(%d) done (fast path)", n)
		return out, nil
	}
	for i := range out {
		v, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// ReadChars reads n UTF-16 code units in the configured byte order. It
// is the array counterpart of ReadChar, sharing ReadU16s's wire layout.
func (r *Reader) ReadChars(n int) ([]uint16, error) {
	return r.ReadU16s(n)
}

// ReadI32s reads n signed 32-bit integers in the configured byte order.
func (r *Reader) ReadI32s(n int) ([]int32, error) {
	if n < 0 {
		return nil, argError("ReadI32s", "length must be non-negative")
	}
	out := make([]int32, n)
	const width = 4
	if n*width <= r.win.Capacity && r.isNativeOrder() {
		if _, err := r.win.Require(n * width); err != nil {
			return nil, err
		}
		order := r.byteOrder()
		buf := r.win.Buf
		pos := r.win.Position
		for i := range out {
			out[i] = int32(order.Uint32(buf[pos : pos+width]))
			pos += width
		}
		r.win.Position = pos
		r.trace("ReadI32s(%d) done (fast path)", n)
		return out, nil
	}
	for i := range out {
		v, err := r.ReadI32()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// ReadI64s reads n signed 64-bit integers in the configured byte order.
func (r *Reader) ReadI64s(n int) ([]int64, error) {
	if n < 0 {
		return nil, argError("ReadI64s", "length must be non-negative")
	}
	out := make([]int64, n)
	const width = 8
	if n*width <= r.win.Capacity && r.isNativeOrder() {
		if _, err := r.win.Require(n * width); err != nil {
			return nil, err
		}
		order := r.byteOrder()
		buf := r.win.Buf
		pos := r.win.Position
		for i := range out {
			out[i] = int64(order.Uint64(buf[pos : pos+width]))
			pos += width
		}
		r.win.Position = pos
		r.trace("ReadI64s(%d) done (fast path)", n)
		return out, nil
	}
	for i := range out {
		v, err := r.ReadI64()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// ReadF32s reads n IEEE 754 single-precision floats in the configured
// byte order.
func (r *Reader) ReadF32s(n int) ([]float32, error) {
	if n < 0 {
		return nil, argError("ReadF32s", "length must be non-negative")
	}
	out := make([]float32, n)
	const width = 4
	if n*width <= r.win.Capacity && r.isNativeOrder() {
		if _, err := r.win.Require(n * width); err != nil {
			return nil, err
		}
		order := r.byteOrder()
		buf := r.win.Buf
		pos := r.win.Position
		for i := range out {
			out[i] = math.Float32frombits(order.Uint32(buf[pos : pos+width]))
			pos += width
		}
		r.win.Position = pos
		r.trace("ReadF32s(%d) done (fast path)", n)
		return out, nil
	}
	for i := range out {
		v, err := r.ReadF32()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// ReadF64s reads n IEEE 754 double-precision floats in the configured
// byte order.
func (r *Reader) ReadF64s(n int) ([]float64, error) {
	if n < 0 {
		return nil, argError("ReadF64s", "length must be non-negative")
	}
	out := make([]float64, n)
	const width = 8
	if n*width <= r.win.Capacity && r.isNativeOrder() {
		if _, err := r.win.Require(n * width); err != nil {
			return nil, err
		}
		order := r.byteOrder()
		buf := r.win.Buf
		pos := r.win.Position
		for i := range out {
			out[i] = math.Float64frombits(order.Uint64(buf[pos : pos+width]))
			pos += width
		}
		r.win.Position = pos
		r.trace("ReadF64s(%d) done (fast path)", n)
		return out, nil
	}
	for i := range out {
		v, err := r.ReadF64()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
