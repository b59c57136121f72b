package kryo

import (
	"encoding/binary"
	"math"

	"github.com/wepoiuopijsdfnxcvl/kryo/kerrors"
)

func (r *Reader) byteOrder() binary.ByteOrder {
	if r.order == LittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// take returns the next n resident bytes, advancing Position. On
// underflow or oversize it re-attributes the error to op so callers see
// which primitive failed rather than the generic "require" that
// produced it.
func (r *Reader) take(n int, op string) ([]byte, error) {
	if _, err := r.win.Require(n); err != nil {
		return nil, kerrors.WithOp(err, op)
	}
	pos := r.win.Position
	r.win.Position += n
	return r.win.Buf[pos : pos+n], nil
}

// ReadBool reads a single byte: 1 is true, any other value is false.
func (r *Reader) ReadBool() (bool, error) {
	b, err := r.take(1, "ReadBool")
	if err != nil {
		return false, err
	}
	v := b[0] == 1
	r.trace("ReadBool -> %v", v)
	return v, nil
}

// ReadI8 reads a signed 8-bit integer.
func (r *Reader) ReadI8() (int8, error) {
	b, err := r.take(1, "ReadI8")
	if err != nil {
		return 0, err
	}
	v := int8(b[0])
	r.trace("ReadI8 -> %d", v)
	return v, nil
}

// ReadU8 reads an unsigned 8-bit integer.
func (r *Reader) ReadU8() (uint8, error) {
	b, err := r.take(1, "ReadU8")
	if err != nil {
		return 0, err
	}
	r.trace("ReadU8 -> %d", b[0])
	return b[0], nil
}

// ReadI16 reads a signed 16-bit integer in the configured byte order.
func (r *Reader) ReadI16() (int16, error) {
	b, err := r.take(2, "ReadI16")
	if err != nil {
		return 0, err
	}
	v := int16(r.byteOrder().Uint16(b))
	r.trace("ReadI16 -> %d", v)
	return v, nil
}

// ReadU16 reads an unsigned 16-bit integer in the configured byte
// order. The original Java readShortUnsigned returns the raw signed
// short without masking to the unsigned range; this entry point is a
// deliberate deviation that returns a true uint16. ReadI16 above is the
// signed counterpart.
func (r *Reader) ReadU16() (uint16, error) {
	b, err := r.take(2, "ReadU16")
	if err != nil {
		return 0, err
	}
	v := r.byteOrder().Uint16(b)
	r.trace("ReadU16 -> %d", v)
	return v, nil
}

// ReadChar reads a 16-bit UTF-16 code unit in the configured byte
// order.
func (r *Reader) ReadChar() (uint16, error) {
	b, err := r.take(2, "ReadChar")
	if err != nil {
		return 0, err
	}
	v := r.byteOrder().Uint16(b)
	r.trace("ReadChar -> %d", v)
	return v, nil
}

// ReadI32 reads a signed 32-bit integer in the configured byte order.
func (r *Reader) ReadI32() (int32, error) {
	b, err := r.take(4, "ReadI32")
	if err != nil {
		return 0, err
	}
	v := int32(r.byteOrder().Uint32(b))
	r.trace("ReadI32 -> %d", v)
	return v, nil
}

// ReadU32 reads an unsigned 32-bit integer in the configured byte
// order.
func (r *Reader) ReadU32() (uint32, error) {
	b, err := r.take(4, "ReadU32")
	if err != nil {
		return 0, err
	}
	v := r.byteOrder().Uint32(b)
	r.trace("ReadU32 -> %d", v)
	return v, nil
}

// ReadF32 reads an IEEE 754 single-precision float in the configured
// byte order.
func (r *Reader) ReadF32() (float32, error) {
	b, err := r.take(4, "ReadF32")
	if err != nil {
		return 0, err
	}
	v := math.Float32frombits(r.byteOrder().Uint32(b))
	r.trace("ReadF32 -> %v", v)
	return v, nil
}

// ReadI64 reads a signed 64-bit integer in the configured byte order.
func (r *Reader) ReadI64() (int64, error) {
	b, err := r.take(8, "ReadI64")
	if err != nil {
		return 0, err
	}
	v := int64(r.byteOrder().Uint64(b))
	r.trace("ReadI64 -> %d", v)
	return v, nil
}

// ReadU64 reads an unsigned 64-bit integer in the configured byte
// order.
func (r *Reader) ReadU64() (uint64, error) {
	b, err := r.take(8, "ReadU64")
	if err != nil {
		return 0, err
	}
	v := r.byteOrder().Uint64(b)
	r.trace("ReadU64 -> %d", v)
	return v, nil
}

// ReadF64 reads an IEEE 754 double-precision float in the configured
// byte order.
func (r *Reader) ReadF64() (float64, error) {
	b, err := r.take(8, "ReadF64")
	if err != nil {
		return 0, err
	}
	v := math.Float64frombits(r.byteOrder().Uint64(b))
	r.trace("ReadF64 -> %v", v)
	return v, nil
}

// ReadBytes reads n raw bytes. The returned slice is a freshly
// allocated copy; it does not alias the Reader's internal buffer.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, argError("ReadBytes", "length must be non-negative")
	}
	out := make([]byte, n)
	if err := r.ReadExact(out); err != nil {
		return nil, err
	}
	return out, nil
}
