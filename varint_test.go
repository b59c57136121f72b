package kryo

import (
	"io"
	"testing"
)

func varintBytes(v uint32) []byte {
	var out []byte
	for {
		b := byte(v & 0x7F)
		v >>= 7
		if v != 0 {
			out = append(out, b|0x80)
		} else {
			out = append(out, b)
			break
		}
	}
	return out
}

func TestReadVarint32FastPath(t *testing.T) {
	// 300 encodes as 2 bytes; pad with trailing bytes so residency stays
	// >= 5 and the fast path is taken.
	buf := append(varintBytes(300), 0, 0, 0, 0, 0)
	r := NewReader(buf)
	v, err := r.ReadVarint32(true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 300 {
		t.Fatalf("got %d, want 300", v)
	}
}

func TestReadVarint32SlowPath(t *testing.T) {
	// Source trickles one byte per Read, forcing the slow path (residency
	// never reaches 5 when Require(1) is probed).
	buf := varintBytes(300)
	r := NewReaderSize(&oneByteReader{data: buf}, 16)
	v, err := r.ReadVarint32(true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 300 {
		t.Fatalf("got %d, want 300", v)
	}
}

func TestReadVarint32FiveByteBoundary(t *testing.T) {
	// math.MaxUint32 needs the full 5 bytes.
	buf := append(varintBytes(0xFFFFFFFF), 0)
	r := NewReader(buf)
	v, err := r.ReadVarint32(true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if uint32(v) != 0xFFFFFFFF {
		t.Fatalf("got %d, want -1 as uint32 bits", v)
	}
}

func TestReadVarint32ZigZag(t *testing.T) {
	cases := []int32{0, -1, 1, -2, 2, -64, 63}
	for _, want := range cases {
		buf := append(writeZigZag32(want), 0, 0, 0, 0, 0)
		r := NewReader(buf)
		got, err := r.ReadVarint32(false)
		if err != nil {
			t.Fatalf("unexpected error for %d: %v", want, err)
		}
		if got != want {
			t.Fatalf("got %d, want %d", got, want)
		}
	}
}

func writeZigZag32(v int32) []byte {
	u := uint32(v<<1) ^ uint32(v>>31)
	return varintBytes(u)
}

func TestReadVarint64NineByteException(t *testing.T) {
	// A value whose top byte needs bit 63 set triggers the 9th-byte,
	// no-continuation-bit path.
	want := uint64(1) << 63
	buf := []byte{
		0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, // 8 continuation bytes, all-zero payload
		0x80, // 9th byte: full 8 bits, bit 63 set -> 0x80 << 56
	}
	r := NewReader(buf)
	v, err := r.ReadVarint64(true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if uint64(v) != want {
		t.Fatalf("got %#x, want %#x", uint64(v), want)
	}
}

func TestReadVarint64SlowPathNineByteException(t *testing.T) {
	buf := []byte{
		0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80,
		0x80,
	}
	r := NewReaderSize(&oneByteReader{data: buf}, 16)
	v, err := r.ReadVarint64(true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if uint64(v) != uint64(1)<<63 {
		t.Fatalf("got %#x, want %#x", uint64(v), uint64(1)<<63)
	}
}

func TestReadVarint32Underflow(t *testing.T) {
	// Two continuation bytes and nothing else: the varint is never
	// terminated.
	buf := []byte{0x80, 0x80}
	r := NewReader(buf)
	_, err := r.ReadVarint32(true)
	if err == nil {
		t.Fatalf("expected an error for a truncated varint")
	}
}

func TestCanReadVarint32(t *testing.T) {
	ok, err := NewReader(varintBytes(300)).CanReadVarint32()
	if err != nil || !ok {
		t.Fatalf("CanReadVarint32() = %v, %v, want true, nil", ok, err)
	}

	ok, err = NewReader([]byte{0x80, 0x80}).CanReadVarint32()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("CanReadVarint32() on a truncated varint should be false")
	}
}

func TestCanReadVarint64(t *testing.T) {
	ok, err := NewReader([]byte{5}).CanReadVarint64()
	if err != nil || !ok {
		t.Fatalf("CanReadVarint64() = %v, %v, want true, nil", ok, err)
	}
}

// oneByteReader serves at most one byte per Read call, forcing callers
// that probe residency (Require/Optional) down their slow path.
type oneByteReader struct {
	data []byte
	pos  int
}

func (o *oneByteReader) Read(p []byte) (int, error) {
	if o.pos >= len(o.data) {
		return 0, io.EOF
	}
	p[0] = o.data[o.pos]
	o.pos++
	return 1, nil
}

var _ io.Reader = (*oneByteReader)(nil)
