package kryowrite

import (
	"bytes"
	"testing"
)

func TestWriteVarint32ByteCounts(t *testing.T) {
	cases := []struct {
		v    uint32
		want int
	}{
		{0, 1},
		{127, 1},
		{128, 2},
		{16383, 2},
		{16384, 3},
		{0x1FFFFF, 3},
		{0x0FFFFFFF, 4},
		{0xFFFFFFFF, 5},
	}
	for _, c := range cases {
		var buf bytes.Buffer
		w := New(&buf)
		if err := w.WriteVarint32(int32(c.v), true); err != nil {
			t.Fatalf("WriteVarint32(%d): %v", c.v, err)
		}
		if buf.Len() != c.want {
			t.Fatalf("WriteVarint32(%d) wrote %d bytes, want %d", c.v, buf.Len(), c.want)
		}
	}
}

func TestWriteVarint32NegativeOneIsOneByte(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)
	if err := w.WriteVarint32(-1, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), []byte{0x01}) {
		t.Fatalf("got %#v, want [0x01]", buf.Bytes())
	}
}

func TestWriteVarint64ByteCounts(t *testing.T) {
	cases := []struct {
		v    uint64
		want int
	}{
		{0x7F, 1},
		{0x7FFFFFFFFFFFFFFF, 9},
	}
	for _, c := range cases {
		var buf bytes.Buffer
		w := New(&buf)
		if err := w.WriteVarint64(int64(c.v), true); err != nil {
			t.Fatalf("WriteVarint64(%d): %v", c.v, err)
		}
		if buf.Len() != c.want {
			t.Fatalf("WriteVarint64(%d) wrote %d bytes, want %d", c.v, buf.Len(), c.want)
		}
	}
}

func TestWriteNullString(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)
	if err := w.WriteNullString(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), []byte{0x80}) {
		t.Fatalf("got %#v, want [0x80]", buf.Bytes())
	}
}

func TestWriteStringOneCharConsumesTwoBytes(t *testing.T) {
	// A 1-char ASCII string can't use ASCII mode (needs a marker plus a
	// distinct terminator byte), so it goes through the length+UTF-8
	// path: marker byte (charCount+1=2 -> 0x82) + one UTF-8 byte.
	var buf bytes.Buffer
	w := New(&buf)
	if err := w.WriteString("x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Len() != 2 {
		t.Fatalf("WriteString(\"x\") wrote %d bytes, want 2", buf.Len())
	}
	if buf.Bytes()[0] != 0x82 {
		t.Fatalf("marker byte = %#x, want 0x82", buf.Bytes()[0])
	}
}

func TestWriteStringTwoCharAsciiUsesAsciiMode(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)
	if err := w.WriteString("ab"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// ASCII mode: 'a' then 'b' with bit 7 set as the terminator.
	if !bytes.Equal(buf.Bytes(), []byte{'a', 'b' | 0x80}) {
		t.Fatalf("got %#v, want ['a', 'b'|0x80]", buf.Bytes())
	}
}

func TestWriteBoolAndFixedWidth(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)
	if err := w.WriteBool(true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.WriteI32(42); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []byte{1, 0x00, 0x00, 0x00, 0x2A}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("got %#v, want %#v", buf.Bytes(), want)
	}
}

func TestWriteLittleEndianOrder(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)
	w.SetOrder(LittleEndian)
	if err := w.WriteI32(42); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []byte{0x2A, 0x00, 0x00, 0x00}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("got %#v, want %#v", buf.Bytes(), want)
	}
}
