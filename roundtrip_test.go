package kryo_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wepoiuopijsdfnxcvl/kryo"
	"github.com/wepoiuopijsdfnxcvl/kryo/kryowrite"
)

func TestRoundTripPrimitives(t *testing.T) {
	var buf bytes.Buffer
	w := kryowrite.New(&buf)
	require.NoError(t, w.WriteBool(true))
	require.NoError(t, w.WriteI8(-5))
	require.NoError(t, w.WriteU8(250))
	require.NoError(t, w.WriteI16(-1000))
	require.NoError(t, w.WriteU16(60000))
	require.NoError(t, w.WriteI32(-70000))
	require.NoError(t, w.WriteU32(4000000000))
	require.NoError(t, w.WriteI64(-5000000000))
	require.NoError(t, w.WriteU64(18000000000000000000))
	require.NoError(t, w.WriteF32(3.5))
	require.NoError(t, w.WriteF64(-2.718281828))

	r := kryo.NewReader(buf.Bytes())
	b, err := r.ReadBool()
	require.NoError(t, err)
	require.True(t, b)

	i8, err := r.ReadI8()
	require.NoError(t, err)
	require.Equal(t, int8(-5), i8)

	u8, err := r.ReadU8()
	require.NoError(t, err)
	require.Equal(t, uint8(250), u8)

	i16, err := r.ReadI16()
	require.NoError(t, err)
	require.Equal(t, int16(-1000), i16)

	u16, err := r.ReadU16()
	require.NoError(t, err)
	require.Equal(t, uint16(60000), u16)

	i32, err := r.ReadI32()
	require.NoError(t, err)
	require.Equal(t, int32(-70000), i32)

	u32, err := r.ReadU32()
	require.NoError(t, err)
	require.Equal(t, uint32(4000000000), u32)

	i64, err := r.ReadI64()
	require.NoError(t, err)
	require.Equal(t, int64(-5000000000), i64)

	u64, err := r.ReadU64()
	require.NoError(t, err)
	require.Equal(t, uint64(18000000000000000000), u64)

	f32, err := r.ReadF32()
	require.NoError(t, err)
	require.Equal(t, float32(3.5), f32)

	f64, err := r.ReadF64()
	require.NoError(t, err)
	require.Equal(t, -2.718281828, f64)
}

func TestRoundTripVarint32ZigZag(t *testing.T) {
	values := []int32{0, 1, -1, 63, -64, 1000000, -1000000, math.MaxInt32, math.MinInt32}
	var buf bytes.Buffer
	w := kryowrite.New(&buf)
	for _, v := range values {
		require.NoError(t, w.WriteVarint32(v, false))
	}

	r := kryo.NewReader(buf.Bytes())
	for _, want := range values {
		got, err := r.ReadVarint32(false)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestRoundTripVarint32OptimizePositive(t *testing.T) {
	values := []uint32{0, 1, 127, 128, 16384, math.MaxUint32}
	var buf bytes.Buffer
	w := kryowrite.New(&buf)
	for _, v := range values {
		require.NoError(t, w.WriteVarint32(int32(v), true))
	}

	r := kryo.NewReader(buf.Bytes())
	for _, want := range values {
		got, err := r.ReadVarint32(true)
		require.NoError(t, err)
		require.Equal(t, want, uint32(got))
	}
}

func TestRoundTripVarint64NinthByte(t *testing.T) {
	values := []uint64{0, 1, math.MaxUint64, uint64(1) << 63, uint64(1)<<56 + 3}
	var buf bytes.Buffer
	w := kryowrite.New(&buf)
	for _, v := range values {
		require.NoError(t, w.WriteVarint64(int64(v), true))
	}

	r := kryo.NewReader(buf.Bytes())
	for _, want := range values {
		got, err := r.ReadVarint64(true)
		require.NoError(t, err)
		require.Equal(t, want, uint64(got))
	}
}

func TestRoundTripStrings(t *testing.T) {
	values := []string{"", "hi", "a longer ascii string with many characters in it", "é", "☃", "x"}
	var buf bytes.Buffer
	w := kryowrite.New(&buf)
	for _, s := range values {
		require.NoError(t, w.WriteString(s))
	}
	require.NoError(t, w.WriteNullString())

	r := kryo.NewReader(buf.Bytes())
	for _, want := range values {
		got, ok, err := r.ReadString()
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, want, got)
	}
	_, ok, err := r.ReadString()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRoundTripStringAcrossRefill(t *testing.T) {
	values := []string{"this string is long enough to span a refill boundary", "short", "☃☃☃"}
	var buf bytes.Buffer
	w := kryowrite.New(&buf)
	for _, s := range values {
		require.NoError(t, w.WriteString(s))
	}

	r := kryo.NewReaderSize(bytes.NewReader(buf.Bytes()), 8)
	for _, want := range values {
		got, ok, err := r.ReadString()
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, want, got)
	}
}

func TestRoundTripBulkArrays(t *testing.T) {
	i16s := []int16{1, -2, 32000, -32000, 0}
	i32s := []int32{1, -2, 1 << 20, math.MinInt32, math.MaxInt32}
	f64s := []float64{1.5, -2.25, 0, 1e100}

	var buf bytes.Buffer
	w := kryowrite.New(&buf)
	for _, v := range i16s {
		require.NoError(t, w.WriteI16(v))
	}
	for _, v := range i32s {
		require.NoError(t, w.WriteI32(v))
	}
	for _, v := range f64s {
		require.NoError(t, w.WriteF64(v))
	}

	r := kryo.NewReader(buf.Bytes())
	gotI16, err := r.ReadI16s(len(i16s))
	require.NoError(t, err)
	require.Equal(t, i16s, gotI16)

	gotI32, err := r.ReadI32s(len(i32s))
	require.NoError(t, err)
	require.Equal(t, i32s, gotI32)

	gotF64, err := r.ReadF64s(len(f64s))
	require.NoError(t, err)
	require.Equal(t, f64s, gotF64)
}

func TestRoundTripLittleEndian(t *testing.T) {
	var buf bytes.Buffer
	w := kryowrite.New(&buf)
	w.SetOrder(kryowrite.LittleEndian)
	require.NoError(t, w.WriteI32(-12345))

	r := kryo.NewReader(buf.Bytes())
	r.SetOrder(kryo.LittleEndian)
	got, err := r.ReadI32()
	require.NoError(t, err)
	require.Equal(t, int32(-12345), got)
}

func TestByteOrderMismatchProducesWrongValue(t *testing.T) {
	// A negative test pinning the documented failure mode: decoding with
	// the wrong byte order does not error, it silently produces a
	// different value.
	var buf bytes.Buffer
	w := kryowrite.New(&buf)
	require.NoError(t, w.WriteI32(1))

	r := kryo.NewReader(buf.Bytes())
	r.SetOrder(kryo.LittleEndian)
	got, err := r.ReadI32()
	require.NoError(t, err)
	require.NotEqual(t, int32(1), got)
}
