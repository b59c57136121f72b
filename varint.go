package kryo

// Varint32/64 implement a variable-length integer codec: 1..5 bytes for
// 32-bit values, 1..9 bytes for 64-bit values, MSB of each byte (except
// a 64-bit value's 9th byte) is a continuation flag, payload bits are
// little-endian by 7-bit group. Each width keeps
// a separate fast path (taken when enough bytes are already known
// resident to skip a residency check per byte) and slow path (which
// calls Require(1) before every continuation byte); both must produce
// bit-identical results, so the duplication here is deliberate rather
// than something to fold into a shared loop.

// ReadVarint32 reads a 1..5 byte varint. When optimizePositive is
// false, the assembled value is zig-zag decoded.
func (r *Reader) ReadVarint32(optimizePositive bool) (int32, error) {
	avail, err := r.win.Require(1)
	if err != nil {
		return 0, err
	}
	var v int32
	if avail >= 5 {
		v = r.readVarint32Fast(optimizePositive)
	} else {
		v, err = r.readVarint32Slow(optimizePositive)
		if err != nil {
			return 0, err
		}
	}
	r.trace("ReadVarint32(optimizePositive=%v) -> %d", optimizePositive, v)
	return v, nil
}

func (r *Reader) readVarint32Fast(optimizePositive bool) int32 {
	buf := r.win.Buf
	p := r.win.Position
	b := buf[p]
	p++
	result := uint32(b & 0x7F)
	if b&0x80 != 0 {
		b = buf[p]
		p++
		result |= uint32(b&0x7F) << 7
		if b&0x80 != 0 {
			b = buf[p]
			p++
			result |= uint32(b&0x7F) << 14
			if b&0x80 != 0 {
				b = buf[p]
				p++
				result |= uint32(b&0x7F) << 21
				if b&0x80 != 0 {
					b = buf[p]
					p++
					result |= uint32(b&0x7F) << 28
				}
			}
		}
	}
	r.win.Position = p
	if optimizePositive {
		return int32(result)
	}
	return zigzagDecode32(result)
}

func (r *Reader) readVarint32Slow(optimizePositive bool) (int32, error) {
	// The caller already called Require(1), so the buffer is
	// guaranteed to have at least 1 byte.
	b := r.win.Buf[r.win.Position]
	r.win.Position++
	result := uint32(b & 0x7F)
	if b&0x80 != 0 {
		if _, err := r.win.Require(1); err != nil {
			return 0, err
		}
		b = r.win.Buf[r.win.Position]
		r.win.Position++
		result |= uint32(b&0x7F) << 7
		if b&0x80 != 0 {
			if _, err := r.win.Require(1); err != nil {
				return 0, err
			}
			b = r.win.Buf[r.win.Position]
			r.win.Position++
			result |= uint32(b&0x7F) << 14
			if b&0x80 != 0 {
				if _, err := r.win.Require(1); err != nil {
					return 0, err
				}
				b = r.win.Buf[r.win.Position]
				r.win.Position++
				result |= uint32(b&0x7F) << 21
				if b&0x80 != 0 {
					if _, err := r.win.Require(1); err != nil {
						return 0, err
					}
					b = r.win.Buf[r.win.Position]
					r.win.Position++
					result |= uint32(b&0x7F) << 28
				}
			}
		}
	}
	if optimizePositive {
		return int32(result), nil
	}
	return zigzagDecode32(result), nil
}

// ReadVarint64 reads a 1..9 byte varint. The 9th byte (only reachable
// once 8 continuation bytes have been emitted) has no continuation bit:
// all 8 bits are payload, shifted left by 56. When optimizePositive is
// false the assembled value is zig-zag decoded.
func (r *Reader) ReadVarint64(optimizePositive bool) (int64, error) {
	avail, err := r.win.Require(1)
	if err != nil {
		return 0, err
	}
	var v int64
	if avail >= 9 {
		v = r.readVarint64Fast(optimizePositive)
	} else {
		v, err = r.readVarint64Slow(optimizePositive)
		if err != nil {
			return 0, err
		}
	}
	r.trace("ReadVarint64(optimizePositive=%v) -> %d", optimizePositive, v)
	return v, nil
}

func (r *Reader) readVarint64Fast(optimizePositive bool) int64 {
	buf := r.win.Buf
	p := r.win.Position
	b := buf[p]
	p++
	result := uint64(b & 0x7F)
	if b&0x80 != 0 {
		b = buf[p]
		p++
		result |= uint64(b&0x7F) << 7
		if b&0x80 != 0 {
			b = buf[p]
			p++
			result |= uint64(b&0x7F) << 14
			if b&0x80 != 0 {
				b = buf[p]
				p++
				result |= uint64(b&0x7F) << 21
				if b&0x80 != 0 {
					b = buf[p]
					p++
					result |= uint64(b&0x7F) << 28
					if b&0x80 != 0 {
						b = buf[p]
						p++
						result |= uint64(b&0x7F) << 35
						if b&0x80 != 0 {
							b = buf[p]
							p++
							result |= uint64(b&0x7F) << 42
							if b&0x80 != 0 {
								b = buf[p]
								p++
								result |= uint64(b&0x7F) << 49
								if b&0x80 != 0 {
									b = buf[p]
									p++
									result |= uint64(b) << 56
								}
							}
						}
					}
				}
			}
		}
	}
	r.win.Position = p
	if optimizePositive {
		return int64(result)
	}
	return zigzagDecode64(result)
}

func (r *Reader) readVarint64Slow(optimizePositive bool) (int64, error) {
	b := r.win.Buf[r.win.Position]
	r.win.Position++
	result := uint64(b & 0x7F)
	if b&0x80 != 0 {
		if _, err := r.win.Require(1); err != nil {
			return 0, err
		}
		b = r.win.Buf[r.win.Position]
		r.win.Position++
		result |= uint64(b&0x7F) << 7
		if b&0x80 != 0 {
			if _, err := r.win.Require(1); err != nil {
				return 0, err
			}
			b = r.win.Buf[r.win.Position]
			r.win.Position++
			result |= uint64(b&0x7F) << 14
			if b&0x80 != 0 {
				if _, err := r.win.Require(1); err != nil {
					return 0, err
				}
				b = r.win.Buf[r.win.Position]
				r.win.Position++
				result |= uint64(b&0x7F) << 21
				if b&0x80 != 0 {
					if _, err := r.win.Require(1); err != nil {
						return 0, err
					}
					b = r.win.Buf[r.win.Position]
					r.win.Position++
					result |= uint64(b&0x7F) << 28
					if b&0x80 != 0 {
						if _, err := r.win.Require(1); err != nil {
							return 0, err
						}
						b = r.win.Buf[r.win.Position]
						r.win.Position++
						result |= uint64(b&0x7F) << 35
						if b&0x80 != 0 {
							if _, err := r.win.Require(1); err != nil {
								return 0, err
							}
							b = r.win.Buf[r.win.Position]
							r.win.Position++
							result |= uint64(b&0x7F) << 42
							if b&0x80 != 0 {
								if _, err := r.win.Require(1); err != nil {
									return 0, err
								}
								b = r.win.Buf[r.win.Position]
								r.win.Position++
								result |= uint64(b&0x7F) << 49
								if b&0x80 != 0 {
									if _, err := r.win.Require(1); err != nil {
										return 0, err
									}
									b = r.win.Buf[r.win.Position]
									r.win.Position++
									result |= uint64(b) << 56
								}
							}
						}
					}
				}
			}
		}
	}
	if optimizePositive {
		return int64(result), nil
	}
	return zigzagDecode64(result), nil
}

func zigzagDecode32(u uint32) int32 {
	return int32(u>>1) ^ -int32(u&1)
}

func zigzagDecode64(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}

// CanReadVarint32 reports whether an immediately following
// ReadVarint32 would succeed without further source data.
func (r *Reader) CanReadVarint32() (bool, error) {
	return r.canReadVarint(5)
}

// CanReadVarint64 reports whether an immediately following
// ReadVarint64 would succeed without further source data.
func (r *Reader) CanReadVarint64() (bool, error) {
	return r.canReadVarint(9)
}

// canReadVarint implements the shared residency predicate: if maxBytes
// are already resident, true. Otherwise probe with Optional(5)
// and, if anything came back, walk the resident bytes looking for a
// terminator (a byte with bit 7 clear). Finding one, or reaching
// maxBytes-1 probed bytes without running out of residency, means true;
// running out of residency mid-continuation means false.
func (r *Reader) canReadVarint(maxBytes int) (bool, error) {
	if r.win.Limit-r.win.Position >= maxBytes {
		return true, nil
	}
	n, err := r.win.Optional(5)
	if err != nil {
		return false, err
	}
	if n <= 0 {
		return false, nil
	}
	p := r.win.Position
	limit := r.win.Limit
	for i := 0; i < maxBytes-1; i++ {
		b := r.win.Buf[p]
		p++
		if b&0x80 == 0 {
			return true, nil
		}
		if p == limit {
			return false, nil
		}
	}
	return true, nil
}
