package kryo

import (
	"strings"
	"unicode/utf16"
)

// String decoding implements a two-mode codec, selected by the marker
// byte's bit 7: ASCII (bit 7 clear) runs until a byte with
// bit 7 set terminates it, or length-prefixed modified UTF-8 (bit 7
// set) whose character count is itself a varint-shaped value, but with
// bit 6 of the first byte (not bit 7) as that first byte's continuation
// flag, freeing bit 7 for the ASCII/length mode marker.
//
// ReadString and ReadStringBuilder report ok=false with a nil error for
// a decoded null string; ok=true and an empty value for an empty
// string.

// ReadString decodes a string. ok is false when the wire value is null.
func (r *Reader) ReadString() (string, bool, error) {
	avail, err := r.win.Require(1)
	if err != nil {
		return "", false, err
	}
	b := r.win.Buf[r.win.Position]
	r.win.Position++
	if b&0x80 == 0 {
		s, err := r.readAscii()
		if err != nil {
			return "", false, err
		}
		r.trace("ReadString -> %q (ascii)", s)
		return s, true, nil
	}

	var charCount int
	if avail >= 5 {
		charCount = r.readUTF8Count(int(b))
	} else {
		charCount, err = r.readUTF8CountSlow(int(b))
		if err != nil {
			return "", false, err
		}
	}
	switch charCount {
	case 0:
		r.trace("ReadString -> null")
		return "", false, nil
	case 1:
		r.trace("ReadString -> %q (empty)", "")
		return "", true, nil
	}
	charCount--
	r.ensureChars(charCount)
	if err := r.readUTF8Chars(charCount); err != nil {
		return "", false, err
	}
	s := utf16ToString(r.chars[:charCount])
	r.trace("ReadString -> %q (utf8)", s)
	return s, true, nil
}

// ReadStringBuilder decodes a string into a mutable *strings.Builder,
// preserving the same null/empty semantics as ReadString.
func (r *Reader) ReadStringBuilder() (*strings.Builder, bool, error) {
	avail, err := r.win.Require(1)
	if err != nil {
		return nil, false, err
	}
	b := r.win.Buf[r.win.Position]
	r.win.Position++
	if b&0x80 == 0 {
		s, err := r.readAscii()
		if err != nil {
			return nil, false, err
		}
		sb := &strings.Builder{}
		sb.WriteString(s)
		return sb, true, nil
	}

	var charCount int
	if avail >= 5 {
		charCount = r.readUTF8Count(int(b))
	} else {
		charCount, err = r.readUTF8CountSlow(int(b))
		if err != nil {
			return nil, false, err
		}
	}
	switch charCount {
	case 0:
		return nil, false, nil
	case 1:
		return &strings.Builder{}, true, nil
	}
	charCount--
	r.ensureChars(charCount)
	if err := r.readUTF8Chars(charCount); err != nil {
		return nil, false, err
	}
	sb := &strings.Builder{}
	sb.Grow(charCount)
	sb.WriteString(utf16ToString(r.chars[:charCount]))
	return sb, true, nil
}

// readAscii decodes the ASCII-mode body once the marker byte (which is
// itself the first character) has already been consumed. The fast path
// scans forward for a terminator within the currently resident window;
// finding one, it masks the terminator bit off in place, copies the
// run out as a string, and restores the bit, so the buffer is left
// exactly as it was found. Running off the end of the window without a
// terminator falls back to readAsciiSlow.
func (r *Reader) readAscii() (string, error) {
	start := r.win.Position - 1
	end := r.win.Position
	limit := r.win.Limit
	for {
		if end == limit {
			return r.readAsciiSlow(start)
		}
		b := r.win.Buf[end]
		end++
		if b&0x80 != 0 {
			break
		}
	}
	last := end - 1
	r.win.Buf[last] &= 0x7F
	s := string(r.win.Buf[start:end])
	r.win.Buf[last] |= 0x80
	r.win.Position = end
	return s, nil
}

// readAsciiSlow handles an ASCII run that spans a refill: the bytes
// already resident (none of which can be a terminator, or the fast
// path would have found it) are copied into chars verbatim, then
// further bytes are pulled one at a time via Require(1) until one with
// bit 7 set terminates the string.
func (r *Reader) readAsciiSlow(start int) (string, error) {
	limit := r.win.Limit
	charCount := limit - start
	r.ensureChars(charCount)
	for i, p := 0, start; p < limit; i, p = i+1, p+1 {
		r.chars[i] = uint16(r.win.Buf[p])
	}
	r.win.Position = limit

	for {
		if _, err := r.win.Require(1); err != nil {
			return "", err
		}
		b := r.win.Buf[r.win.Position]
		r.win.Position++
		if charCount == len(r.chars) {
			r.growChars(charCount * 2)
		}
		if b&0x80 != 0 {
			r.chars[charCount] = uint16(b & 0x7F)
			charCount++
			break
		}
		r.chars[charCount] = uint16(b)
		charCount++
	}
	return utf16ToString(r.chars[:charCount]), nil
}

// readUTF8Count decodes the char-count+1 varint using bit 6 of the
// first byte (already consumed and passed as b) as that byte's
// continuation flag, and bit 7 of subsequent bytes as theirs. Callers
// must already know at least 5 bytes are resident (Require(1) having
// reported so before the marker byte was read).
func (r *Reader) readUTF8Count(b int) int {
	result := b & 0x3F
	if b&0x40 != 0 {
		buf := r.win.Buf
		p := r.win.Position
		bb := int(buf[p])
		p++
		result |= (bb & 0x7F) << 6
		if bb&0x80 != 0 {
			bb = int(buf[p])
			p++
			result |= (bb & 0x7F) << 13
			if bb&0x80 != 0 {
				bb = int(buf[p])
				p++
				result |= (bb & 0x7F) << 20
				if bb&0x80 != 0 {
					bb = int(buf[p])
					p++
					result |= (bb & 0x7F) << 27
				}
			}
		}
		r.win.Position = p
	}
	return result
}

func (r *Reader) readUTF8CountSlow(b int) (int, error) {
	result := b & 0x3F
	if b&0x40 != 0 {
		if _, err := r.win.Require(1); err != nil {
			return 0, err
		}
		bb := int(r.win.Buf[r.win.Position])
		r.win.Position++
		result |= (bb & 0x7F) << 6
		if bb&0x80 != 0 {
			if _, err := r.win.Require(1); err != nil {
				return 0, err
			}
			bb = int(r.win.Buf[r.win.Position])
			r.win.Position++
			result |= (bb & 0x7F) << 13
			if bb&0x80 != 0 {
				if _, err := r.win.Require(1); err != nil {
					return 0, err
				}
				bb = int(r.win.Buf[r.win.Position])
				r.win.Position++
				result |= (bb & 0x7F) << 20
				if bb&0x80 != 0 {
					if _, err := r.win.Require(1); err != nil {
						return 0, err
					}
					bb = int(r.win.Buf[r.win.Position])
					r.win.Position++
					result |= (bb & 0x7F) << 27
				}
			}
		}
	}
	return result, nil
}

// readUTF8Chars fills chars[0:charCount] with the modified-UTF-8 body.
// The fast pass consumes plain 7-bit ASCII bytes directly out of the
// resident window; the first byte with bit 7 set stops it and hands the
// remainder to readUTF8CharsSlow, which decodes the full grammar
// (1/2/3-byte sequences) a character at a time, refilling as needed.
func (r *Reader) readUTF8Chars(charCount int) error {
	avail, err := r.win.Require(1)
	if err != nil {
		return err
	}
	count := avail
	if count > charCount {
		count = charCount
	}
	buf := r.win.Buf
	p := r.win.Position
	charIndex := 0
	for charIndex < count {
		b := buf[p]
		p++
		if b&0x80 != 0 {
			p--
			break
		}
		r.chars[charIndex] = uint16(b)
		charIndex++
	}
	r.win.Position = p
	if charIndex < charCount {
		return r.readUTF8CharsSlow(charCount, charIndex)
	}
	return nil
}

func (r *Reader) readUTF8CharsSlow(charCount, charIndex int) error {
	for charIndex < charCount {
		if r.win.Position == r.win.Limit {
			if _, err := r.win.Require(1); err != nil {
				return err
			}
		}
		b := int(r.win.Buf[r.win.Position])
		r.win.Position++
		switch b >> 4 {
		case 0, 1, 2, 3, 4, 5, 6, 7:
			r.chars[charIndex] = uint16(b)
		case 12, 13:
			if r.win.Position == r.win.Limit {
				if _, err := r.win.Require(1); err != nil {
					return err
				}
			}
			b2 := int(r.win.Buf[r.win.Position])
			r.win.Position++
			r.chars[charIndex] = uint16((b&0x1F)<<6 | b2&0x3F)
		case 14:
			if _, err := r.win.Require(2); err != nil {
				return err
			}
			b2 := int(r.win.Buf[r.win.Position])
			b3 := int(r.win.Buf[r.win.Position+1])
			r.win.Position += 2
			r.chars[charIndex] = uint16((b&0x0F)<<12 | (b2&0x3F)<<6 | b3&0x3F)
		default:
			// Reserved lead nibble (8, 9, 10, 11, 15): bug-compatible with
			// the original, which never assigns chars[charIndex] here and
			// so leaves whatever was already in the scratch buffer.
		}
		charIndex++
	}
	return nil
}

func (r *Reader) ensureChars(n int) {
	if len(r.chars) < n {
		size := len(r.chars) * 2
		if size < n {
			size = n
		}
		r.chars = make([]uint16, size)
	}
}

func (r *Reader) growChars(n int) {
	next := make([]uint16, n)
	copy(next, r.chars)
	r.chars = next
}

func utf16ToString(chars []uint16) string {
	return string(utf16.Decode(chars))
}
