package kryo

import "io"

// maxSkipChunk bounds a single internal skip step, mirroring the
// original's chunking of long skips to the platform's maximum array
// size.
const maxSkipChunk = int64(1<<31 - 1)

var _ io.Reader = (*Reader)(nil)
var _ io.ByteReader = (*Reader)(nil)
var _ io.Closer = (*Reader)(nil)

// Read implements io.Reader: it fills up to len(p) bytes, returning the
// number actually read. It returns (0, io.EOF) only when the very first
// attempt finds the source already exhausted; a short, non-empty read
// returns a nil error so callers loop the usual io.Reader way.
func (r *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n, err := r.win.Optional(len(p))
	if err != nil {
		return 0, err
	}
	if n == -1 {
		return 0, io.EOF
	}
	copied := copy(p, r.win.Buf[r.win.Position:r.win.Position+n])
	r.win.Position += copied
	return copied, nil
}

// ReadByte implements io.ByteReader, returning io.EOF once the source
// is exhausted.
func (r *Reader) ReadByte() (byte, error) {
	n, err := r.win.Optional(1)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, io.EOF
	}
	b := r.win.Buf[r.win.Position]
	r.win.Position++
	return b, nil
}

// ReadExact fills dst entirely or fails with kerrors.Underflow. Unlike
// Read, a short source is always an error: this is the hard-error,
// non-InputStream-style read.
func (r *Reader) ReadExact(dst []byte) error {
	off := 0
	for off < len(dst) {
		chunk := len(dst) - off
		if chunk > r.win.Capacity {
			chunk = r.win.Capacity
		}
		if _, err := r.win.Require(chunk); err != nil {
			return err
		}
		n := copy(dst[off:off+chunk], r.win.Buf[r.win.Position:r.win.Position+chunk])
		r.win.Position += n
		off += n
	}
	return nil
}

// Skip advances the logical cursor by n bytes, discarding them via
// refill if they are not already resident. Long skips are performed in
// chunks no larger than maxSkipChunk.
func (r *Reader) Skip(n int64) error {
	if n < 0 {
		return argError("Skip", "n must be non-negative")
	}
	remaining := n
	for remaining > 0 {
		chunk := remaining
		if chunk > maxSkipChunk {
			chunk = maxSkipChunk
		}
		if err := r.skipChunk(int(chunk)); err != nil {
			return err
		}
		remaining -= chunk
	}
	return nil
}

func (r *Reader) skipChunk(n int) error {
	for n > 0 {
		avail := r.win.Limit - r.win.Position
		if avail == 0 {
			need := n
			if need > r.win.Capacity {
				need = r.win.Capacity
			}
			if _, err := r.win.Require(need); err != nil {
				return err
			}
			avail = r.win.Limit - r.win.Position
		}
		take := avail
		if take > n {
			take = n
		}
		r.win.Position += take
		n -= take
	}
	return nil
}
