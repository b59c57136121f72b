// Package window implements the sliding-window buffer at the bottom of
// the kryo decoder: a fixed-capacity byte region with compaction and
// short-read handling, refilled on demand from a Filler.
package window

import (
	"io"

	"github.com/wepoiuopijsdfnxcvl/kryo/kerrors"
)

// Filler is the refill source a Window pulls from when the caller asks
// for more bytes than are currently resident. It mirrors io.Reader's
// contract (n bytes read, io.EOF once exhausted) rather than the
// original Java Input.fill's -1-sentinel convention, since that is the
// idiomatic Go shape for the same strategy-object role.
type Filler interface {
	Fill(dst []byte) (int, error)
}

// FillerFunc adapts a plain function to Filler.
type FillerFunc func(dst []byte) (int, error)

func (f FillerFunc) Fill(dst []byte) (int, error) { return f(dst) }

// readerFiller adapts an io.Reader to Filler. A plain io.Reader already
// satisfies this contract byte for byte, so this type exists only to
// give callers a named constructor.
type readerFiller struct {
	r io.Reader
}

// NewReaderFiller wraps an io.Reader as a Filler.
func NewReaderFiller(r io.Reader) Filler {
	return &readerFiller{r: r}
}

func (f *readerFiller) Fill(dst []byte) (int, error) {
	return f.r.Read(dst)
}

// Window is a fixed-capacity byte region with position/limit/capacity
// indices and a monotonically growing total of bytes that have scrolled
// out through compaction. It is the sole owner of its buffer and is not
// safe for concurrent use.
type Window struct {
	Buf      []byte
	Position int
	Limit    int
	Capacity int
	Total    int64

	filler Filler
}

// New wraps a pre-filled byte slice. The window has no filler: once the
// slice is exhausted, Require/Optional report EOF.
func New(buf []byte) *Window {
	return &Window{
		Buf:      buf,
		Position: 0,
		Limit:    len(buf),
		Capacity: len(buf),
	}
}

// NewWithCapacity allocates an empty buffer of the given capacity backed
// by filler.
func NewWithCapacity(capacity int, filler Filler) *Window {
	return &Window{
		Buf:      make([]byte, capacity),
		Position: 0,
		Limit:    0,
		Capacity: capacity,
		filler:   filler,
	}
}

// SetBuffer rebinds the window to a pre-filled byte slice, resetting
// position, limit, capacity and zeroing total, per the reader rebinding
// contract.
func (w *Window) SetBuffer(buf []byte) {
	w.Buf = buf
	w.Position = 0
	w.Limit = len(buf)
	w.Capacity = len(buf)
	w.Total = 0
}

// SetFiller rebinds the refill source. Per the reader rebinding
// contract this forces the next read to refill: Limit is reset to 0.
func (w *Window) SetFiller(filler Filler) {
	w.filler = filler
	w.Position = 0
	w.Limit = 0
}

// Remaining reports the current residency: Limit - Position.
func (w *Window) Remaining() int {
	return w.Limit - w.Position
}

// Rewind resets Position to 0, keeping Limit and the buffer contents as
// they are; intended for in-memory replay of a fully loaded buffer.
func (w *Window) Rewind() {
	w.Position = 0
}

// TotalBytesRead returns Total + Position: the absolute number of bytes
// consumed so far.
func (w *Window) TotalBytesRead() int64 {
	return w.Total + int64(w.Position)
}

func (w *Window) fillInto(dst []byte) (int, error) {
	if w.filler == nil {
		return 0, io.EOF
	}
	return w.filler.Fill(dst)
}

// Require ensures at least n bytes are resident starting at Position,
// compacting and refilling from the filler as needed. It returns the
// resulting residency (>= n) on success.
func (w *Window) Require(n int) (int, error) {
	remaining := w.Limit - w.Position
	if remaining >= n {
		return remaining, nil
	}
	if n > w.Capacity {
		return 0, kerrors.NewOversized("require", n, w.Capacity)
	}

	if remaining > 0 {
		count, err := w.fillInto(w.Buf[w.Limit:w.Capacity])
		if count > 0 {
			w.Limit += count
			remaining += count
		}
		if remaining >= n {
			return remaining, nil
		}
		if err != nil {
			if err == io.EOF {
				return 0, kerrors.NewUnderflow("require", n, remaining)
			}
			return 0, kerrors.NewIO("require", err)
		}
	}

	// Compact: slide the live window to the front of the buffer so the
	// rest of Buf is free for refilling.
	copy(w.Buf[0:remaining], w.Buf[w.Position:w.Limit])
	w.Total += int64(w.Position)
	w.Position = 0
	w.Limit = remaining

	for {
		count, err := w.fillInto(w.Buf[w.Limit:w.Capacity])
		if count > 0 {
			w.Limit += count
			remaining += count
			if remaining >= n {
				return remaining, nil
			}
		}
		if err != nil {
			if remaining >= n {
				return remaining, nil
			}
			if err == io.EOF {
				return 0, kerrors.NewUnderflow("require", n, remaining)
			}
			return 0, kerrors.NewIO("require", err)
		}
		// count == 0, err == nil: a short-but-not-EOF fill. Loop again.
	}
}

// Optional best-effort ensures up to n bytes (capped to Capacity) are
// resident. It never fails on short input: it returns -1 only when the
// buffer is empty and the filler is exhausted. A genuine I/O failure
// (anything but io.EOF) from the filler is still propagated as an
// error, since that is not a short-input condition. Optional attempts
// one fill before compacting, so callers can use Optional(1) as a
// non-fatal EOF probe without forcing a compaction on every call.
func (w *Window) Optional(n int) (int, error) {
	remaining := w.Limit - w.Position
	if remaining >= n {
		return n, nil
	}
	if n > w.Capacity {
		n = w.Capacity
	}

	count, err := w.fillInto(w.Buf[w.Limit:w.Capacity])
	if count > 0 {
		w.Limit += count
		remaining += count
	}
	if remaining >= n {
		return n, nil
	}
	if err != nil {
		if err != io.EOF {
			return 0, kerrors.NewIO("optional", err)
		}
		if remaining == 0 {
			return -1, nil
		}
		return minInt(remaining, n), nil
	}

	// Compact and keep trying until satisfied or the filler is
	// exhausted.
	copy(w.Buf[0:remaining], w.Buf[w.Position:w.Limit])
	w.Total += int64(w.Position)
	w.Position = 0
	w.Limit = remaining

	for {
		count, err := w.fillInto(w.Buf[w.Limit:w.Capacity])
		if count > 0 {
			w.Limit += count
			remaining += count
		}
		if err != nil {
			if err != io.EOF {
				return 0, kerrors.NewIO("optional", err)
			}
			break
		}
		if remaining >= n {
			break
		}
	}
	if remaining == 0 {
		return -1, nil
	}
	return minInt(remaining, n), nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
