// Package kerrors defines the typed decode errors raised by the kryo
// reader. Every failure the reader surfaces wraps one of the sentinel
// kinds below, so callers can classify a failure with errors.Is while
// still reaching the underlying cause (for IO failures) with errors.As.
package kerrors

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// Underflow means the source could not produce enough bytes to
	// satisfy a pending read. The reader is not guaranteed consistent
	// after this error.
	Underflow = errors.New("kryo: buffer underflow")

	// OversizedRequest means a single primitive was larger than the
	// reader's buffer capacity. This is a configuration error, not a
	// transient one.
	OversizedRequest = errors.New("kryo: requested size exceeds buffer capacity")

	// IO means the underlying source stream failed during a fill.
	IO = errors.New("kryo: io error")

	// Argument means a caller passed a nil destination or an invalid
	// length. No reader state changes when this is returned.
	Argument = errors.New("kryo: invalid argument")
)

// DecodeError is the concrete error type returned by the reader. Kind is
// one of the sentinels above and is what errors.Is matches against; Cause
// (when set) is the wrapped lower-level error reachable via errors.Unwrap
// or errors.As.
type DecodeError struct {
	Kind      error
	Op        string
	Requested int
	Available int
	Cause     error
}

func (e *DecodeError) Error() string {
	switch {
	case e.Cause != nil:
		return fmt.Sprintf("kryo: %s: %v", e.Op, e.Cause)
	case e.Requested > 0:
		return fmt.Sprintf("kryo: %s: requested %d, available %d", e.Op, e.Requested, e.Available)
	default:
		return fmt.Sprintf("kryo: %s: %v", e.Op, e.Kind)
	}
}

// Is lets errors.Is(err, kerrors.Underflow) succeed regardless of which
// operation or cause produced the error.
func (e *DecodeError) Is(target error) bool {
	return target == e.Kind
}

// Unwrap exposes the wrapped cause (e.g. the source stream's I/O error) so
// errors.As can reach it even though Is() already resolved the Kind.
func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// NewUnderflow reports that a read of Requested bytes could only find
// Available resident bytes before the source was exhausted.
func NewUnderflow(op string, requested, available int) *DecodeError {
	return &DecodeError{Kind: Underflow, Op: op, Requested: requested, Available: available}
}

// NewOversized reports that a primitive of size Requested cannot fit in
// a buffer of capacity Available.
func NewOversized(op string, requested, available int) *DecodeError {
	return &DecodeError{Kind: OversizedRequest, Op: op, Requested: requested, Available: available}
}

// NewIO wraps a source-stream failure encountered during fill.
func NewIO(op string, cause error) *DecodeError {
	return &DecodeError{Kind: IO, Op: op, Cause: errors.Wrap(cause, op)}
}

// NewArgument reports an invalid caller-supplied argument.
func NewArgument(op, msg string) *DecodeError {
	return &DecodeError{Kind: Argument, Op: op, Cause: errors.New(msg)}
}

// WithOp re-attributes a *DecodeError to op, preserving its Kind, sizes,
// and Cause. It lets a caller closer to the actual primitive (e.g.
// "ReadI32") replace the generic Op a lower layer (e.g. "require")
// attached, without losing errors.Is/errors.As compatibility. Errors
// that aren't a *DecodeError pass through unchanged.
func WithOp(err error, op string) error {
	de, ok := err.(*DecodeError)
	if !ok {
		return err
	}
	out := *de
	out.Op = op
	return &out
}
