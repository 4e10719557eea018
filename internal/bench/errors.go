package bench

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownBenchmark = errors.New("bench: unknown benchmark")

	// ErrInvalidInput covers malformed literals, ragged or empty batches and
	// non-finite values.
	ErrInvalidInput = errors.New("bench: invalid input format")

	ErrDimensionMismatch = errors.New("bench: dimension mismatch")

	// ErrOutOfBounds is only returned by facades built with StrictBounds.
	ErrOutOfBounds = errors.New("bench: input out of bounds")
)

// Stable error kinds used on the wire.
const (
	KindUnknownBenchmark  = "unknown_benchmark"
	KindInvalidInput      = "invalid_input"
	KindDimensionMismatch = "dimension_mismatch"
	KindOutOfBounds       = "out_of_bounds"
	KindInternal          = "internal"
)

type UnknownBenchmarkError struct {
	Name string
}

func (e *UnknownBenchmarkError) Error() string {
	return fmt.Sprintf("unknown benchmark: %q", e.Name)
}

func (e *UnknownBenchmarkError) Unwrap() error { return ErrUnknownBenchmark }

type InvalidInputFormatError struct {
	Reason  string
	Wrapped error
}

func (e *InvalidInputFormatError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("invalid input format: %s: %v", e.Reason, e.Wrapped)
	}
	return "invalid input format: " + e.Reason
}

func (e *InvalidInputFormatError) Unwrap() []error {
	if e.Wrapped != nil {
		return []error{ErrInvalidInput, e.Wrapped}
	}
	return []error{ErrInvalidInput}
}

type DimensionMismatchError struct {
	Benchmark string
	Row       int
	Want      int
	Got       int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("%s: row %d has %d columns, want %d", e.Benchmark, e.Row, e.Got, e.Want)
}

func (e *DimensionMismatchError) Unwrap() error { return ErrDimensionMismatch }

type OutOfBoundsError struct {
	Benchmark string
	Row       int
	Col       int
	Value     float64
	Lower     float64
	Upper     float64
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("%s: x[%d][%d] = %g outside [%g, %g]", e.Benchmark, e.Row, e.Col, e.Value, e.Lower, e.Upper)
}

func (e *OutOfBoundsError) Unwrap() error { return ErrOutOfBounds }

// KindOf maps err to its wire kind. Errors outside the taxonomy are
// KindInternal.
func KindOf(err error) string {
	switch {
	case errors.Is(err, ErrUnknownBenchmark):
		return KindUnknownBenchmark
	case errors.Is(err, ErrDimensionMismatch):
		return KindDimensionMismatch
	case errors.Is(err, ErrOutOfBounds):
		return KindOutOfBounds
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	default:
		return KindInternal
	}
}

// RemoteError is an error reported by a server, rebuilt from its kind.
type RemoteError struct {
	Kind    string
	Message string
}

func (e *RemoteError) Error() string { return e.Message }

func (e *RemoteError) Unwrap() error {
	switch e.Kind {
	case KindUnknownBenchmark:
		return ErrUnknownBenchmark
	case KindInvalidInput:
		return ErrInvalidInput
	case KindDimensionMismatch:
		return ErrDimensionMismatch
	case KindOutOfBounds:
		return ErrOutOfBounds
	default:
		return nil
	}
}

// ErrorFromKind rebuilds an error that matches the sentinel for kind, so
// errors.Is works the same on both sides of a transport.
func ErrorFromKind(kind, msg string) error {
	return &RemoteError{Kind: kind, Message: msg}
}
