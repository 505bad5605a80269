package pngenc

import "fmt"

// Kind classifies encoder failures.
type Kind int

const (
	// KindInvalidFrame means the frame is nil or has a zero dimension.
	KindInvalidFrame Kind = iota + 1
	// KindSinkOpen means the destination could not be opened or replaced.
	KindSinkOpen
	// KindEncoderInit means the compressor could not be set up.
	KindEncoderInit
	// KindAllocation means the scanline arena would be too large.
	KindAllocation
	// KindWrite means an I/O error happened mid-stream.
	KindWrite
)

func (k Kind) String() string {
	switch k {
	case KindInvalidFrame:
		return "invalid frame"
	case KindSinkOpen:
		return "sink open"
	case KindEncoderInit:
		return "encoder init"
	case KindAllocation:
		return "allocation"
	case KindWrite:
		return "write"
	default:
		return "unknown"
	}
}

// Error is returned by every failing encoder operation.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

// Sentinels for errors.Is. They match any *Error of the same Kind.
var (
	ErrInvalidFrame = &Error{Kind: KindInvalidFrame}
	ErrSinkOpen     = &Error{Kind: KindSinkOpen}
	ErrEncoderInit  = &Error{Kind: KindEncoderInit}
	ErrAllocation   = &Error{Kind: KindAllocation}
	ErrWrite        = &Error{Kind: KindWrite}
)

func (e *Error) Error() string {
	switch {
	case e.Op == "" && e.Err == nil:
		return "png " + e.Kind.String() + " error"
	case e.Err == nil:
		return fmt.Sprintf("png %s error: %s", e.Kind, e.Op)
	default:
		return fmt.Sprintf("png %s error: %s: %v", e.Kind, e.Op, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for e's Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Op == "" && t.Err == nil
}

func newError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}
