package ereader

import (
	"errors"
	"fmt"
)

// Sentinel errors for the decode failure kinds.  Use errors.Is to
// classify an error returned by a Decoder.  ErrBounds errors also
// match ErrFormat, since reading outside a buffer always means the
// file is malformed.
var (
	ErrOpen      = errors.New("unable to read workfile")
	ErrFormat    = errors.New("invalid workfile format")
	ErrBounds    = errors.New("offset out of bounds")
	ErrInvariant = errors.New("internal invariant violated")
)

// ErrorKind identifies which part of the error taxonomy a DecodeError
// belongs to.
type ErrorKind int

const (
	OpenError ErrorKind = iota
	FormatError
	BoundsError
	InvariantError
)

func (k ErrorKind) String() string {
	switch k {
	case OpenError:
		return "open"
	case FormatError:
		return "format"
	case BoundsError:
		return "bounds"
	case InvariantError:
		return "invariant"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// A DecodeError describes why a workfile could not be decoded.
type DecodeError struct {

	// The failure class.
	Kind ErrorKind

	// The header field or component that failed, e.g. "NumObs".
	Field string

	// Byte offset in the file, or -1 if not applicable.
	Offset int64

	// The underlying cause, may be nil.
	Err error
}

func (e *DecodeError) Error() string {
	var prefix string
	switch e.Kind {
	case OpenError:
		prefix = ErrOpen.Error()
	case InvariantError:
		prefix = ErrInvariant.Error()
	case BoundsError:
		prefix = ErrFormat.Error() + ": " + ErrBounds.Error()
	default:
		prefix = ErrFormat.Error()
	}

	msg := prefix
	if e.Field != "" {
		msg += ": " + e.Field
	}
	if e.Offset >= 0 {
		msg += fmt.Sprintf(" (offset %d)", e.Offset)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is reports whether the error belongs to the class of target.
func (e *DecodeError) Is(target error) bool {
	switch target {
	case ErrOpen:
		return e.Kind == OpenError
	case ErrFormat:
		return e.Kind == FormatError || e.Kind == BoundsError
	case ErrBounds:
		return e.Kind == BoundsError
	case ErrInvariant:
		return e.Kind == InvariantError
	}
	return false
}

func openError(field string, err error) error {
	return &DecodeError{Kind: OpenError, Field: field, Offset: -1, Err: err}
}

func formatError(field string, offset int64, format string, args ...interface{}) error {
	return &DecodeError{Kind: FormatError, Field: field, Offset: offset, Err: fmt.Errorf(format, args...)}
}

func boundsError(field string, offset int64, format string, args ...interface{}) error {
	return &DecodeError{Kind: BoundsError, Field: field, Offset: offset, Err: fmt.Errorf(format, args...)}
}

func invariantError(field string, format string, args ...interface{}) error {
	return &DecodeError{Kind: InvariantError, Field: field, Offset: -1, Err: fmt.Errorf(format, args...)}
}

// errorKind returns the kind of a decode error, and false if err did
// not come from the decoder.
func errorKind(err error) (ErrorKind, bool) {
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return 0, false
}
