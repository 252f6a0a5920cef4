package codec

import (
	"errors"
	"fmt"
)

// Kind classifies codec and handle failures.
type Kind int

// Error kinds.
const (
	KindInternal Kind = iota
	KindUnsupportedScalarType
	KindInvalidContainerType
)

// Sentinel errors, one per Kind. Every *Error unwraps to one of these.
var (
	ErrInternal              = errors.New("internal error")
	ErrUnsupportedScalarType = errors.New("unsupported scalar type")
	ErrInvalidContainerType  = errors.New("invalid container type")
)

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case KindUnsupportedScalarType:
		return "unsupported_scalar_type"
	case KindInvalidContainerType:
		return "invalid_container_type"
	default:
		return "internal"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindUnsupportedScalarType:
		return ErrUnsupportedScalarType
	case KindInvalidContainerType:
		return ErrInvalidContainerType
	default:
		return ErrInternal
	}
}

// Error provides detailed information about a codec failure.
type Error struct {
	Kind   Kind   // Failure class
	Op     string // Operation that failed (e.g., "infer", "decode")
	Detail string // Additional details
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind.sentinel())
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Kind.sentinel(), e.Detail)
}

// Unwrap returns the sentinel for the error's kind, so errors.Is works
// against ErrUnsupportedScalarType and friends.
func (e *Error) Unwrap() error {
	return e.Kind.sentinel()
}

func newError(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Detail: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err. Errors that match no kind are internal.
func KindOf(err error) Kind {
	var ce *Error
	switch {
	case errors.As(err, &ce):
		return ce.Kind
	case errors.Is(err, ErrUnsupportedScalarType):
		return KindUnsupportedScalarType
	case errors.Is(err, ErrInvalidContainerType):
		return KindInvalidContainerType
	default:
		return KindInternal
	}
}
