package osc

import "github.com/pkg/errors"

// Errors returned by the codec. They are wrapped with context about the
// failing operation, so compare with errors.Is or errors.Cause.
var (
	// ErrMalformedHeader is returned when a buffer is too short, the address
	// doesn't start with '/' or the type tag string doesn't start with ','.
	ErrMalformedHeader = errors.New("malformed header")

	// ErrBufferOverrun is returned when an encoding doesn't fit into the
	// destination buffer. Nothing is written in that case.
	ErrBufferOverrun = errors.New("buffer overrun")

	// ErrBufferUnderrun is returned when a field extends past the end of the
	// received data.
	ErrBufferUnderrun = errors.New("buffer underrun")

	// ErrUnknownTypeTag is returned for a type tag without an encoding.
	ErrUnknownTypeTag = errors.New("unknown type tag")

	// ErrTypeMismatch is returned when an argument doesn't match its type
	// tag, or a typed read doesn't match the next type tag.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrArgumentCount is returned when the number of arguments doesn't
	// match the type tag string.
	ErrArgumentCount = errors.New("argument count mismatch")

	// ErrNoMoreArguments is returned by reads past the last argument.
	ErrNoMoreArguments = errors.New("no more arguments")

	// ErrNestedBundle is returned when a bundle element is itself a bundle.
	ErrNestedBundle = errors.New("nested bundles are not supported")

	// ErrInvalidAddress is returned when an address doesn't start with '/'.
	ErrInvalidAddress = errors.New("invalid address")
)
