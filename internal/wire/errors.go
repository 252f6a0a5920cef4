package wire

import "errors"

// Common errors.
var (
	ErrMalformed          = errors.New("wire: malformed value")
	ErrTooDeep            = errors.New("wire: nesting exceeds maximum depth")
	ErrTooLarge           = errors.New("wire: value exceeds maximum size")
	ErrInvalidMagic       = errors.New("wire: invalid magic bytes")
	ErrUnsupportedVersion = errors.New("wire: unsupported format version")
	ErrNotFinite          = errors.New("wire: non-finite float cannot be written as JSON")
)
