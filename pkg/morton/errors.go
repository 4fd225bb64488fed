package morton

import "errors"

// Every error returned by this package wraps one of these, so callers can
// match with errors.Is.
var (
	// ErrInvalidConfiguration is returned by New for an impossible layout.
	ErrInvalidConfiguration = errors.New("morton: invalid configuration")
	// ErrDimensionMismatch is returned when the number of values packed does
	// not match the codec's dimensions.
	ErrDimensionMismatch = errors.New("morton: dimension mismatch")
	// ErrValueOutOfRange is returned when a value does not fit in the
	// codec's bits per dimension.
	ErrValueOutOfRange = errors.New("morton: value out of range")
)
