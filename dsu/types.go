package dsu

import "errors"

var (
	// ErrNegativeSize indicates New was asked for a universe of negative size.
	ErrNegativeSize = errors.New("dsu: universe size must be non-negative")

	// ErrIndexOutOfRange indicates an element outside [0, n) was passed to
	// Find, Union, Connected, SizeOf or Parent.
	ErrIndexOutOfRange = errors.New("dsu: index out of range")
)
