package reactive

import "errors"

var (
	// ErrOutOfRange indicates a write outside a cell's valid range.
	ErrOutOfRange = errors.New("reactive: value out of range")

	// ErrInvalidValue indicates a write of a value not in a cell's valid set.
	ErrInvalidValue = errors.New("reactive: value not allowed")

	// ErrCycle indicates a cell was written from one of its own listeners.
	ErrCycle = errors.New("reactive: value written while notifying its listeners")
)
