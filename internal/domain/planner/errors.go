package planner

import "errors"

var (
	// ErrDuplicateTitle indicates a custom property title collides with an
	// existing or pending-new definition.
	ErrDuplicateTitle = errors.New("duplicate property title")
	// ErrInvalidInput indicates invalid operation input.
	ErrInvalidInput = errors.New("invalid planner input")
)
