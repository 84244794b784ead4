package quantity

import "errors"

var (
	// ErrUnitMismatch indicates an operation between incompatible dimensions.
	ErrUnitMismatch = errors.New("quantity: incompatible units")

	// ErrParse indicates a malformed quantity or unit string.
	ErrParse = errors.New("quantity: cannot parse")

	// ErrUnknownUnit indicates a unit symbol missing from the unit table.
	ErrUnknownUnit = errors.New("quantity: unknown unit")
)
