package validate

import (
	"errors"
	"fmt"
	"strings"

	"gonum.org/v1/gonum/unit"

	"github.com/san-kum/plasmalab/internal/quantity"
)

var (
	// ErrMissingUnits indicates a bare number where units are required.
	ErrMissingUnits = errors.New("validate: missing units")

	// ErrUnitMismatch indicates an argument with the wrong dimensions.
	// It is the same sentinel as quantity.ErrUnitMismatch.
	ErrUnitMismatch = quantity.ErrUnitMismatch

	// ErrMissingArgument indicates a required argument was not supplied.
	ErrMissingArgument = errors.New("validate: missing argument")

	// ErrValue is the parent of the numeric range errors below.
	ErrValue    = errors.New("validate: invalid value")
	ErrNegative = errors.New("validate: negative value")
	ErrZero     = errors.New("validate: zero value")
	ErrNaN      = errors.New("validate: NaN value")
	ErrInf      = errors.New("validate: infinite value")
	ErrArray    = errors.New("validate: array value not allowed")

	// ErrImplementation indicates a function produced an invalid result.
	ErrImplementation = errors.New("validate: implementation error")

	// ErrRelativity indicates a speed at or above the speed of light.
	ErrRelativity = errors.New("validate: speed is not below the speed of light")

	// ErrNotImplemented marks functions that exist but do not compute.
	ErrNotImplemented = errors.New("validate: not implemented")
)

// MissingUnitsError reports a bare argument that needed units.
type MissingUnitsError struct {
	Func string
	Arg  string
	Want []quantity.Units
}

func (e *MissingUnitsError) Error() string {
	return fmt.Sprintf("%s: argument %q has no units, expected %s", e.Func, e.Arg, unitList(e.Want))
}

func (e *MissingUnitsError) Is(target error) bool { return target == ErrMissingUnits }

// UnitMismatchError reports an argument whose dimensions are not accepted.
type UnitMismatchError struct {
	Func string
	Arg  string
	Got  unit.Dimensions
	Want []quantity.Units
}

func (e *UnitMismatchError) Error() string {
	got := "dimensionless"
	if len(e.Got) > 0 {
		got = e.Got.String()
	}
	return fmt.Sprintf("%s: argument %q has units %s, expected %s", e.Func, e.Arg, got, unitList(e.Want))
}

func (e *UnitMismatchError) Is(target error) bool { return target == ErrUnitMismatch }

// ValueError reports an argument outside its permitted numeric range.
type ValueError struct {
	Func   string
	Arg    string
	Value  float64
	Reason error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%s: argument %q = %g: %v", e.Func, e.Arg, e.Value, e.Reason)
}

func (e *ValueError) Unwrap() error { return e.Reason }

func (e *ValueError) Is(target error) bool { return target == ErrValue }

// ImplementationError reports a result that failed its own return check.
type ImplementationError struct {
	Func string
	Err  error
}

func (e *ImplementationError) Error() string {
	return fmt.Sprintf("%s: invalid result: %v", e.Func, e.Err)
}

func (e *ImplementationError) Unwrap() error { return e.Err }

func (e *ImplementationError) Is(target error) bool { return target == ErrImplementation }

// RelativityError reports a speed that is not physically attainable.
type RelativityError struct {
	Func  string
	Speed float64
}

func (e *RelativityError) Error() string {
	return fmt.Sprintf("%s: speed %g m/s is not below c", e.Func, e.Speed)
}

func (e *RelativityError) Is(target error) bool { return target == ErrRelativity }

func unitList(us []quantity.Units) string {
	if len(us) == 0 {
		return "any units"
	}
	names := make([]string, len(us))
	for i, u := range us {
		names[i] = u.Symbol
		if names[i] == "" {
			names[i] = "dimensionless"
		}
	}
	return strings.Join(names, " or ")
}
