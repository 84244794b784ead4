package validate

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/san-kum/plasmalab/internal/quantity"
)

// Check describes what one argument (or a return value) accepts.
// The zero value is strict: positive or zero, finite, scalar, with units.
type Check struct {
	// Units lists accepted units. The first entry is the canonical target
	// for equivalency conversion and SI assumption. Empty means any units.
	Units         []quantity.Units
	Equivalencies []quantity.Equivalency

	AllowNegative bool
	ForbidZero    bool
	AllowNaN      bool
	AllowInf      bool
	AllowArray    bool

	// AssumeSI lets a bare number through as a value in Units[0].
	AssumeSI bool
	Optional bool
}

// Spec is the declared validation contract of a function.
type Spec struct {
	Name   string
	Args   map[string]Check
	Return Check
}

// Args carries named quantity arguments.
type Args map[string]quantity.Quantity

// Has reports whether name was supplied.
func (a Args) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// SI returns the SI magnitude of an argument, or NaN if absent.
func (a Args) SI(name string) float64 {
	q, ok := a[name]
	if !ok {
		return math.NaN()
	}
	return q.Value()
}

func (a Args) clone() Args {
	c := make(Args, len(a))
	for k, v := range a {
		c[k] = v
	}
	return c
}

func (s Spec) argNames() []string {
	names := make([]string, 0, len(s.Args))
	for n := range s.Args {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// CoerceArgs applies the unit checks of s to args and returns the coerced
// arguments. Arguments not declared in s are passed through.
func (s Spec) CoerceArgs(args Args) (Args, error) {
	out := args.clone()
	for _, name := range s.argNames() {
		chk := s.Args[name]
		q, ok := args[name]
		if !ok {
			if chk.Optional {
				continue
			}
			return nil, &ValueError{Func: s.Name, Arg: name, Value: math.NaN(), Reason: ErrMissingArgument}
		}
		c, err := chk.coerce(s.Name, name, q)
		if err != nil {
			return nil, err
		}
		out[name] = c
	}
	return out, nil
}

// CheckArgValues applies the numeric checks of s to args.
func (s Spec) CheckArgValues(args Args) error {
	for _, name := range s.argNames() {
		q, ok := args[name]
		if !ok {
			continue
		}
		if err := s.Args[name].checkValue(s.Name, name, q.Value()); err != nil {
			return err
		}
	}
	return nil
}

// CheckArgs runs both unit and value checks on args.
func (s Spec) CheckArgs(args Args) (Args, error) {
	coerced, err := s.CoerceArgs(args)
	if err != nil {
		return nil, err
	}
	if err := s.CheckArgValues(coerced); err != nil {
		return nil, err
	}
	return coerced, nil
}

func (c Check) coerce(fn, arg string, q quantity.Quantity) (quantity.Quantity, error) {
	if q.IsBare() {
		if len(c.Units) == 0 {
			return q, nil
		}
		if !c.AssumeSI {
			return quantity.Quantity{}, &MissingUnitsError{Func: fn, Arg: arg, Want: c.Units}
		}
		logger.Warn("assuming SI units for bare argument",
			zap.String("func", fn),
			zap.String("arg", arg),
			zap.String("units", c.Units[0].Symbol),
		)
		return quantity.New(q.Value(), c.Units[0]), nil
	}
	if len(c.Units) == 0 {
		return q, nil
	}
	for _, u := range c.Units {
		if q.Compatible(u) {
			return q, nil
		}
	}
	for _, eq := range c.Equivalencies {
		if conv, ok := eq.Convert(q, c.Units[0]); ok {
			return conv, nil
		}
	}
	return quantity.Quantity{}, &UnitMismatchError{Func: fn, Arg: arg, Got: q.Dimensions(), Want: c.Units}
}

func (c Check) checkValue(fn, arg string, v float64) error {
	var reason error
	switch {
	case math.IsNaN(v):
		if !c.AllowNaN {
			reason = ErrNaN
		}
	case math.IsInf(v, 0) && !c.AllowInf:
		reason = ErrInf
	case v < 0 && !c.AllowNegative:
		reason = ErrNegative
	case v == 0 && c.ForbidZero:
		reason = ErrZero
	}
	if reason == nil {
		return nil
	}
	return &ValueError{Func: fn, Arg: arg, Value: v, Reason: reason}
}

func (c Check) checkReturn(fn string, q quantity.Quantity) error {
	if len(c.Units) > 0 {
		if q.IsBare() {
			return &ImplementationError{Func: fn, Err: &MissingUnitsError{Func: fn, Arg: "return", Want: c.Units}}
		}
		ok := false
		for _, u := range c.Units {
			if q.Compatible(u) {
				ok = true
				break
			}
		}
		if !ok {
			return &ImplementationError{Func: fn, Err: &UnitMismatchError{Func: fn, Arg: "return", Got: q.Dimensions(), Want: c.Units}}
		}
	}
	return nil
}

func (c Check) checkReturnValue(fn string, q quantity.Quantity) error {
	if err := c.checkValue(fn, "return", q.Value()); err != nil {
		return &ImplementationError{Func: fn, Err: err}
	}
	return nil
}
