package validate

import (
	"math"

	"go.uber.org/zap"

	"github.com/san-kum/plasmalab/internal/constants"
	"github.com/san-kum/plasmalab/internal/quantity"
)

var logger = zap.NewNop()

// SetLogger replaces the package logger. Call it before concurrent use.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// Func is a computation over named quantity arguments.
type Func func(Args) (quantity.Quantity, error)

// Middleware wraps a Func with additional checks.
type Middleware func(Func) Func

// Chain applies middlewares so that the first one listed runs outermost.
func Chain(fn Func, mws ...Middleware) Func {
	for i := len(mws) - 1; i >= 0; i-- {
		fn = mws[i](fn)
	}
	return fn
}

// CheckUnits coerces declared arguments to their accepted units before the
// call and checks the dimensions of the result after it.
func CheckUnits(spec Spec) Middleware {
	return func(next Func) Func {
		return func(args Args) (quantity.Quantity, error) {
			coerced, err := spec.CoerceArgs(args)
			if err != nil {
				return quantity.Quantity{}, err
			}
			out, err := next(coerced)
			if err != nil {
				return quantity.Quantity{}, err
			}
			if err := spec.Return.checkReturn(spec.Name, out); err != nil {
				return quantity.Quantity{}, err
			}
			return out, nil
		}
	}
}

// CheckValues enforces the numeric constraints of declared arguments
// before the call and of the result after it.
func CheckValues(spec Spec) Middleware {
	return func(next Func) Func {
		return func(args Args) (quantity.Quantity, error) {
			if err := spec.CheckArgValues(args); err != nil {
				return quantity.Quantity{}, err
			}
			out, err := next(args)
			if err != nil {
				return quantity.Quantity{}, err
			}
			if err := spec.Return.checkReturnValue(spec.Name, out); err != nil {
				return quantity.Quantity{}, err
			}
			return out, nil
		}
	}
}

// ValidateQuantities checks units first, then values.
func ValidateQuantities(spec Spec) Middleware {
	return func(next Func) Func {
		return CheckUnits(spec)(CheckValues(spec)(next))
	}
}

// Validate wraps fn with the full validation of spec.
func Validate(spec Spec, fn Func) Func {
	return ValidateQuantities(spec)(fn)
}

// ToHz converts an angular frequency result in rad/s to Hz.
func ToHz(fn Func) Func {
	return func(args Args) (quantity.Quantity, error) {
		out, err := fn(args)
		if err != nil {
			return quantity.Quantity{}, err
		}
		w, err := out.In(quantity.RadPerSecond)
		if err != nil {
			return quantity.Quantity{}, &ImplementationError{Func: "ToHz", Err: err}
		}
		return quantity.New(w/(2*math.Pi), quantity.Hertz), nil
	}
}

// CheckRelativistic rejects speed results that are NaN or not below c,
// and logs a warning when they exceed betaFrac of c.
func CheckRelativistic(betaFrac float64) Middleware {
	return func(next Func) Func {
		return func(args Args) (quantity.Quantity, error) {
			out, err := next(args)
			if err != nil {
				return quantity.Quantity{}, err
			}
			if err := Relativistic(out, betaFrac); err != nil {
				return quantity.Quantity{}, err
			}
			return out, nil
		}
	}
}

// Relativistic checks a single speed against c.
func Relativistic(v quantity.Quantity, betaFrac float64) error {
	speed, err := v.In(quantity.MetrePerSecond)
	if err != nil {
		return &ImplementationError{Func: "CheckRelativistic", Err: err}
	}
	speed = math.Abs(speed)
	if math.IsNaN(speed) || speed >= constants.C {
		return &RelativityError{Func: "CheckRelativistic", Speed: speed}
	}
	if speed >= betaFrac*constants.C {
		logger.Warn("speed is a significant fraction of c",
			zap.Float64("speed", speed),
			zap.Float64("beta", speed/constants.C),
		)
	}
	return nil
}
