package validate

import (
	"fmt"

	"github.com/san-kum/plasmalab/internal/quantity"
)

// ArrayArgs carries named array arguments; one-element arrays broadcast.
type ArrayArgs map[string]quantity.Array

// ArrayFunc evaluates a scalar Func element-wise over array arguments.
type ArrayFunc func(ArrayArgs) (quantity.Array, error)

// Broadcast lifts fn over arrays. Arrays must have length one or a common
// length n; arguments whose Check disallows arrays must have length one.
func Broadcast(spec Spec, fn Func) ArrayFunc {
	return func(args ArrayArgs) (quantity.Array, error) {
		n := 1
		for name, a := range args {
			if a.Len() == 0 {
				return quantity.Array{}, fmt.Errorf("%s: argument %q is empty: %w", spec.Name, name, ErrValue)
			}
			if a.Len() == 1 {
				continue
			}
			if chk, ok := spec.Args[name]; ok && !chk.AllowArray {
				return quantity.Array{}, &ValueError{Func: spec.Name, Arg: name, Value: float64(a.Len()), Reason: ErrArray}
			}
			if n != 1 && a.Len() != n {
				return quantity.Array{}, fmt.Errorf("%s: argument %q has length %d, want %d: %w",
					spec.Name, name, a.Len(), n, ErrValue)
			}
			n = a.Len()
		}

		out := make([]quantity.Quantity, n)
		for i := range n {
			scalar := make(Args, len(args))
			for name, a := range args {
				if a.Len() == 1 {
					scalar[name] = a.At(0)
				} else {
					scalar[name] = a.At(i)
				}
			}
			q, err := fn(scalar)
			if err != nil {
				return quantity.Array{}, fmt.Errorf("element %d: %w", i, err)
			}
			out[i] = q
		}
		return quantity.Stack(out...)
	}
}
