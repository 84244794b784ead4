package quantity

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/unit"
)

// Array is a vector of SI magnitudes sharing one set of dimensions.
type Array struct {
	values []float64
	dims   unit.Dimensions
}

// NewArray returns vs expressed in u.
func NewArray(vs []float64, u Units) Array {
	out := make([]float64, len(vs))
	copy(out, vs)
	floats.Scale(u.Scale, out)
	return Array{values: out, dims: cloneDims(u.dims)}
}

// Stack collects scalar quantities into an array. All elements must share
// dimensions.
func Stack(qs ...Quantity) (Array, error) {
	a := Array{values: make([]float64, len(qs))}
	for i, q := range qs {
		if i == 0 {
			a.dims = q.Dimensions()
		} else if q.bare != qs[0].bare || !sameDims(q.dims, a.dims) {
			return Array{}, fmt.Errorf("%w: element %d is %s, element 0 is %s",
				ErrUnitMismatch, i, q.unitString(), qs[0].unitString())
		}
		a.values[i] = q.value
	}
	return a, nil
}

// Scalar wraps a single quantity as a one-element array.
func Scalar(q Quantity) Array {
	return Array{values: []float64{q.value}, dims: q.Dimensions()}
}

func (a Array) Len() int { return len(a.values) }

// At returns element i as a scalar quantity.
func (a Array) At(i int) Quantity {
	return Quantity{value: a.values[i], dims: cloneDims(a.dims)}
}

// Values returns a copy of the SI magnitudes.
func (a Array) Values() []float64 {
	out := make([]float64, len(a.values))
	copy(out, a.values)
	return out
}

// In returns the magnitudes expressed in u.
func (a Array) In(u Units) ([]float64, error) {
	if !sameDims(a.dims, u.dims) {
		return nil, fmt.Errorf("%w: cannot express %s in %s", ErrUnitMismatch, symbolFor(a.dims), u.Symbol)
	}
	out := a.Values()
	floats.Scale(1/u.Scale, out)
	return out, nil
}

// Compatible reports whether a has the dimensions of u.
func (a Array) Compatible(u unit.Uniter) bool {
	return unit.DimensionsMatch(a, u)
}

func (a Array) Dimensions() unit.Dimensions { return cloneDims(a.dims) }

// Unit implements unit.Uniter with unit magnitude, for dimension checks.
func (a Array) Unit() *unit.Unit { return unit.New(1, a.dims) }

// Sum returns the total as a quantity.
func (a Array) Sum() Quantity {
	return Quantity{value: floats.Sum(a.values), dims: cloneDims(a.dims)}
}

// Max returns the largest element. The array must not be empty.
func (a Array) Max() Quantity {
	return Quantity{value: floats.Max(a.values), dims: cloneDims(a.dims)}
}

func (a Array) String() string {
	return fmt.Sprintf("%v %s", a.values, symbolFor(a.dims))
}
