package quantity

import (
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/gonum/unit"
)

// Quantity is a magnitude in SI base units plus its dimensions.
type Quantity struct {
	value float64
	dims  unit.Dimensions
	bare  bool
}

// New returns v expressed in u, stored in SI.
func New(v float64, u Units) Quantity {
	return Quantity{value: v * u.Scale, dims: cloneDims(u.dims)}
}

// Bare returns a value with no units attached.
func Bare(v float64) Quantity {
	return Quantity{value: v, bare: true}
}

// FromUniter converts any gonum unit value into a Quantity.
func FromUniter(u unit.Uniter) Quantity {
	un := u.Unit()
	return Quantity{value: un.Value(), dims: un.Dimensions()}
}

// NaN returns a NaN quantity with the dimensions of u.
func NaN(u Units) Quantity {
	return Quantity{value: math.NaN(), dims: cloneDims(u.dims)}
}

// Value returns the magnitude in SI base units.
func (q Quantity) Value() float64 { return q.value }

// IsBare reports whether q carries no units at all.
func (q Quantity) IsBare() bool { return q.bare }

// Dimensions returns a copy of q's dimensions.
func (q Quantity) Dimensions() unit.Dimensions { return cloneDims(q.dims) }

// Unit implements unit.Uniter.
func (q Quantity) Unit() *unit.Unit { return unit.New(q.value, q.dims) }

// IsDimensionless reports whether q has no dimensions. Bare values count.
func (q Quantity) IsDimensionless() bool { return len(q.dims) == 0 }

// Compatible reports whether q measures the same dimensions as u.
func (q Quantity) Compatible(u unit.Uniter) bool {
	if q.bare {
		return false
	}
	return unit.DimensionsMatch(q, u)
}

// In returns the magnitude of q in units u.
func (q Quantity) In(u Units) (float64, error) {
	if q.bare || !sameDims(q.dims, u.dims) {
		return 0, fmt.Errorf("%w: cannot express %s in %s", ErrUnitMismatch, q.unitString(), u.Symbol)
	}
	return q.value / u.Scale, nil
}

// MustIn is In for callers that already checked compatibility.
// It panics on a dimension mismatch.
func (q Quantity) MustIn(u Units) float64 {
	v, err := q.In(u)
	if err != nil {
		panic(err)
	}
	return v
}

func (q Quantity) Mul(o Quantity) Quantity {
	return Quantity{value: q.value * o.value, dims: addDims(q.dims, o.dims, 1), bare: q.bare && o.bare}
}

func (q Quantity) Div(o Quantity) Quantity {
	return Quantity{value: q.value / o.value, dims: addDims(q.dims, o.dims, -1), bare: q.bare && o.bare}
}

// Scale multiplies the magnitude by a dimensionless factor.
func (q Quantity) Scale(f float64) Quantity {
	return Quantity{value: q.value * f, dims: cloneDims(q.dims), bare: q.bare}
}

// Pow raises q to an integer power.
func (q Quantity) Pow(n int) Quantity {
	d := make(unit.Dimensions, len(q.dims))
	for k, v := range q.dims {
		d[k] = v * n
	}
	return Quantity{value: math.Pow(q.value, float64(n)), dims: cloneDims(d), bare: q.bare}
}

// Sqrt returns the square root; every dimension exponent must be even.
func (q Quantity) Sqrt() (Quantity, error) {
	d := make(unit.Dimensions, len(q.dims))
	for k, v := range q.dims {
		if v%2 != 0 {
			return Quantity{}, fmt.Errorf("%w: square root of %s", ErrUnitMismatch, q.unitString())
		}
		d[k] = v / 2
	}
	return Quantity{value: math.Sqrt(q.value), dims: d, bare: q.bare}, nil
}

func (q Quantity) Abs() Quantity {
	return Quantity{value: math.Abs(q.value), dims: cloneDims(q.dims), bare: q.bare}
}

func (q Quantity) Neg() Quantity {
	return q.Scale(-1)
}

func (q Quantity) Add(o Quantity) (Quantity, error) {
	if err := q.match(o); err != nil {
		return Quantity{}, err
	}
	return Quantity{value: q.value + o.value, dims: cloneDims(q.dims), bare: q.bare}, nil
}

func (q Quantity) Sub(o Quantity) (Quantity, error) {
	return q.Add(o.Neg())
}

// Cmp compares two quantities of the same dimensions.
func (q Quantity) Cmp(o Quantity) (int, error) {
	if err := q.match(o); err != nil {
		return 0, err
	}
	switch {
	case q.value < o.value:
		return -1, nil
	case q.value > o.value:
		return 1, nil
	}
	return 0, nil
}

// IsClose reports whether q and o have the same dimensions and agree to
// within a relative tolerance.
func (q Quantity) IsClose(o Quantity, rtol float64) bool {
	if q.match(o) != nil {
		return false
	}
	if q.value == o.value {
		return true
	}
	return math.Abs(q.value-o.value) <= rtol*math.Max(math.Abs(q.value), math.Abs(o.value))
}

// Equal reports identical dimensions and magnitude, with NaN equal to NaN.
func (q Quantity) Equal(o Quantity) bool {
	if q.bare != o.bare || !sameDims(q.dims, o.dims) {
		return false
	}
	if math.IsNaN(q.value) && math.IsNaN(o.value) {
		return true
	}
	return q.value == o.value
}

func (q Quantity) IsNaN() bool { return math.IsNaN(q.value) }

func (q Quantity) IsInf() bool { return math.IsInf(q.value, 0) }

func (q Quantity) match(o Quantity) error {
	if q.bare != o.bare || !sameDims(q.dims, o.dims) {
		return fmt.Errorf("%w: %s and %s", ErrUnitMismatch, q.unitString(), o.unitString())
	}
	return nil
}

func (q Quantity) unitString() string {
	if q.bare {
		return "bare value"
	}
	if len(q.dims) == 0 {
		return "dimensionless"
	}
	return symbolFor(q.dims)
}

// String formats q in SI, for example "5.12 kg" or "nan C".
func (q Quantity) String() string {
	v := formatFloat(q.value)
	if s := symbolFor(q.dims); s != "" && !q.bare {
		return v + " " + s
	}
	return v
}

func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
