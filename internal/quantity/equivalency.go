package quantity

import (
	"gonum.org/v1/gonum/unit"

	"github.com/san-kum/plasmalab/internal/constants"
)

// Equivalency converts between two dimension sets that are not
// dimensionally equal but physically interchangeable in some context.
type Equivalency struct {
	Name    string
	from    unit.Dimensions
	to      unit.Dimensions
	forward func(float64) float64
	inverse func(float64) float64
}

// Convert maps q onto the dimensions of target, in either direction.
func (e Equivalency) Convert(q Quantity, target unit.Uniter) (Quantity, bool) {
	if q.bare {
		return Quantity{}, false
	}
	td := target.Unit().Dimensions()
	switch {
	case sameDims(q.dims, e.from) && sameDims(td, e.to):
		return Quantity{value: e.forward(q.value), dims: cloneDims(e.to)}, true
	case sameDims(q.dims, e.to) && sameDims(td, e.from):
		return Quantity{value: e.inverse(q.value), dims: cloneDims(e.from)}, true
	}
	return Quantity{}, false
}

// TemperatureEnergy treats a temperature T as the energy k_B T.
func TemperatureEnergy() Equivalency {
	return Equivalency{
		Name:    "temperature_energy",
		from:    Kelvin.dims,
		to:      Joule.dims,
		forward: func(k float64) float64 { return k * constants.KB },
		inverse: func(j float64) float64 { return j / constants.KB },
	}
}
