package tracker

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/plasmalab/internal/dynamo"
	"github.com/san-kum/plasmalab/internal/integrators"
)

// DefaultIntegrator is used when Config.Integrator is empty.
const DefaultIntegrator = "boris"

var steppers = map[string]func() dynamo.Integrator{
	"boris": func() dynamo.Integrator { return NewBoris() },
	"euler": func() dynamo.Integrator { return integrators.NewEuler() },
	"rk4":   func() dynamo.Integrator { return integrators.NewRK4() },
	"rk45":  func() dynamo.Integrator { return integrators.NewRK45() },
}

// NewIntegrator returns a fresh stepper by name.
func NewIntegrator(name string) (dynamo.Integrator, error) {
	fn, ok := steppers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStepper, name)
	}
	return fn(), nil
}

// Integrators lists the stepper names.
func Integrators() []string { return sortedKeys(steppers) }

// FieldParams are the numeric parameters of a field preset. Missing keys
// read as zero.
type FieldParams map[string]float64

var fieldPresets = map[string]func(p FieldParams) Fields{
	"uniform": func(p FieldParams) Fields {
		return Uniform(
			r3.Vec{X: p["ex"], Y: p["ey"], Z: p["ez"]},
			r3.Vec{X: p["bx"], Y: p["by"], Z: p["bz"]},
		)
	},
	"exb": func(p FieldParams) Fields {
		return CrossedEB(p["e"], p["b"])
	},
	"mirror": func(p FieldParams) Fields {
		l := p["l"]
		if l == 0 {
			l = 1
		}
		return Mirror(p["b0"], l)
	},
}

// NewFields builds a field preset: uniform (ex..ez, bx..bz), exb (e, b) or
// mirror (b0, l).
func NewFields(name string, p FieldParams) (Fields, error) {
	fn, ok := fieldPresets[name]
	if !ok {
		return Fields{}, fmt.Errorf("%w: %q", ErrUnknownFieldType, name)
	}
	return fn(p), nil
}

// FieldPresets lists the field preset names.
func FieldPresets() []string { return sortedKeys(fieldPresets) }

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
