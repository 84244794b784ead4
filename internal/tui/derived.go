package tui

import (
	"fmt"
	"strconv"

	"github.com/san-kum/plasmalab/internal/formulary"
	"github.com/san-kum/plasmalab/internal/particles"
	"github.com/san-kum/plasmalab/internal/quantity"
	"github.com/san-kum/plasmalab/internal/validate"
)

// Params are the adjustable plasma parameters, in SI.
type Params struct {
	Density float64 // m^-3
	Te      float64 // eV
	Ti      float64 // eV
	B       float64 // T
	Ion     string
}

// Row is one derived quantity. Err is set when the formulary rejected the
// inputs.
type Row struct {
	Name  string
	Value quantity.Quantity
	Unit  quantity.Units
	Err   error
}

// Text formats the value in the row's unit.
func (r Row) Text() string {
	if r.Err != nil {
		return "n/a"
	}
	v, err := r.Value.In(r.Unit)
	if err != nil {
		return "n/a"
	}
	s := strconv.FormatFloat(v, 'e', 3, 64)
	if r.Unit.Symbol != "" {
		s += " " + r.Unit.Symbol
	}
	return s
}

// Derive evaluates the characteristic scales of p.
func Derive(p Params) []Row {
	n := quantity.New(p.Density, quantity.PerCubicMetre)
	te := quantity.New(p.Te, quantity.ElectronVolt)
	ti := quantity.New(p.Ti, quantity.ElectronVolt)
	b := quantity.New(p.B, quantity.Tesla)
	ion := particles.Specifier(p.Ion)

	row := func(name string, u quantity.Units, fn func() (quantity.Quantity, error)) Row {
		q, err := fn()
		return Row{Name: name, Value: q, Unit: u, Err: err}
	}
	return []Row{
		row("Debye length", quantity.Metre, func() (quantity.Quantity, error) {
			return formulary.DebyeLength(te, n)
		}),
		row("Debye number", quantity.Dimensionless, func() (quantity.Quantity, error) {
			return formulary.DebyeNumber(te, n)
		}),
		row("electron plasma frequency", quantity.Hertz, func() (quantity.Quantity, error) {
			return formulary.PlasmaFrequencyHz(n, "e-")
		}),
		row("electron gyrofrequency", quantity.Hertz, func() (quantity.Quantity, error) {
			return formulary.GyrofrequencyHz(b, "e-")
		}),
		row("ion gyrofrequency", quantity.Hertz, func() (quantity.Quantity, error) {
			return formulary.GyrofrequencyHz(b, ion)
		}),
		row("upper hybrid frequency", quantity.Hertz, func() (quantity.Quantity, error) {
			return callHz("UpperHybridFrequency", validate.Args{"B": b, "n_e": n})
		}),
		row("lower hybrid frequency", quantity.Hertz, func() (quantity.Quantity, error) {
			return callHz("LowerHybridFrequency", validate.Args{"B": b, "n_i": n}, ion)
		}),
		row("electron thermal speed", quantity.MetrePerSecond, func() (quantity.Quantity, error) {
			return formulary.ThermalSpeed(te, "e-")
		}),
		row("ion sound speed", quantity.MetrePerSecond, func() (quantity.Quantity, error) {
			return formulary.IonSoundSpeed(te, ti, ion)
		}),
		row("Alfven speed", quantity.MetrePerSecond, func() (quantity.Quantity, error) {
			return formulary.AlfvenSpeed(b, n, ion)
		}),
		row("ion gyroradius", quantity.Metre, func() (quantity.Quantity, error) {
			return formulary.Gyroradius(b, ion, formulary.WithTemperature(ti))
		}),
		row("ion inertial length", quantity.Metre, func() (quantity.Quantity, error) {
			return formulary.InertialLength(n, ion)
		}),
		row("beta", quantity.Dimensionless, func() (quantity.Quantity, error) {
			return formulary.Beta(te, n, b)
		}),
		row("Coulomb logarithm", quantity.Dimensionless, func() (quantity.Quantity, error) {
			return formulary.CoulombLogarithm(te, n, "e-", ion)
		}),
		row("e-i collision frequency", quantity.Hertz, func() (quantity.Quantity, error) {
			return formulary.CollisionFrequency(te, n, "e-", ion)
		}),
		row("Bohm diffusion", quantity.SquareMetrePerS, func() (quantity.Quantity, error) {
			return formulary.BohmDiffusion(te, b)
		}),
	}
}

func callHz(name string, args validate.Args, ps ...particles.Specifier) (quantity.Quantity, error) {
	e, ok := formulary.Lookup(name)
	if !ok {
		return quantity.Quantity{}, fmt.Errorf("%s: %w", name, validate.ErrNotImplemented)
	}
	return e.CallHz(args, ps)
}
