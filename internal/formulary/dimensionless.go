package formulary

import (
	"math"

	"github.com/san-kum/plasmalab/internal/constants"
	"github.com/san-kum/plasmalab/internal/particles"
	"github.com/san-kum/plasmalab/internal/quantity"
	"github.com/san-kum/plasmalab/internal/validate"
)

var reynoldsSpec = validate.Spec{
	Name: "ReynoldsNumber",
	Args: map[string]validate.Check{
		"rho": {Units: units(quantity.KgPerCubicMetre), AllowArray: true},
		"U":   speed,
		"L":   length,
		"mu":  {Units: units(quantity.PascalSecond), ForbidZero: true, AllowArray: true},
	},
	Return: validate.Check{Units: units(quantity.Dimensionless), AllowNegative: true},
}

// ReynoldsNumber returns rho U L / mu.
func ReynoldsNumber(rho, U, L, mu quantity.Quantity) (quantity.Quantity, error) {
	return validate.Validate(reynoldsSpec, func(a validate.Args) (quantity.Quantity, error) {
		re := a.SI("rho") * a.SI("U") * a.SI("L") / a.SI("mu")
		return quantity.New(re, quantity.Dimensionless), nil
	})(validate.Args{"rho": rho, "U": U, "L": L, "mu": mu})
}

var magneticReynoldsSpec = validate.Spec{
	Name: "MagneticReynoldsNumber",
	Args: map[string]validate.Check{
		"U":     speed,
		"L":     length,
		"sigma": {Units: units(quantity.SiemensPerMetre), AllowArray: true},
	},
	Return: validate.Check{Units: units(quantity.Dimensionless), AllowNegative: true},
}

// MagneticReynoldsNumber returns mu0 sigma U L.
func MagneticReynoldsNumber(U, L, sigma quantity.Quantity) (quantity.Quantity, error) {
	return validate.Validate(magneticReynoldsSpec, func(a validate.Args) (quantity.Quantity, error) {
		rm := constants.Mu0 * a.SI("sigma") * a.SI("U") * a.SI("L")
		return quantity.New(rm, quantity.Dimensionless), nil
	})(validate.Args{"U": U, "L": L, "sigma": sigma})
}

var hallParameterSpec = validate.Spec{
	Name: "HallParameter",
	Args: map[string]validate.Check{
		"n": {Units: units(quantity.PerCubicMetre), ForbidZero: true, AllowArray: true},
		"T": {Units: units(quantity.Kelvin), Equivalencies: []quantity.Equivalency{quantity.TemperatureEnergy()}, ForbidZero: true, AllowArray: true},
		"B": field,
	},
	Return: dimensionless,
}

// HallParameter returns w_c / nu, the ratio of the gyrofrequency of
// particle to its collision frequency with ion.
func HallParameter(n, T, B quantity.Quantity, ion, particle particles.Specifier, opts ...Option) (quantity.Quantity, error) {
	return validate.Validate(hallParameterSpec, func(a validate.Args) (quantity.Quantity, error) {
		wc, err := Gyrofrequency(a["B"], particle)
		if err != nil {
			return quantity.Quantity{}, err
		}
		nu, err := CollisionFrequency(a["T"], a["n"], particle, ion, opts...)
		if err != nil {
			return quantity.Quantity{}, err
		}
		return quantity.New(math.Abs(wc.Value())/nu.Value(), quantity.Dimensionless), nil
	})(validate.Args{"n": n, "T": T, "B": B})
}
