package formulary

import (
	"fmt"
	"math"

	"github.com/san-kum/plasmalab/internal/constants"
	"github.com/san-kum/plasmalab/internal/quantity"
	"github.com/san-kum/plasmalab/internal/validate"
)

var magneticPressureSpec = validate.Spec{
	Name:   "MagneticPressure",
	Args:   map[string]validate.Check{"B": field},
	Return: validate.Check{Units: units(quantity.Pascal)},
}

// MagneticPressure returns B^2 / (2 mu0).
func MagneticPressure(B quantity.Quantity) (quantity.Quantity, error) {
	return validate.Validate(magneticPressureSpec, func(a validate.Args) (quantity.Quantity, error) {
		b := a.SI("B")
		return quantity.New(b*b/(2*constants.Mu0), quantity.Pascal), nil
	})(validate.Args{"B": B})
}

// MagneticEnergyDensity returns B^2 / (2 mu0) in J/m^3.
func MagneticEnergyDensity(B quantity.Quantity) (quantity.Quantity, error) {
	p, err := MagneticPressure(B)
	if err != nil {
		return quantity.Quantity{}, err
	}
	return quantity.New(p.Value(), quantity.JPerCubicM), nil
}

var thermalPressureSpec = validate.Spec{
	Name:   "ThermalPressure",
	Args:   map[string]validate.Check{"T": temperature, "n": density},
	Return: validate.Check{Units: units(quantity.Pascal)},
}

// ThermalPressure returns n k T.
func ThermalPressure(T, n quantity.Quantity) (quantity.Quantity, error) {
	return validate.Validate(thermalPressureSpec, func(a validate.Args) (quantity.Quantity, error) {
		return quantity.New(a.SI("n")*constants.KB*a.SI("T"), quantity.Pascal), nil
	})(validate.Args{"T": T, "n": n})
}

var betaSpec = validate.Spec{
	Name: "Beta",
	Args: map[string]validate.Check{
		"T": temperature,
		"n": density,
		"B": {Units: units(quantity.Tesla), AllowNegative: true, ForbidZero: true, AllowArray: true},
	},
	Return: dimensionless,
}

// Beta returns the ratio of thermal to magnetic pressure.
func Beta(T, n, B quantity.Quantity) (quantity.Quantity, error) {
	return validate.Validate(betaSpec, func(a validate.Args) (quantity.Quantity, error) {
		pth, err := ThermalPressure(a["T"], a["n"])
		if err != nil {
			return quantity.Quantity{}, err
		}
		pmag, err := MagneticPressure(a["B"])
		if err != nil {
			return quantity.Quantity{}, err
		}
		return quantity.New(pth.Value()/pmag.Value(), quantity.Dimensionless), nil
	})(validate.Args{"T": T, "n": n, "B": B})
}

var bohmDiffusionSpec = validate.Spec{
	Name: "BohmDiffusion",
	Args: map[string]validate.Check{
		"T_e": temperature,
		"B":   {Units: units(quantity.Tesla), AllowNegative: true, ForbidZero: true, AllowArray: true},
	},
	Return: validate.Check{Units: units(quantity.SquareMetrePerS)},
}

// BohmDiffusion returns the Bohm diffusion coefficient k T_e / (16 e |B|).
func BohmDiffusion(Te, B quantity.Quantity) (quantity.Quantity, error) {
	return validate.Validate(bohmDiffusionSpec, func(a validate.Args) (quantity.Quantity, error) {
		d := constants.KB * a.SI("T_e") / (16 * constants.E * math.Abs(a.SI("B")))
		return quantity.New(d, quantity.SquareMetrePerS), nil
	})(validate.Args{"T_e": Te, "B": B})
}

// ChemicalPotential is declared for completeness of the function table
// and always fails with ErrNotImplemented.
func ChemicalPotential(n, T quantity.Quantity) (quantity.Quantity, error) {
	return quantity.Quantity{}, fmt.Errorf("ChemicalPotential: %w", validate.ErrNotImplemented)
}
