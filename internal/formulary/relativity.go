package formulary

import (
	"math"

	"github.com/san-kum/plasmalab/internal/constants"
	"github.com/san-kum/plasmalab/internal/quantity"
	"github.com/san-kum/plasmalab/internal/validate"
)

var lorentzFactorSpec = validate.Spec{
	Name:   "LorentzFactor",
	Args:   map[string]validate.Check{"V": speed},
	Return: dimensionless,
}

// LorentzFactor returns 1 / sqrt(1 - V^2/c^2). Speeds at or above c are a
// RelativityError.
func LorentzFactor(V quantity.Quantity) (quantity.Quantity, error) {
	return validate.Validate(lorentzFactorSpec, func(a validate.Args) (quantity.Quantity, error) {
		v := math.Abs(a.SI("V"))
		if v >= constants.C {
			return quantity.Quantity{}, &validate.RelativityError{Func: "LorentzFactor", Speed: v}
		}
		beta := v / constants.C
		return quantity.New(1/math.Sqrt(1-beta*beta), quantity.Dimensionless), nil
	})(validate.Args{"V": V})
}

var relativisticEnergySpec = validate.Spec{
	Name: "RelativisticEnergy",
	Args: map[string]validate.Check{
		"m": {Units: units(quantity.Kilogram), AllowArray: true},
		"V": speed,
	},
	Return: validate.Check{Units: units(quantity.Joule)},
}

// RelativisticEnergy returns gamma m c^2.
func RelativisticEnergy(m, V quantity.Quantity) (quantity.Quantity, error) {
	return validate.Validate(relativisticEnergySpec, func(a validate.Args) (quantity.Quantity, error) {
		gamma, err := LorentzFactor(a["V"])
		if err != nil {
			return quantity.Quantity{}, err
		}
		return quantity.New(gamma.Value()*a.SI("m")*constants.C*constants.C, quantity.Joule), nil
	})(validate.Args{"m": m, "V": V})
}
