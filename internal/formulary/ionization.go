package formulary

import (
	"math"

	"github.com/san-kum/plasmalab/internal/constants"
	"github.com/san-kum/plasmalab/internal/quantity"
	"github.com/san-kum/plasmalab/internal/validate"
)

var sahaSpec = validate.Spec{
	Name: "SahaRatio",
	Args: map[string]validate.Check{
		"n_e":  {Units: units(quantity.PerCubicMetre), ForbidZero: true, AllowArray: true},
		"E_jk": {Units: units(quantity.Joule), AllowArray: true},
		"T_e":  {Units: units(quantity.Kelvin), Equivalencies: []quantity.Equivalency{quantity.TemperatureEnergy()}, ForbidZero: true, AllowArray: true},
	},
	Return: dimensionless,
}

// SahaRatio returns the ratio n_k / n_j of populations of two adjacent
// ionization states in thermal equilibrium,
//
//	2 (g_k / g_j) (2 pi m_e k T_e / h^2)^(3/2) exp(-E_jk / k T_e) / n_e
//
// The degeneracies g_j and g_k must be positive.
func SahaRatio(gj, gk float64, ne, Ejk, Te quantity.Quantity) (quantity.Quantity, error) {
	return validate.Validate(sahaSpec, func(a validate.Args) (quantity.Quantity, error) {
		if !(gj > 0) {
			return quantity.Quantity{}, valueError("SahaRatio", "g_j", gj, validate.ErrValue)
		}
		if !(gk > 0) {
			return quantity.Quantity{}, valueError("SahaRatio", "g_k", gk, validate.ErrValue)
		}
		kT := constants.KB * a.SI("T_e")
		thermal := math.Pow(2*math.Pi*constants.ElectronMass*kT/(constants.H*constants.H), 1.5)
		ratio := 2 * (gk / gj) * thermal * math.Exp(-a.SI("E_jk")/kT) / a.SI("n_e")
		return quantity.New(ratio, quantity.Dimensionless), nil
	})(validate.Args{"n_e": ne, "E_jk": Ejk, "T_e": Te})
}

var thermalDeBroglieSpec = validate.Spec{
	Name: "ThermalDeBroglie",
	Args: map[string]validate.Check{
		"T_e": {Units: units(quantity.Kelvin), Equivalencies: []quantity.Equivalency{quantity.TemperatureEnergy()}, ForbidZero: true, AllowArray: true},
	},
	Return: lengthResult,
}

// ThermalDeBroglie returns the electron thermal de Broglie wavelength
// h / sqrt(2 pi m_e k T_e).
func ThermalDeBroglie(Te quantity.Quantity) (quantity.Quantity, error) {
	return validate.Validate(thermalDeBroglieSpec, func(a validate.Args) (quantity.Quantity, error) {
		l := constants.H / math.Sqrt(2*math.Pi*constants.ElectronMass*constants.KB*a.SI("T_e"))
		return quantity.New(l, quantity.Metre), nil
	})(validate.Args{"T_e": Te})
}
