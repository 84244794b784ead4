package formulary

import (
	"fmt"
	"math"

	"github.com/san-kum/plasmalab/internal/constants"
	"github.com/san-kum/plasmalab/internal/particles"
	"github.com/san-kum/plasmalab/internal/quantity"
	"github.com/san-kum/plasmalab/internal/validate"
)

var debyeLengthSpec = validate.Spec{
	Name:   "DebyeLength",
	Args:   map[string]validate.Check{"T_e": temperature, "n_e": density},
	Return: lengthResult,
}

// DebyeLength returns the electron Debye length sqrt(eps0 k T_e / (n_e e^2)).
func DebyeLength(Te, ne quantity.Quantity) (quantity.Quantity, error) {
	return validate.Validate(debyeLengthSpec, func(a validate.Args) (quantity.Quantity, error) {
		l := math.Sqrt(constants.Eps0 * constants.KB * a.SI("T_e") / (a.SI("n_e") * constants.E * constants.E))
		return quantity.New(l, quantity.Metre), nil
	})(validate.Args{"T_e": Te, "n_e": ne})
}

var debyeNumberSpec = validate.Spec{
	Name:   "DebyeNumber",
	Args:   map[string]validate.Check{"T_e": temperature, "n_e": density},
	Return: dimensionless,
}

// DebyeNumber returns the number of electrons in a Debye sphere.
func DebyeNumber(Te, ne quantity.Quantity) (quantity.Quantity, error) {
	return validate.Validate(debyeNumberSpec, func(a validate.Args) (quantity.Quantity, error) {
		lD, err := DebyeLength(a["T_e"], a["n_e"])
		if err != nil {
			return quantity.Quantity{}, err
		}
		l := lD.Value()
		return quantity.New(4.0/3.0*math.Pi*a.SI("n_e")*l*l*l, quantity.Dimensionless), nil
	})(validate.Args{"T_e": Te, "n_e": ne})
}

var inertialLengthSpec = validate.Spec{
	Name:   "InertialLength",
	Args:   map[string]validate.Check{"n": {Units: units(quantity.PerCubicMetre), ForbidZero: true, AllowArray: true}},
	Return: lengthResult,
}

// InertialLength returns the skin depth c / w_p of a species.
func InertialLength(n quantity.Quantity, particle particles.Specifier, opts ...Option) (quantity.Quantity, error) {
	return validate.Validate(inertialLengthSpec, func(a validate.Args) (quantity.Quantity, error) {
		wp, err := PlasmaFrequency(a["n"], particle, opts...)
		if err != nil {
			return quantity.Quantity{}, err
		}
		return quantity.New(constants.C/wp.Value(), quantity.Metre), nil
	})(validate.Args{"n": n})
}

var gyroradiusSpec = validate.Spec{
	Name: "Gyroradius",
	Args: map[string]validate.Check{
		"B":     {Units: units(quantity.Tesla), AllowNegative: true, ForbidZero: true, AllowArray: true},
		"Vperp": {Units: units(quantity.MetrePerSecond), AllowNegative: true, Optional: true, AllowArray: true},
		"T":     {Units: units(quantity.Kelvin), Equivalencies: []quantity.Equivalency{quantity.TemperatureEnergy()}, Optional: true, AllowArray: true},
	},
	Return: lengthResult,
}

// Gyroradius returns the radius of gyration |V_perp| / w_c. Exactly one of
// WithVperp and WithTemperature must be given; with a temperature the
// most probable thermal speed is used.
func Gyroradius(B quantity.Quantity, particle particles.Specifier, opts ...Option) (quantity.Quantity, error) {
	o := newOptions(opts)
	args := validate.Args{"B": B}
	if o.vperp != nil {
		args["Vperp"] = *o.vperp
	}
	if o.temp != nil {
		args["T"] = *o.temp
	}
	return validate.Validate(gyroradiusSpec, func(a validate.Args) (quantity.Quantity, error) {
		if a.Has("Vperp") == a.Has("T") {
			return quantity.Quantity{}, fmt.Errorf("Gyroradius: give exactly one of Vperp and T: %w", validate.ErrValue)
		}
		v := a.SI("Vperp")
		if a.Has("T") {
			vth, err := ThermalSpeed(a["T"], particle, withMassOf(o))
			if err != nil {
				return quantity.Quantity{}, err
			}
			v = vth.Value()
		}
		wc, err := Gyrofrequency(a["B"], particle, opts...)
		if err != nil {
			return quantity.Quantity{}, err
		}
		return quantity.New(math.Abs(v)/wc.Value(), quantity.Metre), nil
	})(args)
}
