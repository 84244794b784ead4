package formulary

import (
	"math"

	"github.com/san-kum/plasmalab/internal/constants"
	"github.com/san-kum/plasmalab/internal/particles"
	"github.com/san-kum/plasmalab/internal/quantity"
	"github.com/san-kum/plasmalab/internal/validate"
)

var gyrofrequencySpec = validate.Spec{
	Name:   "Gyrofrequency",
	Args:   map[string]validate.Check{"B": field},
	Return: signedFreq,
}

// Gyrofrequency returns the angular frequency of gyration |Z| e |B| / m.
// With Signed the sign of Z B is kept.
func Gyrofrequency(B quantity.Quantity, particle particles.Specifier, opts ...Option) (quantity.Quantity, error) {
	return gyrofrequencyFunc(particle, newOptions(opts))(validate.Args{"B": B})
}

// GyrofrequencyHz is Gyrofrequency expressed in Hz.
func GyrofrequencyHz(B quantity.Quantity, particle particles.Specifier, opts ...Option) (quantity.Quantity, error) {
	return validate.ToHz(gyrofrequencyFunc(particle, newOptions(opts)))(validate.Args{"B": B})
}

func gyrofrequencyFunc(particle particles.Specifier, o options) validate.Func {
	return validate.Validate(gyrofrequencySpec, func(a validate.Args) (quantity.Quantity, error) {
		m, err := particleMass(particle, o)
		if err != nil {
			return quantity.Quantity{}, err
		}
		z, err := chargeNumber(particle, o)
		if err != nil {
			return quantity.Quantity{}, err
		}
		w := z * constants.E * a.SI("B") / m
		if !o.signed {
			w = math.Abs(w)
		}
		return quantity.New(w, quantity.RadPerSecond), nil
	})
}

var plasmaFrequencySpec = validate.Spec{
	Name:   "PlasmaFrequency",
	Args:   map[string]validate.Check{"n": density},
	Return: angularFreq,
}

// PlasmaFrequency returns sqrt(n (Z e)^2 / (eps0 m)).
func PlasmaFrequency(n quantity.Quantity, particle particles.Specifier, opts ...Option) (quantity.Quantity, error) {
	return plasmaFrequencyFunc(particle, newOptions(opts))(validate.Args{"n": n})
}

// PlasmaFrequencyHz is PlasmaFrequency expressed in Hz.
func PlasmaFrequencyHz(n quantity.Quantity, particle particles.Specifier, opts ...Option) (quantity.Quantity, error) {
	return validate.ToHz(plasmaFrequencyFunc(particle, newOptions(opts)))(validate.Args{"n": n})
}

func plasmaFrequencyFunc(particle particles.Specifier, o options) validate.Func {
	return validate.Validate(plasmaFrequencySpec, func(a validate.Args) (quantity.Quantity, error) {
		m, err := particleMass(particle, o)
		if err != nil {
			return quantity.Quantity{}, err
		}
		z, err := chargeNumber(particle, o)
		if err != nil {
			return quantity.Quantity{}, err
		}
		q := z * constants.E
		w := math.Sqrt(a.SI("n") * q * q / (constants.Eps0 * m))
		return quantity.New(w, quantity.RadPerSecond), nil
	})
}

var upperHybridSpec = validate.Spec{
	Name:   "UpperHybridFrequency",
	Args:   map[string]validate.Check{"B": field, "n_e": density},
	Return: angularFreq,
}

// UpperHybridFrequency returns sqrt(wpe^2 + wce^2).
func UpperHybridFrequency(B, ne quantity.Quantity) (quantity.Quantity, error) {
	return validate.Validate(upperHybridSpec, func(a validate.Args) (quantity.Quantity, error) {
		wpe, err := PlasmaFrequency(a["n_e"], particles.Electron)
		if err != nil {
			return quantity.Quantity{}, err
		}
		wce, err := Gyrofrequency(a["B"], particles.Electron)
		if err != nil {
			return quantity.Quantity{}, err
		}
		return quantity.New(math.Hypot(wpe.Value(), wce.Value()), quantity.RadPerSecond), nil
	})(validate.Args{"B": B, "n_e": ne})
}

var lowerHybridSpec = validate.Spec{
	Name:   "LowerHybridFrequency",
	Args:   map[string]validate.Check{"B": field, "n_i": density},
	Return: angularFreq,
}

// LowerHybridFrequency returns ((wci wce)^-1 + wpi^-2)^-1/2.
func LowerHybridFrequency(B, ni quantity.Quantity, ion particles.Specifier, opts ...Option) (quantity.Quantity, error) {
	return validate.Validate(lowerHybridSpec, func(a validate.Args) (quantity.Quantity, error) {
		wci, err := Gyrofrequency(a["B"], ion, opts...)
		if err != nil {
			return quantity.Quantity{}, err
		}
		wpi, err := PlasmaFrequency(a["n_i"], ion, opts...)
		if err != nil {
			return quantity.Quantity{}, err
		}
		wce, err := Gyrofrequency(a["B"], particles.Electron)
		if err != nil {
			return quantity.Quantity{}, err
		}
		inv := 1/(wci.Value()*wce.Value()) + 1/(wpi.Value()*wpi.Value())
		return quantity.New(1/math.Sqrt(inv), quantity.RadPerSecond), nil
	})(validate.Args{"B": B, "n_i": ni})
}
