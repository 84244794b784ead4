package formulary

import (
	"fmt"
	"math"

	"github.com/san-kum/plasmalab/internal/constants"
	"github.com/san-kum/plasmalab/internal/particles"
	"github.com/san-kum/plasmalab/internal/quantity"
	"github.com/san-kum/plasmalab/internal/validate"
)

// relativisticWarning is the fraction of c above which speeds are logged.
const relativisticWarning = 0.1

// thermalCoefficients[ndim][method] is c in v = sqrt(c k T / m).
var thermalCoefficients = map[int]map[string]float64{
	1: {"most_probable": 0, "rms": 1, "mean_magnitude": 2 / math.Pi, "nrl": 1},
	2: {"most_probable": 1, "rms": 2, "mean_magnitude": math.Pi / 2, "nrl": 0.5},
	3: {"most_probable": 2, "rms": 3, "mean_magnitude": 8 / math.Pi, "nrl": 1},
}

func thermalCoefficient(method string, ndim int) (float64, error) {
	byMethod, ok := thermalCoefficients[ndim]
	if !ok {
		return 0, fmt.Errorf("%w: ndim must be 1, 2 or 3, got %d", validate.ErrValue, ndim)
	}
	c, ok := byMethod[method]
	if !ok {
		return 0, fmt.Errorf("%w: unknown thermal speed method %q", validate.ErrValue, method)
	}
	return c, nil
}

var thermalSpeedSpec = validate.Spec{
	Name:   "ThermalSpeed",
	Args:   map[string]validate.Check{"T": temperature},
	Return: speedResult,
}

// ThermalSpeed returns the thermal speed of a Maxwellian distribution,
// sqrt(c k T / m), where c depends on the method and dimensionality.
func ThermalSpeed(T quantity.Quantity, particle particles.Specifier, opts ...Option) (quantity.Quantity, error) {
	return thermalSpeedFunc(particle, newOptions(opts))(validate.Args{"T": T})
}

func thermalSpeedFunc(particle particles.Specifier, o options) validate.Func {
	return validate.Chain(func(a validate.Args) (quantity.Quantity, error) {
		coeff, err := thermalCoefficient(o.method, o.ndim)
		if err != nil {
			return quantity.Quantity{}, err
		}
		m, err := particleMass(particle, o)
		if err != nil {
			return quantity.Quantity{}, err
		}
		return quantity.New(math.Sqrt(coeff*constants.KB*a.SI("T")/m), quantity.MetrePerSecond), nil
	}, validate.ValidateQuantities(thermalSpeedSpec), validate.CheckRelativistic(relativisticWarning))
}

var kappaThermalSpeedSpec = validate.Spec{
	Name:   "KappaThermalSpeed",
	Args:   map[string]validate.Check{"T": temperature},
	Return: speedResult,
}

// KappaThermalSpeed returns the most probable speed of a kappa
// distribution. kappa must exceed 3/2.
func KappaThermalSpeed(T quantity.Quantity, kappa float64, particle particles.Specifier, opts ...Option) (quantity.Quantity, error) {
	o := newOptions(opts)
	return validate.Validate(kappaThermalSpeedSpec, func(a validate.Args) (quantity.Quantity, error) {
		if kappa <= 1.5 || math.IsNaN(kappa) {
			return quantity.Quantity{}, valueError("KappaThermalSpeed", "kappa", kappa, validate.ErrValue)
		}
		if o.method != "most_probable" {
			return quantity.Quantity{}, fmt.Errorf("KappaThermalSpeed method %q: %w", o.method, validate.ErrNotImplemented)
		}
		vth, err := ThermalSpeed(a["T"], particle, WithMethod("most_probable"), withMassOf(o))
		if err != nil {
			return quantity.Quantity{}, err
		}
		return vth.Scale(math.Sqrt((kappa - 1.5) / kappa)), nil
	})(validate.Args{"T": T})
}

func withMassOf(o options) Option {
	return func(n *options) { n.mass = o.mass }
}

var ionSoundSpeedSpec = validate.Spec{
	Name: "IonSoundSpeed",
	Args: map[string]validate.Check{
		"T_e": temperature,
		"T_i": temperature,
		"n_e": {Units: units(quantity.PerCubicMetre), Optional: true, AllowArray: true},
		"k":   {Units: units(quantity.RadPerMetre, quantity.PerMetre), Optional: true, AllowArray: true},
	},
	Return: speedResult,
}

// IonSoundSpeed returns the ion acoustic speed
//
//	sqrt((gamma_e Z k T_e + gamma_i k T_i) / m_i) / sqrt(1 + k^2 lambda_D^2)
//
// The dispersive factor is applied when both WithElectronDensity and
// WithWavenumber are given; giving only one of them is an error.
func IonSoundSpeed(Te, Ti quantity.Quantity, ion particles.Specifier, opts ...Option) (quantity.Quantity, error) {
	o := newOptions(opts)
	args := validate.Args{"T_e": Te, "T_i": Ti}
	if o.ne != nil {
		args["n_e"] = *o.ne
	}
	if o.k != nil {
		args["k"] = *o.k
	}
	return ionSoundSpeedFunc(ion, o)(args)
}

func ionSoundSpeedFunc(ion particles.Specifier, o options) validate.Func {
	return validate.Chain(func(a validate.Args) (quantity.Quantity, error) {
		if a.Has("n_e") != a.Has("k") {
			return quantity.Quantity{}, fmt.Errorf("IonSoundSpeed: n_e and k must be given together: %w", validate.ErrMissingArgument)
		}
		if o.gammaE < 1 || o.gammaI < 1 {
			return quantity.Quantity{}, valueError("IonSoundSpeed", "gamma", math.Min(o.gammaE, o.gammaI), validate.ErrValue)
		}
		m, err := particleMass(ion, o)
		if err != nil {
			return quantity.Quantity{}, err
		}
		z, err := chargeNumber(ion, o)
		if err != nil {
			return quantity.Quantity{}, err
		}
		klD2 := 0.0
		if a.Has("n_e") {
			lD, err := DebyeLength(a["T_e"], a["n_e"])
			if err != nil {
				return quantity.Quantity{}, err
			}
			klD := a.SI("k") * lD.Value()
			klD2 = klD * klD
		}
		num := o.gammaE*math.Abs(z)*constants.KB*a.SI("T_e") + o.gammaI*constants.KB*a.SI("T_i")
		v := math.Sqrt(num/m) / math.Sqrt(1+klD2)
		return quantity.New(v, quantity.MetrePerSecond), nil
	}, validate.ValidateQuantities(ionSoundSpeedSpec), validate.CheckRelativistic(relativisticWarning))
}

var massDensitySpec = validate.Spec{
	Name: "MassDensity",
	Args: map[string]validate.Check{
		"density": {Units: units(quantity.KgPerCubicMetre, quantity.PerCubicMetre), AllowArray: true},
	},
	Return: validate.Check{Units: units(quantity.KgPerCubicMetre)},
}

// MassDensity converts a number density into a mass density using the
// particle mass. A density already in kg/m^3 is returned unchanged.
func MassDensity(density quantity.Quantity, particle particles.Specifier, opts ...Option) (quantity.Quantity, error) {
	o := newOptions(opts)
	return validate.Validate(massDensitySpec, func(a validate.Args) (quantity.Quantity, error) {
		d := a["density"]
		if d.Compatible(quantity.KgPerCubicMetre) {
			return d, nil
		}
		m, err := particleMass(particle, o)
		if err != nil {
			return quantity.Quantity{}, err
		}
		return quantity.New(d.Value()*m*math.Abs(o.zRatio), quantity.KgPerCubicMetre), nil
	})(validate.Args{"density": density})
}

var alfvenSpeedSpec = validate.Spec{
	Name: "AlfvenSpeed",
	Args: map[string]validate.Check{
		"B":       field,
		"density": {Units: units(quantity.KgPerCubicMetre, quantity.PerCubicMetre), ForbidZero: true, AllowArray: true},
	},
	Return: speedResult,
}

// AlfvenSpeed returns |B| / sqrt(mu0 rho). density is a mass density or a
// number density of the given ion.
func AlfvenSpeed(B, density quantity.Quantity, ion particles.Specifier, opts ...Option) (quantity.Quantity, error) {
	return validate.Chain(func(a validate.Args) (quantity.Quantity, error) {
		rho, err := MassDensity(a["density"], ion, opts...)
		if err != nil {
			return quantity.Quantity{}, err
		}
		v := math.Abs(a.SI("B")) / math.Sqrt(constants.Mu0*rho.Value())
		return quantity.New(v, quantity.MetrePerSecond), nil
	}, validate.ValidateQuantities(alfvenSpeedSpec), validate.CheckRelativistic(relativisticWarning))(
		validate.Args{"B": B, "density": density})
}
