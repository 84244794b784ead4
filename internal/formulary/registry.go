package formulary

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/san-kum/plasmalab/internal/particles"
	"github.com/san-kum/plasmalab/internal/quantity"
	"github.com/san-kum/plasmalab/internal/validate"
)

type callFunc func(a validate.Args, ps []particles.Specifier, opts []Option) (quantity.Quantity, error)

// Entry describes a registered function so it can be called by name with
// named arguments.
type Entry struct {
	Name    string
	Aliases []string
	// Args are the required quantity arguments, Optional the accepted
	// extra ones. Dimensionless parameters such as kappa are passed as
	// bare quantities.
	Args     []string
	Optional []string
	// Particles is the number of particle specifiers the function takes.
	Particles int
	// HasHz reports whether the result is an angular frequency that
	// CallHz can express in Hz.
	HasHz bool
	Doc   string

	spec validate.Spec
	call callFunc
}

func (e Entry) bind(ps []particles.Specifier, opts []Option) validate.Func {
	return func(a validate.Args) (quantity.Quantity, error) {
		for _, name := range e.Args {
			if !a.Has(name) {
				return quantity.Quantity{}, &validate.ValueError{Func: e.Name, Arg: name, Value: math.NaN(), Reason: validate.ErrMissingArgument}
			}
		}
		return e.call(a, ps, opts)
	}
}

func (e Entry) checkParticles(ps []particles.Specifier) error {
	if len(ps) != e.Particles {
		return fmt.Errorf("%s takes %d particles, got %d: %w", e.Name, e.Particles, len(ps), validate.ErrMissingArgument)
	}
	return nil
}

// Call evaluates the function on scalar arguments.
func (e Entry) Call(args validate.Args, ps []particles.Specifier, opts ...Option) (quantity.Quantity, error) {
	if err := e.checkParticles(ps); err != nil {
		return quantity.Quantity{}, err
	}
	return e.bind(ps, opts)(args)
}

// CallHz evaluates an angular frequency function and returns Hz.
func (e Entry) CallHz(args validate.Args, ps []particles.Specifier, opts ...Option) (quantity.Quantity, error) {
	if !e.HasHz {
		return quantity.Quantity{}, fmt.Errorf("%s has no Hz variant: %w", e.Name, validate.ErrNotImplemented)
	}
	if err := e.checkParticles(ps); err != nil {
		return quantity.Quantity{}, err
	}
	return validate.ToHz(e.bind(ps, opts))(args)
}

// CallArray evaluates the function element-wise over array arguments.
func (e Entry) CallArray(args validate.ArrayArgs, ps []particles.Specifier, opts ...Option) (quantity.Array, error) {
	if err := e.checkParticles(ps); err != nil {
		return quantity.Array{}, err
	}
	spec := e.spec
	spec.Name = e.Name
	return validate.Broadcast(spec, e.bind(ps, opts))(args)
}

// Matches reports whether name is the entry name or one of its aliases,
// ignoring case.
func (e Entry) Matches(name string) bool {
	if strings.EqualFold(e.Name, name) {
		return true
	}
	for _, a := range e.Aliases {
		if strings.EqualFold(a, name) {
			return true
		}
	}
	return false
}

// Registry lists every function callable by name, sorted by name.
var Registry = newRegistry()

// Lookup finds an entry by name or alias.
func Lookup(name string) (Entry, bool) {
	for _, e := range Registry {
		if e.Matches(name) {
			return e, true
		}
	}
	return Entry{}, false
}

func optional(a validate.Args, name string, opt func(quantity.Quantity) Option, opts []Option) []Option {
	if q, ok := a[name]; ok {
		return append(append([]Option(nil), opts...), opt(q))
	}
	return opts
}

func newRegistry() []Entry {
	r := []Entry{
		{
			Name: "ThermalSpeed", Aliases: []string{"Vth"}, Args: []string{"T"}, Particles: 1,
			Doc: "thermal speed of a Maxwellian", spec: thermalSpeedSpec,
			call: func(a validate.Args, ps []particles.Specifier, opts []Option) (quantity.Quantity, error) {
				return ThermalSpeed(a["T"], ps[0], opts...)
			},
		},
		{
			Name: "KappaThermalSpeed", Aliases: []string{"VthKappa"}, Args: []string{"T", "kappa"}, Particles: 1,
			Doc: "most probable speed of a kappa distribution", spec: kappaThermalSpeedSpec,
			call: func(a validate.Args, ps []particles.Specifier, opts []Option) (quantity.Quantity, error) {
				return KappaThermalSpeed(a["T"], a.SI("kappa"), ps[0], opts...)
			},
		},
		{
			Name: "Gyrofrequency", Aliases: []string{"Oc", "Wc"}, Args: []string{"B"}, Particles: 1, HasHz: true,
			Doc: "angular gyrofrequency", spec: gyrofrequencySpec,
			call: func(a validate.Args, ps []particles.Specifier, opts []Option) (quantity.Quantity, error) {
				return Gyrofrequency(a["B"], ps[0], opts...)
			},
		},
		{
			Name: "Gyroradius", Aliases: []string{"Rc", "RhoC"}, Args: []string{"B"}, Optional: []string{"Vperp", "T"}, Particles: 1,
			Doc: "radius of gyration", spec: gyroradiusSpec,
			call: func(a validate.Args, ps []particles.Specifier, opts []Option) (quantity.Quantity, error) {
				opts = optional(a, "Vperp", WithVperp, opts)
				opts = optional(a, "T", WithTemperature, opts)
				return Gyroradius(a["B"], ps[0], opts...)
			},
		},
		{
			Name: "PlasmaFrequency", Aliases: []string{"Wp"}, Args: []string{"n"}, Particles: 1, HasHz: true,
			Doc: "angular plasma frequency", spec: plasmaFrequencySpec,
			call: func(a validate.Args, ps []particles.Specifier, opts []Option) (quantity.Quantity, error) {
				return PlasmaFrequency(a["n"], ps[0], opts...)
			},
		},
		{
			Name: "DebyeLength", Aliases: []string{"LambdaD"}, Args: []string{"T_e", "n_e"},
			Doc: "electron Debye length", spec: debyeLengthSpec,
			call: func(a validate.Args, _ []particles.Specifier, _ []Option) (quantity.Quantity, error) {
				return DebyeLength(a["T_e"], a["n_e"])
			},
		},
		{
			Name: "DebyeNumber", Aliases: []string{"ND"}, Args: []string{"T_e", "n_e"},
			Doc: "electrons per Debye sphere", spec: debyeNumberSpec,
			call: func(a validate.Args, _ []particles.Specifier, _ []Option) (quantity.Quantity, error) {
				return DebyeNumber(a["T_e"], a["n_e"])
			},
		},
		{
			Name: "InertialLength", Aliases: []string{"Cwp"}, Args: []string{"n"}, Particles: 1,
			Doc: "inertial length c / w_p", spec: inertialLengthSpec,
			call: func(a validate.Args, ps []particles.Specifier, opts []Option) (quantity.Quantity, error) {
				return InertialLength(a["n"], ps[0], opts...)
			},
		},
		{
			Name: "MagneticPressure", Aliases: []string{"Pmag"}, Args: []string{"B"},
			Doc: "magnetic pressure", spec: magneticPressureSpec,
			call: func(a validate.Args, _ []particles.Specifier, _ []Option) (quantity.Quantity, error) {
				return MagneticPressure(a["B"])
			},
		},
		{
			Name: "MagneticEnergyDensity", Aliases: []string{"Ub"}, Args: []string{"B"},
			Doc: "magnetic energy density", spec: magneticPressureSpec,
			call: func(a validate.Args, _ []particles.Specifier, _ []Option) (quantity.Quantity, error) {
				return MagneticEnergyDensity(a["B"])
			},
		},
		{
			Name: "UpperHybridFrequency", Aliases: []string{"Wuh"}, Args: []string{"B", "n_e"}, HasHz: true,
			Doc: "upper hybrid frequency", spec: upperHybridSpec,
			call: func(a validate.Args, _ []particles.Specifier, _ []Option) (quantity.Quantity, error) {
				return UpperHybridFrequency(a["B"], a["n_e"])
			},
		},
		{
			Name: "LowerHybridFrequency", Aliases: []string{"Wlh"}, Args: []string{"B", "n_i"}, Particles: 1, HasHz: true,
			Doc: "lower hybrid frequency", spec: lowerHybridSpec,
			call: func(a validate.Args, ps []particles.Specifier, opts []Option) (quantity.Quantity, error) {
				return LowerHybridFrequency(a["B"], a["n_i"], ps[0], opts...)
			},
		},
		{
			Name: "HallParameter", Aliases: []string{"BetaH"}, Args: []string{"n", "T", "B"}, Particles: 2,
			Doc: "gyrofrequency over collision frequency (ion, particle)", spec: hallParameterSpec,
			call: func(a validate.Args, ps []particles.Specifier, opts []Option) (quantity.Quantity, error) {
				return HallParameter(a["n"], a["T"], a["B"], ps[0], ps[1], opts...)
			},
		},
		{
			Name: "ReynoldsNumber", Aliases: []string{"Re"}, Args: []string{"rho", "U", "L", "mu"},
			Doc: "fluid Reynolds number", spec: reynoldsSpec,
			call: func(a validate.Args, _ []particles.Specifier, _ []Option) (quantity.Quantity, error) {
				return ReynoldsNumber(a["rho"], a["U"], a["L"], a["mu"])
			},
		},
		{
			Name: "MagneticReynoldsNumber", Aliases: []string{"Rm"}, Args: []string{"U", "L", "sigma"},
			Doc: "magnetic Reynolds number", spec: magneticReynoldsSpec,
			call: func(a validate.Args, _ []particles.Specifier, _ []Option) (quantity.Quantity, error) {
				return MagneticReynoldsNumber(a["U"], a["L"], a["sigma"])
			},
		},
		{
			Name: "BohmDiffusion", Aliases: []string{"DB"}, Args: []string{"T_e", "B"},
			Doc: "Bohm diffusion coefficient", spec: bohmDiffusionSpec,
			call: func(a validate.Args, _ []particles.Specifier, _ []Option) (quantity.Quantity, error) {
				return BohmDiffusion(a["T_e"], a["B"])
			},
		},
		{
			Name: "SahaRatio", Args: []string{"g_j", "g_k", "n_e", "E_jk", "T_e"},
			Doc: "ratio of adjacent ionization state populations", spec: sahaSpec,
			call: func(a validate.Args, _ []particles.Specifier, _ []Option) (quantity.Quantity, error) {
				return SahaRatio(a.SI("g_j"), a.SI("g_k"), a["n_e"], a["E_jk"], a["T_e"])
			},
		},
		{
			Name: "LorentzFactor", Args: []string{"V"},
			Doc: "relativistic gamma", spec: lorentzFactorSpec,
			call: func(a validate.Args, _ []particles.Specifier, _ []Option) (quantity.Quantity, error) {
				return LorentzFactor(a["V"])
			},
		},
		{
			Name: "RelativisticEnergy", Args: []string{"m", "V"},
			Doc: "total relativistic energy", spec: relativisticEnergySpec,
			call: func(a validate.Args, _ []particles.Specifier, _ []Option) (quantity.Quantity, error) {
				return RelativisticEnergy(a["m"], a["V"])
			},
		},
		{
			Name: "IonSoundSpeed", Aliases: []string{"Cs"}, Args: []string{"T_e", "T_i"}, Optional: []string{"n_e", "k"}, Particles: 1,
			Doc: "ion acoustic speed", spec: ionSoundSpeedSpec,
			call: func(a validate.Args, ps []particles.Specifier, opts []Option) (quantity.Quantity, error) {
				opts = optional(a, "n_e", WithElectronDensity, opts)
				opts = optional(a, "k", WithWavenumber, opts)
				return IonSoundSpeed(a["T_e"], a["T_i"], ps[0], opts...)
			},
		},
		{
			Name: "MassDensity", Aliases: []string{"Rho"}, Args: []string{"density"}, Particles: 1,
			Doc: "mass density", spec: massDensitySpec,
			call: func(a validate.Args, ps []particles.Specifier, opts []Option) (quantity.Quantity, error) {
				return MassDensity(a["density"], ps[0], opts...)
			},
		},
		{
			Name: "AlfvenSpeed", Aliases: []string{"Va"}, Args: []string{"B", "density"}, Particles: 1,
			Doc: "Alfven speed", spec: alfvenSpeedSpec,
			call: func(a validate.Args, ps []particles.Specifier, opts []Option) (quantity.Quantity, error) {
				return AlfvenSpeed(a["B"], a["density"], ps[0], opts...)
			},
		},
		{
			Name: "ThermalPressure", Aliases: []string{"Pth"}, Args: []string{"T", "n"},
			Doc: "thermal pressure n k T", spec: thermalPressureSpec,
			call: func(a validate.Args, _ []particles.Specifier, _ []Option) (quantity.Quantity, error) {
				return ThermalPressure(a["T"], a["n"])
			},
		},
		{
			Name: "Beta", Args: []string{"T", "n", "B"},
			Doc: "thermal over magnetic pressure", spec: betaSpec,
			call: func(a validate.Args, _ []particles.Specifier, _ []Option) (quantity.Quantity, error) {
				return Beta(a["T"], a["n"], a["B"])
			},
		},
		{
			Name: "CoulombLogarithm", Args: []string{"T", "n"}, Optional: []string{"V"}, Particles: 2,
			Doc: "classical Coulomb logarithm", spec: coulombLogSpec,
			call: func(a validate.Args, ps []particles.Specifier, opts []Option) (quantity.Quantity, error) {
				opts = optional(a, "V", WithVelocity, opts)
				return CoulombLogarithm(a["T"], a["n"], ps[0], ps[1], opts...)
			},
		},
		{
			Name: "CollisionFrequency", Args: []string{"T", "n"}, Optional: []string{"V"}, Particles: 2,
			Doc: "binary collision frequency", spec: collisionFrequencySpec,
			call: func(a validate.Args, ps []particles.Specifier, opts []Option) (quantity.Quantity, error) {
				opts = optional(a, "V", WithVelocity, opts)
				return CollisionFrequency(a["T"], a["n"], ps[0], ps[1], opts...)
			},
		},
		{
			Name: "ThermalDeBroglie", Args: []string{"T_e"},
			Doc: "electron thermal de Broglie wavelength", spec: thermalDeBroglieSpec,
			call: func(a validate.Args, _ []particles.Specifier, _ []Option) (quantity.Quantity, error) {
				return ThermalDeBroglie(a["T_e"])
			},
		},
		{
			Name: "ChemicalPotential", Args: []string{"n", "T"},
			Doc: "not implemented",
			call: func(a validate.Args, _ []particles.Specifier, _ []Option) (quantity.Quantity, error) {
				return ChemicalPotential(a["n"], a["T"])
			},
		},
	}
	sort.Slice(r, func(i, j int) bool { return r[i].Name < r[j].Name })
	return r
}
