package formulary

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/plasmalab/internal/constants"
	"github.com/san-kum/plasmalab/internal/particles"
	"github.com/san-kum/plasmalab/internal/quantity"
	"github.com/san-kum/plasmalab/internal/validate"
)

// ThomsonParams describes the plasma and geometry of a Thomson scattering
// experiment. Electron and ion populations are given as parallel slices;
// fractions default to a single population of weight 1 and ions default
// to protons.
type ThomsonParams struct {
	// ProbeWavelength is the wavelength of the incident light.
	ProbeWavelength quantity.Quantity
	// N is the total electron density.
	N quantity.Quantity

	Te     []quantity.Quantity
	Ti     []quantity.Quantity
	EFract []float64
	IFract []float64
	Ions   []particles.Specifier

	// Drift velocities in m/s, one per population. Nil means at rest.
	ElectronDrift []r3.Vec
	IonDrift      []r3.Vec

	// ProbeDir and ScatterDir default to x and y (90 degree scattering).
	ProbeDir   r3.Vec
	ScatterDir r3.Vec
}

// species holds the per-population parameters used by the spectrum.
type species struct {
	fract float64
	z     float64
	vth   float64
	wp    float64
	drift r3.Vec
}

// susceptibility is the 1D Maxwellian chi of a species at frequency w and
// wavenumber k.
func (s species) susceptibility(w, k float64) complex128 {
	kv := k * s.vth
	term := s.wp / kv
	return complex(-term*term, 0) * PlasmaDispersionDeriv(complex(w/kv, 0))
}

var thomsonSpec = validate.Spec{
	Name: "ThomsonSpectralDensity",
	Args: map[string]validate.Check{
		"probe_wavelength": {Units: units(quantity.Metre), ForbidZero: true},
		"n":                {Units: units(quantity.PerCubicMetre), ForbidZero: true},
	},
}

var thomsonTemperature = validate.Spec{
	Name: "ThomsonSpectralDensity",
	Args: map[string]validate.Check{
		"T": {Units: units(quantity.Kelvin), Equivalencies: []quantity.Equivalency{quantity.TemperatureEnergy()}, ForbidZero: true},
	},
}

func (p ThomsonParams) withDefaults() ThomsonParams {
	if len(p.EFract) == 0 {
		p.EFract = []float64{1}
	}
	if len(p.IFract) == 0 {
		p.IFract = []float64{1}
	}
	if len(p.Ions) == 0 {
		p.Ions = make([]particles.Specifier, len(p.IFract))
		for i := range p.Ions {
			p.Ions[i] = particles.Proton
		}
	}
	if p.ElectronDrift == nil {
		p.ElectronDrift = make([]r3.Vec, len(p.EFract))
	}
	if p.IonDrift == nil {
		p.IonDrift = make([]r3.Vec, len(p.IFract))
	}
	if p.ProbeDir == (r3.Vec{}) {
		p.ProbeDir = r3.Vec{X: 1}
	}
	if p.ScatterDir == (r3.Vec{}) {
		p.ScatterDir = r3.Vec{Y: 1}
	}
	return p
}

func (p ThomsonParams) check() error {
	ne, ni := len(p.EFract), len(p.IFract)
	switch {
	case len(p.Te) != ne || len(p.ElectronDrift) != ne:
		return fmt.Errorf("%w: %d electron fractions but %d temperatures and %d drifts",
			validate.ErrValue, ne, len(p.Te), len(p.ElectronDrift))
	case len(p.Ti) != ni || len(p.Ions) != ni || len(p.IonDrift) != ni:
		return fmt.Errorf("%w: %d ion fractions but %d temperatures, %d species and %d drifts",
			validate.ErrValue, ni, len(p.Ti), len(p.Ions), len(p.IonDrift))
	}
	for name, fr := range map[string][]float64{"efract": p.EFract, "ifract": p.IFract} {
		for _, f := range fr {
			if f < 0 || math.IsNaN(f) {
				return valueError("ThomsonSpectralDensity", name, f, validate.ErrNegative)
			}
		}
		if math.Abs(floats.Sum(fr)-1) > 1e-6 {
			return valueError("ThomsonSpectralDensity", name, floats.Sum(fr), fmt.Errorf("fractions must sum to 1"))
		}
	}
	return nil
}

// ThomsonSpectralDensity returns the spectral density S(k, w) of light
// scattered by a multi-species Maxwellian plasma at the given scattered
// wavelengths, in s/rad, together with the scattering parameter alpha
// averaged over the spectrum. alpha much below 1 is the non-collective
// regime, where S integrates over w to 2 pi.
func ThomsonSpectralDensity(wavelengths quantity.Array, params ThomsonParams) (float64, quantity.Array, error) {
	if wavelengths.Len() == 0 {
		return 0, quantity.Array{}, fmt.Errorf("ThomsonSpectralDensity: no wavelengths: %w", validate.ErrValue)
	}
	p := params.withDefaults()
	if err := p.check(); err != nil {
		return 0, quantity.Array{}, err
	}
	a, err := thomsonSpec.CheckArgs(validate.Args{"probe_wavelength": p.ProbeWavelength, "n": p.N})
	if err != nil {
		return 0, quantity.Array{}, err
	}
	lambdas, err := wavelengths.In(quantity.Metre)
	if err != nil {
		return 0, quantity.Array{}, fmt.Errorf("wavelengths: %w", err)
	}
	n := a.SI("n")

	zs := make([]float64, len(p.Ions))
	for i, ion := range p.Ions {
		if zs[i], err = chargeNumber(ion, newOptions(nil)); err != nil {
			return 0, quantity.Array{}, err
		}
	}
	var zbar float64
	for i, f := range p.IFract {
		zbar += f * zs[i]
	}
	if zbar <= 0 {
		return 0, quantity.Array{}, valueError("ThomsonSpectralDensity", "ions", zbar, validate.ErrValue)
	}

	electrons := make([]species, len(p.EFract))
	for i, f := range p.EFract {
		s, err := newSpecies(p.Te[i], f*n, particles.Electron, f, p.ElectronDrift[i])
		if err != nil {
			return 0, quantity.Array{}, err
		}
		electrons[i] = s
	}
	ions := make([]species, len(p.IFract))
	for i, f := range p.IFract {
		s, err := newSpecies(p.Ti[i], f*n/zbar, p.Ions[i], f, p.IonDrift[i])
		if err != nil {
			return 0, quantity.Array{}, err
		}
		s.z = zs[i]
		ions[i] = s
	}

	wpe := math.Sqrt(n * constants.E * constants.E / (constants.Eps0 * constants.ElectronMass))
	wl := 2 * math.Pi * constants.C / a.SI("probe_wavelength")
	kl := math.Sqrt(wl*wl-wpe*wpe) / constants.C
	probe := r3.Unit(p.ProbeDir)
	scatter := r3.Unit(p.ScatterDir)
	cosTheta := r3.Dot(probe, scatter)

	skw := make([]float64, len(lambdas))
	alphas := make([]float64, len(lambdas))
	for j, lambda := range lambdas {
		ws := 2 * math.Pi * constants.C / lambda
		ks := math.Sqrt(ws*ws-wpe*wpe) / constants.C
		w := ws - wl
		k := math.Sqrt(ks*ks + kl*kl - 2*ks*kl*cosTheta)
		kvec := r3.Sub(r3.Scale(ks, scatter), r3.Scale(kl, probe))

		var chiE, chiI complex128
		wde := make([]float64, len(electrons))
		for i, s := range electrons {
			wde[i] = w - r3.Dot(s.drift, kvec)
			chiE += s.susceptibility(wde[i], k)
		}
		wdi := make([]float64, len(ions))
		for i, s := range ions {
			wdi[i] = w - r3.Dot(s.drift, kvec)
			chiI += s.susceptibility(wdi[i], k)
		}
		eps := 1 + chiE + chiI

		var sum float64
		for i, s := range electrons {
			x := wde[i] / (k * s.vth)
			resp := cmplx.Abs(1 - chiE/eps)
			sum += s.fract * 2 * math.Sqrt(math.Pi) / (k * s.vth) * resp * resp * math.Exp(-x*x)
		}
		for i, s := range ions {
			x := wdi[i] / (k * s.vth)
			resp := cmplx.Abs(chiE / eps)
			sum += s.fract * s.z * s.z / zbar * 2 * math.Sqrt(math.Pi) / (k * s.vth) * resp * resp * math.Exp(-x*x)
		}
		skw[j] = sum
		alphas[j] = math.Sqrt2 * wpe / (k * electrons[0].vth)
	}

	alpha := floats.Sum(alphas) / float64(len(alphas))
	return alpha, quantity.NewArray(skw, quantity.SecondPerRad), nil
}

func newSpecies(T quantity.Quantity, density float64, particle particles.Specifier, fract float64, drift r3.Vec) (species, error) {
	a, err := thomsonTemperature.CheckArgs(validate.Args{"T": T})
	if err != nil {
		return species{}, err
	}
	vth, err := ThermalSpeed(a["T"], particle)
	if err != nil {
		return species{}, err
	}
	wp, err := PlasmaFrequency(quantity.New(density, quantity.PerCubicMetre), particle)
	if err != nil {
		return species{}, err
	}
	return species{fract: fract, z: 1, vth: vth.Value(), wp: wp.Value(), drift: drift}, nil
}
