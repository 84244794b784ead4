package formulary

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/san-kum/plasmalab/internal/particles"
	"github.com/san-kum/plasmalab/internal/quantity"
	"github.com/san-kum/plasmalab/internal/validate"
)

// faddeevaTerms is the number of terms in the rational expansion of the
// Faddeeva function.
const faddeevaTerms = 32

var (
	faddeevaL      = math.Sqrt(faddeevaTerms / math.Sqrt2)
	faddeevaCoeffs = weidemanCoefficients(faddeevaTerms)
)

// weidemanCoefficients returns the expansion coefficients a_1..a_n of
// Weideman's rational approximation of w(z), computed from the FFT of
// exp(-t^2) (L^2 + t^2) sampled at t = L tan(theta/2).
func weidemanCoefficients(n int) []float64 {
	m := 2 * n
	m2 := 2 * m
	l := math.Sqrt(float64(n) / math.Sqrt2)

	sample := func(k int) float64 {
		t := l * math.Tan(float64(k)*math.Pi/float64(m)/2)
		return math.Exp(-t*t) * (l*l + t*t)
	}
	// Samples for k = -m+1..m-1 padded with a leading zero, then rotated
	// so that k = 0 comes first.
	seq := make([]float64, m2)
	for i := range seq {
		switch {
		case i < m:
			seq[i] = sample(i)
		case i > m:
			seq[i] = sample(i - m2)
		}
	}

	coeffs := fourier.NewFFT(m2).Coefficients(nil, seq)
	a := make([]float64, n)
	for j := 1; j <= n; j++ {
		a[j-1] = real(coeffs[j]) / float64(m2)
	}
	return a
}

// faddeeva evaluates w(z) = exp(-z^2) erfc(-i z).
func faddeeva(z complex128) complex128 {
	if imag(z) < 0 {
		return 2*cmplx.Exp(-z*z) - faddeeva(-z)
	}
	l := complex(faddeevaL, 0)
	iz := complex(0, 1) * z
	zz := (l + iz) / (l - iz)

	var p complex128
	for j := len(faddeevaCoeffs) - 1; j >= 0; j-- {
		p = p*zz + complex(faddeevaCoeffs[j], 0)
	}
	denom := l - iz
	return 2*p/(denom*denom) + complex(1/math.Sqrt(math.Pi), 0)/denom
}

// PlasmaDispersion returns the plasma dispersion function
// Z(zeta) = i sqrt(pi) w(zeta).
func PlasmaDispersion(zeta complex128) complex128 {
	return complex(0, math.Sqrt(math.Pi)) * faddeeva(zeta)
}

// PlasmaDispersionDeriv returns Z'(zeta) = -2 (1 + zeta Z(zeta)).
func PlasmaDispersionDeriv(zeta complex128) complex128 {
	return -2 * (1 + zeta*PlasmaDispersion(zeta))
}

var permittivitySpec = validate.Spec{
	Name: "PermittivityMaxwellian1D",
	Args: map[string]validate.Check{
		"omega": {Units: units(quantity.RadPerSecond), AllowNegative: true},
		"k":     {Units: units(quantity.RadPerMetre, quantity.PerMetre), ForbidZero: true},
		"T":     {Units: units(quantity.Kelvin), Equivalencies: []quantity.Equivalency{quantity.TemperatureEnergy()}, ForbidZero: true},
		"n":     {Units: units(quantity.PerCubicMetre)},
	},
}

// PermittivityMaxwellian1D returns the susceptibility of a species with a
// one dimensional Maxwellian distribution,
//
//	chi = -(w_p / (k v_th))^2 Z'(omega / (k v_th))
//
// where v_th is the most probable speed sqrt(2 k T / m).
func PermittivityMaxwellian1D(omega, k, T, n quantity.Quantity, particle particles.Specifier, opts ...Option) (complex128, error) {
	a, err := permittivitySpec.CheckArgs(validate.Args{"omega": omega, "k": k, "T": T, "n": n})
	if err != nil {
		return 0, err
	}
	o := newOptions(opts)
	vth, err := ThermalSpeed(a["T"], particle, withMassOf(o))
	if err != nil {
		return 0, err
	}
	wp, err := PlasmaFrequency(a["n"], particle, opts...)
	if err != nil {
		return 0, err
	}
	kv := a.SI("k") * vth.Value()
	zeta := complex(a.SI("omega")/kv, 0)
	term := wp.Value() / kv
	return complex(-term*term, 0) * PlasmaDispersionDeriv(zeta), nil
}
