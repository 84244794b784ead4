package formulary

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/san-kum/plasmalab/internal/quantity"
)

func TestPlasmaDispersion(t *testing.T) {
	sqrtPi := math.Sqrt(math.Pi)
	tests := []struct {
		zeta complex128
		want complex128
	}{
		{0, complex(0, sqrtPi)},
		{1, complex(-1.0761590138255368, 0.6520493321732922)},
		{-1, complex(1.0761590138255368, 0.6520493321732922)},
		{complex(0, 1), complex(0, sqrtPi*math.E*math.Erfc(1))},
		{complex(0, -1), complex(0, sqrtPi*math.E*math.Erfc(-1))},
	}
	for _, tt := range tests {
		got := PlasmaDispersion(tt.zeta)
		if cmplx.Abs(got-tt.want) > 1e-9*cmplx.Abs(tt.want) {
			t.Errorf("Z(%v) = %v, want %v", tt.zeta, got, tt.want)
		}
	}
}

func TestPlasmaDispersionDeriv(t *testing.T) {
	const h = 1e-6
	for _, zeta := range []complex128{0.3, complex(1.5, 0.2), complex(-2, -0.5), complex(0.1, 3)} {
		numeric := (PlasmaDispersion(zeta+h) - PlasmaDispersion(zeta-h)) / (2 * h)
		got := PlasmaDispersionDeriv(zeta)
		if cmplx.Abs(got-numeric) > 1e-6*math.Max(1, cmplx.Abs(got)) {
			t.Errorf("Z'(%v) = %v, finite difference %v", zeta, got, numeric)
		}
	}
	if got := PlasmaDispersionDeriv(0); cmplx.Abs(got+2) > 1e-12 {
		t.Errorf("Z'(0) = %v, want -2", got)
	}
}

func TestPermittivityMaxwellian1D(t *testing.T) {
	T := quantity.MustParse("10 eV")
	n := quantity.New(1e18, quantity.PerCubicMetre)
	k := quantity.New(1e4, quantity.RadPerMetre)

	// At zero frequency chi reduces to 1 / (k lambda_D)^2.
	chi, err := PermittivityMaxwellian1D(quantity.New(0, quantity.RadPerSecond), k, T, n, "e-")
	if err != nil {
		t.Fatal(err)
	}
	lD, err := DebyeLength(T, n)
	if err != nil {
		t.Fatal(err)
	}
	want := 1 / math.Pow(1e4*lD.Value(), 2)
	if !relClose(real(chi), want, 1e-9) || math.Abs(imag(chi)) > 1e-9*want {
		t.Errorf("chi(0) = %v, want %v", chi, want)
	}

	chiW, err := PermittivityMaxwellian1D(quantity.New(1e10, quantity.RadPerSecond), k, T, n, "e-")
	if err != nil {
		t.Fatal(err)
	}
	if imag(chiW) <= 0 {
		t.Errorf("chi at positive frequency = %v, want positive imaginary part (Landau damping)", chiW)
	}
}
