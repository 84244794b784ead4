package formulary

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/plasmalab/internal/constants"
	"github.com/san-kum/plasmalab/internal/quantity"
	"github.com/san-kum/plasmalab/internal/validate"
)

func TestCoulombLogarithm(t *testing.T) {
	T := quantity.New(1e6, quantity.Kelvin)
	n := quantity.New(1e19, quantity.PerCubicMetre)
	lnL, err := CoulombLogarithm(T, n, "e-", "p+")
	if err != nil {
		t.Fatal(err)
	}
	if lnL.Value() < 13 || lnL.Value() > 16 {
		t.Errorf("CoulombLogarithm(e-, p+) = %v, want about 14.5", lnL.Value())
	}

	// A faster relative speed shrinks b_min and raises lnLambda.
	fast, err := CoulombLogarithm(T, n, "e-", "p+", WithVelocity(quantity.New(1e7, quantity.MetrePerSecond)))
	if err != nil {
		t.Fatal(err)
	}
	if fast.Value() <= lnL.Value() {
		t.Errorf("lnLambda at 1e7 m/s = %v, not above %v", fast.Value(), lnL.Value())
	}

	if _, err := CoulombLogarithm(T, n, "e-", "n"); !errors.Is(err, validate.ErrZero) {
		t.Errorf("neutral collision partner error = %v, want ErrZero", err)
	}
	if _, err := CoulombLogarithm(quantity.New(0, quantity.Kelvin), n, "e-", "p+"); !errors.Is(err, validate.ErrZero) {
		t.Errorf("T=0 error = %v, want ErrZero", err)
	}
}

func TestCollisionFrequencyAndHall(t *testing.T) {
	T := quantity.New(1e6, quantity.Kelvin)
	n := quantity.New(1e19, quantity.PerCubicMetre)
	B := quantity.New(1, quantity.Tesla)

	nu, err := CollisionFrequency(T, n, "e-", "p+")
	if err != nil {
		t.Fatal(err)
	}
	fixed, err := CollisionFrequency(T, n, "e-", "p+", WithCoulombLog(10))
	if err != nil {
		t.Fatal(err)
	}
	lnL, _ := CoulombLogarithm(T, n, "e-", "p+")
	if !relClose(nu.Value()/fixed.Value(), lnL.Value()/10, 1e-12) {
		t.Errorf("collision frequency does not scale with lnLambda: %v vs %v", nu.Value(), fixed.Value())
	}

	h, err := BetaH(n, T, B, "p+", "e-")
	if err != nil {
		t.Fatal(err)
	}
	wce, _ := Gyrofrequency(B, "e-")
	if !relClose(h.Value(), wce.Value()/nu.Value(), 1e-12) {
		t.Errorf("HallParameter = %v, want %v", h.Value(), wce.Value()/nu.Value())
	}
	if math.IsNaN(h.Value()) || h.Value() <= 0 {
		t.Errorf("HallParameter = %v", h.Value())
	}
}

func TestCollisionFrequencyCrossSection(t *testing.T) {
	n := quantity.New(1e19, quantity.PerCubicMetre)
	tests := []struct {
		name string
		T    float64
	}{
		// b_perp dominates when cold, the de Broglie length when hot.
		{"classical", 1e4},
		{"quantum", 1e8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nu, err := CollisionFrequency(quantity.New(tt.T, quantity.Kelvin), n, "e-", "p+", WithCoulombLog(10))
			if err != nil {
				t.Fatal(err)
			}
			mu := constants.ElectronMass * constants.ProtonMass / (constants.ElectronMass + constants.ProtonMass)
			v := math.Sqrt(2 * constants.KB * tt.T / mu)
			bPerp := constants.E * constants.E / (4 * math.Pi * constants.Eps0 * mu * v * v)
			bMin := math.Max(bPerp, constants.Hbar/(2*mu*v))
			want := 1e19 * math.Pi * 4 * bMin * bMin * v * 10
			if !relClose(nu.Value(), want, 1e-6) {
				t.Errorf("CollisionFrequency(T=%g K) = %v, want %v", tt.T, nu.Value(), want)
			}
		})
	}
}
